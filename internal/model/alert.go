package model

import (
	"fmt"
	"time"
)

// Alert is emitted once per anomalous record, before correction runs.
type Alert struct {
	Date           time.Time     `json:"date"`
	Observed       ObservedPrice `json:"observed_price"`
	ReferencePrice float64       `json:"reference_price"`
}

// NewAlert builds the alert for a record.
func NewAlert(r PriceRecord) Alert {
	return Alert{Date: r.Date, Observed: r.ObservedPrice, ReferencePrice: r.ReferencePrice}
}

// String renders the console alert line.
func (a Alert) String() string {
	return fmt.Sprintf("Alert: Trade error detected on %s - Trade Price: %s, Close Price: %.2f",
		a.Date.Format(DateLayout), a.Observed, a.ReferencePrice)
}
