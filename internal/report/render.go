package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/Alias1177/PriceGuard/internal/detect"
	"github.com/Alias1177/PriceGuard/internal/model"
)

// WriteText prints the summary in the three-line console format.
func WriteText(w io.Writer, s model.Summary) error {
	improvement := fmt.Sprintf("%.2f%%", s.ImprovementPercent)
	if s.NoBaseline {
		improvement = "N/A (no errors detected)"
	}
	_, err := fmt.Fprintf(w,
		"Initial Errors Detected: %d\nErrors Remaining After Correction: %d\nAccuracy Improvement: %s\n",
		s.InitialErrorCount, s.CorrectedErrorCount, improvement)
	return err
}

// WriteDetections lists the detected records as a table.
func WriteDetections(w io.Writer, d detect.Detection) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Date\tClose\tTrade Price\tPrice Difference\tError Flag\n")
	for _, r := range d.Records {
		diff := "missing"
		if v, ok := r.Difference(); ok {
			diff = fmt.Sprintf("%.4f", v)
		}
		fmt.Fprintf(tw, "%s\t%.2f\t%s\t%s\t%t\n",
			r.Day(), r.ReferencePrice, r.ObservedPrice, diff, r.Flagged(d.Threshold))
	}
	return tw.Flush()
}

// WriteJSON encodes v with indentation.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
