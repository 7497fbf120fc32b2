package alert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"github.com/Alias1177/PriceGuard/internal/model"
)

// Sink receives alerts in record order.
type Sink interface {
	Send(ctx context.Context, a model.Alert) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(ctx context.Context, a model.Alert) error

// Send calls f.
func (f SinkFunc) Send(ctx context.Context, a model.Alert) error {
	return f(ctx, a)
}

// LogSink writes each alert as a structured log event.
type LogSink struct {
	Logger zerolog.Logger
}

// Send logs the alert at warn level.
func (s LogSink) Send(_ context.Context, a model.Alert) error {
	s.Logger.Warn().
		Str("date", a.Date.Format(model.DateLayout)).
		Str("observed", a.Observed.String()).
		Float64("reference", a.ReferencePrice).
		Msg("Trade error detected")
	return nil
}

// WriterSink prints one line per alert.
type WriterSink struct {
	W io.Writer
}

// Send writes the alert line to W.
func (s WriterSink) Send(_ context.Context, a model.Alert) error {
	_, err := fmt.Fprintln(s.W, a.String())
	return err
}

// Collector keeps alerts in memory.
type Collector struct {
	mu     sync.Mutex
	alerts []model.Alert
}

// Send records the alert.
func (c *Collector) Send(_ context.Context, a model.Alert) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alerts = append(c.alerts, a)
	return nil
}

// Alerts returns a copy of the collected alerts.
func (c *Collector) Alerts() []model.Alert {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Alert, len(c.alerts))
	copy(out, c.alerts)
	return out
}

// MultiSink delivers to every sink in order and joins their errors.
type MultiSink []Sink

// Send delivers the alert to each sink.
func (m MultiSink) Send(ctx context.Context, a model.Alert) error {
	var errs []error
	for _, s := range m {
		if err := s.Send(ctx, a); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
