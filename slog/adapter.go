package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/ramprice"
)

// Ensure LoggingAdapter implements ramprice.Adapter.
var _ ramprice.Adapter = (*LoggingAdapter)(nil)

// LoggingAdapter wraps an Adapter with debug logging.
type LoggingAdapter struct {
	next   ramprice.Adapter
	logger *slog.Logger
}

// NewLoggingAdapter creates a new LoggingAdapter.
func NewLoggingAdapter(next ramprice.Adapter, logger *slog.Logger) *LoggingAdapter {
	return &LoggingAdapter{next: next, logger: logger}
}

// Name delegates to the wrapped adapter.
func (a *LoggingAdapter) Name() string {
	return a.next.Name()
}

// Parse delegates to the wrapped adapter and logs the operation.
func (a *LoggingAdapter) Parse(source string) (listings []ramprice.Listing, err error) {
	defer func(begin time.Time) {
		a.logger.Info("parse",
			"store", a.next.Name(),
			"bytes", len(source),
			"listings", len(listings),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return a.next.Parse(source)
}
