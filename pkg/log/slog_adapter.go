package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes session events to an slog.Logger.
// Useful for development when you want to see session events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("category", event.Category.String()),
	}

	if event.Activity != "" {
		attrs = append(attrs, slog.String("activity", event.Activity))
	}

	// Add type-specific attributes
	switch {
	case event.State != nil:
		attrs = append(attrs,
			slog.String("from", event.State.From),
			slog.String("to", event.State.To),
			slog.Bool("accepted", event.State.Accepted),
		)
		if event.State.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.State.Reason))
		}
	case event.Anomaly != nil:
		attrs = append(attrs,
			slog.String("metric", event.Anomaly.Metric),
			slog.String("verdict", event.Anomaly.Verdict),
			slog.Float64("candidate", event.Anomaly.Candidate),
			slog.Float64("applied", event.Anomaly.Applied),
		)
		if event.Anomaly.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Anomaly.Reason))
		}
	case event.Split != nil:
		attrs = append(attrs,
			slog.Int("index", event.Split.Index),
			slog.Float64("distance_m", event.Split.Distance),
			slog.Duration("elapsed", event.Split.Elapsed),
			slog.Float64("pace", event.Split.Pace),
		)
	case event.Metrics != nil:
		attrs = append(attrs,
			slog.Duration("elapsed", event.Metrics.Elapsed),
			slog.Float64("distance_m", event.Metrics.Distance),
		)
		if event.Metrics.HeartRate > 0 {
			attrs = append(attrs, slog.Float64("heart_rate", event.Metrics.HeartRate))
		}
	case event.Record != nil:
		attrs = append(attrs,
			slog.String("record_id", event.Record.RecordID),
			slog.Duration("duration", event.Record.Duration),
			slog.Float64("distance_m", event.Record.Distance),
			slog.Int("splits", event.Record.Splits),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "session event", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
