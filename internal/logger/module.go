package logger

import (
	"log/slog"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

// Module provides the service logger and sends fx's own events through it.
var Module = fx.Options(
	fx.Provide(New),
	fx.WithLogger(newEventLogger),
)

// newEventLogger logs container events at debug so they stay out of the
// default info stream. Failures still surface at error.
func newEventLogger(logger *slog.Logger) fxevent.Logger {
	events := &fxevent.SlogLogger{Logger: logger.With("component", "fx")}
	events.UseLogLevel(slog.LevelDebug)
	return events
}
