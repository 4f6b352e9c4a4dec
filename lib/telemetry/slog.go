package telemetry

import (
	"log/slog"
	"os"
)

// InitSlog installs the default text handler used by every binary in this
// repo. Debug builds log at debug level, which also turns on per-request
// logging in the resty instrumentation.
func InitSlog(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
