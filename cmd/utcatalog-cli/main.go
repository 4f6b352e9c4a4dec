package main

import (
	"context"

	"utcatalog-backend/cmd/utcatalog-cli/commands"
	"utcatalog-backend/lib/serviceutil"
	"utcatalog-backend/lib/telemetry"
)

func main() {
	telemetry.SetupFromEnv(context.Background(), "utcatalog-cli")
	telemetry.InitSlog(true)

	// dumps can run for a while, Ctrl+C cancels in-flight fetches cleanly
	ctx := serviceutil.SignalContext()
	telemetry.InstrumentPerfStats(ctx)
	commands.ExecuteContext(ctx)
}
