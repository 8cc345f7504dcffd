package main

import (
	"context"
	"os"

	"marathondata/cmd/marathond/commands"
	"marathondata/lib/telemetry"
	"marathondata/lib/util/serviceutil"
)

func main() {
	tel, err := telemetry.SetupFromEnv(context.Background(), "marathond")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to set up telemetry", err)
	}
	defer tel.Shutdown(context.Background())

	ctx := serviceutil.SignalContext()
	telemetry.InstrumentPerfStats(ctx)

	commands.ExecuteContext(ctx)
}
