package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"coursewatch/cmd/coursewatch/commands"
	"coursewatch/lib/telemetry"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	tel, err := telemetry.SetupFromEnv(ctx, "coursewatch")
	if err != nil {
		slog.Warn("telemetry setup failed, continuing without exporters", "err", err)
	} else {
		defer func() {
			if err := tel.Shutdown(context.Background()); err != nil {
				slog.Warn("telemetry shutdown failed", "err", err)
			}
		}()
	}

	commands.Execute(ctx)
}
