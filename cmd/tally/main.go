package main

import (
	"context"
	"log/slog"
	"os"

	"tally/internal/cli"
)

func main() {
	if err := cli.RunServe(context.Background()); err != nil {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}
}
