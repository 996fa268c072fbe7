package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/avencillado/blognest/internal/app"
)

func main() {
	if err := app.Run(context.Background()); err != nil {
		slog.Error("Fatal error occurred.", "reason", err)
		os.Exit(1)
	}
}
