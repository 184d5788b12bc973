package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/joho/godotenv"

	"github.com/awantoch/eepromgen/logger"
)

func main() {
	// Load .env before PREFIX is read.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd := NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
