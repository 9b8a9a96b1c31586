package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/ardnew/caption/cli"
	"github.com/ardnew/caption/log"
)

func main() {
	err := cli.Run(context.Background(), os.Exit, os.Args[1:]...)
	if err != nil {
		// Error values carry their own attributes through LogValue.
		log.Error("run failed", slog.Any("error", err))
		os.Exit(1)
	}
}
