package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/7blacky7/bpetok/cmd"
	"github.com/7blacky7/bpetok/envconfig"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: envconfig.LogLevel(),
	})))

	if err := cmd.NewCLI().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
