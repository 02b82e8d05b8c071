package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/abelbrown/movierec/internal/api"
	"github.com/abelbrown/movierec/internal/config"
	"github.com/abelbrown/movierec/internal/history"
)

// loadConfig loads the shared config or fatals.
func loadConfig(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	return cfg
}

// newClient builds an API client, letting server override the configured URL.
func newClient(cfg *config.Config, server string) *api.Client {
	if server != "" {
		cfg.Server.BaseURL = server
	}
	return api.NewClient(cfg.Server.BaseURL, cfg.Server.Timeout, api.WithRateLimit(cfg.Server.RatePerSecond))
}

// openHistory opens the history database or fatals.
func openHistory(cfg *config.Config) *history.Store {
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatalf("failed to create data directory: %v", err)
	}
	st, err := history.Open(cfg.HistoryPath())
	if err != nil {
		log.Fatalf("failed to open history: %v", err)
	}
	return st
}

// joinArgs turns the remaining arguments into one query, or prints usage and exits.
func joinArgs(args []string, usage string) string {
	q := strings.TrimSpace(strings.Join(args, " "))
	if q == "" {
		fmt.Fprintln(os.Stderr, "usage: "+usage)
		os.Exit(1)
	}
	return q
}

// truncate shortens a string to max runes, appending "..." if truncated.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}
