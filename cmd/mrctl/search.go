package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"
)

func runSearch() {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	server := fs.String("server", "", "Service base URL (overrides config)")
	configPath := fs.String("config", "", "Config file")
	fs.Parse(os.Args[1:])

	query := joinArgs(fs.Args(), "mrctl search [--server URL] <query>")

	cfg := loadConfig(*configPath)
	client := newClient(cfg, *server)

	t0 := time.Now()
	titles, err := client.Search(context.Background(), query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "search failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("GET %s/search?q=%s  %d results  (%s)\n", client.BaseURL(), query, len(titles), time.Since(t0).Round(time.Millisecond))
	for i, t := range titles {
		fmt.Printf("  %2d. %s\n", i+1, t)
	}
}
