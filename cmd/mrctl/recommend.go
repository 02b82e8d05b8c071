package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abelbrown/movierec/internal/api"
)

func runRecommend() {
	fs := flag.NewFlagSet("recommend", flag.ExitOnError)
	server := fs.String("server", "", "Service base URL (overrides config)")
	configPath := fs.String("config", "", "Config file")
	save := fs.Bool("save", false, "Record the lookup in history")
	fs.Parse(os.Args[1:])

	movie := joinArgs(fs.Args(), "mrctl recommend [--server URL] [--save] <movie>")

	cfg := loadConfig(*configPath)
	client := newClient(cfg, *server)
	ctx := context.Background()

	t0 := time.Now()
	recs, err := client.Recommend(ctx, movie)
	if err != nil {
		// Show what the TUI would show, then the underlying cause.
		fmt.Fprintf(os.Stderr, "%s\n  cause: %v\n", api.DisplayMessage(err), err)
		os.Exit(1)
	}

	fmt.Printf("Recommendations for %q  (%s)\n", movie, time.Since(t0).Round(time.Millisecond))
	fmt.Println(strings.Repeat("-", 60))
	for i, r := range recs {
		fmt.Printf("  %2d. %-40s %s\n", i+1, truncate(r.Title, 40), api.FormatMatch(r.Similarity))
	}

	if *save {
		st := openHistory(cfg)
		defer st.Close()
		if _, err := st.Record(ctx, movie, recs); err != nil {
			fmt.Fprintf(os.Stderr, "history: %v\n", err)
			os.Exit(1)
		}
	}
}
