package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/abelbrown/movierec/internal/api"
	"github.com/abelbrown/movierec/internal/history"
)

func runHistory() {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	n := fs.Int("n", 20, "Number of recent lookups to show")
	movie := fs.String("movie", "", "Only show lookups for this title")
	clearAll := fs.Bool("clear", false, "Delete all history")
	configPath := fs.String("config", "", "Config file")
	fs.Parse(os.Args[1:])

	cfg := loadConfig(*configPath)
	st := openHistory(cfg)
	defer st.Close()

	ctx := context.Background()

	if *clearAll {
		removed, err := st.Clear(ctx)
		if err != nil {
			log.Fatalf("clear history: %v", err)
		}
		fmt.Printf("Removed %d lookups\n", removed)
		return
	}

	total, err := st.Count(ctx)
	if err != nil {
		log.Fatalf("count history: %v", err)
	}

	entries, err := readHistory(ctx, st, *movie, *n)
	if err != nil {
		log.Fatalf("read history: %v", err)
	}

	fmt.Printf("History: %d lookups total, showing %d\n", total, len(entries))
	fmt.Println(strings.Repeat("=", 60))
	for _, e := range entries {
		fmt.Printf("%s  %s  (%d results)\n", e.CreatedAt.Local().Format(time.DateTime), e.MovieName, len(e.Results))
		for i, r := range e.Results {
			if i == 3 {
				fmt.Printf("      ... %d more\n", len(e.Results)-3)
				break
			}
			fmt.Printf("      %-40s %s\n", truncate(r.Title, 40), api.FormatMatch(r.Similarity))
		}
	}
}

// historyReader is the read side of *history.Store.
type historyReader interface {
	Recent(ctx context.Context, limit int) ([]history.Entry, error)
	ByMovie(ctx context.Context, movieName string, limit int) ([]history.Entry, error)
}

// readHistory lists lookups for one title when movie is set, the most
// recent lookups otherwise.
func readHistory(ctx context.Context, r historyReader, movie string, n int) ([]history.Entry, error) {
	if movie != "" {
		return r.ByMovie(ctx, movie, n)
	}
	return r.Recent(ctx, n)
}
