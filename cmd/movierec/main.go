// Command movierec is a terminal client for a movie recommendation service.
//
// Type a title, pick one of the suggestions with the mouse and press Enter
// to list similar movies with their match score.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/abelbrown/movierec/internal/api"
	"github.com/abelbrown/movierec/internal/config"
	"github.com/abelbrown/movierec/internal/history"
	"github.com/abelbrown/movierec/internal/logging"
	"github.com/abelbrown/movierec/internal/otel"
	"github.com/abelbrown/movierec/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {
	var (
		configPath = flag.String("config", "", "config file (default ~/.movierec/config.yaml)")
		serverURL  = flag.String("server", "", "recommendation service base URL (overrides config)")
		noMouse    = flag.Bool("no-mouse", false, "disable mouse support")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fatal("%v", err)
	}
	if *serverURL != "" {
		cfg.Server.BaseURL = *serverURL
	}
	if *noMouse {
		cfg.UI.Mouse = false
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		fatal("Failed to create data directory: %v", err)
	}

	if err := logging.Init(logging.Options{
		Dir:        cfg.LogDir(),
		Level:      cfg.Logging.Level,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	defer logging.Close()

	eventSink := &lumberjack.Logger{
		Filename:   cfg.EventLogPath(),
		MaxSize:    cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
	}
	defer eventSink.Close()

	ring := otel.NewRingBuffer(otel.DefaultRingSize)
	events := otel.NewLogger(eventSink)
	events.SetRingBuffer(ring)
	defer events.Close()

	events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindStartup, Comp: "main", Msg: cfg.Server.BaseURL})
	logging.Info("movierec starting", "server", cfg.Server.BaseURL, "session", events.SessionID())

	client := api.NewClient(cfg.Server.BaseURL, cfg.Server.Timeout, api.WithRateLimit(cfg.Server.RatePerSecond))

	var record func(ctx context.Context, movie string, results []api.Recommendation) error
	if cfg.History.Enabled {
		st, err := history.Open(cfg.HistoryPath())
		if err != nil {
			// History is optional; the client works without it.
			logging.Warn("history disabled", "path", cfg.HistoryPath(), "err", err)
			events.Error(otel.KindHistoryError, "main", err)
		} else {
			defer st.Close()
			record = func(ctx context.Context, movie string, results []api.Recommendation) error {
				_, err := st.Record(ctx, movie, results)
				return err
			}
		}
	}

	model := ui.New(ui.Config{
		Backend:     client,
		Record:      record,
		Debounce:    cfg.Autocomplete.Debounce,
		MinQueryLen: cfg.Autocomplete.MinQueryLen,
		Events:      events,
		Ring:        ring,
		Title:       client.BaseURL(),
	})
	defer model.Close()

	var opts []tea.ProgramOption
	if cfg.UI.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}

	p := tea.NewProgram(model, opts...)
	if _, err := p.Run(); err != nil {
		logging.Error("Application error", "error", err)
		events.Error(otel.KindError, "main", err)
		events.Close()
		fatal("Error: %v", err)
	}

	events.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindShutdown, Comp: "main"})
	logging.Info("movierec exiting normally")
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
