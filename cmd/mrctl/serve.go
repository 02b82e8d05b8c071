package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abelbrown/movierec/internal/apitest"
	"github.com/charmbracelet/log"
)

func runServeFake() {
	fs := flag.NewFlagSet("serve-fake", flag.ExitOnError)
	addr := fs.String("addr", "127.0.0.1:5000", "Listen address")
	fs.Parse(os.Args[1:])

	logger := log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true, Prefix: "serve-fake"})

	srv := &http.Server{
		Addr:              *addr,
		Handler:           apitest.NewHandler(apitest.DefaultCatalog()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("listening", "addr", *addr, "titles", len(apitest.DefaultCatalog().Titles))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("serve failed", "err", err)
	}
	logger.Info("stopped")
}
