package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/docsite/internal/api"
	"github.com/dgallion1/docsite/internal/config"
	"github.com/dgallion1/docsite/internal/content"
	"github.com/dgallion1/docsite/internal/markdown"
	"github.com/dgallion1/docsite/internal/site"
	"github.com/spf13/afero"
)

func main() {
	cfg := config.Load()
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := []content.Option{content.WithSectionOrder(cfg.SectionOrder)}
	if cfg.SkipUnreadable {
		opts = append(opts, content.WithSkipUnreadable(log))
	}
	loader := content.NewLoader(afero.NewOsFs(), cfg.ContentRoot, opts...)
	renderer := markdown.NewRenderer(markdown.WithCodeStyle(cfg.CodeStyle))
	st := site.New(loader, renderer, cfg.Search(), log)

	if _, err := st.Load(ctx); err != nil {
		log.Error("initial content load failed", "error", err)
		os.Exit(1)
	}

	var watcher *site.Watcher
	if cfg.WatchContent {
		watcher = site.NewWatcher(st, cfg.ContentRoot, cfg.WatchDebounce, log)
		if err := watcher.Start(ctx); err != nil {
			log.Error("content watcher failed to start", "error", err)
			os.Exit(1)
		}
	}

	srv := api.NewServer(st, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		if watcher != nil {
			watcher.Stop()
		}

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting docsite",
		"port", cfg.Port,
		"content_root", cfg.ContentRoot,
		"watch", cfg.WatchContent,
		"reload_api", cfg.AdminAPIKey != "",
	)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
