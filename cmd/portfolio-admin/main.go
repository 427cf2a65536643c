// Command portfolio-admin is a terminal dashboard for managing the
// portfolio site's projects and profile through its REST API.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/DongjuLee0528/portfolio-admin/internal/api"
	"github.com/DongjuLee0528/portfolio-admin/internal/app"
	"github.com/DongjuLee0528/portfolio-admin/internal/content"
	"github.com/DongjuLee0528/portfolio-admin/internal/model"
	"github.com/DongjuLee0528/portfolio-admin/internal/notify"
	"github.com/DongjuLee0528/portfolio-admin/internal/session"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	baseURL := flag.String("url", "", "backend base URL (overrides config)")
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}

	logger, closeLog, err := newLogger(cfg.LogFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	sess := session.NewManager(session.NewKeyringStore(), logger)
	client := api.NewClient(cfg.BaseURL, sess, time.Duration(cfg.TimeoutSec)*time.Second)
	sess.UseAuthAPI(client)

	notices := notify.NewCenter()
	store := content.NewStore(client, notices, logger)
	refresher := content.NewRefresher(store, time.Duration(cfg.RefreshSec)*time.Second)

	logger.Info("starting portfolio-admin", "base_url", cfg.BaseURL)

	p := tea.NewProgram(
		app.New(store, sess, client, notices, refresher),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// newLogger logs to the configured file, or discards everything. The
// TUI owns the terminal, so logs never go to stdout/stderr while the
// program runs.
func newLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	return logger, func() { f.Close() }, nil
}
