package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/sandeepkv93/remindd/internal/config"
	"github.com/sandeepkv93/remindd/internal/session"
	"github.com/sandeepkv93/remindd/internal/storage"
	"github.com/sandeepkv93/remindd/internal/update"
)

func main() {
	configPath := flag.String("config", config.DefaultPath(), "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "remindd: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg.DataFile)

	store := storage.NewFileStore(cfg.DataFile, log)
	history, err := storage.OpenHistory(cfg.HistoryFile)
	if err != nil {
		// Notification history is informational; run without it.
		log.Warn().Err(err).Str("path", cfg.HistoryFile).Msg("cannot open notification history")
		history = nil
	} else {
		defer history.Close()
	}

	sess := session.New(store, history, time.Duration(cfg.TickIntervalSec)*time.Second, log)
	sess.Start()
	defer sess.Stop()

	m := update.NewModelWithNotifier(sess, cfg.DesktopNotifications, update.ExecDesktopNotifier{})
	program := tea.NewProgram(m)
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "remindd failed: %v\n", err)
		os.Exit(1)
	}
}

// newLogger writes structured logs next to the data file; the terminal
// belongs to the TUI.
func newLogger(dataFile string) zerolog.Logger {
	dir := filepath.Dir(dataFile)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return zerolog.Nop()
	}
	f, err := os.OpenFile(filepath.Join(dir, "remindd.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop()
	}
	return zerolog.New(f).With().Timestamp().Logger()
}
