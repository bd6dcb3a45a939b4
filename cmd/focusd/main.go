package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikitabhat/focusd/internal/scheduler"
	"github.com/nikitabhat/focusd/internal/storage"
	"github.com/nikitabhat/focusd/internal/update"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "focusd failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := update.RuntimeConfigFromEnv(update.DefaultRuntimeConfig())

	var repo storage.Repository
	if cfg.DBPath != "" {
		sqlRepo, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		defer sqlRepo.Close()
		if err := storage.MigrateUp(sqlRepo.DB()); err != nil {
			return fmt.Errorf("migrate database: %w", err)
		}
		repo = sqlRepo
	}

	alarms := scheduler.NewEngine(cfg.AlarmBuffer)
	alarms.Start()
	defer alarms.Stop()

	program := tea.NewProgram(update.NewModelWithConfig(alarms, repo, cfg))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}
