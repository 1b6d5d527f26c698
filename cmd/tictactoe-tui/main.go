package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rocketscienceinc/tictactoe/internal/config"
	"github.com/rocketscienceinc/tictactoe/internal/tui"
)

// main - runs a hot-seat game in the terminal.
func main() {
	conf, err := initConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logFile, err := tea.LogToFile(conf.LogFile, "tictactoe")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	logger := slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: config.ParseLogLevel(conf.LogLevel)}))
	logger.Info("starting terminal game")

	if _, err = tea.NewProgram(tui.New(), tea.WithAltScreen()).Run(); err != nil {
		logger.Error("terminal game failed", "error", err)
		fmt.Fprintf(os.Stderr, "terminal game failed: %v\n", err)
		os.Exit(1) //nolint: gocritic // the log file is flushed on every write
	}

	logger.Info("terminal game closed")
}

// initialize config.
func initConfig() (*config.Config, error) {
	baseDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	return config.Load(filepath.Join(baseDir, "config.yml"))
}
