package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	app "github.com/rocketscienceinc/tictactoe/internal"
	"github.com/rocketscienceinc/tictactoe/internal/config"
)

const configFile = "config.yml"

// main serves the game over HTTP and WebSocket until SIGINT or SIGTERM.
func main() {
	defer func() {
		if err := recover(); err != nil {
			fmt.Fprintf(os.Stderr, "tictactoe: %v\n", err)
			os.Exit(1)
		}
	}()

	conf := loadConfig()
	logger := newLogger(conf)

	logger.Info("config loaded", "storage", conf.Storage, "session_ttl", conf.SessionTTL)

	if err := app.RunApp(logger, conf); err != nil {
		panic(fmt.Errorf("app run failed: %w", err))
	}
}

// loadConfig reads config.yml from the working directory; env vars override it.
func loadConfig() *config.Config {
	dir, err := os.Getwd()
	if err != nil {
		panic(fmt.Errorf("failed to get working directory: %w", err))
	}

	return config.MustLoad(filepath.Join(dir, configFile))
}

func newLogger(conf *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{Level: config.ParseLogLevel(conf.LogLevel)}

	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}
