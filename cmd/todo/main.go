package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"todo/internal/config"
	"todo/internal/storage"
	"todo/internal/ui"
)

func main() {
	configPath := config.ResolveConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Printf("failed to open log: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	store, err := openStore(cfg.Store)
	if err != nil {
		fmt.Printf("failed to open task store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	logger.WithFields(logrus.Fields{"config": configPath, "store": cfg.Store, "ui": cfg.UI}).Info("starting")
	if err := ui.Run(context.Background(), store, cfg, logger); err != nil {
		fmt.Printf("error running program: %v\n", err)
		os.Exit(1)
	}
}

func openStore(kind string) (storage.Store, error) {
	if kind == config.StoreSQLite {
		return storage.OpenSQLite()
	}
	return storage.NewMemory(), nil
}

// newLogger logs to cfg.LogFile, or nowhere; the terminal belongs to the
// session.
func newLogger(cfg config.Config) (*logrus.Logger, func(), error) {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	if lvl, err := logrus.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	if cfg.LogFile == "" {
		return logger, func() {}, nil
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	logger.SetOutput(f)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, DisableColors: true})
	return logger, func() { f.Close() }, nil
}
