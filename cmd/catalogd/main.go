package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/meridian-data/catalogd/internal/events"
	"github.com/meridian-data/catalogd/internal/pkg/logctx"
	"github.com/meridian-data/catalogd/internal/rpc"
	"github.com/meridian-data/catalogd/internal/service"
	"github.com/meridian-data/catalogd/internal/storage"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "Path to YAML configuration file")
	port := flag.Int("port", 0, "TCP port to listen on (overrides config)")
	socketPath := flag.String("socket", "", "Unix domain socket path (overrides config)")
	dbPath := flag.String("db", "", "Path to the catalog database (overrides config)")
	logLevelFlag := flag.String("log-level", "", "Log level: debug|info|warn|error (overrides config)")
	flag.Parse()

	config, err := loadConfig(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", slog.Any("err", err))
		return 1
	}
	if *port != 0 {
		config.Listen.Port = *port
		config.Listen.Socket = ""
	}
	if *socketPath != "" {
		config.Listen.Socket = *socketPath
	}
	if *dbPath != "" {
		config.Database.Path = *dbPath
	}
	if *logLevelFlag != "" {
		config.Log.Level = *logLevelFlag
	}

	level := parseLevel(config.Log.Level, slog.LevelInfo)
	logs := &logOutput{path: config.Log.File}
	defer logs.Close()
	slog.SetDefault(logctx.WrapLogger(logs.Open(level)))

	// Reopen the log file on SIGHUP after external rotation.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		for range hup {
			logger, ok := logs.Reopen(level)
			if !ok {
				continue
			}
			slog.SetDefault(logctx.WrapLogger(logger))
			slog.Info("log file reopened", slog.String("path", config.Log.File))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	slog.InfoContext(ctx, "opening catalog store", slog.String("path", config.Database.Path))
	store, err := storage.OpenTableStore(config.Database.Path)
	if err != nil {
		slog.ErrorContext(ctx, "failed to open catalog store", slog.Any("err", err))
		return 1
	}
	defer func() {
		_ = store.Close()
	}()

	hub := events.NewHub()
	catalog := service.NewCatalogService(store, hub, config.Display)
	handler := rpc.NewHandler(catalog)

	var server *rpc.Server
	if config.Listen.Socket != "" {
		server, err = rpc.NewUnixServer(ctx, handler, hub, config.Listen.Socket)
		if err != nil {
			slog.ErrorContext(ctx, "failed to create unix socket server", slog.Any("err", err))
			return 1
		}
		slog.InfoContext(ctx, "server started", slog.String("transport", "unix"), slog.String("socket", config.Listen.Socket))
	} else {
		server, err = rpc.NewServer(ctx, handler, hub, config.Listen.Port)
		if err != nil {
			slog.ErrorContext(ctx, "failed to create TCP server", slog.Any("err", err))
			return 1
		}
		slog.InfoContext(ctx, "server started", slog.String("transport", "tcp"), slog.Int("port", config.Listen.Port))
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down")
	if err := server.Shutdown(); err != nil {
		slog.ErrorContext(ctx, "server forced to shutdown", slog.Any("err", err))
		return 1
	}
	slog.InfoContext(ctx, "server stopped")
	return 0
}

func loadConfig(path string) (*storage.Config, error) {
	if path == "" {
		return storage.DefaultConfig(), nil
	}
	return storage.NewConfigLoader(path).Load()
}
