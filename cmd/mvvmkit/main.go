// Package main is the entry point for the mvvmkit demo.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"mvvmkit-go/application"
	"mvvmkit-go/core/eventbus"
	"mvvmkit-go/domain/scene"
	"mvvmkit-go/infrastructure/config"
	"mvvmkit-go/infrastructure/logging"
	"mvvmkit-go/infrastructure/repository"
	"mvvmkit-go/presentation"
	"mvvmkit-go/resources"
)

// frameInterval paces the command queue flush in queue mode.
const frameInterval = 16 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "path to a YAML or TOML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		os.Stderr.WriteString("Failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Initialize logging (dev: console only, prod: rotating file)
	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(cfg.Log.Level)
	logCfg.Dir = cfg.Log.Dir
	logCfg.JSON = cfg.Log.JSON
	logger, closeLog, err := logging.Setup(logCfg)
	if err != nil {
		os.Stderr.WriteString("Failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closeLog()

	logger.Info("Starting mvvmkit", "dispatcher", cfg.Dispatcher.Mode)

	ctx := context.Background()

	// Snapshot persistence: MongoDB when enabled, in-memory otherwise
	var repo scene.SnapshotRepository = repository.NewMemorySnapshotRepository()
	if cfg.Mongo.Enabled {
		mongoDB, err := repository.NewMongoDB(ctx, repository.MongoDBConfigFrom(cfg.Mongo), logger)
		if err != nil {
			logger.Error("Failed to initialize MongoDB", "error", err)
			os.Exit(1)
		}
		defer mongoDB.Close(ctx)
		repo = repository.NewMongoSnapshotRepository(mongoDB, logger)
	}

	eventBus := eventbus.New(cfg.EventBus.Buffer, logger)
	defer eventBus.Close()

	manager := NewLobbyManager(logger)
	sceneCtx := scene.NewContext("lobby", manager)

	dispatcher, queue, err := application.NewDispatcher(cfg.Dispatcher, eventBus, sceneCtx.ID(), logger)
	if err != nil {
		logger.Error("Failed to build dispatcher", "error", err)
		os.Exit(1)
	}

	controller := application.NewController(&application.ControllerConfig{
		Name:       "LobbyController",
		Context:    sceneCtx,
		Dispatcher: dispatcher,
		Binder:     counterBinder{logger: logger},
		EventBus:   eventBus,
		Logger:     logger,
	})

	// Validate the manager against its manifest
	loader := scene.NewLoader()
	if cfg.ManifestDir != "" {
		err = loader.LoadFromFS(os.DirFS(cfg.ManifestDir), ".")
	} else {
		err = loader.LoadFromFS(resources.ManifestFiles, resources.ManifestDir)
	}
	if err != nil {
		logger.Error("Failed to load manifests", "error", err)
		os.Exit(1)
	}
	if mf := loader.Get("Lobby"); mf != nil {
		if err := controller.ValidateManifest(mf); err != nil {
			logger.Error("Lobby manager is incomplete", "error", err)
			os.Exit(1)
		}
	}
	logger.Info("Manifests loaded", "count", loader.Count())

	if _, err := controller.Create("main"); err != nil {
		logger.Error("Failed to create view model", "error", err)
		os.Exit(1)
	}

	bridge := presentation.NewUIEventBridge(&presentation.BridgeConfig{
		Controller: controller,
		EventBus:   eventBus,
		Logger:     logger,
		ContextID:  sceneCtx.ID(),
	})
	defer bridge.Close()

	fyneApp := app.New()
	fyneApp.SetIcon(resources.GetAppIcon())

	mainWindow := presentation.NewMainWindow(&presentation.MainWindowConfig{
		App:        fyneApp,
		Bridge:     bridge,
		Logger:     logger,
		Title:      "mvvmkit - lobby",
		Repository: repo,
		Messages:   manager.Messages(),
	})
	defer mainWindow.Cleanup()

	if queue != nil {
		stop := make(chan struct{})
		defer close(stop)
		defer queue.Close()
		go pumpQueue(queue.Flush, stop, logger.With("component", "frame_pump"))
	}

	mainWindow.Show()
	fyneApp.Run()

	// Start shutdown timeout - force exit after 10 seconds if cleanup hangs
	go func() {
		time.Sleep(10 * time.Second)
		logger.Warn("Shutdown timeout, forcing exit")
		os.Exit(0)
	}()

	logger.Info("Application shutdown complete")
}

// pumpQueue flushes queued commands on the UI thread once per frame.
func pumpQueue(flush func() error, stop <-chan struct{}, logger *slog.Logger) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fyne.Do(func() {
				if err := flush(); err != nil {
					logger.Warn("Queued commands failed", "error", err)
				}
			})
		}
	}
}
