// Package provider wires the platform backends, the settings storage and the
// HTTP router into a running emulator provider.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shamanec/GADS-emulator-manager/android_emu"
	"github.com/shamanec/GADS-emulator-manager/config"
	"github.com/shamanec/GADS-emulator-manager/db"
	"github.com/shamanec/GADS-emulator-manager/devices"
	"github.com/shamanec/GADS-emulator-manager/events"
	"github.com/shamanec/GADS-emulator-manager/gateway"
	"github.com/shamanec/GADS-emulator-manager/harmony_emu"
	"github.com/shamanec/GADS-emulator-manager/ios_sim"
	"github.com/shamanec/GADS-emulator-manager/logger"
	"github.com/shamanec/GADS-emulator-manager/models"
	"github.com/shamanec/GADS-emulator-manager/router"
	"github.com/shamanec/GADS-emulator-manager/settings"
	"github.com/shamanec/GADS-emulator-manager/util"
	"github.com/shamanec/GADS-emulator-manager/validation"
)

// Storage persists both the settings and the emulator usage
type Storage interface {
	gateway.SettingsGateway
	devices.UsageLedger
}

type Provider struct {
	Config      config.ProviderConfig
	Logger      *logger.CustomLogger
	Broadcaster *events.Broadcaster
	Settings    *settings.Store
	Registry    *devices.Registry
	USB         *devices.USBScanner

	storage   Storage
	fileStore *db.FileStore
	android   *android_emu.Emulators

	mu        sync.RWMutex
	persisted models.Settings
}

// ResolveFolder makes the provider folder absolute, empty means the working dir
func ResolveFolder(folder string) (string, error) {
	if folder == "" || folder == "." {
		projectDir, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get project dir: %w", err)
		}
		return projectDir, nil
	}
	return filepath.Abs(folder)
}

// OpenStorage returns the settings storage selected in the config
func OpenStorage(cfg config.ProviderConfig) (Storage, *db.FileStore, error) {
	switch cfg.Storage {
	case config.StorageRethinkDB:
		store, err := db.ConnectRethinkStore(cfg.RethinkDB, cfg.Database)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	default:
		store := db.NewFileStore(cfg.SettingsPath())
		return store, store, nil
	}
}

func New(cfg config.ProviderConfig, storage Storage, fileStore *db.FileStore, log *logger.CustomLogger, runner util.Runner) *Provider {
	p := &Provider{
		Config:      cfg,
		Logger:      log,
		Broadcaster: events.NewBroadcaster(),
		storage:     storage,
		fileStore:   fileStore,
		persisted:   models.DefaultSettings(),
	}

	engine := validation.NewEngine(gateway.LocalProber{}, log)
	p.Settings = settings.NewStore(storage, engine, log,
		settings.WithBroadcaster(p.Broadcaster),
		settings.WithPersistHook(p.setPersisted))

	simulators := ios_sim.New(runner, p.PersistedSettings, log)

	androidEmulators := android_emu.New(runner, p.PersistedSettings, log)
	androidEmulators.ProcessLogsDir = cfg.ProcessLogsDir()
	p.android = androidEmulators

	harmonyEmulators := harmony_emu.New(runner, p.PersistedSettings, log)
	harmonyEmulators.ProcessLogsDir = cfg.ProcessLogsDir()

	p.Registry = devices.NewRegistry(map[models.Platform]gateway.Backend{
		models.PlatformIOS:     simulators,
		models.PlatformAndroid: androidEmulators,
		models.PlatformHarmony: harmonyEmulators,
	}, log, devices.WithUsageLedger(storage), devices.WithBroadcaster(p.Broadcaster))

	p.USB = devices.NewUSBScanner(runner, p.PersistedSettings, log)
	return p
}

// PersistedSettings are the last loaded or saved settings, the backends use
// these instead of values still being edited
func (p *Provider) PersistedSettings() models.Settings {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.persisted
}

// LoadSettings loads the store, a successful load also replaces the persisted settings
func (p *Provider) LoadSettings(ctx context.Context) {
	p.Settings.Load(ctx)
}

// setPersisted is called by the store with exactly what it loaded or saved
func (p *Provider) setPersisted(snapshot models.Settings) {
	p.mu.Lock()
	p.persisted = snapshot
	p.mu.Unlock()
}

func (p *Provider) Handler() *gin.Engine {
	return router.HandleRequests(&router.Handler{
		Registry:    p.Registry,
		Settings:    p.Settings,
		USB:         p.USB,
		Logcat:      p.android,
		Broadcaster: p.Broadcaster,
		Logger:      p.Logger,
		LogFile:     filepath.Join(p.Config.ProviderFolder, "logs", "provider.log"),
	})
}

// Serve runs the HTTP server until ctx is cancelled
func (p *Provider) Serve(ctx context.Context) error {
	p.LoadSettings(ctx)

	if p.fileStore != nil && p.Config.WatchSettings {
		err := db.WatchSettingsFile(ctx, p.fileStore, p.Logger, func() {
			p.Settings.Load(ctx)
		})
		if err != nil {
			p.Logger.LogWarn("provider", fmt.Sprintf("Could not watch settings file, external changes need a reload - %s", err))
		}
	}

	server := &http.Server{
		Addr:    ":" + p.Config.Port,
		Handler: p.Handler(),
	}

	errs := make(chan error, 1)
	go func() {
		p.Logger.LogInfo("provider", fmt.Sprintf("Starting provider on port:%v", p.Config.Port))
		errs <- server.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
