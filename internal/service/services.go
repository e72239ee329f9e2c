package service

import (
	"fmt"
	"log/slog"

	"github.com/xolan/clientclock/internal/config"
	"github.com/xolan/clientclock/internal/kv"
	"github.com/xolan/clientclock/internal/storage"
)

// Services holds all service instances used by the application
type Services struct {
	Clients *ClientService
	Timer   *TimerService
	Config  *ConfigService
	Storage *storage.Storage
	Logger  *slog.Logger
}

// NewServices opens the default file store and config. The logger is built
// from the loaded config by newLogger.
func NewServices(newLogger func(config.Config) *slog.Logger) (*Services, error) {
	storePath, err := kv.GetStorePath()
	if err != nil {
		return nil, err
	}

	configPath, err := config.GetConfigPath()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, err
	}

	return NewServicesWithStore(kv.NewFileStore(storePath), configPath, cfg, newLogger(cfg))
}

// NewServicesWithStore wires the services over an arbitrary store (useful
// for testing and ephemeral sessions). An empty configPath disables config
// writes.
func NewServicesWithStore(store kv.Store, configPath string, cfg config.Config, logger *slog.Logger) (*Services, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	st := storage.New(store)
	if err := st.InitialiseClients(); err != nil {
		return nil, fmt.Errorf("failed to initialise store: %w", err)
	}

	clients := NewClientService(st, logger)
	return &Services{
		Clients: clients,
		Timer:   NewTimerService(st, clients, cfg.Accounting(), logger),
		Config:  NewConfigService(configPath, cfg),
		Storage: st,
		Logger:  logger,
	}, nil
}
