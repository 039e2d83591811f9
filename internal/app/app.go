package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	evbus "github.com/vardius/message-bus"

	"github.com/manqiyou/manqiyou/internal/config"
	"github.com/manqiyou/manqiyou/internal/domain"
)

// App bundles the startup and background behaviour of the service components.
type App struct {
	Config *config.Config
	bus    evbus.MessageBus

	admins  AdminBootstrapper
	workers []BackgroundWorker
}

// New creates the App and runs the startup tasks, like the creation of the default administrator.
func New(cfg *config.Config, bus evbus.MessageBus, admins AdminBootstrapper, workers ...BackgroundWorker) (
	*App,
	error,
) {
	a := &App{
		Config: cfg,
		bus:    bus,

		admins:  admins,
		workers: workers,
	}

	timeout := cfg.Advanced.StartupTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	startupContext, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	// Switch to admin user context
	startupContext = domain.SetUserInfo(startupContext, domain.SystemAdminContextUserInfo())

	if err := a.createDefaultAdmin(startupContext); err != nil {
		return nil, fmt.Errorf("failed to create default admin: %w", err)
	}

	return a, nil
}

// Startup starts the background jobs of all registered workers.
func (a *App) Startup(ctx context.Context) error {
	for _, worker := range a.workers {
		worker.StartBackgroundJobs(ctx)
	}

	return nil
}

func (a *App) createDefaultAdmin(ctx context.Context) error {
	if a.Config.Core.AdminUser == "" || a.admins == nil {
		slog.Debug("skipping default admin creation - admin user is blank")
		return nil // empty admin user - do not create
	}

	created, err := a.admins.EnsureAdmin(ctx, a.Config.Core.AdminUser, a.Config.Core.AdminPassword)
	if err != nil {
		return err
	}
	if !created {
		slog.Debug("skipping default admin creation - admin already exists")
		return nil
	}

	slog.Info("admin user created", "username", a.Config.Core.AdminUser)

	return nil
}
