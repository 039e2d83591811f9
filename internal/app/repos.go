package app

import (
	"context"
)

// AdminBootstrapper creates the initial cms administrator.
type AdminBootstrapper interface {
	// EnsureAdmin creates the administrator with the given credentials unless the username is taken already.
	EnsureAdmin(ctx context.Context, username, password string) (created bool, err error)
}

// BackgroundWorker is implemented by components that run periodic jobs.
type BackgroundWorker interface {
	// StartBackgroundJobs starts the jobs, they stop once the context is cancelled.
	StartBackgroundJobs(ctx context.Context)
}
