package service

import (
	"context"

	"github.com/deppfellow/todos/internal/repository"
	"github.com/deppfellow/todos/internal/server"
)

// HealthService runs the dependency checks behind the status endpoint.
type HealthService struct {
	server *server.Server
	store  repository.Pinger
}

func NewHealthService(s *server.Server, store repository.Pinger) *HealthService {
	return &HealthService{
		server: s,
		store:  store,
	}
}

// Enabled reports whether dependency checks run at all.
func (s *HealthService) Enabled() bool {
	return s.server.Config.Observability.HealthChecks.Enabled
}

// Checks returns the names of the configured checks.
func (s *HealthService) Checks() []string {
	return s.server.Config.Observability.HealthChecks.Checks
}

// CheckDatabase pings the store, giving up after the configured timeout.
func (s *HealthService) CheckDatabase(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.server.Config.Observability.HealthChecks.Timeout)
	defer cancel()

	return s.store.Ping(ctx)
}
