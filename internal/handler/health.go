package handler

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/deppfellow/todos/internal/middleware"
	"github.com/deppfellow/todos/internal/server"
	"github.com/deppfellow/todos/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// HealthHandler serves the status endpoint used by uptime monitors and
// load balancers.
type HealthHandler struct {
	Handler
	healthService *service.HealthService
}

func NewHealthHandler(s *server.Server, healthService *service.HealthService) *HealthHandler {
	return &HealthHandler{
		Handler:       NewHandler(s),
		healthService: healthService,
	}
}

// CheckResult is the outcome of one dependency check.
type CheckResult struct {
	Status       string `json:"status"`
	ResponseTime string `json:"response_time"`
	Error        string `json:"error,omitempty"`
}

// HealthResponse is the status endpoint body.
type HealthResponse struct {
	Status      string                 `json:"status"`
	Timestamp   time.Time              `json:"timestamp"`
	Environment string                 `json:"environment"`
	Checks      map[string]CheckResult `json:"checks"`
}

// CheckHealth answers 200 when every configured check passes and 503
// otherwise. With health checks disabled it always reports healthy.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	response := HealthResponse{
		Status:      statusHealthy,
		Timestamp:   time.Now().UTC(),
		Environment: h.server.Config.Primary.Env,
		Checks:      make(map[string]CheckResult),
	}

	if h.healthService.Enabled() {
		for _, check := range h.healthService.Checks() {
			if check != "database" {
				continue
			}

			result := h.checkDatabase(c.Request().Context(), &logger)
			response.Checks[check] = result
			if result.Status != statusHealthy {
				response.Status = statusUnhealthy
			}
		}
	}

	if response.Status != statusHealthy {
		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordHealthCheckError(map[string]any{
			"check_type":        "overall",
			"error_type":        "overall_unhealthy",
			"total_duration_ms": time.Since(start).Milliseconds(),
		})

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	logger.Info().
		Dur("total_duration", time.Since(start)).
		Msg("health check passed")

	if err := c.JSON(http.StatusOK, response); err != nil {
		logger.Error().Err(err).Msg("failed to write JSON response")
		return fmt.Errorf("failed to write JSON response: %w", err)
	}

	return nil
}

func (h *HealthHandler) checkDatabase(ctx context.Context, logger *zerolog.Logger) CheckResult {
	dbStart := time.Now()

	if err := h.healthService.CheckDatabase(ctx); err != nil {
		elapsed := time.Since(dbStart)

		logger.Error().
			Err(err).
			Dur("response_time", elapsed).
			Msg("database health check failed")

		h.recordHealthCheckError(map[string]any{
			"check_type":       "database",
			"error_type":       "database_unhealthy",
			"response_time_ms": elapsed.Milliseconds(),
			"error_message":    err.Error(),
		})

		return CheckResult{
			Status:       statusUnhealthy,
			ResponseTime: elapsed.String(),
			Error:        err.Error(),
		}
	}

	elapsed := time.Since(dbStart)
	logger.Debug().
		Dur("response_time", elapsed).
		Msg("database health check passed")

	return CheckResult{
		Status:       statusHealthy,
		ResponseTime: elapsed.String(),
	}
}

// recordHealthCheckError sends a HealthCheckError event to New Relic.
func (h *HealthHandler) recordHealthCheckError(attributes map[string]any) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	attributes["operation"] = "health_check"
	app.RecordCustomEvent("HealthCheckError", attributes)
}
