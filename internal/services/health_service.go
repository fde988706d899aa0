package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"
)

// HealthService provides health check functionality.
type HealthService struct {
	version     string
	buildTime   string
	datasetPath string
	startTime   time.Time
	logger      *slog.Logger
}

// HealthStatus represents the health status response.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// CheckResult represents an individual health check.
type CheckResult struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a new health service.
func NewHealthService(version, buildTime, datasetPath string, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &HealthService{
		version:     version,
		buildTime:   buildTime,
		datasetPath: datasetPath,
		startTime:   time.Now(),
		logger:      logger.With(slog.String("component", "health_service")),
	}
}

// Check reports overall health. The dashboard is degraded when the dataset
// file is not readable, since every page depends on it.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": time.Since(s.startTime).Seconds(),
			"build_time":     s.buildTime,
		},
		Checks: make(map[string]CheckResult),
	}

	if _, err := os.Stat(s.datasetPath); err != nil {
		status.Status = "degraded"
		status.Checks["dataset"] = CheckResult{
			Status:  "down",
			Message: "dataset file is missing or unreadable: " + s.datasetPath,
		}
		s.logger.WarnContext(ctx, "health check found dataset unavailable",
			slog.String("path", s.datasetPath),
			slog.String("error", err.Error()))
	} else {
		status.Checks["dataset"] = CheckResult{Status: "up"}
	}

	return status
}
