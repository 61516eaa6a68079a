package jobs

import (
	"fmt"
	"log/slog"

	"reparto/internal/core/application/usecases/commands"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	manifestExpiryJob *ManifestExpiryJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	expireManifestsHandler commands.ExpireManifestsCommandHandler,
	expirySchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		manifestExpiryJob: NewManifestExpiryJob(expireManifestsHandler, expirySchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.manifestExpiryJob.Start(); err != nil {
		return fmt.Errorf("failed to start manifest expiry job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.manifestExpiryJob.Stop()
}
