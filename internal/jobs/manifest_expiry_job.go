package jobs

import (
	"context"
	"log/slog"

	"reparto/internal/core/application/usecases/commands"
	"reparto/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// ManifestExpiryJob runs the expiry sweep on a schedule, closing delivery
// sheets left open past their operating day. The sweep itself is idempotent,
// so an overlapping or repeated run is harmless.
type ManifestExpiryJob struct {
	handler  commands.ExpireManifestsCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewManifestExpiryJob creates the expiry job with the given cron schedule.
// The schedule is evaluated in the operation's local timezone; the usual
// setting runs shortly after local midnight.
func NewManifestExpiryJob(
	handler commands.ExpireManifestsCommandHandler,
	schedule string,
	logger *slog.Logger,
) *ManifestExpiryJob {
	return &ManifestExpiryJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithLocation(kernel.OperatingZone)),
		logger:   logger.With("component", "manifest_expiry_job"),
	}
}

// Start schedules the sweep and runs it once immediately, so sheets that
// expired while the service was down are closed without waiting a day.
func (j *ManifestExpiryJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Manifest expiry job started", "schedule", j.schedule)

	go j.run()
	return nil
}

// Stop stops the expiry job.
func (j *ManifestExpiryJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Manifest expiry job stopped")
}

func (j *ManifestExpiryJob) run() {
	ctx := context.Background()

	cmd, err := commands.NewExpireManifestsCommand()
	if err != nil {
		j.logger.ErrorContext(ctx, "Manifest expiry job failed to build command", "error", err)
		return
	}

	closed, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Manifest expiry job failed", "error", err)
		return
	}

	if closed > 0 {
		j.logger.InfoContext(ctx, "Expired manifests closed", "count", closed)
	}
}
