package reconciler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magiclogon/attendance-backend-go/internal/domain/presence"
)

// Runner drives the two periodic jobs: the provisioner once per day at a
// configured wall-clock time, the sweeper on a fixed interval.
type Runner struct {
	provisioner *Provisioner
	sweeper     *Sweeper
	logger      *slog.Logger

	provisionHour   int
	provisionMinute int
	sweepInterval   time.Duration
}

// NewRunner builds a runner. provisionAt is local wall-clock "HH:MM"; pick a
// time before the organization's earliest shift so records exist when the
// first employees arrive.
func NewRunner(
	provisioner *Provisioner,
	sweeper *Sweeper,
	provisionAt string,
	sweepInterval time.Duration,
	logger *slog.Logger,
) (*Runner, error) {
	at, err := time.Parse("15:04", provisionAt)
	if err != nil {
		return nil, fmt.Errorf("invalid provision time %q: %w", provisionAt, err)
	}

	return &Runner{
		provisioner:     provisioner,
		sweeper:         sweeper,
		logger:          logger,
		provisionHour:   at.Hour(),
		provisionMinute: at.Minute(),
		sweepInterval:   sweepInterval,
	}, nil
}

// Run blocks until ctx is done. Both jobs are idempotent, so a process
// restart can rerun either without harm; the one-per-day guard on the
// provisioner only avoids redundant passes within a single process.
func (r *Runner) Run(ctx context.Context) {
	minuteTicker := time.NewTicker(time.Minute)
	defer minuteTicker.Stop()

	sweepTicker := time.NewTicker(r.sweepInterval)
	defer sweepTicker.Stop()

	r.logger.Info("reconciler: started",
		"provision_at", fmt.Sprintf("%02d:%02d", r.provisionHour, r.provisionMinute),
		"sweep_interval", r.sweepInterval.String())

	var lastProvisioned time.Time
	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler: stopped")
			return

		case now := <-minuteTicker.C:
			day := presence.DateOf(now)
			if now.Hour() != r.provisionHour || now.Minute() != r.provisionMinute || day.Equal(lastProvisioned) {
				continue
			}
			if err := r.provisioner.ProvisionDay(ctx, now); err != nil {
				r.logger.Error("reconciler: provisioning pass failed", "error", err)
				continue
			}
			lastProvisioned = day

		case now := <-sweepTicker.C:
			if err := r.sweeper.Sweep(ctx, now); err != nil {
				r.logger.Error("reconciler: sweep pass failed", "error", err)
			}
		}
	}
}
