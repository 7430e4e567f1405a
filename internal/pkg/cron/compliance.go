package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/compliance-risk-go/internal/pkg/utils"
)

// Triggerer is the engine entry point the scheduled job feeds. The
// coordinator behind it enforces single-flight semantics.
type Triggerer interface {
	Trigger(scope, reason string)
}

type ComplianceJobs struct {
	coordinator Triggerer
}

func NewComplianceJobs(coordinator Triggerer) *ComplianceJobs {
	return &ComplianceJobs{coordinator: coordinator}
}

func (j *ComplianceJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	scheduler.AddJob("scheduled_compliance_scan", interval, j.ScheduledDeepScan)
}

// ScheduledDeepScan queues a full scan of the current month. Only runs
// during the 02:00-02:59 UTC window so an hourly tick behaves like a
// nightly schedule.
func (j *ComplianceJobs) ScheduledDeepScan(ctx context.Context) error {
	if time.Now().UTC().Hour() != 2 {
		return nil
	}

	monthKey := utils.CurrentMonthKey()
	slog.Info("Cron: Queueing scheduled compliance scan", "month", monthKey)
	j.coordinator.Trigger(monthKey, "scheduled")
	return nil
}
