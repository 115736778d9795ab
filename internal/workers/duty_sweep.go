package workers

import (
	"context"
	"time"

	"firewatch/internal/services"
	"firewatch/internal/utils"
	"firewatch/pkg/logger"
)

// DutySweepWorker runs the automatic deactivation sweep once a day at the
// sweep hour, in the server's local time.
type DutySweepWorker struct {
	unitService services.UnitService
	logger      *logger.Logger
	interval    time.Duration
	now         func() time.Time
}

func NewDutySweepWorker(unitService services.UnitService, logger *logger.Logger) *DutySweepWorker {
	return &DutySweepWorker{
		unitService: unitService,
		logger:      logger,
		interval:    time.Minute,
		now:         time.Now,
	}
}

// Start blocks until ctx is cancelled. It wakes every minute and fires the
// sweep during the first tick at or after the sweep hour each day.
func (w *DutySweepWorker) Start(ctx context.Context) {
	w.logger.Info("Duty sweep worker started")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var lastRun time.Time

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Duty sweep worker stopped")
			return
		case <-ticker.C:
			now := w.now()
			if !w.due(now, lastRun) {
				continue
			}
			lastRun = now

			result, err := w.unitService.AutoDeactivateSweep(ctx)
			if err != nil {
				w.logger.WithError(err).Error("Scheduled duty sweep failed")
				continue
			}
			w.logger.WithFields(map[string]interface{}{
				"deactivated": result.DeactivatedCount,
				"failed":      result.FailedCount,
			}).Info("Scheduled duty sweep finished")
		}
	}
}

// due reports whether a sweep should fire: at or past the sweep hour, and
// not yet run today.
func (w *DutySweepWorker) due(now, lastRun time.Time) bool {
	if now.Hour() < utils.SweepDeactivationHour {
		return false
	}
	if lastRun.IsZero() {
		return true
	}
	return utils.StartOfDay(now).After(utils.StartOfDay(lastRun))
}
