package jobs

import (
	"context"
	"time"

	"hotelhub/dto"
	"hotelhub/services/logger"

	"github.com/robfig/cron/v3"
)

const (
	priceAlertLockKey = "jobs:price-alert"
	priceAlertLease   = 5 * time.Minute
)

// PriceAlertChecker makes one pass over enabled price alerts.
type PriceAlertChecker interface {
	CheckPriceAlerts(ctx context.Context) ([]dto.PriceAlert, error)
}

// Locker grants a short lease so one replica runs a scheduled pass.
type Locker interface {
	TryLock(ctx context.Context, key string, ttl time.Duration) bool
}

// Notifier delivers a fired alert to its user.
type Notifier interface {
	NotifyPriceAlert(alert dto.PriceAlert) error
}

type PriceAlertJob struct {
	Checker  PriceAlertChecker
	Locker   Locker
	Notifier Notifier
	Logger   logger.Logger
}

// Run performs one pass and returns how many alerts were delivered.
func (j *PriceAlertJob) Run(ctx context.Context) int {
	if j.Locker != nil && !j.Locker.TryLock(ctx, priceAlertLockKey, priceAlertLease) {
		j.Logger.Debug("price alert pass skipped, lease held elsewhere")
		return 0
	}

	alerts, err := j.Checker.CheckPriceAlerts(ctx)
	if err != nil {
		j.Logger.Error("price alert pass: %v", err)
		return 0
	}

	return j.Deliver(alerts)
}

// Deliver pushes alerts to their users and returns how many went out.
func (j *PriceAlertJob) Deliver(alerts []dto.PriceAlert) int {
	if j.Notifier == nil {
		return 0
	}
	sent := 0
	for _, a := range alerts {
		if err := j.Notifier.NotifyPriceAlert(a); err != nil {
			j.Logger.Error("price alert notify user %d hotel %d: %v", a.UserID, a.HotelID, err)
			continue
		}
		sent++
	}
	return sent
}

// InitCronJobs schedules the price alert pass and starts the scheduler.
func InitCronJobs(c *cron.Cron, spec string, job *PriceAlertJob) error {
	if spec == "" {
		spec = "@every 1h"
	}
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), priceAlertLease)
		defer cancel()
		start := time.Now()
		n := job.Run(ctx)
		job.Logger.Info("price alert pass done: sent=%d took=%s", n, time.Since(start))
	})
	if err != nil {
		return err
	}

	c.Start()
	job.Logger.Info("Cron jobs initialized successfully")
	return nil
}
