package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"hotelhub/dto"
	"hotelhub/services/logger"
)

type fakeChecker struct {
	alerts []dto.PriceAlert
	err    error
	calls  int
}

func (f *fakeChecker) CheckPriceAlerts(context.Context) ([]dto.PriceAlert, error) {
	f.calls++
	return f.alerts, f.err
}

type fakeLocker struct {
	held bool
	keys []string
}

func (f *fakeLocker) TryLock(_ context.Context, key string, _ time.Duration) bool {
	f.keys = append(f.keys, key)
	return !f.held
}

type fakeNotifier struct {
	failFor uint
	sent    []dto.PriceAlert
}

func (f *fakeNotifier) NotifyPriceAlert(a dto.PriceAlert) error {
	if a.UserID == f.failFor {
		return errors.New("no session")
	}
	f.sent = append(f.sent, a)
	return nil
}

func TestPriceAlertJobRun(t *testing.T) {
	checker := &fakeChecker{alerts: []dto.PriceAlert{
		{UserID: 1, HotelID: 10},
		{UserID: 2, HotelID: 20},
		{UserID: 3, HotelID: 30},
	}}
	notifier := &fakeNotifier{failFor: 2}
	locker := &fakeLocker{}
	job := &PriceAlertJob{Checker: checker, Locker: locker, Notifier: notifier, Logger: logger.Nop{}}

	if got := job.Run(context.Background()); got != 2 {
		t.Errorf("sent = %d, want 2", got)
	}
	if len(notifier.sent) != 2 || notifier.sent[1].UserID != 3 {
		t.Errorf("delivered = %+v", notifier.sent)
	}
	if len(locker.keys) != 1 || locker.keys[0] != priceAlertLockKey {
		t.Errorf("lock keys = %v", locker.keys)
	}
}

func TestPriceAlertJobSkipsWithoutLease(t *testing.T) {
	checker := &fakeChecker{alerts: []dto.PriceAlert{{UserID: 1}}}
	job := &PriceAlertJob{Checker: checker, Locker: &fakeLocker{held: true}, Notifier: &fakeNotifier{}, Logger: logger.Nop{}}

	if got := job.Run(context.Background()); got != 0 {
		t.Errorf("sent = %d, want 0", got)
	}
	if checker.calls != 0 {
		t.Error("checker ran while the lease was held elsewhere")
	}
}

func TestPriceAlertJobCheckerError(t *testing.T) {
	notifier := &fakeNotifier{}
	job := &PriceAlertJob{
		Checker:  &fakeChecker{err: errors.New("db down")},
		Notifier: notifier,
		Logger:   logger.Nop{},
	}
	if got := job.Run(context.Background()); got != 0 || len(notifier.sent) != 0 {
		t.Errorf("sent = %d after checker error", got)
	}
}

func TestDeliverWithoutNotifier(t *testing.T) {
	job := &PriceAlertJob{Logger: logger.Nop{}}
	if got := job.Deliver([]dto.PriceAlert{{UserID: 1}}); got != 0 {
		t.Errorf("sent = %d, want 0", got)
	}
}
