// Package reminder runs the daily expiry-reminder sweep: members whose
// membership ends within the notice window get an email nudging them to
// renew.
package reminder

import (
	"context"
	"time"

	"gymgate/internal/logger"
	"gymgate/internal/member"
	"gymgate/internal/metrics"
)

// MemberLister is the slice of the member repository the worker needs.
type MemberLister interface {
	ExpiringWithin(ctx context.Context, days int, now time.Time) ([]member.Member, error)
}

// ExpirySender queues expiry-reminder emails.
type ExpirySender interface {
	SendExpiryReminder(ctx context.Context, email, name string, daysLeft int, validUntil time.Time) error
}

type Worker struct {
	members    MemberLister
	email      ExpirySender
	noticeDays int
	interval   time.Duration
	now        func() time.Time
}

func New(members MemberLister, emailService ExpirySender, noticeDays int) *Worker {
	return &Worker{
		members:    members,
		email:      emailService,
		noticeDays: noticeDays,
		interval:   24 * time.Hour,
		now:        time.Now,
	}
}

// Start blocks, sweeping once immediately and then once per interval,
// until ctx is cancelled.
func (w *Worker) Start(ctx context.Context) {
	logger.Infof("reminder worker started (notice window: %d days)", w.noticeDays)

	w.Sweep(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("reminder worker stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep finds members expiring within the notice window and queues a
// reminder for each. Cancelled and already-expired memberships are
// skipped. Errors on individual members are logged and do not abort
// the sweep.
func (w *Worker) Sweep(ctx context.Context) {
	now := w.now()

	expiring, err := w.members.ExpiringWithin(ctx, w.noticeDays, now)
	if err != nil {
		logger.WithError(err).Error("reminder sweep failed to list expiring members")
		return
	}

	sent := 0
	for i := range expiring {
		m := &expiring[i]
		m.Reconcile(now)
		if m.MembershipStatus != member.StatusActive {
			continue
		}

		err := w.email.SendExpiryReminder(ctx, m.Email, m.Name, m.ExpireInDays, m.MembershipEnd)
		if err != nil {
			logger.WithError(err).Error("failed to queue expiry reminder", "member_id", m.ID)
			continue
		}
		metrics.RecordExpiryReminder()
		sent++
	}

	logger.Infof("reminder sweep finished: %d candidates, %d reminders queued", len(expiring), sent)
}
