// Package sweeper wires up the cron job that retires leads past their
// expiry timestamp. It runs on its own schedule, isolated from request
// handling: a sweep failure is logged and retried on the next tick, never
// surfaced to a request or allowed to crash the host process.
package sweeper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"github.com/leadhive/leadhive-backend/internal/notify"
)

const (
	lockKey     = "sweep:leads:lock"
	lockTTL     = 10 * time.Minute
	sweepBudget = 2 * time.Minute
)

// LeadExpirer is the single repository operation the sweep needs.
type LeadExpirer interface {
	ExpireOverdue(ctx context.Context, now time.Time) (int64, error)
}

// Sweeper wraps robfig/cron and manages the expiry loop.
type Sweeper struct {
	cron     *cron.Cron
	expirer  LeadExpirer
	rdb      *redis.Client
	notifier notify.Notifier
	spec     string // cron spec, e.g. "@every 1h"
}

// New creates a Sweeper that fires every intervalHours hours. rdb may be
// nil; the Redis lock is an optimization for multi-instance deployments,
// not a correctness requirement: the bulk update is conditional and
// therefore idempotent on its own.
func New(expirer LeadExpirer, rdb *redis.Client, notifier notify.Notifier, intervalHours int) *Sweeper {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &Sweeper{
		cron:     cron.New(cron.WithLogger(cron.DefaultLogger)),
		expirer:  expirer,
		rdb:      rdb,
		notifier: notifier,
		spec:     fmt.Sprintf("@every %dh", intervalHours),
	}
}

// Start registers the job and starts the scheduler. Also runs one sweep
// immediately so a backlog of overdue leads is cleared without waiting for
// the first tick.
func (s *Sweeper) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.spec, func() {
		s.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	log.Printf("[sweeper] Cron started, spec: %s", s.spec)

	go s.RunOnce(ctx)

	return nil
}

// Stop gracefully shuts down the scheduler.
func (s *Sweeper) Stop() {
	s.cron.Stop()
	log.Println("[sweeper] Cron stopped")
}

// RunOnce executes a single sweep pass. Safe to invoke concurrently with
// itself and with request traffic: the update only matches leads that are
// still open and past expiry, so a lead transitioned by another pass or a
// user action is not matched again.
func (s *Sweeper) RunOnce(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[sweeper] recovered from panic: %v", r)
		}
	}()

	if !s.acquireLock(ctx) {
		log.Println("[sweeper] another instance holds the sweep lock, skipping")
		return
	}
	defer s.releaseLock(ctx)

	cctx, cancel := context.WithTimeout(ctx, sweepBudget)
	defer cancel()

	expired, err := s.expirer.ExpireOverdue(cctx, time.Now().UTC())
	if err != nil {
		log.Printf("[sweeper] expire overdue leads: %v", err)
		return
	}

	if expired == 0 {
		return
	}

	log.Printf("[sweeper] expired %d lead(s)", expired)
	s.notifier.Notify(ctx, notify.Event{
		Type:  notify.EventLeadsExpired,
		Count: expired,
	})
}

func (s *Sweeper) acquireLock(ctx context.Context) bool {
	if s.rdb == nil {
		return true
	}
	ok, err := s.rdb.SetNX(ctx, lockKey, time.Now().UTC().Format(time.RFC3339), lockTTL).Result()
	if err != nil {
		// Lock is best-effort; a double sweep is a harmless no-op.
		log.Printf("[sweeper] acquire lock: %v", err)
		return true
	}
	return ok
}

func (s *Sweeper) releaseLock(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, lockKey).Err(); err != nil {
		log.Printf("[sweeper] release lock: %v", err)
	}
}
