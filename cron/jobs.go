package cron

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"shopzone.GO/config"
	cartItemRepo "shopzone.GO/model/repository/cartitem"
	"shopzone.GO/service/storefront"
)

const (
	JobSessionSweep = "session_sweep"
	JobCartCleanup  = "cart_cleanup"
)

// Deps carries what the built-in jobs need. A nil field skips its job.
type Deps struct {
	DB            *gorm.DB
	Sessions      *storefront.Manager
	RetentionDays int
	Log           *zap.Logger
}

// BuiltinJobs returns the jobs the storefront ships with. Schedules can be
// overridden with CRON_SESSION_SWEEP and CRON_CART_CLEANUP.
func BuiltinJobs(d Deps) map[string]Job {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	jobs := make(map[string]Job)
	if d.Sessions != nil {
		jobs[JobSessionSweep] = Job{
			Schedule: config.CronSchedule(JobSessionSweep, "@every 10m"),
			Run: func(...string) {
				n := d.Sessions.Sweep()
				log.Info("sessions swept", zap.Int("evicted", n), zap.Int("live", d.Sessions.Count()))
			},
		}
	}
	if d.DB != nil && d.RetentionDays > 0 {
		repo := cartItemRepo.NewCartItemRepository(d.DB)
		jobs[JobCartCleanup] = Job{
			Schedule: config.CronSchedule(JobCartCleanup, "@daily"),
			Run: func(...string) {
				ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
				defer cancel()
				before := time.Now().AddDate(0, 0, -d.RetentionDays)
				n, err := repo.DeleteStale(ctx, before)
				if err != nil {
					log.Error("cart cleanup failed", zap.Error(err))
					return
				}
				log.Info("stale cart items removed", zap.Int64("removed", n), zap.Time("before", before))
			},
		}
	}
	return jobs
}

// AllJobs merges the built-in jobs with the registered ones. Registered
// jobs win on a name clash.
func AllJobs(d Deps) map[string]Job {
	out := BuiltinJobs(d)
	for name, j := range Jobs() {
		out[name] = j
	}
	return out
}
