package cron

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// StartCron schedules every job of AllJobs and starts the scheduler.
func StartCron(d Deps) (*cron.Cron, error) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	c := cron.New()
	for name, j := range AllJobs(d) {
		run := j.Run
		if _, err := c.AddFunc(j.Schedule, func() { run() }); err != nil {
			return nil, fmt.Errorf("register job %s: %w", name, err)
		}
		log.Info("cron job scheduled", zap.String("job", name), zap.String("schedule", j.Schedule))
	}
	c.Start()
	return c, nil
}
