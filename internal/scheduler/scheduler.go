package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"
)

// Job is a unit of periodic work. The context carries the per-run timeout.
type Job func(ctx context.Context)

// Scheduler runs a job at a fixed interval.
type Scheduler struct {
	scheduler *gocron.Scheduler
	interval  time.Duration
	runFor    time.Duration
	job       Job
}

// New creates a Scheduler. runFor bounds each run; non-positive values
// default to 5 minutes.
func New(interval, runFor time.Duration, job Job) *Scheduler {
	if runFor <= 0 {
		runFor = 5 * time.Minute
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		interval:  interval,
		runFor:    runFor,
		job:       job,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: running job")

		ctx, cancel := context.WithTimeout(context.Background(), s.runFor)
		defer cancel()

		s.job(ctx)

		log.Println("scheduler: completed job")
	})
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
