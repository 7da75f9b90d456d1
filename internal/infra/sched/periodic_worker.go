package sched

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Job is one periodic maintenance step.
type Job func(ctx context.Context) error

// Worker runs a Job every interval until its context is cancelled.
type Worker struct {
	name     string
	interval time.Duration
	job      Job
	log      *zerolog.Logger
}

func NewWorker(name string, interval time.Duration, job Job, logger *zerolog.Logger) *Worker {
	if interval <= 0 {
		interval = time.Minute
	}
	wLog := logger.With().Str("component", name).Logger()
	return &Worker{
		name:     name,
		interval: interval,
		job:      job,
		log:      &wLog,
	}
}

func (w *Worker) Run(ctx context.Context) error {
	w.log.Info().Dur("interval", w.interval).Msg("Starting worker")
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Stopping worker")
			return ctx.Err()
		case <-ticker.C:
			if err := w.job(ctx); err != nil {
				w.log.Error().Err(err).Msg("worker job error")
			}
		}
	}
}
