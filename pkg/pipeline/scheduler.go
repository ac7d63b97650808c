package pipeline

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"arlan-hq/meridian/pkg/telemetry/logging"
)

// Scheduler runs the batch on a cron expression.
type Scheduler struct {
	cron *cron.Cron
	log  *logging.Logger
}

// NewScheduler validates the expression and registers the run function.
// Standard five-field cron expressions are accepted.
func NewScheduler(expr string, log *logging.Logger, run func(context.Context)) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(expr, func() {
		run(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("invalid schedule %q: %w", expr, err)
	}
	return &Scheduler{cron: c, log: log}, nil
}

// Run blocks until the context is canceled, executing the batch on
// schedule.
func (s *Scheduler) Run(ctx context.Context) error {
	s.cron.Start()
	s.log.Info("scheduler started")
	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	return ctx.Err()
}
