package backup

import (
	"context"
	"fmt"
	"strings"

	"github.com/robfig/cron/v3"

	"github.com/kayz/snowddl/internal/logger"
)

// Scheduler runs an exporter on a cron schedule.
type Scheduler struct {
	cron     *cron.Cron
	exporter *Exporter
}

// NewScheduler wraps an exporter in a cron runner with second-level precision.
func NewScheduler(exporter *Exporter) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithSeconds()),
		exporter: exporter,
	}
}

// normalizeCron prepends "0 " to standard 5-field cron expressions
// so they work with the 6-field (with seconds) parser.
func normalizeCron(schedule string) string {
	if len(strings.Fields(schedule)) == 5 {
		return "0 " + schedule
	}
	return schedule
}

// Start schedules exports on the given cron expression and begins running.
func (s *Scheduler) Start(schedule string) error {
	_, err := s.cron.AddFunc(normalizeCron(schedule), func() {
		summary, err := s.exporter.Run(context.Background())
		if err != nil {
			logger.Error("Scheduled backup failed: %v", err)
			return
		}
		logger.Info("Scheduled backup finished: %d exported, %d failed", summary.Exported, summary.Failed)
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}

	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running export to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}
