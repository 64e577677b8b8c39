package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/Dan9191/risk-engine/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// runTimeout bounds a single rescoring run
const runTimeout = 10 * time.Minute

// Rescorer recomputes all stored scores
type Rescorer interface {
	RescoreAll(ctx context.Context) (service.RescoreReport, error)
}

// Scheduler runs the periodic rescoring job
type Scheduler struct {
	cron     *cron.Cron
	rescorer Rescorer
	log      *logrus.Logger
	enabled  bool
}

// NewScheduler registers the rescoring job on a standard cron schedule.
// An empty schedule yields a scheduler that never fires.
func NewScheduler(schedule string, rescorer Rescorer, logger *logrus.Logger) (*Scheduler, error) {
	l := cronLogger{log: logger}
	s := &Scheduler{
		cron:     cron.New(cron.WithLogger(l), cron.WithChain(cron.Recover(l), cron.SkipIfStillRunning(l))),
		rescorer: rescorer,
		log:      logger,
	}
	if schedule == "" {
		return s, nil
	}

	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("failed to schedule rescoring %q: %w", schedule, err)
	}
	s.enabled = true
	return s, nil
}

// Enabled reports whether a schedule is registered
func (s *Scheduler) Enabled() bool {
	return s.enabled
}

// Start begins running the schedule in the background
func (s *Scheduler) Start() {
	if !s.enabled {
		s.log.Info("Rescoring schedule disabled")
		return
	}
	s.cron.Start()
	s.log.Infof("Rescoring scheduled, next run at %s", s.cron.Entries()[0].Next.Format(time.RFC3339))
}

// Stop halts the schedule and waits for a running job to finish or ctx to expire
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
		s.log.Warn("Timed out waiting for rescoring run to finish")
	}
}

// RunOnce performs one rescoring run and logs the outcome
func (s *Scheduler) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, runTimeout)
	defer cancel()

	start := time.Now()
	report, err := s.rescorer.RescoreAll(ctx)
	if err != nil {
		s.log.Errorf("Scheduled rescoring failed: %v", err)
		return
	}
	s.log.WithFields(logrus.Fields{
		"rescored":    report.Rescored,
		"skipped":     report.Skipped,
		"duration_ms": time.Since(start).Milliseconds(),
	}).Info("Scheduled rescoring finished")
}

// cronLogger routes cron's own messages through logrus
type cronLogger struct {
	log *logrus.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).Debug(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.WithFields(fields(keysAndValues)).WithError(err).Error(msg)
}

func fields(keysAndValues []interface{}) logrus.Fields {
	f := logrus.Fields{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		f[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return f
}
