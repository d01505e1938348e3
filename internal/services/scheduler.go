package services

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

type importRunner interface {
	Run(ctx context.Context) (*RunStats, error)
}

// ImportScheduler repeats the import on a cron schedule. A run still in progress
// when the next tick fires makes that tick a no-op.
type ImportScheduler struct {
	runner     importRunner
	cron       *cron.Cron
	onFinished func(stats *RunStats, err error)
	ctx        context.Context
}

func NewImportScheduler(ctx context.Context, runner importRunner, schedule string,
	onFinished func(stats *RunStats, err error)) (*ImportScheduler, error) {

	if schedule == "" {
		return nil, errors.New("schedule must not be empty")
	}

	s := &ImportScheduler{
		runner:     runner,
		onFinished: onFinished,
		ctx:        ctx,
		cron: cron.New(cron.WithChain(
			cron.Recover(cron.DefaultLogger),
			cron.SkipIfStillRunning(cron.DefaultLogger),
		)),
	}

	_, err := s.cron.AddFunc(schedule, s.runImport)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid schedule %q", schedule)
	}
	return s, nil
}

func (s *ImportScheduler) Start() {
	s.cron.Start()
	log.Infof("import scheduler started, next run at %v", s.NextRun())
}

// Stop waits for a running import to finish.
func (s *ImportScheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *ImportScheduler) NextRun() time.Time {
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

func (s *ImportScheduler) runImport() {
	if s.ctx.Err() != nil {
		return
	}
	log.Infof("running scheduled import at %v", time.Now())
	stats, err := s.runner.Run(s.ctx)
	if s.onFinished != nil {
		s.onFinished(stats, err)
	}
}
