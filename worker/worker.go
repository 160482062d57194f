package worker

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
)

// Worker long running job
type Worker interface {
	Run(ctx context.Context) error
}

// OnWork work of one tick
type OnWork func(ctx context.Context) error

// BaseJob run OnWork on a cron schedule
type BaseJob struct {
	Name    string
	Spec    string
	Cron    *cron.Cron
	OnWork  OnWork
	running int32
}

// NewBaseJob new base job, location falls back to UTC
func NewBaseJob(name, location, spec string) BaseJob {
	l, err := time.LoadLocation(location)
	if err != nil {
		l = time.UTC
	}

	return BaseJob{
		Name: name,
		Spec: spec,
		Cron: cron.New(cron.WithLocation(l)),
	}
}

// Run schedule the job and block until ctx is done
func (job *BaseJob) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", job.Name)
	ctx = logger.WithContext(ctx, log)

	if _, err := job.Cron.AddFunc(job.Spec, func() { job.Tick(ctx) }); err != nil {
		log.WithError(err).Errorln("invalid schedule", job.Spec)
		return err
	}

	job.Cron.Start()
	<-ctx.Done()
	<-job.Cron.Stop().Done()
	return nil
}

// Tick run OnWork once, skipped while the previous tick is still running
func (job *BaseJob) Tick(ctx context.Context) bool {
	if !atomic.CompareAndSwapInt32(&job.running, 0, 1) {
		return false
	}
	defer atomic.StoreInt32(&job.running, 0)

	if err := job.OnWork(ctx); err != nil {
		logger.FromContext(ctx).WithError(err).Debugln("on work")
	}

	return true
}
