package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTickSkipsWhileRunning(t *testing.T) {
	job := NewBaseJob("test", "Nowhere/Invalid", "@every 1s")

	started := make(chan struct{})
	finish := make(chan struct{})
	job.OnWork = func(ctx context.Context) error {
		close(started)
		<-finish
		return errors.New("EOF")
	}

	done := make(chan bool)
	go func() {
		done <- job.Tick(context.Background())
	}()

	<-started
	assert.False(t, job.Tick(context.Background()))

	close(finish)
	assert.True(t, <-done)

	job.OnWork = func(ctx context.Context) error { return nil }
	assert.True(t, job.Tick(context.Background()))
}

func TestRunStopsWithContext(t *testing.T) {
	job := NewBaseJob("test", "UTC", "@every 10ms")

	ticks := make(chan struct{}, 100)
	job.OnWork = func(ctx context.Context) error {
		ticks <- struct{}{}
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error)
	go func() {
		errc <- job.Run(ctx)
	}()

	select {
	case <-ticks:
	case <-time.After(5 * time.Second):
		t.Fatal("job never ticked")
	}

	cancel()
	assert.Nil(t, <-errc)
}

func TestRunInvalidSchedule(t *testing.T) {
	job := NewBaseJob("test", "UTC", "every now and then")
	job.OnWork = func(ctx context.Context) error { return nil }

	assert.NotNil(t, job.Run(context.Background()))
}
