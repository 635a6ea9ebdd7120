package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
)

type countingExpirer struct {
	calls atomic.Int32
	err   error
}

func (c *countingExpirer) ExpirePast(context.Context) (int64, error) {
	c.calls.Add(1)
	return 1, c.err
}

func TestStartExpiryScheduler_RunsUntilCancelled(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	exp := &countingExpirer{}
	ctx, cancel := context.WithCancel(context.Background())

	done := StartExpiryScheduler(ctx, exp, 5*time.Millisecond, log)

	assert.Eventually(t, func() bool { return exp.calls.Load() >= 3 }, time.Second, time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop after cancel")
	}
}

func TestStartExpiryScheduler_KeepsRunningOnError(t *testing.T) {
	log, hook := logtest.NewNullLogger()
	exp := &countingExpirer{err: errors.New("db down")}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartExpiryScheduler(ctx, exp, 5*time.Millisecond, log)

	assert.Eventually(t, func() bool { return exp.calls.Load() >= 2 }, time.Second, time.Millisecond)
	assert.NotEmpty(t, hook.AllEntries())
}

func TestStartExpiryScheduler_Disabled(t *testing.T) {
	log, _ := logtest.NewNullLogger()
	exp := &countingExpirer{}

	done := StartExpiryScheduler(context.Background(), exp, 0, log)

	_, open := <-done
	assert.False(t, open)
	assert.Zero(t, exp.calls.Load())
}
