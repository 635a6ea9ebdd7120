package redislock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLocker(t *testing.T) (*RedisLocker, redismock.ClientMock) {
	t.Helper()
	client, mock := redismock.NewClientMock()
	l := NewRedisLocker(client)
	l.token = func() string { return "tok-1" }
	return l, mock
}

func TestTryLock_Acquired(t *testing.T) {
	l, mock := newTestLocker(t)

	mock.ExpectSetNX("lock:payment:ORD-1", "tok-1", 15*time.Second).SetVal(true)
	mock.ExpectEval(releaseScript, []string{"lock:payment:ORD-1"}, "tok-1").SetVal(int64(1))

	release, ok, err := l.TryLock(context.Background(), "payment:ORD-1", 15*time.Second)
	require.NoError(t, err)
	require.True(t, ok)
	release()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTryLock_HeldElsewhere(t *testing.T) {
	l, mock := newTestLocker(t)

	mock.ExpectSetNX("lock:payment:ORD-1", "tok-1", 15*time.Second).SetVal(false)

	release, ok, err := l.TryLock(context.Background(), "payment:ORD-1", 15*time.Second)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, release)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTryLock_RedisError(t *testing.T) {
	l, mock := newTestLocker(t)

	mock.ExpectSetNX("lock:payment:ORD-1", "tok-1", 15*time.Second).SetErr(errors.New("connection refused"))

	_, ok, err := l.TryLock(context.Background(), "payment:ORD-1", 15*time.Second)
	assert.Error(t, err)
	assert.False(t, ok)
}

func TestNoopLocker(t *testing.T) {
	release, ok, err := NoopLocker{}.TryLock(context.Background(), "x", time.Second)
	require.NoError(t, err)
	assert.True(t, ok)
	release()
}
