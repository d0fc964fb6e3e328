package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo_RetriesUntilSuccess(t *testing.T) {
	rc := &RetryConfig{Attempts: 3, Delay: time.Millisecond, MaxDelay: time.Millisecond}

	calls := 0
	err := rc.Do(context.Background(), func() error {
		calls++
		if calls < 3 {
			return errors.New("flaky")
		}
		return nil
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestDo_StopsOnPermanentError(t *testing.T) {
	rc := &RetryConfig{Attempts: 5, Delay: time.Millisecond, MaxDelay: time.Millisecond}
	permanent := errors.New("permanent")

	calls := 0
	err := rc.Do(context.Background(), func() error {
		calls++
		return permanent
	}, func(err error) bool { return !errors.Is(err, permanent) })

	require.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestDo_ZeroAttemptsRunsOnce(t *testing.T) {
	rc := &RetryConfig{}

	calls := 0
	err := rc.Do(context.Background(), func() error {
		calls++
		return errors.New("boom")
	}, nil)

	require.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestBudget(t *testing.T) {
	rc := &RetryConfig{Attempts: 3, MaxDelay: 2 * time.Second}
	assert.Equal(t, 6*time.Minute+4*time.Second, rc.Budget(2*time.Minute))

	assert.Equal(t, time.Minute, (&RetryConfig{MaxDelay: time.Second}).Budget(time.Minute))
}
