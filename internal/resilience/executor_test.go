package resilience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"docverify/internal/config"
)

func testConfig() config.ResilienceConfig {
	return config.ResilienceConfig{
		RetryMaxAttempts:    3,
		RetryInitialBackoff: time.Millisecond,
		RetryMaxBackoff:     2 * time.Millisecond,
		BreakerEnabled:      true,
		BreakerOpenTimeout:  time.Minute,
	}
}

func TestExecutor_RetriesUntilSuccess(t *testing.T) {
	e := NewExecutor(testConfig(), nil)
	calls := 0

	err := e.Execute(context.Background(), "content.put", func(context.Context) error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	}, nil)

	assert.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestExecutor_StopsOnNonRetryable(t *testing.T) {
	e := NewExecutor(testConfig(), nil)
	calls := 0
	permanent := errors.New("permanent")

	err := e.Execute(context.Background(), "content.put", func(context.Context) error {
		calls++
		return permanent
	}, func(error) Classification { return Classification{RecordFailure: true} })

	assert.ErrorIs(t, err, permanent)
	assert.Equal(t, 1, calls)
}

func TestExecutor_GivesUpAfterMaxAttempts(t *testing.T) {
	cfg := testConfig()
	cfg.BreakerEnabled = false
	e := NewExecutor(cfg, nil)
	calls := 0

	err := e.Execute(context.Background(), "events.publish", func(context.Context) error {
		calls++
		return errors.New("down")
	}, nil)

	assert.EqualError(t, err, "down")
	assert.Equal(t, 3, calls)
}

func TestExecutor_BreakerOpens(t *testing.T) {
	cfg := testConfig()
	cfg.RetryMaxAttempts = 1
	e := NewExecutor(cfg, nil)
	fail := func(context.Context) error { return errors.New("down") }

	for i := 0; i < 10; i++ {
		_ = e.Execute(context.Background(), "events.publish", fail, nil)
	}

	err := e.Execute(context.Background(), "events.publish", fail, nil)
	assert.True(t, IsCircuitOpen(err))
}

func TestExecutor_CancelledContext(t *testing.T) {
	e := NewExecutor(testConfig(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Execute(ctx, "content.put", func(context.Context) error { return nil }, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExecutor_NilCallback(t *testing.T) {
	e := NewExecutor(testConfig(), nil)
	assert.Error(t, e.Execute(context.Background(), "x", nil, nil))
}
