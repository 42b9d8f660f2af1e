package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/academy-labs/academy-api/pkg/logger"
	"github.com/academy-labs/academy-api/pkg/retry"
	"github.com/stretchr/testify/assert"
)

func init() {
	if err := logger.Initialize(logger.Config{
		Level:       "debug",
		Environment: "development",
	}); err != nil {
		panic(err)
	}
}

func shortConfig() retry.Config {
	cfg := retry.DefaultConfig()
	cfg.MaxRetries = 2
	cfg.InitialDelay = 10 * time.Millisecond
	cfg.MaxDelay = 100 * time.Millisecond
	cfg.Jitter = false
	return cfg
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), shortConfig(), "test", func() error {
		calls++
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_SucceedsAfterRetry(t *testing.T) {
	calls := 0
	err := retry.Do(context.Background(), shortConfig(), "test", func() error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestDo_ExhaustsRetriesWithBackoff(t *testing.T) {
	calls := 0
	start := time.Now()
	err := retry.Do(context.Background(), shortConfig(), "test", func() error {
		calls++
		return errors.New("persistent")
	})
	elapsed := time.Since(start)

	assert.Error(t, err)
	assert.ErrorContains(t, err, "persistent")
	assert.Equal(t, 3, calls)
	// Delays are 10ms then 20ms with the exponential multiplier.
	assert.GreaterOrEqual(t, elapsed, 30*time.Millisecond)
}

func TestDo_NonRetryableError(t *testing.T) {
	cfg := shortConfig()
	cfg.RetryableErrors = func(err error) bool { return false }

	calls := 0
	err := retry.Do(context.Background(), cfg, "test", func() error {
		calls++
		return errors.New("fatal")
	})

	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}

func TestDo_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry.Do(ctx, shortConfig(), "test", func() error {
		return errors.New("never retried")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestDoWithResult_ReturnsValue(t *testing.T) {
	calls := 0
	got, err := retry.DoWithResult(context.Background(), shortConfig(), "test", func() (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("transient")
		}
		return "delivery-id", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "delivery-id", got)
}

func TestNotifyConfig(t *testing.T) {
	cfg := retry.NotifyConfig()
	assert.Equal(t, 2, cfg.MaxRetries)
	assert.Equal(t, 2*time.Second, cfg.InitialDelay)
	assert.False(t, cfg.Jitter)
}
