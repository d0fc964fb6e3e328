package retry

import (
	"context"
	"time"

	"github.com/avast/retry-go/v4"
)

const (
	defaultAttempts = 3
	defaultMaxDelay = 2 * time.Second
	defaultDelay    = 100 * time.Millisecond
)

type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"3"`
	Delay    time.Duration `env:"DELAY" envDefault:"100ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
}

func (rc *RetryConfig) attempts() uint {
	if rc.Attempts == 0 {
		return 1
	}
	return rc.Attempts
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	return []retry.Option{
		retry.Attempts(rc.attempts()),
		retry.MaxDelay(rc.MaxDelay),
		retry.Delay(rc.Delay),
		retry.LastErrorOnly(true),
	}
}

// Do runs fn with the configured backoff until it succeeds, the context is done,
// or retryIf reports the error as permanent.
func (rc *RetryConfig) Do(ctx context.Context, fn func() error, retryIf func(error) bool) error {
	opts := append(rc.ToRetryOptions(), retry.Context(ctx))
	if retryIf != nil {
		opts = append(opts, retry.RetryIf(retryIf))
	}
	return retry.Do(fn, opts...)
}

// Budget is the longest Do can take when every attempt runs for perAttempt.
func (rc *RetryConfig) Budget(perAttempt time.Duration) time.Duration {
	n := time.Duration(rc.attempts())
	return n*perAttempt + (n-1)*rc.MaxDelay
}

func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		Attempts: defaultAttempts,
		Delay:    defaultDelay,
		MaxDelay: defaultMaxDelay,
	}
}
