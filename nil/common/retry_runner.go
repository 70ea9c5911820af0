package common

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
)

type (
	RetryPolicyFunc func(attempt uint32, err error) bool
	NextDelayFunc   func(attempt uint32) time.Duration
)

type RetryConfig struct {
	ShouldRetry RetryPolicyFunc
	NextDelay   NextDelayFunc

	// Clock used to wait between attempts, real clock if nil
	Clock clockwork.Clock
}

type RetryRunner struct {
	config RetryConfig
	logger zerolog.Logger
}

func NewRetryRunner(config RetryConfig, logger zerolog.Logger) RetryRunner {
	if config.Clock == nil {
		config.Clock = clockwork.NewRealClock()
	}
	return RetryRunner{
		config: config,
		logger: logger,
	}
}

// Do runs action until it succeeds, the retry policy gives up or ctx is done.
// The attempt number (starting from 1) is passed to the action.
func (r *RetryRunner) Do(ctx context.Context, action func(ctx context.Context, attempt uint32) error) error {
	attemptNumber := uint32(0)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			attemptNumber++
			err := action(ctx, attemptNumber)

			if err == nil || !r.config.ShouldRetry(attemptNumber, err) {
				return err
			}

			delay := r.config.NextDelay(attemptNumber)
			r.logger.Warn().Err(err).Msgf("operation failed, retrying in %s (try %d)", delay, attemptNumber)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-r.config.Clock.After(delay):
			}
		}
	}
}

func LimitRetries(maxRetries uint32) RetryPolicyFunc {
	return func(attemptNumber uint32, _ error) bool {
		return attemptNumber < maxRetries
	}
}

func ComposeRetryPolicies(policies ...RetryPolicyFunc) RetryPolicyFunc {
	return func(attempt uint32, err error) bool {
		for _, policy := range policies {
			if !policy(attempt, err) {
				return false
			}
		}
		return true
	}
}

func DoNotRetryIf(nonRetryable ...error) RetryPolicyFunc {
	return func(_ uint32, err error) bool {
		for _, nonRetryableErr := range nonRetryable {
			if errors.Is(err, nonRetryableErr) {
				return false
			}
		}
		return true
	}
}

// RetryOnlyIf retries errors matching one of the given targets and gives up on anything else.
func RetryOnlyIf(retryable ...error) RetryPolicyFunc {
	return func(_ uint32, err error) bool {
		for _, retryableErr := range retryable {
			if errors.Is(err, retryableErr) {
				return true
			}
		}
		return false
	}
}

// DelayExponential doubles baseDelay on every attempt, capped at maxDelay.
func DelayExponential(baseDelay, maxDelay time.Duration) NextDelayFunc {
	if baseDelay > maxDelay {
		log.Panicf("baseDelay %s > maxDelay %s", baseDelay, maxDelay)
	}

	return func(attemptNumber uint32) time.Duration {
		result := baseDelay
		if attemptNumber <= 1 {
			return result
		}
		for range attemptNumber - 1 {
			result *= 2
			if result >= maxDelay {
				return maxDelay
			}
		}
		return result
	}
}

func DelayJitter(minDelay, maxDelay time.Duration, logger zerolog.Logger) NextDelayFunc {
	if minDelay > maxDelay {
		log.Panicf("minDelay %s > maxDelay %s", minDelay, maxDelay)
	}

	return func(_ uint32) time.Duration {
		delay, err := getRandomDelayValue(minDelay, maxDelay)
		if err != nil {
			logger.Error().Err(err).Msg("failed to generate random retry delay")
			return 100 * time.Millisecond
		}
		return *delay
	}
}

func getRandomDelayValue(minDelay, maxDelay time.Duration) (*time.Duration, error) {
	maxDelta := big.NewInt(int64(maxDelay - minDelay + 1))
	randomDelta, err := rand.Int(rand.Reader, maxDelta)
	if err != nil {
		return nil, fmt.Errorf("failed to generate random delay delta: %w", err)
	}

	delay := minDelay + time.Duration(randomDelta.Int64())
	return &delay, nil
}
