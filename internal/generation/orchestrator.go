package generation

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/mathieu/applyassist/internal/types"
)

// DefaultProviderTimeout bounds each fallible provider attempt. Worst-case
// chain latency is the sum of the per-provider timeouts.
const DefaultProviderTimeout = 20 * time.Second

// ErrNoInfallibleTerminal is returned when the provider chain does not end
// with a provider that cannot fail. Without such a terminal the chain could
// exhaust every provider and produce nothing.
var ErrNoInfallibleTerminal = errors.New("generation: provider chain must end with an infallible provider")

// infallible marks providers guaranteed to succeed
type infallible interface {
	Infallible() bool
}

// Orchestrator walks an ordered provider chain until one attempt succeeds.
// Attempts are strictly sequential: providers are billed external calls, so
// the chain bounds total cost and latency instead of racing for the fastest.
type Orchestrator struct {
	chain    []ContentProvider
	timeout  time.Duration
	minWords int
	maxWords int
	logger   *zap.Logger
}

// Option adjusts orchestrator policy.
type Option func(*Orchestrator)

// WithWordLimits overrides the letter length policy. Non-positive values
// keep the defaults.
func WithWordLimits(minWords, maxWords int) Option {
	return func(o *Orchestrator) {
		if minWords > 0 {
			o.minWords = minWords
		}
		if maxWords > 0 {
			o.maxWords = maxWords
		}
	}
}

// New creates an Orchestrator. The last provider of the chain must be
// infallible; this is verified here so a misconfigured chain fails at
// startup rather than on the first request.
func New(chain []ContentProvider, timeout time.Duration, logger *zap.Logger, opts ...Option) (*Orchestrator, error) {
	if len(chain) == 0 {
		return nil, ErrNoInfallibleTerminal
	}
	terminal, ok := chain[len(chain)-1].(infallible)
	if !ok || !terminal.Infallible() {
		return nil, ErrNoInfallibleTerminal
	}
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	o := &Orchestrator{
		chain:    chain,
		timeout:  timeout,
		minWords: MinLetterWords,
		maxWords: MaxLetterWords,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Generate tries each provider in order and returns the first accepted
// letter together with the trace of all attempts. The terminal provider
// guarantees a non-empty result, so the returned text is never empty.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (string, types.GenerationTrace) {
	trace := make(types.GenerationTrace, 0, len(o.chain))

	for i, provider := range o.chain {
		terminal := i == len(o.chain)-1

		start := time.Now()
		text, err := o.attempt(ctx, provider, req, terminal)
		elapsed := time.Since(start).Milliseconds()

		if err == nil {
			trace = append(trace, types.GenerationAttempt{
				Provider:   provider.Name(),
				Success:    true,
				DurationMs: elapsed,
			})
			return truncateAtSentence(text, o.maxWords), trace
		}

		reason := classify(err)
		o.logger.Warn("generation provider failed, advancing chain",
			zap.String("provider", provider.Name()),
			zap.String("reason", string(reason)),
			zap.Int64("duration_ms", elapsed),
			zap.Error(err),
		)
		trace = append(trace, types.GenerationAttempt{
			Provider:   provider.Name(),
			Success:    false,
			Reason:     reason,
			Detail:     err.Error(),
			DurationMs: elapsed,
		})
	}

	// Unreachable: the constructor guarantees an infallible terminal.
	return "", trace
}

// attempt runs one provider. Fallible providers get a bounded timeout so an
// abandoned call is cancelled and cannot outlive the attempt; the terminal
// provider is synchronous and runs detached from cancellation to preserve
// the always-completes guarantee.
func (o *Orchestrator) attempt(ctx context.Context, provider ContentProvider, req Request, terminal bool) (string, error) {
	if terminal {
		text, err := provider.Generate(context.WithoutCancel(ctx), req)
		if err != nil {
			return "", err
		}
		return sanitize(text), nil
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	text, err := provider.Generate(callCtx, req)
	if err != nil {
		return "", err
	}
	text = sanitize(text)
	if err := validateLetter(text, o.minWords); err != nil {
		return "", &ProviderError{Provider: provider.Name(), Reason: types.FailureInvalidOutput, Err: err}
	}
	return text, nil
}

// classify maps an attempt error to a trace failure reason
func classify(err error) types.FailureReason {
	var providerErr *ProviderError
	if errors.As(err, &providerErr) {
		return providerErr.Reason
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return types.FailureTimeout
	}
	return types.FailureRemoteError
}
