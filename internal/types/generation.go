//nolint:revive // types is a standard Go package name pattern
package types

// FailureReason classifies why a generation provider attempt failed
type FailureReason string

// Failure reason constants for generation attempts
const (
	// FailureUnconfigured means the provider has no credentials or is disabled
	FailureUnconfigured FailureReason = "unconfigured"
	// FailureTimeout means the provider exceeded its configured timeout
	FailureTimeout FailureReason = "timeout"
	// FailureRemoteError means the provider's backend returned an error
	FailureRemoteError FailureReason = "remote_error"
	// FailureInvalidOutput means the provider returned text failing the structural check
	FailureInvalidOutput FailureReason = "invalid_output"
)

// GenerationAttempt records a single provider invocation within a chain run
type GenerationAttempt struct {
	Provider   string        `json:"provider"`
	Success    bool          `json:"success"`
	Reason     FailureReason `json:"reason,omitempty"`
	Detail     string        `json:"detail,omitempty"`
	DurationMs int64         `json:"duration_ms"`
}

// GenerationTrace is the ordered sequence of provider attempts for one
// request. It terminates in exactly one successful attempt because the
// terminal template provider cannot fail.
type GenerationTrace []GenerationAttempt

// Final returns the last attempt of the trace, or nil for an empty trace
func (t GenerationTrace) Final() *GenerationAttempt {
	if len(t) == 0 {
		return nil
	}
	return &t[len(t)-1]
}

// Degraded reports whether the result came from a provider other than the
// first configured one.
func (t GenerationTrace) Degraded() bool {
	return len(t) > 1
}

// GeneratedLetter bundles the final letter text with the skill match report
// and the trace of provider attempts that produced it.
type GeneratedLetter struct {
	Text   string           `json:"text"`
	Report SkillMatchReport `json:"skill_match_report"`
	Trace  GenerationTrace  `json:"generation_trace"`
}
