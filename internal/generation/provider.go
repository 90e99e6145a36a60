// Package generation produces cover letters through an ordered chain of
// content providers that always terminates in a deterministic template.
package generation

import (
	"context"
	"fmt"

	"github.com/mathieu/applyassist/internal/types"
)

// Request is the input every provider receives: the candidate, the offer,
// an optional free-form note from the user, and the skill match report so
// providers can reference concrete skills instead of generic language.
type Request struct {
	Profile *types.CandidateProfile
	Offer   types.OfferRecord
	Note    string
	Report  types.SkillMatchReport
}

// ContentProvider generates cover letter text for a request
type ContentProvider interface {
	// Name identifies the provider in traces and logs
	Name() string
	// Generate returns the letter text or an error describing the failure
	Generate(ctx context.Context, req Request) (string, error)
}

// ProviderError is a classified provider failure. Providers return it when
// they can name the failure reason themselves (e.g. missing credentials);
// unclassified errors are categorized by the orchestrator.
type ProviderError struct {
	Provider string
	Reason   types.FailureReason
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("provider %s: %s: %v", e.Provider, e.Reason, e.Err)
	}
	return fmt.Sprintf("provider %s: %s", e.Provider, e.Reason)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func errUnconfigured(provider string) *ProviderError {
	return &ProviderError{Provider: provider, Reason: types.FailureUnconfigured}
}
