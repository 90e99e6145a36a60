// Package types provides type definitions for structured data used throughout the applyassist system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// CandidateProfile represents a parsed candidate CV, built once per request.
// Skills are lower-cased and deduplicated. An empty skill set is valid when
// the raw text contains no recognizable technical token.
type CandidateProfile struct {
	Name       string            `json:"name,omitempty"`
	Email      string            `json:"email,omitempty"`
	Phone      string            `json:"phone,omitempty"`
	Skills     []string          `json:"skills"`
	Experience []ExperienceEntry `json:"experience,omitempty"`
	Education  []string          `json:"education,omitempty"`
	Languages  []string          `json:"languages,omitempty"`
	RawText    string            `json:"raw_text,omitempty"`
}

// ExperienceEntry represents a single position in the candidate's history
type ExperienceEntry struct {
	Title        string   `json:"title"`
	Organization string   `json:"organization,omitempty"`
	Bullets      []string `json:"bullets,omitempty"`
}

// NormalizedSkills returns the profile's skills lower-cased, trimmed, and
// deduplicated, preserving first-seen order. The profile itself is not
// modified.
func (p *CandidateProfile) NormalizedSkills() []string {
	seen := make(map[string]bool, len(p.Skills))
	normalized := make([]string, 0, len(p.Skills))
	for _, skill := range p.Skills {
		s := strings.ToLower(strings.TrimSpace(skill))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		normalized = append(normalized, s)
	}
	return normalized
}
