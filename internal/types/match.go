//nolint:revive // types is a standard Go package name pattern
package types

// MatchResult represents the outcome of scoring one offer against a
// candidate profile. Scores are in [0,100]. MatchedSkills preserves the
// order in which the offer's skill tokens were discovered.
type MatchResult struct {
	OfferID            string   `json:"offer_id"`
	Title              string   `json:"title,omitempty"`
	Organization       string   `json:"organization,omitempty"`
	Score              float64  `json:"score"`
	Similarity         float64  `json:"similarity_score"`
	SkillMatch         float64  `json:"skill_match_score"`
	MatchedSkills      []string `json:"matched_skills"`
	Explanation        string   `json:"explanation"`
	SimilarityStrategy string   `json:"similarity_strategy,omitempty"`
}

// SkillMatchReport represents the coverage of an offer's skill tokens by the
// candidate's skills. Percentage is in [0,100]; an offer without skill
// tokens yields 100 (no requirements means full compatibility).
type SkillMatchReport struct {
	Matched    []string `json:"matched_skills"`
	Missing    []string `json:"missing_skills"`
	Percentage float64  `json:"match_percentage"`
}
