// Package matching compares a candidate's skill set against an offer's
// skill tokens and produces a coverage report.
package matching

import (
	"math"
	"sort"
	"strings"
	"unicode"

	"github.com/mathieu/applyassist/internal/types"
)

// DefaultMissingCap bounds the number of missing skills reported, keeping
// explanations short.
const DefaultMissingCap = 10

// Matcher computes skill coverage reports
type Matcher struct {
	missingCap int
}

// New creates a Matcher. A non-positive cap falls back to DefaultMissingCap.
func New(missingCap int) *Matcher {
	if missingCap <= 0 {
		missingCap = DefaultMissingCap
	}
	return &Matcher{missingCap: missingCap}
}

// Match reports which of the offer's skill tokens are covered by the
// candidate's skills. Matched preserves the order in which offer tokens were
// discovered. An offer without skill tokens yields 100% coverage: no
// requirements means full compatibility, a policy choice rather than an edge
// case. offerText is used only to rank missing tokens by how often the offer
// references them when the missing list exceeds the cap.
func (m *Matcher) Match(candidateSkills, offerTokens []string, offerText string) types.SkillMatchReport {
	if len(offerTokens) == 0 {
		return types.SkillMatchReport{
			Matched:    []string{},
			Missing:    []string{},
			Percentage: 100,
		}
	}

	matched := make([]string, 0, len(offerTokens))
	missing := make([]string, 0, len(offerTokens))
	for _, token := range offerTokens {
		if skillCovers(candidateSkills, token) {
			matched = append(matched, token)
		} else {
			missing = append(missing, token)
		}
	}

	percentage := math.Round(1000*float64(len(matched))/float64(len(offerTokens))) / 10

	return types.SkillMatchReport{
		Matched:    matched,
		Missing:    m.capMissing(missing, offerText),
		Percentage: percentage,
	}
}

// skillCovers reports whether any candidate skill matches the offer token.
// A skill matches when one side is a case-insensitive substring of the other
// spanning a full word boundary, so "java" does not match "javascript" but
// does match "Java 17".
func skillCovers(candidateSkills []string, token string) bool {
	tokenLower := strings.ToLower(token)
	for _, skill := range candidateSkills {
		skillLower := strings.ToLower(strings.TrimSpace(skill))
		if skillLower == "" {
			continue
		}
		if containsWord(tokenLower, skillLower) || containsWord(skillLower, tokenLower) {
			return true
		}
	}
	return false
}

// containsWord reports whether needle occurs in haystack with word
// boundaries on both sides. Both arguments must already be lower-cased.
func containsWord(haystack, needle string) bool {
	if needle == "" || len(needle) > len(haystack) {
		return false
	}
	offset := 0
	for {
		idx := strings.Index(haystack[offset:], needle)
		if idx < 0 {
			return false
		}
		abs := offset + idx
		before := abs == 0 || !isAlphanumeric(rune(haystack[abs-1]))
		afterIdx := abs + len(needle)
		after := afterIdx >= len(haystack) || !isAlphanumeric(rune(haystack[afterIdx]))
		if before && after {
			return true
		}
		offset = abs + 1
	}
}

// countWord counts word-boundary occurrences of needle in haystack. Both
// arguments must already be lower-cased.
func countWord(haystack, needle string) int {
	if needle == "" {
		return 0
	}
	count := 0
	offset := 0
	for {
		idx := strings.Index(haystack[offset:], needle)
		if idx < 0 {
			return count
		}
		abs := offset + idx
		before := abs == 0 || !isAlphanumeric(rune(haystack[abs-1]))
		afterIdx := abs + len(needle)
		after := afterIdx >= len(haystack) || !isAlphanumeric(rune(haystack[afterIdx]))
		if before && after {
			count++
		}
		offset = abs + 1
	}
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// capMissing bounds the missing list, dropping the least-referenced tokens
// first. Ties keep the original discovery order.
func (m *Matcher) capMissing(missing []string, offerText string) []string {
	if len(missing) <= m.missingCap {
		return missing
	}

	textLower := strings.ToLower(offerText)
	counts := make(map[string]int, len(missing))
	for _, token := range missing {
		counts[token] = countWord(textLower, strings.ToLower(token))
	}

	capped := make([]string, len(missing))
	copy(capped, missing)
	sort.SliceStable(capped, func(i, j int) bool {
		return counts[capped[i]] > counts[capped[j]]
	})
	return capped[:m.missingCap]
}
