// Package normalize turns candidate profiles and offer records into
// canonical comparable text and skill-token representations.
package normalize

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/mathieu/applyassist/internal/types"
)

// NormalizedText is the comparable representation of a profile or an offer.
// SkillTokens preserves discovery order and is deduplicated
// case-insensitively; token casing is kept as first seen.
type NormalizedText struct {
	FullText    string
	SkillTokens []string
}

// acronymPattern matches capitalized multi-letter acronyms such as AWS or
// ETL. Length is capped at four letters; longer acronyms worth matching are
// in the vocabulary, while longer all-caps words are usually shouting.
var acronymPattern = regexp.MustCompile(`^[A-Z][A-Z0-9]{1,3}$`)

// acronymStoplist holds short all-caps words that are English, not
// technology. Section headers and emphatic prose hit these constantly.
var acronymStoplist = map[string]bool{
	"AND": true, "THE": true, "FOR": true, "NOT": true, "YOU": true,
	"OUR": true, "NEW": true, "ALL": true, "ANY": true, "PER": true,
	"TEAM": true, "WORK": true, "ROLE": true, "MUST": true, "PLUS": true,
	"JOB": true, "JOBS": true, "WHO": true, "WHAT": true, "WHY": true,
}

// techNamePattern matches named-technology tokens that carry internal
// punctuation typical of tool names: node.js, c++, c#, scikit-learn, utf-8.
var techNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9]*([.+#/_-][A-Za-z0-9+#]+)+$`)

// Profile builds the normalized representation of a candidate profile.
// FullText concatenates the labeled profile sections, lower-cased with
// collapsed whitespace; when no structured section yields text the raw CV
// text is used instead. Skill tokens combine the profile's own skill set
// with tokens extracted from the raw text.
func Profile(p *types.CandidateProfile) NormalizedText {
	var sections []string

	if p.Name != "" {
		sections = append(sections, "name: "+p.Name)
	}
	if len(p.Skills) > 0 {
		sections = append(sections, "skills: "+strings.Join(p.Skills, ", "))
	}
	for _, exp := range p.Experience {
		line := exp.Title
		if exp.Organization != "" {
			line = fmt.Sprintf("%s at %s", exp.Title, exp.Organization)
		}
		if len(exp.Bullets) > 0 {
			line += ": " + strings.Join(exp.Bullets, "; ")
		}
		sections = append(sections, "experience: "+line)
	}
	if len(p.Education) > 0 {
		sections = append(sections, "education: "+strings.Join(p.Education, "; "))
	}
	if len(p.Languages) > 0 {
		sections = append(sections, "languages: "+strings.Join(p.Languages, ", "))
	}

	fullText := strings.Join(sections, "\n")
	if strings.TrimSpace(fullText) == "" {
		fullText = p.RawText
	}

	tokens := make([]string, 0, len(p.Skills))
	seen := make(map[string]bool, len(p.Skills))
	for _, skill := range p.Skills {
		appendToken(&tokens, seen, skill)
	}
	for _, token := range ExtractSkillTokens(p.RawText) {
		appendToken(&tokens, seen, token)
	}

	return NormalizedText{
		FullText:    collapse(strings.ToLower(fullText)),
		SkillTokens: tokens,
	}
}

// Offer builds the normalized representation of a canonical offer record.
// Skill tokens are discovered in the requirements first, then in the title
// and description.
func Offer(o types.OfferRecord) NormalizedText {
	var sections []string

	if o.Title != "" {
		sections = append(sections, "position: "+o.Title)
	}
	if o.Organization != "" {
		sections = append(sections, "organization: "+o.Organization)
	}
	if o.Location != "" {
		sections = append(sections, "location: "+o.Location)
	}
	if o.EmploymentType != "" {
		sections = append(sections, "type: "+o.EmploymentType)
	}
	if o.Seniority != "" {
		sections = append(sections, "seniority: "+o.Seniority)
	}
	if o.Description != "" {
		sections = append(sections, "description: "+o.Description)
	}
	for _, req := range o.Requirements {
		sections = append(sections, "requirement: "+req)
	}

	tokens := make([]string, 0, len(o.Requirements))
	seen := make(map[string]bool)
	for _, req := range o.Requirements {
		for _, token := range ExtractSkillTokens(req) {
			appendToken(&tokens, seen, token)
		}
	}
	for _, token := range ExtractSkillTokens(o.Title + "\n" + o.Description) {
		appendToken(&tokens, seen, token)
	}

	return NormalizedText{
		FullText:    collapse(strings.ToLower(strings.Join(sections, "\n"))),
		SkillTokens: tokens,
	}
}

// ExtractSkillTokens returns the technical terms found in text, in discovery
// order, deduplicated case-insensitively. A token qualifies if it is a
// capitalized multi-letter acronym, appears in the curated skill vocabulary,
// or matches a named-technology pattern. Generic English words never
// qualify; recall is deliberately sacrificed for precision.
func ExtractSkillTokens(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	type hit struct {
		pos   int
		token string
	}
	var hits []hit

	// Single-token candidates
	for _, w := range splitWords(text) {
		if qualifies(w.token) {
			hits = append(hits, hit{pos: w.pos, token: w.token})
		}
	}

	// Multi-word vocabulary entries ("machine learning", "power bi")
	lower := strings.ToLower(text)
	for _, entry := range vocabularyIndex.multi {
		idx := indexWord(lower, entry)
		if idx >= 0 {
			hits = append(hits, hit{pos: idx, token: text[idx : idx+len(entry)]})
		}
	}

	// Restore discovery order after the two passes
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}

	tokens := make([]string, 0, len(hits))
	seen := make(map[string]bool, len(hits))
	for _, h := range hits {
		appendToken(&tokens, seen, h.token)
	}
	return tokens
}

func qualifies(token string) bool {
	if len(token) == 0 {
		return false
	}
	if isCaseSensitiveSkill(token) {
		return true
	}
	if inVocabulary(token) {
		return true
	}
	if len(token) >= 2 && acronymPattern.MatchString(token) && !acronymStoplist[token] {
		return true
	}
	// Punctuated tool names only; a plain capitalized word is too ambiguous
	return strings.ContainsAny(token, ".+#/_-") && techNamePattern.MatchString(token)
}

type word struct {
	pos   int
	token string
}

// splitWords tokenizes text keeping punctuation that is internal to
// technology names (c++, node.js, ci/cd) while trimming sentence punctuation.
func splitWords(text string) []word {
	var words []word
	start := -1
	for i, r := range text {
		if isWordRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if token := trimEdges(text[start:i]); token != "" {
				words = append(words, word{pos: start, token: token})
			}
			start = -1
		}
	}
	if start >= 0 {
		if token := trimEdges(text[start:]); token != "" {
			words = append(words, word{pos: start, token: token})
		}
	}
	return words
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) ||
		r == '.' || r == '+' || r == '#' || r == '/' || r == '_' || r == '-'
}

// trimEdges strips punctuation from token boundaries but keeps a trailing
// '+' or '#' (c++, c#) intact.
func trimEdges(token string) string {
	token = strings.TrimLeft(token, ".+#/_-")
	return strings.TrimRight(token, "./_-")
}

// indexWord finds needle in haystack at word boundaries, or -1
func indexWord(haystack, needle string) int {
	offset := 0
	for {
		idx := strings.Index(haystack[offset:], needle)
		if idx < 0 {
			return -1
		}
		abs := offset + idx
		before := abs == 0 || !isWordRune(rune(haystack[abs-1]))
		afterIdx := abs + len(needle)
		after := afterIdx >= len(haystack) || !isWordRune(rune(haystack[afterIdx]))
		if before && after {
			return abs
		}
		offset = abs + 1
	}
}

func appendToken(tokens *[]string, seen map[string]bool, token string) {
	token = strings.TrimSpace(token)
	key := strings.ToLower(token)
	if key == "" || seen[key] {
		return
	}
	seen[key] = true
	*tokens = append(*tokens, token)
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
