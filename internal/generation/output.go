package generation

import (
	"fmt"
	"strings"
)

// Letter length policy in words. Shorter outputs fail the structural check;
// longer outputs are truncated at a sentence boundary.
const (
	MinLetterWords = 150
	MaxLetterWords = 600
)

var salutationMarkers = []string{"dear ", "to whom it may concern", "hello ", "hi "}

var closingMarkers = []string{"sincerely", "regards", "best wishes", "respectfully", "yours faithfully", "yours truly", "thank you"}

// validateLetter applies the structural check for remote provider output:
// non-trivial length and recognizable salutation/closing markers. Garbage
// output must be treated as a failure, not a success.
func validateLetter(text string, minWords int) error {
	if text == "" {
		return fmt.Errorf("empty output")
	}
	if words := wordCount(text); words < minWords {
		return fmt.Errorf("output too short: %d words, need at least %d", words, minWords)
	}
	lower := strings.ToLower(text)
	if !containsAny(lower, salutationMarkers) {
		return fmt.Errorf("output has no recognizable salutation")
	}
	if !containsAny(lower, closingMarkers) {
		return fmt.Errorf("output has no recognizable closing")
	}
	return nil
}

// sanitize trims whitespace and replaces typographic punctuation that LLMs
// emit with plain ASCII equivalents so downstream PDF rendering stays clean.
func sanitize(text string) string {
	replacer := strings.NewReplacer(
		"“", `"`, "”", `"`,
		"‘", "'", "’", "'",
		"—", "-", "–", "-",
		" ", " ",
	)
	return strings.TrimSpace(replacer.Replace(text))
}

// truncateAtSentence cuts text down to at most maxWords, ending at a
// sentence boundary rather than mid-word. Text within the bound is returned
// unchanged.
func truncateAtSentence(text string, maxWords int) string {
	if wordCount(text) <= maxWords {
		return text
	}

	var out strings.Builder
	count := 0
	start := 0
	for i, r := range text {
		if r != '.' && r != '!' && r != '?' {
			continue
		}
		sentence := text[start : i+1]
		words := wordCount(sentence)
		if count+words > maxWords && count > 0 {
			return strings.TrimSpace(out.String())
		}
		out.WriteString(sentence)
		count += words
		start = i + 1
	}

	if count > 0 {
		return strings.TrimSpace(out.String())
	}
	// No sentence boundary at all; fall back to a plain word cut.
	words := strings.Fields(text)
	return strings.Join(words[:maxWords], " ")
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func containsAny(text string, markers []string) bool {
	for _, marker := range markers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
