package generation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLetter(t *testing.T) {
	body := strings.Repeat("I deliver concrete results on production systems. ", 25)

	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{"valid", "Dear Hiring Manager,\n" + body + "\nSincerely,\nJane", ""},
		{"empty", "", "empty output"},
		{"too short", "Dear Hiring Manager, thanks. Sincerely, Jane", "too short"},
		{"no salutation", body + "\nSincerely,\nJane", "no recognizable salutation"},
		{"no closing", "Dear Hiring Manager,\n" + body, "no recognizable closing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateLetter(tt.text, MinLetterWords)
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	in := "  “Quoted” ‘text’ with em—dash and en–dash here  "
	assert.Equal(t, `"Quoted" 'text' with em-dash and en-dash here`, sanitize(in))
}

func TestTruncateAtSentence(t *testing.T) {
	t.Run("within bound unchanged", func(t *testing.T) {
		text := "One two three. Four five six."
		assert.Equal(t, text, truncateAtSentence(text, 10))
	})

	t.Run("cuts at sentence boundary", func(t *testing.T) {
		text := "One two three four five. Six seven eight nine ten. Eleven twelve."
		got := truncateAtSentence(text, 7)
		assert.Equal(t, "One two three four five.", got)
	})

	t.Run("keeps whole sentences up to the limit", func(t *testing.T) {
		text := "One two three. Four five six. Seven eight nine."
		got := truncateAtSentence(text, 6)
		assert.Equal(t, "One two three. Four five six.", got)
	})

	t.Run("no boundary falls back to word cut", func(t *testing.T) {
		text := "one two three four five six"
		assert.Equal(t, "one two three", truncateAtSentence(text, 3))
	})
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, wordCount(""))
	assert.Equal(t, 3, wordCount("  one\ttwo\nthree "))
}
