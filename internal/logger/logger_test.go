package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	for _, json := range []bool{false, true} {
		for _, debug := range []bool{false, true} {
			log, err := New(json, debug)
			require.NoError(t, err)
			require.NotNil(t, log)
			assert.Equal(t, debug, log.Core().Enabled(-1)) // -1 is zap's debug level
		}
	}
}

func TestTruncateForLog(t *testing.T) {
	tests := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"within limit", "short", 10, "short"},
		{"truncated", "0123456789abc", 10, "0123456789..."},
		{"trims whitespace", "  padded  ", 10, "padded"},
		{"zero limit", "anything", 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncateForLog(tt.in, tt.limit))
		})
	}
}
