package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStdioPrompter_Confirm(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "yes\n", true},
		{"y", "y\n", true},
		{"upper case", "  Y \n", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"anything else", "sure\n", false},
		{"eof", "", false},
		{"no newline", "yes", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			p := NewStdioPrompter(strings.NewReader(tt.input), &out)

			got, err := p.Confirm(`Delete task "Buy milk"?`)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, "Delete task \"Buy milk\"? [y/N] \n", out.String())
		})
	}
}

func TestStdioPrompter_ReadsSuccessiveLines(t *testing.T) {
	var out bytes.Buffer
	p := NewStdioPrompter(strings.NewReader("n\ny\n"), &out)

	first, err := p.Confirm("First?")
	require.NoError(t, err)
	second, err := p.Confirm("Second?")
	require.NoError(t, err)

	assert.False(t, first)
	assert.True(t, second)
}
