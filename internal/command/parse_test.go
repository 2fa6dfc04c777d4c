package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	testcases := []struct {
		name     string
		text     string
		expected []string
	}{
		{
			name:     "mixedCommandsAndText",
			text:     "/lgtm\n/kind bug\nhello\n/",
			expected: []string{"lgtm", "kind/bug"},
		},
		{
			name:     "verbWithoutArgument",
			text:     "/approve",
			expected: []string{"approve"},
		},
		{
			name:     "crlfLineEndings",
			text:     "/lgtm\r\n/hold\r\n",
			expected: []string{"lgtm", "hold"},
		},
		{
			name:     "duplicatesPreserved",
			text:     "/lgtm\n/lgtm",
			expected: []string{"lgtm", "lgtm"},
		},
		{
			name:     "extraTokensIgnored",
			text:     "/kind bug please\n/approve no-issue",
			expected: []string{"kind/bug", "approve"},
		},
		{
			name:     "kindWithoutArgument",
			text:     "/kind",
			expected: []string{"kind"},
		},
		{
			name:     "emptyVerb",
			text:     "/ lgtm",
			expected: nil,
		},
		{
			name:     "slashNotAtLineStart",
			text:     " /lgtm\nlooks good /approve",
			expected: nil,
		},
		{
			name:     "unmappedVerbsAreReturned",
			text:     "/retest\n/assign @someone",
			expected: []string{"retest", "assign"},
		},
		{
			name:     "empty",
			text:     "",
			expected: nil,
		},
	}

	for _, tc := range testcases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Parse(tc.text))
		})
	}
}
