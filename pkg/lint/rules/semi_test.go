package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSemiAlways(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantDiags int
		wantFix   string
	}{
		{
			name:      "missing semicolon",
			input:     "let x = 1\n",
			wantDiags: 1,
			wantFix:   "let x = 1;\n",
		},
		{
			name:      "present semicolon",
			input:     "let x = 1;\n",
			wantDiags: 0,
			wantFix:   "let x = 1;\n",
		},
		{
			name:      "expression statement",
			input:     "go()\n",
			wantDiags: 1,
			wantFix:   "go();\n",
		},
		{
			name:      "several statements",
			input:     "let a = 1\nlet b = 2\n",
			wantDiags: 2,
			wantFix:   "let a = 1;\nlet b = 2;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := runRule(t, "semi", tt.input)
			assert.Len(t, problems, tt.wantDiags)
			assert.Equal(t, tt.wantFix, runRuleFix(t, "semi", tt.input))
		})
	}
}

func TestSemiNever(t *testing.T) {
	problems := runRule(t, "semi", "let x = 1;\n", "never")
	require.Len(t, problems, 1)
	assert.Equal(t, "extraSemi", problems[0].MessageID)

	assert.Equal(t, "let x = 1\n", runRuleFix(t, "semi", "let x = 1;\n", "never"))
	assert.Empty(t, runRule(t, "semi", "let x = 1\n", "never"))
}

func TestSemiInvalidOption(t *testing.T) {
	problems := runRule(t, "semi", "let x = 1;\n", "sometimes")
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0].Message, "invalid")
	assert.Empty(t, problems[0].RuleID, "schema failures are configuration problems")
}
