package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoVar(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantDiags int
		wantFix   string
	}{
		{
			name:      "flags var",
			input:     "var x = 1;\n",
			wantDiags: 1,
			wantFix:   "let x = 1;\n",
		},
		{
			name:      "multiple declarations",
			input:     "var a = 1;\nvar b = 2;\n",
			wantDiags: 2,
			wantFix:   "let a = 1;\nlet b = 2;\n",
		},
		{
			name:      "let is fine",
			input:     "let x = 1;\n",
			wantDiags: 0,
			wantFix:   "let x = 1;\n",
		},
		{
			name:      "const is fine",
			input:     "const x = 1;\n",
			wantDiags: 0,
			wantFix:   "const x = 1;\n",
		},
		{
			name:      "var inside function",
			input:     "function f() { var inner = 1; return inner; }\n",
			wantDiags: 1,
			wantFix:   "function f() { let inner = 1; return inner; }\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := runRule(t, "no-var", tt.input)
			assert.Len(t, problems, tt.wantDiags)
			for _, p := range problems {
				assert.Equal(t, "no-var", p.RuleID)
				assert.Equal(t, "unexpectedVar", p.MessageID)
				require.NotNil(t, p.Fix)
			}
			assert.Equal(t, tt.wantFix, runRuleFix(t, "no-var", tt.input))
		})
	}
}
