package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/fix"
)

func TestEqeqeq(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantDiags int
	}{
		{name: "loose equality", input: "a == b;\n", wantDiags: 1},
		{name: "loose inequality", input: "a != b;\n", wantDiags: 1},
		{name: "strict equality passes", input: "a === b;\n", wantDiags: 0},
		{name: "strict inequality passes", input: "a !== b;\n", wantDiags: 0},
		{name: "other operators pass", input: "a < b;\n", wantDiags: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			problems := runRule(t, "eqeqeq", tt.input)
			assert.Len(t, problems, tt.wantDiags)
		})
	}
}

func TestEqeqeqSuggestion(t *testing.T) {
	problems := runRule(t, "eqeqeq", "a == b;\n")
	require.Len(t, problems, 1)

	p := problems[0]
	assert.Equal(t, "Expected '===' and instead saw '=='.", p.Message)
	assert.Nil(t, p.Fix, "eqeqeq only suggests, never auto-fixes")

	require.Len(t, p.Suggestions, 1)
	suggestion := p.Suggestions[0]
	assert.Equal(t, "Use '===' instead.", suggestion.Desc)

	applied := fix.Apply([]byte("a == b;\n"), []fix.TextEdit{suggestion.Fix})
	assert.Equal(t, "a === b;\n", string(applied))
}
