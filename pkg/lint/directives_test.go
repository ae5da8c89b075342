package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/jsast"
)

// mkComment builds a single-line comment at the given position.
func mkComment(typ jsast.TokenType, value string, line, col, start, end int) *jsast.Comment {
	return &jsast.Comment{
		Type:  typ,
		Value: value,
		Range: jsast.Range{Start: start, End: end},
		Loc: jsast.SourceLocation{
			Start: jsast.Position{Line: line, Column: col},
			End:   jsast.Position{Line: line, Column: col + (end - start)},
		},
	}
}

func TestParseDisableDirectives(t *testing.T) {
	tests := []struct {
		name      string
		comment   *jsast.Comment
		wantType  DirectiveType
		wantRules []string
		wantLine  int
	}{
		{
			name:      "block disable all",
			comment:   mkComment(jsast.TokBlockComment, " eslint-disable ", 3, 0, 20, 40),
			wantType:  DirDisable,
			wantRules: []string{""},
			wantLine:  3,
		},
		{
			name:      "block disable specific rules",
			comment:   mkComment(jsast.TokBlockComment, " eslint-disable no-var, semi ", 1, 0, 0, 33),
			wantType:  DirDisable,
			wantRules: []string{"no-var", "semi"},
			wantLine:  1,
		},
		{
			name:      "enable",
			comment:   mkComment(jsast.TokBlockComment, " eslint-enable no-var ", 5, 2, 60, 86),
			wantType:  DirEnable,
			wantRules: []string{"no-var"},
			wantLine:  5,
		},
		{
			name:      "line disable-line",
			comment:   mkComment(jsast.TokLineComment, " eslint-disable-line semi", 4, 10, 50, 77),
			wantType:  DirDisableLine,
			wantRules: []string{"semi"},
			wantLine:  4,
		},
		{
			name:      "line disable-next-line",
			comment:   mkComment(jsast.TokLineComment, " eslint-disable-next-line no-var", 2, 0, 11, 45),
			wantType:  DirDisableNextLine,
			wantRules: []string{"no-var"},
			wantLine:  2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := parseDirectives([]*jsast.Comment{tt.comment})
			require.Empty(t, res.problems)
			require.Len(t, res.disables, len(tt.wantRules))
			for i, d := range res.disables {
				assert.Equal(t, tt.wantType, d.Type)
				assert.Equal(t, tt.wantRules[i], d.RuleID)
				assert.Equal(t, tt.wantLine, d.Line)
				assert.Equal(t, len(tt.wantRules), d.GroupSize)
			}
		})
	}
}

func TestJustificationSeparator(t *testing.T) {
	comment := mkComment(jsast.TokBlockComment,
		" eslint-disable no-var -- migrating legacy module ", 1, 0, 0, 54)
	res := parseDirectives([]*jsast.Comment{comment})

	require.Len(t, res.disables, 1)
	assert.Equal(t, "no-var", res.disables[0].RuleID)
	assert.Equal(t, "migrating legacy module", res.disables[0].Justification)
}

// Line comments only carry the single-line disable forms.
func TestLineCommentLimits(t *testing.T) {
	res := parseDirectives([]*jsast.Comment{
		mkComment(jsast.TokLineComment, " eslint-disable no-var", 1, 0, 0, 24),
		mkComment(jsast.TokLineComment, " globals jQuery", 2, 0, 25, 42),
	})
	assert.Empty(t, res.disables)
	assert.Empty(t, res.globals)
	assert.Empty(t, res.problems)
}

func TestMultilineDisableLineRejected(t *testing.T) {
	comment := &jsast.Comment{
		Type:  jsast.TokBlockComment,
		Value: " eslint-disable-line no-var ",
		Range: jsast.Range{Start: 0, End: 40},
		Loc: jsast.SourceLocation{
			Start: jsast.Position{Line: 1, Column: 0},
			End:   jsast.Position{Line: 2, Column: 5},
		},
	}
	res := parseDirectives([]*jsast.Comment{comment})

	assert.Empty(t, res.disables)
	require.Len(t, res.problems, 1)
	assert.Contains(t, res.problems[0].Message, "should not span multiple lines")
	assert.Equal(t, 1, res.problems[0].Line)
}

func TestGlobalsDirective(t *testing.T) {
	comment := mkComment(jsast.TokBlockComment,
		" globals jQuery: readonly, legacy: writable, bare ", 1, 0, 0, 54)
	res := parseDirectives([]*jsast.Comment{comment})

	assert.Equal(t, config.GlobalReadonly, res.globals["jQuery"])
	assert.Equal(t, config.GlobalWritable, res.globals["legacy"])
	assert.Equal(t, config.GlobalReadonly, res.globals["bare"])
}

func TestGlobalsDirectiveInvalidValue(t *testing.T) {
	comment := mkComment(jsast.TokBlockComment, " global thing: shiny ", 1, 0, 0, 25)
	res := parseDirectives([]*jsast.Comment{comment})

	require.Len(t, res.problems, 1)
	assert.NotContains(t, res.globals, "thing")
}

func TestExportedAndEnvDirectives(t *testing.T) {
	res := parseDirectives([]*jsast.Comment{
		mkComment(jsast.TokBlockComment, " exported initialize, teardown ", 1, 0, 0, 35),
		mkComment(jsast.TokBlockComment, " eslint-env browser, node ", 2, 0, 36, 66),
	})

	assert.Equal(t, []string{"initialize", "teardown"}, res.exported)
	assert.Equal(t, []string{"browser", "node"}, res.envs)
}

func TestInlineConfigOverlay(t *testing.T) {
	comment := mkComment(jsast.TokBlockComment,
		` eslint no-var: 2, semi: [1, "never"] `, 1, 0, 0, 42)
	res := parseDirectives([]*jsast.Comment{comment})

	require.Empty(t, res.problems)
	assert.Equal(t, config.SeverityError, res.ruleOverrides["no-var"].Severity)
	assert.Equal(t, config.SeverityWarn, res.ruleOverrides["semi"].Severity)
	assert.Equal(t, []any{"never"}, res.ruleOverrides["semi"].Options)
}

func TestInlineConfigInvalidPayload(t *testing.T) {
	comment := mkComment(jsast.TokBlockComment, " eslint no-var: {{ ", 1, 0, 0, 23)
	res := parseDirectives([]*jsast.Comment{comment})

	assert.Empty(t, res.ruleOverrides)
	require.Len(t, res.problems, 1)
	assert.Contains(t, res.problems[0].Message, "Failed to parse inline configuration")
}

func TestShebangIsNotADirective(t *testing.T) {
	comment := mkComment(jsast.TokShebang, "/usr/bin/env node", 1, 0, 0, 19)
	res := parseDirectives([]*jsast.Comment{comment})
	assert.Empty(t, res.disables)
	assert.Empty(t, res.problems)
}

func TestUnknownEnvReported(t *testing.T) {
	comment := mkComment(jsast.TokBlockComment, " eslint-env fortran ", 1, 0, 0, 24)
	res := parseDirectives([]*jsast.Comment{comment})

	assert.Empty(t, res.envs)
	require.Len(t, res.problems, 1)
	assert.Contains(t, res.problems[0].Message, "fortran")
}
