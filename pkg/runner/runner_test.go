package runner_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gojslint/internal/jstest"
	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint"
	_ "github.com/yaklabco/gojslint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/gojslint/pkg/runner"
)

func newRunner() *runner.Runner {
	linter := lint.New(nil)
	linter.SetDefaultParser(jstest.New())

	cfg := config.New()
	cfg.Rules["no-var"] = config.RuleEntry{Severity: config.SeverityError}
	return runner.New(linter, cfg)
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRunReportsProblems(t *testing.T) {
	dir := t.TempDir()
	clean := writeFile(t, dir, "clean.js", "let x = 1;\n")
	dirty := writeFile(t, dir, "dirty.js", "var y = 2;\n")

	result, err := newRunner().Run(context.Background(), []string{clean, dirty}, runner.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, result.Files, 2)
	assert.Empty(t, result.Files[0].Problems)
	require.Len(t, result.Files[1].Problems, 1)
	assert.Equal(t, "no-var", result.Files[1].Problems[0].RuleID)

	assert.True(t, result.HasProblems())
	assert.True(t, result.HasErrors())
	assert.Equal(t, 1, result.ErrorCount())
}

func TestRunFixWritesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fixme.js", "var y = 2;\n")

	result, err := newRunner().Run(context.Background(), []string{path}, runner.Options{Fix: true})
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.True(t, result.Files[0].Fixed)
	assert.True(t, result.Files[0].Written)
	assert.Empty(t, result.Files[0].Problems)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "let y = 2;\n", string(content))
}

func TestRunDryRunLeavesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "fixme.js", "var y = 2;\n")

	result, err := newRunner().Run(context.Background(), []string{path}, runner.Options{Fix: true, DryRun: true})
	require.NoError(t, err)

	assert.True(t, result.Files[0].Fixed)
	assert.False(t, result.Files[0].Written)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "var y = 2;\n", string(content))
}

func TestRunSkipsNonJavaScript(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "data.json", "{\"a\": 1}\n")

	result, err := newRunner().Run(context.Background(), []string{path}, runner.DefaultOptions())
	require.NoError(t, err)

	assert.True(t, result.Files[0].Skipped)
	assert.Contains(t, result.Files[0].SkipReason, "json")
}

func TestRunMissingFile(t *testing.T) {
	result, err := newRunner().Run(context.Background(),
		[]string{filepath.Join(t.TempDir(), "ghost.js")}, runner.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, result.Files, 1)
	assert.Error(t, result.Files[0].Err)
	assert.True(t, result.HasErrors())
}
