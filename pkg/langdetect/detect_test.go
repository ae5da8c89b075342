package langdetect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectByExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{path: "app.js", want: LangJavaScript},
		{path: "mod.mjs", want: LangJavaScript},
		{path: "legacy.cjs", want: LangJavaScript},
		{path: "component.jsx", want: LangJSX},
		{path: "service.ts", want: LangTypeScript},
		{path: "view.tsx", want: LangTypeScript},
		{path: "data.json", want: LangJSON},
		{path: "UPPER.JS", want: LangJavaScript},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Detect(tt.path, nil), tt.path)
	}
}

func TestDetectByShebang(t *testing.T) {
	content := []byte("#!/usr/bin/env node\nconsole.log(1);\n")
	assert.Equal(t, LangJavaScript, Detect("bin/tool", content))
}

func TestDetectEmptyUnknown(t *testing.T) {
	assert.Equal(t, LangUnknown, Detect("README", nil))
}

func TestLintable(t *testing.T) {
	assert.True(t, Lintable(LangJavaScript))
	assert.True(t, Lintable(LangJSX))
	assert.False(t, Lintable(LangTypeScript))
	assert.False(t, Lintable(LangJSON))
	assert.False(t, Lintable(LangUnknown))
}
