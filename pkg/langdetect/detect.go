// Package langdetect classifies input files so the runner can skip
// non-JavaScript content. It combines extension checks with go-enry
// content classification for extensionless or ambiguous inputs.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Language constants for the dialects the linter cares about.
const (
	LangJavaScript = "javascript"
	LangJSX        = "jsx"
	LangTypeScript = "typescript"
	LangJSON       = "json"
	LangUnknown    = "unknown"
)

// jsExtensions maps file extensions straight to a language.
//
//nolint:gochecknoglobals // Shared immutable table
var jsExtensions = map[string]string{
	".js":   LangJavaScript,
	".mjs":  LangJavaScript,
	".cjs":  LangJavaScript,
	".jsx":  LangJSX,
	".ts":   LangTypeScript,
	".mts":  LangTypeScript,
	".cts":  LangTypeScript,
	".tsx":  LangTypeScript,
	".json": LangJSON,
}

// Detect classifies a file by path and content.
func Detect(path string, content []byte) string {
	if lang, ok := jsExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	if len(content) == 0 {
		return LangUnknown
	}

	// Shebang is the most reliable signal for extensionless scripts.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	candidates := []string{"JavaScript", "TypeScript", "JSON", "HTML", "CSS", "Markdown"}
	if lang, safe := enry.GetLanguageByClassifier(content, candidates); safe && lang != "" {
		return normalize(lang)
	}
	return LangUnknown
}

// Lintable reports whether the detected language is one the linter
// parses.
func Lintable(lang string) bool {
	return lang == LangJavaScript || lang == LangJSX
}

func normalize(enryName string) string {
	switch enryName {
	case "JavaScript":
		return LangJavaScript
	case "JSX":
		return LangJSX
	case "TypeScript", "TSX":
		return LangTypeScript
	case "JSON":
		return LangJSON
	default:
		return LangUnknown
	}
}
