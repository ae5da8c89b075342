package lint

import (
	"regexp"
	"strings"
)

// placeholderPattern matches {{name}} message placeholders, tolerating
// surrounding whitespace inside the braces.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([^{}\s]+)\s*\}\}`)

// interpolate substitutes {{name}} placeholders in message with matching
// keys from data. Placeholders without a matching key are left literal.
func interpolate(message string, data map[string]string) string {
	if len(data) == 0 || !strings.Contains(message, "{{") {
		return message
	}
	return placeholderPattern.ReplaceAllStringFunc(message, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		if value, ok := data[name]; ok {
			return value
		}
		return match
	})
}
