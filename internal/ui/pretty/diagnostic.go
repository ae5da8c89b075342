package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/gojslint/pkg/config"
	"github.com/yaklabco/gojslint/pkg/lint"
)

// Diagnostic renders one problem as a single line:
//
//	path:line:col  error  Unexpected var, use let or const instead.  no-var
func Diagnostic(s Styles, path string, p lint.Problem) string {
	var b strings.Builder

	position := fmt.Sprintf("%s:%d:%d", path, p.Line, p.Column)
	if s.Enabled {
		position = s.Path.Render(path) + s.Position.Render(fmt.Sprintf(":%d:%d", p.Line, p.Column))
	}
	b.WriteString(position)
	b.WriteString("  ")

	severity := "warn"
	style := s.Warning
	if p.Severity == config.SeverityError {
		severity = "error"
		style = s.Error
	}
	if p.Fatal {
		severity = "fatal"
		style = s.Error
	}
	if s.Enabled {
		b.WriteString(style.Render(severity))
	} else {
		b.WriteString(severity)
	}
	b.WriteString("  ")

	if s.Enabled {
		b.WriteString(s.Message.Render(p.Message))
	} else {
		b.WriteString(p.Message)
	}

	if p.RuleID != "" {
		b.WriteString("  ")
		if s.Enabled {
			b.WriteString(s.RuleID.Render(p.RuleID))
		} else {
			b.WriteString(p.RuleID)
		}
	}
	return b.String()
}
