// Package rules provides the built-in lint rules. Each rule registers
// itself with the default registry during init; importing the package for
// side effects makes the rule set available:
//
//	import _ "github.com/yaklabco/gojslint/pkg/lint/rules"
package rules
