package logging

// Field name constants for structured logging.
// Using constants prevents typos across call sites.
const (
	// Common fields.
	FieldError = "error"
	FieldPath  = "path"
	FieldFiles = "files"

	// Lint fields.
	FieldRule     = "rule"
	FieldSeverity = "severity"
	FieldProblems = "problems"
	FieldFixes    = "fixes"
	FieldPasses   = "passes"
	FieldLanguage = "language"

	// Configuration fields.
	FieldConfig     = "config"
	FieldSourceType = "source_type"
	FieldFix        = "fix"
	FieldDryRun     = "dry_run"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"
)
