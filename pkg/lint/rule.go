package lint

// MetaType categorizes what a rule reports on.
type MetaType string

// Rule categories.
const (
	TypeProblem    MetaType = "problem"
	TypeSuggestion MetaType = "suggestion"
	TypeLayout     MetaType = "layout"
)

// DocsMeta is the human-facing documentation of a rule.
type DocsMeta struct {
	// Description is a short summary of what the rule checks.
	Description string

	// Recommended marks rules enabled by the recommended preset.
	Recommended bool

	// URL links to the rule's documentation.
	URL string
}

// Meta describes a rule's capabilities and messages.
type Meta struct {
	// Type categorizes the rule.
	Type MetaType

	// Docs is the rule documentation.
	Docs DocsMeta

	// Fixable is "code" or "whitespace" when the rule provides fixes;
	// empty otherwise. A rule returning a fix without declaring this is
	// a fatal error.
	Fixable string

	// HasSuggestions must be true for rules that attach suggestions.
	HasSuggestions bool

	// Messages maps message ids to their templates. Templates may carry
	// {{name}} placeholders.
	Messages map[string]string

	// Schema validates the rule's configured options, nil when the rule
	// takes none.
	Schema func(options []any) error

	// Deprecated marks rules kept only for compatibility.
	Deprecated bool

	// ReplacedBy lists successor rule ids for deprecated rules.
	ReplacedBy []string
}

// ListenerMap binds selector strings (and code-path event names) to
// listeners. Selector values must be NodeListener-compatible functions;
// code-path events use the signatures declared in the codepath package.
type ListenerMap map[string]any

// Rule is the contract every lint rule implements: static metadata plus a
// factory that installs listeners for one file.
type Rule interface {
	// ID returns the rule's unique identifier (e.g. "no-var").
	ID() string

	// Meta returns the rule's static metadata.
	Meta() *Meta

	// Create is invoked exactly once per file and returns the rule's
	// listener map. Returning a nil map (or an error) is fatal for the
	// run.
	Create(ctx *RuleContext) (ListenerMap, error)
}

// BaseRule provides the boilerplate half of the Rule interface.
// Embed it and implement Create.
type BaseRule struct {
	id   string
	meta *Meta
}

// NewBaseRule creates the embeddable base with the given id and metadata.
func NewBaseRule(id string, meta *Meta) BaseRule {
	return BaseRule{id: id, meta: meta}
}

// ID returns the rule's unique identifier.
func (r *BaseRule) ID() string {
	return r.id
}

// Meta returns the rule's static metadata.
func (r *BaseRule) Meta() *Meta {
	return r.meta
}
