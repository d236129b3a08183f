package ddl

// AnalystViewField selects the field name emitted for a Cortex Analyst
// view resource. Both names appear in statements accepted by the platform
// and the documentation does not settle it, so the choice stays
// configurable instead of being hardcoded.
type AnalystViewField string

const (
	AnalystViewSemanticView AnalystViewField = "semantic_view"
	AnalystViewIdentifier   AnalystViewField = "identifier"
)

// Options controls the formatting decisions that historically drifted
// between statement generators: whether long descriptions are truncated,
// whether embedded double quotes are escaped, whether the profile section
// is emitted at all, and which field name a Cortex Analyst view uses.
type Options struct {
	TruncateDescriptions bool
	EscapeEmbeddedQuotes bool
	IncludeProfile       bool
	AnalystViewField     AnalystViewField
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		TruncateDescriptions: true,
		EscapeEmbeddedQuotes: false,
		IncludeProfile:       true,
		AnalystViewField:     AnalystViewSemanticView,
	}
}
