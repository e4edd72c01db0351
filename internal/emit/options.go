package emit

// Option keys recognized by the Java emitter. Unrecognized keys are ignored
// so callers can pass configuration through without filtering.
const (
	// OptGenerateImports controls the import block at the top of the file.
	OptGenerateImports = "generate-imports"
	// OptGenerateAccessors synthesizes getters and setters for fields that
	// have none.
	OptGenerateAccessors = "generate-accessors"
	// OptGenerateComments controls generated header and idiom comments.
	OptGenerateComments = "generate-comments"
	// OptGenerateJavadoc emits a Javadoc block above public declarations.
	OptGenerateJavadoc = "generate-javadoc"
	// OptIndentSize is the number of spaces per indent level.
	OptIndentSize = "indent-size"
	// OptConcurrencyAsComment annotates queue-rendered channel types with a
	// translation note.
	OptConcurrencyAsComment = "concurrency-as-comment"
)

// Options carries emitter configuration. Values are looked up by key with a
// typed getter; a missing or mistyped value falls back to the default.
type Options map[string]any

// DefaultOptions returns the stock emitter configuration.
func DefaultOptions() Options {
	return Options{
		OptGenerateImports:      true,
		OptGenerateAccessors:    true,
		OptGenerateComments:     true,
		OptGenerateJavadoc:      false,
		OptIndentSize:           4,
		OptConcurrencyAsComment: true,
	}
}

// Bool reads a boolean option, falling back when absent or mistyped.
func (o Options) Bool(key string, fallback bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return fallback
}

// Int reads an integer option, falling back when absent, mistyped, or
// non-positive.
func (o Options) Int(key string, fallback int) int {
	if v, ok := o[key]; ok {
		if n, ok := v.(int); ok && n > 0 {
			return n
		}
	}
	return fallback
}

// With returns a copy of the options with one key overridden. The receiver
// is not modified.
func (o Options) With(key string, value any) Options {
	out := make(Options, len(o)+1)
	for k, v := range o {
		out[k] = v
	}
	out[key] = value
	return out
}
