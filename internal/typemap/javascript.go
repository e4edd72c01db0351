package typemap

import (
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

// javascriptMap covers both JavaScript and TypeScript annotations; plain
// JavaScript declarations usually carry no types and default to Object at
// the parser level.
type javascriptMap struct{}

func (javascriptMap) Language() lang.Language { return lang.JavaScript }

func (m javascriptMap) Canonicalize(spelling string) string {
	t := strings.TrimSpace(spelling)

	// "T | null" and "T | undefined" unions unwrap to T.
	if parts := splitTopLevel(t, '|'); len(parts) > 1 {
		var kept []string
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "null" && p != "undefined" {
				kept = append(kept, p)
			}
		}
		if len(kept) == 1 {
			return m.Canonicalize(kept[0])
		}
		return "Object"
	}

	if strings.HasSuffix(t, "[]") {
		return listOf(m.Canonicalize(t[:len(t)-2]))
	}
	if inner, ok := genericArg(t, "Array<"); ok {
		return listOf(m.Canonicalize(inner))
	}
	if inner, ok := genericArg(t, "Set<"); ok {
		return setOf(m.Canonicalize(inner))
	}
	for _, prefix := range []string{"Map<", "Record<"} {
		if args, ok := genericArg(t, prefix); ok {
			if k, v, ok := splitKeyValue(args); ok {
				return mapOf(m.Canonicalize(k), m.Canonicalize(v))
			}
		}
	}
	// Promise<T> unwraps; async flow is not carried over.
	if inner, ok := genericArg(t, "Promise<"); ok {
		return m.Canonicalize(inner)
	}

	switch t {
	case "number":
		return "double"
	case "bigint":
		return "long"
	case "string":
		return "String"
	case "boolean":
		return "boolean"
	case "void", "undefined", "never":
		return "void"
	case "any", "unknown", "object":
		return "Object"
	case "null":
		return "Object"
	}
	return t
}
