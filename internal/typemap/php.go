package typemap

import (
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

type phpMap struct{}

func (phpMap) Language() lang.Language { return lang.PHP }

func (m phpMap) Canonicalize(spelling string) string {
	t := strings.TrimSpace(spelling)

	// Nullable markers and namespace qualifiers carry no meaning here.
	t = strings.TrimPrefix(t, "?")
	if idx := strings.LastIndexByte(t, '\\'); idx >= 0 {
		t = t[idx+1:]
	}

	// Union types collapse to the first non-null member.
	if strings.ContainsRune(t, '|') {
		for _, part := range strings.Split(t, "|") {
			part = strings.TrimSpace(part)
			if part != "" && !strings.EqualFold(part, "null") {
				return m.Canonicalize(part)
			}
		}
		return "Object"
	}

	switch t {
	case "int", "integer":
		return "int"
	case "float", "double":
		return "double"
	case "string":
		return "String"
	case "bool", "boolean":
		return "boolean"
	case "void", "never":
		return "void"
	case "array", "iterable":
		return listOf("Object")
	case "mixed", "object", "callable", "null":
		return "Object"
	}
	return t
}
