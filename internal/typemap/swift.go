package typemap

import (
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

type swiftMap struct{}

func (swiftMap) Language() lang.Language { return lang.Swift }

func (m swiftMap) Canonicalize(spelling string) string {
	t := strings.TrimSpace(spelling)

	t = strings.TrimSuffix(t, "?")
	t = strings.TrimSuffix(t, "!")
	t = strings.TrimPrefix(t, "inout ")

	if inner, ok := genericArg(t, "Optional<"); ok {
		return m.Canonicalize(inner)
	}
	if inner, ok := genericArg(t, "Array<"); ok {
		return listOf(m.Canonicalize(inner))
	}
	if inner, ok := genericArg(t, "Set<"); ok {
		return setOf(m.Canonicalize(inner))
	}
	if args, ok := genericArg(t, "Dictionary<"); ok {
		if k, v, ok := splitKeyValue(args); ok {
			return mapOf(m.Canonicalize(k), m.Canonicalize(v))
		}
	}

	// [K: V] and [T] shorthand.
	if strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]") {
		body := t[1 : len(t)-1]
		if k, v, ok := splitKeyValue(strings.ReplaceAll(body, ":", ",")); ok {
			return mapOf(m.Canonicalize(k), m.Canonicalize(v))
		}
		return listOf(m.Canonicalize(strings.TrimSpace(body)))
	}

	switch t {
	case "Int", "Int32", "UInt32":
		return "int"
	case "Int64", "UInt64", "UInt":
		return "long"
	case "Int16", "UInt16":
		return "short"
	case "Int8", "UInt8":
		return "byte"
	case "Double":
		return "double"
	case "Float":
		return "float"
	case "Bool":
		return "boolean"
	case "Character":
		return "char"
	case "String":
		return "String"
	case "Void", "()":
		return "void"
	case "Any", "AnyObject":
		return "Object"
	case "Data":
		return "byte[]"
	}
	return t
}
