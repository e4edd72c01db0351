package typemap

import (
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

type crystalMap struct{}

func (crystalMap) Language() lang.Language { return lang.Crystal }

// parenArg extracts the argument of "Outer(...)" style generics.
func parenArg(spelling, prefix string) (string, bool) {
	if !strings.HasPrefix(spelling, prefix) || !strings.HasSuffix(spelling, ")") {
		return "", false
	}
	return spelling[len(prefix) : len(spelling)-1], true
}

func (m crystalMap) Canonicalize(spelling string) string {
	t := strings.TrimSpace(spelling)

	// Nilable types drop the marker; the target's null covers nil.
	t = strings.TrimSuffix(t, "?")

	if inner, ok := parenArg(t, "Array("); ok {
		return listOf(m.Canonicalize(inner))
	}
	if inner, ok := parenArg(t, "Set("); ok {
		return setOf(m.Canonicalize(inner))
	}
	if args, ok := parenArg(t, "Hash("); ok {
		if k, v, ok := splitKeyValue(args); ok {
			return mapOf(m.Canonicalize(k), m.Canonicalize(v))
		}
	}
	// Channels approximate to a blocking queue.
	if inner, ok := parenArg(t, "Channel("); ok {
		return queueOf(m.Canonicalize(inner))
	}

	switch t {
	case "Int8":
		return "byte"
	case "Int16":
		return "short"
	case "Int32", "UInt8", "UInt16", "UInt32":
		return "int"
	case "Int64", "UInt64":
		return "long"
	case "Float32":
		return "float"
	case "Float64":
		return "double"
	case "Bool":
		return "boolean"
	case "Char":
		return "char"
	case "String", "Symbol":
		return "String"
	case "Nil", "Void":
		return "void"
	case "Array":
		return listOf("Object")
	case "Hash":
		return mapOf("Object", "Object")
	case "Set":
		return setOf("Object")
	}
	return t
}
