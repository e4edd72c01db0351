package typemap

import (
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

type kotlinMap struct{}

func (kotlinMap) Language() lang.Language { return lang.Kotlin }

func (m kotlinMap) Canonicalize(spelling string) string {
	t := strings.TrimSpace(spelling)

	// Nullability is dropped; the target's null covers the absent case.
	t = strings.TrimSuffix(t, "?")

	for _, prefix := range []string{"List<", "MutableList<", "ArrayList<", "Collection<"} {
		if inner, ok := genericArg(t, prefix); ok {
			return listOf(m.Canonicalize(inner))
		}
	}
	for _, prefix := range []string{"Set<", "MutableSet<", "HashSet<"} {
		if inner, ok := genericArg(t, prefix); ok {
			return setOf(m.Canonicalize(inner))
		}
	}
	for _, prefix := range []string{"Map<", "MutableMap<", "HashMap<"} {
		if args, ok := genericArg(t, prefix); ok {
			if k, v, ok := splitKeyValue(args); ok {
				return mapOf(m.Canonicalize(k), m.Canonicalize(v))
			}
		}
	}
	if inner, ok := genericArg(t, "Array<"); ok {
		return m.Canonicalize(inner) + "[]"
	}
	// Coroutine channels approximate to a blocking queue.
	if inner, ok := genericArg(t, "Channel<"); ok {
		return queueOf(m.Canonicalize(inner))
	}

	switch t {
	case "Int":
		return "int"
	case "Long":
		return "long"
	case "Short":
		return "short"
	case "Byte":
		return "byte"
	case "Double":
		return "double"
	case "Float":
		return "float"
	case "Boolean":
		return "boolean"
	case "Char":
		return "char"
	case "String":
		return "String"
	case "Any":
		return "Object"
	case "Unit", "Nothing":
		return "void"
	case "IntArray":
		return "int[]"
	case "ByteArray":
		return "byte[]"
	case "List":
		return listOf("Object")
	case "Map":
		return mapOf("Object", "Object")
	case "Set":
		return setOf("Object")
	}
	return t
}
