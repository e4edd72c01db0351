package typemap

import (
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

type scalaMap struct{}

func (scalaMap) Language() lang.Language { return lang.Scala }

func (m scalaMap) Canonicalize(spelling string) string {
	t := strings.TrimSpace(spelling)

	// Option[T] unwraps; the target's null stands in for None.
	for _, prefix := range []string{"Option[", "Some["} {
		if inner, ok := bracketArg(t, prefix); ok {
			return m.Canonicalize(inner)
		}
	}
	for _, prefix := range []string{"List[", "Seq[", "Vector[", "Iterable[", "ListBuffer["} {
		if inner, ok := bracketArg(t, prefix); ok {
			return listOf(m.Canonicalize(inner))
		}
	}
	for _, prefix := range []string{"Set[", "HashSet["} {
		if inner, ok := bracketArg(t, prefix); ok {
			return setOf(m.Canonicalize(inner))
		}
	}
	for _, prefix := range []string{"Map[", "HashMap["} {
		if args, ok := bracketArg(t, prefix); ok {
			if k, v, ok := splitKeyValue(args); ok {
				return mapOf(m.Canonicalize(k), m.Canonicalize(v))
			}
		}
	}
	if inner, ok := bracketArg(t, "Array["); ok {
		return m.Canonicalize(inner) + "[]"
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
	case "Any", "AnyRef", "AnyVal":
		return "Object"
	case "Unit", "Nothing":
		return "void"
	case "List", "Seq", "Vector":
		return listOf("Object")
	case "Map":
		return mapOf("Object", "Object")
	case "Set":
		return setOf("Object")
	}
	return t
}
