package typemap

import (
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

type csharpMap struct{}

func (csharpMap) Language() lang.Language { return lang.CSharp }

func (m csharpMap) Canonicalize(spelling string) string {
	t := strings.TrimSpace(spelling)

	t = strings.TrimSuffix(t, "?")

	if strings.HasSuffix(t, "[]") {
		return m.Canonicalize(t[:len(t)-2]) + "[]"
	}
	for _, prefix := range []string{"List<", "IList<", "IEnumerable<", "ICollection<"} {
		if inner, ok := genericArg(t, prefix); ok {
			return listOf(m.Canonicalize(inner))
		}
	}
	for _, prefix := range []string{"HashSet<", "ISet<"} {
		if inner, ok := genericArg(t, prefix); ok {
			return setOf(m.Canonicalize(inner))
		}
	}
	for _, prefix := range []string{"Dictionary<", "IDictionary<"} {
		if args, ok := genericArg(t, prefix); ok {
			if k, v, ok := splitKeyValue(args); ok {
				return mapOf(m.Canonicalize(k), m.Canonicalize(v))
			}
		}
	}
	if inner, ok := genericArg(t, "Nullable<"); ok {
		return m.Canonicalize(inner)
	}
	// Task<T> unwraps; the async machinery is not carried over.
	if inner, ok := genericArg(t, "Task<"); ok {
		return m.Canonicalize(inner)
	}
	if inner, ok := genericArg(t, "ConcurrentQueue<"); ok {
		return queueOf(m.Canonicalize(inner))
	}
	if inner, ok := genericArg(t, "BlockingCollection<"); ok {
		return queueOf(m.Canonicalize(inner))
	}

	switch t {
	case "int", "Int32":
		return "int"
	case "long", "Int64":
		return "long"
	case "short", "Int16":
		return "short"
	case "byte", "sbyte":
		return "byte"
	case "uint":
		return "int"
	case "ulong":
		return "long"
	case "ushort":
		return "short"
	case "float", "Single":
		return "float"
	case "double", "Double":
		return "double"
	case "decimal":
		return "double"
	case "bool", "Boolean":
		return "boolean"
	case "char":
		return "char"
	case "string", "String":
		return "String"
	case "void", "Task":
		return "void"
	case "object", "dynamic", "var":
		return "Object"
	}
	return t
}
