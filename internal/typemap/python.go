package typemap

import (
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

type pythonMap struct{}

func (pythonMap) Language() lang.Language { return lang.Python }

// bracketArg extracts the argument of "Outer[...]" style annotations.
func bracketArg(spelling, prefix string) (string, bool) {
	if !strings.HasPrefix(spelling, prefix) || !strings.HasSuffix(spelling, "]") {
		return "", false
	}
	return spelling[len(prefix) : len(spelling)-1], true
}

func (m pythonMap) Canonicalize(spelling string) string {
	t := strings.TrimSpace(spelling)

	if inner, ok := bracketArg(t, "Optional["); ok {
		return m.Canonicalize(inner)
	}
	for _, prefix := range []string{"List[", "list[", "Sequence[", "Iterable["} {
		if inner, ok := bracketArg(t, prefix); ok {
			return listOf(m.Canonicalize(inner))
		}
	}
	for _, prefix := range []string{"Set[", "set[", "FrozenSet[", "frozenset["} {
		if inner, ok := bracketArg(t, prefix); ok {
			return setOf(m.Canonicalize(inner))
		}
	}
	for _, prefix := range []string{"Dict[", "dict[", "Mapping["} {
		if args, ok := bracketArg(t, prefix); ok {
			if k, v, ok := splitKeyValue(args); ok {
				return mapOf(m.Canonicalize(k), m.Canonicalize(v))
			}
		}
	}
	if inner, ok := bracketArg(t, "Tuple["); ok {
		_ = inner
		return "Object[]"
	}
	// queue.Queue approximates to a blocking queue.
	if t == "Queue" || t == "queue.Queue" {
		return queueOf("Object")
	}

	switch t {
	case "int":
		return "int"
	case "float":
		return "double"
	case "str":
		return "String"
	case "bool":
		return "boolean"
	case "bytes", "bytearray":
		return "byte[]"
	case "None", "NoneType":
		return "void"
	case "Any", "object":
		return "Object"
	case "list":
		return listOf("Object")
	case "dict":
		return mapOf("Object", "Object")
	case "set":
		return setOf("Object")
	case "tuple":
		return "Object[]"
	}
	return t
}
