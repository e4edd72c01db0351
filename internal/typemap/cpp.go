package typemap

import (
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

// cppMap serves both C and C++ sources; the C subset simply never produces
// the std:: spellings.
type cppMap struct{}

func (cppMap) Language() lang.Language { return lang.Cpp }

func (m cppMap) Canonicalize(spelling string) string {
	t := strings.TrimSpace(spelling)

	t = strings.TrimPrefix(t, "const ")
	t = strings.TrimSuffix(t, "&")
	t = strings.TrimSpace(t)

	// char* is the C string idiom; other pointers just strip.
	if t == "char*" || t == "char *" {
		return "String"
	}
	for strings.HasSuffix(t, "*") {
		t = strings.TrimSpace(t[:len(t)-1])
	}

	for _, prefix := range []string{"std::vector<", "vector<", "std::list<", "std::deque<"} {
		if inner, ok := genericArg(t, prefix); ok {
			return listOf(m.Canonicalize(inner))
		}
	}
	for _, prefix := range []string{"std::set<", "std::unordered_set<", "set<"} {
		if inner, ok := genericArg(t, prefix); ok {
			return setOf(m.Canonicalize(inner))
		}
	}
	for _, prefix := range []string{"std::map<", "std::unordered_map<", "map<"} {
		if args, ok := genericArg(t, prefix); ok {
			if k, v, ok := splitKeyValue(args); ok {
				return mapOf(m.Canonicalize(k), m.Canonicalize(v))
			}
		}
	}
	for _, prefix := range []string{"std::unique_ptr<", "std::shared_ptr<", "std::optional<"} {
		if inner, ok := genericArg(t, prefix); ok {
			return m.Canonicalize(inner)
		}
	}
	if inner, ok := genericArg(t, "std::queue<"); ok {
		return queueOf(m.Canonicalize(inner))
	}

	// Fixed arrays arrive as "int[10]" from the declarator splitter.
	if open := strings.Index(t, "["); open > 0 && strings.HasSuffix(t, "]") {
		return m.Canonicalize(t[:open]) + "[]"
	}

	switch t {
	case "int", "int32_t", "uint32_t", "unsigned", "unsigned int":
		return "int"
	case "long", "long long", "int64_t", "uint64_t", "size_t", "unsigned long":
		return "long"
	case "short", "int16_t", "uint16_t", "unsigned short":
		return "short"
	case "int8_t", "uint8_t", "unsigned char":
		return "byte"
	case "float":
		return "float"
	case "double", "long double":
		return "double"
	case "bool":
		return "boolean"
	case "char":
		return "char"
	case "std::string", "string":
		return "String"
	case "void":
		return "void"
	case "auto":
		return "Object"
	}
	return t
}
