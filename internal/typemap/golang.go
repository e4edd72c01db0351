package typemap

import (
	"regexp"
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

type goMap struct{}

func (goMap) Language() lang.Language { return lang.Go }

var goFixedArrayRe = regexp.MustCompile(`^\[\d+\]`)

func (m goMap) Canonicalize(spelling string) string {
	t := strings.TrimSpace(spelling)

	t = strings.TrimPrefix(t, "*")

	// Channel direction is dropped along with the channel semantics.
	for _, prefix := range []string{"chan<- ", "<-chan ", "chan "} {
		if strings.HasPrefix(t, prefix) {
			return queueOf(m.Canonicalize(t[len(prefix):]))
		}
	}

	if goFixedArrayRe.MatchString(t) {
		elem := goFixedArrayRe.ReplaceAllString(t, "")
		return m.Canonicalize(elem) + "[]"
	}
	if strings.HasPrefix(t, "[]") {
		return listOf(m.Canonicalize(t[2:]))
	}
	if strings.HasPrefix(t, "map[") {
		if close := strings.Index(t, "]"); close > 4 {
			key := t[4:close]
			value := t[close+1:]
			return mapOf(m.Canonicalize(key), m.Canonicalize(value))
		}
	}

	switch t {
	case "bool":
		return "boolean"
	case "byte", "int8", "uint8":
		return "byte"
	case "rune":
		return "char"
	case "int", "int32", "uint", "uint32":
		return "int"
	case "int16", "uint16":
		return "short"
	case "int64", "uint64", "uintptr":
		return "long"
	case "float32":
		return "float"
	case "float64":
		return "double"
	case "string":
		return "String"
	case "error":
		return "Exception"
	case "interface{}", "any":
		return "Object"
	case "struct{}":
		return "Object"
	}
	return t
}
