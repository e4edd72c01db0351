package typemap

import (
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

// rubyMap translates the class names the Ruby parser infers from literal
// values and naming conventions; the language itself carries no annotations.
type rubyMap struct{}

func (rubyMap) Language() lang.Language { return lang.Ruby }

func (rubyMap) Canonicalize(spelling string) string {
	switch strings.TrimSpace(spelling) {
	case "Integer", "Fixnum":
		return "int"
	case "Float", "Numeric":
		return "double"
	case "Boolean", "TrueClass", "FalseClass":
		return "boolean"
	case "String", "Symbol":
		return "String"
	case "Array":
		return listOf("Object")
	case "Hash":
		return mapOf("Object", "Object")
	case "Set":
		return setOf("Object")
	case "NilClass", "Object":
		return "Object"
	}
	return strings.TrimSpace(spelling)
}
