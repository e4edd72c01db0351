// Package typemap translates per-language type spellings into the canonical
// Java target vocabulary. Canonicalization is total: spellings with no rule
// pass through unchanged, so custom types survive as-is. All maps are
// read-only after construction and safe to share across goroutines.
package typemap

import (
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/lang"
)

// Map canonicalizes one source language's type spellings.
type Map interface {
	Canonicalize(spelling string) string
	Language() lang.Language
}

// ForLanguage returns the vocabulary map for a source language, or nil when
// the language has none registered.
func ForLanguage(l lang.Language) Map {
	switch l {
	case lang.Rust:
		return rustMap{}
	case lang.C, lang.Cpp:
		return cppMap{}
	case lang.Python:
		return pythonMap{}
	case lang.Kotlin:
		return kotlinMap{}
	case lang.CSharp:
		return csharpMap{}
	case lang.Swift:
		return swiftMap{}
	case lang.JavaScript, lang.TypeScript:
		return javascriptMap{}
	case lang.Go:
		return goMap{}
	case lang.Scala:
		return scalaMap{}
	case lang.Crystal:
		return crystalMap{}
	case lang.Ruby:
		return rubyMap{}
	case lang.PHP:
		return phpMap{}
	}
	return nil
}

// boxed maps Java primitive spellings to their wrapper types for use as
// generic arguments. Non-primitives are returned unchanged.
func boxed(t string) string {
	switch t {
	case "int":
		return "Integer"
	case "long":
		return "Long"
	case "short":
		return "Short"
	case "byte":
		return "Byte"
	case "double":
		return "Double"
	case "float":
		return "Float"
	case "boolean":
		return "Boolean"
	case "char":
		return "Character"
	case "void":
		return "Void"
	}
	return t
}

func listOf(elem string) string  { return "List<" + boxed(elem) + ">" }
func setOf(elem string) string   { return "Set<" + boxed(elem) + ">" }
func queueOf(elem string) string { return "BlockingQueue<" + boxed(elem) + ">" }

func mapOf(key, value string) string {
	return "Map<" + boxed(key) + ", " + boxed(value) + ">"
}

// genericArg extracts the argument list of "Outer<A, B>" style spellings,
// returning the raw text between the outermost angle brackets.
func genericArg(spelling, prefix string) (string, bool) {
	if !strings.HasPrefix(spelling, prefix) || !strings.HasSuffix(spelling, ">") {
		return "", false
	}
	return spelling[len(prefix) : len(spelling)-1], true
}

// splitTopLevel splits s on sep, ignoring separators nested inside angle
// brackets, square brackets, or parentheses.
func splitTopLevel(s string, sep rune) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<', '[', '(':
			depth++
		case '>', ']', ')':
			depth--
		case sep:
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + len(string(sep))
			}
		}
	}
	parts = append(parts, s[start:])
	return parts
}

// splitKeyValue splits a two-argument generic list into key and value.
func splitKeyValue(args string) (string, string, bool) {
	parts := splitTopLevel(args, ',')
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}
