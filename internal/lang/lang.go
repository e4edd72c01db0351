// Package lang enumerates the source languages the migration engine accepts.
package lang

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Language identifies a supported source language.
type Language int

const (
	Unknown Language = iota
	Rust
	C
	Cpp
	Python
	Kotlin
	CSharp
	Swift
	JavaScript
	TypeScript
	Go
	Scala
	Crystal
	Ruby
	PHP
)

// ErrUnknownLanguage is returned when a file extension maps to no language.
var ErrUnknownLanguage = errors.New("unknown source language")

type info struct {
	name       string
	extensions []string
}

var languages = map[Language]info{
	Rust:       {"Rust", []string{".rs"}},
	C:          {"C", []string{".c", ".h"}},
	Cpp:        {"C++", []string{".cpp", ".cc", ".cxx", ".hpp"}},
	Python:     {"Python", []string{".py"}},
	Kotlin:     {"Kotlin", []string{".kt", ".kts"}},
	CSharp:     {"C#", []string{".cs"}},
	Swift:      {"Swift", []string{".swift"}},
	JavaScript: {"JavaScript", []string{".js", ".jsx", ".mjs"}},
	TypeScript: {"TypeScript", []string{".ts", ".tsx"}},
	Go:         {"Go", []string{".go"}},
	Scala:      {"Scala", []string{".scala", ".sc"}},
	Crystal:    {"Crystal", []string{".cr"}},
	Ruby:       {"Ruby", []string{".rb", ".rake"}},
	PHP:        {"PHP", []string{".php"}},
}

// String returns the display name of the language.
func (l Language) String() string {
	if inf, ok := languages[l]; ok {
		return inf.name
	}
	return "Unknown"
}

// Extensions returns the file extensions associated with the language.
func (l Language) Extensions() []string {
	if inf, ok := languages[l]; ok {
		return append([]string(nil), inf.extensions...)
	}
	return nil
}

// All returns every supported language in stable order.
func All() []Language {
	return []Language{Rust, C, Cpp, Python, Kotlin, CSharp, Swift, JavaScript, TypeScript, Go, Scala, Crystal, Ruby, PHP}
}

// FromPath detects the language from a file path's extension.
func FromPath(path string) (Language, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return Unknown, errors.Wrapf(ErrUnknownLanguage, "no file extension: %s", path)
	}
	for _, l := range All() {
		for _, e := range languages[l].extensions {
			if e == ext {
				return l, nil
			}
		}
	}
	return Unknown, errors.Wrapf(ErrUnknownLanguage, "unsupported file extension %q", ext)
}

// FromName resolves a language by its display name, case-insensitively.
// Common aliases (cpp, c#, js, ts, golang) are accepted.
func FromName(name string) (Language, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "rust":
		return Rust, nil
	case "c":
		return C, nil
	case "c++", "cpp":
		return Cpp, nil
	case "python":
		return Python, nil
	case "kotlin":
		return Kotlin, nil
	case "c#", "csharp":
		return CSharp, nil
	case "swift":
		return Swift, nil
	case "javascript", "js":
		return JavaScript, nil
	case "typescript", "ts":
		return TypeScript, nil
	case "go", "golang":
		return Go, nil
	case "scala":
		return Scala, nil
	case "crystal":
		return Crystal, nil
	case "ruby", "rb":
		return Ruby, nil
	case "php":
		return PHP, nil
	}
	return Unknown, errors.Wrapf(ErrUnknownLanguage, "unknown language name %q", name)
}
