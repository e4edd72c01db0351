// Package registry wires every supported source language to its parser and
// its profiled Java emitter. A Registry is built once and never mutated, so
// lookups need no locking.
package registry

import (
	"sort"

	"github.com/cockroachdb/errors"

	"github.com/aseio6668/PolyType-sub001/internal/emit"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
	"github.com/aseio6668/PolyType-sub001/internal/parsers"
)

// ErrUnsupportedLanguage marks a lookup for a language the registry does not
// carry a parser or emitter for.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Registry resolves languages to parsers and emitters. The zero value is
// unusable; build one with New.
type Registry struct {
	parsers  map[lang.Language]parsers.Parser
	emitters map[lang.Language]emit.Emitter
}

// New builds a registry covering every supported source language.
func New() *Registry {
	r := &Registry{
		parsers:  make(map[lang.Language]parsers.Parser),
		emitters: make(map[lang.Language]emit.Emitter),
	}
	for l, p := range map[lang.Language]parsers.Parser{
		lang.Rust:       parsers.NewRustParser(),
		lang.C:          parsers.NewCParser(),
		lang.Cpp:        parsers.NewCppParser(),
		lang.Python:     parsers.NewPythonParser(),
		lang.Kotlin:     parsers.NewKotlinParser(),
		lang.CSharp:     parsers.NewCSharpParser(),
		lang.Swift:      parsers.NewSwiftParser(),
		lang.JavaScript: parsers.NewJavaScriptParser(),
		lang.TypeScript: parsers.NewTypeScriptParser(),
		lang.Go:         parsers.NewGoParser(),
		lang.Scala:      parsers.NewScalaParser(),
		lang.Crystal:    parsers.NewCrystalParser(),
		lang.Ruby:       parsers.NewRubyParser(),
		lang.PHP:        parsers.NewPHPParser(),
	} {
		r.parsers[l] = p
		r.emitters[l] = emit.NewJavaEmitter(l)
	}
	return r
}

// ParserFor resolves the parser for a language.
func (r *Registry) ParserFor(l lang.Language) (parsers.Parser, error) {
	p, ok := r.parsers[l]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedLanguage, "no parser for %s", l)
	}
	return p, nil
}

// EmitterFor resolves the profiled emitter for a source language.
func (r *Registry) EmitterFor(l lang.Language) (emit.Emitter, error) {
	e, ok := r.emitters[l]
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedLanguage, "no emitter for %s", l)
	}
	return e, nil
}

// ParserForPath resolves a parser from a file path's extension.
func (r *Registry) ParserForPath(path string) (parsers.Parser, error) {
	l, err := lang.FromPath(path)
	if err != nil {
		return nil, errors.Wrapf(ErrUnsupportedLanguage, "%s", path)
	}
	return r.ParserFor(l)
}

// Languages returns every language the registry supports, sorted by display
// name.
func (r *Registry) Languages() []lang.Language {
	out := make([]lang.Language, 0, len(r.parsers))
	for l := range r.parsers {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
