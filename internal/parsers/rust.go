package parsers

import (
	"regexp"
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
	"github.com/aseio6668/PolyType-sub001/internal/typemap"
)

// RustParser recognizes struct, trait, impl, and free fn declarations.
type RustParser struct {
	types typemap.Map
}

// NewRustParser creates a Rust structural parser.
func NewRustParser() *RustParser {
	return &RustParser{types: typemap.ForLanguage(lang.Rust)}
}

var (
	rustStructRe = regexp.MustCompile(`(?m)^[ \t]*(pub(?:\([^)]*\))?[ \t]+)?struct[ \t]+(\w+)(?:<[^>\n]*>)?[ \t]*\{`)
	rustTraitRe  = regexp.MustCompile(`(?m)^[ \t]*(pub(?:\([^)]*\))?[ \t]+)?trait[ \t]+(\w+)(?:<[^>\n]*>)?[^{\n]*\{`)
	rustImplRe   = regexp.MustCompile(`(?m)^[ \t]*impl(?:<[^>\n]*>)?[ \t]+(\w+)(?:<[^>\n]*>)?[ \t]*\{`)
	rustFnRe     = regexp.MustCompile(`(?m)^[ \t]*(pub(?:\([^)]*\))?[ \t]+)?(?:async[ \t]+)?fn[ \t]+(\w+)(?:<[^>\n]*>)?[ \t]*\(`)
)

func (p *RustParser) Language() lang.Language { return lang.Rust }

func (p *RustParser) CanHandle(filename string) bool { return canHandle(lang.Rust, filename) }

func (p *RustParser) ParseFile(path string) (*ast.Program, error) { return parseFile(p, path) }

func (p *RustParser) Parse(src string) (*ast.Program, error) {
	if err := checkDecodable(src); err != nil {
		return nil, err
	}

	text := stripCComments(src, charQuotes)
	text = stripDirectives(text, "use ", "extern crate ", "mod ", "#[", "#![")

	program := &ast.Program{Position: ast.Position{Line: 1, Column: 1}}
	declared := make(map[string]*ast.TypeDeclaration)
	consumed := newSpanSet()

	for _, m := range rustStructRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOf(text, m[0])
		name := text[m[4]:m[5]]
		body, end, ok := braceBlock(text, m[1]-1, charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated struct body")
			continue
		}
		consumed.add(m[0], end)

		decl := &ast.TypeDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			Public:   m[2] >= 0,
		}
		p.parseStructFields(decl, body, text, m[1])
		declared[name] = decl
		program.AddChild(decl)
	}

	for _, m := range rustTraitRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOf(text, m[0])
		name := text[m[4]:m[5]]
		body, end, ok := braceBlock(text, m[0], charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated trait body")
			continue
		}
		consumed.add(m[0], end)

		decl := &ast.TypeDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			Public:   m[2] >= 0,
		}
		p.parseCallables(decl, program, body, text, m[0], true)
		program.AddChild(decl)
	}

	// impl blocks attach methods to a previously declared struct. An impl
	// for an unseen type is recorded rather than invented.
	for _, m := range rustImplRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOf(text, m[0])
		name := text[m[2]:m[3]]
		body, end, ok := braceBlock(text, m[0], charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated impl body")
			continue
		}
		consumed.add(m[0], end)

		owner, known := declared[name]
		if !known {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "impl for undeclared type "+name)
			continue
		}
		p.parseCallables(owner, program, body, text, m[0], false)
	}

	for _, m := range rustFnRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		fn, end, ok := p.parseFn(program, text, m)
		if !ok {
			continue
		}
		consumed.add(m[0], end)
		program.AddChild(fn)
	}

	return program, nil
}

// parseFn parses one fn whose header match indices are in m.
func (p *RustParser) parseFn(program *ast.Program, text string, m []int) (*ast.CallableDeclaration, int, bool) {
	line := lineOf(text, m[0])
	name := text[m[4]:m[5]]

	params, afterParams, ok := parenBlock(text, m[1]-1, charQuotes)
	if !ok {
		program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated parameter list")
		return nil, 0, false
	}

	returnType := ast.VoidType
	rest := text[afterParams:]
	headEnd := strings.IndexAny(rest, "{;")
	if headEnd < 0 {
		headEnd = len(rest)
	}
	head := rest[:headEnd]
	if arrow := strings.Index(head, "->"); arrow >= 0 {
		spelling := strings.TrimSpace(head[arrow+2:])
		if spelling != "" {
			returnType = p.types.Canonicalize(spelling)
		}
	}

	end := afterParams + headEnd
	var rawBody string
	if headEnd < len(rest) && rest[headEnd] == '{' {
		body, bodyEnd, ok := matchDelimited(text, afterParams+headEnd, '{', '}', charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated fn body")
			return nil, 0, false
		}
		rawBody = strings.TrimSpace(body)
		end = bodyEnd
	} else if headEnd < len(rest) {
		end++ // past the ';'
	}

	isStatic, paramList := p.parseParams(params)
	return &ast.CallableDeclaration{
		Position:   ast.Position{Line: line, Column: 1},
		Name:       name,
		ReturnType: returnType,
		Params:     paramList,
		Public:     m[2] >= 0,
		Static:     isStatic,
		RawBody:    rawBody,
	}, end, true
}

// parseParams splits a Rust parameter list. A leading self receiver marks
// an instance callable and is dropped from the signature.
func (p *RustParser) parseParams(params string) (static bool, out []*ast.Parameter) {
	static = true
	for _, part := range splitTopLevel(params, ',', charQuotes) {
		part = strings.TrimSpace(part)
		if part == "self" || part == "&self" || part == "&mut self" || part == "mut self" {
			static = false
			continue
		}
		mutable := strings.HasPrefix(part, "mut ")
		part = strings.TrimPrefix(part, "mut ")
		name, spelling, found := strings.Cut(part, ":")
		if !found || !isIdentifier(strings.TrimSpace(name)) {
			continue
		}
		out = append(out, &ast.Parameter{
			Position: ast.Position{Line: 1, Column: 1},
			Name:     strings.TrimSpace(name),
			DataType: p.types.Canonicalize(strings.TrimSpace(spelling)),
			Mutable:  mutable,
		})
	}
	return static, out
}

func (p *RustParser) parseStructFields(decl *ast.TypeDeclaration, body, text string, bodyStart int) {
	for _, part := range splitTopLevel(body, ',', charQuotes) {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		public := strings.HasPrefix(trimmed, "pub ") || strings.HasPrefix(trimmed, "pub(")
		if public {
			if idx := strings.Index(trimmed, " "); idx >= 0 {
				trimmed = strings.TrimSpace(trimmed[idx+1:])
			}
		}
		name, spelling, found := strings.Cut(trimmed, ":")
		name = strings.TrimSpace(name)
		if !found || !isIdentifier(name) {
			continue
		}
		decl.AddMember(&ast.FieldDeclaration{
			Position: ast.Position{Line: lineOf(text, bodyStart), Column: 1},
			Name:     name,
			DataType: p.types.Canonicalize(strings.TrimSpace(spelling)),
			Public:   public,
			Mutable:  true,
		})
	}
}

// parseCallables collects the fns inside a trait or impl body. Trait
// members default to public.
func (p *RustParser) parseCallables(owner *ast.TypeDeclaration, program *ast.Program, body, text string, bodyStart int, contract bool) {
	for _, m := range rustFnRe.FindAllStringSubmatchIndex(body, -1) {
		fn, _, ok := p.parseFn(program, body, m)
		if !ok {
			continue
		}
		fn.Position.Line += lineOf(text, bodyStart) - 1
		if contract {
			fn.Public = true
			fn.Static = false
		}
		owner.AddMember(fn)
	}
}

// spanSet tracks consumed source regions so nested fn matches are not
// re-emitted as free functions.
type spanSet struct{ spans [][2]int }

func newSpanSet() *spanSet { return &spanSet{} }

func (s *spanSet) add(start, end int) { s.spans = append(s.spans, [2]int{start, end}) }

func (s *spanSet) contains(offset int) bool {
	for _, sp := range s.spans {
		if offset >= sp[0] && offset < sp[1] {
			return true
		}
	}
	return false
}
