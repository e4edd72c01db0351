package parsers

import (
	"regexp"
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
	"github.com/aseio6668/PolyType-sub001/internal/typemap"
)

// SwiftParser recognizes class, struct, and protocol declarations plus free
// functions. Protocols populate callables only, so they classify as
// behavioral contracts downstream.
type SwiftParser struct {
	types typemap.Map
}

// NewSwiftParser creates a Swift structural parser.
func NewSwiftParser() *SwiftParser {
	return &SwiftParser{types: typemap.ForLanguage(lang.Swift)}
}

var (
	swiftTypeRe = regexp.MustCompile(`(?m)^[ \t]*((?:(?:public|private|internal|fileprivate|open|final)[ \t]+)*)(class|struct|protocol)[ \t]+(\w+)[^\{\n]*\{`)
	swiftFuncRe = regexp.MustCompile(`(?m)^[ \t]*((?:(?:public|private|internal|fileprivate|open|final|static|class|override|mutating)[ \t]+)*)func[ \t]+(\w+)(?:<[^>\n]*>)?[ \t]*\(`)
	swiftVarRe  = regexp.MustCompile(`(?m)^[ \t]*((?:(?:public|private|internal|fileprivate|static|lazy|weak)[ \t]+)*)(var|let)[ \t]+(\w+)[ \t]*(?::[ \t]*([^=\n\{]+))?(?:=[ \t]*([^\n]+))?$`)
	swiftInitRe = regexp.MustCompile(`(?m)^[ \t]*((?:(?:public|private|internal|required|convenience)[ \t]+)*)init[ \t]*\(`)
)

func (p *SwiftParser) Language() lang.Language { return lang.Swift }

func (p *SwiftParser) CanHandle(filename string) bool { return canHandle(lang.Swift, filename) }

func (p *SwiftParser) ParseFile(path string) (*ast.Program, error) { return parseFile(p, path) }

func (p *SwiftParser) Parse(src string) (*ast.Program, error) {
	if err := checkDecodable(src); err != nil {
		return nil, err
	}

	text := stripCComments(src, charQuotes)
	text = stripDirectives(text, "import ", "@")

	program := &ast.Program{Position: ast.Position{Line: 1, Column: 1}}
	consumed := newSpanSet()

	for _, m := range swiftTypeRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOf(text, m[0])
		mods := text[m[2]:m[3]]
		kind := text[m[4]:m[5]]
		name := text[m[6]:m[7]]

		body, end, ok := braceBlock(text, m[1]-1, charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated "+kind+" body")
			continue
		}
		consumed.add(m[0], end)

		decl := &ast.TypeDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			Public:   !strings.Contains(mods, "private") && !strings.Contains(mods, "fileprivate"),
		}
		p.parseTypeBody(decl, program, body, line, name, kind == "protocol")
		program.AddChild(decl)
	}

	for _, m := range swiftFuncRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		fn, end, ok := p.parseFunc(program, text, m)
		if !ok {
			continue
		}
		consumed.add(m[0], end)
		fn.Static = true
		program.AddChild(fn)
	}

	return program, nil
}

func (p *SwiftParser) parseTypeBody(decl *ast.TypeDeclaration, program *ast.Program, body string, classLine int, className string, protocol bool) {
	funSpans := newSpanSet()

	for _, m := range swiftInitRe.FindAllStringSubmatchIndex(body, -1) {
		line := lineOf(body, m[0]) + classLine - 1
		mods := body[m[2]:m[3]]
		params, afterParams, ok := parenBlock(body, m[1]-1, charQuotes)
		if !ok {
			program.Skip(line, firstLine(body[m[0]:m[1]]), "unterminated parameter list")
			continue
		}
		end := afterParams
		rawBody := ""
		if blockBody, blockEnd, hasBody := trailingBrace(body, afterParams); hasBody {
			rawBody = strings.TrimSpace(blockBody)
			end = blockEnd
		}
		funSpans.add(m[0], end)
		decl.AddMember(&ast.CallableDeclaration{
			Position:   ast.Position{Line: line, Column: 1},
			Name:       className,
			ReturnType: ast.VoidType,
			Params:     p.parseParams(params, line),
			Public:     !strings.Contains(mods, "private"),
			RawBody:    rawBody,
		})
	}

	for _, m := range swiftFuncRe.FindAllStringSubmatchIndex(body, -1) {
		fn, end, ok := p.parseFunc(program, body, m)
		if !ok {
			continue
		}
		funSpans.add(m[0], end)
		fn.Position.Line += classLine - 1
		if protocol {
			fn.Public = true
		}
		decl.AddMember(fn)
	}

	if protocol {
		return
	}
	for _, m := range swiftVarRe.FindAllStringSubmatchIndex(body, -1) {
		if funSpans.contains(m[0]) {
			continue
		}
		mods := body[m[2]:m[3]]
		keyword := body[m[4]:m[5]]
		name := body[m[6]:m[7]]

		dataType := "Object"
		if m[8] >= 0 {
			if spelling := strings.TrimSpace(body[m[8]:m[9]]); spelling != "" {
				dataType = p.types.Canonicalize(spelling)
			}
		}
		field := &ast.FieldDeclaration{
			Position: ast.Position{Line: lineOf(body, m[0]) + classLine - 1, Column: 1},
			Name:     name,
			DataType: dataType,
			Public:   !strings.Contains(mods, "private") && !strings.Contains(mods, "fileprivate"),
			Mutable:  keyword == "var",
		}
		if m[10] >= 0 {
			field.Initializer = strings.TrimSpace(body[m[10]:m[11]])
		}
		decl.AddMember(field)
	}
}

func (p *SwiftParser) parseFunc(program *ast.Program, text string, m []int) (*ast.CallableDeclaration, int, bool) {
	line := lineOf(text, m[0])
	mods := text[m[2]:m[3]]
	name := text[m[4]:m[5]]

	params, afterParams, ok := parenBlock(text, m[1]-1, charQuotes)
	if !ok {
		program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated parameter list")
		return nil, 0, false
	}

	returnType := ast.VoidType
	rest := text[afterParams:]
	headEnd := strings.IndexAny(rest, "{\n")
	if headEnd < 0 {
		headEnd = len(rest)
	}
	if arrow := strings.Index(rest[:headEnd], "->"); arrow >= 0 {
		spelling := strings.TrimSpace(rest[arrow+2 : headEnd])
		if spelling != "" {
			returnType = p.types.Canonicalize(spelling)
		}
	}

	end := afterParams + headEnd
	rawBody := ""
	if headEnd < len(rest) && rest[headEnd] == '{' {
		body, bodyEnd, ok := matchDelimited(text, afterParams+headEnd, '{', '}', charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated func body")
			return nil, 0, false
		}
		rawBody = strings.TrimSpace(body)
		end = bodyEnd
	}

	return &ast.CallableDeclaration{
		Position:   ast.Position{Line: line, Column: 1},
		Name:       name,
		ReturnType: returnType,
		Params:     p.parseParams(params, line),
		Public:     !strings.Contains(mods, "private") && !strings.Contains(mods, "fileprivate"),
		Static:     strings.Contains(mods, "static") || strings.Contains(mods, "class "),
		RawBody:    rawBody,
	}, end, true
}

// parseParams handles Swift's "label name: Type" entries; the internal
// name wins, and an underscore label is dropped.
func (p *SwiftParser) parseParams(params string, line int) []*ast.Parameter {
	var out []*ast.Parameter
	for _, part := range splitTopLevel(params, ',', charQuotes) {
		part = strings.TrimSpace(part)
		head, remainder, found := strings.Cut(part, ":")
		if !found {
			continue
		}
		names := strings.Fields(head)
		if len(names) == 0 {
			continue
		}
		name := names[len(names)-1]
		if name == "_" || !isIdentifier(name) {
			continue
		}
		spelling, _, _ := strings.Cut(remainder, "=")
		mutable := strings.HasPrefix(strings.TrimSpace(spelling), "inout ")
		out = append(out, &ast.Parameter{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			DataType: p.types.Canonicalize(strings.TrimSpace(spelling)),
			Mutable:  mutable,
		})
	}
	return out
}
