package parsers

import (
	"regexp"
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
	"github.com/aseio6668/PolyType-sub001/internal/typemap"
)

// ScalaParser recognizes case class, class, object, and trait declarations
// plus def members. Case classes synthesize the accessor and equality
// members the compiler derives, the same shape the Kotlin parser produces
// for data classes; objects surface the singleton accessor.
type ScalaParser struct {
	types typemap.Map
}

// NewScalaParser creates a Scala structural parser.
func NewScalaParser() *ScalaParser {
	return &ScalaParser{types: typemap.ForLanguage(lang.Scala)}
}

var (
	scCaseClassRe = regexp.MustCompile(`(?m)^[ \t]*(?:final[ \t]+)?case[ \t]+class[ \t]+(\w+)(?:\[[^\]\n]*\])?[ \t]*\(`)
	scObjectRe    = regexp.MustCompile(`(?m)^[ \t]*(?:case[ \t]+)?object[ \t]+(\w+)[^\{\n]*\{`)
	scTraitRe     = regexp.MustCompile(`(?m)^[ \t]*(?:sealed[ \t]+)?trait[ \t]+(\w+)(?:\[[^\]\n]*\])?[^\{\n]*\{`)
	scClassRe     = regexp.MustCompile(`(?m)^[ \t]*((?:(?:abstract|final|sealed|private)[ \t]+)*)class[ \t]+(\w+)(?:\[[^\]\n]*\])?`)
	scDefRe       = regexp.MustCompile(`(?m)^[ \t]*((?:(?:override|final|private|protected|implicit)[ \t]+)*)def[ \t]+(\w+)(?:\[[^\]\n]*\])?[ \t]*\(`)
	scValVarRe    = regexp.MustCompile(`(?m)^[ \t]*((?:(?:private|protected|override|final|lazy)[ \t]+)*)(val|var)[ \t]+(\w+)[ \t]*(?::[ \t]*([^=\n]+))?(?:=[ \t]*([^\n]+))?$`)
)

func (p *ScalaParser) Language() lang.Language { return lang.Scala }

func (p *ScalaParser) CanHandle(filename string) bool { return canHandle(lang.Scala, filename) }

func (p *ScalaParser) ParseFile(path string) (*ast.Program, error) { return parseFile(p, path) }

func (p *ScalaParser) Parse(src string) (*ast.Program, error) {
	if err := checkDecodable(src); err != nil {
		return nil, err
	}

	text := stripCComments(src, charQuotes)
	text = stripDirectives(text, "import ", "package ")

	program := &ast.Program{Position: ast.Position{Line: 1, Column: 1}}
	consumed := newSpanSet()

	for _, m := range scCaseClassRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOf(text, m[0])
		name := text[m[2]:m[3]]
		params, end, ok := parenBlock(text, m[1]-1, charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated primary constructor")
			continue
		}
		if _, bodyEnd, hasBody := trailingBrace(text, end); hasBody {
			end = bodyEnd
		}
		consumed.add(m[0], end)
		program.AddChild(p.buildCaseClass(name, params, line))
	}

	for _, m := range scTraitRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		line := lineOf(text, m[0])
		name := text[m[2]:m[3]]
		body, end, ok := braceBlock(text, m[1]-1, charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated trait body")
			continue
		}
		consumed.add(m[0], end)

		decl := &ast.TypeDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			Public:   true,
		}
		p.parseBody(decl, program, body, line, true)
		program.AddChild(decl)
	}

	for _, m := range scObjectRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		line := lineOf(text, m[0])
		name := text[m[2]:m[3]]
		body, end, ok := braceBlock(text, m[1]-1, charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated object body")
			continue
		}
		consumed.add(m[0], end)

		decl := &ast.TypeDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			Public:   true,
		}
		p.parseBody(decl, program, body, line, false)
		// Objects are singletons; surface the accessor the target idiom
		// expects so the classifier recognizes the shape.
		decl.AddMember(&ast.CallableDeclaration{
			Position:   ast.Position{Line: line, Column: 1},
			Name:       "getInstance",
			ReturnType: name,
			Public:     true,
			Static:     true,
		})
		program.AddChild(decl)
	}

	for _, m := range scClassRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		line := lineOf(text, m[0])
		name := text[m[4]:m[5]]

		decl := &ast.TypeDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			Public:   !strings.Contains(text[m[2]:m[3]], "private"),
		}

		cursor := m[1]
		// Optional primary constructor.
		if next := nextNonSpace(text, cursor); next < len(text) && text[next] == '(' {
			params, afterParams, ok := parenBlock(text, next, charQuotes)
			if !ok {
				program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated primary constructor")
				continue
			}
			if ctorParams := p.parseParams(params, line); len(ctorParams) > 0 {
				decl.AddMember(&ast.CallableDeclaration{
					Position:   ast.Position{Line: line, Column: 1},
					Name:       name,
					ReturnType: ast.VoidType,
					Params:     ctorParams,
					Public:     true,
				})
			}
			cursor = afterParams
		}

		end := cursor
		if body, bodyEnd, hasBody := trailingBrace(text, cursor); hasBody {
			p.parseBody(decl, program, body, line, false)
			end = bodyEnd
		}
		consumed.add(m[0], end)
		program.AddChild(decl)
	}

	// Script files may carry top-level defs outside any object.
	for _, m := range scDefRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		fn, end, ok := p.parseDef(program, text, m)
		if !ok {
			continue
		}
		consumed.add(m[0], end)
		fn.Static = true
		program.AddChild(fn)
	}

	return program, nil
}

// buildCaseClass synthesizes the members the compiler derives for a case
// class: one immutable field and accessor per constructor parameter plus
// the equality trio.
func (p *ScalaParser) buildCaseClass(name, params string, line int) *ast.TypeDeclaration {
	decl := &ast.TypeDeclaration{
		Position: ast.Position{Line: line, Column: 1},
		Name:     name,
		Public:   true,
	}

	ctorParams := p.parseParams(params, line)
	for _, param := range ctorParams {
		decl.AddMember(&ast.FieldDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     param.Name,
			DataType: param.DataType,
			Mutable:  param.Mutable,
		})
		decl.AddMember(&ast.CallableDeclaration{
			Position:   ast.Position{Line: line, Column: 1},
			Name:       "get" + capitalize(param.Name),
			ReturnType: param.DataType,
			Public:     true,
		})
		if param.Mutable {
			decl.AddMember(&ast.CallableDeclaration{
				Position:   ast.Position{Line: line, Column: 1},
				Name:       "set" + capitalize(param.Name),
				ReturnType: ast.VoidType,
				Params: []*ast.Parameter{{
					Position: ast.Position{Line: line, Column: 1},
					Name:     "value",
					DataType: param.DataType,
				}},
				Public: true,
			})
		}
	}
	if len(ctorParams) > 0 {
		decl.AddMember(&ast.CallableDeclaration{
			Position:   ast.Position{Line: line, Column: 1},
			Name:       name,
			ReturnType: ast.VoidType,
			Params:     ctorParams,
			Public:     true,
		})
	}

	decl.AddMember(&ast.CallableDeclaration{
		Position:   ast.Position{Line: line, Column: 1},
		Name:       "equals",
		ReturnType: "boolean",
		Params: []*ast.Parameter{{
			Position: ast.Position{Line: line, Column: 1},
			Name:     "other",
			DataType: "Object",
		}},
		Public: true,
	})
	decl.AddMember(&ast.CallableDeclaration{
		Position:   ast.Position{Line: line, Column: 1},
		Name:       "hashCode",
		ReturnType: "int",
		Public:     true,
	})
	decl.AddMember(&ast.CallableDeclaration{
		Position:   ast.Position{Line: line, Column: 1},
		Name:       "toString",
		ReturnType: "String",
		Public:     true,
	})
	return decl
}

func (p *ScalaParser) parseBody(decl *ast.TypeDeclaration, program *ast.Program, body string, classLine int, contract bool) {
	defSpans := newSpanSet()
	for _, m := range scDefRe.FindAllStringSubmatchIndex(body, -1) {
		fn, end, ok := p.parseDef(program, body, m)
		if !ok {
			continue
		}
		defSpans.add(m[0], end)
		fn.Position.Line += classLine - 1
		if contract {
			fn.Public = true
			fn.Static = false
		}
		decl.AddMember(fn)
	}

	for _, m := range scValVarRe.FindAllStringSubmatchIndex(body, -1) {
		if defSpans.contains(m[0]) {
			continue
		}
		mods := body[m[2]:m[3]]
		keyword := body[m[4]:m[5]]
		name := body[m[6]:m[7]]

		// Type inference without an annotation collapses to Object.
		dataType := "Object"
		if m[8] >= 0 {
			spelling := strings.TrimSpace(body[m[8]:m[9]])
			if spelling != "" {
				dataType = p.types.Canonicalize(spelling)
			}
		}
		field := &ast.FieldDeclaration{
			Position: ast.Position{Line: lineOf(body, m[0]) + classLine - 1, Column: 1},
			Name:     name,
			DataType: dataType,
			Public:   !strings.Contains(mods, "private"),
			Mutable:  keyword == "var",
		}
		if m[10] >= 0 {
			field.Initializer = strings.TrimSpace(body[m[10]:m[11]])
		}
		decl.AddMember(field)
	}
}

func (p *ScalaParser) parseDef(program *ast.Program, text string, m []int) (*ast.CallableDeclaration, int, bool) {
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
	headEnd := strings.IndexAny(rest, "{=\n")
	if headEnd < 0 {
		headEnd = len(rest)
	}
	if colon := strings.Index(rest[:headEnd], ":"); colon >= 0 {
		spelling := strings.TrimSpace(rest[colon+1 : headEnd])
		if spelling != "" {
			returnType = p.types.Canonicalize(spelling)
		}
	}

	end := afterParams + headEnd
	var rawBody string
	switch {
	case headEnd < len(rest) && rest[headEnd] == '{':
		body, bodyEnd, ok := matchDelimited(text, afterParams+headEnd, '{', '}', charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated def body")
			return nil, 0, false
		}
		rawBody = strings.TrimSpace(body)
		end = bodyEnd
	case headEnd < len(rest) && rest[headEnd] == '=':
		// Expression body: a block after = or the rest of the line.
		exprStart := nextNonSpace(rest, headEnd+1)
		if exprStart < len(rest) && rest[exprStart] == '{' {
			body, bodyEnd, ok := matchDelimited(text, afterParams+exprStart, '{', '}', charQuotes)
			if !ok {
				program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated def body")
				return nil, 0, false
			}
			rawBody = strings.TrimSpace(body)
			end = bodyEnd
		} else {
			eol := strings.IndexByte(rest[exprStart:], '\n')
			if eol < 0 {
				eol = len(rest) - exprStart
			}
			rawBody = strings.TrimSpace(rest[exprStart : exprStart+eol])
			end = afterParams + exprStart + eol
		}
	}

	return &ast.CallableDeclaration{
		Position:   ast.Position{Line: line, Column: 1},
		Name:       name,
		ReturnType: returnType,
		Params:     p.parseParams(params, line),
		Public:     !strings.Contains(mods, "private"),
		RawBody:    rawBody,
	}, end, true
}

// parseParams handles "name: Type = default" entries; a var marker on a
// primary constructor parameter survives as mutability.
func (p *ScalaParser) parseParams(params string, line int) []*ast.Parameter {
	var out []*ast.Parameter
	for _, part := range splitTopLevel(params, ',', charQuotes) {
		part = strings.TrimSpace(part)
		mutable := strings.HasPrefix(part, "var ")
		part = strings.TrimPrefix(part, "val ")
		part = strings.TrimPrefix(part, "var ")

		name, remainder, found := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		if !found || !isIdentifier(name) {
			continue
		}
		spelling, _, _ := strings.Cut(remainder, "=")
		out = append(out, &ast.Parameter{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			DataType: p.types.Canonicalize(strings.TrimSpace(spelling)),
			Mutable:  mutable,
		})
	}
	return out
}
