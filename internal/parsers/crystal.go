package parsers

import (
	"regexp"
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
	"github.com/aseio6668/PolyType-sub001/internal/typemap"
)

// CrystalParser recognizes class, struct, and module declarations with def
// members. Blocks close on the end keyword at the header's indent. The
// initialize def doubles as the constructor; its @-prefixed parameters
// promote to instance variables the way the language defines them.
type CrystalParser struct {
	types typemap.Map
}

// NewCrystalParser creates a Crystal structural parser.
func NewCrystalParser() *CrystalParser {
	return &CrystalParser{types: typemap.ForLanguage(lang.Crystal)}
}

var (
	crTypeRe     = regexp.MustCompile(`(?m)^([ \t]*)(?:private[ \t]+)?(class|struct|module)[ \t]+(\w+)`)
	crDefRe      = regexp.MustCompile(`(?m)^([ \t]*)(?:private[ \t]+)?def[ \t]+(self\.)?(\w+[?!]?)`)
	crIvarRe     = regexp.MustCompile(`(?m)^[ \t]*@(\w+)[ \t]*:[ \t]*([^=\n]+?)[ \t]*(?:=[ \t]*(.+))?$`)
	crPropertyRe = regexp.MustCompile(`(?m)^[ \t]*(property|getter|setter)[ \t]+(.+)$`)
)

func (p *CrystalParser) Language() lang.Language { return lang.Crystal }

func (p *CrystalParser) CanHandle(filename string) bool { return canHandle(lang.Crystal, filename) }

func (p *CrystalParser) ParseFile(path string) (*ast.Program, error) { return parseFile(p, path) }

func (p *CrystalParser) Parse(src string) (*ast.Program, error) {
	if err := checkDecodable(src); err != nil {
		return nil, err
	}

	text := stripHashComments(src)
	text = stripDirectives(text, "require ", "include ", "extend ")

	program := &ast.Program{Position: ast.Position{Line: 1, Column: 1}}
	consumed := newSpanSet()

	for _, m := range crTypeRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		line := lineOf(text, m[0])
		indent := m[3] - m[2]
		name := text[m[6]:m[7]]

		body, end := endBlock(text, m[1], indent)
		consumed.add(m[0], end)

		decl := &ast.TypeDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			Public:   true,
		}
		p.parseTypeBody(decl, program, body, line, name)
		program.AddChild(decl)
	}

	for _, m := range crDefRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		indent := m[3] - m[2]
		fn, end, ok := p.parseDef(program, text, m)
		if !ok {
			continue
		}
		_, blockEnd := endBlock(text, end, indent)
		consumed.add(m[0], blockEnd)
		fn.Static = true
		program.AddChild(fn)
	}

	return program, nil
}

func (p *CrystalParser) parseTypeBody(decl *ast.TypeDeclaration, program *ast.Program, body string, classLine int, className string) {
	seen := make(map[string]bool)

	// property/getter/setter macros declare a field; the target-side
	// accessors are synthesized downstream from the field alone.
	for _, m := range crPropertyRe.FindAllStringSubmatchIndex(body, -1) {
		kind := body[m[2]:m[3]]
		line := lineOf(body, m[0]) + classLine - 1
		for _, entry := range splitTopLevel(body[m[4]:m[5]], ',', stringQuotes) {
			name, spelling, annotated := strings.Cut(strings.TrimSpace(entry), ":")
			name = strings.TrimSpace(name)
			if !isIdentifier(name) || seen[name] {
				continue
			}
			seen[name] = true
			dataType := "Object"
			if annotated {
				dataType = p.types.Canonicalize(strings.TrimSpace(spelling))
			}
			decl.AddMember(&ast.FieldDeclaration{
				Position: ast.Position{Line: line, Column: 1},
				Name:     name,
				DataType: dataType,
				Mutable:  kind != "getter",
			})
		}
	}

	// Annotated instance variable declarations.
	for _, m := range crIvarRe.FindAllStringSubmatchIndex(body, -1) {
		name := body[m[2]:m[3]]
		if seen[name] {
			continue
		}
		seen[name] = true
		field := &ast.FieldDeclaration{
			Position: ast.Position{Line: lineOf(body, m[0]) + classLine - 1, Column: 1},
			Name:     name,
			DataType: p.types.Canonicalize(strings.TrimSpace(body[m[4]:m[5]])),
			Mutable:  true,
		}
		if m[6] >= 0 {
			field.Initializer = strings.TrimSpace(body[m[6]:m[7]])
		}
		decl.AddMember(field)
	}

	for _, m := range crDefRe.FindAllStringSubmatchIndex(body, -1) {
		fn, _, ok := p.parseDef(program, body, m)
		if !ok {
			continue
		}
		fn.Position.Line += classLine - 1
		if fn.Name == "initialize" {
			fn.Name = className
			fn.ReturnType = ast.VoidType
			// @-parameters promote to instance variables.
			for _, param := range fn.Params {
				if seen[param.Name] {
					continue
				}
				seen[param.Name] = true
				decl.AddMember(&ast.FieldDeclaration{
					Position: ast.Position{Line: fn.Position.Line, Column: 1},
					Name:     param.Name,
					DataType: param.DataType,
					Mutable:  true,
				})
			}
		}
		decl.AddMember(fn)
	}
}

func (p *CrystalParser) parseDef(program *ast.Program, text string, m []int) (*ast.CallableDeclaration, int, bool) {
	line := lineOf(text, m[0])
	static := m[4] >= 0
	name := text[m[6]:m[7]]

	// The parameter list is optional; a bare def has none.
	params := ""
	end := m[1]
	if next := nextNonSpace(text, m[1]); next < len(text) && text[next] == '(' {
		var ok bool
		params, end, ok = parenBlock(text, next, stringQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated parameter list")
			return nil, 0, false
		}
	}

	returnType := ast.VoidType
	rest := text[end:]
	eol := strings.IndexByte(rest, '\n')
	if eol < 0 {
		eol = len(rest)
	}
	if colon := strings.Index(rest[:eol], ":"); colon >= 0 {
		spelling := strings.TrimSpace(rest[colon+1 : eol])
		if spelling != "" {
			returnType = p.types.Canonicalize(spelling)
		}
	}
	if strings.HasSuffix(name, "?") {
		name = strings.TrimSuffix(name, "?")
		returnType = "boolean"
	}
	name = strings.TrimSuffix(name, "!")

	return &ast.CallableDeclaration{
		Position:   ast.Position{Line: line, Column: 1},
		Name:       name,
		ReturnType: returnType,
		Params:     p.parseParams(params, line),
		Public:     true,
		Static:     static,
	}, end + eol, true
}

// parseParams handles "name : Type = default" entries; the @ marker of a
// promoted constructor parameter is dropped from the name.
func (p *CrystalParser) parseParams(params string, line int) []*ast.Parameter {
	var out []*ast.Parameter
	for _, part := range splitTopLevel(params, ',', stringQuotes) {
		part = strings.TrimSpace(part)
		part = strings.TrimPrefix(part, "*")
		part = strings.TrimPrefix(part, "@")

		name, remainder, annotated := strings.Cut(part, ":")
		name = strings.TrimSpace(name)
		dataType := "Object"
		if annotated {
			spelling, _, _ := strings.Cut(remainder, "=")
			dataType = p.types.Canonicalize(strings.TrimSpace(spelling))
		} else {
			name, _, _ = strings.Cut(name, "=")
			name = strings.TrimSpace(name)
		}
		if !isIdentifier(name) {
			continue
		}
		out = append(out, &ast.Parameter{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			DataType: dataType,
		})
	}
	return out
}
