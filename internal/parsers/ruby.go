package parsers

import (
	"regexp"
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
	"github.com/aseio6668/PolyType-sub001/internal/typemap"
)

// RubyParser recognizes class and module blocks with def members. Ruby
// carries no annotations, so types are inferred where the source gives a
// hint: literal initializers name their class, a trailing ? marks a
// predicate, and everything else lands on Object.
type RubyParser struct {
	types typemap.Map
}

// NewRubyParser creates a Ruby structural parser.
func NewRubyParser() *RubyParser {
	return &RubyParser{types: typemap.ForLanguage(lang.Ruby)}
}

var (
	rbTypeRe  = regexp.MustCompile(`(?m)^([ \t]*)(class|module)[ \t]+(\w+)`)
	rbDefRe   = regexp.MustCompile(`(?m)^([ \t]*)def[ \t]+(self\.)?(\w+[?!]?)`)
	rbAttrRe  = regexp.MustCompile(`(?m)^[ \t]*(attr_reader|attr_writer|attr_accessor)[ \t]+(.+)$`)
	rbIvarRe  = regexp.MustCompile(`(?m)^[ \t]*@(\w+)[ \t]*=[ \t]*(.+)$`)
	rbConstRe = regexp.MustCompile(`(?m)^[ \t]*([A-Z][A-Z0-9_]*)[ \t]*=[ \t]*(.+)$`)
)

func (p *RubyParser) Language() lang.Language { return lang.Ruby }

func (p *RubyParser) CanHandle(filename string) bool { return canHandle(lang.Ruby, filename) }

func (p *RubyParser) ParseFile(path string) (*ast.Program, error) { return parseFile(p, path) }

func (p *RubyParser) Parse(src string) (*ast.Program, error) {
	if err := checkDecodable(src); err != nil {
		return nil, err
	}

	text := stripHashComments(src)
	text = stripDirectives(text, "require ", "require_relative ", "include ", "extend ")

	program := &ast.Program{Position: ast.Position{Line: 1, Column: 1}}
	consumed := newSpanSet()

	for _, m := range rbTypeRe.FindAllStringSubmatchIndex(text, -1) {
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
		p.parseTypeBody(decl, body, line, name)
		program.AddChild(decl)
	}

	for _, m := range rbDefRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		indent := m[3] - m[2]
		fn := p.parseDef(text, m)
		_, blockEnd := endBlock(text, m[1], indent)
		consumed.add(m[0], blockEnd)
		fn.Static = true
		program.AddChild(fn)
	}

	return program, nil
}

func (p *RubyParser) parseTypeBody(decl *ast.TypeDeclaration, body string, classLine int, className string) {
	seen := make(map[string]bool)

	// attr_reader/attr_writer/attr_accessor declare a field; target-side
	// accessors are synthesized downstream from the field alone.
	for _, m := range rbAttrRe.FindAllStringSubmatchIndex(body, -1) {
		kind := body[m[2]:m[3]]
		line := lineOf(body, m[0]) + classLine - 1
		for _, entry := range strings.Split(body[m[4]:m[5]], ",") {
			name := strings.TrimPrefix(strings.TrimSpace(entry), ":")
			if !isIdentifier(name) || seen[name] {
				continue
			}
			seen[name] = true
			decl.AddMember(&ast.FieldDeclaration{
				Position: ast.Position{Line: line, Column: 1},
				Name:     name,
				DataType: "Object",
				Mutable:  kind != "attr_reader",
			})
		}
	}

	// Constants before the first def.
	defStart := len(body)
	if loc := rbDefRe.FindStringIndex(body); loc != nil {
		defStart = loc[0]
	}
	for _, m := range rbConstRe.FindAllStringSubmatchIndex(body[:defStart], -1) {
		name := body[m[2]:m[3]]
		if seen[name] {
			continue
		}
		seen[name] = true
		value := strings.TrimSpace(body[m[4]:m[5]])
		decl.AddMember(&ast.FieldDeclaration{
			Position:    ast.Position{Line: lineOf(body, m[0]) + classLine - 1, Column: 1},
			Name:        name,
			DataType:    p.types.Canonicalize(inferRubyType(value)),
			Public:      true,
			Initializer: value,
		})
	}

	// Instance variables assigned anywhere in the body, initialize included.
	for _, m := range rbIvarRe.FindAllStringSubmatchIndex(body, -1) {
		name := body[m[2]:m[3]]
		if seen[name] {
			continue
		}
		seen[name] = true
		decl.AddMember(&ast.FieldDeclaration{
			Position: ast.Position{Line: lineOf(body, m[0]) + classLine - 1, Column: 1},
			Name:     name,
			DataType: p.types.Canonicalize(inferRubyType(strings.TrimSpace(body[m[4]:m[5]]))),
			Mutable:  true,
		})
	}

	for _, m := range rbDefRe.FindAllStringSubmatchIndex(body, -1) {
		fn := p.parseDef(body, m)
		fn.Position.Line += classLine - 1
		if fn.Name == "initialize" {
			fn.Name = className
			fn.ReturnType = ast.VoidType
		}
		decl.AddMember(fn)
	}
}

func (p *RubyParser) parseDef(text string, m []int) *ast.CallableDeclaration {
	line := lineOf(text, m[0])
	static := m[4] >= 0
	name := text[m[6]:m[7]]

	// Parentheses around the parameter list are optional; without them the
	// rest of the def line is the list.
	params := ""
	if next := nextNonSpace(text, m[1]); next < len(text) && text[next] == '(' {
		if body, _, ok := parenBlock(text, next, stringQuotes); ok {
			params = body
		}
	} else {
		rest := text[m[1]:]
		if eol := strings.IndexByte(rest, '\n'); eol >= 0 {
			rest = rest[:eol]
		}
		params = rest
	}

	returnType := "Object"
	if strings.HasSuffix(name, "?") {
		name = strings.TrimSuffix(name, "?")
		returnType = "boolean"
	}
	name = strings.TrimSuffix(name, "!")

	var out []*ast.Parameter
	for _, part := range splitTopLevel(params, ',', stringQuotes) {
		part = strings.TrimSpace(part)
		part = strings.TrimPrefix(part, "*")
		part = strings.TrimPrefix(part, "&")
		pname, value, defaulted := strings.Cut(part, "=")
		pname = strings.TrimSpace(pname)
		pname = strings.TrimSuffix(pname, ":")
		if !isIdentifier(pname) {
			continue
		}
		dataType := "Object"
		if defaulted {
			dataType = p.types.Canonicalize(inferRubyType(strings.TrimSpace(value)))
		}
		out = append(out, &ast.Parameter{
			Position: ast.Position{Line: line, Column: 1},
			Name:     pname,
			DataType: dataType,
		})
	}

	return &ast.CallableDeclaration{
		Position:   ast.Position{Line: line, Column: 1},
		Name:       name,
		ReturnType: returnType,
		Params:     out,
		Public:     true,
		Static:     static,
	}
}

var rbIntRe = regexp.MustCompile(`^-?\d+$`)
var rbFloatRe = regexp.MustCompile(`^-?\d+\.\d+$`)

// inferRubyType names the class of a literal initializer. Non-literal
// expressions infer nothing and stay Object.
func inferRubyType(value string) string {
	switch {
	case rbIntRe.MatchString(value):
		return "Integer"
	case rbFloatRe.MatchString(value):
		return "Float"
	case value == "true" || value == "false":
		return "Boolean"
	case strings.HasPrefix(value, `"`) || strings.HasPrefix(value, "'"):
		return "String"
	case strings.HasPrefix(value, ":"):
		return "Symbol"
	case strings.HasPrefix(value, "["):
		return "Array"
	case strings.HasPrefix(value, "{"):
		return "Hash"
	}
	return "Object"
}
