package parsers

import (
	"regexp"
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
	"github.com/aseio6668/PolyType-sub001/internal/typemap"
)

// PythonParser recognizes class blocks and def declarations. Blocks are
// isolated by indentation rather than braces; annotations are optional and
// unannotated names default to Object.
type PythonParser struct {
	types typemap.Map
}

// NewPythonParser creates a Python structural parser.
func NewPythonParser() *PythonParser {
	return &PythonParser{types: typemap.ForLanguage(lang.Python)}
}

var (
	pyClassRe = regexp.MustCompile(`(?m)^([ \t]*)class[ \t]+(\w+)[ \t]*(?:\(([^)]*)\))?[ \t]*:`)
	pyDefRe   = regexp.MustCompile(`(?m)^([ \t]*)(?:async[ \t]+)?def[ \t]+(\w+)[ \t]*\(`)
	pyAttrRe  = regexp.MustCompile(`(?m)^[ \t]*(\w+)[ \t]*:[ \t]*([^\s=]+)[ \t]*(?:=[ \t]*(.+))?$`)
	pySelfRe  = regexp.MustCompile(`(?m)^[ \t]*self\.(\w+)[ \t]*(?::[ \t]*([^\s=]+))?[ \t]*=[ \t]*(.+)$`)
)

func (p *PythonParser) Language() lang.Language { return lang.Python }

func (p *PythonParser) CanHandle(filename string) bool { return canHandle(lang.Python, filename) }

func (p *PythonParser) ParseFile(path string) (*ast.Program, error) { return parseFile(p, path) }

func (p *PythonParser) Parse(src string) (*ast.Program, error) {
	if err := checkDecodable(src); err != nil {
		return nil, err
	}

	text := stripHashComments(src)
	text = stripDirectives(text, "import ", "from ")

	program := &ast.Program{Position: ast.Position{Line: 1, Column: 1}}
	consumed := newSpanSet()

	for _, m := range pyClassRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOf(text, m[0])
		indent := m[3] - m[2]
		name := text[m[4]:m[5]]

		block, end := indentedBlock(text, m[1], indent)
		consumed.add(m[0], end)

		decl := &ast.TypeDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			Public:   !strings.HasPrefix(name, "_"),
		}
		p.parseClassBody(decl, program, block, line)
		program.AddChild(decl)
	}

	for _, m := range pyDefRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		fn, ok := p.parseDef(program, text, m, false)
		if !ok {
			continue
		}
		fn.Static = true
		program.AddChild(fn)
	}

	return program, nil
}

// indentedBlock returns the text belonging to a block header ending at
// headerEnd, i.e. every subsequent line indented deeper than the header.
func indentedBlock(text string, headerEnd, headerIndent int) (string, int) {
	i := strings.IndexByte(text[headerEnd:], '\n')
	if i < 0 {
		return "", len(text)
	}
	start := headerEnd + i + 1
	pos := start
	for pos < len(text) {
		lineEnd := strings.IndexByte(text[pos:], '\n')
		if lineEnd < 0 {
			lineEnd = len(text) - pos
		}
		line := text[pos : pos+lineEnd]
		if strings.TrimSpace(line) != "" && indentWidth(line) <= headerIndent {
			return text[start:pos], pos
		}
		pos += lineEnd + 1
	}
	return text[start:], len(text)
}

func indentWidth(line string) int {
	n := 0
	for _, r := range line {
		if r == ' ' {
			n++
		} else if r == '\t' {
			n += 8
		} else {
			break
		}
	}
	return n
}

func (p *PythonParser) parseClassBody(decl *ast.TypeDeclaration, program *ast.Program, block string, classLine int) {
	seen := make(map[string]bool)

	// Annotated class attributes come first in declaration order.
	defStart := len(block)
	if loc := pyDefRe.FindStringIndex(block); loc != nil {
		defStart = loc[0]
	}
	for _, m := range pyAttrRe.FindAllStringSubmatch(block[:defStart], -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		field := &ast.FieldDeclaration{
			Position: ast.Position{Line: classLine, Column: 1},
			Name:     name,
			DataType: p.types.Canonicalize(m[2]),
			Public:   !strings.HasPrefix(name, "_"),
			Mutable:  true,
		}
		if m[3] != "" {
			field.Initializer = strings.TrimSpace(m[3])
		}
		decl.AddMember(field)
	}

	// Instance attributes assigned on self inside __init__.
	for _, m := range pySelfRe.FindAllStringSubmatch(block, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		dataType := "Object"
		if m[2] != "" {
			dataType = p.types.Canonicalize(m[2])
		}
		decl.AddMember(&ast.FieldDeclaration{
			Position: ast.Position{Line: classLine, Column: 1},
			Name:     name,
			DataType: dataType,
			Public:   !strings.HasPrefix(name, "_"),
			Mutable:  true,
		})
	}

	for _, m := range pyDefRe.FindAllStringSubmatchIndex(block, -1) {
		fn, ok := p.parseDef(program, block, m, true)
		if !ok {
			continue
		}
		fn.Position.Line += classLine
		if fn.Name == "__init__" {
			fn.Name = decl.Name
			fn.ReturnType = ast.VoidType
		}
		decl.AddMember(fn)
	}
}

func (p *PythonParser) parseDef(program *ast.Program, text string, m []int, method bool) (*ast.CallableDeclaration, bool) {
	line := lineOf(text, m[0])
	name := text[m[4]:m[5]]

	params, afterParams, ok := parenBlock(text, m[1]-1, stringQuotes)
	if !ok {
		program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated parameter list")
		return nil, false
	}

	returnType := ast.VoidType
	rest := text[afterParams:]
	if colon := strings.IndexByte(rest, ':'); colon >= 0 {
		if arrow := strings.Index(rest[:colon], "->"); arrow >= 0 {
			spelling := strings.TrimSpace(rest[arrow+2 : colon])
			if spelling != "" && spelling != "None" {
				returnType = p.types.Canonicalize(spelling)
			}
		}
	}

	static := !method
	var out []*ast.Parameter
	for i, part := range splitTopLevel(params, ',', stringQuotes) {
		part = strings.TrimSpace(part)
		if i == 0 && method && (part == "self" || part == "cls") {
			static = part == "cls"
			continue
		}
		part = strings.TrimPrefix(part, "*")
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

	return &ast.CallableDeclaration{
		Position:   ast.Position{Line: line, Column: 1},
		Name:       name,
		ReturnType: returnType,
		Params:     out,
		Public:     !strings.HasPrefix(name, "_") || strings.HasPrefix(name, "__"),
		Static:     static,
	}, true
}
