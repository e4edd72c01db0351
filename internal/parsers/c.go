package parsers

import (
	"regexp"
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
	"github.com/aseio6668/PolyType-sub001/internal/typemap"
)

// CParser recognizes struct definitions (plain and typedef'd) and free
// function definitions. Everything in C is public; struct members are
// always mutable.
type CParser struct {
	types typemap.Map
}

// NewCParser creates a C structural parser.
func NewCParser() *CParser {
	return &CParser{types: typemap.ForLanguage(lang.C)}
}

var (
	cStructRe  = regexp.MustCompile(`(?m)^[ \t]*(typedef[ \t]+)?struct[ \t]+(\w+)?[ \t]*\{`)
	cTypedefRe = regexp.MustCompile(`^[ \t]*(\w+)[ \t]*;`)
	cFuncRe    = regexp.MustCompile(`(?m)^[ \t]*(?:static[ \t]+)?(?:inline[ \t]+)?([\w \t\*]+?)[ \t]+(\**)(\w+)[ \t]*\(`)
)

func (p *CParser) Language() lang.Language { return lang.C }

func (p *CParser) CanHandle(filename string) bool { return canHandle(lang.C, filename) }

func (p *CParser) ParseFile(path string) (*ast.Program, error) { return parseFile(p, path) }

func (p *CParser) Parse(src string) (*ast.Program, error) {
	if err := checkDecodable(src); err != nil {
		return nil, err
	}

	text := stripCComments(src, charQuotes)
	text = stripDirectives(text, "#include", "#define", "#ifdef", "#ifndef", "#endif", "#else", "#pragma")

	program := &ast.Program{Position: ast.Position{Line: 1, Column: 1}}
	consumed := newSpanSet()

	for _, m := range cStructRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOf(text, m[0])
		body, end, ok := braceBlock(text, m[1]-1, charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated struct body")
			continue
		}

		name := ""
		if m[4] >= 0 {
			name = text[m[4]:m[5]]
		}
		// typedef struct { ... } Alias; prefers the alias.
		if m[2] >= 0 {
			if alias := cTypedefRe.FindStringSubmatch(text[end:]); alias != nil {
				name = alias[1]
				end += len(alias[0])
			}
		}
		consumed.add(m[0], end)
		if name == "" {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "anonymous struct")
			continue
		}

		decl := &ast.TypeDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			Public:   true,
		}
		p.parseStructFields(decl, body, line)
		program.AddChild(decl)
	}

	for _, m := range cFuncRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		line := lineOf(text, m[0])
		returnSpelling := strings.TrimSpace(text[m[2]:m[3]]) + text[m[4]:m[5]]
		name := text[m[6]:m[7]]
		if returnSpelling == "" || strings.Contains(returnSpelling, "return") {
			continue
		}

		params, afterParams, ok := parenBlock(text, m[1]-1, charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated parameter list")
			continue
		}
		// Prototypes end in ';', definitions carry a body.
		end := afterParams
		rawBody := ""
		if body, bodyEnd, hasBody := trailingBrace(text, afterParams); hasBody {
			rawBody = strings.TrimSpace(body)
			end = bodyEnd
		}
		consumed.add(m[0], end)

		program.AddChild(&ast.CallableDeclaration{
			Position:   ast.Position{Line: line, Column: 1},
			Name:       name,
			ReturnType: p.types.Canonicalize(returnSpelling),
			Params:     p.parseParams(params, line),
			Public:     true,
			Static:     true,
			RawBody:    rawBody,
		})
	}

	return program, nil
}

func (p *CParser) parseStructFields(decl *ast.TypeDeclaration, body string, line int) {
	for _, stmt := range strings.Split(body, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		fields := strings.Fields(stmt)
		if len(fields) < 2 {
			continue
		}
		last := fields[len(fields)-1]
		spelling := strings.Join(fields[:len(fields)-1], " ")

		// Declarator stars belong to the type; array suffixes stay on the
		// spelling so the vocabulary map can turn them into arrays.
		name := strings.TrimLeft(last, "*")
		stars := last[:len(last)-len(name)]
		if idx := strings.IndexByte(name, '['); idx >= 0 {
			spelling += name[idx:]
			name = name[:idx]
		}
		if !isIdentifier(name) {
			continue
		}
		decl.AddMember(&ast.FieldDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			DataType: p.types.Canonicalize(spelling + stars),
			Public:   true,
			Mutable:  true,
		})
	}
}

func (p *CParser) parseParams(params string, line int) []*ast.Parameter {
	params = strings.TrimSpace(params)
	if params == "" || params == "void" {
		return nil
	}
	var out []*ast.Parameter
	for _, part := range splitTopLevel(params, ',', charQuotes) {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) < 2 {
			continue
		}
		last := fields[len(fields)-1]
		spelling := strings.Join(fields[:len(fields)-1], " ")
		name := strings.TrimLeft(last, "*")
		stars := last[:len(last)-len(name)]
		if idx := strings.IndexByte(name, '['); idx >= 0 {
			spelling += "[]"
			name = name[:idx]
		}
		if !isIdentifier(name) {
			continue
		}
		out = append(out, &ast.Parameter{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			DataType: p.types.Canonicalize(spelling + stars),
		})
	}
	return out
}
