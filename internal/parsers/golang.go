package parsers

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
	"github.com/aseio6668/PolyType-sub001/internal/typemap"
)

// GoParser recognizes struct and interface type declarations, free
// functions, and receiver methods, which attach to their struct.
type GoParser struct {
	types typemap.Map
}

// NewGoParser creates a Go structural parser.
func NewGoParser() *GoParser {
	return &GoParser{types: typemap.ForLanguage(lang.Go)}
}

var (
	goStructRe    = regexp.MustCompile(`(?m)^[ \t]*type[ \t]+(\w+)[ \t]+struct[ \t]*\{`)
	goInterfaceRe = regexp.MustCompile(`(?m)^[ \t]*type[ \t]+(\w+)[ \t]+interface[ \t]*\{`)
	goFuncRe      = regexp.MustCompile(`(?m)^[ \t]*func[ \t]+(?:\(([^)]*)\)[ \t]*)?(\w+)[ \t]*\(`)
	goIfaceSigRe  = regexp.MustCompile(`(?m)^[ \t]*(\w+)\(`)
)

func (p *GoParser) Language() lang.Language { return lang.Go }

func (p *GoParser) CanHandle(filename string) bool { return canHandle(lang.Go, filename) }

func (p *GoParser) ParseFile(path string) (*ast.Program, error) { return parseFile(p, path) }

func (p *GoParser) Parse(src string) (*ast.Program, error) {
	if err := checkDecodable(src); err != nil {
		return nil, err
	}

	text := stripCComments(src, charQuotes)
	text = stripDirectives(text, "import ", "import(", "package ")
	text = stripImportBlocks(text)

	program := &ast.Program{Position: ast.Position{Line: 1, Column: 1}}
	declared := make(map[string]*ast.TypeDeclaration)
	consumed := newSpanSet()

	for _, m := range goStructRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOf(text, m[0])
		name := text[m[2]:m[3]]
		body, end, ok := braceBlock(text, m[1]-1, charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated struct body")
			continue
		}
		consumed.add(m[0], end)

		decl := &ast.TypeDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			Public:   exportedGoName(name),
		}
		p.parseStructFields(decl, body, line)
		declared[name] = decl
		program.AddChild(decl)
	}

	for _, m := range goInterfaceRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOf(text, m[0])
		name := text[m[2]:m[3]]
		body, end, ok := braceBlock(text, m[1]-1, charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated interface body")
			continue
		}
		consumed.add(m[0], end)

		decl := &ast.TypeDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			Public:   exportedGoName(name),
		}
		p.parseInterfaceBody(decl, body, line)
		declared[name] = decl
		program.AddChild(decl)
	}

	for _, m := range goFuncRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		line := lineOf(text, m[0])
		name := text[m[4]:m[5]]

		params, afterParams, ok := parenBlock(text, m[1]-1, charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated parameter list")
			continue
		}

		returnType, bodyStart := p.parseResults(text, afterParams)
		body, end, ok := matchDelimited(text, bodyStart, '{', '}', charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated func body")
			continue
		}
		consumed.add(m[0], end)

		fn := &ast.CallableDeclaration{
			Position:   ast.Position{Line: line, Column: 1},
			Name:       name,
			ReturnType: returnType,
			Params:     p.parseParams(params, line),
			Public:     exportedGoName(name),
			RawBody:    strings.TrimSpace(body),
		}

		// A receiver binds the method to its struct when declared in the
		// same file; otherwise the method is kept as a free callable.
		if m[2] >= 0 {
			recv := text[m[2]:m[3]]
			recvType := strings.TrimPrefix(lastToken(recv), "*")
			if owner, ok := declared[recvType]; ok {
				owner.AddMember(fn)
				continue
			}
		} else {
			fn.Static = true
		}
		program.AddChild(fn)
	}

	return program, nil
}

// parseResults reads the result clause between the parameter list and the
// opening brace. Multi-value results collapse to the first value; the
// trailing error of an (T, error) pair is dropped.
func (p *GoParser) parseResults(text string, afterParams int) (string, int) {
	open := strings.IndexByte(text[afterParams:], '{')
	if open < 0 {
		return ast.VoidType, len(text)
	}
	clause := strings.TrimSpace(text[afterParams : afterParams+open])
	return p.canonResultClause(clause), afterParams + open
}

// canonResultClause canonicalizes a result clause. Multi-value results
// collapse to the first value; named results drop their names.
func (p *GoParser) canonResultClause(clause string) string {
	if clause == "" {
		return ast.VoidType
	}
	if strings.HasPrefix(clause, "(") {
		clause = strings.TrimSuffix(strings.TrimPrefix(clause, "("), ")")
		parts := splitTopLevel(clause, ',', charQuotes)
		if len(parts) == 0 {
			return ast.VoidType
		}
		first := strings.TrimSpace(parts[0])
		if fields := strings.Fields(first); len(fields) == 2 {
			first = fields[1]
		}
		return p.types.Canonicalize(first)
	}
	return p.types.Canonicalize(clause)
}

func (p *GoParser) parseParams(params string, line int) []*ast.Parameter {
	var out []*ast.Parameter
	parts := splitTopLevel(params, ',', charQuotes)

	// Go groups co-typed names: "a, b int". Walk right to left so a
	// trailing type distributes over preceding bare names.
	types := make([]string, len(parts))
	lastType := ""
	for i := len(parts) - 1; i >= 0; i-- {
		fields := strings.Fields(strings.TrimSpace(parts[i]))
		if len(fields) >= 2 {
			lastType = strings.Join(fields[1:], " ")
		}
		types[i] = lastType
	}
	for i, part := range parts {
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) == 0 || types[i] == "" || !isIdentifier(fields[0]) {
			continue
		}
		out = append(out, &ast.Parameter{
			Position: ast.Position{Line: line, Column: 1},
			Name:     fields[0],
			DataType: p.types.Canonicalize(types[i]),
		})
	}
	return out
}

func (p *GoParser) parseStructFields(decl *ast.TypeDeclaration, body string, line int) {
	for _, raw := range strings.Split(body, "\n") {
		stmt := strings.TrimSpace(raw)
		if stmt == "" {
			continue
		}
		// Struct tags do not survive migration.
		if idx := strings.IndexByte(stmt, '`'); idx >= 0 {
			stmt = strings.TrimSpace(stmt[:idx])
		}
		fields := strings.Fields(stmt)
		if len(fields) < 2 {
			continue
		}
		spelling := strings.Join(fields[len(fields)-1:], " ")
		for _, name := range splitTopLevel(strings.Join(fields[:len(fields)-1], ""), ',', charQuotes) {
			name = strings.TrimSpace(name)
			if !isIdentifier(name) {
				continue
			}
			decl.AddMember(&ast.FieldDeclaration{
				Position: ast.Position{Line: line, Column: 1},
				Name:     name,
				DataType: p.types.Canonicalize(spelling),
				Public:   exportedGoName(name),
				Mutable:  true,
			})
		}
	}
}

func (p *GoParser) parseInterfaceBody(decl *ast.TypeDeclaration, body string, line int) {
	for _, m := range goIfaceSigRe.FindAllStringSubmatchIndex(body, -1) {
		name := body[m[2]:m[3]]
		params, afterParams, ok := parenBlock(body, m[1]-1, charQuotes)
		if !ok {
			continue
		}
		rest := body[afterParams:]
		eol := strings.IndexByte(rest, '\n')
		if eol < 0 {
			eol = len(rest)
		}
		returnType := p.canonResultClause(strings.TrimSpace(rest[:eol]))
		decl.AddMember(&ast.CallableDeclaration{
			Position:   ast.Position{Line: line, Column: 1},
			Name:       name,
			ReturnType: returnType,
			Params:     p.parseParams(params, line),
			Public:     true,
		})
	}
}

// stripImportBlocks blanks parenthesized import ( ... ) groups.
func stripImportBlocks(src string) string {
	for {
		idx := strings.Index(src, "import (")
		if idx < 0 {
			return src
		}
		_, end, ok := matchDelimited(src, idx+len("import "), '(', ')', charQuotes)
		if !ok {
			return src
		}
		src = src[:idx] + blankNonNewlines(src[idx:end]) + src[end:]
	}
}

func exportedGoName(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}

func lastToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}
