package parsers

import (
	"regexp"
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
	"github.com/aseio6668/PolyType-sub001/internal/typemap"
)

// JavaScriptParser recognizes class declarations, their methods and
// constructor-assigned fields, and free function declarations. It also
// serves TypeScript: annotations are canonicalized when present, and
// untyped names default to Object.
type JavaScriptParser struct {
	language lang.Language
	types    typemap.Map
}

// NewJavaScriptParser creates a JavaScript structural parser.
func NewJavaScriptParser() *JavaScriptParser {
	return &JavaScriptParser{language: lang.JavaScript, types: typemap.ForLanguage(lang.JavaScript)}
}

// NewTypeScriptParser creates the TypeScript variant of the parser.
func NewTypeScriptParser() *JavaScriptParser {
	return &JavaScriptParser{language: lang.TypeScript, types: typemap.ForLanguage(lang.TypeScript)}
}

var (
	jsClassRe     = regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+)?(?:default[ \t]+)?(?:abstract[ \t]+)?class[ \t]+(\w+)[^\{\n]*\{`)
	jsInterfaceRe = regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+)?interface[ \t]+(\w+)[^\{\n]*\{`)
	jsFunctionRe  = regexp.MustCompile(`(?m)^[ \t]*(?:export[ \t]+)?(?:default[ \t]+)?(?:async[ \t]+)?function[ \t]*\*?[ \t]*(\w+)[ \t]*\(`)
	jsMethodRe    = regexp.MustCompile(`(?m)^[ \t]*((?:(?:static|async|public|private|protected|readonly)[ \t]+)*)(?:get[ \t]+|set[ \t]+)?(\w+)[ \t]*\(`)
	jsThisRe      = regexp.MustCompile(`this\.(\w+)[ \t]*=`)
	jsFieldRe     = regexp.MustCompile(`(?m)^[ \t]*((?:(?:static|public|private|protected|readonly)[ \t]+)*)(#?\w+)[ \t]*(?::[ \t]*([^=;\n]+))?[ \t]*(?:=[ \t]*([^;\n]+))?[ \t]*;[ \t]*$`)
)

// Method-pattern names that are actually control-flow keywords.
var jsKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "catch": true,
	"return": true, "function": true, "constructor": false,
}

func (p *JavaScriptParser) Language() lang.Language { return p.language }

func (p *JavaScriptParser) CanHandle(filename string) bool { return canHandle(p.language, filename) }

func (p *JavaScriptParser) ParseFile(path string) (*ast.Program, error) { return parseFile(p, path) }

func (p *JavaScriptParser) Parse(src string) (*ast.Program, error) {
	if err := checkDecodable(src); err != nil {
		return nil, err
	}

	text := stripCComments(src, stringQuotes)
	text = stripDirectives(text, "import ", "const ", "require(", "export default ", "module.exports")

	program := &ast.Program{Position: ast.Position{Line: 1, Column: 1}}
	consumed := newSpanSet()

	for _, m := range jsClassRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOf(text, m[0])
		name := text[m[2]:m[3]]
		body, end, ok := braceBlock(text, m[1]-1, stringQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated class body")
			continue
		}
		consumed.add(m[0], end)

		decl := &ast.TypeDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			Public:   true,
		}
		p.parseClassBody(decl, program, body, line, name)
		program.AddChild(decl)
	}

	for _, m := range jsInterfaceRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		line := lineOf(text, m[0])
		name := text[m[2]:m[3]]
		body, end, ok := braceBlock(text, m[1]-1, stringQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated interface body")
			continue
		}
		consumed.add(m[0], end)

		decl := &ast.TypeDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			Public:   true,
		}
		p.parseInterfaceBody(decl, body, line)
		program.AddChild(decl)
	}

	for _, m := range jsFunctionRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		line := lineOf(text, m[0])
		name := text[m[2]:m[3]]
		fn, end, ok := p.parseCallable(program, text, m[1]-1, name, line)
		if !ok {
			continue
		}
		consumed.add(m[0], end)
		fn.Static = true
		program.AddChild(fn)
	}

	return program, nil
}

func (p *JavaScriptParser) parseClassBody(decl *ast.TypeDeclaration, program *ast.Program, body string, classLine int, className string) {
	memberSpans := newSpanSet()
	seen := make(map[string]bool)

	// Declared fields (class fields / TypeScript properties).
	for _, m := range jsFieldRe.FindAllStringSubmatchIndex(body, -1) {
		mods := body[m[2]:m[3]]
		name := strings.TrimPrefix(body[m[4]:m[5]], "#")
		if seen[name] || jsKeywords[name] {
			continue
		}
		seen[name] = true
		memberSpans.add(m[0], m[1])

		dataType := "Object"
		if m[6] >= 0 {
			if spelling := strings.TrimSpace(body[m[6]:m[7]]); spelling != "" {
				dataType = p.types.Canonicalize(spelling)
			}
		}
		field := &ast.FieldDeclaration{
			Position: ast.Position{Line: lineOf(body, m[0]) + classLine - 1, Column: 1},
			Name:     name,
			DataType: dataType,
			Public:   !strings.Contains(mods, "private") && !strings.HasPrefix(body[m[4]:m[5]], "#"),
			Mutable:  !strings.Contains(mods, "readonly"),
		}
		if m[8] >= 0 {
			field.Initializer = strings.TrimSpace(body[m[8]:m[9]])
		}
		decl.AddMember(field)
	}

	for _, m := range jsMethodRe.FindAllStringSubmatchIndex(body, -1) {
		if memberSpans.contains(m[0]) {
			continue
		}
		mods := body[m[2]:m[3]]
		name := body[m[4]:m[5]]
		if jsKeywords[name] {
			continue
		}
		line := lineOf(body, m[0]) + classLine - 1

		fn, end, ok := p.parseCallable(program, body, m[1]-1, name, line)
		if !ok {
			continue
		}
		memberSpans.add(m[0], end)

		if name == "constructor" {
			fn.Name = className
			fn.ReturnType = ast.VoidType
			// this.x assignments inside the constructor surface fields
			// the class never declared.
			for _, fm := range jsThisRe.FindAllStringSubmatch(fn.RawBody, -1) {
				if seen[fm[1]] {
					continue
				}
				seen[fm[1]] = true
				decl.AddMember(&ast.FieldDeclaration{
					Position: ast.Position{Line: line, Column: 1},
					Name:     fm[1],
					DataType: "Object",
					Mutable:  true,
				})
			}
		}
		fn.Public = !strings.Contains(mods, "private")
		fn.Static = strings.Contains(mods, "static")
		decl.AddMember(fn)
	}
}

func (p *JavaScriptParser) parseInterfaceBody(decl *ast.TypeDeclaration, body string, classLine int) {
	sigRe := regexp.MustCompile(`(?m)^[ \t]*(\w+)[ \t]*\(([^)]*)\)[ \t]*(?::[ \t]*([^;\n]+))?`)
	for _, m := range sigRe.FindAllStringSubmatch(body, -1) {
		returnType := ast.VoidType
		if strings.TrimSpace(m[3]) != "" {
			returnType = p.types.Canonicalize(strings.TrimSpace(m[3]))
		}
		decl.AddMember(&ast.CallableDeclaration{
			Position:   ast.Position{Line: classLine, Column: 1},
			Name:       m[1],
			ReturnType: returnType,
			Params:     p.parseParams(m[2], classLine),
			Public:     true,
		})
	}
}

// parseCallable parses the parameter list opening at openParen and an
// optional arrow-annotated return type and brace body.
func (p *JavaScriptParser) parseCallable(program *ast.Program, text string, openParen int, name string, line int) (*ast.CallableDeclaration, int, bool) {
	params, afterParams, ok := parenBlock(text, openParen, stringQuotes)
	if !ok {
		program.Skip(line, name, "unterminated parameter list")
		return nil, 0, false
	}

	returnType := ast.VoidType
	rest := text[afterParams:]
	headEnd := strings.IndexAny(rest, "{\n")
	if headEnd < 0 {
		headEnd = len(rest)
	}
	if colon := strings.Index(rest[:headEnd], ":"); colon >= 0 {
		if spelling := strings.TrimSpace(rest[colon+1 : headEnd]); spelling != "" {
			returnType = p.types.Canonicalize(spelling)
		}
	}

	end := afterParams + headEnd
	rawBody := ""
	if headEnd < len(rest) && rest[headEnd] == '{' {
		body, bodyEnd, ok := matchDelimited(text, afterParams+headEnd, '{', '}', stringQuotes)
		if !ok {
			program.Skip(line, name, "unterminated body")
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
		Public:     true,
		RawBody:    rawBody,
	}, end, true
}

func (p *JavaScriptParser) parseParams(params string, line int) []*ast.Parameter {
	var out []*ast.Parameter
	for _, part := range splitTopLevel(params, ',', stringQuotes) {
		part = strings.TrimSpace(part)
		part = strings.TrimPrefix(part, "...")
		part, _, _ = strings.Cut(part, "=")
		name, spelling, annotated := strings.Cut(part, ":")
		name = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(name), "?"))
		if !isIdentifier(name) {
			continue
		}
		dataType := "Object"
		if annotated {
			dataType = p.types.Canonicalize(strings.TrimSpace(spelling))
		}
		out = append(out, &ast.Parameter{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			DataType: dataType,
		})
	}
	return out
}
