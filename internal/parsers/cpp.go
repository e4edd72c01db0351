package parsers

import (
	"regexp"
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
	"github.com/aseio6668/PolyType-sub001/internal/typemap"
)

// CppParser recognizes class and struct declarations with access-section
// tracking (public:/private:/protected:), their fields and methods, and
// free function definitions. Classes default members to private, structs
// to public, matching the language.
type CppParser struct {
	types typemap.Map
}

// NewCppParser creates a C++ structural parser.
func NewCppParser() *CppParser {
	return &CppParser{types: typemap.ForLanguage(lang.Cpp)}
}

var (
	cppTypeRe   = regexp.MustCompile(`(?m)^[ \t]*(class|struct)[ \t]+(\w+)[^;\{\n]*\{`)
	cppAccessRe = regexp.MustCompile(`(?m)^[ \t]*(public|private|protected)[ \t]*:`)
	cppMethodRe = regexp.MustCompile(`(?m)^[ \t]*((?:(?:static|virtual|inline|explicit|constexpr)[ \t]+)*)(~?)([\w:<>,&\* \t]*?)[ \t]*\b(\w+|operator[^\s\(]+)[ \t]*\(`)
	cppFieldRe  = regexp.MustCompile(`(?m)^[ \t]*((?:(?:static|mutable|const|constexpr)[ \t]+)*)([\w:<>,&\* \t]+?)[ \t]+(\**\w+(?:\[\w*\])?)[ \t]*(?:=[ \t]*([^;\n]+))?;`)
	cppFuncRe   = regexp.MustCompile(`(?m)^[ \t]*((?:(?:static|inline|constexpr)[ \t]+)*)([\w:<>,&\* \t]+?)[ \t]+(\**)(\w+)[ \t]*\(`)
)

var cppKeywords = map[string]bool{
	"if": true, "for": true, "while": true, "switch": true, "return": true,
	"else": true, "do": true, "new": true, "delete": true, "sizeof": true,
	"throw": true, "catch": true,
}

func (p *CppParser) Language() lang.Language { return lang.Cpp }

func (p *CppParser) CanHandle(filename string) bool { return canHandle(lang.Cpp, filename) }

func (p *CppParser) ParseFile(path string) (*ast.Program, error) { return parseFile(p, path) }

func (p *CppParser) Parse(src string) (*ast.Program, error) {
	if err := checkDecodable(src); err != nil {
		return nil, err
	}

	text := stripCComments(src, charQuotes)
	text = stripDirectives(text, "#include", "#define", "#ifdef", "#ifndef", "#endif", "#else", "#pragma",
		"using ", "namespace ", "template")

	program := &ast.Program{Position: ast.Position{Line: 1, Column: 1}}
	consumed := newSpanSet()

	for _, m := range cppTypeRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOf(text, m[0])
		kind := text[m[2]:m[3]]
		name := text[m[4]:m[5]]

		body, end, ok := braceBlock(text, m[1]-1, charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated "+kind+" body")
			continue
		}
		consumed.add(m[0], end)

		decl := &ast.TypeDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			Public:   true,
		}
		p.parseTypeBody(decl, program, body, line, name, kind == "struct")
		program.AddChild(decl)
	}

	for _, m := range cppFuncRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		line := lineOf(text, m[0])
		spelling := strings.TrimSpace(text[m[4]:m[5]]) + text[m[6]:m[7]]
		name := text[m[8]:m[9]]
		if cppKeywords[name] || spelling == "" || cppKeywords[strings.TrimRight(spelling, "* \t")] {
			continue
		}
		// Out-of-line member definitions (Type::method) belong to their
		// class, which already captured the declaration.
		if strings.Contains(name, "::") || strings.HasSuffix(spelling, "::") {
			continue
		}

		params, afterParams, ok := parenBlock(text, m[1]-1, charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated parameter list")
			continue
		}
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
			ReturnType: p.types.Canonicalize(spelling),
			Params:     p.parseParams(params, line),
			Public:     true,
			Static:     true,
			RawBody:    rawBody,
		})
	}

	return program, nil
}

// accessAt reports the access level in force at offset. sections holds
// specifier matches in body order.
func accessAt(sections [][]int, body string, offset int, structDefault bool) bool {
	public := structDefault
	for _, s := range sections {
		if s[0] > offset {
			break
		}
		public = body[s[2]:s[3]] == "public"
	}
	return public
}

func (p *CppParser) parseTypeBody(decl *ast.TypeDeclaration, program *ast.Program, body string, classLine int, className string, isStruct bool) {
	sections := cppAccessRe.FindAllStringSubmatchIndex(body, -1)
	consumed := newSpanSet()
	for _, s := range sections {
		consumed.add(s[0], s[1])
	}

	for _, m := range cppMethodRe.FindAllStringSubmatchIndex(body, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		mods := body[m[2]:m[3]]
		destructor := body[m[4]:m[5]] == "~"
		spelling := strings.TrimSpace(body[m[6]:m[7]])
		name := body[m[8]:m[9]]
		if cppKeywords[name] || strings.HasPrefix(name, "operator") || destructor {
			// Operators and destructors have no Java counterpart.
			if destructor || strings.HasPrefix(name, "operator") {
				if _, end, ok := parenBlock(body, m[1]-1, charQuotes); ok {
					blockEnd := end
					if _, be, hasBody := trailingBrace(body, end); hasBody {
						blockEnd = be
					}
					consumed.add(m[0], blockEnd)
				}
			}
			continue
		}
		line := lineOf(body, m[0]) + classLine - 1

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

		returnType := ast.VoidType
		switch {
		case name == className && spelling == "":
			// Constructor.
		case spelling == "":
			continue
		default:
			returnType = p.types.Canonicalize(spelling)
		}
		consumed.add(m[0], end)

		decl.AddMember(&ast.CallableDeclaration{
			Position:   ast.Position{Line: line, Column: 1},
			Name:       name,
			ReturnType: returnType,
			Params:     p.parseParams(params, line),
			Public:     accessAt(sections, body, m[0], isStruct),
			Static:     strings.Contains(mods, "static"),
			RawBody:    rawBody,
		})
	}

	for _, m := range cppFieldRe.FindAllStringSubmatchIndex(body, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		mods := body[m[2]:m[3]]
		spelling := strings.TrimSpace(body[m[4]:m[5]])
		declarator := body[m[6]:m[7]]
		if cppKeywords[spelling] || spelling == "return" {
			continue
		}

		name := strings.TrimLeft(declarator, "*")
		stars := declarator[:len(declarator)-len(name)]
		if idx := strings.IndexByte(name, '['); idx >= 0 {
			spelling += name[idx:]
			name = name[:idx]
		}
		if !isIdentifier(name) || cppKeywords[name] {
			continue
		}
		line := lineOf(body, m[0]) + classLine - 1

		field := &ast.FieldDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			DataType: p.types.Canonicalize(spelling + stars),
			Public:   accessAt(sections, body, m[0], isStruct),
			Mutable:  !strings.Contains(mods, "const"),
		}
		if m[8] >= 0 {
			field.Initializer = strings.TrimSpace(body[m[8]:m[9]])
		}
		decl.AddMember(field)
	}
}

func (p *CppParser) parseParams(params string, line int) []*ast.Parameter {
	params = strings.TrimSpace(params)
	if params == "" || params == "void" {
		return nil
	}
	var out []*ast.Parameter
	for _, part := range splitTopLevel(params, ',', charQuotes) {
		part = strings.TrimSpace(part)
		part, _, _ = strings.Cut(part, "=")
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) < 2 {
			continue
		}
		last := fields[len(fields)-1]
		spelling := strings.Join(fields[:len(fields)-1], " ")
		name := strings.TrimLeft(last, "*&")
		prefix := last[:len(last)-len(name)]
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
			DataType: p.types.Canonicalize(spelling + prefix),
		})
	}
	return out
}
