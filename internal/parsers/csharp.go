package parsers

import (
	"regexp"
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
	"github.com/aseio6668/PolyType-sub001/internal/typemap"
)

// CSharpParser recognizes class, struct, and interface declarations with
// their fields, auto-properties, and methods. Namespace nesting is
// flattened; only one declaration level is populated per type.
type CSharpParser struct {
	types typemap.Map
}

// NewCSharpParser creates a C# structural parser.
func NewCSharpParser() *CSharpParser {
	return &CSharpParser{types: typemap.ForLanguage(lang.CSharp)}
}

var (
	csTypeRe   = regexp.MustCompile(`(?m)^[ \t]*((?:(?:public|private|protected|internal|static|sealed|abstract|partial)[ \t]+)*)(class|struct|interface)[ \t]+(\w+)(?:<[^>\n]*>)?[^\{\n]*\{`)
	csMemberRe = regexp.MustCompile(`(?m)^[ \t]*((?:(?:public|private|protected|internal|static|virtual|override|abstract|async|readonly|const)[ \t]+)+)([\w\.<>,\[\] \t]+?)[ \t]+(\w+)[ \t]*(\(|\{|=|;)`)
	csCtorRe   = regexp.MustCompile(`(?m)^[ \t]*((?:(?:public|private|protected|internal)[ \t]+)+)(\w+)[ \t]*\(`)
)

func (p *CSharpParser) Language() lang.Language { return lang.CSharp }

func (p *CSharpParser) CanHandle(filename string) bool { return canHandle(lang.CSharp, filename) }

func (p *CSharpParser) ParseFile(path string) (*ast.Program, error) { return parseFile(p, path) }

func (p *CSharpParser) Parse(src string) (*ast.Program, error) {
	if err := checkDecodable(src); err != nil {
		return nil, err
	}

	text := stripCComments(src, charQuotes)
	text = stripDirectives(text, "using ", "namespace ", "#region", "#endregion", "#pragma", "[")

	program := &ast.Program{Position: ast.Position{Line: 1, Column: 1}}

	for _, m := range csTypeRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOf(text, m[0])
		mods := text[m[2]:m[3]]
		kind := text[m[4]:m[5]]
		name := text[m[6]:m[7]]

		body, _, ok := braceBlock(text, m[1]-1, charQuotes)
		if !ok {
			program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated "+kind+" body")
			continue
		}

		decl := &ast.TypeDeclaration{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			Public:   strings.Contains(mods, "public"),
		}
		if kind == "interface" {
			p.parseInterfaceBody(decl, body, line)
		} else {
			p.parseTypeBody(decl, program, body, line, name)
		}
		program.AddChild(decl)
	}

	return program, nil
}

func (p *CSharpParser) parseTypeBody(decl *ast.TypeDeclaration, program *ast.Program, body string, classLine int, className string) {
	consumed := newSpanSet()

	// Constructors carry no return type, so they need their own pattern.
	for _, m := range csCtorRe.FindAllStringSubmatchIndex(body, -1) {
		name := body[m[4]:m[5]]
		if name != className {
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
		consumed.add(m[0], end)
		decl.AddMember(&ast.CallableDeclaration{
			Position:   ast.Position{Line: line, Column: 1},
			Name:       name,
			ReturnType: ast.VoidType,
			Params:     p.parseParams(params, line),
			Public:     strings.Contains(body[m[2]:m[3]], "public"),
			RawBody:    rawBody,
		})
	}

	for _, m := range csMemberRe.FindAllStringSubmatchIndex(body, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		line := lineOf(body, m[0]) + classLine - 1
		mods := body[m[2]:m[3]]
		spelling := strings.TrimSpace(body[m[4]:m[5]])
		name := body[m[6]:m[7]]
		delim := body[m[8]:m[9]]

		public := strings.Contains(mods, "public")
		static := strings.Contains(mods, "static")
		mutable := !strings.Contains(mods, "readonly") && !strings.Contains(mods, "const")

		switch delim {
		case "(":
			params, afterParams, ok := parenBlock(body, m[9]-1, charQuotes)
			if !ok {
				program.Skip(line, firstLine(body[m[0]:m[1]]), "unterminated parameter list")
				continue
			}
			rawBody := ""
			end := afterParams
			if blockBody, blockEnd, hasBody := trailingBrace(body, afterParams); hasBody {
				rawBody = strings.TrimSpace(blockBody)
				end = blockEnd
			}
			consumed.add(m[0], end)

			returnType := p.types.Canonicalize(spelling)
			if name == className {
				// Constructor: the matched "type" text is really the
				// modifier-adjacent name, so discard it.
				returnType = ast.VoidType
			}
			decl.AddMember(&ast.CallableDeclaration{
				Position:   ast.Position{Line: line, Column: 1},
				Name:       name,
				ReturnType: returnType,
				Params:     p.parseParams(params, line),
				Public:     public,
				Static:     static,
				RawBody:    rawBody,
			})
		case "{":
			// Auto-property: field plus accessor pair.
			accessors, end, ok := matchDelimited(body, m[9]-1, '{', '}', charQuotes)
			if !ok {
				program.Skip(line, firstLine(body[m[0]:m[1]]), "unterminated property accessors")
				continue
			}
			consumed.add(m[0], end)

			dataType := p.types.Canonicalize(spelling)
			decl.AddMember(&ast.FieldDeclaration{
				Position: ast.Position{Line: line, Column: 1},
				Name:     lowerFirst(name),
				DataType: dataType,
				Mutable:  strings.Contains(accessors, "set"),
			})
			decl.AddMember(&ast.CallableDeclaration{
				Position:   ast.Position{Line: line, Column: 1},
				Name:       "get" + name,
				ReturnType: dataType,
				Public:     public,
				Static:     static,
			})
			if strings.Contains(accessors, "set") {
				decl.AddMember(&ast.CallableDeclaration{
					Position:   ast.Position{Line: line, Column: 1},
					Name:       "set" + name,
					ReturnType: ast.VoidType,
					Params: []*ast.Parameter{{
						Position: ast.Position{Line: line, Column: 1},
						Name:     "value",
						DataType: dataType,
					}},
					Public: public,
					Static: static,
				})
			}
		case "=", ";":
			consumed.add(m[0], m[1])
			field := &ast.FieldDeclaration{
				Position: ast.Position{Line: line, Column: 1},
				Name:     name,
				DataType: p.types.Canonicalize(spelling),
				Public:   public,
				Mutable:  mutable,
			}
			if delim == "=" {
				rest := body[m[9]:]
				if eol := strings.IndexAny(rest, ";\n"); eol >= 0 {
					field.Initializer = strings.TrimSpace(rest[:eol])
				}
			}
			decl.AddMember(field)
		}
	}
}

func (p *CSharpParser) parseInterfaceBody(decl *ast.TypeDeclaration, body string, classLine int) {
	sigRe := regexp.MustCompile(`(?m)^[ \t]*([\w\.<>,\[\] \t]+?)[ \t]+(\w+)[ \t]*\(`)
	for _, m := range sigRe.FindAllStringSubmatchIndex(body, -1) {
		line := lineOf(body, m[0]) + classLine - 1
		spelling := strings.TrimSpace(body[m[2]:m[3]])
		name := body[m[4]:m[5]]
		params, _, ok := parenBlock(body, m[1]-1, charQuotes)
		if !ok {
			continue
		}
		decl.AddMember(&ast.CallableDeclaration{
			Position:   ast.Position{Line: line, Column: 1},
			Name:       name,
			ReturnType: p.types.Canonicalize(spelling),
			Params:     p.parseParams(params, line),
			Public:     true,
		})
	}
}

func (p *CSharpParser) parseParams(params string, line int) []*ast.Parameter {
	var out []*ast.Parameter
	for _, part := range splitTopLevel(params, ',', charQuotes) {
		part = strings.TrimSpace(part)
		for _, mod := range []string{"ref ", "out ", "in ", "params ", "this "} {
			part = strings.TrimPrefix(part, mod)
		}
		part, _, _ = strings.Cut(part, "=")
		fields := strings.Fields(strings.TrimSpace(part))
		if len(fields) < 2 {
			continue
		}
		name := fields[len(fields)-1]
		if !isIdentifier(name) {
			continue
		}
		spelling := strings.Join(fields[:len(fields)-1], " ")
		out = append(out, &ast.Parameter{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			DataType: p.types.Canonicalize(spelling),
		})
	}
	return out
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
