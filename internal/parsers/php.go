package parsers

import (
	"regexp"
	"strings"

	"github.com/aseio6668/PolyType-sub001/internal/ast"
	"github.com/aseio6668/PolyType-sub001/internal/lang"
	"github.com/aseio6668/PolyType-sub001/internal/typemap"
)

// PHPParser recognizes class, interface, and trait declarations with typed
// properties and methods, plus free functions. PSR style puts the opening
// brace on its own line, so type headers match without one. Traits parse
// like classes; their composition into hosts is out of scope.
type PHPParser struct {
	types typemap.Map
}

// NewPHPParser creates a PHP structural parser.
func NewPHPParser() *PHPParser {
	return &PHPParser{types: typemap.ForLanguage(lang.PHP)}
}

var (
	phpTypeRe   = regexp.MustCompile(`(?m)^[ \t]*((?:(?:abstract|final)[ \t]+)*)(class|interface|trait)[ \t]+(\w+)`)
	phpFuncRe   = regexp.MustCompile(`(?m)^[ \t]*((?:(?:public|private|protected|static|abstract|final)[ \t]+)*)function[ \t]+&?(\w+)[ \t]*\(`)
	phpPropRe   = regexp.MustCompile(`(?m)^[ \t]*((?:(?:public|private|protected|static|readonly)[ \t]+)+)(\??[\w\\|]+[ \t]+)?\$(\w+)[ \t]*(?:=[ \t]*([^;\n]+))?;`)
	phpConstRe  = regexp.MustCompile(`(?m)^[ \t]*(?:(?:public|private|protected|final)[ \t]+)*const[ \t]+(\w+)[ \t]*=[ \t]*([^;\n]+);`)
	phpReturnRe = regexp.MustCompile(`^[ \t]*:[ \t]*(\??[\w\\|]+)`)
)

func (p *PHPParser) Language() lang.Language { return lang.PHP }

func (p *PHPParser) CanHandle(filename string) bool { return canHandle(lang.PHP, filename) }

func (p *PHPParser) ParseFile(path string) (*ast.Program, error) { return parseFile(p, path) }

func (p *PHPParser) Parse(src string) (*ast.Program, error) {
	if err := checkDecodable(src); err != nil {
		return nil, err
	}

	text := stripCComments(src, stringQuotes)
	text = stripHashComments(text)
	text = stripDirectives(text, "<?php", "?>", "namespace ", "use ", "declare(", "require", "include")

	program := &ast.Program{Position: ast.Position{Line: 1, Column: 1}}
	consumed := newSpanSet()

	for _, m := range phpTypeRe.FindAllStringSubmatchIndex(text, -1) {
		line := lineOf(text, m[0])
		kind := text[m[4]:m[5]]
		name := text[m[6]:m[7]]

		body, end, ok := braceBlock(text, m[1], stringQuotes)
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
		p.parseTypeBody(decl, program, body, line, name, kind == "interface")
		program.AddChild(decl)
	}

	for _, m := range phpFuncRe.FindAllStringSubmatchIndex(text, -1) {
		if consumed.contains(m[0]) {
			continue
		}
		fn, end, ok := p.parseFunc(program, text, m, false)
		if !ok {
			continue
		}
		consumed.add(m[0], end)
		fn.Static = true
		program.AddChild(fn)
	}

	return program, nil
}

func (p *PHPParser) parseTypeBody(decl *ast.TypeDeclaration, program *ast.Program, body string, classLine int, className string, contract bool) {
	for _, m := range phpPropRe.FindAllStringSubmatchIndex(body, -1) {
		mods := body[m[2]:m[3]]
		name := body[m[6]:m[7]]
		dataType := "Object"
		if m[4] >= 0 {
			dataType = p.types.Canonicalize(strings.TrimSpace(body[m[4]:m[5]]))
		}
		field := &ast.FieldDeclaration{
			Position: ast.Position{Line: lineOf(body, m[0]) + classLine - 1, Column: 1},
			Name:     name,
			DataType: dataType,
			Public:   strings.Contains(mods, "public"),
			Mutable:  !strings.Contains(mods, "readonly"),
		}
		if m[8] >= 0 {
			field.Initializer = strings.TrimSpace(body[m[8]:m[9]])
		}
		decl.AddMember(field)
	}

	for _, m := range phpConstRe.FindAllStringSubmatchIndex(body, -1) {
		value := strings.TrimSpace(body[m[4]:m[5]])
		decl.AddMember(&ast.FieldDeclaration{
			Position:    ast.Position{Line: lineOf(body, m[0]) + classLine - 1, Column: 1},
			Name:        body[m[2]:m[3]],
			DataType:    "Object",
			Public:      true,
			Initializer: value,
		})
	}

	for _, m := range phpFuncRe.FindAllStringSubmatchIndex(body, -1) {
		fn, _, ok := p.parseFunc(program, body, m, true)
		if !ok {
			continue
		}
		fn.Position.Line += classLine - 1
		if contract {
			fn.Public = true
			fn.Static = false
			fn.RawBody = ""
		}
		if fn.Name == "__construct" {
			fn.Name = className
			fn.ReturnType = ast.VoidType
		}
		decl.AddMember(fn)
	}
}

func (p *PHPParser) parseFunc(program *ast.Program, text string, m []int, method bool) (*ast.CallableDeclaration, int, bool) {
	line := lineOf(text, m[0])
	mods := text[m[2]:m[3]]
	name := text[m[4]:m[5]]

	params, afterParams, ok := parenBlock(text, m[1]-1, stringQuotes)
	if !ok {
		program.Skip(line, firstLine(text[m[0]:m[1]]), "unterminated parameter list")
		return nil, 0, false
	}

	returnType := ast.VoidType
	if rm := phpReturnRe.FindStringSubmatch(text[afterParams:]); rm != nil {
		returnType = p.types.Canonicalize(rm[1])
	}

	end := afterParams
	rawBody := ""
	if blockBody, blockEnd, hasBody := trailingBrace(text, afterParams); hasBody {
		rawBody = strings.TrimSpace(blockBody)
		end = blockEnd
	}

	public := strings.Contains(mods, "public") || (!method && mods == "") ||
		(method && !strings.Contains(mods, "private") && !strings.Contains(mods, "protected"))
	return &ast.CallableDeclaration{
		Position:   ast.Position{Line: line, Column: 1},
		Name:       name,
		ReturnType: returnType,
		Params:     p.parseParams(params, line),
		Public:     public,
		Static:     strings.Contains(mods, "static"),
		RawBody:    rawBody,
	}, end, true
}

// parseParams handles "?Type $name = default" entries; promoted constructor
// property modifiers and by-reference markers are dropped.
func (p *PHPParser) parseParams(params string, line int) []*ast.Parameter {
	var out []*ast.Parameter
	for _, part := range splitTopLevel(params, ',', stringQuotes) {
		part = strings.TrimSpace(part)
		for _, mod := range []string{"public ", "private ", "protected ", "readonly "} {
			part = strings.TrimPrefix(part, mod)
		}
		part, _, _ = strings.Cut(part, "=")

		dollar := strings.IndexByte(part, '$')
		if dollar < 0 {
			continue
		}
		spelling := strings.TrimSpace(strings.Trim(part[:dollar], "&. \t"))
		name := strings.TrimSpace(part[dollar+1:])
		if !isIdentifier(name) {
			continue
		}
		dataType := "Object"
		if spelling != "" {
			dataType = p.types.Canonicalize(spelling)
		}
		out = append(out, &ast.Parameter{
			Position: ast.Position{Line: line, Column: 1},
			Name:     name,
			DataType: dataType,
		})
	}
	return out
}
