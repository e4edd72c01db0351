// Package ast defines the language-agnostic declaration tree shared by all
// structural parsers and emitters. Trees are built once per file, are
// immutable after the parse call returns, and are never shared across files.
package ast

// VoidType is the sentinel return type for callables that return nothing.
const VoidType = "void"

// Position locates a node in the original source text. Columns are
// best-effort; structural parsers recover lines from match offsets.
type Position struct {
	Line   int
	Column int
}

// Node is implemented by every tree node. Child order always equals the
// order of first appearance in the source text.
type Node interface {
	Pos() Position
	Children() []Node
}

// SkippedSpan records a declaration-like region a parser matched but could
// not turn into a node. Parsers skip and continue rather than failing the
// file; callers decide whether to surface these.
type SkippedSpan struct {
	Line   int
	Text   string
	Reason string
}

// Program is the root of a parsed file. Its children are the top-level type
// and callable declarations in source order.
type Program struct {
	Position Position
	Nodes    []Node
	Skipped  []SkippedSpan
}

func (p *Program) Pos() Position    { return p.Position }
func (p *Program) Children() []Node { return p.Nodes }

// AddChild appends a top-level declaration, preserving source order.
func (p *Program) AddChild(n Node) { p.Nodes = append(p.Nodes, n) }

// Skip records a declaration that could not be parsed.
func (p *Program) Skip(line int, text, reason string) {
	p.Skipped = append(p.Skipped, SkippedSpan{Line: line, Text: text, Reason: reason})
}

// Types returns the top-level type declarations in source order.
func (p *Program) Types() []*TypeDeclaration {
	var out []*TypeDeclaration
	for _, n := range p.Nodes {
		if t, ok := n.(*TypeDeclaration); ok {
			out = append(out, t)
		}
	}
	return out
}

// Callables returns the top-level (free) callables in source order.
func (p *Program) Callables() []*CallableDeclaration {
	var out []*CallableDeclaration
	for _, n := range p.Nodes {
		if c, ok := n.(*CallableDeclaration); ok {
			out = append(out, c)
		}
	}
	return out
}

// TypeDeclaration is a class/struct-like declaration. Its children are the
// field and callable declarations it owns, one nesting level deep.
type TypeDeclaration struct {
	Position Position
	Name     string
	Public   bool
	Members  []Node
}

func (t *TypeDeclaration) Pos() Position    { return t.Position }
func (t *TypeDeclaration) Children() []Node { return t.Members }

// AddMember appends a field or callable owned by this type.
func (t *TypeDeclaration) AddMember(n Node) { t.Members = append(t.Members, n) }

// Fields returns the field members in declaration order.
func (t *TypeDeclaration) Fields() []*FieldDeclaration {
	var out []*FieldDeclaration
	for _, n := range t.Members {
		if f, ok := n.(*FieldDeclaration); ok {
			out = append(out, f)
		}
	}
	return out
}

// Callables returns the callable members in declaration order.
func (t *TypeDeclaration) Callables() []*CallableDeclaration {
	var out []*CallableDeclaration
	for _, n := range t.Members {
		if c, ok := n.(*CallableDeclaration); ok {
			out = append(out, c)
		}
	}
	return out
}

// CallableDeclaration is a function, method, or constructor. ReturnType is
// canonical; VoidType marks no return value. Params are in call-signature
// order. RawBody carries best-effort captured body text for the emitter's
// accessor synthesis; it is not a parsed statement tree.
type CallableDeclaration struct {
	Position   Position
	Name       string
	ReturnType string
	Params     []*Parameter
	Public     bool
	Static     bool
	RawBody    string
}

func (c *CallableDeclaration) Pos() Position { return c.Position }

func (c *CallableDeclaration) Children() []Node {
	out := make([]Node, len(c.Params))
	for i, p := range c.Params {
		out[i] = p
	}
	return out
}

// FieldDeclaration is a named, typed member of a TypeDeclaration or a
// top-level variable. DataType is canonical. Initializer holds the literal
// initializer text when the source provided one.
type FieldDeclaration struct {
	Position    Position
	Name        string
	DataType    string
	Public      bool
	Mutable     bool
	Initializer string
}

func (f *FieldDeclaration) Pos() Position    { return f.Position }
func (f *FieldDeclaration) Children() []Node { return nil }

// Parameter is a single callable parameter.
type Parameter struct {
	Position Position
	Name     string
	DataType string
	Mutable  bool
}

func (p *Parameter) Pos() Position    { return p.Position }
func (p *Parameter) Children() []Node { return nil }

// Walk visits n and its children depth-first in declaration order. The
// visitor returns false to stop descending into a node's children.
func Walk(n Node, visit func(Node) bool) {
	if n == nil {
		return
	}
	if !visit(n) {
		return
	}
	for _, c := range n.Children() {
		Walk(c, visit)
	}
}
