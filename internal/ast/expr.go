package ast

// Expression and statement node kinds. The structural parsers do not produce
// these; declaration bodies are carried as raw text and re-emitted as stubs.
// They exist so a future body translator can target the same tree without a
// schema change.

// Expr marks expression nodes.
type Expr interface {
	Node
	exprNode()
}

// Stmt marks statement nodes.
type Stmt interface {
	Node
	stmtNode()
}

// Literal is a literal constant (number, string, boolean, nil-equivalent).
type Literal struct {
	Position Position
	Value    string
	DataType string
}

// Identifier is a bare name reference.
type Identifier struct {
	Position Position
	Name     string
}

// Binary is an infix operation.
type Binary struct {
	Position Position
	Operator string
	Left     Expr
	Right    Expr
}

// Unary is a prefix operation.
type Unary struct {
	Position Position
	Operator string
	Operand  Expr
}

// Assignment assigns Value to Target.
type Assignment struct {
	Position Position
	Target   Expr
	Value    Expr
}

// Call invokes a callable with ordered arguments.
type Call struct {
	Position Position
	Callee   string
	Args     []Expr
}

// Return exits a callable, optionally with a value.
type Return struct {
	Position Position
	Value    Expr
}

// If is a conditional with an optional else branch.
type If struct {
	Position Position
	Cond     Expr
	Then     *Block
	Else     *Block
}

// While is a pre-test loop.
type While struct {
	Position Position
	Cond     Expr
	Body     *Block
}

// For is a counted or iterator loop.
type For struct {
	Position Position
	Init     Stmt
	Cond     Expr
	Post     Stmt
	Body     *Block
}

// Block is an ordered statement sequence.
type Block struct {
	Position Position
	Stmts    []Stmt
}

// Comment is a preserved source comment.
type Comment struct {
	Position Position
	Text     string
}

func (n *Literal) Pos() Position    { return n.Position }
func (n *Identifier) Pos() Position { return n.Position }
func (n *Binary) Pos() Position     { return n.Position }
func (n *Unary) Pos() Position      { return n.Position }
func (n *Assignment) Pos() Position { return n.Position }
func (n *Call) Pos() Position       { return n.Position }
func (n *Return) Pos() Position     { return n.Position }
func (n *If) Pos() Position         { return n.Position }
func (n *While) Pos() Position      { return n.Position }
func (n *For) Pos() Position        { return n.Position }
func (n *Block) Pos() Position      { return n.Position }
func (n *Comment) Pos() Position    { return n.Position }

func (n *Literal) Children() []Node    { return nil }
func (n *Identifier) Children() []Node { return nil }
func (n *Comment) Children() []Node    { return nil }

func (n *Binary) Children() []Node { return []Node{n.Left, n.Right} }
func (n *Unary) Children() []Node  { return []Node{n.Operand} }

func (n *Assignment) Children() []Node { return []Node{n.Target, n.Value} }

func (n *Call) Children() []Node {
	out := make([]Node, len(n.Args))
	for i, a := range n.Args {
		out[i] = a
	}
	return out
}

func (n *Return) Children() []Node {
	if n.Value == nil {
		return nil
	}
	return []Node{n.Value}
}

func (n *If) Children() []Node {
	out := []Node{n.Cond, n.Then}
	if n.Else != nil {
		out = append(out, n.Else)
	}
	return out
}

func (n *While) Children() []Node { return []Node{n.Cond, n.Body} }

func (n *For) Children() []Node {
	var out []Node
	if n.Init != nil {
		out = append(out, n.Init)
	}
	if n.Cond != nil {
		out = append(out, n.Cond)
	}
	if n.Post != nil {
		out = append(out, n.Post)
	}
	return append(out, n.Body)
}

func (n *Block) Children() []Node {
	out := make([]Node, len(n.Stmts))
	for i, s := range n.Stmts {
		out[i] = s
	}
	return out
}

func (n *Literal) exprNode()    {}
func (n *Identifier) exprNode() {}
func (n *Binary) exprNode()     {}
func (n *Unary) exprNode()      {}
func (n *Assignment) exprNode() {}
func (n *Call) exprNode()       {}

func (n *Return) stmtNode() {}
func (n *If) stmtNode()     {}
func (n *While) stmtNode()  {}
func (n *For) stmtNode()    {}
func (n *Block) stmtNode()  {}
