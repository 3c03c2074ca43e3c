package lang

import (
	"fmt"
	"strings"
)

//  Integer expression nodes

// IntExpr is implemented by every node that produces an integer.
type IntExpr interface {
	intExprNode()
	String() string
}

// Term is a leaf integer expression: a constant, a negated term, a read or
// a variable. BinaryArithmetic is not a Term, so an arithmetic expression
// can never nest another one.
type Term interface {
	IntExpr
	termNode()
}

// IntConstant is a decimal literal.
//
//	x = 10 ;
//	    ^^  IntConstant{Value: 10}
type IntConstant struct {
	Value int32
}

func (*IntConstant) intExprNode()     {}
func (*IntConstant) termNode()        {}
func (c *IntConstant) String() string { return fmt.Sprintf("%d", c.Value) }

// NegatedTerm is a term preceded by a unary minus. The negation applies to
// the term's value at evaluation time.
type NegatedTerm struct {
	Term Term
}

func (*NegatedTerm) intExprNode()     {}
func (*NegatedTerm) termNode()        {}
func (n *NegatedTerm) String() string { return fmt.Sprintf("(-%s)", n.Term) }

// ReadInput reads one integer line from the program's input.
type ReadInput struct {
	Line int
}

func (*ReadInput) intExprNode()   {}
func (*ReadInput) termNode()      {}
func (*ReadInput) String() string { return "read" }

// Variable is a read of a named variable.
//
//	output x ;
//	       ^  Variable{Name: "x"}
type Variable struct {
	Name string
	Line int
}

func (*Variable) intExprNode()     {}
func (*Variable) termNode()        {}
func (v *Variable) String() string { return v.Name }

// BinaryArithmetic is the single binary operation an intexpr may hold.
//
//	x + 1
//	^ ^ ^
//	| | |
//	| | Right
//	| Op
//	Left
type BinaryArithmetic struct {
	Op    TokenType // ADD, SUB, MUL, DIV, MOD or POW
	Left  Term
	Right Term
	Line  int
}

func (*BinaryArithmetic) intExprNode() {}
func (b *BinaryArithmetic) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op.Symbol(), b.Right)
}

//  Boolean expression nodes

// BoolExpr is implemented by every node that produces a truth value (0 or 1).
type BoolExpr interface {
	boolExprNode()
	String() string
}

// BoolConstant is true (1) or false (0), with any "not" already applied.
type BoolConstant struct {
	Value int32
}

func (*BoolConstant) boolExprNode() {}
func (b *BoolConstant) String() string {
	if b.Value != 0 {
		return "true"
	}
	return "false"
}

// Comparison compares two terms with a relational operator.
type Comparison struct {
	Op    TokenType // EQUAL, NOT_EQUAL, LOWER, LOWER_EQUAL, GREATER or GREATER_EQUAL
	Left  Term
	Right Term
}

func (*Comparison) boolExprNode() {}
func (c *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.Op.Symbol(), c.Right)
}

//  Statement nodes

// Stmt is implemented by every command node.
type Stmt interface {
	stmtNode()
	String() string
}

// Block is an ordered list of commands. An empty block does nothing.
type Block struct {
	Stmts []Stmt
}

func (*Block) stmtNode() {}
func (b *Block) String() string {
	return fmt.Sprintf("Block(len=%d)", len(b.Stmts))
}

// Assign represents  Name = Value ;
type Assign struct {
	Name  string
	Value IntExpr
}

func (*Assign) stmtNode() {}
func (a *Assign) String() string {
	return fmt.Sprintf("Assign(%s = %s)", a.Name, a.Value)
}

// If represents  if Cond then Then [else Else] done ;
// Else is an empty block when the source has no else branch.
type If struct {
	Cond BoolExpr
	Then *Block
	Else *Block
}

func (*If) stmtNode() {}
func (i *If) String() string {
	return fmt.Sprintf("If(%s then %s else %s)", i.Cond, i.Then, i.Else)
}

// While represents  while Cond do Body done ;
type While struct {
	Cond BoolExpr
	Body *Block
}

func (*While) stmtNode() {}
func (w *While) String() string {
	return fmt.Sprintf("While(%s do %s)", w.Cond, w.Body)
}

// Output represents  output Value ;
type Output struct {
	Value IntExpr
}

func (*Output) stmtNode() {}
func (o *Output) String() string {
	return fmt.Sprintf("Output(%s)", o.Value)
}

// Program is the root of a parsed source file.
type Program struct {
	Body *Block
}

func (p *Program) String() string {
	return fmt.Sprintf("Program(%s)", p.Body)
}

// Dump renders the whole tree, one node per line, children indented.
func Dump(p *Program) string {
	var sb strings.Builder
	sb.WriteString("program\n")
	dumpBlock(&sb, p.Body, 1)
	return sb.String()
}

func dumpBlock(sb *strings.Builder, b *Block, depth int) {
	if b == nil {
		return
	}
	for _, s := range b.Stmts {
		dumpStmt(sb, s, depth)
	}
}

func dumpStmt(sb *strings.Builder, s Stmt, depth int) {
	indent := strings.Repeat("  ", depth)
	switch s := s.(type) {
	case *Block:
		dumpBlock(sb, s, depth)
	case *Assign:
		fmt.Fprintf(sb, "%s%s = %s\n", indent, s.Name, s.Value)
	case *Output:
		fmt.Fprintf(sb, "%soutput %s\n", indent, s.Value)
	case *If:
		fmt.Fprintf(sb, "%sif %s then\n", indent, s.Cond)
		dumpBlock(sb, s.Then, depth+1)
		if s.Else != nil && len(s.Else.Stmts) > 0 {
			fmt.Fprintf(sb, "%selse\n", indent)
			dumpBlock(sb, s.Else, depth+1)
		}
		fmt.Fprintf(sb, "%sdone\n", indent)
	case *While:
		fmt.Fprintf(sb, "%swhile %s do\n", indent, s.Cond)
		dumpBlock(sb, s.Body, depth+1)
		fmt.Fprintf(sb, "%sdone\n", indent)
	default:
		fmt.Fprintf(sb, "%s%s\n", indent, s)
	}
}
