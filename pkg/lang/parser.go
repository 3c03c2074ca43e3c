package lang

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TokenSource supplies lexemes to the parser one at a time. *Lexer
// satisfies it; so does the slice source built by ParseLexemes.
type TokenSource interface {
	Next() Lexeme
}

// sliceSource replays lexemes that were already produced by Lex.
type sliceSource struct {
	lexemes []Lexeme
	pos     int
}

func (s *sliceSource) Next() Lexeme {
	if len(s.lexemes) == 0 {
		return Lexeme{Type: EOF, Line: 1}
	}
	if s.pos >= len(s.lexemes) {
		// the last lexeme is terminal (EOF or a fault)
		return s.lexemes[len(s.lexemes)-1]
	}
	lex := s.lexemes[s.pos]
	s.pos++
	return lex
}

// ParseError reports the lexeme the parser did not expect.
type ParseError struct {
	Lexeme Lexeme
}

func (e *ParseError) Error() string {
	if e.Lexeme.Type == EOF {
		return fmt.Sprintf("%d:: Fim de arquivo inesperado", e.Lexeme.Line)
	}
	return fmt.Sprintf("%d:: Lexema não esperado [%s,%s]", e.Lexeme.Line, e.Lexeme.Text, e.Lexeme.Type)
}

// Parser is a recursive-descent parser with exactly one lexeme of lookahead.
//
// Grammar:
//
//	program   = "program" cmdlist EOF
//	cmdlist   = cmd { cmd }
//	cmd       = (assign | output | if | while) ";"
//	assign    = VAR "=" intexpr
//	output    = "output" intexpr
//	if        = "if" boolexpr "then" cmdlist [ "else" cmdlist ] "done"
//	while     = "while" boolexpr "do" cmdlist "done"
//	intexpr   = [ "+" | "-" ] intterm [ ("+"|"-"|"*"|"/"|"%"|"^") intterm ]
//	intterm   = VAR | NUMBER | "read"
//	boolexpr  = "false" | "true" | "not" boolexpr
//	          | intterm ("=="|"!="|"<"|">"|"<="|">=") intterm
type Parser struct {
	src TokenSource
	cur Lexeme
}

// NewParser primes the lookahead with the first lexeme of src.
func NewParser(src TokenSource) *Parser {
	p := &Parser{src: src}
	p.cur = src.Next()
	return p
}

// peek returns the lookahead lexeme without consuming it.
func (p *Parser) peek() Lexeme {
	return p.cur
}

// advance consumes and returns the lookahead lexeme.
func (p *Parser) advance() Lexeme {
	lex := p.cur
	p.cur = p.src.Next()
	return lex
}

// expect consumes the lookahead if it has type tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType) (Lexeme, error) {
	if p.cur.Type != tt {
		return p.cur, p.unexpected(p.cur)
	}
	return p.advance(), nil
}

func (p *Parser) unexpected(lex Lexeme) error {
	return &ParseError{Lexeme: lex}
}

// ParseProgram parses a whole program. It returns either a complete tree or
// an error, never both.
func (p *Parser) ParseProgram() (*Program, error) {
	if _, err := p.expect(PROGRAM); err != nil {
		return nil, err
	}
	body, err := p.parseCmdList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EOF); err != nil {
		return nil, err
	}
	return &Program{Body: body}, nil
}

func startsCmd(tt TokenType) bool {
	return tt == VAR || tt == OUTPUT || tt == IF || tt == WHILE
}

// parseCmdList handles  cmd { cmd }
func (p *Parser) parseCmdList() (*Block, error) {
	block := &Block{}
	for {
		stmt, err := p.parseCmd()
		if err != nil {
			return nil, err
		}
		block.Stmts = append(block.Stmts, stmt)
		if !startsCmd(p.peek().Type) {
			return block, nil
		}
	}
}

// parseCmd handles  (assign | output | if | while) ";"
func (p *Parser) parseCmd() (Stmt, error) {
	var (
		stmt Stmt
		err  error
	)
	switch p.peek().Type {
	case VAR:
		stmt, err = p.parseAssign()
	case OUTPUT:
		stmt, err = p.parseOutput()
	case IF:
		stmt, err = p.parseIf()
	case WHILE:
		stmt, err = p.parseWhile()
	default:
		return nil, p.unexpected(p.peek())
	}
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return stmt, nil
}

// parseAssign handles  VAR "=" intexpr
func (p *Parser) parseAssign() (Stmt, error) {
	name, err := p.expect(VAR)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseIntExpr()
	if err != nil {
		return nil, err
	}
	return &Assign{Name: name.Text, Value: value}, nil
}

// parseOutput handles  "output" intexpr
func (p *Parser) parseOutput() (Stmt, error) {
	if _, err := p.expect(OUTPUT); err != nil {
		return nil, err
	}
	value, err := p.parseIntExpr()
	if err != nil {
		return nil, err
	}
	return &Output{Value: value}, nil
}

// parseIf handles  "if" boolexpr "then" cmdlist [ "else" cmdlist ] "done"
func (p *Parser) parseIf() (Stmt, error) {
	if _, err := p.expect(IF); err != nil {
		return nil, err
	}
	cond, err := p.parseBoolExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(THEN); err != nil {
		return nil, err
	}
	thenBlock, err := p.parseCmdList()
	if err != nil {
		return nil, err
	}

	elseBlock := &Block{}
	if p.peek().Type == ELSE {
		p.advance()
		elseBlock, err = p.parseCmdList()
		if err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(DONE); err != nil {
		return nil, err
	}
	return &If{Cond: cond, Then: thenBlock, Else: elseBlock}, nil
}

// parseWhile handles  "while" boolexpr "do" cmdlist "done"
func (p *Parser) parseWhile() (Stmt, error) {
	if _, err := p.expect(WHILE); err != nil {
		return nil, err
	}
	cond, err := p.parseBoolExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(DO); err != nil {
		return nil, err
	}
	body, err := p.parseCmdList()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(DONE); err != nil {
		return nil, err
	}
	return &While{Cond: cond, Body: body}, nil
}

// parseBoolExpr handles the boolexpr rule. "not" is folded into the literal
// it precedes; it is not accepted in front of a comparison.
func (p *Parser) parseBoolExpr() (BoolExpr, error) {
	switch p.peek().Type {
	case TRUE:
		p.advance()
		return &BoolConstant{Value: 1}, nil
	case FALSE:
		p.advance()
		return &BoolConstant{Value: 0}, nil
	case NOT:
		p.advance()
		switch p.peek().Type {
		case TRUE, FALSE, NOT:
		default:
			return nil, p.unexpected(p.peek())
		}
		inner, err := p.parseBoolExpr()
		if err != nil {
			return nil, err
		}
		lit, ok := inner.(*BoolConstant)
		if !ok {
			return nil, fmt.Errorf("not applied to %s", inner)
		}
		return &BoolConstant{Value: 1 - lit.Value}, nil
	}

	left, err := p.parseIntTerm()
	if err != nil {
		return nil, err
	}
	if !p.peek().Type.IsRelational() {
		return nil, p.unexpected(p.peek())
	}
	op := p.advance().Type
	right, err := p.parseIntTerm()
	if err != nil {
		return nil, err
	}
	return &Comparison{Op: op, Left: left, Right: right}, nil
}

// parseIntExpr handles  [ "+" | "-" ] intterm [ op intterm ]
// At most one binary operator is consumed.
func (p *Parser) parseIntExpr() (IntExpr, error) {
	negate := false
	switch p.peek().Type {
	case ADD:
		p.advance()
	case SUB:
		p.advance()
		negate = true
	}

	left, err := p.parseIntTerm()
	if err != nil {
		return nil, err
	}
	if negate {
		left = &NegatedTerm{Term: left}
	}

	if !p.peek().Type.IsArithmetic() {
		return left, nil
	}
	opLex := p.advance()
	right, err := p.parseIntTerm()
	if err != nil {
		return nil, err
	}
	return &BinaryArithmetic{Op: opLex.Type, Left: left, Right: right, Line: opLex.Line}, nil
}

// parseIntTerm handles  VAR | NUMBER | "read"
func (p *Parser) parseIntTerm() (Term, error) {
	lex := p.peek()
	switch lex.Type {
	case VAR:
		p.advance()
		return &Variable{Name: lex.Text, Line: lex.Line}, nil
	case NUMBER:
		v, err := strconv.ParseInt(lex.Text, 10, 32)
		if err != nil {
			return nil, p.unexpected(lex)
		}
		p.advance()
		return &IntConstant{Value: int32(v)}, nil
	case READ:
		p.advance()
		return &ReadInput{Line: lex.Line}, nil
	default:
		return nil, p.unexpected(lex)
	}
}

// Parse lexes and parses src in a single streaming pass.
func Parse(src string) (*Program, error) {
	return ParseReader(strings.NewReader(src))
}

// ParseReader is Parse over an arbitrary character stream.
func ParseReader(r io.Reader) (*Program, error) {
	l := NewLexer(r)
	prog, err := NewParser(l).ParseProgram()
	if rerr := l.Err(); rerr != nil {
		return nil, fmt.Errorf("reading source: %w", rerr)
	}
	return prog, err
}

// ParseLexemes parses lexemes previously returned by Lex.
func ParseLexemes(lexemes []Lexeme) (*Program, error) {
	return NewParser(&sliceSource{lexemes: lexemes}).ParseProgram()
}
