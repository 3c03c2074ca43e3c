package lang

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// scanState is a state of the tokenizer's finite-state machine.
type scanState int

const (
	stateStart   scanState = iota
	stateComment           // after '#', until end of line
	stateRelOp             // after '=', '<' or '>'
	stateBang              // after '!'
	stateIdent
	stateNumber
	stateAccept
	stateFault
)

// singles maps the characters that always form a complete token by themselves.
var singles = map[rune]TokenType{
	';': SEMICOLON,
	'+': ADD,
	'-': SUB,
	'*': MUL,
	'/': DIV,
	'%': MOD,
	'^': POW,
}

// relational maps the spellings reachable from stateRelOp.
var relational = map[string]TokenType{
	"=":  ASSIGN,
	"==": EQUAL,
	"<":  LOWER,
	"<=": LOWER_EQUAL,
	">":  GREATER,
	">=": GREATER_EQUAL,
}

// Lexer turns a character stream into lexemes, one per call to Next.
//
// The lexer stops at the first lexical fault: the fault lexeme (or EOF) is
// terminal, and every later call to Next returns it again.
type Lexer struct {
	r    *bufio.Reader
	line int // current 1-based source line

	// one-character pushback used for maximal munch
	pending    rune
	hasPending bool

	final *Lexeme // terminal lexeme once reached
	err   error   // first read error other than io.EOF
}

// NewLexer returns a lexer reading characters from r.
func NewLexer(r io.Reader) *Lexer {
	return &Lexer{r: bufio.NewReader(r), line: 1}
}

// Err returns the first read error, other than io.EOF, seen on the
// underlying reader. A read error ends the stream like end of input.
func (l *Lexer) Err() error {
	return l.err
}

// Line returns the current 1-based source line.
func (l *Lexer) Line() int {
	return l.line
}

// read returns the next character, taking the pushed-back one first.
func (l *Lexer) read() (rune, bool) {
	if l.hasPending {
		l.hasPending = false
		return l.pending, true
	}
	c, _, err := l.r.ReadRune()
	if err != nil {
		if err != io.EOF && l.err == nil {
			l.err = err
		}
		return 0, false
	}
	return c, true
}

// unread pushes c back so it starts the next token. Capacity is one.
func (l *Lexer) unread(c rune) {
	l.pending = c
	l.hasPending = true
}

// Next returns the next lexeme. After EOF or a fault it keeps returning
// that same lexeme.
func (l *Lexer) Next() Lexeme {
	if l.final != nil {
		return *l.final
	}
	lex := l.scan()
	if lex.Type == EOF || lex.Type.IsFault() {
		l.final = &lex
	}
	return lex
}

func (l *Lexer) scan() Lexeme {
	var (
		state = stateStart
		text  []rune
		tt    TokenType
		line  = l.line
	)

	for state != stateAccept && state != stateFault {
		c, ok := l.read()
		if !ok {
			return l.endOfInput(state, string(text), line)
		}

		switch state {
		case stateStart:
			line = l.line
			switch {
			case c == ' ' || c == '\t' || c == '\r':
			case c == '\n':
				l.line++
			case c == '#':
				state = stateComment
			case c == '=' || c == '<' || c == '>':
				text = append(text, c)
				state = stateRelOp
			case c == '!':
				text = append(text, c)
				state = stateBang
			case isIdentStart(c):
				text = append(text, c)
				state = stateIdent
			case isDigit(c):
				text = append(text, c)
				state = stateNumber
			default:
				text = append(text, c)
				if single, ok := singles[c]; ok {
					tt = single
					state = stateAccept
				} else {
					tt = INVALID_TOKEN
					state = stateFault
				}
			}

		case stateComment:
			if c == '\n' {
				l.line++
				state = stateStart
			}

		case stateRelOp:
			if c == '=' {
				text = append(text, c)
			} else {
				l.unread(c)
			}
			tt = relational[string(text)]
			state = stateAccept

		case stateBang:
			if c == '=' {
				text = append(text, c)
				tt = NOT_EQUAL
				state = stateAccept
			} else {
				l.unread(c)
				tt = INVALID_TOKEN
				state = stateFault
			}

		case stateIdent:
			if isIdentStart(c) || isDigit(c) {
				text = append(text, c)
				continue
			}
			l.unread(c)
			tt = identType(string(text))
			state = stateAccept

		case stateNumber:
			if isDigit(c) {
				text = append(text, c)
				continue
			}
			l.unread(c)
			tt = NUMBER
			state = stateAccept
		}
	}

	return Lexeme{Type: tt, Text: string(text), Line: line}
}

// endOfInput finishes the token in progress when the stream runs out.
func (l *Lexer) endOfInput(state scanState, text string, line int) Lexeme {
	switch state {
	case stateRelOp:
		return Lexeme{Type: relational[text], Text: text, Line: line}
	case stateBang:
		return Lexeme{Type: UNEXPECTED_EOF, Text: text, Line: line}
	case stateIdent:
		return Lexeme{Type: identType(text), Text: text, Line: line}
	case stateNumber:
		return Lexeme{Type: NUMBER, Text: text, Line: line}
	default:
		return Lexeme{Type: EOF, Text: "", Line: l.line}
	}
}

func identType(text string) TokenType {
	if kw, ok := keywords[text]; ok {
		return kw
	}
	return VAR
}

func isIdentStart(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

// LexError reports the lexical fault that stopped the tokenizer.
type LexError struct {
	Lexeme Lexeme
}

func (e *LexError) Error() string {
	if e.Lexeme.Type == UNEXPECTED_EOF {
		return fmt.Sprintf("Fim de arquivo inesperado na linha %d", e.Lexeme.Line)
	}
	return fmt.Sprintf("Token inválido na linha %d", e.Lexeme.Line)
}

// Lex tokenises src and returns all lexemes up to and including the
// terminal one. On a lexical fault the fault lexeme is the last element and
// the returned error is a *LexError.
func Lex(src string) ([]Lexeme, error) {
	return LexReader(strings.NewReader(src))
}

// LexReader is Lex over an arbitrary character stream.
func LexReader(r io.Reader) ([]Lexeme, error) {
	l := NewLexer(r)
	var lexemes []Lexeme
	for {
		lex := l.Next()
		lexemes = append(lexemes, lex)
		if lex.Type.IsFault() {
			return lexemes, &LexError{Lexeme: lex}
		}
		if lex.Type == EOF {
			if err := l.Err(); err != nil {
				return lexemes, fmt.Errorf("reading source: %w", err)
			}
			return lexemes, nil
		}
	}
}
