package lang

import "fmt"

// TokenType identifies the category of a lexeme.
type TokenType int

const (
	EOF            TokenType = iota // sentinel: end of input
	INVALID_TOKEN                   // character that starts no token, or "!" not followed by "="
	UNEXPECTED_EOF                  // input ended in the middle of a token

	// Punctuation
	SEMICOLON // ;
	ASSIGN    // =

	// Relational operators
	EQUAL         // ==
	NOT_EQUAL     // !=
	LOWER         // <
	LOWER_EQUAL   // <=
	GREATER       // >
	GREATER_EQUAL // >=

	// Arithmetic operators
	ADD // +
	SUB // -
	MUL // *
	DIV // /
	MOD // %
	POW // ^

	// Keywords
	PROGRAM // "program"
	WHILE   // "while"
	DO      // "do"
	DONE    // "done"
	IF      // "if"
	THEN    // "then"
	ELSE    // "else"
	OUTPUT  // "output"
	TRUE    // "true"
	FALSE   // "false"
	READ    // "read"
	NOT     // "not"

	// Literals
	NUMBER // decimal integer literal
	VAR    // variable name
)

var tokenNames = [...]string{
	EOF:            "EOF",
	INVALID_TOKEN:  "INVALID_TOKEN",
	UNEXPECTED_EOF: "UNEXPECTED_EOF",
	SEMICOLON:      "SEMICOLON",
	ASSIGN:         "ASSIGN",
	EQUAL:          "EQUAL",
	NOT_EQUAL:      "NOT_EQUAL",
	LOWER:          "LOWER",
	LOWER_EQUAL:    "LOWER_EQUAL",
	GREATER:        "GREATER",
	GREATER_EQUAL:  "GREATER_EQUAL",
	ADD:            "ADD",
	SUB:            "SUB",
	MUL:            "MUL",
	DIV:            "DIV",
	MOD:            "MOD",
	POW:            "POW",
	PROGRAM:        "PROGRAM",
	WHILE:          "WHILE",
	DO:             "DO",
	DONE:           "DONE",
	IF:             "IF",
	THEN:           "THEN",
	ELSE:           "ELSE",
	OUTPUT:         "OUTPUT",
	TRUE:           "TRUE",
	FALSE:          "FALSE",
	READ:           "READ",
	NOT:            "NOT",
	NUMBER:         "NUMBER",
	VAR:            "VAR",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// IsFault reports whether tt marks a lexical fault rather than a real token.
func (tt TokenType) IsFault() bool {
	return tt == INVALID_TOKEN || tt == UNEXPECTED_EOF
}

// IsRelational reports whether tt is one of == != < <= > >=.
func (tt TokenType) IsRelational() bool {
	return tt >= EQUAL && tt <= GREATER_EQUAL
}

// IsArithmetic reports whether tt is one of + - * / % ^.
func (tt TokenType) IsArithmetic() bool {
	return tt >= ADD && tt <= POW
}

// Symbol returns the source spelling of an operator, or the display name
// for every other type.
func (tt TokenType) Symbol() string {
	if s, ok := operatorSymbols[tt]; ok {
		return s
	}
	return tt.String()
}

var operatorSymbols = map[TokenType]string{
	EQUAL:         "==",
	NOT_EQUAL:     "!=",
	LOWER:         "<",
	LOWER_EQUAL:   "<=",
	GREATER:       ">",
	GREATER_EQUAL: ">=",
	ADD:           "+",
	SUB:           "-",
	MUL:           "*",
	DIV:           "/",
	MOD:           "%",
	POW:           "^",
}

// keywords maps source text to its keyword TokenType.
var keywords = map[string]TokenType{
	"program": PROGRAM,
	"while":   WHILE,
	"do":      DO,
	"done":    DONE,
	"if":      IF,
	"then":    THEN,
	"else":    ELSE,
	"output":  OUTPUT,
	"true":    TRUE,
	"false":   FALSE,
	"read":    READ,
	"not":     NOT,
}

// Lexeme is a single classified fragment of source text.
type Lexeme struct {
	Type TokenType
	Text string // the exact source text that was matched
	Line int    // 1-based source line
}

func (l Lexeme) String() string {
	return fmt.Sprintf("%-14s %-10q line %d", l.Type, l.Text, l.Line)
}
