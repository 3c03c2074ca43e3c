// Package lang provides the lexer, the abstract syntax tree and the
// recursive-descent parser for the tiny teaching language.
//
// Pipeline: source text → Lex → Parse → *Program (evaluated by package interp)
package lang
