package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"tiny/pkg/interp"
	"tiny/pkg/lang"
	"tiny/pkg/source"
)

const (
	exitOK     = 0
	exitSyntax = 1 // lexical or parse failure
	exitFault  = 2 // file access or runtime fault
)

const usage = "Usage: tiny <filename>.tiny"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "tiny: ", 0)

	flags := flag.NewFlagSet("tiny", flag.ContinueOnError)
	flags.SetOutput(stderr)
	showTokens := flags.Bool("tokens", false, "print the lexeme stream to stderr before running")
	showAST := flags.Bool("ast", false, "print the parsed program to stderr before running")
	showEnv := flags.Bool("env", false, "print the final variable values to stderr after running")
	maxSteps := flags.Int("max-steps", 0, "abort after this many execution steps (0 = no limit)")
	if err := flags.Parse(args); err != nil {
		fmt.Fprintln(stdout, usage)
		return exitOK
	}

	if flags.NArg() != 1 {
		fmt.Fprintln(stdout, usage)
		return exitOK
	}

	file, err := source.Load(flags.Arg(0))
	if err != nil {
		logger.Print(err)
		return exitFault
	}

	lexemes, err := lang.Lex(file.Text())
	if *showTokens {
		for _, lex := range lexemes {
			fmt.Fprintln(stderr, lex)
		}
	}
	if err != nil {
		var lexErr *lang.LexError
		if !errors.As(err, &lexErr) {
			logger.Print(err)
			return exitFault
		}
		// the fault lexeme ends the stream; the parser rejects it below
		fmt.Fprintln(stdout, lexErr)
	}

	prog, err := lang.ParseLexemes(lexemes)
	if err != nil {
		fmt.Fprintln(stdout, err)
		return exitSyntax
	}
	if *showAST {
		fmt.Fprint(stderr, lang.Dump(prog))
	}

	it := interp.New(stdout, stdin)
	it.MaxSteps = *maxSteps
	env, err := it.Run(prog)
	if *showEnv {
		for _, name := range env.Names() {
			v, _ := env.Lookup(name)
			fmt.Fprintf(stderr, "%s = %d\n", name, v)
		}
	}
	if err != nil {
		logger.Print(err)
		return exitFault
	}
	return exitOK
}
