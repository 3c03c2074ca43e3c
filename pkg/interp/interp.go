// Package interp executes programs parsed by package lang by walking their
// syntax tree.
package interp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"tiny/pkg/lang"
)

// Interpreter walks a *lang.Program. It is single-threaded; one Interpreter
// must not run two programs at the same time.
type Interpreter struct {
	// Output receives one decimal line per output command.
	// If nil, os.Stdout is used.
	Output io.Writer

	// Input supplies one line per evaluated read expression.
	// If nil, os.Stdin is used.
	Input io.Reader

	// MaxSteps bounds the number of executed commands plus completed loop
	// iterations. 0 means no limit.
	MaxSteps int

	in    *bufio.Reader
	steps int
}

// New returns an Interpreter writing to out and reading from in.
func New(out io.Writer, in io.Reader) *Interpreter {
	return &Interpreter{Output: out, Input: in}
}

func (it *Interpreter) outputSink() io.Writer {
	if it.Output != nil {
		return it.Output
	}
	return os.Stdout
}

func (it *Interpreter) inputSource() io.Reader {
	if it.Input != nil {
		return it.Input
	}
	return os.Stdin
}

// Run executes prog against a fresh Environment and returns that
// Environment. Output written before a fault is kept; nothing is written
// after it.
func (it *Interpreter) Run(prog *lang.Program) (*Environment, error) {
	env := NewEnvironment()
	it.steps = 0
	it.in = bufio.NewReader(it.inputSource())
	if prog == nil {
		return env, &RuntimeError{Err: ErrMalformedProgram, Detail: "nil program"}
	}
	return env, it.execBlock(prog.Body, env)
}

// step charges one unit against MaxSteps.
func (it *Interpreter) step() error {
	if it.MaxSteps <= 0 {
		return nil
	}
	it.steps++
	if it.steps > it.MaxSteps {
		return &RuntimeError{Err: ErrStepLimit, Detail: strconv.Itoa(it.MaxSteps)}
	}
	return nil
}

func (it *Interpreter) execBlock(b *lang.Block, env *Environment) error {
	if b == nil {
		return nil
	}
	for _, s := range b.Stmts {
		if err := it.exec(s, env); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interpreter) exec(s lang.Stmt, env *Environment) error {
	if err := it.step(); err != nil {
		return err
	}

	switch s := s.(type) {
	case *lang.Block:
		return it.execBlock(s, env)

	case *lang.Assign:
		v, err := it.evalInt(s.Value, env)
		if err != nil {
			return err
		}
		env.Set(s.Name, v)
		return nil

	case *lang.If:
		cond, err := it.evalBool(s.Cond, env)
		if err != nil {
			return err
		}
		if cond != 0 {
			return it.execBlock(s.Then, env)
		}
		return it.execBlock(s.Else, env)

	case *lang.While:
		for {
			cond, err := it.evalBool(s.Cond, env)
			if err != nil {
				return err
			}
			if cond == 0 {
				return nil
			}
			if err := it.execBlock(s.Body, env); err != nil {
				return err
			}
			if err := it.step(); err != nil {
				return err
			}
		}

	case *lang.Output:
		v, err := it.evalInt(s.Value, env)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(it.outputSink(), v); err != nil {
			return &RuntimeError{Err: ErrOutputFailed, Detail: err.Error()}
		}
		return nil

	default:
		return &RuntimeError{Err: ErrMalformedProgram, Detail: fmt.Sprintf("unexpected command %T", s)}
	}
}

// evalInt evaluates e left to right.
func (it *Interpreter) evalInt(e lang.IntExpr, env *Environment) (int32, error) {
	switch e := e.(type) {
	case *lang.IntConstant:
		return e.Value, nil

	case *lang.NegatedTerm:
		v, err := it.evalInt(e.Term, env)
		if err != nil {
			return 0, err
		}
		return -v, nil

	case *lang.ReadInput:
		return it.readInt(e.Line)

	case *lang.Variable:
		v, ok := env.Lookup(e.Name)
		if !ok {
			return 0, &RuntimeError{Err: ErrUndefinedVariable, Line: e.Line, Detail: e.Name}
		}
		return v, nil

	case *lang.BinaryArithmetic:
		left, err := it.evalInt(e.Left, env)
		if err != nil {
			return 0, err
		}
		right, err := it.evalInt(e.Right, env)
		if err != nil {
			return 0, err
		}
		v, err := arith(e.Op, left, right)
		if err != nil {
			var rerr *RuntimeError
			if errors.As(err, &rerr) && rerr.Line == 0 {
				rerr.Line = e.Line
			}
			return 0, err
		}
		return v, nil

	default:
		return 0, &RuntimeError{Err: ErrMalformedProgram, Detail: fmt.Sprintf("unexpected integer expression %T", e)}
	}
}

// evalBool evaluates b to 1 or 0. Both operands of a comparison are always
// evaluated.
func (it *Interpreter) evalBool(b lang.BoolExpr, env *Environment) (int32, error) {
	switch b := b.(type) {
	case *lang.BoolConstant:
		return b.Value, nil

	case *lang.Comparison:
		left, err := it.evalInt(b.Left, env)
		if err != nil {
			return 0, err
		}
		right, err := it.evalInt(b.Right, env)
		if err != nil {
			return 0, err
		}
		return compare(b.Op, left, right)

	default:
		return 0, &RuntimeError{Err: ErrMalformedProgram, Detail: fmt.Sprintf("unexpected boolean expression %T", b)}
	}
}

// readInt consumes one line of input and parses it as a base-10 int32.
func (it *Interpreter) readInt(line int) (int32, error) {
	text, err := it.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return 0, &RuntimeError{Err: ErrInputFailed, Line: line, Detail: err.Error()}
		}
		if text == "" {
			return 0, &RuntimeError{Err: ErrBadInput, Line: line, Detail: "end of input"}
		}
	}
	text = strings.TrimSpace(text)
	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return 0, &RuntimeError{Err: ErrBadInput, Line: line, Detail: strconv.Quote(text)}
	}
	return int32(v), nil
}

// arith applies a binary arithmetic operator with 32-bit wrap-around.
func arith(op lang.TokenType, left, right int32) (int32, error) {
	switch op {
	case lang.ADD:
		return left + right, nil
	case lang.SUB:
		return left - right, nil
	case lang.MUL:
		return left * right, nil
	case lang.DIV:
		if right == 0 {
			return 0, &RuntimeError{Err: ErrDivisionByZero, Detail: fmt.Sprintf("%d / 0", left)}
		}
		return left / right, nil
	case lang.MOD:
		if right == 0 {
			return 0, &RuntimeError{Err: ErrDivisionByZero, Detail: fmt.Sprintf("%d %% 0", left)}
		}
		return left % right, nil
	case lang.POW:
		if right < 0 {
			return 0, &RuntimeError{Err: ErrNegativeExponent, Detail: fmt.Sprintf("%d ^ %d", left, right)}
		}
		return pow(left, right), nil
	default:
		return 0, &RuntimeError{Err: ErrMalformedProgram, Detail: fmt.Sprintf("unknown arithmetic operator %s", op)}
	}
}

// pow computes base^exp by repeated squaring; exp must be non-negative.
func pow(base, exp int32) int32 {
	result := int32(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func compare(op lang.TokenType, left, right int32) (int32, error) {
	var ok bool
	switch op {
	case lang.EQUAL:
		ok = left == right
	case lang.NOT_EQUAL:
		ok = left != right
	case lang.LOWER:
		ok = left < right
	case lang.LOWER_EQUAL:
		ok = left <= right
	case lang.GREATER:
		ok = left > right
	case lang.GREATER_EQUAL:
		ok = left >= right
	default:
		return 0, &RuntimeError{Err: ErrMalformedProgram, Detail: fmt.Sprintf("unknown relational operator %s", op)}
	}
	if ok {
		return 1, nil
	}
	return 0, nil
}

// RunSource parses src and runs it, writing to out and reading from in.
func RunSource(src string, out io.Writer, in io.Reader) error {
	prog, err := lang.Parse(src)
	if err != nil {
		return err
	}
	_, err = New(out, in).Run(prog)
	return err
}
