package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeProgram stores src in a temporary .tiny file and returns its path.
func writeProgram(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.tiny")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRun(t *testing.T) {
	tests := []struct {
		name       string
		src        string
		input      string
		wantCode   int
		wantStdout string
		wantStderr string // substring
	}{
		{
			name:       "Sum",
			src:        "program x = 1 + 2 ; output x ; ",
			wantCode:   exitOK,
			wantStdout: "3\n",
		},
		{
			name:       "Read echo",
			src:        "program x = read ; output x * 2 ;",
			input:      "21\n",
			wantCode:   exitOK,
			wantStdout: "42\n",
		},
		{
			name:       "Chained arithmetic",
			src:        "program x = 1 + 2 + 3 ;",
			wantCode:   exitSyntax,
			wantStdout: "1:: Lexema não esperado [+,ADD]\n",
		},
		{
			name:       "Unexpected end of file",
			src:        "program x = 1",
			wantCode:   exitSyntax,
			wantStdout: "1:: Fim de arquivo inesperado\n",
		},
		{
			name:       "Invalid character",
			src:        "program x = 1 @ 2 ;",
			wantCode:   exitSyntax,
			wantStdout: "Token inválido na linha 1\n1:: Lexema não esperado [@,INVALID_TOKEN]\n",
		},
		{
			name:       "Bang at end of file",
			src:        "program\nx = 1 !",
			wantCode:   exitSyntax,
			wantStdout: "Fim de arquivo inesperado na linha 2\n2:: Lexema não esperado [!,UNEXPECTED_EOF]\n",
		},
		{
			name:       "Undefined variable",
			src:        "program output 1 ; output y ;",
			wantCode:   exitFault,
			wantStdout: "1\n",
			wantStderr: "tiny: line 1: undefined variable: y",
		},
		{
			name:       "Division by zero",
			src:        "program x = 0 ; output 5 / x ;",
			wantCode:   exitFault,
			wantStderr: "division by zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeProgram(t, tt.src)
			var stdout, stderr bytes.Buffer
			code := run([]string{path}, strings.NewReader(tt.input), &stdout, &stderr)
			if code != tt.wantCode {
				t.Errorf("exit code: got %d, want %d (stderr %q)", code, tt.wantCode, stderr.String())
			}
			if stdout.String() != tt.wantStdout {
				t.Errorf("stdout:\n got %q\nwant %q", stdout.String(), tt.wantStdout)
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr %q does not contain %q", stderr.String(), tt.wantStderr)
			}
		})
	}
}

func TestRunUsage(t *testing.T) {
	cases := map[string][]string{
		"NoArgs":      nil,
		"TooManyArgs": {"a.tiny", "b.tiny"},
		"UnknownFlag": {"-bogus", "a.tiny"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			code := run(args, strings.NewReader(""), &stdout, &stderr)
			if code != exitOK {
				t.Errorf("exit code: got %d, want %d", code, exitOK)
			}
			if stdout.String() != usage+"\n" {
				t.Errorf("stdout: got %q", stdout.String())
			}
		})
	}
}

func TestRunMissingFile(t *testing.T) {
	var stdout, stderr bytes.Buffer
	missing := filepath.Join(t.TempDir(), "nope.tiny")
	code := run([]string{missing}, strings.NewReader(""), &stdout, &stderr)
	if code != exitFault {
		t.Errorf("exit code: got %d, want %d", code, exitFault)
	}
	if !strings.Contains(stderr.String(), "tiny: ") || !strings.Contains(stderr.String(), "file does not exist") {
		t.Errorf("stderr: got %q", stderr.String())
	}
	if stdout.Len() != 0 {
		t.Errorf("stdout: expected nothing, got %q", stdout.String())
	}
}

func TestRunFlags(t *testing.T) {
	path := writeProgram(t, "program x = 2 ; y = x ^ 3 ; output y ;")

	t.Run("Tokens", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		if code := run([]string{"-tokens", path}, strings.NewReader(""), &stdout, &stderr); code != exitOK {
			t.Fatalf("exit code %d, stderr %q", code, stderr.String())
		}
		lines := strings.Split(strings.TrimSpace(stderr.String()), "\n")
		// program x = 2 ; y = x ^ 3 ; output y ; EOF
		if len(lines) != 15 {
			t.Errorf("expected 15 lexeme lines, got %d:\n%s", len(lines), stderr.String())
		}
		if !strings.HasPrefix(lines[0], "PROGRAM") || !strings.HasPrefix(lines[len(lines)-1], "EOF") {
			t.Errorf("unexpected dump:\n%s", stderr.String())
		}
		if stdout.String() != "8\n" {
			t.Errorf("stdout: got %q", stdout.String())
		}
	})

	t.Run("AST", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		if code := run([]string{"-ast", path}, strings.NewReader(""), &stdout, &stderr); code != exitOK {
			t.Fatalf("exit code %d, stderr %q", code, stderr.String())
		}
		want := "program\n  x = 2\n  y = (x ^ 3)\n  output y\n"
		if stderr.String() != want {
			t.Errorf("ast:\n got %q\nwant %q", stderr.String(), want)
		}
	})

	t.Run("Env", func(t *testing.T) {
		var stdout, stderr bytes.Buffer
		if code := run([]string{"-env", path}, strings.NewReader(""), &stdout, &stderr); code != exitOK {
			t.Fatalf("exit code %d, stderr %q", code, stderr.String())
		}
		if stderr.String() != "x = 2\ny = 8\n" {
			t.Errorf("env: got %q", stderr.String())
		}
	})

	t.Run("EnvAfterFault", func(t *testing.T) {
		faulty := writeProgram(t, "program x = 1 ; y = x / 0 ;")
		var stdout, stderr bytes.Buffer
		code := run([]string{"-env", faulty}, strings.NewReader(""), &stdout, &stderr)
		if code != exitFault {
			t.Errorf("exit code: got %d, want %d", code, exitFault)
		}
		want := "x = 1\ntiny: line 1: division by zero: 1 / 0\n"
		if stderr.String() != want {
			t.Errorf("stderr:\n got %q\nwant %q", stderr.String(), want)
		}
	})

	t.Run("MaxSteps", func(t *testing.T) {
		loop := writeProgram(t, "program while true do x = 1 ; done ;")
		var stdout, stderr bytes.Buffer
		code := run([]string{"-max-steps", "50", loop}, strings.NewReader(""), &stdout, &stderr)
		if code != exitFault {
			t.Errorf("exit code: got %d, want %d", code, exitFault)
		}
		if !strings.Contains(stderr.String(), "step limit") {
			t.Errorf("stderr: got %q", stderr.String())
		}
	})
}
