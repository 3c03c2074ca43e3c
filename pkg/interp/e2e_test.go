package interp

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestPrograms(t *testing.T) {
	tests := []struct {
		name  string
		src   string
		input string
		want  string
	}{
		{
			name: "sum",
			src:  "program x = 1 + 2 ; output x ; ",
			want: "3\n",
		},
		{
			name: "counting loop",
			src:  "program x = 0 ; while x < 3 do output x ; x = x + 1 ; done ;",
			want: "0\n1\n2\n",
		},
		{
			name: "if true",
			src:  "program if true then output 1 ; else output 2 ; done ;",
			want: "1\n",
		},
		{
			name: "if false",
			src:  "program if false then output 1 ; else output 2 ; done ;",
			want: "2\n",
		},
		{
			name: "if without else skips",
			src:  "program if false then output 1 ; done ; output 9 ;",
			want: "9\n",
		},
		{
			name: "loop that never runs",
			src:  "program while false do output 1 ; done ; output 0 ;",
			want: "0\n",
		},
		{
			name: "factorial",
			src: `program
# factorial of the number read from input
n = read ;
f = 1 ;
while n > 1 do
  f = f * n ;
  n = n - 1 ;
done ;
output f ;
`,
			input: "10\n",
			want:  "3628800\n",
		},
		{
			name: "fibonacci",
			src: `program
a = 0 ; b = 1 ; i = 0 ;
while i < 10 do
  output a ;
  t = a + b ;
  a = b ;
  b = t ;
  i = i + 1 ;
done ;
`,
			want: "0\n1\n1\n2\n3\n5\n8\n13\n21\n34\n",
		},
		{
			name: "gcd",
			src: `program
a = read ; b = read ;
while b != 0 do
  t = a % b ;
  a = b ;
  b = t ;
done ;
output a ;
`,
			input: "1071\n462\n",
			want:  "21\n",
		},
		{
			name: "nested loops",
			src: `program
i = 1 ;
while i <= 3 do
  j = 1 ;
  while j <= i do
    output i * j ;
    j = j + 1 ;
  done ;
  i = i + 1 ;
done ;
`,
			want: "1\n2\n4\n3\n6\n9\n",
		},
		{
			name: "parity with if-else inside a loop",
			src: `program
i = 0 ;
while i < 4 do
  r = i % 2 ;
  if r == 0 then output 0 ; else output 1 ; done ;
  i = i + 1 ;
done ;
`,
			want: "0\n1\n0\n1\n",
		},
		{
			name:  "echo until zero",
			src:   "program x = read ; while x != 0 do output x ; x = read ; done ;",
			input: "5\n-6\n7\n0\n99\n",
			want:  "5\n-6\n7\n",
		},
		{
			name: "powers of two",
			src:  "program e = 0 ; while e <= 4 do output 2 ^ e ; e = e + 1 ; done ;",
			want: "1\n2\n4\n8\n16\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := RunSource(tt.src, &out, strings.NewReader(tt.input)); err != nil {
				t.Fatalf("RunSource failed: %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("output:\n got %q\nwant %q", out.String(), tt.want)
			}
		})
	}
}

func TestFaultStopsOutput(t *testing.T) {
	var out bytes.Buffer
	err := RunSource("program output 1 ; output y ; output 2 ;", &out, strings.NewReader(""))
	if !errors.Is(err, ErrUndefinedVariable) {
		t.Fatalf("expected ErrUndefinedVariable, got %v", err)
	}
	if out.String() != "1\n" {
		t.Errorf("expected output to stop at the fault, got %q", out.String())
	}
}

func TestRunSourceParseError(t *testing.T) {
	var out bytes.Buffer
	err := RunSource("program output 1 ; x = 1 + 2 + 3 ;", &out, strings.NewReader(""))
	if err == nil || err.Error() != "1:: Lexema não esperado [+,ADD]" {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing may run after a parse error, got %q", out.String())
	}
}
