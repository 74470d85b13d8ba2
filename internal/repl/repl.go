// Package repl provides the interactive drawing shell. Statements are
// evaluated as they are entered against one persistent session, so
// variables and functions accumulate line by line.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"quill/internal/canvas"
	"quill/internal/evaluator"
	"quill/internal/object"
	"quill/internal/parser"
)

const (
	prompt     = "draw> "
	contPrompt = "  ... "
)

const helpText = `Commands end a line, or separate with ;
  forward(d) backward(d) left(a) right(a)   move and turn
  penup() pendown() goto(x, y) home()       pen control
  color("name") width(w) fill() nofill()    pen style
  circle(r) rectangle(w, h) line(...)       shapes
  polygon(x1, y1, ...) arc(w, h, angle)     shapes
  clear() reset() show()                    canvas control
  posx() posy() heading()                   queries

Language
  var x = 10          declare a variable
  x = x + 1           update it
  if .. { } else { }  while .. { }
  for i = 1 to 10 step 2 { }
  function name(a, b) { return a + b }

End a line with \ to continue it on the next line.
Meta commands: help, clear, reset, exit`

// Session drives a read-eval-print loop until the input ends or the
// user exits.
type Session struct {
	ev  *evaluator.Evaluator
	log *slog.Logger
}

func New(surface canvas.Surface, log *slog.Logger) *Session {
	return &Session{
		ev:  evaluator.New(surface),
		log: log.With("component", "repl"),
	}
}

func (s *Session) Start(ctx context.Context, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)

	var buffer strings.Builder
	for {
		if buffer.Len() == 0 {
			fmt.Fprint(out, prompt)
		} else {
			fmt.Fprint(out, contPrompt)
		}
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := scanner.Text()

		// a trailing backslash continues the statement on the next line
		if trimmed := strings.TrimRight(line, " \t"); strings.HasSuffix(trimmed, "\\") {
			buffer.WriteString(strings.TrimSuffix(trimmed, "\\"))
			buffer.WriteString(" ")
			continue
		}
		buffer.WriteString(line)
		input := strings.TrimSpace(buffer.String())
		buffer.Reset()

		if input == "" {
			continue
		}
		if s.meta(ctx, input, out) {
			if input == "exit" || input == "quit" || input == "q" {
				return nil
			}
			continue
		}

		s.evalLine(ctx, input, out)
	}
}

// meta handles shell commands that are not part of the language. It
// reports whether input was consumed.
func (s *Session) meta(ctx context.Context, input string, out io.Writer) bool {
	switch input {
	case "exit", "quit", "q":
		fmt.Fprintln(out, "bye")
		return true
	case "help":
		fmt.Fprintln(out, helpText)
		return true
	case "clear", "reset":
		// fall through to the language commands of the same name
		s.evalLine(ctx, input+"()", out)
		return true
	}
	return false
}

func (s *Session) evalLine(ctx context.Context, input string, out io.Writer) {
	program, err := parser.Parse(input)
	if err != nil {
		fmt.Fprintln(out, err)
		return
	}

	for _, stmt := range program.Statements {
		result, err := s.ev.EvalStatement(ctx, stmt)
		if err != nil {
			s.log.Debug("statement failed", "error", err)
			fmt.Fprintln(out, err)
			return
		}
		if _, isNil := result.(*object.Nil); !isNil && result != nil {
			fmt.Fprintln(out, result.Inspect())
		}
	}
}
