// Package prompt reads answers to interactive questions from a console.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Prompter writes questions to out and reads one line per answer from in.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a prompter reading from in and writing to out.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Ask prints label and returns the next input line without its line ending.
// It returns io.EOF once the input is exhausted so that re-prompt loops end.
func (p *Prompter) Ask(label string) (string, error) {
	fmt.Fprint(p.out, label)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", err
		}
	}

	return strings.TrimRight(line, "\r\n"), nil
}

// AskUntil repeats the question until accept returns true for the answer.
func (p *Prompter) AskUntil(label string, accept func(string) bool) (string, error) {
	for {
		answer, err := p.Ask(label)
		if err != nil {
			return "", err
		}
		if accept(answer) {
			return answer, nil
		}
	}
}

// Println writes a line to the prompter's output.
func (p *Prompter) Println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

// Printf writes formatted text to the prompter's output.
func (p *Prompter) Printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Writer returns the output the prompter writes to.
func (p *Prompter) Writer() io.Writer {
	return p.out
}
