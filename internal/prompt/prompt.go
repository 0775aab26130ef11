// Package prompt reads passport applications field by field from an
// interactive terminal. Each field is asked again until it is valid.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	ierr "github.com/atinyakov/passportkeeper/internal/errors"
)

// Registry answers the uniqueness and clock questions asked while prompting.
type Registry interface {
	IsUniqueID(id, excludeID string) bool
	IsUniquePassportNumber(number, excludeID string) bool
	Now() time.Time
}

// Prompter reads answers line by line from in and writes questions to out.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// New creates a Prompter.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// Printf writes formatted text to the prompter's output.
func (p *Prompter) Printf(format string, args ...any) {
	fmt.Fprintf(p.out, format, args...)
}

// Println writes a line to the prompter's output.
func (p *Prompter) Println(args ...any) {
	fmt.Fprintln(p.out, args...)
}

// Line prints label and returns the next input line with surrounding
// whitespace removed. Lines of any length are accepted. It fails with
// ErrInputClosed at end of input or when the input cannot be read.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	switch {
	case err == nil:
	case ierr.Is(err, io.EOF) && line != "":
		// last line without a newline
	case ierr.Is(err, io.EOF):
		return "", ierr.Mark(ierr.New("end of input"), ierr.ErrInputClosed)
	default:
		return "", ierr.Mark(ierr.Wrap(err, "read input"), ierr.ErrInputClosed)
	}
	return strings.TrimSpace(line), nil
}

// Field asks label until check accepts the answer. check returns an empty
// string for a valid answer, or the message to print before asking again.
func (p *Prompter) Field(label string, check func(string) string) (string, error) {
	for {
		answer, err := p.Line(label)
		if err != nil {
			return "", err
		}
		msg := check(answer)
		if msg == "" {
			return answer, nil
		}
		p.Println(msg)
	}
}

// Choice prints label and returns the number typed, or -1 if the answer is
// not a number.
func (p *Prompter) Choice(label string) (int, error) {
	answer, err := p.Line(label)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(answer)
	if err != nil {
		return -1, nil
	}
	return n, nil
}

func rejected(msg string) error {
	return ierr.WithHint(ierr.Mark(ierr.New(strings.ToLower(strings.TrimSuffix(msg, "."))), ierr.ErrRejected), msg)
}
