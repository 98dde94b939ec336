package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

const (
	FirstLabel  = "Enter password: "
	SecondLabel = "Re-enter password: "
)

// ErrNoInput is returned when the input ends before an entry is read.
var ErrNoInput = errors.New("no input")

type fder interface {
	Fd() uintptr
}

// Prompter reads passwords, without echo when attached to a terminal and
// line by line otherwise.
type Prompter struct {
	out    io.Writer
	fd     int
	isTerm bool
	reader *bufio.Reader
}

// New returns a prompter reading from in and writing labels to out.
func New(in io.Reader, out io.Writer) *Prompter {
	p := &Prompter{out: out, reader: bufio.NewReader(in)}
	if f, ok := in.(fder); ok && term.IsTerminal(int(f.Fd())) {
		p.fd = int(f.Fd())
		p.isTerm = true
	}
	return p
}

// ReadPassword prints label and reads one entry.
func (p *Prompter) ReadPassword(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if p.isTerm {
		b, err := term.ReadPassword(p.fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := p.reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	if errors.Is(err, io.EOF) && line == "" {
		return "", ErrNoInput
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ReadPair reads the password and its confirmation.
func (p *Prompter) ReadPair() (string, string, error) {
	pw1, err := p.ReadPassword(FirstLabel)
	if err != nil {
		return "", "", err
	}
	pw2, err := p.ReadPassword(SecondLabel)
	if err != nil {
		return "", "", err
	}
	return pw1, pw2, nil
}
