// Package prompt reads interactive answers from the terminal, including
// masked password entry.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// ErrInterrupted is returned when Ctrl-C is pressed during masked input.
// The terminal is in raw mode then, so no SIGINT is delivered.
var ErrInterrupted = errors.New("input interrupted")

const (
	keyCtrlC     = 3
	keyCtrlD     = 4
	keyBackspace = 8
	keyDelete    = 127
)

type Prompter struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:     in,
		out:    out,
		reader: bufio.NewReader(in),
	}
}

// Line prints label and returns the next line of input without its line
// ending. Everything else, including surrounding spaces, is kept.
func (p *Prompter) Line(label string) (string, error) {
	fmt.Fprint(p.out, label)

	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Password prints label and reads a secret, writing mask once per character
// typed. When the input is a terminal it is switched to raw mode for the
// duration of the read so nothing is echoed by the tty itself.
func (p *Prompter) Password(label string, mask rune) (string, error) {
	fmt.Fprint(p.out, label)

	newline := "\n"
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state, err := term.MakeRaw(int(f.Fd()))
		if err != nil {
			return "", fmt.Errorf("failed to switch terminal to raw mode: %w", err)
		}
		defer term.Restore(int(f.Fd()), state)
		newline = "\r\n"
	}

	secret, err := readMasked(p.reader, p.out, mask)
	fmt.Fprint(p.out, newline)
	return secret, err
}

func readMasked(r io.ByteReader, w io.Writer, mask rune) (string, error) {
	var buf []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && len(buf) > 0 {
				return string(buf), nil
			}
			return "", err
		}

		switch b {
		case '\r', '\n':
			return string(buf), nil
		case keyCtrlC:
			return "", ErrInterrupted
		case keyCtrlD:
			if len(buf) == 0 {
				return "", io.EOF
			}
		case keyBackspace, keyDelete:
			if len(buf) == 0 {
				continue
			}
			_, size := utf8.DecodeLastRune(buf)
			buf = buf[:len(buf)-size]
			fmt.Fprint(w, "\b \b")
		default:
			if b < ' ' {
				continue
			}
			buf = append(buf, b)
			// continuation bytes of a multi-byte rune get no extra mask
			if !utf8.RuneStart(b) {
				continue
			}
			fmt.Fprint(w, string(mask))
		}
	}
}
