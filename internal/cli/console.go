package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// errQuit ends the session when the input stream is exhausted.
var errQuit = errors.New("input closed")

const clearSequence = "\033[H\033[2J"

type console struct {
	in    *bufio.Reader
	out   io.Writer
	clear bool
}

func newConsole(in io.Reader, out io.Writer, clear bool) *console {
	return &console{in: bufio.NewReader(in), out: out, clear: clear}
}

// prompt prints label and returns the line typed, without its line ending.
func (c *console) prompt(label string) (string, error) {
	fmt.Fprint(c.out, label)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", errQuit
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// pause waits for Enter.
func (c *console) pause(label string) error {
	_, err := c.prompt(label)
	return err
}

func (c *console) println(args ...any) {
	fmt.Fprintln(c.out, args...)
}

func (c *console) clearScreen() {
	if c.clear {
		fmt.Fprint(c.out, clearSequence)
	}
}
