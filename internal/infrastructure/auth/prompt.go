package auth

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// TerminalPasswordPrompt reads the superuser password during install. It
// hides input on a terminal and reads a plain line otherwise.
type TerminalPasswordPrompt struct {
	in  *os.File
	out io.Writer
}

func NewTerminalPasswordPrompt() *TerminalPasswordPrompt {
	return &TerminalPasswordPrompt{in: os.Stdin, out: os.Stderr}
}

func (p *TerminalPasswordPrompt) Prompt(username string) (string, error) {
	fmt.Fprintf(p.out, "Password for %s: ", username)

	fd := int(p.in.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(p.out)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(p.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
