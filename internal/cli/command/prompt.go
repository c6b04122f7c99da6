package command

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// isTerminal reports whether v is an *os.File attached to a terminal.
func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// promptPassword asks for a password on s.Err. Terminal input is read
// without echo; anything else is read as one line.
func promptPassword(s Streams, label string) (string, error) {
	fmt.Fprint(s.Err, label)

	if f, ok := s.In.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		pw, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(s.Err)
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return string(pw), nil
	}

	line, err := readLine(s.In)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return line, nil
}

// confirm asks a yes/no question. Anything but y or yes is a no.
func confirm(s Streams, question string) (bool, error) {
	fmt.Fprintf(s.Err, "%s [y/N]: ", question)
	line, err := readLine(s.In)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// readLine reads one line without its terminator. Input that ends without
// a newline is still returned.
func readLine(r io.Reader) (string, error) {
	if r == nil {
		return "", io.EOF
	}
	br, ok := r.(*bufio.Reader)
	if !ok {
		br = bufio.NewReader(r)
	}
	line, err := br.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
