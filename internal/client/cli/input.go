package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
func GetSimpleText(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// GetPassword reads a password from the terminal without echo.
// The caller should wipe the returned slice once it is sent.
func GetPassword(w io.Writer) ([]byte, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	return pw, nil
}

// GetAmount keeps prompting until the input parses as a number. An empty
// answer is allowed only when optional is set and yields ok == false.
func GetAmount(reader *bufio.Reader, prompt string, w io.Writer, optional bool) (value float64, ok bool, err error) {
	for {
		s, err := GetSimpleText(reader, prompt, w)
		if err != nil {
			return 0, false, err
		}
		if s == "" && optional {
			return 0, false, nil
		}
		v, perr := strconv.ParseFloat(s, 64)
		if perr == nil {
			return v, true, nil
		}
		fmt.Fprintf(w, "%q is not a number\n", s)
	}
}
