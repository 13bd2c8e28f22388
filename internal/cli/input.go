package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/authify/authify-cli/internal/otp"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = term.ReadPassword

// GetSimpleText prints a prompt to w and reads a single line of input from reader.
// The trailing newline is trimmed. If EOF occurs after some input was read,
// the partial line is returned.
//
// Example prompt format:
//
//	Prompt text
//	> _
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

// GetPassword prints the given prompt to w and reads a password from the
// user's terminal without echo. A newline is printed after the read to keep
// the UI tidy.
func GetPassword(w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprint(w, prompt+": "); err != nil {
		return "", err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// GetCode drives the segmented code entry. Each line of input is applied to
// the active cell: a multi-character line is treated as a paste, a single
// character goes into the focused cell, and "<" erases backwards. The cell
// row is re-rendered after every line. The function returns once all cells
// are filled, or an input error occurs.
func GetCode(reader *bufio.Reader, in *otp.Input, w io.Writer) error {
	fmt.Fprintln(w, "Enter the 6-digit code (one digit per line, or paste the whole code; '<' to erase)")

	for !in.Complete() {
		fmt.Fprintf(w, "%s\n> ", renderCells(in))

		line, err := reader.ReadString('\n')
		line = strings.TrimSpace(line)
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return err
		}

		switch {
		case line == "":
			continue
		case line == "<":
			in.CellBackspace(in.Focus())
		case len(line) > 1:
			in.Paste(line)
		default:
			in.CellInput(in.Focus(), line)
		}
	}

	fmt.Fprintf(w, "%s\n", renderCells(in))
	return nil
}

// renderCells draws the cell row, e.g. "[1][2][_][_][_][_]".
func renderCells(in *otp.Input) string {
	var b strings.Builder
	for _, c := range in.Cells() {
		if c == "" {
			c = "_"
		}
		b.WriteString("[" + c + "]")
	}
	return b.String()
}
