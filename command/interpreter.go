package command

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ErrorLine is written in place of the result of a line that fails to parse or evaluate.
const ErrorLine = "ERROR"

// Interpreter runs a batch of commands, one per line.
type Interpreter struct {
	// OnError, if set, is called with the line number and error of every failed line.
	OnError func(lineno int, line string, err error)
}

// Run reads commands from r and writes one result per non-blank line to w.
// A failed line produces ErrorLine and does not stop the batch: the returned
// error only reports failures to read r or write w.
func (it Interpreter) Run(r io.Reader, w io.Writer) error {

	scanner := bufio.NewScanner(r)
	bw := bufio.NewWriter(w)

	var lineno int
	for scanner.Scan() {
		lineno++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		result, err := Execute(line)
		if err != nil {
			if it.OnError != nil {
				it.OnError(lineno, line, err)
			}
			result = ErrorLine
		}

		if _, err = fmt.Fprintln(bw, result); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return err
	}

	return bw.Flush()
}
