// Package prompt implements the end-of-run acknowledgment prompt.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// Wait prints msg and blocks until the user presses Enter, but only when in
// is an interactive terminal. Piped or CI invocations return immediately, so
// the pause stays a terminal convenience rather than a contract.
func Wait(in *os.File, out io.Writer, msg string) {
	if in == nil || !term.IsTerminal(int(in.Fd())) {
		return
	}
	_, _ = fmt.Fprint(out, msg)
	_, _ = bufio.NewReader(in).ReadString('\n')
}

// Pause waits on stdin/stdout.
func Pause(msg string) {
	Wait(os.Stdin, os.Stdout, msg)
}
