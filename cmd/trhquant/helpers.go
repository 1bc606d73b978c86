package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

const (
	ansiGreen = "\x1b[32m"
	ansiRed   = "\x1b[31m"
	ansiReset = "\x1b[0m"
)

// statusText colorizes a status word when the writer is an interactive
// terminal.
func statusText(w io.Writer, text string, failed bool) string {
	if !shouldColorize(w) {
		return text
	}
	if failed {
		return ansiRed + text + ansiReset
	}
	return ansiGreen + text + ansiReset
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
