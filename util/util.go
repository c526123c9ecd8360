// Package util holds small helpers shared by the commands and screens.
package util

import (
	"fmt"
	"os"
	"strings"

	"github.com/nimbus-cli/nimbus/filesystem"
	"golang.org/x/exp/constraints"
	"golang.org/x/term"
)

// Quantify formats count with the singular or plural noun.
func Quantify(count int, singular, plural string) string {
	noun := plural
	if count == 1 {
		noun = singular
	}
	return fmt.Sprintf("%d %s", count, noun)
}

func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// TerminalSize reports the columns and rows of the terminal on stdout.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// PrintErasable prints msg without a newline and returns a func that blanks it out.
func PrintErasable(msg string) (eraser func()) {
	_, _ = fmt.Fprintf(os.Stdout, "\r%s", msg)
	return func() {
		_, _ = fmt.Fprintf(os.Stdout, "\r%s\r", strings.Repeat(" ", len(msg)))
	}
}

// Ignore calls f and drops its error, for deferred Close calls.
func Ignore(f func() error) {
	_ = f()
}

// Max returns the largest of items, or the zero value when there are none.
func Max[T constraints.Ordered](items ...T) (max T) {
	for i, item := range items {
		if i == 0 || item > max {
			max = item
		}
	}
	return
}

// Delete removes the file or directory tree at path.
func Delete(path string) error {
	fs := filesystem.API()
	stat, err := fs.Stat(path)
	if err != nil {
		return err
	}

	if stat.IsDir() {
		return fs.RemoveAll(path)
	}
	return fs.Remove(path)
}
