package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// confirm asks a yes/no question and reads one line from r. Anything but an
// explicit yes declines, including EOF.
func confirm(w io.Writer, r io.Reader, question string) bool {
	fmt.Fprintf(w, "%s [s/N] ", question)

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		fmt.Fprintln(w)
		return false
	}

	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "s", "sim", "y", "yes":
		return true
	default:
		return false
	}
}
