package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirm prints a yes/no question and reads a single line of input.
// Only an answer whose first character is y or Y counts as a yes;
// anything else, including an empty line or closed input, declines.
func Confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s (y/N): ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && len(line) == 0 {
		return false
	}
	line = strings.TrimRight(line, "\r\n")
	return len(line) > 0 && (line[0] == 'y' || line[0] == 'Y')
}
