package terminal

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"
)

// LineReader yields one line of input per call, without the line break.
type LineReader interface {
	ReadLine() (string, error)
}

// Console pairs a line reader with an output writer. It is the only way
// the menu and story read input.
type Console struct {
	in  LineReader
	out io.Writer
}

// NewConsole creates a console over a plain reader and writer (stdin and
// stdout, or test buffers).
func NewConsole(r io.Reader, w io.Writer) *Console {
	return &Console{
		in:  &bufferedLineReader{r: bufio.NewReader(r)},
		out: w,
	}
}

// NewTerminalConsole creates a console over a raw-mode channel such as an
// SSH session. Line editing, echo and CRLF translation are handled by
// x/term's terminal.
func NewTerminalConsole(rw io.ReadWriter) *Console {
	t := term.NewTerminal(rw, "")
	return &Console{in: t, out: t}
}

// Writer returns the console's output writer.
func (c *Console) Writer() io.Writer {
	return c.out
}

// Println writes the operands followed by a newline.
func (c *Console) Println(a ...any) {
	fmt.Fprintln(c.out, a...)
}

// Prompt writes prompt without a trailing newline and blocks for one line.
func (c *Console) Prompt(prompt string) (string, error) {
	if prompt != "" {
		io.WriteString(c.out, prompt)
	}
	return c.in.ReadLine()
}

// WaitForEnter blocks until a line is entered; the content is ignored.
func (c *Console) WaitForEnter(prompt string) error {
	_, err := c.Prompt(prompt)
	return err
}

type bufferedLineReader struct {
	r *bufio.Reader
}

// ReadLine returns the next line. A final unterminated line is returned
// before io.EOF.
func (b *bufferedLineReader) ReadLine() (string, error) {
	line, err := b.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
