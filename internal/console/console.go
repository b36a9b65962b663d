// Package console runs the interactive question-and-answer protocol on a pair
// of streams.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ErrParse is returned when a numeric answer cannot be read.
var ErrParse = errors.New("could not parse answer")

const invalidYesNo = `ERROR: invalid response, must be "y" or "n"`

// Console asks questions on out and reads one answer per line from in.
type Console struct {
	in  *bufio.Reader
	out io.Writer
}

// New returns a console reading from r and writing prompts to w.
func New(r io.Reader, w io.Writer) *Console {
	return &Console{in: bufio.NewReader(r), out: w}
}

// Ask prints prompt on its own line and returns the trimmed answer. Input that
// ends before an answer is given returns io.ErrUnexpectedEOF.
func (c *Console) Ask(prompt string) (string, error) {
	if _, err := fmt.Fprintf(c.out, "\n%s\n", prompt); err != nil {
		return "", fmt.Errorf("writing prompt: %w", err)
	}
	return c.readLine()
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(line) == "" {
				return "", io.ErrUnexpectedEOF
			}
		} else {
			return "", fmt.Errorf("reading answer: %w", err)
		}
	}
	return strings.TrimSpace(line), nil
}

// AskFloat asks for a number. Anything that is not a finite number is an
// ErrParse.
func (c *Console) AskFloat(prompt string) (float64, error) {
	ans, err := c.Ask(prompt)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(ans, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a number", ErrParse, ans)
	}
	return v, nil
}

// Confirm asks a yes/no question and repeats it until the answer is "y" or "n".
func (c *Console) Confirm(prompt string) (bool, error) {
	for {
		ans, err := c.Ask(prompt + " (y/n)")
		if err != nil {
			return false, err
		}
		switch ans {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
		if _, err := fmt.Fprintln(c.out, invalidYesNo); err != nil {
			return false, fmt.Errorf("writing prompt: %w", err)
		}
	}
}
