package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// prompter reads answers line by line from one reader so buffered input is not lost between prompts.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// withDefault shows a prompt with default value in brackets.
// Returns the user's input, or the default if input is empty.
func (p *prompter) withDefault(label, defaultVal string) string {
	if defaultVal != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, defaultVal)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	input, _ := p.in.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return defaultVal
	}
	return input
}

// required prompts until a non-empty value is provided or input ends.
func (p *prompter) required(label string) (string, error) {
	for {
		fmt.Fprintf(p.out, "%s: ", label)
		input, err := p.in.ReadString('\n')
		input = strings.TrimSpace(input)
		if input != "" {
			return input, nil
		}
		if err != nil {
			return "", fmt.Errorf("%s: no input", strings.ToLower(label))
		}
		fmt.Fprintln(p.out, "  Value required")
	}
}
