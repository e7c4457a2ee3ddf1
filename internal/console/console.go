// Package console implements the editor dialog and message services on a
// terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"pcb-transition/internal/host"

	"github.com/charmbracelet/lipgloss"
)

// Theme holds the color scheme for terminal output.
type Theme struct {
	Title   lipgloss.Color
	Success lipgloss.Color
	Error   lipgloss.Color
	Hint    lipgloss.Color
	Border  lipgloss.Color
}

// defaultTheme provides default colors.
var defaultTheme = Theme{
	Title:   lipgloss.Color("#5FAFD7"), // light blue
	Success: lipgloss.Color("#00D787"), // green
	Error:   lipgloss.Color("#FF005F"), // red
	Hint:    lipgloss.Color("#6C6C6C"), // dim gray
	Border:  lipgloss.Color("#3A3A3A"), // dark gray
}

// errorTitles are message titles rendered in the error color.
var errorTitles = map[string]bool{
	"Error":          true,
	"Failed":         true,
	"Input Error":    true,
	"Layer Mismatch": true,
	"Warning":        true,
}

// Console reads answers from in and writes prompts and messages to out.
// It serves one prompt at a time.
type Console struct {
	in    *bufio.Reader
	out   io.Writer
	r     *lipgloss.Renderer
	theme Theme

	// pending is the line read still outstanding from a prompt whose
	// context ended. Only one goroutine reads in at any time.
	pending chan readResult
}

var (
	_ host.Dialog    = (*Console)(nil)
	_ host.Messenger = (*Console)(nil)
)

// New creates a console on the given streams.
func New(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:    bufio.NewReader(in),
		out:   out,
		r:     lipgloss.NewRenderer(out),
		theme: defaultTheme,
	}
}

// ShowMessage prints a titled box.
func (c *Console) ShowMessage(content, title string) {
	color := c.theme.Success
	if errorTitles[title] {
		color = c.theme.Error
	}
	head := c.r.NewStyle().Foreground(color).Bold(true).Render(title)
	box := c.r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c.theme.Border).
		Padding(0, 1).
		Render(head + "\n" + content)
	fmt.Fprintln(c.out, box)
}

type readResult struct {
	line string
	err  error
}

// PromptInt prints the prompt and reads one line. A blank line accepts the
// default; end of input or an ended context cancels. After a cancel the
// outstanding read answers the next prompt.
func (c *Console) PromptInt(ctx context.Context, p host.Prompt) (string, bool, error) {
	c.printPrompt(p)

	if c.pending == nil {
		ch := make(chan readResult, 1)
		go func() {
			line, err := c.in.ReadString('\n')
			ch <- readResult{line: line, err: err}
		}()
		c.pending = ch
	}

	var res readResult
	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return "", false, nil
	case res = <-c.pending:
		c.pending = nil
	}

	line := strings.TrimSpace(res.line)
	if res.err != nil {
		if !errors.Is(res.err, io.EOF) {
			return "", false, res.err
		}
		if line == "" {
			fmt.Fprintln(c.out)
			return "", false, nil
		}
	}
	if line == "" {
		return p.Default, true, nil
	}
	return line, true, nil
}

func (c *Console) printPrompt(p host.Prompt) {
	fmt.Fprintln(c.out, c.r.NewStyle().Foreground(c.theme.Title).Bold(true).Render(p.Title))
	if p.Details != "" {
		fmt.Fprintln(c.out, c.r.NewStyle().Foreground(c.theme.Hint).Render(p.Details))
	}
	fmt.Fprintf(c.out, "%s [%s]: ", p.Label, p.Default)
}

// Fixed answers every prompt with Value, echoing the prompt to the console.
// It replaces interactive input for scripted runs.
type Fixed struct {
	Console *Console
	Value   string
}

// PromptInt returns f.Value.
func (f Fixed) PromptInt(ctx context.Context, p host.Prompt) (string, bool, error) {
	if f.Console != nil {
		f.Console.printPrompt(p)
		fmt.Fprintln(f.Console.out, f.Value)
	}
	return f.Value, true, nil
}
