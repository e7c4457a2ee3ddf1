package console

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"pcb-transition/internal/host"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var prompt = host.Prompt{
	Title:   "Segment Count",
	Label:   "Enter the number of steps (1-50):",
	Details: "Gap: 1.270mm",
	Default: "6",
	Min:     1,
	Max:     50,
}

func TestPromptInt(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   string
		wantOK bool
	}{
		{"value", "12\n", "12", true},
		{"trimmed", "  7  \n", "7", true},
		{"blank accepts default", "\n", "6", true},
		{"value without newline", "9", "9", true},
		{"eof cancels", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			c := New(strings.NewReader(tt.input), &out)

			got, ok, err := c.PromptInt(context.Background(), prompt)
			require.NoError(t, err)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, out.String(), "Segment Count")
			assert.Contains(t, out.String(), "Gap: 1.270mm")
			assert.Contains(t, out.String(), "(1-50): [6]: ")
		})
	}
}

func TestPromptIntContextCancelled(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(pr, io.Discard)
	_, ok, err := c.PromptInt(ctx, prompt)
	assert.False(t, ok)
	assert.NoError(t, err)

	// The read left behind by the cancelled prompt answers the next one.
	go func() { _, _ = pw.Write([]byte("5\n")) }()
	got, ok, err := c.PromptInt(context.Background(), prompt)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "5", got)
}

func TestShowMessage(t *testing.T) {
	var out bytes.Buffer
	c := New(strings.NewReader(""), &out)
	c.ShowMessage("Created 6 transition segments.", "Done")

	s := out.String()
	assert.Contains(t, s, "Done")
	assert.Contains(t, s, "Created 6 transition segments.")
	assert.Contains(t, s, "╭")
}

func TestFixed(t *testing.T) {
	var out bytes.Buffer
	f := Fixed{Console: New(strings.NewReader(""), &out), Value: "4"}

	got, ok, err := f.PromptInt(context.Background(), prompt)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "4", got)
	assert.Contains(t, out.String(), "[6]: 4")

	got, ok, err = Fixed{Value: "3"}.PromptInt(context.Background(), prompt)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "3", got)
}
