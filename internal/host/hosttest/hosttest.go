// Package hosttest provides an in-memory editor implementing every host
// service, for tests.
package hosttest

import (
	"context"
	"errors"
	"fmt"

	"pcb-transition/internal/host"
	"pcb-transition/internal/trace"
)

// ErrInjected is returned by creations listed in Editor.FailAt.
var ErrInjected = errors.New("injected creation failure")

// Message is one message shown through the editor.
type Message struct {
	Title   string
	Content string
}

// Answer is one scripted dialog response.
type Answer struct {
	Value  string
	Cancel bool
	Err    error
}

// Editor records calls and serves scripted responses.
type Editor struct {
	Selected    []trace.RawPrimitive
	SelectErr   error
	FailAt      map[int]bool // creation call index (0-based) that errors
	DeclineAt   map[int]bool // creation call index that returns false
	PanicOnCall bool
	Answers     []Answer

	Lines    []host.LineSpec
	Arcs     []host.ArcSpec
	Prompts  []host.Prompt
	Messages []Message

	calls int
}

// New returns an editor with the given selection.
func New(selected ...trace.RawPrimitive) *Editor {
	return &Editor{Selected: selected}
}

// Services returns the editor wired into every service slot.
func (e *Editor) Services() host.Services {
	return host.Services{Selection: e, Creator: e, Dialog: e, Messenger: e}
}

// Answer queues a dialog response.
func (e *Editor) Answer(value string) *Editor {
	e.Answers = append(e.Answers, Answer{Value: value})
	return e
}

// Fail queues a dialog that returns err.
func (e *Editor) Fail(err error) *Editor {
	e.Answers = append(e.Answers, Answer{Err: err})
	return e
}

// Cancel queues a cancelled dialog.
func (e *Editor) Cancel() *Editor {
	e.Answers = append(e.Answers, Answer{Cancel: true})
	return e
}

func (e *Editor) SelectedPrimitives(ctx context.Context) ([]trace.RawPrimitive, error) {
	if e.SelectErr != nil {
		return nil, e.SelectErr
	}
	return e.Selected, nil
}

func (e *Editor) outcome() (bool, error) {
	i := e.calls
	e.calls++
	if e.PanicOnCall {
		panic(fmt.Sprintf("editor crashed on call %d", i))
	}
	if e.FailAt[i] {
		return false, fmt.Errorf("call %d: %w", i, ErrInjected)
	}
	if e.DeclineAt[i] {
		return false, nil
	}
	return true, nil
}

func (e *Editor) CreateLine(ctx context.Context, spec host.LineSpec) (bool, error) {
	ok, err := e.outcome()
	if ok {
		e.Lines = append(e.Lines, spec)
	}
	return ok, err
}

func (e *Editor) CreateArc(ctx context.Context, spec host.ArcSpec) (bool, error) {
	ok, err := e.outcome()
	if ok {
		e.Arcs = append(e.Arcs, spec)
	}
	return ok, err
}

func (e *Editor) PromptInt(ctx context.Context, p host.Prompt) (string, bool, error) {
	e.Prompts = append(e.Prompts, p)
	if len(e.Answers) == 0 {
		return p.Default, true, nil
	}
	a := e.Answers[0]
	e.Answers = e.Answers[1:]
	if a.Err != nil {
		return "", false, a.Err
	}
	if a.Cancel {
		return "", false, nil
	}
	return a.Value, true, nil
}

func (e *Editor) ShowMessage(content, title string) {
	e.Messages = append(e.Messages, Message{Title: title, Content: content})
}

// Calls returns the number of creation calls made.
func (e *Editor) Calls() int {
	return e.calls
}
