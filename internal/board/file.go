// Package board stores a set of trace primitives in a JSON board file and
// serves it as an editor: the file's selection is the editor selection and
// created segments are appended to the file.
package board

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"pcb-transition/internal/host"
	"pcb-transition/internal/trace"
)

// FileVersion is the current board file format version.
const FileVersion = 1

// File represents a board file (.pcbt.json).
type File struct {
	Version  int       `json:"version"`
	Name     string    `json:"name"`
	Created  time.Time `json:"created"`
	Modified time.Time `json:"modified"`

	Primitives []trace.RawPrimitive `json:"primitives"`

	// Selection lists the globalIndex of each selected primitive.
	Selection []int `json:"selection,omitempty"`
}

// New creates an empty board file.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:  FileVersion,
		Name:     name,
		Created:  now,
		Modified: now,
	}
}

// Load loads a board from a file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse board %s: %w", path, err)
	}
	if f.Version > FileVersion {
		return nil, fmt.Errorf("board %s: unsupported version %d", path, f.Version)
	}
	return &f, nil
}

// Save saves the board to a file.
func (f *File) Save(path string) error {
	f.Modified = time.Now()

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Add appends a primitive, assigning the next free globalIndex, and returns
// that index.
func (f *File) Add(p trace.RawPrimitive) int {
	p.GlobalIndex = f.nextIndex()
	f.Primitives = append(f.Primitives, p)
	return p.GlobalIndex
}

// Select replaces the selection.
func (f *File) Select(indices ...int) {
	f.Selection = append([]int(nil), indices...)
}

// Find returns the primitive with the given globalIndex.
func (f *File) Find(index int) (trace.RawPrimitive, bool) {
	for _, p := range f.Primitives {
		if p.GlobalIndex == index {
			return p, true
		}
	}
	return trace.RawPrimitive{}, false
}

func (f *File) nextIndex() int {
	next := 1
	for _, p := range f.Primitives {
		if p.GlobalIndex >= next {
			next = p.GlobalIndex + 1
		}
	}
	return next
}

// Editor serves a board file through the host selection and creation
// interfaces. Created arcs are stored the way the reference editor reports
// them, so they convert back with the same corrections.
type Editor struct {
	File        *File
	Corrections trace.Corrections

	// CreatedIndices lists the globalIndex of each primitive created
	// through the editor.
	CreatedIndices []int
}

var (
	_ host.Selection = (*Editor)(nil)
	_ host.Creator   = (*Editor)(nil)
)

// NewEditor wraps f.
func NewEditor(f *File, c trace.Corrections) *Editor {
	return &Editor{File: f, Corrections: c}
}

// SelectedPrimitives returns the selected primitives in selection order.
// Unknown indices are an error.
func (e *Editor) SelectedPrimitives(ctx context.Context) ([]trace.RawPrimitive, error) {
	out := make([]trace.RawPrimitive, 0, len(e.File.Selection))
	for _, idx := range e.File.Selection {
		p, ok := e.File.Find(idx)
		if !ok {
			return nil, fmt.Errorf("selected primitive %d not found", idx)
		}
		out = append(out, p)
	}
	return out, nil
}

// CreateLine appends a straight track.
func (e *Editor) CreateLine(ctx context.Context, spec host.LineSpec) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	p := trace.NewRaw(0, "TRACK", spec.Layer, spec.Width, spec.Start.X, spec.Start.Y, spec.End.X, spec.End.Y)
	p.Net = spec.Net
	p.Locked = spec.Locked
	e.CreatedIndices = append(e.CreatedIndices, e.File.Add(p))
	return true, nil
}

// CreateArc appends an arc track.
func (e *Editor) CreateArc(ctx context.Context, spec host.ArcSpec) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if spec.Sweep == 0 {
		return false, errors.New("arc with zero sweep")
	}
	width := e.Corrections.RawWidth(trace.KindArc, spec.Width)
	p := trace.NewRaw(0, "ARC", spec.Layer, width, spec.Start.X, spec.Start.Y, spec.End.X, spec.End.Y)
	p.Net = spec.Net
	p.Locked = spec.Locked
	p.ArcAngle = trace.Float(e.Corrections.RawArcAngle(spec.Sweep))
	e.CreatedIndices = append(e.CreatedIndices, e.File.Add(p))
	return true, nil
}

// Created returns the primitives created through the editor.
func (e *Editor) Created() []trace.RawPrimitive {
	out := make([]trace.RawPrimitive, 0, len(e.CreatedIndices))
	for _, idx := range e.CreatedIndices {
		if p, ok := e.File.Find(idx); ok {
			out = append(out, p)
		}
	}
	return out
}
