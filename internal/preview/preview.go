// Package preview rasterizes traces and generated transition segments into
// an image for review outside the editor.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"strings"

	"pcb-transition/internal/trace"
	"pcb-transition/internal/transition"
	"pcb-transition/pkg/colorutil"
	"pcb-transition/pkg/geometry"

	"golang.org/x/image/tiff"
	"golang.org/x/image/vector"
)

// Options configures rendering.
type Options struct {
	Size       int     // length of the longer image side in pixels
	Margin     float64 // margin around the content, in mils
	Background color.RGBA
	Trace      color.RGBA
	// Created segments are shaded from StepFrom (first) to StepTo (last).
	StepFrom color.RGBA
	StepTo   color.RGBA
	// ArcSteps is the number of chords used per arc.
	ArcSteps int
}

// DefaultOptions returns sensible defaults for a preview.
func DefaultOptions() Options {
	return Options{
		Size:       1024,
		Margin:     20,
		Background: colorutil.Board,
		Trace:      colorutil.Copper,
		StepFrom:   colorutil.Cyan,
		StepTo:     colorutil.Magenta,
		ArcSteps:   24,
	}
}

// Scene is what gets drawn: existing primitives under generated segments.
type Scene struct {
	Primitives []trace.Primitive
	Segments   []transition.Segment
}

// Bounds returns the area covered by the scene, including stroke widths.
func (s Scene) Bounds() (geometry.Rect, bool) {
	var r geometry.Rect
	have := false
	add := func(b geometry.Rect) {
		if !have {
			r, have = b, true
			return
		}
		r = r.Union(b)
	}
	for _, p := range s.Primitives {
		add(p.Bounds())
	}
	for _, seg := range s.Segments {
		pts := segmentPath(seg, 8)
		add(geometry.BoundingBox(pts).Inset(seg.Width / 2))
	}
	return r, have
}

// Render draws the scene. It fails for an empty scene.
func Render(s Scene, opts Options) (*image.RGBA, error) {
	bounds, ok := s.Bounds()
	if !ok {
		return nil, fmt.Errorf("nothing to render")
	}
	if opts.Size <= 0 {
		return nil, fmt.Errorf("invalid preview size %d", opts.Size)
	}
	if opts.ArcSteps < 1 {
		opts.ArcSteps = 1
	}
	bounds = bounds.Inset(opts.Margin)

	// The longer side fits Size, so a thin board cannot blow up the image.
	scale := float64(opts.Size) / math.Max(math.Max(bounds.Width, bounds.Height), 1)
	width := pixels(bounds.Width*scale, opts.Size)
	height := pixels(bounds.Height*scale, opts.Size)
	// Board Y grows downward, as on the editor canvas.
	toPixel := geometry.Translation(-bounds.X*scale, -bounds.Y*scale).Compose(geometry.Scale(scale, scale))

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(opts.Background), image.Point{}, draw.Src)

	c := canvas{img: img, tr: toPixel, r: vector.NewRasterizer(width, height)}
	for _, p := range s.Primitives {
		c.stroke(primitivePath(p, opts.ArcSteps), p.Width, opts.Trace)
	}
	n := len(s.Segments)
	for i, seg := range s.Segments {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		// Steps meet end to end, so they get no round caps.
		c.strokeBare(segmentPath(seg, opts.ArcSteps), seg.Width, colorutil.Lerp(opts.StepFrom, opts.StepTo, t))
	}
	return img, nil
}

// pixels rounds a scaled length up to whole pixels within [1, limit].
func pixels(v float64, limit int) int {
	n := int(math.Ceil(v))
	return max(1, min(n, limit))
}

// Save writes img as PNG or TIFF, chosen by the file extension.
func Save(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		err = png.Encode(f, img)
	case ".tif", ".tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = fmt.Errorf("unsupported preview format %q (use .png or .tiff)", filepath.Ext(path))
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return fmt.Errorf("save preview %s: %w", path, err)
	}
	return nil
}

// primitivePath returns the centerline of p. Arcs are flattened into chords.
func primitivePath(p trace.Primitive, steps int) []geometry.Point2D {
	if p.Kind == trace.KindArc && p.ArcAngle != 0 {
		if arc, err := geometry.ArcThroughChord(p.Start, p.End, p.ArcAngle); err == nil {
			return flatten(arc, steps)
		}
	}
	return []geometry.Point2D{p.Start, p.End}
}

// segmentPath returns the centerline of a generated segment.
func segmentPath(s transition.Segment, steps int) []geometry.Point2D {
	if s.Kind == transition.SegmentArc && s.Radius > 0 {
		arc := geometry.Arc{Center: s.Center, Radius: s.Radius, StartAngle: s.StartAngle, Sweep: s.Sweep * math.Pi / 180}
		return flatten(arc, steps)
	}
	return []geometry.Point2D{s.Start, s.End}
}

func flatten(arc geometry.Arc, steps int) []geometry.Point2D {
	pts := make([]geometry.Point2D, steps+1)
	for i := range pts {
		pts[i] = arc.PointAt(float64(i) / float64(steps))
	}
	return pts
}

type canvas struct {
	img *image.RGBA
	tr  geometry.AffineTransform
	r   *vector.Rasterizer
}

// stroke draws a polyline with round caps and joins.
func (c *canvas) stroke(path []geometry.Point2D, width float64, col color.RGBA) {
	c.strokeBare(path, width, col)
	for _, p := range path {
		c.fill(disc(p, width/2), col)
	}
}

// strokeBare draws a polyline as one quad per edge.
func (c *canvas) strokeBare(path []geometry.Point2D, width float64, col color.RGBA) {
	for i := 0; i+1 < len(path); i++ {
		if path[i].Distance(path[i+1]) == 0 {
			continue
		}
		q := geometry.SegmentQuad(path[i], path[i+1], width)
		c.fill(q[:], col)
	}
}

func (c *canvas) fill(poly []geometry.Point2D, col color.RGBA) {
	if len(poly) < 3 {
		return
	}
	b := c.img.Bounds()
	c.r.Reset(b.Dx(), b.Dy())
	c.r.DrawOp = draw.Over

	first := c.tr.Apply(poly[0])
	c.r.MoveTo(float32(first.X), float32(first.Y))
	for _, p := range poly[1:] {
		q := c.tr.Apply(p)
		c.r.LineTo(float32(q.X), float32(q.Y))
	}
	c.r.ClosePath()
	c.r.Draw(c.img, b, image.NewUniform(col), image.Point{})
}

// disc approximates a filled circle.
func disc(center geometry.Point2D, radius float64) []geometry.Point2D {
	const sides = 16
	pts := make([]geometry.Point2D, sides)
	for i := range pts {
		a := 2 * math.Pi * float64(i) / sides
		pts[i] = geometry.NewPoint2D(center.X+radius*math.Cos(a), center.Y+radius*math.Sin(a))
	}
	return pts
}
