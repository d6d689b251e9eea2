// Package mock provides a recording implementation of [render.Graphics] for
// unit tests.
//
// Text is measured with a fixed-pitch model: every rune is CharWidth pixels
// wide (half the font size when CharWidth is zero) and a line is as tall as
// the font size, unless Heights overrides the height for a specific string.
// Every draw call is appended to Ops in call order.
package mock

import (
	"sync"
	"unicode/utf8"

	"github.com/krfshft/PoeHud-Sunbeam/pkg/geom"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/render"
)

// OpKind identifies a recorded draw call.
type OpKind string

const (
	OpText  OpKind = "text"
	OpBox   OpKind = "box"
	OpFrame OpKind = "frame"
	OpImage OpKind = "image"
)

// Op is a single recorded draw call. Only the fields relevant to Kind are set.
type Op struct {
	Kind    OpKind
	Text    string
	Size    int
	Pos     geom.Vector2
	Align   render.Align
	Rect    geom.Rect
	UV      geom.Rect
	Texture string
	Width   int
	Color   geom.Color
}

// Graphics records draw calls. The zero value is ready to use.
type Graphics struct {
	mu sync.Mutex

	// CharWidth is the width of every rune. Zero means size/2.
	CharWidth float32

	// Heights overrides the measured height of specific strings.
	Heights map[string]float32

	// Ops holds every draw call in order.
	Ops []Op
}

var _ render.Graphics = (*Graphics)(nil)

// MeasureText implements [render.Measurer].
func (g *Graphics) MeasureText(text string, size int) geom.Size {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.measure(text, size)
}

func (g *Graphics) measure(text string, size int) geom.Size {
	cw := g.CharWidth
	if cw == 0 {
		cw = float32(size) / 2
	}
	h := float32(size)
	if override, ok := g.Heights[text]; ok {
		h = override
	}
	return geom.Size{Width: cw * float32(utf8.RuneCountInString(text)), Height: h}
}

// DrawText implements [render.Graphics].
func (g *Graphics) DrawText(text string, size int, pos geom.Vector2, color geom.Color, align render.Align) geom.Size {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Ops = append(g.Ops, Op{Kind: OpText, Text: text, Size: size, Pos: pos, Color: color, Align: align})
	return g.measure(text, size)
}

// DrawBox implements [render.Graphics].
func (g *Graphics) DrawBox(rect geom.Rect, color geom.Color) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Ops = append(g.Ops, Op{Kind: OpBox, Rect: rect, Color: color})
}

// DrawFrame implements [render.Graphics].
func (g *Graphics) DrawFrame(rect geom.Rect, width int, color geom.Color) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Ops = append(g.Ops, Op{Kind: OpFrame, Rect: rect, Width: width, Color: color})
}

// DrawImage implements [render.Graphics].
func (g *Graphics) DrawImage(texture string, rect geom.Rect, uv geom.Rect) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Ops = append(g.Ops, Op{Kind: OpImage, Texture: texture, Rect: rect, UV: uv})
}

// Filter returns the recorded ops of the given kind.
func (g *Graphics) Filter(kind OpKind) []Op {
	g.mu.Lock()
	defer g.mu.Unlock()
	var out []Op
	for _, op := range g.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Reset discards every recorded op.
func (g *Graphics) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.Ops = nil
}
