package replay

import (
	"log/slog"
	"sync"
	"unicode/utf8"

	"github.com/krfshft/PoeHud-Sunbeam/pkg/geom"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/render"
)

// Graphics is a headless [render.Graphics]. It measures text with a
// fixed-pitch model (every rune is half the font size wide, a line is as
// tall as the font size), logs each draw call at debug level and counts
// them.
type Graphics struct {
	log *slog.Logger

	mu     sync.Mutex
	counts DrawCounts
}

// DrawCounts tallies draw calls by primitive.
type DrawCounts struct {
	Text, Box, Frame, Image int
}

// Total returns the number of draw calls.
func (c DrawCounts) Total() int { return c.Text + c.Box + c.Frame + c.Image }

var _ render.Graphics = (*Graphics)(nil)

// NewGraphics returns a Graphics logging to log, or to the default logger
// when log is nil.
func NewGraphics(log *slog.Logger) *Graphics {
	if log == nil {
		log = slog.Default()
	}
	return &Graphics{log: log}
}

// Counts returns the draw calls made so far.
func (g *Graphics) Counts() DrawCounts {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.counts
}

// MeasureText implements [render.Measurer].
func (g *Graphics) MeasureText(text string, size int) geom.Size {
	return geom.Size{
		Width:  float32(utf8.RuneCountInString(text)) * float32(size) / 2,
		Height: float32(size),
	}
}

// DrawText implements [render.Graphics].
func (g *Graphics) DrawText(text string, size int, pos geom.Vector2, color geom.Color, align render.Align) geom.Size {
	g.mu.Lock()
	g.counts.Text++
	g.mu.Unlock()
	g.log.Debug("draw text", "text", text, "size", size, "x", pos.X, "y", pos.Y, "align", align, "color", color)
	return g.MeasureText(text, size)
}

// DrawBox implements [render.Graphics].
func (g *Graphics) DrawBox(rect geom.Rect, color geom.Color) {
	g.mu.Lock()
	g.counts.Box++
	g.mu.Unlock()
	g.log.Debug("draw box", "rect", rect, "color", color)
}

// DrawFrame implements [render.Graphics].
func (g *Graphics) DrawFrame(rect geom.Rect, width int, color geom.Color) {
	g.mu.Lock()
	g.counts.Frame++
	g.mu.Unlock()
	g.log.Debug("draw frame", "rect", rect, "width", width, "color", color)
}

// DrawImage implements [render.Graphics].
func (g *Graphics) DrawImage(texture string, rect geom.Rect, uv geom.Rect) {
	g.mu.Lock()
	g.counts.Image++
	g.mu.Unlock()
	g.log.Debug("draw image", "texture", texture, "rect", rect, "uv", uv)
}
