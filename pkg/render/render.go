// Package render defines the drawing primitives Sunbeam needs from the host's
// graphics layer.
//
// The overlay never talks to a GPU API directly. Hosts adapt their own text,
// box, frame and sprite primitives to [Graphics]; tests use the recording
// implementation in the mock subpackage.
package render

import "github.com/krfshft/PoeHud-Sunbeam/pkg/geom"

// Align selects the horizontal anchoring of drawn text.
type Align int

const (
	// AlignLeft anchors text at its left edge.
	AlignLeft Align = iota

	// AlignRight anchors text at its right edge, so the text extends to the
	// left of the given position.
	AlignRight
)

// Measurer measures text without drawing it.
type Measurer interface {
	// MeasureText returns the extent of text rendered at the given font size.
	MeasureText(text string, size int) geom.Size
}

// Graphics is the set of drawing primitives used by the overlay. All calls
// are made from the render thread during a single frame.
type Graphics interface {
	Measurer

	// DrawText draws text at pos and returns its extent.
	DrawText(text string, size int, pos geom.Vector2, color geom.Color, align Align) geom.Size

	// DrawBox fills rect with color.
	DrawBox(rect geom.Rect, color geom.Color)

	// DrawFrame outlines rect with a border of the given width.
	DrawFrame(rect geom.Rect, width int, color geom.Color)

	// DrawImage draws the uv sub-region (normalised 0..1 texture coordinates)
	// of texture into rect.
	DrawImage(texture string, rect geom.Rect, uv geom.Rect)
}
