// Package geom defines the small 2-D value types shared by the game and render
// collaborators: vectors, sizes, rectangles, and colours.
//
// These types form the lingua franca between the host that reads the game
// scene and the overlay that draws on top of it. They are intentionally
// minimal value types with no behaviour beyond simple arithmetic.
package geom

import "math"

// Vector2 is a point or offset in either grid or screen space.
type Vector2 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// Sub returns v - o.
func (v Vector2) Sub(o Vector2) Vector2 {
	return Vector2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Translate returns v moved by (dx, dy).
func (v Vector2) Translate(dx, dy float32) Vector2 {
	return Vector2{X: v.X + dx, Y: v.Y + dy}
}

// Polar converts v to polar coordinates. distance is the Euclidean length of v
// and phi the angle from the positive X axis in radians, normalised to
// [0, 2π). The zero vector yields (0, 0).
func (v Vector2) Polar() (distance, phi float64) {
	x, y := float64(v.X), float64(v.Y)
	distance = math.Hypot(x, y)
	if distance == 0 {
		return 0, 0
	}
	phi = math.Atan2(y, x)
	if phi < 0 {
		phi += 2 * math.Pi
	}
	return distance, phi
}

// Size is the extent of a measured piece of text or image.
type Size struct {
	Width  float32
	Height float32
}

// Rect is an axis-aligned rectangle anchored at its top-left corner.
type Rect struct {
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Right returns the X coordinate of the right edge.
func (r Rect) Right() float32 { return r.X + r.Width }

// Bottom returns the Y coordinate of the bottom edge.
func (r Rect) Bottom() float32 { return r.Y + r.Height }

// TopRight returns the top-right corner of r.
func (r Rect) TopRight() Vector2 { return Vector2{X: r.Right(), Y: r.Y} }

// Intersects reports whether r and o overlap. Rectangles that only share an
// edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return o.X < r.Right() && r.X < o.Right() && o.Y < r.Bottom() && r.Y < o.Bottom()
}

// Color is a non-premultiplied 8-bit RGBA colour.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque colour.
func RGB(r, g, b uint8) Color { return Color{R: r, G: g, B: b, A: 255} }

// RGBA returns a colour with explicit alpha.
func RGBA(r, g, b, a uint8) Color { return Color{R: r, G: g, B: b, A: a} }

// Common colours.
var (
	White  = RGB(255, 255, 255)
	Black  = RGB(0, 0, 0)
	Red    = RGB(255, 0, 0)
	Yellow = RGB(255, 255, 0)
)
