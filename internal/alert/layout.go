package alert

import (
	"math"

	"github.com/krfshft/PoeHud-Sunbeam/internal/loot"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/geom"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/render"
)

// Fixed stack geometry.
const (
	minCompassSectors = 8

	// compassExtra widens the compass gutter beyond the font size.
	compassExtra = 8

	// compassInset shifts the compass glyph right inside its gutter.
	compassInset = 6
)

// backgroundColor fills every alert box.
var backgroundColor = geom.RGBA(0, 0, 0, 180)

// Item is one alert to lay out.
type Item struct {
	Text  string
	Style loot.Style

	// Delta is the item's grid position relative to the player.
	Delta geom.Vector2
}

// Box is the computed geometry of one alert.
type Box struct {
	Item Item

	// Rect is the background box. It excludes the compass gutter.
	Rect geom.Rect

	// TextPos is the right-aligned text anchor.
	TextPos geom.Vector2

	Compass   geom.Rect
	CompassUV geom.Rect

	// Icon is empty when the style has no icon.
	Icon   geom.Rect
	IconUV geom.Rect

	// Height is the full height the box occupies in the stack.
	Height float32
}

// HasIcon reports whether the box reserves an icon slot.
func (b Box) HasIcon() bool { return b.Item.Style.IconIndex >= 0 }

// Frame is a laid-out stack of alerts.
type Frame struct {
	Boxes []Box

	// Size is the stack extent. Width is always zero: it is not accumulated
	// across alerts. Height is the final cursor Y.
	Size geom.Size
}

// Layout stacks alerts top to bottom from an anchor.
type Layout struct {
	Settings LayoutSettings
	TextSize int
}

// Stack computes the geometry of items in order. Each alert starts where the
// previous one ended plus the configured margin.
func (l Layout) Stack(m render.Measurer, items []Item) Frame {
	pos := l.Settings.Anchor
	boxes := make([]Box, 0, len(items))
	for _, it := range items {
		b := l.place(m, it, pos)
		boxes = append(boxes, b)
		pos.Y += b.Height + l.Settings.Margin
	}
	return Frame{Boxes: boxes, Size: geom.Size{Width: 0, Height: pos.Y}}
}

func (l Layout) place(m render.Measurer, it Item, pos geom.Vector2) Box {
	fw := float32(it.Style.FrameWidth)
	pad := l.Settings.Padding.Translate(-fw, -fw)
	gutter := float32(l.TextSize + compassExtra)

	text := m.MeasureText(it.Text, l.TextSize)
	var icon float32
	if it.Style.IconIndex >= 0 {
		icon = text.Height
	}

	height := text.Height + 2*pad.Y + 2*fw
	width := text.Width + 2*pad.X + icon + 2*fw + gutter

	b := Box{
		Item:    it,
		Rect:    geom.Rect{X: pos.X - width, Y: pos.Y, Width: width - gutter, Height: height},
		TextPos: geom.Vector2{X: pos.X - pad.X - gutter, Y: pos.Y + pad.Y},
		Compass: geom.Rect{
			X:      pos.X - pad.X - gutter + compassInset,
			Y:      pos.Y + pad.Y,
			Width:  text.Height,
			Height: text.Height,
		},
		CompassUV: l.CompassUV(it.Delta),
		Height:    height,
	}
	if b.HasIcon() {
		b.Icon = geom.Rect{X: b.TextPos.X - icon - text.Width, Y: b.TextPos.Y, Width: icon, Height: icon}
		b.IconUV = IconUV(it.Style.IconIndex)
	}
	return b
}

// CompassUV selects the direction glyph for an item at delta from the player.
// The sprite has one column per sector and two rows: near on top, far below.
func (l Layout) CompassUV(delta geom.Vector2) geom.Rect {
	n := max(l.Settings.CompassSectors, minCompassSectors)
	distance, phi := delta.Polar()

	sector := int(math.Round(phi/(2*math.Pi/float64(n)))) % n
	row := 0
	if distance >= l.Settings.CompassNearDistance {
		row = 1
	}
	return geom.Rect{
		X:      float32(sector) / float32(n),
		Y:      float32(row) / 2,
		Width:  1 / float32(n),
		Height: 0.5,
	}
}

// IconUV returns the sprite-strip cell of icon index idx.
func IconUV(idx int) geom.Rect {
	return geom.Rect{X: float32(idx) / loot.IconSlots, Y: 0, Width: 1.0 / loot.IconSlots, Height: 1}
}

// Draw renders every box of f.
func (l Layout) Draw(g render.Graphics, f Frame) {
	for _, b := range f.Boxes {
		l.drawBox(g, b)
	}
}

func (l Layout) drawBox(g render.Graphics, b Box) {
	style := b.Item.Style
	g.DrawBox(b.Rect, backgroundColor)
	g.DrawText(b.Item.Text, l.TextSize, b.TextPos, style.Color, render.AlignRight)
	g.DrawImage(l.Settings.DirectionsTexture, b.Compass, b.CompassUV)
	if b.HasIcon() {
		g.DrawImage(l.Settings.IconsTexture, b.Icon, b.IconUV)
	}
	if style.FrameWidth > 0 {
		g.DrawFrame(b.Rect, style.FrameWidth, style.Color)
	}
}
