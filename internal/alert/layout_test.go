package alert_test

import (
	"testing"

	"github.com/krfshft/PoeHud-Sunbeam/internal/alert"
	"github.com/krfshft/PoeHud-Sunbeam/internal/loot"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/geom"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/render"
	rmock "github.com/krfshft/PoeHud-Sunbeam/pkg/render/mock"
)

func testLayout(anchor geom.Vector2) alert.Layout {
	s := alert.DefaultLayoutSettings()
	s.Anchor = anchor
	return alert.Layout{Settings: s, TextSize: 16}
}

func plainStyle(text string) loot.Style {
	return loot.Style{Color: loot.NormalColor, Text: text, IconIndex: loot.IconNone}
}

func TestStack_AdvancesByHeightPlusMargin(t *testing.T) {
	t.Parallel()

	// Padding is (5,2), so a box is 4 taller than its text.
	gfx := &rmock.Graphics{Heights: map[string]float32{"first": 36, "second": 51}}
	l := testLayout(geom.Vector2{X: 500, Y: 0})

	f := l.Stack(gfx, []alert.Item{
		{Text: "first", Style: plainStyle("first")},
		{Text: "second", Style: plainStyle("second")},
	})

	if len(f.Boxes) != 2 {
		t.Fatalf("boxes = %d, want 2", len(f.Boxes))
	}
	if f.Boxes[0].Height != 40 || f.Boxes[1].Height != 55 {
		t.Fatalf("heights = %v, %v; want 40, 55", f.Boxes[0].Height, f.Boxes[1].Height)
	}
	if got := f.Boxes[1].Rect.Y; got != 42 {
		t.Errorf("second top = %v, want 42", got)
	}
	if f.Size.Width != 0 {
		t.Errorf("container width = %v, want 0", f.Size.Width)
	}
	if f.Size.Height != 99 {
		t.Errorf("container height = %v, want 99", f.Size.Height)
	}
}

func TestStack_BoxGeometry(t *testing.T) {
	t.Parallel()

	// Text "Ring" at size 16 measures 32x16 with the default mock metrics.
	gfx := &rmock.Graphics{}
	l := testLayout(geom.Vector2{X: 100, Y: 10})
	style := loot.Style{Color: loot.UniqueColor, FrameWidth: 1, Text: "Ring", IconIndex: loot.IconSixLinks}

	f := l.Stack(gfx, []alert.Item{{Text: "Ring", Style: style}})
	b := f.Boxes[0]

	// Frame width 1 shrinks padding to (4,1); gutter is 16+8.
	wantRect := geom.Rect{X: 18, Y: 10, Width: 58, Height: 20}
	if b.Rect != wantRect {
		t.Errorf("Rect = %+v, want %+v", b.Rect, wantRect)
	}
	if want := (geom.Vector2{X: 72, Y: 11}); b.TextPos != want {
		t.Errorf("TextPos = %+v, want %+v", b.TextPos, want)
	}
	if want := (geom.Rect{X: 78, Y: 11, Width: 16, Height: 16}); b.Compass != want {
		t.Errorf("Compass = %+v, want %+v", b.Compass, want)
	}
	if want := (geom.Rect{X: 24, Y: 11, Width: 16, Height: 16}); b.Icon != want {
		t.Errorf("Icon = %+v, want %+v", b.Icon, want)
	}
	if want := (geom.Rect{X: 0.75, Y: 0, Width: 0.25, Height: 1}); b.IconUV != want {
		t.Errorf("IconUV = %+v, want %+v", b.IconUV, want)
	}
}

func TestStack_NoIconSlotWithoutIcon(t *testing.T) {
	t.Parallel()

	gfx := &rmock.Graphics{}
	l := testLayout(geom.Vector2{X: 100, Y: 0})

	f := l.Stack(gfx, []alert.Item{{Text: "Ring", Style: plainStyle("Ring")}})
	b := f.Boxes[0]
	// 32 text + 10 padding.
	if b.Rect.Width != 42 {
		t.Errorf("width = %v, want 42", b.Rect.Width)
	}
	if b.HasIcon() || b.Icon != (geom.Rect{}) {
		t.Errorf("unexpected icon slot %+v", b.Icon)
	}
}

func TestDraw_Operations(t *testing.T) {
	t.Parallel()

	gfx := &rmock.Graphics{}
	l := testLayout(geom.Vector2{X: 100, Y: 0})
	framed := loot.Style{Color: loot.RareColor, FrameWidth: 1, Text: "Map", IconIndex: loot.IconChrome}

	f := l.Stack(gfx, []alert.Item{
		{Text: "Map", Style: framed},
		{Text: "Ring", Style: plainStyle("Ring")},
	})
	l.Draw(gfx, f)

	kinds := make([]rmock.OpKind, 0, len(gfx.Ops))
	for _, op := range gfx.Ops {
		kinds = append(kinds, op.Kind)
	}
	want := []rmock.OpKind{
		rmock.OpBox, rmock.OpText, rmock.OpImage, rmock.OpImage, rmock.OpFrame,
		rmock.OpBox, rmock.OpText, rmock.OpImage,
	}
	if len(kinds) != len(want) {
		t.Fatalf("ops = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("ops = %v, want %v", kinds, want)
		}
	}

	box := gfx.Ops[0]
	if box.Color != geom.RGBA(0, 0, 0, 180) {
		t.Errorf("background = %+v", box.Color)
	}
	text := gfx.Ops[1]
	if text.Text != "Map" || text.Color != loot.RareColor || text.Align != render.AlignRight {
		t.Errorf("text op = %+v", text)
	}
	if gfx.Ops[2].Texture != "directions.png" || gfx.Ops[3].Texture != "item_icons.png" {
		t.Errorf("textures = %q, %q", gfx.Ops[2].Texture, gfx.Ops[3].Texture)
	}
	frame := gfx.Ops[4]
	if frame.Width != 1 || frame.Rect != f.Boxes[0].Rect || frame.Color != loot.RareColor {
		t.Errorf("frame op = %+v", frame)
	}
}

func TestCompassUV(t *testing.T) {
	t.Parallel()

	l := testLayout(geom.Vector2{})

	tests := []struct {
		name  string
		delta geom.Vector2
		want  geom.Rect
	}{
		{"east near", geom.Vector2{X: 10}, geom.Rect{X: 0, Y: 0, Width: 0.125, Height: 0.5}},
		{"north far", geom.Vector2{Y: 100}, geom.Rect{X: 0.25, Y: 0.5, Width: 0.125, Height: 0.5}},
		{"west near", geom.Vector2{X: -20}, geom.Rect{X: 0.5, Y: 0, Width: 0.125, Height: 0.5}},
		{"just below full turn wraps", geom.Vector2{X: 10, Y: -1}, geom.Rect{X: 0, Y: 0, Width: 0.125, Height: 0.5}},
		{"on player", geom.Vector2{}, geom.Rect{X: 0, Y: 0, Width: 0.125, Height: 0.5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := l.CompassUV(tc.delta); got != tc.want {
				t.Errorf("CompassUV(%+v) = %+v, want %+v", tc.delta, got, tc.want)
			}
		})
	}
}

func TestCompassUV_MinimumSectors(t *testing.T) {
	t.Parallel()

	l := testLayout(geom.Vector2{})
	l.Settings.CompassSectors = 4
	if got := l.CompassUV(geom.Vector2{X: 1}).Width; got != 0.125 {
		t.Errorf("sector width = %v, want 1/8", got)
	}

	l.Settings.CompassSectors = 16
	if got := l.CompassUV(geom.Vector2{Y: 1}); got.X != 0.25 || got.Width != 0.0625 {
		t.Errorf("16 sectors north = %+v", got)
	}
}
