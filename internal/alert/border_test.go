package alert_test

import (
	"testing"
	"time"

	"github.com/krfshft/PoeHud-Sunbeam/internal/alert"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/game"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/game/mock"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/geom"
	rmock "github.com/krfshft/PoeHud-Sunbeam/pkg/render/mock"
)

var labelRect = geom.Rect{X: 400, Y: 300, Width: 120, Height: 20}

func borderSettings() alert.BorderSettings {
	return alert.BorderSettings{
		Enable:        true,
		Width:         2,
		Color:         geom.RGB(1, 1, 1),
		NotMineColor:  geom.RGB(2, 2, 2),
		LockedColor:   geom.RGB(3, 3, 3),
		ShowTimer:     true,
		TimerTextSize: 10,
	}
}

func TestBorderOverlay_Colors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		label     game.GroundLabel
		showTimer bool
		wantColor geom.Color
		wantText  string
	}{
		{
			name:      "pickup allowed",
			label:     game.GroundLabel{CanPickUp: true, TimeLeft: time.Minute},
			showTimer: true,
			wantColor: geom.RGB(1, 1, 1),
		},
		{
			name:      "someone else's item",
			label:     game.GroundLabel{},
			showTimer: true,
			wantColor: geom.RGB(2, 2, 2),
		},
		{
			name:      "locked with countdown",
			label:     game.GroundLabel{TimeLeft: 75 * time.Second},
			showTimer: true,
			wantColor: geom.RGB(3, 3, 3),
			wantText:  "01:15",
		},
		{
			name:      "locked with countdown hidden",
			label:     game.GroundLabel{TimeLeft: 75 * time.Second},
			showTimer: false,
			wantColor: geom.RGB(2, 2, 2),
		},
		{
			name:      "minutes wrap at an hour",
			label:     game.GroundLabel{TimeLeft: 62*time.Minute + 5*time.Second},
			showTimer: true,
			wantColor: geom.RGB(3, 3, 3),
			wantText:  "02:05",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			label := tc.label
			label.EntityAddress = 0xA0
			label.Visible = true
			label.Rect = labelRect
			world := &mock.World{}
			world.SetGround(label)

			s := borderSettings()
			s.ShowTimer = tc.showTimer
			gfx := &rmock.Graphics{}
			o := alert.NewBorderOverlay(alert.NewLabelCache(world, nil), world)

			if !o.Draw(gfx, s, 0xA0) {
				t.Fatal("border not drawn")
			}

			frames := gfx.Filter(rmock.OpFrame)
			if len(frames) != 1 {
				t.Fatalf("frames = %d, want 1", len(frames))
			}
			if frames[0].Color != tc.wantColor || frames[0].Width != 2 || frames[0].Rect != labelRect {
				t.Errorf("frame = %+v", frames[0])
			}

			texts := gfx.Filter(rmock.OpText)
			if tc.wantText == "" {
				if len(texts) != 0 {
					t.Errorf("unexpected timer text %+v", texts)
				}
				return
			}
			if len(texts) != 1 {
				t.Fatalf("texts = %d, want 1", len(texts))
			}
			if texts[0].Text != tc.wantText || texts[0].Size != 10 {
				t.Errorf("timer = %q size %d", texts[0].Text, texts[0].Size)
			}
			if want := (geom.Vector2{X: 524, Y: 300}); texts[0].Pos != want {
				t.Errorf("timer pos = %+v, want %+v", texts[0].Pos, want)
			}
		})
	}
}

func TestBorderOverlay_Suppressed(t *testing.T) {
	t.Parallel()

	overlapping := game.Panel{Rect: geom.Rect{X: 0, Y: 0, Width: 450, Height: 800}, Visible: true}

	tests := []struct {
		name    string
		visible bool
		left    game.Panel
		right   game.Panel
		address int64
		want    bool
	}{
		{"visible and clear", true, game.Panel{}, game.Panel{}, 0xA0, true},
		{"label hidden", false, game.Panel{}, game.Panel{}, 0xA0, false},
		{"left panel covers", true, overlapping, game.Panel{}, 0xA0, false},
		{"right panel covers", true, game.Panel{}, overlapping, 0xA0, false},
		{"covering panel closed", true, game.Panel{Rect: overlapping.Rect}, game.Panel{}, 0xA0, true},
		{"unknown label", true, game.Panel{}, game.Panel{}, 0xB0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			world := &mock.World{Left: tc.left, Right: tc.right}
			world.SetGround(game.GroundLabel{EntityAddress: 0xA0, Rect: labelRect, Visible: tc.visible, CanPickUp: true})
			gfx := &rmock.Graphics{}
			o := alert.NewBorderOverlay(alert.NewLabelCache(world, nil), world)

			if got := o.Draw(gfx, borderSettings(), tc.address); got != tc.want {
				t.Errorf("Draw = %v, want %v", got, tc.want)
			}
			if got := len(gfx.Ops) > 0; got != tc.want {
				t.Errorf("ops recorded = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestBorderOverlay_MissRebuildsBeforeRetry(t *testing.T) {
	t.Parallel()

	world := &mock.World{}
	cache := alert.NewLabelCache(world, nil)
	o := alert.NewBorderOverlay(cache, world)
	gfx := &rmock.Graphics{}

	if o.Draw(gfx, borderSettings(), 0xA0) {
		t.Fatal("drew a border with no labels")
	}

	// The label appears later; the next miss rebuilds and the same call draws.
	world.SetGround(game.GroundLabel{EntityAddress: 0xA0, Rect: labelRect, Visible: true, CanPickUp: true})
	if !o.Draw(gfx, borderSettings(), 0xA0) {
		t.Fatal("border not drawn after rebuild")
	}
	if cache.Rebuilds() != 2 {
		t.Errorf("rebuilds = %d, want 2", cache.Rebuilds())
	}

	o.Draw(gfx, borderSettings(), 0xA0)
	if cache.Rebuilds() != 2 {
		t.Errorf("cached hit rebuilt the cache")
	}
}
