package alert

import (
	"fmt"
	"time"

	"github.com/krfshft/PoeHud-Sunbeam/pkg/game"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/geom"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/render"
)

// timerColor is the colour of the pickup-lock countdown text.
var timerColor = geom.White

// BorderOverlay outlines the game's ground label of an alerted item and shows
// its pickup-lock countdown.
type BorderOverlay struct {
	labels *LabelCache
	panels game.Panels
}

// NewBorderOverlay returns an overlay reading labels from cache and panel
// occlusion from panels.
func NewBorderOverlay(cache *LabelCache, panels game.Panels) *BorderOverlay {
	return &BorderOverlay{labels: cache, panels: panels}
}

// Draw outlines the ground label of the entity at address. It reports whether
// a border was drawn: nothing is drawn when the label is unknown, hidden, or
// covered by an open side panel.
func (o *BorderOverlay) Draw(g render.Graphics, s BorderSettings, address int64) bool {
	label, ok := o.labels.Resolve(address)
	if !ok || !label.Visible {
		return false
	}
	if covered(o.panels.LeftPanel(), label.Rect) || covered(o.panels.RightPanel(), label.Rect) {
		return false
	}

	color := s.Color
	if !label.CanPickUp {
		color = s.NotMineColor
		if s.ShowTimer && label.TimeLeft > 0 {
			color = s.LockedColor
			g.DrawText(formatTimer(label.TimeLeft), s.TimerTextSize,
				label.Rect.TopRight().Translate(4, 0), timerColor, render.AlignLeft)
		}
	}
	g.DrawFrame(label.Rect, s.Width, color)
	return true
}

func covered(p game.Panel, r geom.Rect) bool {
	return p.Visible && p.Rect.Intersects(r)
}

// formatTimer renders d as mm:ss. Minutes wrap at an hour.
func formatTimer(d time.Duration) string {
	secs := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", (secs/60)%60, secs%60)
}
