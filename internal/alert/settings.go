// Package alert tracks dropped items worth alerting on and draws the stacked
// alert overlay.
//
// A [Plugin] is driven by its host on a single logical thread: entity events
// ([Plugin.OnEntityAdded], [Plugin.OnEntityRemoved]) and area changes are
// delivered synchronously between frames, and [Plugin.Render] is called once
// per frame. The alert map, the ground-label cache and the sound cache are
// owned by the plugin and never shared.
package alert

import (
	"github.com/krfshft/PoeHud-Sunbeam/internal/loot"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/geom"
)

// Minimap marker used for every alert.
const (
	MapIconTexture = "minimap_default_icon.png"
	MapIconSize    = 8
)

// Settings controls what the plugin alerts on and how alerts are drawn.
type Settings struct {
	// Enable turns the whole plugin on or off. While off, no new alerts are
	// created and nothing is drawn.
	Enable bool

	// ShowText draws the stacked alert list.
	ShowText bool

	// ShowOnMap shows the minimap marker of each alert.
	ShowOnMap bool

	// PlaySound plays the alert sound once per entity per area visit.
	PlaySound bool

	// TextSize is the font size of alert labels.
	TextSize int

	Rules  loot.Rules
	Layout LayoutSettings
	Border BorderSettings
}

// LayoutSettings positions the alert stack.
type LayoutSettings struct {
	// Anchor is the top-right corner of the first alert. Alerts extend to the
	// left of Anchor.X and stack downwards from Anchor.Y.
	Anchor geom.Vector2

	// Margin is the vertical gap between consecutive alerts.
	Margin float32

	// Padding is the space between an alert's text and its box edge.
	Padding geom.Vector2

	// CompassSectors is the number of equal direction sectors in the compass
	// sprite. Values below 8 are raised to 8.
	CompassSectors int

	// CompassNearDistance splits the near and far compass glyphs, in grid
	// units.
	CompassNearDistance float64

	DirectionsTexture string
	IconsTexture      string
}

// BorderSettings controls the border drawn around the game's own ground
// label of an alerted item.
type BorderSettings struct {
	Enable bool
	Width  int

	// Color is used when the local player may pick the item up.
	Color geom.Color

	// NotMineColor is used when the item belongs to someone else.
	NotMineColor geom.Color

	// LockedColor is used while a pickup lock is counting down and ShowTimer
	// is set.
	LockedColor geom.Color

	ShowTimer     bool
	TimerTextSize int
}

// DefaultSettings returns the settings of a fresh install.
func DefaultSettings() Settings {
	return Settings{
		Enable:    true,
		ShowText:  true,
		ShowOnMap: true,
		PlaySound: true,
		TextSize:  16,
		Rules: loot.Rules{
			Rares:                     true,
			Uniques:                   true,
			Maps:                      true,
			MinLinks:                  5,
			MinSockets:                6,
			Currency:                  true,
			SkillGems:                 false,
			QualitySkillGems:          true,
			QualitySkillGemsThreshold: 10,
			RGB:                       true,
			Crafting:                  true,
			QualityItems: loot.QualityRules{
				Enabled: true,
				Weapon:  loot.QualityGate{Enabled: true, MinQuality: 12},
				Armour:  loot.QualityGate{Enabled: true, MinQuality: 12},
				Flask:   loot.QualityGate{Enabled: true, MinQuality: 15},
			},
		},
		Layout: DefaultLayoutSettings(),
		Border: BorderSettings{
			Enable:        true,
			Width:         1,
			Color:         geom.RGBA(255, 255, 255, 255),
			NotMineColor:  geom.RGBA(255, 0, 0, 255),
			LockedColor:   geom.RGBA(255, 255, 0, 255),
			ShowTimer:     true,
			TimerTextSize: 10,
		},
	}
}

// DefaultLayoutSettings returns the stock stack geometry.
func DefaultLayoutSettings() LayoutSettings {
	return LayoutSettings{
		Anchor:              geom.Vector2{X: 1600, Y: 200},
		Margin:              2,
		Padding:             geom.Vector2{X: 5, Y: 2},
		CompassSectors:      8,
		CompassNearDistance: 50,
		DirectionsTexture:   "directions.png",
		IconsTexture:        "item_icons.png",
	}
}
