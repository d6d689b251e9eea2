// Package config provides the YAML configuration schema, loader, diff and
// file watcher for the Sunbeam item-alert engine.
package config

import (
	"github.com/krfshft/PoeHud-Sunbeam/internal/alert"
	"github.com/krfshft/PoeHud-Sunbeam/internal/loot"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/geom"
)

// LogLevel controls log verbosity.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// IsValid reports whether l is a recognised log level.
func (l LogLevel) IsValid() bool {
	switch l {
	case LogDebug, LogInfo, LogWarn, LogError:
		return true
	}
	return false
}

// Config is the root configuration structure. It is comparable with ==, which
// [Diff] relies on.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Alert   AlertConfig   `yaml:"alert"`
	Border  BorderConfig  `yaml:"border"`
	Layout  LayoutConfig  `yaml:"layout"`
	Lists   ListsConfig   `yaml:"lists"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// ServerConfig holds process-wide settings.
type ServerConfig struct {
	// LogLevel controls verbosity. Empty means info.
	LogLevel LogLevel `yaml:"log_level"`
}

// AlertConfig selects which items alert and how alerts are shown.
type AlertConfig struct {
	Enable    bool `yaml:"enable"`
	ShowText  bool `yaml:"show_text"`
	ShowOnMap bool `yaml:"show_on_map"`
	PlaySound bool `yaml:"play_sound"`
	TextSize  int  `yaml:"text_size"`

	Rares      bool `yaml:"rares"`
	Uniques    bool `yaml:"uniques"`
	Maps       bool `yaml:"maps"`
	MinLinks   int  `yaml:"min_links"`
	MinSockets int  `yaml:"min_sockets"`
	Currency   bool `yaml:"currency"`
	SkillGems  bool `yaml:"skill_gems"`
	RGB        bool `yaml:"rgb"`
	Crafting   bool `yaml:"crafting"`

	QualitySkillGems QualityGate        `yaml:"quality_skill_gems"`
	QualityItems     QualityItemsConfig `yaml:"quality_items"`
}

// QualityGate enables an alert above a minimum quality.
type QualityGate struct {
	Enable     bool `yaml:"enable"`
	MinQuality int  `yaml:"min_quality"`
}

// QualityItemsConfig holds the per-category quality gates.
type QualityItemsConfig struct {
	Enable bool        `yaml:"enable"`
	Weapon QualityGate `yaml:"weapon"`
	Armour QualityGate `yaml:"armour"`
	Flask  QualityGate `yaml:"flask"`
}

// BorderConfig controls the border around the game's own ground labels.
type BorderConfig struct {
	Enable        bool  `yaml:"enable"`
	Width         int   `yaml:"width"`
	Color         Color `yaml:"color"`
	NotMineColor  Color `yaml:"not_mine_color"`
	LockedColor   Color `yaml:"locked_color"`
	ShowTimer     bool  `yaml:"show_timer"`
	TimerTextSize int   `yaml:"timer_text_size"`
}

// LayoutConfig positions the alert stack on screen.
type LayoutConfig struct {
	Anchor              geom.Vector2 `yaml:"anchor"`
	Margin              float32      `yaml:"margin"`
	Padding             geom.Vector2 `yaml:"padding"`
	CompassSectors      int          `yaml:"compass_sectors"`
	CompassNearDistance float64      `yaml:"compass_near_distance"`
	DirectionsTexture   string       `yaml:"directions_texture"`
	IconsTexture        string       `yaml:"icons_texture"`
}

// ListsConfig names the plain-text lists loaded once at startup.
type ListsConfig struct {
	Currency      string `yaml:"currency"`
	CraftingBases string `yaml:"crafting_bases"`
}

// MetricsConfig controls the observability endpoint.
type MetricsConfig struct {
	// ListenAddr serves /metrics, /healthz and /readyz when non-empty.
	ListenAddr string `yaml:"listen_addr"`

	// RuntimeCollectors adds Go runtime and process collectors.
	RuntimeCollectors bool `yaml:"runtime_collectors"`
}

// Default returns the configuration of a fresh install.
func Default() *Config {
	s := alert.DefaultSettings()
	r := s.Rules
	return &Config{
		Server: ServerConfig{LogLevel: LogInfo},
		Alert: AlertConfig{
			Enable:     s.Enable,
			ShowText:   s.ShowText,
			ShowOnMap:  s.ShowOnMap,
			PlaySound:  s.PlaySound,
			TextSize:   s.TextSize,
			Rares:      r.Rares,
			Uniques:    r.Uniques,
			Maps:       r.Maps,
			MinLinks:   r.MinLinks,
			MinSockets: r.MinSockets,
			Currency:   r.Currency,
			SkillGems:  r.SkillGems,
			RGB:        r.RGB,
			Crafting:   r.Crafting,
			QualitySkillGems: QualityGate{
				Enable:     r.QualitySkillGems,
				MinQuality: r.QualitySkillGemsThreshold,
			},
			QualityItems: QualityItemsConfig{
				Enable: r.QualityItems.Enabled,
				Weapon: gateFrom(r.QualityItems.Weapon),
				Armour: gateFrom(r.QualityItems.Armour),
				Flask:  gateFrom(r.QualityItems.Flask),
			},
		},
		Border: BorderConfig{
			Enable:        s.Border.Enable,
			Width:         s.Border.Width,
			Color:         Color(s.Border.Color),
			NotMineColor:  Color(s.Border.NotMineColor),
			LockedColor:   Color(s.Border.LockedColor),
			ShowTimer:     s.Border.ShowTimer,
			TimerTextSize: s.Border.TimerTextSize,
		},
		Layout: LayoutConfig{
			Anchor:              s.Layout.Anchor,
			Margin:              s.Layout.Margin,
			Padding:             s.Layout.Padding,
			CompassSectors:      s.Layout.CompassSectors,
			CompassNearDistance: s.Layout.CompassNearDistance,
			DirectionsTexture:   s.Layout.DirectionsTexture,
			IconsTexture:        s.Layout.IconsTexture,
		},
		Lists: ListsConfig{
			Currency:      "config/currency.txt",
			CraftingBases: "config/crafting_bases.txt",
		},
	}
}

func gateFrom(g loot.QualityGate) QualityGate {
	return QualityGate{Enable: g.Enabled, MinQuality: g.MinQuality}
}

func (g QualityGate) gate() loot.QualityGate {
	return loot.QualityGate{Enabled: g.Enable, MinQuality: g.MinQuality}
}

// Rules converts the alert section into classification rules.
func (a AlertConfig) Rules() loot.Rules {
	return loot.Rules{
		Rares:                     a.Rares,
		Uniques:                   a.Uniques,
		Maps:                      a.Maps,
		MinLinks:                  a.MinLinks,
		MinSockets:                a.MinSockets,
		Currency:                  a.Currency,
		SkillGems:                 a.SkillGems,
		QualitySkillGems:          a.QualitySkillGems.Enable,
		QualitySkillGemsThreshold: a.QualitySkillGems.MinQuality,
		RGB:                       a.RGB,
		Crafting:                  a.Crafting,
		QualityItems: loot.QualityRules{
			Enabled: a.QualityItems.Enable,
			Weapon:  a.QualityItems.Weapon.gate(),
			Armour:  a.QualityItems.Armour.gate(),
			Flask:   a.QualityItems.Flask.gate(),
		},
	}
}

// Settings converts the alert, border and layout sections into plugin
// settings.
func (c *Config) Settings() alert.Settings {
	return alert.Settings{
		Enable:    c.Alert.Enable,
		ShowText:  c.Alert.ShowText,
		ShowOnMap: c.Alert.ShowOnMap,
		PlaySound: c.Alert.PlaySound,
		TextSize:  c.Alert.TextSize,
		Rules:     c.Alert.Rules(),
		Layout: alert.LayoutSettings{
			Anchor:              c.Layout.Anchor,
			Margin:              c.Layout.Margin,
			Padding:             c.Layout.Padding,
			CompassSectors:      c.Layout.CompassSectors,
			CompassNearDistance: c.Layout.CompassNearDistance,
			DirectionsTexture:   c.Layout.DirectionsTexture,
			IconsTexture:        c.Layout.IconsTexture,
		},
		Border: alert.BorderSettings{
			Enable:        c.Border.Enable,
			Width:         c.Border.Width,
			Color:         geom.Color(c.Border.Color),
			NotMineColor:  geom.Color(c.Border.NotMineColor),
			LockedColor:   geom.Color(c.Border.LockedColor),
			ShowTimer:     c.Border.ShowTimer,
			TimerTextSize: c.Border.TimerTextSize,
		},
	}
}
