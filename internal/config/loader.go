package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"

	"gopkg.in/yaml.v3"
)

// minCompassSectors matches the smallest compass sprite the overlay draws.
const minCompassSectors = 8

// Load reads the YAML configuration file at path and returns a validated
// [Config]. It is a convenience wrapper around [LoadFromReader].
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %q: %w", path, err)
	}
	defer f.Close()

	cfg, err := LoadFromReader(f)
	if err != nil {
		return nil, fmt.Errorf("config: parse %q: %w", path, err)
	}
	return cfg, nil
}

// LoadFromReader decodes a YAML config from r on top of [Default] and
// validates the result. Keys absent from the document keep their defaults,
// and an empty document yields the defaults unchanged.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that cfg contains a coherent set of values.
// It returns a joined error listing all validation failures found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Server.LogLevel != "" && !cfg.Server.LogLevel.IsValid() {
		errs = append(errs, fmt.Errorf("server.log_level %q is invalid; valid values: debug, info, warn, error", cfg.Server.LogLevel))
	}

	// Alert
	a := cfg.Alert
	if a.TextSize <= 0 {
		errs = append(errs, fmt.Errorf("alert.text_size must be positive, got %d", a.TextSize))
	}
	errs = append(errs, checkRange("alert.min_links", a.MinLinks, 0, 6))
	errs = append(errs, checkRange("alert.min_sockets", a.MinSockets, 0, 6))
	errs = append(errs, checkRange("alert.quality_skill_gems.min_quality", a.QualitySkillGems.MinQuality, 0, 100))
	errs = append(errs, checkRange("alert.quality_items.weapon.min_quality", a.QualityItems.Weapon.MinQuality, 0, 100))
	errs = append(errs, checkRange("alert.quality_items.armour.min_quality", a.QualityItems.Armour.MinQuality, 0, 100))
	errs = append(errs, checkRange("alert.quality_items.flask.min_quality", a.QualityItems.Flask.MinQuality, 0, 100))

	// Border
	if cfg.Border.Width < 0 {
		errs = append(errs, fmt.Errorf("border.width must not be negative, got %d", cfg.Border.Width))
	}
	if cfg.Border.ShowTimer && cfg.Border.TimerTextSize <= 0 {
		errs = append(errs, fmt.Errorf("border.timer_text_size must be positive when border.show_timer is set, got %d", cfg.Border.TimerTextSize))
	}

	// Layout
	l := cfg.Layout
	if l.Margin < 0 {
		errs = append(errs, fmt.Errorf("layout.margin must not be negative, got %v", l.Margin))
	}
	if l.Padding.X < 0 || l.Padding.Y < 0 {
		errs = append(errs, fmt.Errorf("layout.padding must not be negative, got (%v, %v)", l.Padding.X, l.Padding.Y))
	}
	if l.CompassNearDistance <= 0 {
		errs = append(errs, fmt.Errorf("layout.compass_near_distance must be positive, got %v", l.CompassNearDistance))
	}
	if l.DirectionsTexture == "" {
		errs = append(errs, errors.New("layout.directions_texture is required"))
	}
	if l.IconsTexture == "" {
		errs = append(errs, errors.New("layout.icons_texture is required"))
	}
	if l.CompassSectors < minCompassSectors {
		slog.Warn("layout.compass_sectors below minimum; using minimum",
			"configured", l.CompassSectors, "minimum", minCompassSectors)
	}

	// Metrics
	if addr := cfg.Metrics.ListenAddr; addr != "" {
		if _, _, err := net.SplitHostPort(addr); err != nil {
			errs = append(errs, fmt.Errorf("metrics.listen_addr %q: %w", addr, err))
		}
	}

	return errors.Join(errs...)
}

// checkRange returns nil when lo <= v <= hi.
func checkRange(field string, v, lo, hi int) error {
	if v < lo || v > hi {
		return fmt.Errorf("%s must be between %d and %d, got %d", field, lo, hi, v)
	}
	return nil
}
