package config

import (
	"encoding/hex"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/krfshft/PoeHud-Sunbeam/pkg/geom"
)

// Color is a [geom.Color] written in YAML as "#RRGGBB" or "#RRGGBBAA".
type Color geom.Color

// ParseColor parses a hex colour. The leading '#' is optional and a missing
// alpha channel means opaque.
func ParseColor(s string) (Color, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(raw) != 6 && len(raw) != 8 {
		return Color{}, fmt.Errorf("config: color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	b, err := hex.DecodeString(raw)
	if err != nil {
		return Color{}, fmt.Errorf("config: color %q: %w", s, err)
	}
	c := Color{R: b[0], G: b[1], B: b[2], A: 255}
	if len(b) == 4 {
		c.A = b[3]
	}
	return c, nil
}

// String formats c as "#RRGGBB", or "#RRGGBBAA" when not opaque.
func (c Color) String() string {
	if c.A == 255 {
		return "#" + hex.EncodeToString([]byte{c.R, c.G, c.B})
	}
	return "#" + hex.EncodeToString([]byte{c.R, c.G, c.B, c.A})
}

// UnmarshalYAML implements [yaml.Unmarshaler].
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseColor(s)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*c = parsed
	return nil
}

// MarshalYAML implements [yaml.Marshaler].
func (c Color) MarshalYAML() (any, error) {
	return c.String(), nil
}
