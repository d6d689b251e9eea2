// Package game defines the collaborator interfaces through which Sunbeam
// observes the live game scene.
//
// Everything here is implemented by the host process that reads the game's
// memory (or, in tests and replays, by in-memory doubles). Sunbeam itself never
// touches the game process directly: it receives entities through events and
// queries the scene through the small interfaces below.
//
// All methods are expected to be called from the single render/event thread
// that owns the overlay. Implementations need not be safe for concurrent use.
package game

import (
	"fmt"
	"strings"
	"time"

	"github.com/krfshft/PoeHud-Sunbeam/pkg/geom"
)

// ─── Items ───────────────────────────────────────────────────────────────────

// Rarity is the rarity tier of an item.
type Rarity int

const (
	RarityNormal Rarity = iota
	RarityMagic
	RarityRare
	RarityUnique
)

// String returns the canonical lower-case name of r.
func (r Rarity) String() string {
	switch r {
	case RarityNormal:
		return "normal"
	case RarityMagic:
		return "magic"
	case RarityRare:
		return "rare"
	case RarityUnique:
		return "unique"
	}
	return "unknown"
}

// ParseRarity parses a rarity token case-insensitively. "white" is accepted as
// an alias for normal. Surrounding whitespace is ignored.
func ParseRarity(s string) (Rarity, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "normal", "white":
		return RarityNormal, true
	case "magic":
		return RarityMagic, true
	case "rare":
		return RarityRare, true
	case "unique":
		return RarityUnique, true
	}
	return 0, false
}

// UnmarshalText implements [encoding.TextUnmarshaler] using [ParseRarity].
func (r *Rarity) UnmarshalText(b []byte) error {
	v, ok := ParseRarity(string(b))
	if !ok {
		return fmt.Errorf("game: unknown rarity %q", b)
	}
	*r = v
	return nil
}

// MarshalText implements [encoding.TextMarshaler].
func (r Rarity) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// ItemInfo is the set of item facts read from the game for a single item. It
// carries everything the classifier needs except the translated name and
// crafting-base membership, which Sunbeam derives itself.
type ItemInfo struct {
	Rarity Rarity `yaml:"rarity"`

	IsCurrency     bool `yaml:"currency"`
	IsSkillGem     bool `yaml:"skill_gem"`
	WorthChrome    bool `yaml:"worth_chrome"`
	IsVaalFragment bool `yaml:"vaal_fragment"`
	IsWeapon       bool `yaml:"weapon"`
	IsArmour       bool `yaml:"armour"`
	IsFlask        bool `yaml:"flask"`

	NumSockets int `yaml:"sockets"`
	NumLinks   int `yaml:"links"`
	ItemLevel  int `yaml:"item_level"`
	Quality    int `yaml:"quality"`
	MapLevel   int `yaml:"map_level"`
}

// ItemEntity is the underlying item definition a world entity represents.
type ItemEntity interface {
	// Path is the item's metadata path, translated to a display name through
	// a [Translator].
	Path() string

	// IsValid reports whether the item can currently be read. Items may be
	// momentarily invalid while the game streams data in.
	IsValid() bool

	// Info returns the item's properties.
	Info() ItemInfo
}

// ─── Entities ────────────────────────────────────────────────────────────────

// Payload is the tagged variant describing what a world entity carries.
// The only variants are [Plain] and [WorldItem].
type Payload interface {
	payload()
}

// Plain is the payload of an entity that is not a dropped item.
type Plain struct{}

// WorldItem is the payload of an entity lying on the ground as an item.
type WorldItem struct {
	Item ItemEntity
}

func (Plain) payload()     {}
func (WorldItem) payload() {}

// Entity is a live world entity with a stable identity.
type Entity interface {
	// ID is the entity's long identifier, stable for the entity's lifetime.
	ID() int64

	// Address is the entity's in-memory address, used to join it with its
	// ground label.
	Address() int64

	// IsValid reports whether the entity still exists in the scene.
	IsValid() bool

	// GridPos is the entity's position on the world grid.
	GridPos() geom.Vector2

	// Payload returns what the entity carries. Never nil.
	Payload() Payload
}

// ─── Scene queries ───────────────────────────────────────────────────────────

// Player exposes the local player's position.
type Player interface {
	PlayerGridPos() geom.Vector2
}

// Translator maps an item metadata path to its display name.
type Translator interface {
	Translate(path string) string
}

// EntityLabels exposes the text of the game's own label for an entity, when
// one exists.
type EntityLabels interface {
	LabelText(e Entity) (string, bool)
}

// GroundLabel is a snapshot of the game's on-screen label over a lootable
// item.
type GroundLabel struct {
	// EntityAddress joins the label with its [Entity.Address].
	EntityAddress int64

	// Rect is the label's client rectangle in screen space.
	Rect geom.Rect

	// Visible reports whether the label is currently shown.
	Visible bool

	// CanPickUp reports whether the local player may pick the item up.
	CanPickUp bool

	// TimeLeft is the remaining pickup-lock time; zero or negative means no
	// lock is running.
	TimeLeft time.Duration
}

// GroundLabels enumerates the currently visible ground labels.
type GroundLabels interface {
	GroundLabels() []GroundLabel
}

// Panel is the on-screen rectangle and visibility of a UI panel.
type Panel struct {
	Rect    geom.Rect
	Visible bool
}

// Panels exposes the two large side panels that may cover ground labels.
type Panels interface {
	LeftPanel() Panel
	RightPanel() Panel
}

// World bundles every scene query the overlay needs.
type World interface {
	Player
	Translator
	EntityLabels
	GroundLabels
	Panels
}

// ─── Side effects ────────────────────────────────────────────────────────────

// SoundPlayer triggers the alert sound.
type SoundPlayer interface {
	PlayAlert()
}

// MapIcon describes the minimap marker registered for an alert.
type MapIcon struct {
	Texture string
	Color   geom.Color
	Size    int

	// Visible is evaluated by the host each time the minimap is drawn.
	Visible func() bool
}

// IconRegistry owns minimap markers keyed by entity.
type IconRegistry interface {
	SetIcon(e Entity, icon MapIcon)
	RemoveIcon(e Entity)
}

// ─── Events ──────────────────────────────────────────────────────────────────

// Area identifies the area the player has entered.
type Area struct {
	Name string
}

// AreaEvents delivers area transitions. OnAreaChange registers fn and returns
// a function that removes the registration.
type AreaEvents interface {
	OnAreaChange(fn func(Area)) (unsubscribe func())
}
