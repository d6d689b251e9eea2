// Package replay drives the alert engine headlessly from a scripted scene.
//
// A [Scene] describes the player, the entities that may spawn, the game's
// ground labels and side panels, and a timeline of events keyed by frame
// number. [NewWorld] turns a scene into every collaborator the engine needs
// from its host, and [Run] plays the timeline frame by frame.
package replay

import (
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/krfshft/PoeHud-Sunbeam/pkg/game"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/geom"
)

// Scene is a replay script.
type Scene struct {
	Name   string       `yaml:"name"`
	Player geom.Vector2 `yaml:"player"`

	// Frames is the number of frames to render. Zero renders up to and
	// including the last event's frame.
	Frames int `yaml:"frames"`

	Panels   PanelsSpec   `yaml:"panels"`
	Entities []EntitySpec `yaml:"entities"`
	Events   []Event      `yaml:"events"`
}

// EntitySpec describes one entity that events can spawn.
type EntitySpec struct {
	ID int64 `yaml:"id"`

	// Address joins the entity with its ground label. Zero means ID.
	Address int64        `yaml:"address"`
	Pos     geom.Vector2 `yaml:"pos"`

	// Path is the item's metadata path. An empty path spawns a plain,
	// non-item entity.
	Path string `yaml:"path"`

	// Name is the display name Path translates to. Empty means Path.
	Name string `yaml:"name"`

	// Label is the game's own label text, if the game shows one.
	Label string `yaml:"label"`

	Item   game.ItemInfo `yaml:"item"`
	Ground *GroundSpec   `yaml:"ground"`
}

// GroundSpec is the game's ground label over an entity.
type GroundSpec struct {
	Rect      geom.Rect     `yaml:"rect"`
	Visible   bool          `yaml:"visible"`
	CanPickUp bool          `yaml:"can_pick_up"`
	TimeLeft  time.Duration `yaml:"time_left"`
}

// PanelSpec is one side panel.
type PanelSpec struct {
	Rect    geom.Rect `yaml:"rect"`
	Visible bool      `yaml:"visible"`
}

// PanelsSpec holds the two side panels.
type PanelsSpec struct {
	Left  PanelSpec `yaml:"left"`
	Right PanelSpec `yaml:"right"`
}

// Event is everything that happens before one frame is drawn. Within an
// event, actions apply in field order.
type Event struct {
	Frame int `yaml:"frame"`

	// Area enters a new area when non-empty.
	Area string `yaml:"area"`

	// Player moves the player when set.
	Player *geom.Vector2 `yaml:"player"`

	Add    []int64 `yaml:"add"`
	Remove []int64 `yaml:"remove"`

	// Unreadable marks items that the game can no longer read; Readable
	// restores them.
	Unreadable []int64 `yaml:"unreadable"`
	Readable   []int64 `yaml:"readable"`

	// Panels replaces the side panels when set.
	Panels *PanelsSpec `yaml:"panels"`
}

// LoadScene reads and validates the scene file at path.
func LoadScene(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("replay: open %q: %w", path, err)
	}
	defer f.Close()

	s, err := ParseScene(f)
	if err != nil {
		return nil, fmt.Errorf("replay: parse %q: %w", path, err)
	}
	return s, nil
}

// ParseScene decodes and validates a scene. Events are sorted by frame,
// keeping the file order for events of the same frame.
func ParseScene(r io.Reader) (*Scene, error) {
	var s Scene
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("replay: empty scene")
		}
		return nil, fmt.Errorf("replay: decode yaml: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	slices.SortStableFunc(s.Events, func(a, b Event) int { return a.Frame - b.Frame })
	return &s, nil
}

// Validate reports every inconsistency in s at once.
func (s *Scene) Validate() error {
	var errs []error

	if s.Frames < 0 {
		errs = append(errs, fmt.Errorf("frames must not be negative, got %d", s.Frames))
	}

	ids := make(map[int64]bool, len(s.Entities))
	for i, e := range s.Entities {
		if ids[e.ID] {
			errs = append(errs, fmt.Errorf("entities[%d]: duplicate id %d", i, e.ID))
		}
		ids[e.ID] = true
	}

	for i, ev := range s.Events {
		if ev.Frame < 0 {
			errs = append(errs, fmt.Errorf("events[%d]: frame must not be negative, got %d", i, ev.Frame))
		}
		if s.Frames > 0 && ev.Frame >= s.Frames {
			errs = append(errs, fmt.Errorf("events[%d]: frame %d is past the last frame %d", i, ev.Frame, s.Frames-1))
		}
		for _, list := range [][]int64{ev.Add, ev.Remove, ev.Unreadable, ev.Readable} {
			for _, id := range list {
				if !ids[id] {
					errs = append(errs, fmt.Errorf("events[%d]: unknown entity %d", i, id))
				}
			}
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("replay: invalid scene: %w", errors.Join(errs...))
	}
	return nil
}

// FrameCount is the number of frames [Run] renders for s.
func (s *Scene) FrameCount() int {
	if s.Frames > 0 {
		return s.Frames
	}
	n := 0
	for _, ev := range s.Events {
		n = max(n, ev.Frame+1)
	}
	return n
}
