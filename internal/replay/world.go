package replay

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/krfshft/PoeHud-Sunbeam/pkg/game"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/geom"
)

// ─── Items and entities ─────────────────────────────────────────────────────

type item struct {
	w    *World
	path string
	info game.ItemInfo
	id   int64
}

func (i *item) Path() string        { return i.path }
func (i *item) Info() game.ItemInfo { return i.info }

func (i *item) IsValid() bool {
	i.w.mu.Lock()
	defer i.w.mu.Unlock()
	return !i.w.unreadable[i.id]
}

type entity struct {
	w       *World
	spec    EntitySpec
	payload game.Payload
}

func (e *entity) ID() int64             { return e.spec.ID }
func (e *entity) GridPos() geom.Vector2 { return e.spec.Pos }
func (e *entity) Payload() game.Payload { return e.payload }

func (e *entity) Address() int64 {
	if e.spec.Address != 0 {
		return e.spec.Address
	}
	return e.spec.ID
}

func (e *entity) IsValid() bool {
	e.w.mu.Lock()
	defer e.w.mu.Unlock()
	return e.w.spawned[e.spec.ID]
}

var (
	_ game.ItemEntity = (*item)(nil)
	_ game.Entity     = (*entity)(nil)
)

// ─── World ──────────────────────────────────────────────────────────────────

// World is the scripted scene. It implements [game.World] together with the
// host side effects: [game.SoundPlayer], [game.IconRegistry] and
// [game.AreaEvents]. It is safe for concurrent use.
type World struct {
	mu sync.Mutex

	player   geom.Vector2
	panels   PanelsSpec
	entities map[int64]*entity
	names    map[string]string

	spawned    map[int64]bool
	unreadable map[int64]bool
	order      []int64

	icons   map[int64]game.MapIcon
	sounds  int
	area    string
	nextSub int
	subs    map[int]func(game.Area)
}

var (
	_ game.World        = (*World)(nil)
	_ game.SoundPlayer  = (*World)(nil)
	_ game.IconRegistry = (*World)(nil)
	_ game.AreaEvents   = (*World)(nil)
)

// NewWorld builds the initial state of s. No entity is spawned until an
// event adds it.
func NewWorld(s *Scene) *World {
	w := &World{
		player:     s.Player,
		panels:     s.Panels,
		entities:   make(map[int64]*entity, len(s.Entities)),
		names:      make(map[string]string),
		spawned:    make(map[int64]bool),
		unreadable: make(map[int64]bool),
		icons:      make(map[int64]game.MapIcon),
		subs:       make(map[int]func(game.Area)),
	}
	for _, spec := range s.Entities {
		e := &entity{w: w, spec: spec, payload: game.Plain{}}
		if spec.Path != "" {
			e.payload = game.WorldItem{Item: &item{w: w, path: spec.Path, info: spec.Item, id: spec.ID}}
			if spec.Name != "" {
				w.names[spec.Path] = spec.Name
			}
		}
		w.entities[spec.ID] = e
	}
	return w
}

// Entity returns the scripted entity with the given id.
func (w *World) Entity(id int64) (game.Entity, bool) {
	e, ok := w.entities[id]
	return e, ok
}

// Spawn marks the entity as present in the scene.
func (w *World) Spawn(id int64) (game.Entity, error) {
	e, ok := w.entities[id]
	if !ok {
		return nil, fmt.Errorf("replay: unknown entity %d", id)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.spawned[id] {
		w.spawned[id] = true
		w.order = append(w.order, id)
	}
	return e, nil
}

// Despawn marks the entity as gone from the scene.
func (w *World) Despawn(id int64) (game.Entity, error) {
	e, ok := w.entities[id]
	if !ok {
		return nil, fmt.Errorf("replay: unknown entity %d", id)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.spawned, id)
	for i, v := range w.order {
		if v == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return e, nil
}

// SetReadable changes whether the game can read the entity's item.
func (w *World) SetReadable(id int64, readable bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if readable {
		delete(w.unreadable, id)
		return
	}
	w.unreadable[id] = true
}

// MovePlayer sets the player's grid position.
func (w *World) MovePlayer(pos geom.Vector2) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.player = pos
}

// SetPanels replaces the side panels.
func (w *World) SetPanels(p PanelsSpec) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.panels = p
}

// EnterArea despawns every entity, notifies area subscribers synchronously
// and returns the despawned entities so the caller can deliver their
// removal events.
func (w *World) EnterArea(name string) []game.Entity {
	w.mu.Lock()
	w.area = name
	gone := make([]game.Entity, 0, len(w.order))
	for _, id := range w.order {
		gone = append(gone, w.entities[id])
	}
	clear(w.spawned)
	w.order = w.order[:0]
	subs := make([]func(game.Area), 0, len(w.subs))
	for _, fn := range w.subs {
		subs = append(subs, fn)
	}
	w.mu.Unlock()

	slog.Debug("replay: area entered", "area", name, "despawned", len(gone))
	for _, fn := range subs {
		fn(game.Area{Name: name})
	}
	return gone
}

// Area returns the name of the current area.
func (w *World) Area() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.area
}

// Sounds returns how many alert sounds were played.
func (w *World) Sounds() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sounds
}

// Icons returns the number of minimap icons currently registered.
func (w *World) Icons() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.icons)
}

// Icon returns the minimap icon registered for entity id.
func (w *World) Icon(id int64) (game.MapIcon, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	icon, ok := w.icons[id]
	return icon, ok
}

// ─── game.World ─────────────────────────────────────────────────────────────

// PlayerGridPos implements [game.Player].
func (w *World) PlayerGridPos() geom.Vector2 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.player
}

// Translate implements [game.Translator]. Unknown paths translate to
// themselves.
func (w *World) Translate(path string) string {
	if name, ok := w.names[path]; ok {
		return name
	}
	return path
}

// LabelText implements [game.EntityLabels].
func (w *World) LabelText(e game.Entity) (string, bool) {
	spec, ok := w.entities[e.ID()]
	if !ok || spec.spec.Label == "" {
		return "", false
	}
	return spec.spec.Label, true
}

// GroundLabels implements [game.GroundLabels]. Only spawned entities with a
// ground label are listed, in spawn order.
func (w *World) GroundLabels() []game.GroundLabel {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]game.GroundLabel, 0, len(w.order))
	for _, id := range w.order {
		e := w.entities[id]
		g := e.spec.Ground
		if g == nil {
			continue
		}
		out = append(out, game.GroundLabel{
			EntityAddress: e.Address(),
			Rect:          g.Rect,
			Visible:       g.Visible,
			CanPickUp:     g.CanPickUp,
			TimeLeft:      g.TimeLeft,
		})
	}
	return out
}

// LeftPanel implements [game.Panels].
func (w *World) LeftPanel() game.Panel {
	w.mu.Lock()
	defer w.mu.Unlock()
	return game.Panel{Rect: w.panels.Left.Rect, Visible: w.panels.Left.Visible}
}

// RightPanel implements [game.Panels].
func (w *World) RightPanel() game.Panel {
	w.mu.Lock()
	defer w.mu.Unlock()
	return game.Panel{Rect: w.panels.Right.Rect, Visible: w.panels.Right.Visible}
}

// ─── Host side effects ──────────────────────────────────────────────────────

// PlayAlert implements [game.SoundPlayer].
func (w *World) PlayAlert() {
	w.mu.Lock()
	w.sounds++
	w.mu.Unlock()
	slog.Debug("replay: alert sound")
}

// SetIcon implements [game.IconRegistry].
func (w *World) SetIcon(e game.Entity, icon game.MapIcon) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.icons[e.ID()] = icon
}

// RemoveIcon implements [game.IconRegistry].
func (w *World) RemoveIcon(e game.Entity) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.icons, e.ID())
}

// OnAreaChange implements [game.AreaEvents].
func (w *World) OnAreaChange(fn func(game.Area)) func() {
	w.mu.Lock()
	defer w.mu.Unlock()
	id := w.nextSub
	w.nextSub++
	w.subs[id] = fn
	return func() {
		w.mu.Lock()
		defer w.mu.Unlock()
		delete(w.subs, id)
	}
}
