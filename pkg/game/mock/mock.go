// Package mock provides in-memory implementations of the [game] collaborator
// interfaces for use in unit tests.
//
// All mocks are safe for concurrent use. They expose exported fields that the
// test sets to control return values, and they record calls so that tests can
// assert on call counts and arguments.
//
// Typical usage:
//
//	item := &mock.Item{ItemPath: "Metadata/Items/Rings/Ring1", Valid: true,
//	    Data: game.ItemInfo{Rarity: game.RarityRare}}
//	ent := mock.NewItemEntity(1, 0x1000, item)
//	world := &mock.World{Names: map[string]string{item.ItemPath: "Ruby Ring"}}
package mock

import (
	"sync"

	"github.com/krfshft/PoeHud-Sunbeam/pkg/game"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/geom"
)

// ─── Item ─────────────────────────────────────────────────────────────────────

// Item is a mock implementation of [game.ItemEntity].
type Item struct {
	mu sync.Mutex

	// ItemPath is returned by [Item.Path].
	ItemPath string

	// Valid is returned by [Item.IsValid].
	Valid bool

	// Data is returned by [Item.Info].
	Data game.ItemInfo
}

var _ game.ItemEntity = (*Item)(nil)

// Path implements [game.ItemEntity].
func (i *Item) Path() string {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.ItemPath
}

// IsValid implements [game.ItemEntity].
func (i *Item) IsValid() bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.Valid
}

// Info implements [game.ItemEntity].
func (i *Item) Info() game.ItemInfo {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.Data
}

// SetValid changes the item's validity.
func (i *Item) SetValid(v bool) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.Valid = v
}

// ─── Entity ───────────────────────────────────────────────────────────────────

// Entity is a mock implementation of [game.Entity].
type Entity struct {
	mu sync.Mutex

	EntityID int64
	Addr     int64
	Valid    bool
	Pos      geom.Vector2

	// Carried is returned by [Entity.Payload]. A nil value reports [game.Plain].
	Carried game.Payload
}

var _ game.Entity = (*Entity)(nil)

// NewItemEntity returns a valid entity carrying item as a [game.WorldItem].
func NewItemEntity(id, addr int64, item game.ItemEntity) *Entity {
	return &Entity{EntityID: id, Addr: addr, Valid: true, Carried: game.WorldItem{Item: item}}
}

// NewPlainEntity returns a valid entity with no item payload.
func NewPlainEntity(id, addr int64) *Entity {
	return &Entity{EntityID: id, Addr: addr, Valid: true, Carried: game.Plain{}}
}

// ID implements [game.Entity].
func (e *Entity) ID() int64 { return e.EntityID }

// Address implements [game.Entity].
func (e *Entity) Address() int64 { return e.Addr }

// IsValid implements [game.Entity].
func (e *Entity) IsValid() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Valid
}

// GridPos implements [game.Entity].
func (e *Entity) GridPos() geom.Vector2 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.Pos
}

// Payload implements [game.Entity].
func (e *Entity) Payload() game.Payload {
	if e.Carried == nil {
		return game.Plain{}
	}
	return e.Carried
}

// SetValid changes the entity's validity.
func (e *Entity) SetValid(v bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.Valid = v
}

// ─── World ────────────────────────────────────────────────────────────────────

// World is a mock implementation of [game.World].
// Set the exported fields before use; inspect the CallCount fields after.
type World struct {
	mu sync.Mutex

	// PlayerPos is returned by [World.PlayerGridPos].
	PlayerPos geom.Vector2

	// Names maps item paths to display names. Unknown paths translate to
	// themselves.
	Names map[string]string

	// Labels maps entity IDs to the game's label text.
	Labels map[int64]string

	// Ground is returned by [World.GroundLabels].
	Ground []game.GroundLabel

	// Left and Right are returned by the panel queries.
	Left  game.Panel
	Right game.Panel

	// CallCountGroundLabels records how many times GroundLabels was called.
	CallCountGroundLabels int

	// CallCountTranslate records how many times Translate was called.
	CallCountTranslate int
}

var _ game.World = (*World)(nil)

// PlayerGridPos implements [game.Player].
func (w *World) PlayerGridPos() geom.Vector2 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.PlayerPos
}

// Translate implements [game.Translator].
func (w *World) Translate(path string) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.CallCountTranslate++
	if name, ok := w.Names[path]; ok {
		return name
	}
	return path
}

// LabelText implements [game.EntityLabels].
func (w *World) LabelText(e game.Entity) (string, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	text, ok := w.Labels[e.ID()]
	return text, ok
}

// GroundLabels implements [game.GroundLabels]. The returned slice is a copy.
func (w *World) GroundLabels() []game.GroundLabel {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.CallCountGroundLabels++
	out := make([]game.GroundLabel, len(w.Ground))
	copy(out, w.Ground)
	return out
}

// SetGround replaces the ground labels.
func (w *World) SetGround(labels ...game.GroundLabel) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.Ground = labels
}

// LeftPanel implements [game.Panels].
func (w *World) LeftPanel() game.Panel {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Left
}

// RightPanel implements [game.Panels].
func (w *World) RightPanel() game.Panel {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Right
}

// ─── Sound ────────────────────────────────────────────────────────────────────

// Sound is a mock implementation of [game.SoundPlayer].
type Sound struct {
	mu sync.Mutex

	// CallCountPlayAlert records how many times PlayAlert was called.
	CallCountPlayAlert int
}

var _ game.SoundPlayer = (*Sound)(nil)

// PlayAlert implements [game.SoundPlayer].
func (s *Sound) PlayAlert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CallCountPlayAlert++
}

// Plays returns the number of PlayAlert calls so far.
func (s *Sound) Plays() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.CallCountPlayAlert
}

// ─── Icons ────────────────────────────────────────────────────────────────────

// Icons is a mock implementation of [game.IconRegistry].
type Icons struct {
	mu    sync.Mutex
	icons map[int64]game.MapIcon

	// CallCountRemoveIcon records how many times RemoveIcon was called.
	CallCountRemoveIcon int
}

var _ game.IconRegistry = (*Icons)(nil)

// SetIcon implements [game.IconRegistry].
func (r *Icons) SetIcon(e game.Entity, icon game.MapIcon) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.icons == nil {
		r.icons = make(map[int64]game.MapIcon)
	}
	r.icons[e.ID()] = icon
}

// RemoveIcon implements [game.IconRegistry].
func (r *Icons) RemoveIcon(e game.Entity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.CallCountRemoveIcon++
	delete(r.icons, e.ID())
}

// Icon returns the icon registered for entity id.
func (r *Icons) Icon(id int64) (game.MapIcon, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	icon, ok := r.icons[id]
	return icon, ok
}

// Len returns the number of registered icons.
func (r *Icons) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.icons)
}

// ─── Areas ────────────────────────────────────────────────────────────────────

// Areas is a mock implementation of [game.AreaEvents]. Call [Areas.Change] to
// deliver an area transition to every registered handler.
type Areas struct {
	mu       sync.Mutex
	next     int
	handlers map[int]func(game.Area)

	// CallCountUnsubscribe records how many registrations were removed.
	CallCountUnsubscribe int
}

var _ game.AreaEvents = (*Areas)(nil)

// OnAreaChange implements [game.AreaEvents].
func (a *Areas) OnAreaChange(fn func(game.Area)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.handlers == nil {
		a.handlers = make(map[int]func(game.Area))
	}
	id := a.next
	a.next++
	a.handlers[id] = fn

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			delete(a.handlers, id)
			a.CallCountUnsubscribe++
		})
	}
}

// Change delivers area to every registered handler synchronously.
func (a *Areas) Change(area game.Area) {
	a.mu.Lock()
	fns := make([]func(game.Area), 0, len(a.handlers))
	for _, fn := range a.handlers {
		fns = append(fns, fn)
	}
	a.mu.Unlock()

	for _, fn := range fns {
		fn(area)
	}
}

// Subscribers returns the number of active registrations.
func (a *Areas) Subscribers() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.handlers)
}
