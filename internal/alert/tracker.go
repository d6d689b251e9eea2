package alert

import (
	"context"
	"log/slog"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/krfshft/PoeHud-Sunbeam/internal/loot"
	"github.com/krfshft/PoeHud-Sunbeam/internal/observe"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/game"
)

// Entry is one live alert.
type Entry struct {
	Entity game.Entity

	// Item is the item the entity carried when the alert was created.
	Item game.ItemEntity

	Properties loot.Properties
	Style      loot.Style
}

// Tracker owns the live alert map and reacts to entity and area events.
// Alerts are kept in insertion order.
type Tracker struct {
	translator game.Translator
	icons      game.IconRegistry
	sound      game.SoundPlayer
	currency   *loot.CurrencySet
	crafting   loot.CraftingTable
	metrics    *observe.Metrics

	settings *Settings
	alerts   *orderedmap.OrderedMap[int64, Entry]
	sounds   SoundCache
	labels   *LabelCache
}

// TrackerDeps are the collaborators of a [Tracker]. Icons, Sound and Metrics
// may be nil.
type TrackerDeps struct {
	Translator game.Translator
	Icons      game.IconRegistry
	Sound      game.SoundPlayer
	Currency   *loot.CurrencySet
	Crafting   loot.CraftingTable
	Labels     *LabelCache
	Metrics    *observe.Metrics
}

// NewTracker returns an empty tracker. settings is read on every event and
// may be replaced in place by the owner between events.
func NewTracker(settings *Settings, deps TrackerDeps) *Tracker {
	return &Tracker{
		translator: deps.Translator,
		icons:      deps.Icons,
		sound:      deps.Sound,
		currency:   deps.Currency,
		crafting:   deps.Crafting,
		metrics:    deps.Metrics,
		settings:   settings,
		alerts:     orderedmap.New[int64, Entry](),
		labels:     deps.Labels,
	}
}

// OnEntityAdded classifies a newly spawned entity and starts tracking it when
// it carries an item worth alerting on.
func (t *Tracker) OnEntityAdded(e game.Entity) {
	if !t.settings.Enable {
		return
	}
	if _, tracked := t.alerts.Get(e.ID()); tracked {
		return
	}
	wi, ok := e.Payload().(game.WorldItem)
	if !ok || wi.Item == nil {
		return
	}

	ctx := context.Background()
	rules := t.settings.Rules

	props := loot.NewProperties(t.translator.Translate(wi.Item.Path()), wi.Item.Info()).
		WithCraftingBase(t.crafting, rules.Crafting)
	worthy := loot.IsWorthAlerting(props, t.currency, rules)
	if t.metrics != nil {
		t.metrics.RecordEvaluation(ctx, worthy)
	}
	if !worthy {
		t.hintCurrency(props)
		return
	}

	style := loot.Resolve(props)
	t.alerts.Set(e.ID(), Entry{Entity: e, Item: wi.Item, Properties: props, Style: style})
	if t.metrics != nil {
		t.metrics.RecordAlertCreated(ctx, props.Rarity.String())
	}

	if t.icons != nil {
		t.icons.SetIcon(e, game.MapIcon{
			Texture: MapIconTexture,
			Color:   style.Color,
			Size:    MapIconSize,
			Visible: func() bool { return t.settings.ShowOnMap },
		})
	}

	if t.settings.PlaySound && !t.sounds.Contains(e.ID()) {
		t.sounds.Add(e.ID())
		if t.sound != nil {
			t.sound.PlayAlert()
		}
		if t.metrics != nil {
			t.metrics.SoundsPlayed.Add(ctx, 1)
		}
	}

	slog.Debug("alert: item tracked",
		"entity_id", e.ID(),
		"name", props.Name,
		"rarity", props.Rarity.String(),
		"icon", style.IconIndex,
	)
}

// hintCurrency logs the closest configured currency name for a currency item
// the list did not match, which is usually a typo in the list.
func (t *Tracker) hintCurrency(props loot.Properties) {
	if !props.IsCurrency || !t.settings.Rules.Currency || t.currency == nil {
		return
	}
	if closest, score, ok := t.currency.Closest(props.Name); ok {
		slog.Debug("alert: currency not in list",
			"name", props.Name,
			"closest", closest,
			"score", score,
		)
	}
}

// OnEntityRemoved stops tracking e and forgets its ground label. Calling it
// for an untracked entity is a no-op.
func (t *Tracker) OnEntityRemoved(e game.Entity) {
	if _, present := t.alerts.Delete(e.ID()); present {
		if t.icons != nil {
			t.icons.RemoveIcon(e)
		}
		if t.metrics != nil {
			t.metrics.RecordAlertRemoved(context.Background())
		}
	}
	if t.labels != nil {
		t.labels.Remove(e.Address())
	}
}

// OnAreaChanged forgets which entities have sounded and every cached ground
// label. Tracked alerts are left to their own removal events.
func (t *Tracker) OnAreaChanged() {
	t.sounds.ClearAll()
	if t.labels != nil {
		t.labels.Clear()
	}
}

// Get returns the alert for entity id.
func (t *Tracker) Get(id int64) (Entry, bool) {
	return t.alerts.Get(id)
}

// Len returns the number of tracked alerts.
func (t *Tracker) Len() int { return t.alerts.Len() }

// Entries returns the tracked alerts in insertion order.
func (t *Tracker) Entries() []Entry {
	out := make([]Entry, 0, t.alerts.Len())
	for pair := t.alerts.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

// Sounded reports whether entity id has sounded during this area visit.
func (t *Tracker) Sounded(id int64) bool { return t.sounds.Contains(id) }
