package alert

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/krfshft/PoeHud-Sunbeam/internal/loot"
	"github.com/krfshft/PoeHud-Sunbeam/internal/observe"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/game"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/render"
)

// Deps are the host collaborators of a [Plugin]. World and Graphics are
// required; the rest may be nil.
type Deps struct {
	World    game.World
	Graphics render.Graphics
	Sound    game.SoundPlayer
	Icons    game.IconRegistry

	// Currency is the configured currency list. Nil enables the built-in
	// heuristic.
	Currency *loot.CurrencySet

	Crafting loot.CraftingTable
}

// Option configures a [Plugin].
type Option func(*Plugin)

// WithMetrics records engine metrics on m.
func WithMetrics(m *observe.Metrics) Option {
	return func(p *Plugin) { p.metrics = m }
}

// Plugin is the item-alert overlay. All methods except [Plugin.QueueSettings]
// must be called from the host's render/event thread.
type Plugin struct {
	world   game.World
	gfx     render.Graphics
	metrics *observe.Metrics

	settings Settings
	pending  atomic.Pointer[Settings]

	tracker *Tracker
	labels  *LabelCache
	border  *BorderOverlay

	unsubscribe func()
}

// NewPlugin builds a stopped plugin. Call [Plugin.Start] to receive area
// changes.
func NewPlugin(settings Settings, deps Deps, opts ...Option) *Plugin {
	p := &Plugin{
		world:    deps.World,
		gfx:      deps.Graphics,
		settings: settings,
	}
	for _, o := range opts {
		o(p)
	}

	p.labels = NewLabelCache(deps.World, p.metrics)
	p.border = NewBorderOverlay(p.labels, deps.World)
	p.tracker = NewTracker(&p.settings, TrackerDeps{
		Translator: deps.World,
		Icons:      deps.Icons,
		Sound:      deps.Sound,
		Currency:   deps.Currency,
		Crafting:   deps.Crafting,
		Labels:     p.labels,
		Metrics:    p.metrics,
	})
	return p
}

// ─── Lifecycle ───────────────────────────────────────────────────────────────

// Start subscribes to area changes. Starting a started plugin is a no-op.
func (p *Plugin) Start(areas game.AreaEvents) {
	if p.unsubscribe != nil {
		return
	}
	p.unsubscribe = areas.OnAreaChange(p.OnAreaChanged)
	slog.Info("alert: plugin started", "enabled", p.settings.Enable)
}

// Stop removes the area-change subscription. Stopping a stopped plugin is a
// no-op.
func (p *Plugin) Stop() {
	if p.unsubscribe == nil {
		return
	}
	p.unsubscribe()
	p.unsubscribe = nil
	slog.Info("alert: plugin stopped", "alerts", p.tracker.Len())
}

// ─── Events ──────────────────────────────────────────────────────────────────

// OnEntityAdded handles a newly spawned world entity.
func (p *Plugin) OnEntityAdded(e game.Entity) {
	p.adoptPending()
	p.tracker.OnEntityAdded(e)
}

// OnEntityRemoved handles a despawned world entity. It is idempotent.
func (p *Plugin) OnEntityRemoved(e game.Entity) {
	p.tracker.OnEntityRemoved(e)
}

// OnAreaChanged handles an area transition.
func (p *Plugin) OnAreaChanged(area game.Area) {
	p.tracker.OnAreaChanged()
	slog.Debug("alert: area changed", "area", area.Name, "alerts", p.tracker.Len())
}

// ─── Settings ────────────────────────────────────────────────────────────────

// QueueSettings hands new settings to the plugin from any goroutine. They
// take effect at the start of the next frame or event.
func (p *Plugin) QueueSettings(s Settings) {
	p.pending.Store(&s)
}

// Settings returns the settings currently in effect.
func (p *Plugin) Settings() Settings {
	return p.settings
}

func (p *Plugin) adoptPending() {
	if s := p.pending.Swap(nil); s != nil {
		p.settings = *s
		slog.Debug("alert: settings applied")
	}
}

// Tracker exposes the plugin's alert tracker.
func (p *Plugin) Tracker() *Tracker { return p.tracker }

// Labels exposes the plugin's ground-label cache.
func (p *Plugin) Labels() *LabelCache { return p.labels }

// ─── Frame ───────────────────────────────────────────────────────────────────

// Render draws one overlay frame and returns its layout. Alerts whose entity
// is no longer valid are skipped, as are alerts whose item cannot currently
// be read and that have no game label to show instead.
func (p *Plugin) Render() Frame {
	start := time.Now()
	p.adoptPending()

	s := &p.settings
	if !s.Enable || !s.ShowText {
		return Frame{}
	}

	player := p.world.PlayerGridPos()
	entries := p.tracker.Entries()
	items := make([]Item, 0, len(entries))
	for _, e := range entries {
		if !e.Entity.IsValid() {
			continue
		}
		text, ok := p.labelText(e)
		if !ok {
			continue
		}
		if s.Border.Enable {
			p.border.Draw(p.gfx, s.Border, e.Entity.Address())
		}
		items = append(items, Item{
			Text:  text,
			Style: e.Style,
			Delta: e.Entity.GridPos().Sub(player),
		})
	}

	layout := Layout{Settings: s.Layout, TextSize: s.TextSize}
	frame := layout.Stack(p.gfx, items)
	layout.Draw(p.gfx, frame)

	if p.metrics != nil {
		p.metrics.RecordFrame(context.Background(), time.Since(start).Seconds(), len(frame.Boxes))
	}
	return frame
}

// labelText prefers the game's own label text for the entity.
func (p *Plugin) labelText(e Entry) (string, bool) {
	if text, ok := p.world.LabelText(e.Entity); ok {
		return text, true
	}
	if e.Item == nil || !e.Item.IsValid() {
		return "", false
	}
	return e.Style.Text, true
}
