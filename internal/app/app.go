// Package app wires the Sunbeam subsystems into a running engine.
//
// New loads the configured lists and builds the alert plugin on top of the
// host's collaborators. Start subscribes it to area changes, Frame renders
// one overlay frame, ApplyConfig forwards hot-reloaded settings, and
// Shutdown tears everything down.
//
// Frame and the plugin's entity events belong to the host's render thread.
// ApplyConfig may be called from any goroutine, typically a config watcher.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	"github.com/krfshft/PoeHud-Sunbeam/internal/alert"
	"github.com/krfshft/PoeHud-Sunbeam/internal/config"
	"github.com/krfshft/PoeHud-Sunbeam/internal/health"
	"github.com/krfshft/PoeHud-Sunbeam/internal/loot"
	"github.com/krfshft/PoeHud-Sunbeam/internal/observe"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/game"
	"github.com/krfshft/PoeHud-Sunbeam/pkg/render"
)

// FrameStaleAfter is how long /readyz tolerates no rendered frame.
const FrameStaleAfter = 5 * time.Second

// Host bundles the collaborators supplied by the program embedding Sunbeam.
// World and Graphics are required.
type Host struct {
	World    game.World
	Graphics render.Graphics
	Sound    game.SoundPlayer
	Icons    game.IconRegistry
	Areas    game.AreaEvents
}

// App owns the alert plugin and its startup data.
type App struct {
	host     Host
	metrics  *observe.Metrics
	health   *health.Handler
	logLevel *slog.LevelVar

	mu  sync.Mutex
	cfg *config.Config

	currency *loot.CurrencySet
	crafting loot.CraftingTable
	plugin   *alert.Plugin

	started   atomic.Bool
	lastFrame atomic.Int64
	stopOnce  sync.Once
}

// Option is a functional option for New.
type Option func(*App)

// WithMetrics records engine metrics on m.
func WithMetrics(m *observe.Metrics) Option {
	return func(a *App) { a.metrics = m }
}

// WithHealth registers the engine's readiness checks on h.
func WithHealth(h *health.Handler) Option {
	return func(a *App) { a.health = h }
}

// WithLogLevel lets ApplyConfig change the process log level through v.
func WithLogLevel(v *slog.LevelVar) Option {
	return func(a *App) { a.logLevel = v }
}

// ─── New ─────────────────────────────────────────────────────────────────────

// New loads the configured lists concurrently and builds a stopped engine.
func New(ctx context.Context, cfg *config.Config, host Host, opts ...Option) (*App, error) {
	if host.World == nil || host.Graphics == nil {
		return nil, errors.New("app: host world and graphics are required")
	}
	a := &App{host: host, cfg: cfg}
	for _, o := range opts {
		o(a)
	}

	if err := a.loadLists(ctx); err != nil {
		return nil, err
	}

	var pluginOpts []alert.Option
	if a.metrics != nil {
		pluginOpts = append(pluginOpts, alert.WithMetrics(a.metrics))
	}
	a.plugin = alert.NewPlugin(cfg.Settings(), alert.Deps{
		World:    host.World,
		Graphics: host.Graphics,
		Sound:    host.Sound,
		Icons:    host.Icons,
		Currency: a.currency,
		Crafting: a.crafting,
	}, pluginOpts...)

	if a.health != nil {
		a.health.Add("engine", a.Ready)
		a.health.Add("frames", health.Recent(a.LastFrame, FrameStaleAfter))
	}
	return a, nil
}

// loadLists reads the currency list and the crafting-base table in parallel.
// Missing files are not errors.
func (a *App) loadLists(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ctx, span := observe.StartSpan(gctx, "app.load_currency")
		defer span.End()

		path := a.cfg.Lists.Currency
		set, err := loot.LoadCurrencyFile(path)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("app: currency list: %w", err)
		}
		a.currency = set
		if set == nil {
			observe.Logger(ctx).Info("currency list not found; using built-in heuristic", "path", path)
			return nil
		}
		span.SetAttributes(attribute.Int("entries", set.Len()))
		observe.Logger(ctx).Info("currency list loaded", "path", path, "entries", set.Len())
		return nil
	})

	g.Go(func() error {
		ctx, span := observe.StartSpan(gctx, "app.load_crafting_bases")
		defer span.End()

		path := a.cfg.Lists.CraftingBases
		table, err := loot.LoadCraftingBasesFile(path)
		if err != nil {
			span.RecordError(err)
			return fmt.Errorf("app: crafting bases: %w", err)
		}
		a.crafting = table
		span.SetAttributes(attribute.Int("entries", len(table)))
		observe.Logger(ctx).Info("crafting bases loaded", "path", path, "entries", len(table))
		return nil
	})

	return g.Wait()
}

// ─── Lifecycle ───────────────────────────────────────────────────────────────

// Start subscribes the plugin to area changes when the host delivers them.
func (a *App) Start() {
	if a.host.Areas != nil {
		a.plugin.Start(a.host.Areas)
	}
	a.started.Store(true)
}

// Frame renders one overlay frame.
func (a *App) Frame() alert.Frame {
	f := a.plugin.Render()
	a.lastFrame.Store(time.Now().UnixNano())
	return f
}

// LastFrame returns when Frame last ran, or the zero time.
func (a *App) LastFrame() time.Time {
	n := a.lastFrame.Load()
	if n == 0 {
		return time.Time{}
	}
	return time.Unix(0, n)
}

// Plugin returns the alert plugin so the host can deliver entity events.
func (a *App) Plugin() *alert.Plugin { return a.plugin }

// Currency returns the loaded currency list; nil when no file was found.
func (a *App) Currency() *loot.CurrencySet { return a.currency }

// Crafting returns the loaded crafting-base table.
func (a *App) Crafting() loot.CraftingTable { return a.crafting }

// Ready reports whether the engine has started and not yet shut down.
func (a *App) Ready(context.Context) error {
	if !a.started.Load() {
		return errors.New("not started")
	}
	return nil
}

// Config returns the configuration currently applied.
func (a *App) Config() *config.Config {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.cfg
}

// ApplyConfig applies the hot-reloadable part of a configuration change.
// Plugin settings take effect at the next frame. Changes to lists or the
// metrics endpoint are logged and wait for a restart.
func (a *App) ApplyConfig(old, new *config.Config) {
	d := config.Diff(old, new)
	if !d.Any() {
		return
	}

	if d.LogLevelChanged && a.logLevel != nil {
		a.logLevel.Set(ParseLevel(d.NewLogLevel))
		slog.Info("app: log level changed", "level", d.NewLogLevel)
	}
	if d.SettingsChanged {
		a.plugin.QueueSettings(new.Settings())
		slog.Info("app: alert settings queued for next frame")
	}
	if d.ListsChanged {
		slog.Warn("app: list paths changed; restart to reload lists",
			"currency", new.Lists.Currency, "crafting_bases", new.Lists.CraftingBases)
	}
	if d.MetricsChanged {
		slog.Warn("app: metrics settings changed; restart to apply", "listen_addr", new.Metrics.ListenAddr)
	}

	a.mu.Lock()
	a.cfg = new
	a.mu.Unlock()
}

// Shutdown stops the plugin. Later calls are no-ops. The plugin is stopped
// synchronously, so call Shutdown from the thread that drives Frame. It
// returns ctx's error if ctx ended before the engine stopped.
func (a *App) Shutdown(ctx context.Context) error {
	a.stopOnce.Do(func() {
		a.started.Store(false)
		a.plugin.Stop()
		slog.Info("app: shutdown complete", "alerts", a.plugin.Tracker().Len())
	})
	return ctx.Err()
}

// ParseLevel maps a config log level to its slog level. Unknown and empty
// levels map to info.
func ParseLevel(l config.LogLevel) slog.Level {
	switch l {
	case config.LogDebug:
		return slog.LevelDebug
	case config.LogWarn:
		return slog.LevelWarn
	case config.LogError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
