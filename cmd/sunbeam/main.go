// Command sunbeam runs the item alert engine against a scripted replay scene
// and serves its metrics and health endpoints while doing so.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/krfshft/PoeHud-Sunbeam/internal/app"
	"github.com/krfshft/PoeHud-Sunbeam/internal/config"
	"github.com/krfshft/PoeHud-Sunbeam/internal/health"
	"github.com/krfshft/PoeHud-Sunbeam/internal/observe"
	"github.com/krfshft/PoeHud-Sunbeam/internal/replay"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	// ── CLI flags ──────────────────────────────────────────────────────────────
	configPath := flag.String("config", "sunbeam.yaml", "path to the YAML configuration file")
	scenePath := flag.String("scene", "", "path to the replay scene to play (required)")
	interval := flag.Duration("frame-interval", 0, "delay between replayed frames; 0 plays as fast as possible")
	watch := flag.Bool("watch", true, "reload the configuration file when it changes")
	flag.Parse()

	if *scenePath == "" {
		fmt.Fprintln(os.Stderr, "sunbeam: -scene is required")
		flag.Usage()
		return 2
	}

	// ── Load configuration ────────────────────────────────────────────────────
	cfg, err := config.Load(*configPath)
	haveFile := err == nil
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "sunbeam: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "sunbeam: config file %q not found, using defaults\n", *configPath)
		cfg = config.Default()
	}

	// ── Logger ────────────────────────────────────────────────────────────────
	var level slog.LevelVar
	level.Set(app.ParseLevel(cfg.Server.LogLevel))
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &level})))

	slog.Info("sunbeam starting",
		"version", version,
		"config", *configPath,
		"scene", *scenePath,
		"log_level", cfg.Server.LogLevel,
	)

	scene, err := replay.LoadScene(*scenePath)
	if err != nil {
		slog.Error("failed to load scene", "err", err)
		return 1
	}

	// ── Signal context ────────────────────────────────────────────────────────
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── Telemetry ─────────────────────────────────────────────────────────────
	provider, err := observe.InitProvider(ctx, observe.ProviderConfig{
		ServiceName:       "sunbeam",
		ServiceVersion:    version,
		RuntimeCollectors: cfg.Metrics.RuntimeCollectors,
	})
	if err != nil {
		slog.Error("failed to initialise telemetry", "err", err)
		return 1
	}
	metrics, err := observe.NewMetrics(provider.Meter)
	if err != nil {
		slog.Error("failed to create metrics", "err", err)
		return 1
	}

	hc := health.New()
	srv := startServer(cfg.Metrics.ListenAddr, provider, metrics, hc)

	// ── Engine ────────────────────────────────────────────────────────────────
	world := replay.NewWorld(scene)
	gfx := replay.NewGraphics(slog.Default())

	application, err := app.New(ctx, cfg, app.Host{
		World:    world,
		Graphics: gfx,
		Sound:    world,
		Icons:    world,
		Areas:    world,
	}, app.WithMetrics(metrics), app.WithHealth(hc), app.WithLogLevel(&level))
	if err != nil {
		slog.Error("failed to initialise application", "err", err)
		return 1
	}
	application.Start()

	if *watch && haveFile {
		w, err := config.NewWatcher(*configPath, application.ApplyConfig)
		if err != nil {
			slog.Warn("config watcher disabled", "err", err)
		} else {
			defer w.Stop()
		}
	}

	printStartupSummary(cfg, scene)

	// ── Replay ────────────────────────────────────────────────────────────────
	sum, err := replay.Run(ctx, scene, world, application, replay.WithFrameInterval(*interval))
	code := 0
	switch {
	case errors.Is(err, context.Canceled):
		slog.Info("replay interrupted", "frames", sum.Frames)
	case err != nil:
		slog.Error("replay failed", "err", err)
		code = 1
	default:
		printReplaySummary(sum, gfx.Counts())
	}

	// ── Graceful shutdown ─────────────────────────────────────────────────────
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := application.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown error", "err", err)
		code = 1
	}
	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("metrics server shutdown error", "err", err)
		}
	}
	if err := provider.Shutdown(shutdownCtx); err != nil {
		slog.Warn("telemetry shutdown error", "err", err)
	}
	slog.Info("goodbye")
	return code
}

// ── Metrics and health server ─────────────────────────────────────────────────

// startServer serves /metrics, /healthz and /readyz on addr. It returns nil
// when addr is empty.
func startServer(addr string, p *observe.Provider, m *observe.Metrics, hc *health.Handler) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("GET /metrics", p.Handler())
	hc.Register(mux)

	srv := &http.Server{
		Addr:              addr,
		Handler:           observe.Middleware(m)(mux),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server error", "addr", addr, "err", err)
		}
	}()
	slog.Info("metrics server listening", "addr", addr)
	return srv
}

// ── Summaries ─────────────────────────────────────────────────────────────────

func printStartupSummary(cfg *config.Config, scene *replay.Scene) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║         Sunbeam - startup summary     ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	printRow("Scene", scene.Name)
	printRow("Frames", fmt.Sprint(scene.FrameCount()))
	printRow("Entities", fmt.Sprint(len(scene.Entities)))
	printRow("Alerts", onOff(cfg.Alert.Enable))
	printRow("Border", onOff(cfg.Border.Enable))
	printRow("Sound", onOff(cfg.Alert.PlaySound))
	printRow("Currency list", cfg.Lists.Currency)
	printRow("Crafting list", cfg.Lists.CraftingBases)
	if cfg.Metrics.ListenAddr != "" {
		printRow("Listen addr", cfg.Metrics.ListenAddr)
	} else {
		printRow("Listen addr", "(disabled)")
	}
	fmt.Println("╚═══════════════════════════════════════╝")
}

func printReplaySummary(sum replay.Summary, draws replay.DrawCounts) {
	fmt.Println("╔═══════════════════════════════════════╗")
	fmt.Println("║         Sunbeam - replay summary      ║")
	fmt.Println("╠═══════════════════════════════════════╣")
	printRow("Frames", fmt.Sprint(sum.Frames))
	printRow("Peak alerts", fmt.Sprint(sum.Peak))
	printRow("Last frame", fmt.Sprint(sum.Drawn))
	printRow("Still tracked", fmt.Sprint(sum.Tracked))
	printRow("Sounds played", fmt.Sprint(sum.Sounds))
	printRow("Map icons", fmt.Sprint(sum.Icons))
	printRow("Draw calls", fmt.Sprint(draws.Total()))
	fmt.Println("╚═══════════════════════════════════════╝")
}

func printRow(label, value string) {
	if value == "" {
		value = "(none)"
	}
	if len(value) > 19 {
		value = "…" + value[len(value)-18:]
	}
	fmt.Printf("║  %-14s  : %-19s ║\n", label, value)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
