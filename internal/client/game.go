// Package client runs the game in an ebiten window.
package client

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand/v2"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/drop/ecs"
	"github.com/plus3/drop/ecs/debugui"
	debugui_ebiten "github.com/plus3/drop/ecs/debugui/ebiten"
	"github.com/plus3/drop/internal/assets"
	"github.com/plus3/drop/internal/audio"
	"github.com/plus3/drop/internal/config"
	"github.com/plus3/drop/internal/drop"
	"github.com/plus3/drop/internal/settings"
	"github.com/plus3/drop/internal/storage"
)

// Options configures a Game.
type Options struct {
	Config   config.Config
	Seed     uint64
	Store    *storage.Store
	Settings *settings.Manager
	Logger   *log.Logger
}

// Game implements ebiten.Game around a drop.World.
type Game struct {
	cfg      config.Config
	world    *drop.World
	render   *ecs.Scheduler
	screen   *ecs.Singleton[Screen]
	mixer    *audio.Mixer
	imgui    *debugui_ebiten.ImguiBackend
	store    *storage.Store
	settings *settings.Manager
	logger   *log.Logger

	seed    uint64
	best    int64
	started time.Time
	closed  bool
}

// New loads assets and builds the world. With cfg.Debug.Overlay set it also creates the
// ImGui backend, which owns the window.
func New(opts Options) (*Game, error) {
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	bindings, err := ParseBindings(cfg.Controls)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	prefs := opts.Settings
	if prefs == nil {
		prefs = settings.NewManager(nil, logger)
	}

	g := &Game{
		cfg:      cfg,
		store:    opts.Store,
		settings: prefs,
		logger:   logger,
		seed:     opts.Seed,
		started:  time.Now(),
	}

	fsys := assetFS(cfg.Assets.Dir, logger)
	images := assets.NewImages(fsys, logger.WithPrefix("assets"))

	bank := cfg.SoundBank()
	library := audio.NewLibrary(fsys, cfg.Audio.SampleRate, bank, logger.WithPrefix("audio"))
	library.Preload()
	g.mixer = audio.NewMixer(library, prefs, logger.WithPrefix("audio"))

	debug := cfg.Debug.Overlay || prefs.Get().DebugOverlay
	if debug {
		backend := debugui_ebiten.NewImguiBackend(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
		g.imgui = &backend
	}

	overlays := []ecs.System{&HotkeySystem{
		Settings: prefs,
		Changed:  g.mixer.Refresh,
		Logger:   logger,
	}}
	if debug {
		overlays = append(overlays, &debugui.ImguiSystem{})
	}

	g.world, err = drop.NewWorld(drop.Options{
		Rules:    cfg.Rules(),
		Sounds:   bank,
		Rand:     rand.New(rand.NewPCG(opts.Seed, opts.Seed)),
		Audio:    g.mixer,
		Logger:   logger,
		Input:    &InputSystem{Bindings: bindings, Device: &EbitenDevice{}},
		Overlays: overlays,
		Register: registerComponents,
	})
	if err != nil {
		return nil, err
	}

	store := g.world.Storage()
	store.AddSingleton(debugui.ImguiInputState{})
	store.AddSingleton(debugui.Overlay{Visible: debug})
	if debug {
		stats := debugui.NewPerformanceStats(g.world.Scheduler(), 120)
		store.Spawn(stats.Item())
		panel := &statePanel{world: g.world, settings: prefs, changed: g.mixer.Refresh}
		store.Spawn(panel.Item())
	}

	g.screen = ecs.NewSingleton[Screen](store)
	g.render = ecs.NewScheduler(store)
	g.render.Register(&RenderSystem{
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		Images: images,
		HUD:    g.hud,
	})

	if g.store != nil {
		best, err := g.store.HighScore(storage.ModePlay)
		if err != nil {
			logger.Warn("could not read the best score", "error", err)
		}
		g.best = best
	}

	images.Preload(
		TextureFile(drop.TextureBucket),
		TextureFile(drop.TextureRaindrop),
		TextureFile(drop.TextureStone),
		TextureFile(drop.TextureSponge),
	)
	return g, nil
}

func registerComponents(registry *ecs.ComponentRegistry) {
	debugui.RegisterComponents(registry)
	ecs.RegisterComponent[Screen](registry)
}

// assetFS opens dir, or returns nil when it does not exist so every asset falls back.
func assetFS(dir string, logger *log.Logger) fs.FS {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		logger.Warn("asset directory not found, using placeholders", "dir", dir)
		return nil
	}
	return os.DirFS(dir)
}

func (g *Game) frameSeconds() float64 {
	return 1 / float64(g.cfg.Window.TPS)
}

func (g *Game) World() *drop.World {
	return g.world
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return ebiten.Termination
	}

	if g.imgui != nil {
		g.imgui.BeginFrame()
	}
	g.world.Step(g.frameSeconds())
	if g.imgui != nil {
		g.imgui.EndFrame()
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.screen.Get().Image = screen
	g.render.Once(0)

	if g.imgui != nil {
		g.imgui.Overlay(screen)
	}
}

func (g *Game) hud() HUD {
	return HUD{
		Best:  g.best,
		Muted: g.settings.Get().Muted(),
		Debug: g.imgui != nil,
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imgui != nil {
		g.imgui.Layout(outsideWidth, outsideHeight)
	}
	return g.cfg.Window.Width, g.cfg.Window.Height
}

// Session describes the run so far.
func (g *Game) Session() storage.Session {
	return storage.Session{
		Mode:     storage.ModePlay,
		Score:    g.world.Score(),
		Frames:   g.world.Scheduler().Frames(),
		Duration: time.Since(g.started),
		Seed:     g.seed,
	}
}

// Close records the session and releases audio. It is safe to call more than once.
func (g *Game) Close() error {
	if g.closed {
		return nil
	}
	g.closed = true

	var errs []error
	if g.store != nil {
		session := g.Session()
		if _, err := g.store.SaveSession(session); err != nil {
			g.logger.Warn("could not record the session", "error", err)
		} else {
			g.logger.Info("session recorded", "score", session.Score, "frames", session.Frames)
		}
	}
	if err := g.settings.Save(); err != nil {
		g.logger.Warn("could not save settings", "error", err)
	}
	if err := g.mixer.Close(); err != nil {
		errs = append(errs, fmt.Errorf("client: %w", err))
	}
	return errors.Join(errs...)
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	g, err := New(opts)
	if err != nil {
		return err
	}

	window := opts.Config.Window
	if g.imgui == nil {
		ebiten.SetWindowTitle(window.Title)
		ebiten.SetWindowSize(window.Width, window.Height)
	}
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(window.TPS)

	runErr := ebiten.RunGame(g)
	if errors.Is(runErr, ebiten.Termination) {
		runErr = nil
	}
	return errors.Join(runErr, g.Close())
}
