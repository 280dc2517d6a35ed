// Command showreel presents an animated character on a lit stage while the camera tours a fixed
// list of viewpoints. Clips are switched with the number keys or the HTTP control panel.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Carmen-Shannon/oxy-showreel/engine"
	"github.com/Carmen-Shannon/oxy-showreel/engine/animator"
	"github.com/Carmen-Shannon/oxy-showreel/engine/camera"
	"github.com/Carmen-Shannon/oxy-showreel/engine/driver"
	"github.com/Carmen-Shannon/oxy-showreel/engine/loader"
	"github.com/Carmen-Shannon/oxy-showreel/engine/panel"
	"github.com/Carmen-Shannon/oxy-showreel/engine/renderer"
	"github.com/Carmen-Shannon/oxy-showreel/engine/viewpoint"
	"github.com/Carmen-Shannon/oxy-showreel/engine/window"
	"github.com/Carmen-Shannon/oxy-showreel/internal/config"
	"github.com/Carmen-Shannon/oxy-showreel/internal/input"
	"github.com/Carmen-Shannon/oxy-showreel/internal/logger"
	"github.com/Carmen-Shannon/oxy-showreel/internal/showreel"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (defaults are used when empty)")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "showreel:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Development); err != nil {
		return err
	}
	defer func() { _ = logger.Log.Sync() }()

	// ── Window + renderer ──────────────────────────────────────────────
	win, err := window.NewWindow(
		window.WithTitle(cfg.Window.Title),
		window.WithSize(cfg.Window.Width, cfg.Window.Height),
		window.WithMinSize(320, 240),
	)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	presentMode := renderer.PresentModeUncapped
	if cfg.Window.VSync {
		presentMode = renderer.PresentModeVSync
	}
	msaa := renderer.MSAAOff
	if cfg.Window.MSAA {
		msaa = renderer.MSAA4x
	}
	r, err := renderer.NewRenderer(renderer.BackendTypeWGPU, win,
		renderer.WithPresentMode(presentMode),
		renderer.WithMSAA(msaa),
	)
	if err != nil {
		_ = win.Close()
		return fmt.Errorf("create renderer: %w", err)
	}
	defer r.Release()

	// ── Camera + stage ─────────────────────────────────────────────────
	c := cfg.Camera
	orbit := camera.NewCameraController(
		camera.WithTarget(c.Target[0], c.Target[1], c.Target[2]),
		camera.WithPosition(c.Start[0], c.Start[1], c.Start[2]),
		camera.WithDamping(c.Damping),
		camera.WithRadiusBounds(0.5, 50),
		camera.WithMouseSensitivity(0.005),
		camera.WithZoomSpeed(0.5),
		camera.WithPanSpeed(2),
	)
	cam := camera.NewCamera(
		camera.WithFov(mgl32.DegToRad(c.Fov)),
		camera.WithAspect(float32(win.Width())/float32(win.Height())),
		camera.WithNear(c.Near),
		camera.WithFar(c.Far),
		camera.WithController(orbit),
	)
	stage := showreel.NewStage(cfg, cam)

	// ── Frame driver ───────────────────────────────────────────────────
	d := driver.NewDriver(
		driver.WithClock(win),
		driver.WithRenderer(r),
		driver.WithScene(stage),
		driver.WithCamera(cam),
		driver.WithLogger(logger.Log.Named("driver")),
	)

	seq, err := viewpoint.NewSequencer(showreel.Viewpoints(cfg), orbit,
		viewpoint.WithLogger(logger.Log.Named("viewpoint")),
	)
	if err != nil {
		return err
	}
	anim := animator.NewController(len(cfg.Auxiliary),
		animator.WithFadeDuration(cfg.Animation.Fade),
		animator.WithTimeScale(cfg.Animation.TimeScale),
		animator.WithMaxFadingOut(cfg.Animation.MaxFadingOut),
		animator.WithLogger(logger.Log.Named("animator")),
	)

	var reel showreel.Showreel
	controls := panel.NewPanel(
		panel.WithDispatcher(d.Post),
		panel.WithStatus(func() any { return reel.Status() }),
		panel.WithLogger(logger.Log.Named("panel")),
	)
	keys := input.NewInput(orbit, controls)
	keys.Bind(win)

	// Registration order is the per-frame update order.
	d.AddUpdater(seq)
	d.AddUpdater(anim)
	d.AddUpdater(keys)
	d.AddUpdater(orbit)
	d.AddUpdater(cam)

	// ── Assets ─────────────────────────────────────────────────────────
	assets := loader.NewAsyncLoader(
		loader.NewLoader(loader.BackendTypeGLTF, loader.WithLogger(logger.Log.Named("loader"))),
		d.Post,
		loader.WithWorkers(cfg.Loader.Workers),
		loader.WithAsyncLogger(logger.Log.Named("loader")),
	)
	auxPaths := make([]string, len(cfg.Auxiliary))
	for i, a := range cfg.Auxiliary {
		auxPaths[i] = a.Path
	}
	ch := cfg.Character
	reel = showreel.NewShowreel(assets, stage, anim, controls, ch.Path,
		showreel.WithCharacterTransform(ch.Scale, ch.Position[0], ch.Position[1], ch.Position[2]),
		showreel.WithAuxiliary(auxPaths...),
		showreel.WithSequencer(seq),
		showreel.WithLogger(logger.Log.Named("showreel")),
	)
	if err := reel.Start(); err != nil {
		return err
	}
	if err := seq.Start(); err != nil {
		return err
	}

	// ── Run ────────────────────────────────────────────────────────────
	eng := engine.NewEngine(
		engine.WithWindow(win),
		engine.WithDriver(d),
		engine.WithProfiling(cfg.Window.Profile),
		engine.WithRenderFrameLimit(cfg.Window.FrameLimit),
		engine.WithLogger(logger.Log),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	if cfg.Panel.Addr != "" {
		srv := &http.Server{
			Addr:              cfg.Panel.Addr,
			Handler:           panel.NewHandler(controls, logger.Log.Named("http")),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Log.Info("control panel listening", zap.String("addr", cfg.Panel.Addr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				eng.Quit()
				return fmt.Errorf("control panel: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	// The message loop must own the main thread.
	runErr := eng.Run()
	cancel()
	if err := g.Wait(); err != nil {
		return err
	}
	logger.Log.Info("showreel stopped", zap.Uint64("frames", d.Frames()))
	return runErr
}
