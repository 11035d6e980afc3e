package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/wall-blaster/audio"
	"github.com/lixenwraith/wall-blaster/config"
	"github.com/lixenwraith/wall-blaster/engine"
	"github.com/lixenwraith/wall-blaster/game"
	"github.com/lixenwraith/wall-blaster/landmark"
	"github.com/lixenwraith/wall-blaster/log"
	"github.com/lixenwraith/wall-blaster/parameter"
	"github.com/lixenwraith/wall-blaster/render"
	"github.com/lixenwraith/wall-blaster/status"
)

var (
	configFlag   = flag.String("config", "", "Path to YAML config")
	headlessFlag = flag.Bool("headless", false, "Run without a terminal view, starts immediately")
	replayFlag   = flag.String("replay", "", "Replay landmark frames from a JSON-lines file")
	noFeedFlag   = flag.Bool("no-feed", false, "Disable the WebSocket landmark feed")
)

// screen is set once the terminal is up so crash handlers can restore it
var screen tcell.Screen

func main() {
	// Panic Recovery: Ensure terminal is reset even if the game crashes
	defer crashGuard()

	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *headlessFlag {
		cfg.Render.Headless = true
	}
	if *replayFlag != "" {
		cfg.Feed.Replay = *replayFlag
	}
	if *noFeedFlag {
		cfg.Feed.Enabled = false
	}

	logger, err := log.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logging: %v\n", err)
		os.Exit(1)
	}

	err = run(cfg, logger)
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "wall-blaster: %v\n", err)
		os.Exit(1)
	}
}

// crashGuard restores the terminal and exits on panic, deferred at the top of every goroutine
func crashGuard() {
	r := recover()
	if r == nil {
		return
	}
	if screen != nil {
		screen.Fini()
	}
	render.EmergencyReset(os.Stdout)
	// \r\n for raw mode compatibility
	fmt.Fprintf(os.Stderr, "\r\n\x1b[31mWALL-BLASTER CRASHED: %v\x1b[0m\r\n", r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
	os.Exit(1)
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		scene    engine.Scene
		terminal *render.TerminalScene
	)
	if cfg.Render.Headless {
		scene = render.NewHeadlessScene()
	} else {
		s, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
		if err := s.Init(); err != nil {
			return fmt.Errorf("init screen: %w", err)
		}
		screen = s
		defer s.Fini()
		s.HideCursor()
		if cfg.Render.Mouse {
			s.EnableMouse(tcell.MouseMotionEvents)
		}
		terminal = render.NewTerminalScene(s, render.DefaultCamera(), logger)
		scene = terminal
	}

	manager := audio.NewManager(cfg.Audio.SampleRate, parameter.AudioBufferDuration, cfg.Audio.Volume, logger)
	if cfg.Audio.Enabled {
		// Failure leaves every voice silent
		_ = manager.Initialize()
	}
	defer manager.Close()

	metrics := status.NewRegistry()
	metrics.Bools.Get("audio.active").Store(manager.Active())

	g, err := game.New(cfg, scene, game.SoundsFromVoices(audio.NewVoices(manager)), metrics, logger)
	if err != nil {
		return err
	}
	defer g.Close()
	if terminal != nil {
		terminal.SetStatus(g.Status)
	}
	logger.Info("session ready",
		zap.String("session", g.ID()),
		zap.Bool("headless", cfg.Render.Headless),
		zap.Bool("audio", manager.Active()),
	)

	frames := make(chan landmark.Frame, parameter.FrameChannelSize)
	controls := make(chan render.Control, parameter.ControlChannelSize)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	grp, gctx := errgroup.WithContext(ctx)

	if cfg.Feed.Enabled {
		server := landmark.NewServer(frames, logger)
		metrics.AddCollector(func(r *status.Registry) {
			st := server.Stats()
			r.Ints.Get("feed.connections").Store(int64(st.Connections))
			r.Ints.Get("feed.received").Store(int64(st.Received))
			r.Ints.Get("feed.delivered").Store(int64(st.Delivered))
			r.Ints.Get("feed.dropped").Store(int64(st.Dropped))
			r.Ints.Get("feed.malformed").Store(int64(st.Malformed))
		})
		grp.Go(func() error {
			defer crashGuard()
			if err := server.ListenAndServe(gctx, cfg.Feed.Addr, cfg.Feed.Path); err != nil {
				logger.Error("landmark feed unavailable, running without launches", zap.Error(err))
			}
			return nil
		})
	}

	grp.Go(func() error {
		defer crashGuard()
		status.Report(gctx, metrics, parameter.MetricsReportInterval, logger.With(zap.String("component", "metrics")))
		return nil
	})

	if cfg.Feed.Replay != "" {
		grp.Go(func() error {
			defer crashGuard()
			return replay(gctx, cfg, frames, controls, logger)
		})
	}

	if screen != nil {
		grp.Go(func() error {
			defer crashGuard()
			var mouse *render.MouseWrists
			if cfg.Render.Mouse {
				mouse = render.NewMouseWrists(time.Now)
			}
			return render.PumpInput(gctx, screen, mouse, controls, frames)
		})
	} else {
		// No keyboard without a terminal
		controls <- render.ControlStart
	}

	grp.Go(func() error {
		defer crashGuard()
		defer cancel()
		return g.Run(gctx, frames, controls)
	})

	if err := grp.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// replay streams a recorded session; headless runs quit once it ends
func replay(ctx context.Context, cfg config.Config, frames chan<- landmark.Frame, controls chan<- render.Control, logger *zap.Logger) error {
	f, err := os.Open(cfg.Feed.Replay)
	if err != nil {
		logger.Error("replay unavailable", zap.String("path", cfg.Feed.Replay), zap.Error(err))
		return nil
	}
	defer f.Close()

	if err := landmark.ReadLines(ctx, f, frames, true); err != nil {
		logger.Error("replay stopped", zap.Error(err))
	} else {
		logger.Info("replay finished", zap.String("path", cfg.Feed.Replay))
	}

	if !cfg.Render.Headless {
		return nil
	}
	// Let the last launches fly before quitting
	select {
	case <-time.After(2 * time.Second):
	case <-ctx.Done():
		return nil
	}
	select {
	case controls <- render.ControlQuit:
	case <-ctx.Done():
	}
	return nil
}
