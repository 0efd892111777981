// Command navdemo drives a scripted navigation session through a serializing
// transition queue, rendered with SDL or run headless.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/BrandonKowalski/serialnav/pkg/serialnav"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/config"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/input"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/locale"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/router"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/runloop"
	"github.com/BrandonKowalski/serialnav/pkg/serialnav/sdlhost"
	"github.com/holoplot/go-evdev"
)

func init() {
	// SDL calls have to stay on the main OS thread.
	runtime.LockOSThread()
}

func main() {
	configPath := flag.String("config", "", "path to a TOML config file")
	headless := flag.Bool("headless", false, "run without an SDL window and exit when the script finishes")
	lang := flag.String("lang", "", "language for status messages, overrides the config file")
	flag.Parse()

	if err := run(*configPath, *headless, *lang); err != nil {
		fmt.Fprintln(os.Stderr, "navdemo:", err)
		os.Exit(1)
	}
}

func run(configPath string, headless bool, lang string) error {
	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			return err
		}
	}
	if lang == "" {
		lang = cfg.Locale.Language
	}

	serialnav.Init(cfg.InitOptions())
	defer serialnav.Close()
	logger := serialnav.GetLogger()

	describer, err := locale.New(lang)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loop := runloop.New(cfg.Loop.FrameInterval)
	home := serialnav.NewController("home")
	nav := router.NewNavigator(loop, home, cfg.NavigatorOptions())
	queue := serialnav.NewQueue(nav, loop, cfg.QueueOptions())

	queue.Observe(func(r serialnav.Result) {
		logger.Info(describer.Result(r),
			"op", r.Descriptor.Kind.String(),
			"target", r.Descriptor.Target.String(),
			"status", r.Status.String(),
			"synthetic", r.Synthetic,
			"seq", r.Seq,
		)
	})

	var wg sync.WaitGroup
	if cfg.BackButton.Device != "" {
		back := input.NewBackButton(input.BackButtonConfig{
			DevicePath: cfg.BackButton.Device,
			ButtonCode: evdev.EvCode(cfg.BackButton.Code),
			CoolDown:   cfg.BackButton.CoolDown,
		}, func() { queue.EnqueuePop(true, nil) })

		if err := back.Watch(ctx, &wg); err != nil {
			logger.Warn("Back button unavailable", "error", err)
		}
	}

	if !headless {
		win, err := sdlhost.Open(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height, sdlhost.WindowOptions{
			Borderless: cfg.Window.Borderless,
			Fullscreen: cfg.Window.Fullscreen,
		}, sdlhost.DefaultTheme())
		if err != nil {
			return err
		}
		defer win.Close()

		loop.OnFrame(func() {
			quit, back := win.PollEvents()
			if back {
				queue.EnqueuePop(true, nil)
			}
			if quit {
				cancel()
			}
			win.Render(nav)
			win.Present()
		})
	}

	last := script(queue, nav)
	if headless {
		go func() {
			select {
			case <-last.Done():
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	err = loop.Run(ctx)
	queue.Close()
	cancel()
	wg.Wait()

	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// script enqueues a browsing session back to back, the way button handlers
// would, and returns the ticket of its last step.
func script(q *serialnav.Queue, nav *router.Navigator) *serialnav.Ticket {
	library := serialnav.NewController("library")
	game := serialnav.NewController("game")
	settings := serialnav.NewController("settings")
	details := serialnav.NewController("details")

	q.EnqueuePush(library, true, func() {
		nav.SetResume(library, 4) // selected row
	})
	q.EnqueuePush(game, true, nil)

	// Settings is a transient sheet: whatever comes next dismisses it first.
	serialnav.SetModalInTransitionSerializing(settings, true)
	q.EnqueuePresent(settings, true, nil)
	q.EnqueuePush(details, true, nil)

	q.EnqueuePopToView(library, true, func() {
		serialnav.GetLogger().Info("Back in library", "selected_row", nav.Resume(library))
	})
	q.EnqueuePopToView(settings, true, nil) // no longer on the stack
	q.EnqueuePopToRoot(true, nil)
	return q.EnqueuePop(true, func() {
		serialnav.GetLogger().Info("Script finished", "top", q.CurrentTop().String())
	})
}
