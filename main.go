package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"time"

	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/massung/chip8vm/chip8"
	"github.com/massung/chip8vm/internal/session"
	"github.com/massung/chip8vm/internal/statsview"
	"github.com/massung/chip8vm/internal/termui"
)

var (
	version = "0.2.0"
	commit  = ""
	date    = ""
)

var (
	/// The running CHIP-8 session.
	///
	Session *session.Session

	/// The SDL Window and Renderer.
	///
	Window   *sdl.Window
	Renderer *sdl.Renderer

	/// Window pixels per CHIP-8 pixel.
	///
	Scale int32
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfg, err := session.ParseFlags(filepath.Base(os.Args[0]), os.Args[1:])
	if err != nil {
		var usage *session.UsageError

		if errors.As(err, &usage) {
			printBanner()

			if msg := usage.Error(); msg != "" {
				fmt.Fprintf(os.Stderr, "error: %s\n\n", msg)
			}

			usage.ShowUsage(os.Stderr)
			os.Exit(2)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if !cfg.Quiet && !cfg.Headless {
		printBanner()
	}

	log := cfg.NewLogger(os.Stderr)

	if cfg.Stats {
		if statsview.Available() {
			statsview.Launch(os.Stderr)
		} else {
			log.Warn("built without statsview support")
		}
	}

	Session = session.New(cfg, log)

	code := 0

	if err := run(cfg); err != nil {
		log.WithError(err).Error("emulation stopped")
		code = 1
	}

	if err := Session.Close(); err != nil {
		log.WithError(err).Error("closing session")
		code = 1
	}

	// show what led up to a fault
	if Session.Halted() != nil {
		Session.DumpHistory(os.Stderr)
		code = 1
	}

	os.Exit(code)
}

func printBanner() {
	fmt.Fprintln(os.Stderr, "[-------------------------------]")
	fmt.Fprintln(os.Stderr, "[ chip8vm - CHIP-8 interpreter  ]")
	fmt.Fprintf(os.Stderr, "[-------------------------------]\n\n")
	fmt.Fprintf(os.Stderr, "version: %s\n\n", buildinfo.Version(version, commit, date))
}

func run(cfg session.Config) error {
	if cfg.ROM != "" {
		if err := Session.Open(cfg.ROM); err != nil {
			return err
		}
	}

	switch {
	case cfg.Headless:
		err := Session.RunHeadless(cfg.Ticks, os.Stdout)
		if Session.Halted() != nil {
			// reported with the log history
			return nil
		}
		return err
	case cfg.Term:
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		return termui.Run(ctx, Session)
	}

	return runWindow(cfg)
}

func runWindow(cfg session.Config) error {
	var err error

	// initialize SDL
	if err = sdl.Init(sdl.INIT_VIDEO | sdl.INIT_AUDIO); err != nil {
		return fmt.Errorf("initializing sdl: %w", err)
	}
	defer sdl.Quit()

	Scale = int32(cfg.Scale)

	// create the main window and renderer
	if Window, Renderer, err = sdl.CreateWindowAndRenderer(chip8.Width*Scale, chip8.Height*Scale, sdl.WINDOW_SHOWN); err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer Window.Destroy()
	defer Renderer.Destroy()

	// ask for a program if none was given
	if Session.Path == "" {
		if err := LoadDialog(); err != nil {
			if errors.Is(err, dialog.ErrCancelled) {
				return nil
			}
			return err
		}
	}

	UpdateTitle()

	// initialize subsystems
	if err = InitScreen(); err != nil {
		return err
	}
	defer Screen.Destroy()

	if err = InitAudio(); err != nil {
		Session.Log.WithError(err).Warn("audio unavailable")
	}
	defer CloseAudio()

	// set processor speed and refresh rate
	clock := time.NewTicker(time.Millisecond * 3)
	video := time.NewTicker(time.Second / 60)
	defer clock.Stop()
	defer video.Stop()

	last := time.Now()

	// loop until window closed or user quit
	for ProcessEvents() {
		select {
		case <-video.C:
			Refresh()
			QueueAudio()
		case now := <-clock.C:
			if err := Session.Advance(now.Sub(last)); err != nil {
				UpdateTitle()
			}
			last = now
		}
	}

	return nil
}

/// LoadDialog asks for a program to load.
///
func LoadDialog() error {
	path, err := dialog.File().
		Filter("CHIP-8 programs", "ch8", "c8", "bin", "zip", "gz", "7z").
		Title("Load CHIP-8 program").
		Load()
	if err != nil {
		return err
	}

	if err := Session.Open(path); err != nil {
		return err
	}

	UpdateTitle()
	return nil
}

/// UpdateTitle shows the program and emulation status in the title bar.
///
func UpdateTitle() {
	title := "CHIP-8"

	if Session.Path != "" {
		title += " - " + filepath.Base(Session.Path)
	}

	switch {
	case Session.Halted() != nil:
		title += " [halted]"
	case Session.Paused:
		title += " [paused]"
	}

	Window.SetTitle(title)
}

/// Refresh redraws the window.
///
func Refresh() {
	if Session.FrameChanged() {
		if err := RefreshScreen(); err != nil {
			Session.Log.WithError(err).Error("drawing screen")
		}
	}

	_ = Renderer.SetDrawColor(32, 42, 53, 255)
	_ = Renderer.Clear()

	CopyScreen(0, 0, chip8.Width*Scale, chip8.Height*Scale)

	// show the new frame
	Renderer.Present()
}
