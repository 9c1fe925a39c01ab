// Package session runs a CHIP-8 machine for a host front-end: command line
// options, ROM loading, pacing, save states, sound and screenshots.
package session

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/massung/chip8vm/chip8"
)

// DefaultTicks is the number of ticks a headless run executes.
const DefaultTicks = 1000

// Config holds the command line options of the emulator.
type Config struct {
	ROM string

	ClockHz    int
	TimerHz    int
	StackDepth int
	Seed       int64

	Scale    int
	Term     bool
	Headless bool
	Ticks    int
	WAV      string

	Debug bool
	Trace bool
	Quiet bool
	Stats bool
}

// UsageError is returned by ParseFlags when usage should be shown.
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the program usage and flag defaults.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: %s [options] [rom]\n\n", e.flags.Name())
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
}

// ParseFlags reads the options from args, not including the program name.
func ParseFlags(name string, args []string) (Config, error) {
	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	cfg := Config{}

	flags.IntVar(&cfg.ClockHz, "clock", chip8.DefaultClockHz, "instructions executed per second")
	flags.IntVar(&cfg.TimerHz, "timer", chip8.DefaultTimerHz, "delay and sound timer rate")
	flags.IntVar(&cfg.StackDepth, "stack", chip8.DefaultStackDepth, "maximum nested subroutine calls")
	flags.Int64Var(&cfg.Seed, "seed", 0, "random seed for RND, 0 seeds from the clock")
	flags.IntVar(&cfg.Scale, "scale", 10, "window pixels per CHIP-8 pixel")
	flags.BoolVar(&cfg.Term, "term", false, "run in the terminal instead of a window")
	flags.BoolVar(&cfg.Headless, "headless", false, "run without display and print the final frame digest")
	flags.IntVar(&cfg.Ticks, "ticks", DefaultTicks, "number of ticks to run headless")
	flags.StringVar(&cfg.WAV, "wav", "", "record the beeper to a .wav file")
	flags.BoolVar(&cfg.Debug, "debug", false, "log loads, resets and state changes")
	flags.BoolVar(&cfg.Trace, "trace", false, "log every executed instruction")
	flags.BoolVar(&cfg.Quiet, "q", false, "only log warnings and errors")
	flags.BoolVar(&cfg.Stats, "stats", false, "serve runtime statistics (statsview builds only)")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, &UsageError{flags: flags}
		}
		return cfg, &UsageError{flags: flags, msg: err.Error()}
	}

	switch rest := flags.Args(); len(rest) {
	case 0:
	case 1:
		cfg.ROM = rest[0]
	default:
		return cfg, &UsageError{flags: flags, msg: "only one rom may be given"}
	}

	if err := cfg.validate(); err != nil {
		return cfg, &UsageError{flags: flags, msg: err.Error()}
	}

	return cfg, nil
}

func (cfg Config) validate() error {
	switch {
	case cfg.Term && cfg.Headless:
		return errors.New("-term and -headless cannot be combined")
	case cfg.Headless && cfg.ROM == "":
		return errors.New("a rom is required when running headless")
	case cfg.Term && cfg.ROM == "":
		return errors.New("a rom is required when running in the terminal")
	case cfg.ClockHz <= 0:
		return fmt.Errorf("invalid clock speed %d", cfg.ClockHz)
	case cfg.TimerHz <= 0:
		return fmt.Errorf("invalid timer rate %d", cfg.TimerHz)
	case cfg.StackDepth <= 0:
		return fmt.Errorf("invalid stack depth %d", cfg.StackDepth)
	case cfg.Scale <= 0:
		return fmt.Errorf("invalid scale %d", cfg.Scale)
	case cfg.Ticks < 0:
		return fmt.Errorf("invalid tick count %d", cfg.Ticks)
	}

	return nil
}

// Options returns the machine options for this configuration.
func (cfg Config) Options(log logrus.FieldLogger) chip8.Options {
	return chip8.Options{
		StackDepth: cfg.StackDepth,
		ClockHz:    cfg.ClockHz,
		TimerHz:    cfg.TimerHz,
		Seed:       cfg.Seed,
		Log:        log,
	}
}

// NewLogger returns the logger for this configuration writing to out.
func (cfg Config) NewLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(out)

	switch {
	case cfg.Trace:
		l.SetLevel(logrus.TraceLevel)
	case cfg.Debug:
		l.SetLevel(logrus.DebugLevel)
	case cfg.Quiet:
		l.SetLevel(logrus.WarnLevel)
	default:
		l.SetLevel(logrus.InfoLevel)
	}

	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}

	return l
}
