package chip8

import (
	"io"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	/// DefaultClockHz is the instruction rate used by DefaultOptions. The
	/// RCA 1802 ran at 4-5 MHz, and each instruction took 16-24 clock
	/// cycles. Best estimations are the 1802 could interpret 500 CHIP-8
	/// instructions per second.
	///
	DefaultClockHz = 500

	/// DefaultTimerHz is the rate the delay and sound timers count down.
	///
	DefaultTimerHz = 60
)

/// Options configure a new CHIP-8 virtual machine. The zero value is
/// usable: a 16 level stack with timers decrementing once per tick.
///
type Options struct {
	/// StackDepth is the maximum number of nested calls.
	///
	StackDepth int

	/// ClockHz is the number of ticks per emulated second. When zero,
	/// the timers are decremented on every tick. Otherwise they are
	/// decremented TimerHz times for every ClockHz ticks.
	///
	ClockHz int

	/// TimerHz is the timer rate. Zero means DefaultTimerHz.
	///
	TimerHz int

	/// Seed for the RND instruction. Zero seeds from the clock.
	///
	Seed int64

	/// Rand overrides the random source for the RND instruction.
	///
	Rand *rand.Rand

	/// Log receives trace, debug and fault messages. Nil discards.
	///
	Log logrus.FieldLogger
}

/// DefaultOptions returns the options the emulator host runs with.
///
func DefaultOptions() Options {
	return Options{
		StackDepth: DefaultStackDepth,
		ClockHz:    DefaultClockHz,
		TimerHz:    DefaultTimerHz,
	}
}

/// normalize fills in the defaults for any unset option.
///
func (opts Options) normalize() Options {
	if opts.StackDepth <= 0 {
		opts.StackDepth = DefaultStackDepth
	}

	if opts.ClockHz < 0 {
		opts.ClockHz = 0
	}

	if opts.TimerHz <= 0 {
		opts.TimerHz = DefaultTimerHz
	}

	if opts.Rand == nil {
		seed := opts.Seed
		if seed == 0 {
			seed = time.Now().UTC().UnixNano()
		}

		opts.Rand = rand.New(rand.NewSource(seed))
	}

	if opts.Log == nil {
		log := logrus.New()
		log.SetOutput(io.Discard)

		opts.Log = log
	}

	return opts
}
