// Package termui runs a session inside the terminal using termbox. Two
// CHIP-8 rows share one character cell through half block glyphs.
package termui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/nsf/termbox-go"
	"golang.org/x/term"

	"github.com/massung/chip8vm/chip8"
	"github.com/massung/chip8vm/internal/session"
)

// ErrNotTerminal is returned when stdin is not an interactive terminal.
var ErrNotTerminal = errors.New("stdin is not a terminal")

// keyHold is how long a key stays down. Terminals only report presses.
const keyHold = 150 * time.Millisecond

// logRows is the height of the log pane under the display.
const logRows = 8

// KeyMap maps the keyboard to CHIP-8 keys.
var KeyMap = map[rune]uint{
	'x': 0x0,
	'1': 0x1,
	'2': 0x2,
	'3': 0x3,
	'q': 0x4,
	'w': 0x5,
	'e': 0x6,
	'a': 0x7,
	's': 0x8,
	'd': 0x9,
	'z': 0xA,
	'c': 0xB,
	'4': 0xC,
	'r': 0xD,
	'f': 0xE,
	'v': 0xF,
}

const (
	on  = termbox.ColorWhite
	off = termbox.ColorDefault
)

// ui is the terminal front-end state.
type ui struct {
	s      *session.Session
	held   map[uint]time.Time
	status string
	dirty  bool
}

// Run drives s until the user quits or ctx is done.
func Run(ctx context.Context, s *session.Session) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrNotTerminal
	}

	if err := termbox.Init(); err != nil {
		return fmt.Errorf("termbox: %w", err)
	}
	defer termbox.Close()

	events := make(chan termbox.Event)
	done := make(chan struct{})

	defer func() {
		close(done)
		termbox.Interrupt()
	}()

	go func() {
		for {
			ev := termbox.PollEvent()

			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	u := &ui{s: s, held: make(map[uint]time.Time)}

	// set processor speed and refresh rate
	clock := time.NewTicker(time.Millisecond * 3)
	video := time.NewTicker(time.Second / 60)
	defer clock.Stop()
	defer video.Stop()

	last := time.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if ev.Type == termbox.EventError {
				return fmt.Errorf("termbox: %w", ev.Err)
			}
			if !u.handle(ev, time.Now()) {
				return nil
			}
		case now := <-clock.C:
			u.release(now)

			if err := s.Advance(now.Sub(last)); err != nil {
				u.status = err.Error()
			}
			last = now
		case <-video.C:
			if s.FrameChanged() || u.status != "" || u.dirty {
				u.draw()
			}
		}
	}
}

// handle processes a terminal event, returning false to quit.
func (u *ui) handle(ev termbox.Event, now time.Time) bool {
	if ev.Type != termbox.EventKey {
		return true
	}

	if key, ok := KeyMap[ev.Ch]; ok && ev.Ch != 0 {
		u.s.Press(key)
		u.held[key] = now.Add(keyHold)
		return true
	}

	u.dirty = true

	switch {
	case ev.Key == termbox.KeyEsc, ev.Key == termbox.KeyCtrlC:
		return false
	case ev.Key == termbox.KeySpace:
		u.s.TogglePause()
	case ev.Key == termbox.KeyBackspace, ev.Key == termbox.KeyBackspace2:
		u.s.Reboot()
		u.status = ""
	case ev.Key == termbox.KeyF5:
		u.report(u.s.SaveState())
	case ev.Key == termbox.KeyF7:
		u.report(u.s.LoadState())
	case ev.Key == termbox.KeyPgup:
		u.s.History.ScrollUp()
	case ev.Key == termbox.KeyPgdn:
		u.s.History.ScrollDown(logRows)
	case ev.Key == termbox.KeyHome:
		u.s.History.Home()
	case ev.Key == termbox.KeyEnd:
		u.s.History.End()
	case ev.Ch == '[':
		u.s.Slower()
	case ev.Ch == ']':
		u.s.Faster()
	}

	return true
}

func (u *ui) report(err error) {
	if err != nil {
		u.status = err.Error()
	}
}

// release lets go of keys held longer than keyHold.
func (u *ui) release(now time.Time) {
	for key, until := range u.held {
		if now.After(until) {
			u.s.Release(key)
			delete(u.held, key)
		}
	}
}

// Glyph returns the cell for column col and character row row.
func Glyph(fb *chip8.Framebuffer, col, row int) (rune, termbox.Attribute, termbox.Attribute) {
	top := fb.Pixel(uint(col), uint(row*2))
	bottom := fb.Pixel(uint(col), uint(row*2+1))

	switch {
	case top && bottom:
		return '█', on, off
	case top:
		return '▀', on, off
	case bottom:
		return '▄', on, off
	}

	return ' ', off, off
}

func (u *ui) draw() {
	_ = termbox.Clear(off, off)

	frame := u.s.VM.Screen()

	for row := 0; row < chip8.Height/2; row++ {
		for col := 0; col < chip8.Width; col++ {
			ch, fg, bg := Glyph(&frame, col, row)
			termbox.SetCell(col, row, ch, fg, bg)
		}
	}

	row := chip8.Height/2 + 1

	u.text(row, u.status, termbox.ColorRed)

	// scrollable log history
	for i, line := range u.s.History.Window(logRows) {
		u.text(row+2+i, line, off)
	}

	u.dirty = false

	_ = termbox.Flush()
}

// text writes s on row, one rune per column.
func (u *ui) text(row int, s string, fg termbox.Attribute) {
	col := 0
	for _, ch := range s {
		termbox.SetCell(col, row, ch, fg, off)
		col++
	}
}
