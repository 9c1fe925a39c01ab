package main

import (
	"errors"

	"github.com/sqweek/dialog"
	"github.com/veandco/go-sdl2/sdl"
)

var (
	/// Mapping of modern keyboard to CHIP-8 keys.
	///
	KeyMap = map[sdl.Scancode]uint{
		sdl.SCANCODE_X: 0x0,
		sdl.SCANCODE_1: 0x1,
		sdl.SCANCODE_2: 0x2,
		sdl.SCANCODE_3: 0x3,
		sdl.SCANCODE_Q: 0x4,
		sdl.SCANCODE_W: 0x5,
		sdl.SCANCODE_E: 0x6,
		sdl.SCANCODE_A: 0x7,
		sdl.SCANCODE_S: 0x8,
		sdl.SCANCODE_D: 0x9,
		sdl.SCANCODE_Z: 0xA,
		sdl.SCANCODE_C: 0xB,
		sdl.SCANCODE_4: 0xC,
		sdl.SCANCODE_R: 0xD,
		sdl.SCANCODE_F: 0xE,
		sdl.SCANCODE_V: 0xF,
	}
)

/// ProcessEvents from SDL and map keys to the CHIP-8 VM.
///
func ProcessEvents() bool {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch ev := e.(type) {
		case *sdl.QuitEvent:
			return false
		case *sdl.KeyboardEvent:
			if ev.Repeat != 0 {
				continue
			}

			if key, ok := KeyMap[ev.Keysym.Scancode]; ok {
				if ev.Type == sdl.KEYDOWN {
					Session.Press(key)
				} else {
					Session.Release(key)
				}
				continue
			}

			if ev.Type == sdl.KEYDOWN && !EmulationKey(ev.Keysym) {
				return false
			}
		}
	}

	return true
}

/// EmulationKey handles keys that control the emulator. Returns false
/// when the user asked to quit.
///
func EmulationKey(keysym sdl.Keysym) bool {
	switch keysym.Scancode {
	case sdl.SCANCODE_ESCAPE:
		return false
	case sdl.SCANCODE_BACKSPACE:
		Session.Reboot()

		// holding control during reset will reboot paused
		if keysym.Mod&sdl.KMOD_CTRL != 0 {
			Session.Paused = true
		}

		UpdateTitle()
	case sdl.SCANCODE_F1, sdl.SCANCODE_H:
		DebugHelp()
	case sdl.SCANCODE_F3:
		if err := LoadDialog(); err != nil && !errors.Is(err, dialog.ErrCancelled) {
			Session.Log.WithError(err).Error("loading program")
		}
	case sdl.SCANCODE_F5:
		if err := Session.SaveState(); err != nil {
			Session.Log.WithError(err).Error("saving state")
		}
	case sdl.SCANCODE_F7:
		if err := Session.LoadState(); err != nil {
			Session.Log.WithError(err).Error("loading state")
		}
		UpdateTitle()
	case sdl.SCANCODE_SPACE, sdl.SCANCODE_F9:
		Session.TogglePause()
		UpdateTitle()
	case sdl.SCANCODE_F6, sdl.SCANCODE_F10:
		if err := Session.Step(); err != nil {
			UpdateTitle()
		}
		if Session.Paused {
			DebugState()
		}
	case sdl.SCANCODE_F8:
		DebugState()
	case sdl.SCANCODE_F12:
		Screenshot()
	case sdl.SCANCODE_LEFTBRACKET:
		Session.Slower()
	case sdl.SCANCODE_RIGHTBRACKET:
		Session.Faster()
	}

	return true
}
