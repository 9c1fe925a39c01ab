package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

/// Show the HELP text in the log.
///
func DebugHelp() {
	help := []string{
		"Virtual keys:",
		"  1-2-3-4",
		"  Q-W-E-R",
		"  A-S-D-F",
		"  Z-X-C-V",
		"",
		"Emulation keys:",
		"  ESC      - Quit",
		"  BS       - Reboot (CTRL to reboot paused)",
		"  SPACE    - Pause",
		"  [ ]      - Slower / faster",
		"  F1       - Help",
		"  F3       - Load program",
		"  F5 / F7  - Save / restore state",
		"  F6       - Step",
		"  F8       - Show registers",
		"  F12      - Screenshot",
	}

	for _, line := range help {
		Session.Log.Info(line)
	}
}

/// DebugState logs the CHIP-8 registers and the disassembled
/// instructions at the program counter.
///
func DebugState() {
	vm := Session.VM

	regs := make([]string, 0, len(vm.V))
	for i, v := range vm.V {
		regs = append(regs, fmt.Sprintf("V%X=#%02X", i, v))
	}

	Session.Log.WithFields(logrus.Fields{
		"pc":    fmt.Sprintf("#%04X", vm.PC),
		"i":     fmt.Sprintf("#%04X", vm.I),
		"dt":    vm.GetDelayTimer(),
		"st":    vm.GetSoundTimer(),
		"stack": vm.Stack.Len(),
	}).Info(strings.Join(regs, " "))

	// show the disassembled instructions
	for _, s := range vm.Listing(vm.PC, 8) {
		Session.Log.Info(s)
	}
}
