// Package statsview serves live runtime charts of the emulator process.
// It is only functional when built with the statsview tag:
//
//	go build -tags statsview
//
// The charts are then served at localhost:12600/debug/statsview.
package statsview
