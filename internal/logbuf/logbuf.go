/* Copyright (c) 2017 Jeffrey Massung
 *
 * This software is provided 'as-is', without any express or implied
 * warranty.  In no event will the authors be held liable for any damages
 * arising from the use of this software.
 *
 * Permission is granted to anyone to use this software for any purpose,
 * including commercial applications, and to alter it and redistribute it
 * freely, subject to the following restrictions:
 *
 * 1. The origin of this software must not be misrepresented; you must not
 *    claim that you wrote the original software. If you use this software
 *    in a product, an acknowledgment in the product documentation would be
 *    appreciated but is not required.
 *
 * 2. Altered source versions must be plainly marked as such, and must not be
 *    misrepresented as being the original software.
 *
 * 3. This notice may not be removed or altered from any source distribution.
 */

// Package logbuf keeps the most recent log lines in memory so a host can
// show or dump them, for example after the machine faults.
package logbuf

import (
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// DefaultSize is the number of lines kept by New(0).
const DefaultSize = 1000

// Buffer is a bounded, scrollable log. It is a logrus.Hook.
type Buffer struct {
	mu sync.Mutex

	// buf contains each line of logged text.
	buf []string

	// size is the most lines kept; older lines are dropped.
	size int

	// pos is the current user read position within the log.
	pos int

	formatter logrus.Formatter
}

// New creates a buffer holding at most size lines.
func New(size int) *Buffer {
	if size <= 0 {
		size = DefaultSize
	}

	return &Buffer{
		buf:  make([]string, 0, 100),
		size: size,
		formatter: &logrus.TextFormatter{
			DisableColors:    true,
			DisableTimestamp: true,
			DisableSorting:   true,
			DisableQuote:     true,
		},
	}
}

// Log outputs a new line to the log.
func (log *Buffer) Log(s ...string) {
	log.mu.Lock()
	defer log.mu.Unlock()

	log.append(strings.Join(s, " "))
}

// Logln outputs a new line to the log, with an empty line prefixed.
func (log *Buffer) Logln(s ...string) {
	log.mu.Lock()
	defer log.mu.Unlock()

	log.append("", strings.Join(s, " "))
}

func (log *Buffer) append(lines ...string) {
	scroll := log.pos == len(log.buf)

	log.buf = append(log.buf, lines...)

	// drop the oldest lines
	if over := len(log.buf) - log.size; over > 0 {
		log.buf = append(log.buf[:0], log.buf[over:]...)

		if log.pos -= over; log.pos < 0 {
			log.pos = 0
		}
	}

	if scroll {
		log.pos = len(log.buf)
	}
}

// Len is the number of lines held.
func (log *Buffer) Len() int {
	log.mu.Lock()
	defer log.mu.Unlock()

	return len(log.buf)
}

// Window returns up to n lines ending at the read position.
func (log *Buffer) Window(n int) []string {
	log.mu.Lock()
	defer log.mu.Unlock()

	start := log.pos - n

	// don't scroll past the beginning
	if start < 0 {
		start = 0
	}

	end := start + n
	if end > len(log.buf) {
		end = len(log.buf)
	}

	return append([]string(nil), log.buf[start:end]...)
}

// Home scrolls the log to the beginning.
func (log *Buffer) Home() {
	log.mu.Lock()
	defer log.mu.Unlock()

	log.pos = 0
}

// End scrolls the log to the end.
func (log *Buffer) End() {
	log.mu.Lock()
	defer log.mu.Unlock()

	log.pos = len(log.buf)
}

// ScrollUp scrolls the log back one position.
func (log *Buffer) ScrollUp() {
	log.mu.Lock()
	defer log.mu.Unlock()

	// clamp to home
	if log.pos--; log.pos < 0 {
		log.pos = 0
	}
}

// ScrollDown scrolls the log forward one position.
func (log *Buffer) ScrollDown(windowSize int) {
	log.mu.Lock()
	defer log.mu.Unlock()

	log.pos++

	// if less than the window size, drop to it
	if log.pos < windowSize {
		log.pos = windowSize
	}

	// clamp to end
	if log.pos > len(log.buf) {
		log.pos = len(log.buf)
	}
}

// Levels implements logrus.Hook.
func (log *Buffer) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire implements logrus.Hook, appending the formatted entry.
func (log *Buffer) Fire(entry *logrus.Entry) error {
	b, err := log.formatter.Format(entry)
	if err != nil {
		return err
	}

	log.Log(strings.TrimRight(string(b), "\n"))
	return nil
}
