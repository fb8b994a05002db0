// Package input turns raw device state into per-frame player intents.
package input

import (
	"bufio"
	"sync"
	"time"
)

// keyHoldDuration is how long a direction key is considered "held" after its last press.
// Terminals only report key repeats, so a held key shows up as a stream of presses.
const keyHoldDuration = 80 * time.Millisecond

// Input represents the current frame's intents.
// Directions are level-triggered; Fire, Quit and Restart are edge-triggered and
// are true for exactly one frame per key press.
type Input struct {
	Left    bool
	Right   bool
	Up      bool
	Down    bool
	Fire    bool
	Quit    bool
	Restart bool
	Pressed []byte // Raw bytes received this frame (used for activity tracking)
}

// Any reports whether the frame carried any key press at all.
func (in Input) Any() bool {
	return len(in.Pressed) > 0 || in.Left || in.Right || in.Up || in.Down ||
		in.Fire || in.Quit || in.Restart
}

// keyState tracks the last time each direction key was pressed.
type keyState struct {
	left  time.Time
	right time.Time
	up    time.Time
	down  time.Time

	pending []byte // Unfinished escape sequence carried over from the previous read
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch        chan byte
	done      chan struct{}
	closeOnce sync.Once
	state     keyState
	closed    bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine ends when r does or, once Close was called, at the next byte.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch:   make(chan byte, 128),
		done: make(chan struct{}),
	}
	go func() {
		defer close(s.ch)
		for {
			b, err := r.ReadByte()
			if err != nil {
				return
			}
			select {
			case s.ch <- b:
			case <-s.done:
				return
			}
		}
	}()
	return s
}

// Close stops delivering bytes. Safe to call more than once.
func (s *Stream) Close() {
	s.closeOnce.Do(func() { close(s.done) })
}

// Closed reports whether the underlying reader has ended (e.g. the connection dropped).
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Handles escape sequences for arrow keys and accumulates all pressed keys.
func ReadInput(s *Stream) Input {
	return readInputAt(s, time.Now())
}

func readInputAt(s *Stream, now time.Time) Input {
	var buf []byte

	// Drain all available bytes
drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return parse(&s.state, buf, now)
}

// parse applies the bytes of one frame to the key state and builds the intents.
func parse(state *keyState, buf []byte, now time.Time) Input {
	in := Input{Pressed: buf}

	if len(state.pending) > 0 {
		buf = append(state.pending, buf...)
		state.pending = nil
	}
	// A read can end inside an arrow sequence; finish it with the next read.
	switch n := len(buf); {
	case n >= 1 && buf[n-1] == '\x1b':
		state.pending = []byte{'\x1b'}
		buf = buf[:n-1]
	case n >= 2 && buf[n-2] == '\x1b' && buf[n-1] == '[':
		state.pending = []byte{'\x1b', '['}
		buf = buf[:n-2]
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && i+2 < len(buf) && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				state.up = now
				i += 2
				continue
			case 'B':
				state.down = now
				i += 2
				continue
			case 'C':
				state.right = now
				i += 2
				continue
			case 'D':
				state.left = now
				i += 2
				continue
			}
		}

		switch b {
		case 'a', 'A', 'h', 'H':
			state.left = now
		case 'd', 'D', 'l', 'L':
			state.right = now
		case 'w', 'W', 'k', 'K':
			state.up = now
		case 's', 'S', 'j', 'J':
			state.down = now
		case ' ':
			in.Fire = true
		case 'r', 'R':
			in.Restart = true
		case 'q', 'Q', '\x03':
			in.Quit = true
		}
	}

	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	in.Up = now.Sub(state.up) < keyHoldDuration
	in.Down = now.Sub(state.down) < keyHoldDuration
	return in
}

// ResetKeyInput forgets every held key and discards pending bytes,
// so a key pressed before a state change does not leak into the next one.
func ResetKeyInput(s *Stream) {
	s.state = keyState{}
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				s.closed = true
				return
			}
		default:
			return
		}
	}
}
