package input

import (
	"bufio"
	"io"
	"strings"
	"testing"
	"time"
)

func TestParseKeys(t *testing.T) {
	now := time.Unix(1000, 0)
	tests := []struct {
		name string
		in   string
		want Input
	}{
		{"arrow up", "\x1b[A", Input{Up: true}},
		{"arrow down", "\x1b[B", Input{Down: true}},
		{"arrow right", "\x1b[C", Input{Right: true}},
		{"arrow left", "\x1b[D", Input{Left: true}},
		{"wasd", "wd", Input{Up: true, Right: true}},
		{"vim keys", "hj", Input{Left: true, Down: true}},
		{"fire", " ", Input{Fire: true}},
		{"restart", "r", Input{Restart: true}},
		{"quit", "q", Input{Quit: true}},
		{"ctrl-c", "\x03", Input{Quit: true}},
		{"lone escape", "\x1b", Input{}},
		{"arrow and fire", "\x1b[A ", Input{Up: true, Fire: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var state keyState
			got := parse(&state, []byte(tt.in), now)
			if intents(got) != intents(tt.want) {
				t.Errorf("parse(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

// intents drops the raw bytes so inputs can be compared.
func intents(in Input) [7]bool {
	return [7]bool{in.Left, in.Right, in.Up, in.Down, in.Fire, in.Quit, in.Restart}
}

func TestHeldDirectionExpires(t *testing.T) {
	var state keyState
	start := time.Unix(1000, 0)
	parse(&state, []byte("a"), start)

	if in := parse(&state, nil, start.Add(50*time.Millisecond)); !in.Left {
		t.Error("direction should still be held inside the hold window")
	}
	if in := parse(&state, nil, start.Add(keyHoldDuration)); in.Left {
		t.Error("direction should be released after the hold window")
	}
}

func TestEdgeTriggeredFire(t *testing.T) {
	var state keyState
	now := time.Unix(1000, 0)
	if in := parse(&state, []byte(" "), now); !in.Fire {
		t.Fatal("Fire not set on press")
	}
	if in := parse(&state, nil, now.Add(time.Millisecond)); in.Fire {
		t.Error("Fire must last exactly one frame")
	}
}

func TestStreamDrainsAndCloses(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("d ")))

	var got Input
	deadline := time.Now().Add(2 * time.Second)
	for !s.Closed() && time.Now().Before(deadline) {
		in := ReadInput(s)
		got.Right = got.Right || in.Right
		got.Fire = got.Fire || in.Fire
		got.Pressed = append(got.Pressed, in.Pressed...)
		time.Sleep(time.Millisecond)
	}

	if !s.Closed() {
		t.Fatal("stream did not report the end of the reader")
	}
	if !got.Right || !got.Fire || string(got.Pressed) != "d " {
		t.Errorf("accumulated input = %+v", got)
	}
}

func TestResetKeyInput(t *testing.T) {
	s := &Stream{ch: make(chan byte, 4)}
	s.state.left = time.Now()
	s.ch <- ' '

	ResetKeyInput(s)
	in := ReadInput(s)
	if in.Left || in.Fire || in.Any() {
		t.Errorf("input after reset = %+v, want nothing", in)
	}
}

func TestSplitArrowSequence(t *testing.T) {
	start := time.Unix(1000, 0)
	tests := []struct {
		name          string
		first, second string
		want          Input
	}{
		{"split after escape bracket", "\x1b[", "A", Input{Up: true}},
		{"split after escape", "\x1b", "[D", Input{Left: true}},
		{"split with key before", "w\x1b[", "B", Input{Up: true, Down: true}},
		{"escape then letter", "\x1b", "d", Input{Right: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var state keyState
			parse(&state, []byte(tt.first), start)
			got := parse(&state, []byte(tt.second), start.Add(16*time.Millisecond))
			if intents(got) != intents(tt.want) {
				t.Errorf("parse(%q, %q) = %+v, want %+v", tt.first, tt.second, got, tt.want)
			}
			if len(state.pending) != 0 {
				t.Errorf("pending = %q after the sequence finished", state.pending)
			}
		})
	}
}

func TestCloseReleasesReader(t *testing.T) {
	r, w := io.Pipe()
	s := StartStream(bufio.NewReader(r))

	// Fill the channel so the reader goroutine blocks on its send.
	go func() {
		w.Write(make([]byte, 256))
	}()
	time.Sleep(20 * time.Millisecond)

	s.Close()
	s.Close()

	deadline := time.Now().Add(2 * time.Second)
	for !s.Closed() && time.Now().Before(deadline) {
		ReadInput(s)
		time.Sleep(time.Millisecond)
	}
	if !s.Closed() {
		t.Fatal("stream still open after Close")
	}
	w.Close()
}
