// Package input turns raw terminal bytes into per-frame directional input.
package input

import (
	"bufio"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last press.
// Terminals only report key repeats, so a short hold window lets up+left style
// combinations register within the same frame.
const keyHoldDuration = 30 * time.Millisecond

// Input represents the current frame's input state.
type Input struct {
	Up      bool   `json:"up"`
	Down    bool   `json:"down"`
	Left    bool   `json:"left"`
	Right   bool   `json:"right"`
	Quit    bool   `json:"-"`
	Confirm bool   `json:"-"`
	Pressed []byte `json:"-"`
}

// keyState tracks the last time each key was pressed.
type keyState struct {
	quit    time.Time
	up      time.Time
	down    time.Time
	left    time.Time
	right   time.Time
	confirm time.Time
}

// Stream delivers input bytes via a channel and tracks key state for combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // ESC or ESC [ cut off at the end of the last batch
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The goroutine exits when r returns an error (e.g. the SSH session closes).
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream without blocking
// and returns the keys held at this instant.
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	return s.parse(buf, time.Now())
}

// ResetKeyInput forgets all held keys, so a key used to leave a screen
// does not leak into the next one.
func ResetKeyInput(s *Stream) {
	if s == nil {
		return
	}
	s.state = keyState{}
}

// parse updates key timestamps from the bytes in and builds the input seen at now.
func (s *Stream) parse(in []byte, now time.Time) Input {
	buf := in
	if len(s.pending) > 0 {
		buf = append(s.pending, in...)
		s.pending = nil
	}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// An escape sequence split across reads is finished on the next batch.
		if b == '\x1b' && (i+1 == len(buf) || (i+2 == len(buf) && buf[i+1] == '[')) {
			s.pending = append([]byte(nil), buf[i:]...)
			break
		}

		// CSI sequence: ESC [ <code>
		if b == '\x1b' && buf[i+1] == '[' {
			switch buf[i+2] {
			case 'A':
				s.state.up = now
				i += 2
				continue
			case 'B':
				s.state.down = now
				i += 2
				continue
			case 'C':
				s.state.right = now
				i += 2
				continue
			case 'D':
				s.state.left = now
				i += 2
				continue
			}
		}

		applyByteToState(&s.state, b, now)
	}

	held := func(t time.Time) bool {
		return !t.IsZero() && now.Sub(t) < keyHoldDuration
	}

	return Input{
		Up:      held(s.state.up),
		Down:    held(s.state.down),
		Left:    held(s.state.left),
		Right:   held(s.state.right),
		Quit:    held(s.state.quit),
		Confirm: held(s.state.confirm),
		Pressed: in,
	}
}

// applyByteToState updates the key state timestamps based on the pressed byte.
func applyByteToState(state *keyState, b byte, now time.Time) {
	switch b {
	case 'q', 'Q', '\x03':
		state.quit = now
	case 'w', 'W', 'k', 'K':
		state.up = now
	case 's', 'S', 'j', 'J':
		state.down = now
	case 'a', 'A', 'h', 'H':
		state.left = now
	case 'd', 'D', 'l', 'L':
		state.right = now
	case ' ', '\n', '\r':
		state.confirm = now
	}
}
