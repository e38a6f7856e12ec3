package tuitest

var (
	// KeyEnter sends a carriage return to the PTY.
	KeyEnter = []byte{'\r'}
	// KeyCtrlC requests the program to terminate.
	KeyCtrlC = []byte{3}
	// KeyEsc closes modals and prompts.
	KeyEsc = []byte{27}
	// KeySpace toggles scrolling.
	KeySpace = []byte{' '}
)

// X10 mouse button codes. Motion reports carry the "no button" code plus
// the motion bit.
const (
	mouseButtonLeft = 0
	mouseNoButton   = 3
	mouseMotionBit  = 32
)

// Keys returns the bytes typed for s.
func Keys(s string) []byte {
	return []byte(s)
}

// MouseClick encodes a left press followed by a release at the zero-based
// cell (x, y).
func MouseClick(x, y int) []byte {
	out := mouseEvent(mouseButtonLeft, x, y)
	return append(out, mouseEvent(mouseNoButton, x, y)...)
}

// MouseMove encodes pointer motion without a pressed button.
func MouseMove(x, y int) []byte {
	return mouseEvent(mouseNoButton|mouseMotionBit, x, y)
}

// mouseEvent uses the legacy X10 encoding, which caps coordinates at 222.
func mouseEvent(button, x, y int) []byte {
	clamp := func(v int) byte {
		if v < 0 {
			v = 0
		}
		if v > 222 {
			v = 222
		}
		return byte(v + 1 + 32)
	}
	return []byte{0x1b, '[', 'M', byte(button + 32), clamp(x), clamp(y)}
}
