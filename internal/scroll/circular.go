// Package scroll turns a corpus into an endlessly looping ribbon: pure
// cursor/viewport arithmetic plus the timer that drives it.
package scroll

// DefaultWidth is the number of code points shown in the viewport.
const DefaultWidth = 800

// Advance moves the cursor one code point forward, wrapping at length.
// A zero-length corpus always yields 0.
func Advance(cursor, length int) int {
	if length <= 0 {
		return 0
	}
	return (normalize(cursor, length) + 1) % length
}

// Viewport reads width code points starting at cursor, continuing from the
// beginning of content when the window runs past the end. The result always
// holds min(width, len(content)) code points.
func Viewport(content []rune, cursor, width int) string {
	length := len(content)
	if length == 0 || width <= 0 {
		return ""
	}
	cursor = normalize(cursor, length)
	if width > length {
		width = length
	}
	end := cursor + width
	if end <= length {
		return string(content[cursor:end])
	}
	window := make([]rune, 0, width)
	window = append(window, content[cursor:]...)
	window = append(window, content[:end-length]...)
	return string(window)
}

func normalize(cursor, length int) int {
	cursor %= length
	if cursor < 0 {
		cursor += length
	}
	return cursor
}
