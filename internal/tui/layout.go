package tui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type pageLayout struct {
	windowWidth  int
	windowHeight int
	ribbonWidth  int
	modalWidth   int
}

func newPageLayout() pageLayout {
	l := pageLayout{}
	l.Update(80, 24)
	return l
}

func (l *pageLayout) Update(width, height int) {
	l.windowWidth = width
	l.windowHeight = height
	inner := width - ribbonHorizontalPadding
	if inner < minRibbonWidth {
		inner = minRibbonWidth
	}
	l.ribbonWidth = inner
	l.modalWidth = inner
}

// frame is the row budget of the page for the current state.
type frame struct {
	ribbonLines   int
	resultsHeight int
	summaryRows   int
	showError     bool
	showInfo      bool
}

// fit shares the window height between the page sections so View never
// emits more rows than the terminal has. The renderer drops the top rows of
// a taller frame, and the ribbon would then no longer start at ribbonTop.
// Messages and the summary are placed first; the ribbon or the result list
// grows into what is left, keeping at least one row.
func (m *model) fit() {
	free := m.layout.windowHeight - headerRows - legendRows
	switch m.stage {
	case stageResults:
		free -= modalChromeRows + 1
	case stageNotice:
		free -= strings.Count(m.noticeView(), "\n") + 1
	case stageUpload:
		free -= uploadRows + boxRows + tooltipRows + 1
	default:
		free -= boxRows + tooltipRows + 1
	}

	var f frame
	if m.errorMessage != "" && free > 0 {
		f.showError = true
		free--
	}
	if m.infoMessage != "" && free > 0 {
		f.showInfo = true
		free--
	}
	f.summaryRows = min(len(m.summaryLines()), maxSummaryRows, max(free, 0))
	free -= f.summaryRows
	f.ribbonLines = 1 + max(free, 0)
	f.resultsHeight = 1 + max(free, 0)

	relayout := f.ribbonLines != m.frame.ribbonLines
	m.frame = f
	m.results.Height = f.resultsHeight
	if relayout {
		m.refreshRibbon()
		m.refreshHover()
	}
}

// placedWord is one whitespace-delimited token of the visible window and the
// cells it occupies inside the ribbon box.
type placedWord struct {
	Text  string
	Shown string
	Line  int
	Col   int
	Width int
}

type ribbonLayout struct {
	words []placedWord
	lines int
}

// layoutRibbon flows the visible text into lines of at most width cells.
// Words wider than a line are truncated for display but keep their text.
// With maxLines > 0 the words that would start past the last line are left
// out, so hit tests only ever see what is drawn.
func layoutRibbon(text string, width, maxLines int) ribbonLayout {
	if width < 1 {
		width = 1
	}
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return ribbonLayout{}
	}
	words := make([]placedWord, 0, len(fields))
	line, col := 0, 0
	for _, field := range fields {
		shown := field
		w := runewidth.StringWidth(field)
		if w > width {
			shown = runewidth.Truncate(field, width, "…")
			w = runewidth.StringWidth(shown)
		}
		if col > 0 {
			if col+1+w > width {
				line++
				col = 0
			} else {
				col++
			}
		}
		if maxLines > 0 && line >= maxLines {
			line = maxLines - 1
			break
		}
		words = append(words, placedWord{Text: field, Shown: shown, Line: line, Col: col, Width: w})
		col += w
	}
	return ribbonLayout{words: words, lines: line + 1}
}

// wordAt returns the index of the word covering the cell, if any.
func (r ribbonLayout) wordAt(line, col int) (int, bool) {
	if line < 0 || col < 0 {
		return 0, false
	}
	for i, w := range r.words {
		if w.Line > line {
			break
		}
		if w.Line == line && col >= w.Col && col < w.Col+w.Width {
			return i, true
		}
	}
	return 0, false
}

// render rebuilds the lines; style decorates each word by index.
func (r ribbonLayout) render(style func(idx int, text string) string) []string {
	lines := make([]strings.Builder, r.lines)
	cols := make([]int, r.lines)
	for i, w := range r.words {
		b := &lines[w.Line]
		if gap := w.Col - cols[w.Line]; gap > 0 {
			b.WriteString(strings.Repeat(" ", gap))
		}
		b.WriteString(style(i, w.Shown))
		cols[w.Line] = w.Col + w.Width
	}
	out := make([]string, r.lines)
	for i := range lines {
		out[i] = lines[i].String()
	}
	return out
}

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (m *model) ribbonBounds() rect {
	lines := m.ribbon.lines
	if lines < 1 {
		lines = 1
	}
	return rect{x: 0, y: ribbonTop, w: m.layout.ribbonWidth + 4, h: lines + boxRows}
}

// modalBounds mirrors the box drawn by modalView: rounded border, one column
// of padding, a count header, a blank line, the scroll area, a blank line and
// the hint.
func (m *model) modalBounds() rect {
	return rect{x: 0, y: ribbonTop, w: m.layout.modalWidth + 4, h: m.results.Height + modalChromeRows}
}
