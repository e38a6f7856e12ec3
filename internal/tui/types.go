package tui

import "github.com/csheth/clueinletters/internal/corpus"

type stage int

const (
	stageDisplay stage = iota
	stageResults
	stageUpload
	stageNotice
)

const heroTagline = "Hover a word to count it, click it to find its sentences."

const (
	minRibbonWidth          = 20
	ribbonHorizontalPadding = 4
	// The ribbon box starts below the title and status lines; its content
	// sits one border row and one border+padding column inside.
	ribbonTop         = 2
	ribbonContentTop  = ribbonTop + 1
	ribbonContentLeft = 2
)

// Rows of the page outside the flexible ribbon and result areas.
const (
	headerRows      = 2 // title and status bar
	legendRows      = 1
	boxRows         = 2 // top and bottom border
	tooltipRows     = 1
	uploadRows      = 3
	modalChromeRows = 6 // border, count header, two blank rows, hint
	maxSummaryRows  = 4
)

const uploadPlaceholder = "Path to a .txt file…"

type hoverState struct {
	Word   string
	Count  int
	Column int
	Active bool
}

type uploadResultMsg struct {
	name   string
	source *corpus.Source
	err    error
}

type summaryResultMsg struct {
	summary string
	err     error
}
