package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/clueinletters/internal/scroll"
)

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	taglineStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#c9ada7")).Italic(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helperStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	matchStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("190"))
	hoverStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6"))
	tooltipStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166"))
	statusBarStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#8ecae6")).Padding(0, 1)
	pausedBarStyle = statusBarStyle.Copy().Background(lipgloss.Color("#f4a261"))
	ribbonBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#56526e")).Padding(0, 1)
	modalBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#ff8c00")).Padding(0, 1)
	noticeBoxStyle = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("9")).Padding(1, 2)
	summaryStyle   = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("#7f5af0")).PaddingLeft(1)
	keyStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#0f0f0f")).Background(lipgloss.Color("#ffd166")).Padding(0, 1)
	keyDescStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#e0def4"))
)

// View keeps the title and status bar on the first two rows so the ribbon
// and modal always start at ribbonTop; mouse hit tests depend on it.
func (m *model) View() string {
	parts := []string{m.titleView(), m.statusView()}
	switch m.stage {
	case stageResults:
		parts = append(parts, m.modalView())
	case stageNotice:
		parts = append(parts, m.noticeView())
	default:
		parts = append(parts, m.ribbonView(), m.tooltipView())
	}
	if m.stage == stageUpload {
		parts = append(parts, m.uploadView())
	}
	if m.frame.summaryRows > 0 {
		parts = append(parts, m.summaryView())
	}
	if m.frame.showError {
		parts = append(parts, errorStyle.Render(m.singleLine(m.errorMessage)))
	}
	if m.frame.showInfo {
		parts = append(parts, helperStyle.Render(m.singleLine(m.infoMessage)))
	}
	parts = append(parts, m.legendView())
	return strings.Join(parts, "\n")
}

func (m *model) titleView() string {
	const title = "Clue in Letters"
	if runewidth.StringWidth(title)+2+runewidth.StringWidth(heroTagline) > m.layout.windowWidth {
		return titleStyle.Render(title)
	}
	return titleStyle.Render(title) + "  " + taglineStyle.Render(heroTagline)
}

func (m *model) statusView() string {
	snap := m.store.Snapshot()
	state := m.scheduler.State()
	stats := []string{
		state.String(),
		fmt.Sprintf("speed %d%% (%s)", m.speed.Percent(m.position), m.scheduler.Interval()),
		fmt.Sprintf("%d/%d", snap.Cursor, snap.Source.Len()),
	}
	if snap.Upload != "" {
		stats = append(stats, "file: "+snap.Upload)
	} else {
		stats = append(stats, "default text")
	}
	stats = append(stats, m.jobs.badges(time.Now())...)
	style := statusBarStyle
	if state == scroll.Paused {
		style = pausedBarStyle
	}
	// Padding takes two cells; a wrapped bar would push the ribbon down a row.
	line := runewidth.Truncate(strings.Join(stats, "  •  "), m.layout.windowWidth-2, "…")
	return style.Render(line)
}

func (m *model) ribbonView() string {
	active := m.activeWord()
	lines := m.ribbon.render(func(idx int, text string) string {
		if idx == active {
			return hoverStyle.Render(text)
		}
		return text
	})
	if len(lines) == 0 {
		lines = []string{helperStyle.Render("(no text loaded)")}
	}
	return ribbonBoxStyle.Width(m.layout.ribbonWidth + 2).Render(strings.Join(lines, "\n"))
}

// tooltipView draws the hover count on the row under the ribbon, starting
// at the pointer column. The row is always emitted so nothing below it moves.
func (m *model) tooltipView() string {
	if !m.hover.Active {
		return ""
	}
	label := tooltipStyle.Render(fmt.Sprintf(" %s · %d ", m.hover.Word, m.hover.Count))
	col := m.hover.Column
	if limit := m.layout.windowWidth - lipgloss.Width(label); col > limit {
		col = limit
	}
	if col < 0 {
		col = 0
	}
	return strings.Repeat(" ", col) + label
}

func (m *model) modalView() string {
	width := m.layout.modalWidth
	header := fmt.Sprintf("%d matching sentences for %q", m.result.Occurrences, m.result.Query)
	hint := "Esc/q/Enter or click outside to close • ↑/↓ scroll"
	body := []string{
		titleStyle.Render(runewidth.Truncate(header, width, "…")),
		"",
		m.results.View(),
		"",
		helperStyle.Render(runewidth.Truncate(hint, width, "…")),
	}
	return modalBoxStyle.Width(m.layout.modalWidth + 2).Render(strings.Join(body, "\n"))
}

func (m *model) noticeView() string {
	width := m.layout.modalWidth - 4
	if width < minRibbonWidth {
		width = minRibbonWidth
	}
	body := errorStyle.Render(wordwrap.String(m.notice, width)) + "\n\n" + helperStyle.Render("Press Enter or click to dismiss.")
	return noticeBoxStyle.Render(body)
}

func (m *model) uploadView() string {
	return joinNonEmpty([]string{
		titleStyle.Render("Upload a .txt file"),
		m.uploadInput.View(),
		helperStyle.Render("Enter to load, Esc to cancel."),
	})
}

func (m *model) summaryWidth() int {
	return max(m.layout.ribbonWidth-2, minRibbonWidth)
}

func (m *model) summaryLines() []string {
	if m.summarizing {
		return []string{fmt.Sprintf("%s summarizing…", m.spinner.View())}
	}
	if strings.TrimSpace(m.summary) == "" {
		return nil
	}
	return strings.Split(wordwrap.String(m.summary, m.summaryWidth()), "\n")
}

// summaryView draws at most the rows the frame grants; a clipped summary
// ends in an ellipsis.
func (m *model) summaryView() string {
	lines := m.summaryLines()
	if rows := m.frame.summaryRows; len(lines) > rows {
		lines = lines[:rows]
		last := runewidth.Truncate(lines[rows-1], m.summaryWidth()-1, "")
		lines[rows-1] = last + "…"
	}
	return summaryStyle.Render(strings.Join(lines, "\n"))
}

// singleLine folds a message onto one row of the window.
func (m *model) singleLine(text string) string {
	return runewidth.Truncate(strings.Join(strings.Fields(text), " "), m.layout.windowWidth, "…")
}

type keyHint struct {
	Key         string
	Description string
}

func (m *model) legendView() string {
	hints := []keyHint{
		{"space", "Pause"},
		{"+/-", "Speed"},
		{"←/→", "Pick word"},
		{"enter", "Find"},
		{"u", "Upload"},
		{"r", "Reset"},
		{"s", "Summarize"},
		{"q", "Quit"},
	}
	if !m.helpVisible {
		hints = []keyHint{{"?", "Keys"}, {"q", "Quit"}}
	}
	cells := make([]string, 0, len(hints))
	for _, hint := range hints {
		cells = append(cells, keyStyle.Render(hint.Key)+keyDescStyle.Render(" "+hint.Description+" "))
	}
	return strings.Join(cells, "")
}

func joinNonEmpty(parts []string) string {
	var filtered []string
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			filtered = append(filtered, part)
		}
	}
	return strings.Join(filtered, "\n")
}
