package tui

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/clueinletters/internal/corpus"
	"github.com/csheth/clueinletters/internal/scroll"
	"github.com/csheth/clueinletters/internal/search"
	"github.com/csheth/clueinletters/internal/summary"
)

// Config wires runtime options into the TUI program.
type Config struct {
	Store       *corpus.Store
	Speed       scroll.Speed
	Position    int
	Width       int
	UploadLimit int64
	Summarizer  summary.Client
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	return newModel(config)
}

func newModel(config Config) *model {
	if config.Store == nil {
		config.Store = corpus.NewStore(corpus.Builtin())
	}
	if config.Speed == (scroll.Speed{}) {
		config.Speed = scroll.DefaultSpeed()
	}
	if config.Position == 0 {
		config.Position = scroll.DefaultPosition
	}
	config.Position = config.Speed.Clamp(config.Position)
	if config.Width <= 0 {
		config.Width = scroll.DefaultWidth
	}
	if config.UploadLimit <= 0 {
		config.UploadLimit = corpus.DefaultUploadLimit
	}

	uploadInput := textinput.New()
	uploadInput.Placeholder = uploadPlaceholder
	uploadInput.CharLimit = 512
	uploadInput.Width = 60

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	layout := newPageLayout()
	results := viewport.New(layout.modalWidth, 1)
	results.MouseWheelEnabled = true

	m := &model{
		config:      config,
		store:       config.Store,
		speed:       config.Speed,
		position:    config.Position,
		scheduler:   scroll.NewScheduler(config.Speed.Interval(config.Position)),
		jobs:        newJobBus(),
		layout:      layout,
		stage:       stageDisplay,
		uploadInput: uploadInput,
		results:     results,
		spinner:     spin,
		cursor:      -1,
		pointer:     pointer{x: -1, y: -1},
		infoMessage: "Space pauses, click a word to find its sentences.",
	}
	m.fit()
	return m
}

type pointer struct {
	x, y int
}

type model struct {
	config    Config
	store     *corpus.Store
	speed     scroll.Speed
	position  int
	scheduler *scroll.Scheduler
	jobs      *jobBus
	layout    pageLayout
	frame     frame
	ribbon    ribbonLayout
	stage     stage

	uploadInput textinput.Model
	results     viewport.Model
	result      search.Result
	spinner     spinner.Model

	hover   hoverState
	pointer pointer
	// cursor is the keyboard-selected word, -1 when the mouse drives hover.
	cursor int

	notice      string
	noticeFrom  stage
	summary     string
	summarizing bool

	errorMessage string
	infoMessage  string
	helpVisible  bool
}

func (m *model) Init() tea.Cmd {
	return m.scheduler.Start(m.store.Snapshot().Generation)
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	m.fit()
	return m, cmd
}

func (m *model) update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case scroll.TickMsg:
		ok, next := m.scheduler.Accept(msg)
		if !ok {
			return nil
		}
		if _, advanced := m.store.Advance(msg.Generation); advanced {
			m.refreshRibbon()
			m.refreshHover()
		}
		return next
	case spinner.TickMsg:
		if m.summarizing {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return cmd
		}
		return nil
	case jobSignalMsg:
		m.jobs.track(msg.Snapshot)
		return nil
	case jobResultEnvelope:
		m.jobs.track(msg.Snapshot)
		if msg.Payload == nil {
			return nil
		}
		return m.update(msg.Payload)
	case uploadResultMsg:
		return m.applyUpload(msg)
	case summaryResultMsg:
		m.summarizing = false
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("summary error: %v", msg.err)
			m.infoMessage = "Press s to retry."
			return nil
		}
		m.summary = msg.summary
		m.errorMessage = ""
		m.infoMessage = "Summary ready."
		return nil
	case tea.WindowSizeMsg:
		m.layout.Update(msg.Width, msg.Height)
		m.results.Width = m.layout.modalWidth
		m.fit()
		m.refreshRibbon()
		m.refreshResults()
		return nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m.quit()
		}
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return nil
}

func (m *model) handleKey(key tea.KeyMsg) tea.Cmd {
	switch m.stage {
	case stageNotice:
		switch key.String() {
		case "esc", "enter", " ", "q":
			m.dismissNotice()
		}
		return nil
	case stageResults:
		switch key.String() {
		case "esc", "q", "enter":
			m.closeResults()
			return nil
		}
		var cmd tea.Cmd
		m.results, cmd = m.results.Update(key)
		return cmd
	case stageUpload:
		switch key.Type {
		case tea.KeyEsc:
			m.cancelUpload()
			return nil
		case tea.KeyEnter:
			return m.submitUpload()
		}
		var cmd tea.Cmd
		m.uploadInput, cmd = m.uploadInput.Update(key)
		return cmd
	}

	switch key.String() {
	case "q":
		return m.quit()
	case " ":
		return m.togglePause()
	case "+", "=":
		return m.setPosition(m.speed.Faster(m.position))
	case "-", "_":
		return m.setPosition(m.speed.Slower(m.position))
	case "left", "h":
		m.moveCursor(-1)
	case "right", "l":
		m.moveCursor(1)
	case "enter":
		if m.cursor >= 0 && m.cursor < len(m.ribbon.words) {
			m.openResults(m.ribbon.words[m.cursor].Text)
		}
	case "esc":
		m.cursor = -1
		m.clearHover()
	case "u":
		return m.startUpload()
	case "r":
		return m.resetCorpus()
	case "s":
		return m.requestSummary()
	case "?":
		m.helpVisible = !m.helpVisible
	}
	return nil
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch m.stage {
	case stageNotice:
		if msg.Type == tea.MouseLeft {
			m.dismissNotice()
		}
		return nil
	case stageResults:
		switch msg.Type {
		case tea.MouseLeft:
			if !m.modalBounds().contains(msg.X, msg.Y) {
				m.closeResults()
			}
			return nil
		case tea.MouseWheelUp, tea.MouseWheelDown:
			var cmd tea.Cmd
			m.results, cmd = m.results.Update(msg)
			return cmd
		}
		return nil
	case stageUpload:
		return nil
	}

	m.pointer = pointer{x: msg.X, y: msg.Y}
	idx, onWord := m.wordAt(msg.X, msg.Y)
	switch msg.Type {
	case tea.MouseMotion:
		m.cursor = -1
		if onWord {
			m.setHover(idx, msg.X)
		} else {
			m.clearHover()
		}
	case tea.MouseLeft:
		if onWord {
			m.openResults(m.ribbon.words[idx].Text)
			return nil
		}
		if m.ribbonBounds().contains(msg.X, msg.Y) {
			return m.togglePause()
		}
	}
	return nil
}

func (m *model) wordAt(x, y int) (int, bool) {
	return m.ribbon.wordAt(y-ribbonContentTop, x-ribbonContentLeft)
}

// activeWord is the word drawn highlighted: the keyboard cursor when set,
// otherwise whatever currently sits under the pointer.
func (m *model) activeWord() int {
	if m.cursor >= 0 {
		return m.cursor
	}
	if idx, ok := m.wordAt(m.pointer.x, m.pointer.y); ok {
		return idx
	}
	return -1
}

// refreshHover keeps the tooltip on the word drawn highlighted after the
// ribbon moved under a still pointer or keyboard cursor.
func (m *model) refreshHover() {
	if m.cursor >= 0 && m.cursor < len(m.ribbon.words) {
		m.setHover(m.cursor, ribbonContentLeft+m.ribbon.words[m.cursor].Col)
		return
	}
	if idx, ok := m.wordAt(m.pointer.x, m.pointer.y); ok {
		m.setHover(idx, m.pointer.x)
		return
	}
	m.clearHover()
}

func (m *model) setHover(idx, column int) {
	word := m.ribbon.words[idx].Text
	count := search.CountWholeWord(m.store.Snapshot().Source.Text(), word)
	m.hover = hoverState{Word: word, Count: count, Column: column, Active: true}
}

func (m *model) clearHover() {
	m.hover = hoverState{}
}

func (m *model) moveCursor(delta int) {
	n := len(m.ribbon.words)
	if n == 0 {
		return
	}
	if m.cursor < 0 {
		if delta > 0 {
			m.cursor = 0
		} else {
			m.cursor = n - 1
		}
	} else {
		m.cursor = (m.cursor + delta + n) % n
	}
	m.pointer = pointer{x: -1, y: -1}
	w := m.ribbon.words[m.cursor]
	m.setHover(m.cursor, ribbonContentLeft+w.Col)
}

func (m *model) openResults(word string) {
	text := m.store.Snapshot().Source.Text()
	m.result = search.FindSentences(text, word)
	m.scheduler.Pause()
	m.stage = stageResults
	m.clearHover()
	m.refreshResults()
	m.results.GotoTop()
	log.Printf("[search] %q matched %d sentences", word, m.result.Occurrences)
}

// closeResults leaves the ribbon paused; only an explicit toggle resumes it.
func (m *model) closeResults() {
	m.stage = stageDisplay
	m.result = search.Result{}
	m.results.SetContent("")
	m.infoMessage = "Paused. Press space or click a blank spot to resume."
}

func (m *model) togglePause() tea.Cmd {
	cmd := m.scheduler.Toggle()
	if m.scheduler.State() == scroll.Paused {
		m.infoMessage = "Paused."
	} else {
		m.infoMessage = "Scrolling."
	}
	return cmd
}

func (m *model) setPosition(pos int) tea.Cmd {
	m.position = pos
	return m.scheduler.SetInterval(m.speed.Interval(pos))
}

func (m *model) startUpload() tea.Cmd {
	m.stage = stageUpload
	m.uploadInput.SetValue("")
	return m.uploadInput.Focus()
}

func (m *model) cancelUpload() {
	m.uploadInput.Blur()
	m.uploadInput.SetValue("")
	m.stage = stageDisplay
	m.infoMessage = "Upload canceled."
}

func (m *model) submitUpload() tea.Cmd {
	path, err := parseUploadPath(m.uploadInput.Value())
	if err != nil {
		m.uploadInput.Blur()
		m.stage = stageDisplay
		m.showNotice(fmt.Sprintf("Upload rejected: %v", err))
		return nil
	}
	if path == "" {
		m.cancelUpload()
		return nil
	}
	m.uploadInput.Blur()
	m.stage = stageDisplay
	m.infoMessage = fmt.Sprintf("Reading %s…", path)
	return m.jobs.Start(jobKindUpload, uploadJob(path, m.config.UploadLimit))
}

// applyUpload swaps in an accepted file. A rejected file only raises the
// notice; text, cursor and indicator stay as they were.
func (m *model) applyUpload(msg uploadResultMsg) tea.Cmd {
	if msg.err != nil {
		log.Printf("[corpus] upload rejected: %v", msg.err)
		m.showNotice(fmt.Sprintf("Upload rejected: %v", msg.err))
		return nil
	}
	snap := m.store.Replace(msg.source, msg.name)
	cmd := m.rebind(snap)
	m.infoMessage = fmt.Sprintf("Loaded %s (%d characters).", msg.name, snap.Source.Len())
	return cmd
}

func (m *model) resetCorpus() tea.Cmd {
	cmd := m.rebind(m.store.Reset())
	m.infoMessage = "Default text restored."
	return cmd
}

func (m *model) rebind(snap corpus.Snapshot) tea.Cmd {
	if m.stage == stageResults {
		m.closeResults()
	}
	m.cursor = -1
	m.summary = ""
	m.errorMessage = ""
	m.refreshRibbon()
	m.refreshHover()
	return m.scheduler.Rebind(snap.Generation)
}

func (m *model) requestSummary() tea.Cmd {
	if m.config.Summarizer == nil {
		m.errorMessage = "No summarizer configured."
		return nil
	}
	if m.summarizing {
		return nil
	}
	text := m.store.Snapshot().Viewport(m.config.Width)
	if strings.TrimSpace(text) == "" {
		m.errorMessage = "Nothing to summarize."
		return nil
	}
	m.summarizing = true
	m.errorMessage = ""
	m.infoMessage = fmt.Sprintf("Summarizing with %s…", m.config.Summarizer.Name())
	return tea.Batch(m.jobs.Start(jobKindSummary, summaryJob(m.config.Summarizer, text)), m.spinner.Tick)
}

func (m *model) showNotice(text string) {
	if m.stage != stageNotice {
		m.noticeFrom = m.stage
	}
	m.notice = text
	m.stage = stageNotice
}

func (m *model) dismissNotice() {
	m.notice = ""
	m.stage = m.noticeFrom
	if m.stage == stageNotice {
		m.stage = stageDisplay
	}
}

func (m *model) quit() tea.Cmd {
	m.scheduler.Stop()
	return tea.Quit
}

func (m *model) refreshRibbon() {
	text := m.store.Snapshot().Viewport(m.config.Width)
	m.ribbon = layoutRibbon(text, m.layout.ribbonWidth, m.frame.ribbonLines)
	if m.cursor >= len(m.ribbon.words) {
		m.cursor = len(m.ribbon.words) - 1
	}
}

func (m *model) refreshResults() {
	if m.stage != stageResults {
		return
	}
	if m.result.Empty() {
		m.results.SetContent(helperStyle.Render(fmt.Sprintf("No sentence contains %q.", m.result.Query)))
		return
	}
	width := m.layout.modalWidth
	rendered := m.result.Render(func(s string) string {
		return matchStyle.Render(s)
	})
	for i, sentence := range rendered {
		rendered[i] = wordwrap.String(sentence, width)
	}
	m.results.SetContent(strings.Join(rendered, "\n\n"))
}
