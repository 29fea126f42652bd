package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/Haimrich/mismem/memtype"
	"github.com/Haimrich/mismem/procfeed"
	"github.com/Haimrich/mismem/session"
)

// pollTick drives periodic progress/result polling; it is rescheduled on
// every tick, whether or not a scan is busy.
type pollTick struct{}

func poll(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return pollTick{}
	})
}

type searchDoneMsg struct{ err error }

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	errColor  = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF6B6B"}

	titleStyle = lipgloss.NewStyle().Foreground(subtle).Padding(0, 1)

	processStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(highlight).
			Padding(1)

	resultStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(special).
			Padding(1)

	progressStyle = lipgloss.NewStyle().Padding(0, 1)

	popupStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(errColor).
			Padding(1, 2)
)

// pane is which of the two top-level screens is active.
type pane int

const (
	paneChooser pane = iota
	paneResults
)

type model struct {
	sess *session.Session

	pane  pane
	tick  time.Duration
	debug bool

	procTable   table.Model
	resultTable table.Model

	tagIdx         int // index into memtype tags, see tagOptions
	operand        textinput.Model
	bar            progress.Model
	tagList        list.Model
	showingTagList bool

	err    error
	popup  string
	width  int
	height int
}

var tagOptions = []memtype.Tag{
	memtype.I32, memtype.U32, memtype.I64, memtype.U64,
	memtype.I16, memtype.U16, memtype.I8, memtype.U8,
	memtype.I128, memtype.U128, memtype.F32, memtype.F64,
}

// tagItem adapts a memtype.Tag to bubbles/list's list.Item interface.
type tagItem memtype.Tag

func (t tagItem) Title() string       { return memtype.Tag(t).String() }
func (t tagItem) Description() string { return fmt.Sprintf("%d bytes", memtype.Tag(t).Width()) }
func (t tagItem) FilterValue() string { return memtype.Tag(t).String() }

func newTagList() list.Model {
	items := make([]list.Item, len(tagOptions))
	for i, tag := range tagOptions {
		items[i] = tagItem(tag)
	}
	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = "select a datatype"
	return l
}

func newModel(tick time.Duration, debug bool) *model {
	ti := textinput.New()
	ti.Placeholder = "operand value"
	ti.CharLimit = 48
	ti.Width = 24

	cols := []table.Column{
		{Title: "PID", Width: 8},
		{Title: "Name", Width: 24},
		{Title: "Working Set (kB)", Width: 18},
	}
	pt := table.New(table.WithColumns(cols), table.WithFocused(true))

	rcols := []table.Column{
		{Title: "Address", Width: 20},
		{Title: "Current", Width: 16},
		{Title: "Previous", Width: 16},
	}
	rt := table.New(table.WithColumns(rcols), table.WithFocused(true))

	return &model{
		sess:        session.New(),
		pane:        paneChooser,
		tick:        tick,
		debug:       debug,
		procTable:   pt,
		resultTable: rt,
		operand:     ti,
		bar:         progress.New(progress.WithDefaultGradient()),
		tagList:     newTagList(),
	}
}

func (m *model) loadProcesses() {
	procs, err := procfeed.List()
	if err != nil {
		m.err = err
		return
	}
	rows := make([]table.Row, 0, len(procs))
	for _, p := range procs {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", p.Pid), p.Name, fmt.Sprintf("%d", p.WorkingSetKB),
		})
	}
	m.procTable.SetRows(rows)
}

func (m *model) refreshResultTable() {
	rows := make([]table.Row, 0, m.sess.Len())
	for _, r := range m.sess.Results() {
		rows = append(rows, table.Row{r.Label, r.Current, r.Previous})
	}
	m.resultTable.SetRows(rows)
}

func (m *model) Init() tea.Cmd {
	m.loadProcesses()
	return poll(m.tick)
}

func (m *model) currentTag() memtype.Tag {
	return tagOptions[m.tagIdx%len(tagOptions)]
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case pollTick:
		st := m.sess.Progress()
		cmd := m.bar.SetPercent(st.Fraction)
		if m.pane == paneResults {
			m.refreshResultTable()
		}
		return m, tea.Batch(cmd, poll(m.tick))

	case searchDoneMsg:
		if msg.err != nil {
			m.popup = msg.err.Error()
		}
		m.refreshResultTable()
		return m, nil

	case progress.FrameMsg:
		newModel, cmd := m.bar.Update(msg)
		if bm, ok := newModel.(progress.Model); ok {
			m.bar = bm
		}
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.tagList.SetSize(msg.Width-4, msg.Height-4)

	case tea.KeyMsg:
		if m.popup != "" {
			m.popup = ""
			return m, nil
		}
		switch m.pane {
		case paneChooser:
			return m.updateChooser(msg)
		case paneResults:
			return m.updateResults(msg)
		}
	}
	return m, nil
}

func (m *model) updateChooser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		m.loadProcesses()
		return m, nil
	case "enter":
		row := m.procTable.SelectedRow()
		if row == nil {
			return m, nil
		}
		var pid int
		fmt.Sscanf(row[0], "%d", &pid)
		if err := m.sess.Attach(pid); err != nil {
			m.popup = err.Error()
			return m, nil
		}
		m.pane = paneResults
		return m, nil
	}
	var cmd tea.Cmd
	m.procTable, cmd = m.procTable.Update(msg)
	return m, cmd
}

func (m *model) updateResults(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showingTagList {
		switch msg.String() {
		case "enter":
			if item, ok := m.tagList.SelectedItem().(tagItem); ok {
				for i, t := range tagOptions {
					if t == memtype.Tag(item) {
						m.tagIdx = i
					}
				}
			}
			m.showingTagList = false
			return m, nil
		case "esc":
			m.showingTagList = false
			return m, nil
		}
		var cmd tea.Cmd
		m.tagList, cmd = m.tagList.Update(msg)
		return m, cmd
	}
	if m.operand.Focused() {
		switch msg.Type {
		case tea.KeyEnter:
			text := m.operand.Value()
			m.operand.Blur()
			return m, m.runSearch(text)
		case tea.KeyEsc:
			m.operand.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.operand, cmd = m.operand.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.sess.Close()
		return m, tea.Quit
	case "esc":
		m.pane = paneChooser
		return m, nil
	case "/":
		m.operand.Focus()
		return m, textinput.Blink
	case "t":
		m.showingTagList = true
		return m, nil
	case "f":
		if m.sess.Mode() == session.ModeFirstSearch {
			m.sess.SetMode(session.ModeFilter)
		} else {
			m.sess.SetMode(session.ModeFirstSearch)
		}
		return m, nil
	case "u":
		return m, m.runRefresh()
	case "d":
		if m.debug {
			m.popup = spew.Sdump(m.sess.Results())
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.resultTable, cmd = m.resultTable.Update(msg)
	return m, cmd
}

func (m *model) runSearch(operand string) tea.Cmd {
	tag := m.currentTag()
	return func() tea.Msg {
		return searchDoneMsg{err: m.sess.Search(tag, operand)}
	}
}

func (m *model) runRefresh() tea.Cmd {
	return func() tea.Msg {
		return searchDoneMsg{err: m.sess.Refresh()}
	}
}

func (m *model) View() string {
	if m.popup != "" {
		return popupStyle.Render(m.popup)
	}
	switch m.pane {
	case paneChooser:
		return m.viewChooser()
	case paneResults:
		return m.viewResults()
	}
	return ""
}

func (m *model) viewChooser() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("mismem — select a process (enter to attach, r to refresh, q to quit)"))
	b.WriteString("\n")
	b.WriteString(processStyle.Render(m.procTable.View()))
	return b.String()
}

func (m *model) viewResults() string {
	if m.showingTagList {
		return m.tagList.View()
	}
	var b strings.Builder
	mode := "first search"
	if m.sess.Mode() == session.ModeFilter {
		mode = "filter"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf(
		"mismem — type %s, mode %s (t=type, f=mode, /=search, u=refresh, esc=back, q=quit)",
		m.currentTag(), mode,
	)))
	b.WriteString("\n")
	b.WriteString(progressStyle.Render(m.bar.View()))
	b.WriteString("\n")
	if m.operand.Focused() {
		b.WriteString(m.operand.View())
		b.WriteString("\n")
	}
	b.WriteString(resultStyle.Render(m.resultTable.View()))
	return b.String()
}

func main() {
	pid := flag.Int("pid", 0, "attach immediately to this process id")
	tick := flag.Duration("tick", 50*time.Millisecond, "UI redraw/poll interval")
	debug := flag.Bool("debug", false, "enable the d key debug snapshot dump")
	flag.Parse()

	m := newModel(*tick, *debug)
	if *pid != 0 {
		if err := m.sess.Attach(*pid); err != nil {
			fmt.Fprintln(os.Stderr, "mismem:", err)
			os.Exit(1)
		}
		m.pane = paneResults
	}

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "mismem:", err)
		os.Exit(1)
	}
}
