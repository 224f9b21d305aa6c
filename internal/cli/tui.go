package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/chordsheet/pkg/chord"
	"github.com/matzehuels/chordsheet/pkg/layout"
	"github.com/matzehuels/chordsheet/pkg/pipeline"
	"github.com/matzehuels/chordsheet/pkg/render"
	"github.com/matzehuels/chordsheet/pkg/song"
)

// Rows taken by the header and footer around the viewport.
const (
	headerRows = 2
	footerRows = 2
)

var (
	sheetTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	sheetStatusStyle = lipgloss.NewStyle().Foreground(colorDim)
	sheetErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Key Map
// =============================================================================

type sheetKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Narrower key.Binding
	Wider    key.Binding
	Save     key.Binding
	Quit     key.Binding
}

func (k sheetKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Narrower, k.Wider, k.Save, k.Quit}
}

func (k sheetKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

var defaultSheetKeys = sheetKeyMap{
	Up:       key.NewBinding(key.WithKeys("+", "=", "up"), key.WithHelp("+/↑", "key up")),
	Down:     key.NewBinding(key.WithKeys("-", "down"), key.WithHelp("-/↓", "key down")),
	Narrower: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "fewer columns")),
	Wider:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "more columns")),
	Save:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "save")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// =============================================================================
// SheetModel - Interactive sheet viewer
// =============================================================================

// SaveFunc writes a sheet to disk and returns the path written.
type SaveFunc func(sheet layout.Sheet) (string, error)

// savedMsg reports the outcome of a SaveFunc.
type savedMsg struct {
	path string
	err  error
}

// SheetModel is the bubbletea model for the view command. It keeps the
// parsed song and re-lays it out whenever the transposition or column count
// changes; all layouts run on the update loop.
type SheetModel struct {
	Song      *song.Song
	Transpose int
	Columns   int
	Sheet     layout.Sheet

	opts       pipeline.Options
	chordStyle lipgloss.Style
	viewport   viewport.Model
	help       help.Model
	keys       sheetKeyMap
	save       SaveFunc
	status     string
	failed     bool
	ready      bool
}

// NewSheetModel lays out s with opts and returns the viewer model. opts must
// have passed layout validation; save may be nil to disable saving.
func NewSheetModel(s *song.Song, opts pipeline.Options, theme render.Theme, save SaveFunc) SheetModel {
	m := SheetModel{
		Song:       s,
		Transpose:  opts.Transpose,
		Columns:    opts.Columns,
		opts:       opts,
		chordStyle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(theme.Chord.Hex())),
		help:       help.New(),
		keys:       defaultSheetKeys,
		save:       save,
	}
	m.relayout()
	return m
}

func (m SheetModel) Init() tea.Cmd {
	return nil
}

func (m SheetModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			m.shift(1)
			return m, nil
		case key.Matches(msg, m.keys.Down):
			m.shift(-1)
			return m, nil
		case key.Matches(msg, m.keys.Narrower):
			if m.Columns > 1 {
				m.Columns--
				m.relayout()
			}
			return m, nil
		case key.Matches(msg, m.keys.Wider):
			if m.Columns < pipeline.MaxColumns {
				m.Columns++
				m.relayout()
			}
			return m, nil
		case key.Matches(msg, m.keys.Save):
			if m.save == nil {
				return m, nil
			}
			m.status, m.failed = "Saving...", false
			save, sheet := m.save, m.Sheet
			return m, func() tea.Msg {
				path, err := save(sheet)
				return savedMsg{path: path, err: err}
			}
		}

	case savedMsg:
		if msg.err != nil {
			m.status, m.failed = "Save failed: "+msg.err.Error(), true
		} else {
			m.status, m.failed = "Saved "+msg.path, false
		}
		return m, nil

	case tea.WindowSizeMsg:
		height := max(msg.Height-headerRows-footerRows, 1)
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		m.help.Width = msg.Width
		m.viewport.SetContent(m.styledSheet())
		return m, nil
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m SheetModel) View() string {
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	title := m.Song.Title
	if m.Song.Artist != "" {
		title += " · " + m.Song.Artist
	}
	b.WriteString(sheetTitleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(sheetStatusStyle.Render(fmt.Sprintf("key %s  transpose %+d  columns %d", m.Sheet.Key, m.Transpose, m.Sheet.Columns)))
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.failed {
		b.WriteString(sheetErrorStyle.Render(m.status))
	} else {
		b.WriteString(sheetStatusStyle.Render(m.status))
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// shift changes the transposition by delta, staying within one octave.
func (m *SheetModel) shift(delta int) {
	m.Transpose = (m.Transpose + delta) % chord.Octave
	m.relayout()
}

func (m *SheetModel) relayout() {
	opts := m.opts
	opts.Transpose = m.Transpose
	opts.Columns = m.Columns
	m.Sheet = pipeline.Layout(m.Song, opts)
	if m.ready {
		m.viewport.SetContent(m.styledSheet())
	}
}

// styledSheet renders the sheet rows with chords in the chord colour.
func (m SheetModel) styledSheet() string {
	bold := lipgloss.NewStyle().Bold(true)
	rows := make([]string, len(m.Sheet.Lines))
	for i, row := range m.Sheet.Lines {
		var b strings.Builder
		for _, span := range render.ParseMarkup(row) {
			switch span.Kind {
			case render.SpanChord:
				b.WriteString(m.chordStyle.Render(span.Text))
			case render.SpanBold:
				b.WriteString(bold.Render(span.Text))
			default:
				b.WriteString(span.Text)
			}
		}
		rows[i] = strings.TrimRight(b.String(), " ")
	}
	return strings.Join(rows, "\n")
}
