package tui

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/stefanpenner/quest/pkg/app"
	"github.com/stefanpenner/quest/pkg/engine"
	gsync "github.com/stefanpenner/quest/pkg/sync"
)

// FileChangedMsg is sent when the file watcher detects changes to the save.
type FileChangedMsg struct{}

// SyncDoneMsg is sent when git sync completes.
type SyncDoneMsg struct {
	Err error
}

// EditorFinishedMsg is sent when $EDITOR returns.
type EditorFinishedMsg struct {
	Err error
}

// Model is the Bubble Tea model for the goal tracker.
type Model struct {
	app          *app.App
	keys         KeyMap
	width        int
	height       int
	items        []GoalItem
	visibleItems []GoalItem
	cursor       int
	focusedPane  int // 0 = goals, 1 = details
	detailScroll int

	// Unsaved changes since the last save or reload
	dirty bool

	// Modal state
	showHelpModal    bool
	showResetConfirm bool

	// Add goal form
	isAdding bool
	form     addForm

	// Search state
	isSearching bool
	searchQuery string

	// Status message
	statusMsg     string
	statusTimeout time.Time

	// Cached glamour renderer (expensive to create)
	glamourRenderer *glamour.TermRenderer
	glamourWidth    int
}

// NewModel creates a new TUI model.
func NewModel(a *app.App) Model {
	m := Model{
		app:  a,
		keys: DefaultKeyMap(),
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		rightWidth := msg.Width - (msg.Width / 3) - 1 - 2
		if rightWidth < 20 {
			rightWidth = 20
		}
		m.getGlamourRenderer(rightWidth)
		return m, tea.ClearScreen

	case FileChangedMsg:
		if m.dirty {
			m.setStatus("Save changed on disk; R to reload, w to overwrite")
			return m, nil
		}
		m.reload()
		return m, nil

	case SyncDoneMsg:
		if msg.Err != nil {
			m.setStatus("Sync failed: " + msg.Err.Error())
		} else {
			m.setStatus("Synced successfully")
			m.reload()
		}
		return m, nil

	case EditorFinishedMsg:
		if msg.Err != nil {
			m.setStatus("Editor: " + msg.Err.Error())
		}
		m.reload()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}

	if m.isAdding {
		var cmd tea.Cmd
		m.form.input, cmd = m.form.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.isAdding {
		return m.handleAddForm(msg)
	}

	if m.isSearching {
		return m.handleSearchInput(msg)
	}

	if m.showHelpModal {
		if msg.String() == "?" || msg.Type == tea.KeyEsc || msg.String() == "q" {
			m.showHelpModal = false
		}
		return m, nil
	}

	if m.showResetConfirm {
		switch msg.String() {
		case "y", "Y":
			m.app.Engine.Reset()
			m.dirty = true
			m.refresh()
			m.setStatus("Reset: goals, badges and score cleared")
		}
		m.showResetConfirm = false
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		if m.dirty {
			if err := m.app.Save(); err != nil {
				m.setStatus("Error saving: " + err.Error())
				return m, nil
			}
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelpModal = true
		return m, nil

	case msg.Type == tea.KeyEsc:
		if m.searchQuery != "" {
			m.searchQuery = ""
			m.applySearchFilter()
		}
		return m, nil

	case key.Matches(msg, m.keys.Tab):
		m.focusedPane = 1 - m.focusedPane
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.focusedPane == 1 {
			if m.detailScroll > 0 {
				m.detailScroll--
			}
		} else if m.cursor > 0 {
			m.cursor--
			m.detailScroll = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.focusedPane == 1 {
			m.detailScroll++
		} else if m.cursor < len(m.visibleItems)-1 {
			m.cursor++
			m.detailScroll = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Record):
		m.recordSelected()
		return m, nil

	case key.Matches(msg, m.keys.Add):
		m.isAdding = true
		m.form = newAddForm()
		return m, nil

	case key.Matches(msg, m.keys.Save):
		if err := m.app.Save(); err != nil {
			m.setStatus("Error saving: " + err.Error())
			return m, nil
		}
		m.dirty = false
		m.setStatus("Saved " + m.app.SaveName)
		return m, nil

	case key.Matches(msg, m.keys.Reload):
		m.reload()
		m.setStatus("Reloaded " + m.app.SaveName)
		return m, nil

	case key.Matches(msg, m.keys.Edit):
		return m, m.openEditor()

	case key.Matches(msg, m.keys.Reset):
		m.showResetConfirm = true
		return m, nil

	case key.Matches(msg, m.keys.Sync):
		if m.dirty {
			if err := m.app.Save(); err != nil {
				m.setStatus("Error saving: " + err.Error())
				return m, nil
			}
			m.dirty = false
		}
		m.setStatus("Syncing...")
		return m, m.doSync()

	case key.Matches(msg, m.keys.Search):
		m.isSearching = true
		return m, nil
	}

	return m, nil
}

func (m Model) handleAddForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.isAdding = false
		return m, nil

	case tea.KeyEnter:
		if err := m.form.advance(); err != nil {
			m.setStatus("Error: " + err.Error())
			return m, nil
		}
		if !m.form.done() {
			return m, nil
		}
		m.isAdding = false

		f := m.form
		idx, err := m.app.AddGoal(f.kind, f.title, f.description, f.points, f.opts)
		if err != nil {
			m.setStatus("Error: " + err.Error())
			return m, nil
		}
		m.dirty = true
		m.searchQuery = ""
		m.refresh()
		m.moveCursorToIndex(idx)
		m.setStatus("Added: " + f.title)
		return m, nil

	default:
		var cmd tea.Cmd
		m.form.input, cmd = m.form.input.Update(msg)
		return m, cmd
	}
}

func (m Model) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.isSearching = false
		m.searchQuery = ""
		m.applySearchFilter()
		return m, nil

	case tea.KeyEnter, tea.KeyDown, tea.KeyTab:
		// Keep the filter, leave the input
		m.isSearching = false
		return m, nil

	case tea.KeyBackspace:
		if len(m.searchQuery) > 0 {
			_, size := utf8.DecodeLastRuneInString(m.searchQuery)
			m.searchQuery = m.searchQuery[:len(m.searchQuery)-size]
		}
		m.applySearchFilter()
		return m, nil

	default:
		switch msg.Type {
		case tea.KeyRunes:
			m.searchQuery += string(msg.Runes)
			m.applySearchFilter()
		case tea.KeySpace:
			m.searchQuery += " "
			m.applySearchFilter()
		}
		return m, nil
	}
}

// recordSelected records an event on the goal under the cursor.
func (m *Model) recordSelected() {
	if m.cursor >= len(m.visibleItems) {
		return
	}
	item := m.visibleItems[m.cursor]

	res, err := m.app.Record(item.Index)
	if err != nil {
		m.setStatus("Error: " + err.Error())
		return
	}
	m.refresh()
	m.moveCursorToIndex(item.Index)

	if res.Awarded == 0 {
		if item.Entry.Status.Complete {
			m.setStatus(item.Name + " is already complete")
		} else {
			m.setStatus("No points awarded for " + item.Name)
		}
		return
	}
	m.dirty = true
	m.setStatus(recordMessage(res))
}

func recordMessage(res engine.Result) string {
	parts := []string{fmt.Sprintf("+%d points", res.Awarded)}
	if res.Badge != "" {
		parts = append(parts, IconBadge+" "+res.Badge)
	}
	if res.LevelUp {
		parts = append(parts, fmt.Sprintf("Level up! Now level %d", res.Level))
	}
	return strings.Join(parts, "  ")
}

func (m *Model) applySearchFilter() {
	m.visibleItems = FilterItems(m.items, m.searchQuery)
	if m.cursor >= len(m.visibleItems) {
		m.cursor = len(m.visibleItems) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.detailScroll = 0
}

func (m *Model) moveCursorToIndex(index int) {
	for i, item := range m.visibleItems {
		if item.Index == index {
			m.cursor = i
			return
		}
	}
}

// reload re-reads the active save. On a corrupt file the current goals stay.
func (m *Model) reload() {
	if err := m.app.Reload(); err != nil {
		m.setStatus("Reload failed: " + err.Error())
		return
	}
	m.dirty = false
	m.refresh()
}

// refresh rebuilds the list from the engine, keeping the search filter.
func (m *Model) refresh() {
	m.items = BuildItems(m.app.Engine.Goals())
	m.applySearchFilter()
}

func (m *Model) getGlamourRenderer(width int) *glamour.TermRenderer {
	if m.glamourRenderer != nil && m.glamourWidth == width {
		return m.glamourRenderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	m.glamourRenderer = r
	m.glamourWidth = width
	return r
}

func (m *Model) setStatus(msg string) {
	m.statusMsg = msg
	m.statusTimeout = time.Now().Add(3 * time.Second)
}

func (m *Model) openEditor() tea.Cmd {
	// The editor works on the file, so flush memory first
	if err := m.app.Save(); err != nil {
		m.setStatus("Error saving: " + err.Error())
		return nil
	}
	m.dirty = false

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vim"
	}
	c := exec.Command(editor, m.app.SavePath())
	return tea.ExecProcess(c, func(err error) tea.Msg {
		return EditorFinishedMsg{Err: err}
	})
}

func (m Model) doSync() tea.Cmd {
	dir := m.app.DataDir
	return func() tea.Msg {
		return SyncDoneMsg{Err: gsync.SyncRepo(dir, io.Discard)}
	}
}

// Run starts the TUI on a and blocks until the user quits.
func Run(a *app.App) error {
	p := tea.NewProgram(NewModel(a), tea.WithAltScreen())

	stop, err := StartWatcher(a.SavePath(), p)
	if err != nil {
		a.Log.Warn("file watcher disabled", "err", err)
	} else {
		defer stop()
	}

	_, err = p.Run()
	return err
}
