package ui

import (
	"reflect"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/pman/internal/action"
	"github.com/atomicstack/pman/internal/logging/events"
	"github.com/atomicstack/pman/internal/theme"
	"github.com/atomicstack/pman/internal/ui/dialog"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model shared by every pman view.
type Model struct {
	sessions SessionManager
	vcs      VersionControl
	editor   EditorBridge

	keys   action.KeyMap
	screen screen
	dialog dialog.Dialog

	errMsg     string
	infoMsg    string
	infoExpire time.Time
	quitting   bool

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	help              help.Model
	filterCursor      cursor.Model
	filterFocused     bool
	filterCursorDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel builds the model and loads the initial view.
func NewModel(opts Options) *Model {
	m := &Model{
		sessions:   opts.Sessions,
		vcs:        opts.VCS,
		editor:     opts.Editor,
		keys:       action.DefaultKeyMap(),
		showFooter: opts.ShowFooter,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.help = newHelp()
	c := cursor.New()
	if styles.Cursor != nil {
		c.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		c.TextStyle = styles.Filter.Copy()
	}
	c.SetChar(" ")
	m.filterCursor = c
	m.registerHandlers()
	m.switchView(opts.View)
	return m
}

func newHelp() help.Model {
	h := help.New()
	h.ShortSeparator = "  "
	if styles.HelpKey != nil {
		h.Styles.ShortKey = styles.HelpKey.Copy()
	}
	if styles.HelpDesc != nil {
		h.Styles.ShortDesc = styles.HelpDesc.Copy()
	}
	if styles.HelpSeparator != nil {
		h.Styles.ShortSeparator = styles.HelpSeparator.Copy()
		h.Styles.Ellipsis = styles.HelpSeparator.Copy()
	}
	return h
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	m.filterFocused = true
	return m.filterCursor.Focus()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if cmd := m.updateFilterCursorModel(msg); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(fileChosenMsg{}):     m.handleFileChosenMsg,
		reflect.TypeOf(pagerClosedMsg{}):    m.handlePagerClosedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if m.filterCursorDirty {
		m.filterCursorDirty = false
		if m.filterFocused {
			m.filterCursor.Blink = false
			if cmd := m.filterCursor.BlinkCmd(); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// ActiveView reports which screen is showing.
func (m *Model) ActiveView() action.View {
	if m.screen == nil {
		return action.ViewSessions
	}
	return m.screen.kind()
}

// InRepository reports whether worktree and diff commands are available.
func (m *Model) InRepository() bool {
	return m.vcs != nil
}

// Quitting reports whether the model has asked the program to exit.
func (m *Model) Quitting() bool {
	return m.quitting
}

// Err returns the message currently shown on the status line.
func (m *Model) Err() string {
	return m.errMsg
}

// Info returns the current notice, if any.
func (m *Model) Info() string {
	return m.currentInfo()
}

// Query returns the active screen's filter text.
func (m *Model) Query() string {
	return m.screen.list().Query()
}

// DialogName returns the open dialog's name, or "" when none is open.
func (m *Model) DialogName() string {
	if m.dialog == nil {
		return ""
	}
	return m.dialog.Name()
}

// Labels returns the rows passing the current query, best match first.
func (m *Model) Labels() []string {
	l := m.screen.list()
	out := make([]string, l.Len())
	for i := range out {
		out[i] = m.screen.label(i)
	}
	return out
}

// Selected returns the label under the cursor.
func (m *Model) Selected() (string, bool) {
	pos, ok := m.screen.list().Cursor()
	if !ok {
		return "", false
	}
	return m.screen.label(pos), true
}

func (m *Model) newScreen(v action.View) screen {
	switch v {
	case action.ViewPalette:
		return newPaletteScreen(m.sessions, m.vcs != nil)
	case action.ViewWorktrees:
		return newWorktreesScreen(m.vcs)
	case action.ViewBuffers:
		return newBuffersScreen(m.editor)
	default:
		return newSessionsScreen(m.sessions)
	}
}

func (m *Model) switchView(v action.View) {
	m.screen = m.newScreen(v)
	m.filterCursorDirty = true
	events.UI.View(m.screen.kind().String())
	m.reload()
}

func (m *Model) reload() {
	if err := m.screen.reload(); err != nil {
		m.fail(err)
	}
}

func (m *Model) openDialog(d dialog.Dialog) {
	m.dialog = d
	events.Dialog.Open(d.Name())
}

func (m *Model) closeDialog() {
	if m.dialog == nil {
		return
	}
	events.Dialog.Close(m.dialog.Name())
	m.dialog = nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	return tea.Quit
}
