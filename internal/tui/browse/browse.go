// Package browse implements the interactive skill browser: a list of
// registered URI templates on the left and a rendered markdown preview of
// the selected skill on the right.
package browse

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/termenv"

	"skillmcp/internal/logging"
	"skillmcp/internal/tui/helpers"
	"skillmcp/internal/tui/styles"
)

// SkillItem is one browsable catalog entry. Content is the full markdown
// body, already loaded when the catalog was built.
type SkillItem struct {
	Template string
	Name     string
	Desc     string
	MIMEType string
	Content  string
}

func (s SkillItem) Title() string       { return s.Name }
func (s SkillItem) Description() string { return s.Desc }
func (s SkillItem) FilterValue() string { return s.Name + " " + s.Template }

type KeyMap struct {
	Up           key.Binding
	Down         key.Binding
	Quit         key.Binding
	Filter       key.Binding
	ToggleFormat key.Binding
	FocusLeft    key.Binding
	FocusRight   key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Quit:         key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
		Filter:       key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter")),
		ToggleFormat: key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "toggle format")),
		FocusLeft:    key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "focus list")),
		FocusRight:   key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "focus preview")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Filter, k.ToggleFormat, k.FocusRight, k.FocusLeft, k.Quit}
}

func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Filter, k.ToggleFormat, k.FocusRight, k.FocusLeft, k.Quit},
	}
}

// focusedPane identifies which pane (list or preview) has keyboard focus
type focusedPane int

const (
	focusList focusedPane = iota
	focusPreview
)

// Model is the Bubble Tea model for the skill browser.
type Model struct {
	logger *logging.AppLogger

	items    []SkillItem
	list     list.Model
	viewport viewport.Model
	keys     KeyMap
	help     help.Model

	windowWidth  int
	windowHeight int

	useGlamour   bool
	glamourStyle string
	renderCache  map[string]string

	focusPane focusedPane
}

// detectGlamourStyle attempts to detect terminal background using termenv,
// but will respect GLAMOUR_STYLE if set to a concrete value (not "auto").
// A timeout ensures we never hang on terminals that don't respond.
func detectGlamourStyle(timeout time.Duration) string {
	defaultStyle := "dark"

	style := os.Getenv("GLAMOUR_STYLE")
	if style != "" && style != "auto" {
		return style
	}

	ch := make(chan string, 1)
	go func() {
		out := termenv.NewOutput(os.Stdout)
		if out.HasDarkBackground() {
			ch <- "dark"
			return
		}
		ch <- "light"
	}()

	select {
	case s := <-ch:
		return s
	case <-time.After(timeout):
		return defaultStyle
	}
}

// NewModel creates a skill browser over the given catalog entries.
func NewModel(items []SkillItem, ctx helpers.UIContext) Model {
	listItems := make([]list.Item, len(items))
	for i, it := range items {
		listItems[i] = it
	}

	l := list.New(listItems, list.NewDefaultDelegate(), ctx.Width, ctx.Height)
	l.Title = "Skills"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)

	vp := viewport.New(ctx.Width, ctx.Height)
	vp.MouseWheelEnabled = true

	return Model{
		logger:       ctx.Logger,
		items:        items,
		list:         l,
		viewport:     vp,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		windowWidth:  ctx.Width,
		windowHeight: ctx.Height,
		useGlamour:   true,
		renderCache:  make(map[string]string),
		focusPane:    focusList,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.windowWidth = msg.Width
		m.windowHeight = msg.Height
		m.applyLayout()
		m.refreshPreview()
		return m, nil

	case tea.MouseMsg:
		var vpcmd tea.Cmd
		m.viewport, vpcmd = m.viewport.Update(msg)
		return m, vpcmd

	case tea.KeyMsg:
		// While the list filter input is active, all keys go to the list.
		if m.list.FilterState() == list.Filtering {
			var lcmd tea.Cmd
			m.list, lcmd = m.list.Update(msg)
			m.refreshPreview()
			return m, lcmd
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.FocusRight):
			m.focusPane = focusPreview
			return m, nil

		case key.Matches(msg, m.keys.FocusLeft):
			m.focusPane = focusList
			return m, nil

		case key.Matches(msg, m.keys.ToggleFormat):
			m.useGlamour = !m.useGlamour
			m.refreshPreview()
			return m, nil
		}

		if m.focusPane == focusPreview {
			var vcmd tea.Cmd
			m.viewport, vcmd = m.viewport.Update(msg)
			return m, vcmd
		}

		var lcmd tea.Cmd
		m.list, lcmd = m.list.Update(msg)
		cmds = append(cmds, lcmd)
		m.refreshPreview()
		return m, tea.Batch(cmds...)
	}

	var lcmd tea.Cmd
	m.list, lcmd = m.list.Update(msg)
	return m, lcmd
}

// Selected returns the currently highlighted skill, if any.
func (m Model) Selected() (SkillItem, bool) {
	item, ok := m.list.SelectedItem().(SkillItem)
	return item, ok
}

func (m *Model) applyLayout() {
	listWidth := m.windowWidth / 3
	if listWidth < 24 {
		listWidth = 24
	}
	vpWidth := m.windowWidth - listWidth - 8
	if vpWidth < 20 {
		vpWidth = 20
	}
	contentHeight := m.windowHeight - 8
	if contentHeight < 5 {
		contentHeight = 5
	}

	m.list.SetSize(listWidth, contentHeight)
	m.viewport.Width = vpWidth
	m.viewport.Height = contentHeight
}

// refreshPreview re-renders the preview pane for the current selection.
func (m *Model) refreshPreview() {
	item, ok := m.list.SelectedItem().(SkillItem)
	if !ok {
		m.viewport.SetContent("No skills found.")
		return
	}

	header := styles.TemplateStyle.Render(item.Template) + "\n\n"
	m.viewport.SetContent(header + m.renderContent(item))
	m.viewport.GotoTop()
}

func (m *Model) renderContent(item SkillItem) string {
	if !m.useGlamour {
		return wordwrap.String(item.Content, m.viewport.Width)
	}

	if m.glamourStyle == "" {
		m.glamourStyle = detectGlamourStyle(50 * time.Millisecond)
		if m.logger != nil {
			m.logger.Debug("Glamour style selected", "style", m.glamourStyle)
		}
	}

	cacheKey := fmt.Sprintf("%s|%s|%d", item.Template, m.glamourStyle, m.viewport.Width)
	if cached, ok := m.renderCache[cacheKey]; ok {
		return cached
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStylePath(m.glamourStyle),
		glamour.WithWordWrap(m.viewport.Width),
	)
	if err != nil {
		if m.logger != nil {
			m.logger.Warn("Failed to create markdown renderer", "error", err)
		}
		return wordwrap.String(item.Content, m.viewport.Width)
	}

	rendered, err := renderer.Render(item.Content)
	if err != nil {
		if m.logger != nil {
			m.logger.Warn("Failed to render markdown", "template", item.Template, "error", err)
		}
		return wordwrap.String(item.Content, m.viewport.Width)
	}

	m.renderCache[cacheKey] = rendered
	return rendered
}

func (m Model) View() string {
	title := styles.TitleStyle.Render("Browse Skills")
	subtitle := styles.SubtitleStyle.Render(fmt.Sprintf("%d skills registered", len(m.items)))

	listPane := styles.PaneStyle
	previewPane := styles.PaneStyle
	if m.focusPane == focusList {
		listPane = styles.PaneFocusedStyle
	} else {
		previewPane = styles.PaneFocusedStyle
	}

	panes := lipgloss.JoinHorizontal(
		lipgloss.Top,
		listPane.Render(m.list.View()),
		previewPane.Render(m.viewport.View()),
	)

	helpView := styles.HelpStyle.Render(m.help.View(m.keys))

	return strings.Join([]string{title, subtitle, panes, helpView}, "\n")
}
