package typeahead

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/alexmk92/modelpicker/ui/theme"
)

const (
	defaultWidth  = 76
	defaultHeight = 12
	// title, description, input, count and help lines around the list
	chromeHeight = 7
)

// Item is a single (label, value) pair shown in the typeahead
type Item struct {
	Label string
	Value string
}

var _ list.Item = Item{}

func (i Item) Title() string       { return i.Label }
func (i Item) Description() string { return "" }
func (i Item) FilterValue() string { return i.Label }

// SelectMsg is sent when the user picks the highlighted item
type SelectMsg struct {
	Value string
}

// ExitMsg is sent when the user cancels the typeahead
type ExitMsg struct{}

// KeyMap holds the bindings the typeahead reacts to, everything else goes to the query input
type KeyMap struct {
	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Select   key.Binding
	Cancel   key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "prev page")),
		PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "next page")),
		Select:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// Config describes a typeahead, Keys falls back to DefaultKeyMap when left empty
type Config struct {
	Title        string
	Description  string
	Items        []Item
	CurrentValue string
	Keys         *KeyMap
	Width        int
	Height       int
}

// Model is a filterable single choice list. It only reports what was picked,
// the caller decides what a value means.
type Model struct {
	title       string
	description string
	items       []Item
	visible     []Item
	input       textinput.Model
	list        list.Model
	keys        KeyMap
	current     string
	lastQuery   string
	width       int
	height      int
}

// New creates a typeahead. Creating a new one is how callers reset it.
func New(cfg Config) Model {
	keys := DefaultKeyMap()
	if cfg.Keys != nil {
		keys = *cfg.Keys
	}

	width, height := cfg.Width, cfg.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight + chromeHeight
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = false
	delegate.SetSpacing(0)

	l := list.New(nil, delegate, width, listHeight(height))
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()

	m := Model{
		title:       cfg.Title,
		description: cfg.Description,
		items:       append([]Item(nil), cfg.Items...),
		input:       theme.NewFilterInput(),
		list:        l,
		keys:        keys,
		current:     cfg.CurrentValue,
		width:       width,
		height:      height,
	}
	m.applyFilter()
	m.highlight(m.current)

	return m
}

// Init initializes the typeahead
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the typeahead
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Cancel):
			return m, func() tea.Msg { return ExitMsg{} }

		case key.Matches(msg, m.keys.Select):
			if item, ok := m.Highlighted(); ok {
				value := item.Value
				return m, func() tea.Msg { return SelectMsg{Value: value} }
			}
			return m, nil

		case key.Matches(msg, m.keys.Up):
			m.list.CursorUp()
			return m, nil

		case key.Matches(msg, m.keys.Down):
			m.list.CursorDown()
			return m, nil

		case key.Matches(msg, m.keys.PageUp):
			m.list.PrevPage()
			return m, nil

		case key.Matches(msg, m.keys.PageDown):
			m.list.NextPage()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	if q := m.input.Value(); q != m.lastQuery {
		m.lastQuery = q
		m.applyFilter()
		m.list.Select(0)
	}

	return m, cmd
}

// View renders the typeahead
func (m Model) View() string {
	var b strings.Builder

	if m.title != "" {
		b.WriteString(theme.TitleStyle.Render(m.title))
		b.WriteString("\n")
	}
	if m.description != "" {
		b.WriteString(m.description)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	if len(m.visible) == 0 {
		if m.lastQuery != "" {
			b.WriteString(theme.HintStyle.Render(fmt.Sprintf("no match for '%s'", m.lastQuery)))
		} else {
			b.WriteString(theme.HintStyle.Render("nothing to pick"))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(m.list.View())
		b.WriteString("\n")
	}

	if m.lastQuery != "" && len(m.visible) > 0 {
		b.WriteString(theme.DimStyle.Render(fmt.Sprintf("%d of %d", len(m.visible), len(m.items))))
		b.WriteString("\n")
	}

	b.WriteString(theme.HintStyle.Render("↑/↓ move • enter select • esc close"))
	return b.String()
}

// SetItems swaps the candidates and keeps the current query. The highlight
// stays on the same value if it is still there, else it goes back to the
// current value hint.
func (m *Model) SetItems(items []Item) {
	value := m.current
	if item, ok := m.Highlighted(); ok {
		value = item.Value
	}
	m.items = append([]Item(nil), items...)
	m.applyFilter()
	m.highlight(value)
}

// SetSize resizes the typeahead, the list gets whatever the chrome leaves over
func (m *Model) SetSize(width, height int) {
	if width > 0 {
		m.width = width
		m.input.Width = max(width-4, 10)
	}
	if height > 0 {
		m.height = height
	}
	m.list.SetSize(m.width, listHeight(m.height))
}

// Items returns every candidate, ignoring the query
func (m Model) Items() []Item {
	return append([]Item(nil), m.items...)
}

// Visible returns the candidates matching the query, best match first
func (m Model) Visible() []Item {
	return append([]Item(nil), m.visible...)
}

// Query returns the current filter text
func (m Model) Query() string {
	return m.input.Value()
}

// Highlighted returns the item enter would pick
func (m Model) Highlighted() (Item, bool) {
	item, ok := m.list.SelectedItem().(Item)
	return item, ok
}

func (m *Model) highlight(value string) {
	for i, item := range m.visible {
		if item.Value == value {
			m.list.Select(i)
			return
		}
	}
	m.list.Select(0)
}

// applyFilter recomputes the visible items from the query using fuzzy matching
// on the labels. An empty query keeps the original order.
func (m *Model) applyFilter() {
	query := strings.TrimSpace(m.input.Value())

	if query == "" {
		m.visible = append([]Item(nil), m.items...)
	} else {
		matches := fuzzy.FindFrom(query, itemSource(m.items))
		m.visible = make([]Item, 0, len(matches))
		for _, match := range matches {
			m.visible = append(m.visible, m.items[match.Index])
		}
	}

	listItems := make([]list.Item, len(m.visible))
	for i, item := range m.visible {
		listItems[i] = item
	}
	m.list.SetItems(listItems)
}

// itemSource lets fuzzy match directly against item labels
type itemSource []Item

func (s itemSource) String(i int) string { return s[i].Label }
func (s itemSource) Len() int            { return len(s) }

func listHeight(height int) int {
	return max(height-chromeHeight, 3)
}
