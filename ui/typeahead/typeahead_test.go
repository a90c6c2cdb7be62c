package typeahead

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

func sampleItems() []Item {
	return []Item{
		{Label: "⭐ gpt-4", Value: "gpt-4"},
		{Label: "⭐ gpt-3.5", Value: "gpt-3.5"},
		{Label: "OpenAI", Value: "__group__"},
	}
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = m.Update(keyRunes(string(r)))
	}
	return m
}

func TestNew_HighlightsCurrentValue(t *testing.T) {
	m := New(Config{Items: sampleItems(), CurrentValue: "gpt-3.5"})

	item, ok := m.Highlighted()
	require.True(t, ok)
	require.Equal(t, "gpt-3.5", item.Value)
	require.Equal(t, sampleItems(), m.Visible())
}

func TestNew_UnknownCurrentValueHighlightsFirst(t *testing.T) {
	m := New(Config{Items: sampleItems(), CurrentValue: "not-listed"})

	item, ok := m.Highlighted()
	require.True(t, ok)
	require.Equal(t, "gpt-4", item.Value)
}

func TestUpdate_EnterEmitsSelectMsg(t *testing.T) {
	m := New(Config{Items: sampleItems()})

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	require.Nil(t, cmd)

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd, "Expected a command after pressing enter")

	msg, ok := cmd().(SelectMsg)
	require.True(t, ok, "Expected SelectMsg")
	require.Equal(t, "gpt-3.5", msg.Value)
}

func TestUpdate_EscEmitsExitMsg(t *testing.T) {
	m := New(Config{Items: sampleItems()})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	require.IsType(t, ExitMsg{}, cmd())
}

func TestUpdate_EnterWithNothingVisibleDoesNothing(t *testing.T) {
	m := New(Config{Items: nil})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
	require.Contains(t, m.View(), "nothing to pick")
}

func TestUpdate_TypingFilters(t *testing.T) {
	m := New(Config{Items: sampleItems(), CurrentValue: "gpt-4"})

	m = typeText(t, m, "open")
	require.Equal(t, "open", m.Query())
	require.Equal(t, []Item{{Label: "OpenAI", Value: "__group__"}}, m.Visible())

	item, ok := m.Highlighted()
	require.True(t, ok)
	require.Equal(t, "__group__", item.Value)

	// Items ignores the query
	require.Len(t, m.Items(), 3)
}

func TestUpdate_TypingWithNoMatch(t *testing.T) {
	m := New(Config{Items: sampleItems()})

	m = typeText(t, m, "zzz")
	require.Empty(t, m.Visible())
	require.Contains(t, m.View(), "no match for 'zzz'")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(t, cmd)
}

func TestUpdate_NavigationKeysDoNotReachTheQuery(t *testing.T) {
	m := New(Config{Items: sampleItems()})

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})

	require.Equal(t, "", m.Query())
	item, _ := m.Highlighted()
	require.Equal(t, "gpt-3.5", item.Value)
}

func TestSetItems_KeepsQueryAndHighlight(t *testing.T) {
	m := New(Config{Items: sampleItems()})
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})

	m.SetItems(append(sampleItems(), Item{Label: "custom-1", Value: "custom-1"}))

	require.Len(t, m.Items(), 4)
	item, ok := m.Highlighted()
	require.True(t, ok)
	require.Equal(t, "gpt-3.5", item.Value)
}

func TestCustomKeyMap(t *testing.T) {
	keys := DefaultKeyMap()
	keys.Cancel.SetKeys("ctrl+g")

	m := New(Config{Items: sampleItems(), Keys: &keys})

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
	require.NotNil(t, cmd)
	require.IsType(t, ExitMsg{}, cmd())
}

func TestView_RendersTitleAndItems(t *testing.T) {
	m := New(Config{Title: "Switch model", Description: "Current model: gpt-4", Items: sampleItems()})

	view := m.View()
	require.Contains(t, view, "Switch model")
	require.Contains(t, view, "Current model: gpt-4")
	require.Contains(t, view, "gpt-3.5")
	require.Contains(t, view, "OpenAI")
}
