package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// maxQuickQuestions is the number of function keys bound to presets
const maxQuickQuestions = 9

type keyMap struct {
	Submit        key.Binding
	Newline       key.Binding
	QuickQuestion key.Binding
	NewChat       key.Binding
	CycleEndpoint key.Binding
	CopyReply     key.Binding
	Goal          key.Binding
	ScrollUp      key.Binding
	ScrollDown    key.Binding
	Quit          key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "Send"),
		),
		Newline: key.NewBinding(
			key.WithKeys("alt+enter", "ctrl+j"),
			key.WithHelp("Alt+Enter", "Newline"),
		),
		QuickQuestion: key.NewBinding(
			key.WithKeys("f1", "f2", "f3", "f4", "f5", "f6", "f7", "f8", "f9"),
			key.WithHelp("F1-F9", "Quick"),
		),
		NewChat: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("Ctrl+N", "New chat"),
		),
		CycleEndpoint: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("Ctrl+E", "Endpoint"),
		),
		CopyReply: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("Ctrl+Y", "Copy"),
		),
		Goal: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("Ctrl+G", "Goal!"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "Scroll"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "Scroll"),
		),
		Quit: key.NewBinding(
			key.WithKeys("esc", "ctrl+c"),
			key.WithHelp("Esc", "Quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Newline, k.QuickQuestion, k.NewChat, k.CycleEndpoint, k.CopyReply, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Newline, k.QuickQuestion},
		{k.NewChat, k.CycleEndpoint, k.CopyReply, k.Goal},
		{k.ScrollUp, k.ScrollDown, k.Quit},
	}
}

// quickQuestionIndex maps F1..F9 to a zero-based preset index
func quickQuestionIndex(msg tea.KeyMsg) (int, bool) {
	switch msg.Type {
	case tea.KeyF1:
		return 0, true
	case tea.KeyF2:
		return 1, true
	case tea.KeyF3:
		return 2, true
	case tea.KeyF4:
		return 3, true
	case tea.KeyF5:
		return 4, true
	case tea.KeyF6:
		return 5, true
	case tea.KeyF7:
		return 6, true
	case tea.KeyF8:
		return 7, true
	case tea.KeyF9:
		return 8, true
	}
	return 0, false
}
