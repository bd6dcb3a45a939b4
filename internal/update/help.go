package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/nikitabhat/focusd/internal/views"
)

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Tasks, Action: "tasks view"},
		{Key: m.Keys.Focus, Action: "focus view"},
		{Key: "/", Action: "command palette"},
		{Key: m.Keys.Help, Action: "toggle help"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move"},
			{Key: "enter", Action: "open subtasks"},
			{Key: "c", Action: "toggle complete"},
			{Key: "a", Action: "add task"},
		}
	case ViewSubtasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move"},
			{Key: "space", Action: "toggle"},
			{Key: "a", Action: "add subtask"},
			{Key: "e", Action: "edit minutes"},
			{Key: "d", Action: "delete"},
			{Key: "f", Action: "cycle phase filter"},
			{Key: "esc", Action: "back"},
		}
	case ViewFocus:
		return []KeyBinding{
			{Key: "space", Action: "start/pause"},
			{Key: "r", Action: "reset"},
			{Key: "n", Action: "next phase"},
		}
	default:
		return nil
	}
}

func (m Model) helpBindings() helpKeyMap {
	short := make([]key.Binding, 0, len(m.globalBindings()))
	for _, b := range m.globalBindings() {
		short = append(short, key.NewBinding(
			key.WithKeys(b.Key),
			key.WithHelp(b.Key, b.Action),
		))
	}
	full := make([]key.Binding, 0, len(m.viewBindings()))
	for _, b := range m.viewBindings() {
		full = append(full, key.NewBinding(
			key.WithKeys(b.Key),
			key.WithHelp(b.Key, b.Action),
		))
	}
	return helpKeyMap{short: short, full: [][]key.Binding{full}}
}

func (m Model) renderHelpView() string {
	bindings := make([]string, 0, len(m.viewBindings()))
	for _, b := range m.viewBindings() {
		bindings = append(bindings, fmt.Sprintf("  [%s] %s", b.Key, b.Action))
	}
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    bindings,
		HelpView:    m.helpModel.View(m.helpBindings()),
	})
}
