package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikitabhat/focusd/internal/commands"
	domainmodel "github.com/nikitabhat/focusd/internal/model"
	"github.com/nikitabhat/focusd/internal/subtasks"
	"github.com/nikitabhat/focusd/internal/views"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Palette = CommandPaletteState{}
		m.commandInput.Blur()
		m.commandInput.SetValue("")
		m.Status = StatusBar{Text: "palette closed", IsError: false}
		return m
	case "enter":
		input := m.Palette.Input
		m.Palette = CommandPaletteState{}
		m.commandInput.Blur()
		m.commandInput.SetValue("")
		return m.executePaletteCommand(input)
	case "backspace":
		if len(m.Palette.Input) > 0 {
			m.Palette.Input = m.Palette.Input[:len(m.Palette.Input)-1]
			m.commandInput.SetValue(m.Palette.Input)
		}
		return m
	}
	if msg.Type == tea.KeyRunes {
		m.Palette.Input += string(msg.Runes)
		m.commandInput.SetValue(m.Palette.Input)
	}
	return m
}

func (m Model) executePaletteCommand(input string) Model {
	cmd, err := commands.Parse(input)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.LastError = err
		return m
	}

	result, err := commands.Execute(cmd, m.paletteHandlers())
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.LastError = err
		return m
	}
	if result.Message != "" {
		m.Status = StatusBar{Text: result.Message, IsError: false}
	}
	return m
}

func (m *Model) paletteHandlers() commands.Handlers {
	return commands.Handlers{
		Add: func(args commands.AddArgs) (commands.Result, error) {
			m.addTask(args.Title)
			return commands.Result{Message: "added task: " + args.Title}, nil
		},
		Sub: func(args commands.SubArgs) (commands.Result, error) {
			idx, ok := m.selectedTaskIndex()
			if !ok {
				return commands.Result{}, errors.New("no task selected")
			}
			editor := subtasks.NewEditor(m.Tasks[idx].Subtasks).Add(args.Text)
			m.Tasks[idx].Subtasks = editor.Subtasks
			if m.CurrentView == ViewSubtasks && m.Tasks[idx].ID == m.SelectedTaskID {
				m.Editor = subtasks.NewEditor(m.Tasks[idx].Subtasks)
			}
			m.persistSubtasks(m.Tasks[idx])
			return commands.Result{Message: "added subtask: " + args.Text}, nil
		},
		Done: func(args commands.DoneArgs) (commands.Result, error) {
			idx, ok := m.resolveTaskTarget(args.Target)
			if !ok {
				return commands.Result{}, fmt.Errorf("no task matches %q", args.Target)
			}
			m.Tasks[idx].Completed = true
			m.persistTask(m.Tasks[idx])
			return commands.Result{Message: "completed: " + m.Tasks[idx].Title}, nil
		},
		Focus: func(args commands.FocusArgs) (commands.Result, error) {
			m.Focus.Phase = FocusPhaseWork
			m.Focus.WorkDurationSec = args.Minutes * 60
			m.Focus.RemainingSec = m.Focus.WorkDurationSec
			m.Focus.Running = false
			m.bootstrapFocusTask()
			m.CurrentView = ViewFocus
			return commands.Result{Message: fmt.Sprintf("focus set to %d minutes", args.Minutes)}, nil
		},
		Show: func(args commands.ShowArgs) (commands.Result, error) {
			switch args.Subject {
			case "tasks":
				m.CurrentView = ViewTasks
				return commands.Result{Message: "showing tasks"}, nil
			case "subtasks":
				m.openSubtasks()
				if args.Phase != "" {
					phase := domainmodel.Phase(args.Phase)
					if !phase.IsValid() {
						return commands.Result{}, fmt.Errorf("unknown phase %q", args.Phase)
					}
					m.PhaseFilter = phase
				}
				return commands.Result{Message: "showing subtasks"}, nil
			case "focus":
				m.bootstrapFocusTask()
				m.CurrentView = ViewFocus
				return commands.Result{Message: "showing focus"}, nil
			default:
				return commands.Result{}, fmt.Errorf("unknown subject %q", args.Subject)
			}
		},
	}
}

// resolveTaskTarget maps a done target ("selected" or a task id) to an index.
func (m Model) resolveTaskTarget(target string) (int, bool) {
	if target == "" || target == "selected" {
		if m.Cursor >= 0 && m.Cursor < len(m.Tasks) {
			return m.Cursor, true
		}
		return 0, false
	}
	for i := range m.Tasks {
		if m.Tasks[i].ID == target {
			return i, true
		}
	}
	return 0, false
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.Palette.Input)
}
