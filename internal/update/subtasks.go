package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikitabhat/focusd/internal/metrics"
	domainmodel "github.com/nikitabhat/focusd/internal/model"
	"github.com/nikitabhat/focusd/internal/views"
)

func (m Model) handleSubtasksKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	visible := m.visibleSubtasks()
	switch msg.String() {
	case "esc":
		m.closeSubtasks()
		return m, nil
	case "a":
		m.subCaptureMode = true
		m.subAddInput.Focus()
		m.subAddInput.SetValue("")
		return m, nil
	case "up", "k":
		if m.SubCursor > 0 {
			m.SubCursor--
		}
		return m, nil
	case "down", "j":
		if m.SubCursor < len(visible)-1 {
			m.SubCursor++
		}
		return m, nil
	case " ", "space":
		if sub, ok := m.subtaskUnderCursor(visible); ok {
			m.Editor = m.Editor.Toggle(sub.ID)
			m.syncEditorToTask()
		}
		return m, nil
	case "e":
		if sub, ok := m.subtaskUnderCursor(visible); ok {
			m.Editor = m.Editor.BeginEditDuration(sub.ID)
			m.durationInput.SetValue(m.Editor.DurationBuffer())
			m.durationInput.Focus()
		}
		return m, nil
	case "d":
		if sub, ok := m.subtaskUnderCursor(visible); ok {
			editor, removal := m.Editor.RequestRemove(sub.ID)
			m.Editor = editor
			m.Confirm = ConfirmState{Active: true, Message: removal.Message}
		}
		return m, nil
	case "f":
		m.PhaseFilter = nextPhaseFilter(m.PhaseFilter)
		m.SubCursor = 0
		return m, nil
	}
	return m, nil
}

func (m Model) handleSubCaptureKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.subCaptureMode = false
		m.subAddInput.Blur()
		return m
	case "enter":
		m.Editor = m.Editor.Add(m.subAddInput.Value())
		m.syncEditorToTask()
		m.subCaptureMode = false
		m.subAddInput.Blur()
		m.subAddInput.SetValue("")
		return m
	}
	if msg.Type == tea.KeyRunes {
		m.subAddInput.SetValue(m.subAddInput.Value() + string(msg.Runes))
		return m
	}
	var cmd tea.Cmd
	m.subAddInput, cmd = m.subAddInput.Update(msg)
	_ = cmd
	return m
}

func (m Model) handleDurationEditKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Editor = m.Editor.CancelEditDuration()
		m.durationInput.Blur()
		m.durationInput.SetValue("")
		return m
	case "enter":
		editor, err := m.Editor.CommitEditDuration()
		m.Editor = editor
		if err != nil {
			m.Status = StatusBar{Text: err.Error(), IsError: true}
			return m
		}
		m.syncEditorToTask()
		m.durationInput.Blur()
		m.durationInput.SetValue("")
		m.Status = StatusBar{Text: "estimate updated", IsError: false}
		return m
	case "backspace":
		buf := m.Editor.DurationBuffer()
		if len(buf) > 0 {
			buf = buf[:len(buf)-1]
		}
		m.Editor = m.Editor.SetDurationBuffer(buf)
		m.durationInput.SetValue(buf)
		return m
	}
	if msg.Type == tea.KeyRunes {
		buf := m.Editor.DurationBuffer() + string(msg.Runes)
		m.Editor = m.Editor.SetDurationBuffer(buf)
		m.durationInput.SetValue(buf)
	}
	return m
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y":
		m.Editor = m.Editor.ConfirmRemove()
		m.syncEditorToTask()
		m.Confirm = ConfirmState{}
		visible := m.visibleSubtasks()
		if m.SubCursor >= len(visible) && m.SubCursor > 0 {
			m.SubCursor--
		}
		m.Status = StatusBar{Text: "subtask deleted", IsError: false}
	case "n", "N", "esc":
		m.Editor = m.Editor.CancelRemove()
		m.Confirm = ConfirmState{}
		m.Status = StatusBar{Text: "delete cancelled", IsError: false}
	}
	return m
}

// syncEditorToTask copies the editor's collection back onto the selected
// task, so leaving the subtask view never loses edits.
func (m *Model) syncEditorToTask() {
	idx, ok := m.selectedTaskIndex()
	if !ok {
		return
	}
	m.Tasks[idx].Subtasks = m.Editor.Subtasks
	m.persistSubtasks(m.Tasks[idx])
}

func (m *Model) closeSubtasks() {
	m.syncEditorToTask()
	m.CurrentView = ViewTasks
	m.subCaptureMode = false
	m.subAddInput.Blur()
}

func (m Model) visibleSubtasks() []domainmodel.Subtask {
	if m.PhaseFilter == "" {
		return m.Editor.Subtasks
	}
	out := make([]domainmodel.Subtask, 0, len(m.Editor.Subtasks))
	for _, s := range m.Editor.Subtasks {
		if s.Phase == m.PhaseFilter {
			out = append(out, s)
		}
	}
	return out
}

func (m Model) subtaskUnderCursor(visible []domainmodel.Subtask) (domainmodel.Subtask, bool) {
	if m.SubCursor < 0 || m.SubCursor >= len(visible) {
		return domainmodel.Subtask{}, false
	}
	return visible[m.SubCursor], true
}

// nextPhaseFilter cycles through no filter and each canonical phase.
func nextPhaseFilter(current domainmodel.Phase) domainmodel.Phase {
	if current == "" {
		return domainmodel.CanonicalPhases[0]
	}
	for i, p := range domainmodel.CanonicalPhases {
		if p == current {
			if i == len(domainmodel.CanonicalPhases)-1 {
				return ""
			}
			return domainmodel.CanonicalPhases[i+1]
		}
	}
	return ""
}

func (m Model) renderSubtaskView() string {
	task, _ := m.selectedTask()
	tr := m.catalog.Translator()
	visible := m.visibleSubtasks()

	editingID, editing := m.Editor.Editing()
	items := make([]views.SubtaskItemData, 0, len(visible))
	for _, s := range visible {
		item := views.SubtaskItemData{
			ID:         s.ID,
			Title:      s.Title,
			Completed:  s.Completed,
			Icon:       metrics.PhaseIcon(s.Phase),
			PhaseLabel: metrics.PhaseLabel(s.Phase, tr),
			PhaseColor: metrics.PhaseColor(s.Phase),
		}
		if s.AIEstimatedDuration > 0 {
			item.DurationLabel = fmt.Sprintf("%dm", s.AIEstimatedDuration)
		}
		if editing && s.ID == editingID {
			item.EditView = m.Editor.DurationBuffer()
		}
		items = append(items, item)
	}

	stats := metrics.PhaseStats(m.Editor.Subtasks)
	counts := make([]views.PhaseCountData, 0, len(domainmodel.CanonicalPhases))
	for _, p := range domainmodel.CanonicalPhases {
		counts = append(counts, views.PhaseCountData{
			Label: metrics.PhaseLabel(p, tr),
			Icon:  metrics.PhaseIcon(p),
			Count: stats[p],
			Color: metrics.PhaseColor(p),
		})
	}

	quickAdd := ""
	if m.subCaptureMode {
		quickAdd = m.subAddInput.View()
	}
	title := task.Title
	if m.PhaseFilter != "" {
		title += fmt.Sprintf(" [filter: %s]", m.PhaseFilter)
	}

	return views.RenderSubtaskPanel(views.SubtaskPanelData{
		TaskTitle:     title,
		QuickAddView:  quickAdd,
		Items:         items,
		Cursor:        m.SubCursor,
		CompletionPct: metrics.CompletionPercent(m.Editor.Subtasks),
		CompletedOf:   fmt.Sprintf("%d/%d", metrics.CompletedCount(m.Editor.Subtasks), len(m.Editor.Subtasks)),
		TotalMinutes:  metrics.TotalEstimatedMinutes(m.Editor.Subtasks),
		PhaseCounts:   counts,
		DescriptionMD: views.RenderMarkdown(task.Description),
	})
}

func (m Model) renderConfirmDialog() string {
	return views.RenderConfirmDialog(views.ConfirmDialogData{
		Active:  m.Confirm.Active,
		Message: m.Confirm.Message,
	})
}
