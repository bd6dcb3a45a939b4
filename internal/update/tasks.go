package update

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikitabhat/focusd/internal/metrics"
	domainmodel "github.com/nikitabhat/focusd/internal/model"
	"github.com/nikitabhat/focusd/internal/subtasks"
	"github.com/nikitabhat/focusd/internal/views"
)

func (m Model) handleTasksKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "a":
		m.taskCaptureMode = true
		m.taskAddInput.Focus()
		m.taskAddInput.SetValue("")
		m.Status = StatusBar{Text: "new task capture", IsError: false}
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
		m.syncSelectionToCursor()
	case "down", "j":
		if m.Cursor < len(m.Tasks)-1 {
			m.Cursor++
		}
		m.syncSelectionToCursor()
	case "c":
		m.toggleSelectedTask()
	case "enter":
		m.openSubtasks()
	}
	return m
}

func (m Model) handleTaskCaptureKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.taskCaptureMode = false
		m.taskAddInput.Blur()
		m.Status = StatusBar{Text: "task capture cancelled", IsError: false}
		return m
	case "enter":
		m.addTask(m.taskAddInput.Value())
		m.taskCaptureMode = false
		m.taskAddInput.Blur()
		m.taskAddInput.SetValue("")
		return m
	}
	if msg.Type == tea.KeyRunes {
		m.taskAddInput.SetValue(m.taskAddInput.Value() + string(msg.Runes))
		return m
	}
	var cmd tea.Cmd
	m.taskAddInput, cmd = m.taskAddInput.Update(msg)
	_ = cmd
	return m
}

func (m *Model) addTask(title string) {
	trimmed := strings.TrimSpace(title)
	if trimmed == "" {
		return
	}
	task := domainmodel.Task{
		ID:        newTaskID(),
		Title:     trimmed,
		Subtasks:  []domainmodel.Subtask{},
		CreatedAt: time.Now().UTC(),
	}
	m.Tasks = append(m.Tasks, task)
	m.Cursor = len(m.Tasks) - 1
	m.SelectedTaskID = task.ID
	m.persistNewTask(task)
	m.Status = StatusBar{Text: "task captured: " + trimmed, IsError: false}
}

func (m *Model) toggleSelectedTask() {
	if m.Cursor < 0 || m.Cursor >= len(m.Tasks) {
		return
	}
	m.Tasks[m.Cursor].Completed = !m.Tasks[m.Cursor].Completed
	m.persistTask(m.Tasks[m.Cursor])
	state := "reopened"
	if m.Tasks[m.Cursor].Completed {
		state = "completed"
	}
	m.Status = StatusBar{Text: "task " + state, IsError: false}
}

func (m *Model) syncSelectionToCursor() {
	if m.Cursor >= 0 && m.Cursor < len(m.Tasks) {
		m.SelectedTaskID = m.Tasks[m.Cursor].ID
	}
}

// openSubtasks switches to the subtask view with an editor seeded from the
// selected task's collection. All subtask mutations flow through the editor
// and are copied back on each change.
func (m *Model) openSubtasks() {
	if m.Cursor < 0 || m.Cursor >= len(m.Tasks) {
		return
	}
	m.syncSelectionToCursor()
	m.Editor = subtasks.NewEditor(m.Tasks[m.Cursor].Subtasks)
	m.SubCursor = 0
	m.PhaseFilter = ""
	m.CurrentView = ViewSubtasks
}

func (m Model) renderTaskView() string {
	items := make([]views.TaskItemData, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		items = append(items, views.TaskItemData{
			ID:              task.ID,
			Title:           task.Title,
			Completed:       task.Completed,
			DifficultyLabel: string(task.Difficulty),
			DifficultyColor: metrics.DifficultyColor(task.Difficulty),
			PriorityLabel:   string(task.Priority),
			PriorityColor:   metrics.PriorityColor(task.Priority),
			TimeBlock:       metrics.TimeBlockLabel(task),
			DueDate:         task.DueDate,
			CompletionPct:   metrics.CompletionPercent(task.Subtasks),
			SubtaskCount:    len(task.Subtasks),
		})
	}
	panel := views.RenderTaskPanel(views.TaskPanelData{
		ListView:   m.taskList.View(),
		Items:      items,
		SelectedID: m.SelectedTaskID,
	})
	if m.taskCaptureMode {
		panel += "\n" + m.taskAddInput.View()
	}
	return panel
}
