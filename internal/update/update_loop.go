package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikitabhat/focusd/internal/scheduler"
	"github.com/nikitabhat/focusd/internal/views"
)

func (m Model) Init() tea.Cmd {
	if m.Alarms != nil {
		return waitForAlarmCmd(m.Alarms.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.dispatch(msg)
	next.syncBubbleData()
	return next, cmd
}

func (m Model) dispatch(msg tea.Msg) (Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}

		if m.Confirm.Active {
			return m.handleConfirmKey(typed), nil
		}

		if m.capturing() {
			return m.handleCaptureKey(typed)
		}

		switch typed.String() {
		case "/":
			m.Palette.Active = true
			m.Palette.Input = ""
			m.commandInput.Focus()
			m.commandInput.SetValue("")
			m.Status = StatusBar{Text: "command palette active", IsError: false}
			return m, nil
		case m.Keys.Tasks:
			m.CurrentView = ViewTasks
			return m, nil
		case m.Keys.Focus:
			m.CurrentView = ViewFocus
			m.bootstrapFocusTask()
			return m, nil
		case m.Keys.Help:
			m.HelpVisible = !m.HelpVisible
			return m, nil
		case "ctrl+c", m.Keys.Quit:
			m.Quitting = true
			return m, tea.Quit
		}

		switch m.CurrentView {
		case ViewTasks:
			return m.handleTasksKey(typed), nil
		case ViewSubtasks:
			return m.handleSubtasksKey(typed)
		case ViewFocus:
			return m.handleFocusKey(typed)
		}
	case SwitchViewMsg:
		if isKnownView(typed.View) {
			m.CurrentView = typed.View
			if typed.View == ViewFocus {
				m.bootstrapFocusTask()
			}
		}
		return m, nil
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case QuickAddTaskMsg:
		m.addTask(typed.Title)
		return m, nil
	case FocusTickMsg:
		return m.onFocusTick()
	case spinner.TickMsg:
		if !m.Focus.Running {
			return m, nil
		}
		var cmd tea.Cmd
		m.focusSpinner, cmd = m.focusSpinner.Update(typed)
		return m, cmd
	case SessionAlarmMsg:
		m.onSessionAlarm(typed.Alarm)
		if m.Alarms != nil {
			return m, waitForAlarmCmd(m.Alarms.C())
		}
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}
	leftPane := ""
	rightPane := ""
	switch m.CurrentView {
	case ViewTasks:
		leftPane = m.renderTaskView()
		rightPane = m.renderCommandPalette() + m.renderHelpIfVisible()
	case ViewSubtasks:
		leftPane = m.renderSubtaskView()
		rightPane = m.renderConfirmDialog() + m.renderHelpIfVisible()
	case ViewFocus:
		leftPane = m.renderFocusView()
		rightPane = m.renderHelpIfVisible()
	}

	notificationView := ""
	if len(m.Notifications) > 0 {
		last := m.Notifications[len(m.Notifications)-1]
		notificationView = views.RenderNotification(last.Level, last.Body)
	}

	return views.RenderApp(views.AppData{
		Header:       fmt.Sprintf("focusd | view: %s | selected: %s", m.CurrentView, m.SelectedTaskID),
		LeftPane:     leftPane,
		RightPane:    rightPane,
		StatusLine:   status,
		Notification: notificationView,
		Footer:       fmt.Sprintf("keys: %s tasks | %s focus | %s help | %s quit", m.Keys.Tasks, m.Keys.Focus, m.Keys.Help, m.Keys.Quit),
	})
}

func isKnownView(v View) bool {
	switch v {
	case ViewTasks, ViewSubtasks, ViewFocus:
		return true
	default:
		return false
	}
}

func (m Model) capturing() bool {
	if m.taskCaptureMode || m.subCaptureMode {
		return true
	}
	_, editing := m.Editor.Editing()
	return editing && m.CurrentView == ViewSubtasks
}

func (m Model) handleCaptureKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case m.taskCaptureMode:
		return m.handleTaskCaptureKey(msg), nil
	case m.subCaptureMode:
		return m.handleSubCaptureKey(msg), nil
	default:
		return m.handleDurationEditKey(msg), nil
	}
}

func waitForAlarmCmd(ch <-chan scheduler.SessionAlarm) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		alarm, ok := <-ch
		if !ok {
			return nil
		}
		return SessionAlarmMsg{Alarm: alarm}
	}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	return m.renderHelpView()
}
