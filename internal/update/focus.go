package update

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikitabhat/focusd/internal/scheduler"
	"github.com/nikitabhat/focusd/internal/timer"
	"github.com/nikitabhat/focusd/internal/views"
)

func focusTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return FocusTickMsg{}
	})
}

func (m Model) handleFocusKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case " ", "space":
		if m.Focus.Running {
			m.pauseFocus()
			return m, nil
		}
		return m.startFocus()
	case "r":
		m.resetFocus()
		return m, nil
	case "n":
		m.advanceFocusPhase()
		return m, nil
	}
	return m, nil
}

// bootstrapFocusTask binds the focus timer to the selected task the first
// time the focus view opens. Switching tasks mid-session is done by resetting
// first.
func (m *Model) bootstrapFocusTask() {
	if m.Focus.TaskID != "" {
		return
	}
	if task, ok := m.selectedTask(); ok {
		m.Focus.TaskID = task.ID
		m.Focus.TaskTitle = task.Title
	}
}

func (m Model) startFocus() (Model, tea.Cmd) {
	m.bootstrapFocusTask()
	if m.Focus.RemainingSec <= 0 {
		m.Focus.RemainingSec = m.currentFocusTotal()
	}
	m.Focus.Running = true
	m.scheduleSessionAlarm()
	m.Status = StatusBar{Text: fmt.Sprintf("%s session running", m.Focus.Phase), IsError: false}
	return m, tea.Batch(focusTickCmd(), m.focusSpinner.Tick)
}

func (m *Model) pauseFocus() {
	m.Focus.Running = false
	m.cancelSessionAlarms()
	m.Status = StatusBar{Text: "session paused", IsError: false}
}

func (m *Model) resetFocus() {
	m.Focus.Running = false
	m.Focus.RemainingSec = m.currentFocusTotal()
	m.cancelSessionAlarms()
	m.Status = StatusBar{Text: "session reset", IsError: false}
}

// advanceFocusPhase flips work to break and back, leaving the new phase
// paused at its full duration.
func (m *Model) advanceFocusPhase() {
	m.Focus.Running = false
	m.cancelSessionAlarms()
	if m.Focus.Phase == FocusPhaseWork {
		m.Focus.Phase = FocusPhaseBreak
	} else {
		m.Focus.Phase = FocusPhaseWork
	}
	m.Focus.RemainingSec = m.currentFocusTotal()
}

func (m Model) currentFocusTotal() int {
	if m.Focus.Phase == FocusPhaseBreak {
		return m.Focus.BreakDurationSec
	}
	return m.Focus.WorkDurationSec
}

func (m Model) onFocusTick() (Model, tea.Cmd) {
	if !m.Focus.Running {
		return m, nil
	}
	m.Focus.RemainingSec--
	if m.Focus.RemainingSec > 0 {
		return m, focusTickCmd()
	}

	m.Focus.RemainingSec = 0
	m.Focus.Running = false
	if m.Focus.Phase == FocusPhaseWork {
		m.Focus.CompletedSessions++
		m.Status = StatusBar{Text: "work session complete, take a break", IsError: false}
	} else {
		m.Status = StatusBar{Text: "break over, back to work", IsError: false}
	}
	return m, nil
}

func (m *Model) onSessionAlarm(alarm scheduler.SessionAlarm) {
	body := "work session ended"
	if alarm.Kind == scheduler.AlarmBreakEnd {
		body = "break ended"
	}
	if alarm.TaskID != "" && alarm.TaskID == m.Focus.TaskID && m.Focus.TaskTitle != "" {
		body += ": " + m.Focus.TaskTitle
	}
	m.notify("Focus", body, "info")
}

func (m *Model) scheduleSessionAlarm() {
	if m.Alarms == nil {
		return
	}
	kind := scheduler.AlarmWorkEnd
	if m.Focus.Phase == FocusPhaseBreak {
		kind = scheduler.AlarmBreakEnd
	}
	alarm := scheduler.SessionAlarm{
		ID:     fmt.Sprintf("alarm-%d", time.Now().UnixNano()),
		TaskID: m.Focus.TaskID,
		Kind:   kind,
		FireAt: time.Now().UTC().Add(time.Duration(m.Focus.RemainingSec) * time.Second),
	}
	if err := m.Alarms.Schedule(alarm); err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	}
}

func (m *Model) cancelSessionAlarms() {
	if m.Alarms == nil || m.Focus.TaskID == "" {
		return
	}
	m.Alarms.CancelTask(m.Focus.TaskID)
}

func (m Model) renderFocusView() string {
	total := m.currentFocusTotal()
	clock := timer.Format(m.Focus.RemainingSec)
	if m.Focus.Running {
		clock = m.focusSpinner.View() + " " + clock
	}
	return views.RenderFocusPanel(views.FocusPanelData{
		TaskTitle:         m.Focus.TaskTitle,
		Phase:             string(m.Focus.Phase),
		Timer:             clock,
		ProgressView:      m.focusProgress.View(),
		ProgressPct:       int(timer.Progress(m.Focus.RemainingSec, total)),
		CompletedSessions: m.Focus.CompletedSessions,
		ShowEndPrompt:     !m.Focus.Running && m.Focus.RemainingSec == 0,
	})
}
