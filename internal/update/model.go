package update

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/nikitabhat/focusd/internal/locale"
	"github.com/nikitabhat/focusd/internal/metrics"
	domainmodel "github.com/nikitabhat/focusd/internal/model"
	"github.com/nikitabhat/focusd/internal/scheduler"
	"github.com/nikitabhat/focusd/internal/storage"
	"github.com/nikitabhat/focusd/internal/subtasks"
	"github.com/nikitabhat/focusd/internal/timer"
	"github.com/nikitabhat/focusd/internal/views"
)

type View string

const (
	ViewTasks    View = "Tasks"
	ViewSubtasks View = "Subtasks"
	ViewFocus    View = "Focus"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Tasks string
	Focus string
	Help  string
	Quit  string
}

type ConfirmState struct {
	Active  bool
	Message string
}

type FocusPhase string

const (
	FocusPhaseWork  FocusPhase = "work"
	FocusPhaseBreak FocusPhase = "break"
)

type FocusState struct {
	TaskID            string
	TaskTitle         string
	WorkDurationSec   int
	BreakDurationSec  int
	RemainingSec      int
	Running           bool
	Phase             FocusPhase
	CompletedSessions int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

// DesktopNotifier is the capability interface for OS-level notifications.
// It is resolved exactly once at startup: ExecDesktopNotifier where the
// platform supports it, NoopDesktopNotifier otherwise. Code never probes the
// platform after that.
type DesktopNotifier interface {
	Send(Notification) error
}

type NoopDesktopNotifier struct{}

func (NoopDesktopNotifier) Send(Notification) error { return nil }

type ExecDesktopNotifier struct{}

func (ExecDesktopNotifier) Send(n Notification) error {
	switch runtime.GOOS {
	case "linux":
		return exec.Command("notify-send", n.Title, n.Body).Run()
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return exec.Command("osascript", "-e", script).Run()
	default:
		return nil
	}
}

// ResolveDesktopNotifier picks the notifier variant once at startup.
func ResolveDesktopNotifier(enabled bool) DesktopNotifier {
	if !enabled {
		return NoopDesktopNotifier{}
	}
	switch runtime.GOOS {
	case "linux", "darwin":
		return ExecDesktopNotifier{}
	default:
		return NoopDesktopNotifier{}
	}
}

type Model struct {
	CurrentView    View
	Tasks          []domainmodel.Task
	Cursor         int
	SelectedTaskID string

	Editor      subtasks.Editor
	SubCursor   int
	Confirm     ConfirmState
	PhaseFilter domainmodel.Phase

	Focus          FocusState
	Alarms         *scheduler.Engine
	Palette        CommandPaletteState
	HelpVisible    bool
	Notifications  []Notification
	DesktopEnabled bool
	notifier       DesktopNotifier
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	catalog *locale.Catalog
	repo    storage.Repository

	// Bubble components used for rich TUI controls
	taskList      list.Model
	taskAddInput  textinput.Model
	subAddInput   textinput.Model
	durationInput textinput.Model
	commandInput  textinput.Model
	focusProgress progress.Model
	focusSpinner  spinner.Model
	helpModel     help.Model
	notesViewport viewport.Model

	taskCaptureMode bool
	subCaptureMode  bool
}

type listItem struct {
	title       string
	description string
}

func (i listItem) FilterValue() string { return i.title + " " + i.description }
func (i listItem) Title() string       { return i.title }
func (i listItem) Description() string { return i.description }

type KeyBinding struct {
	Key    string
	Action string
}

type helpKeyMap struct {
	short []key.Binding
	full  [][]key.Binding
}

func (k helpKeyMap) ShortHelp() []key.Binding  { return k.short }
func (k helpKeyMap) FullHelp() [][]key.Binding { return k.full }

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type QuickAddTaskMsg struct {
	Title string
}

type FocusTickMsg struct{}

type SessionAlarmMsg struct {
	Alarm scheduler.SessionAlarm
}

func NewModel() Model {
	m := Model{
		CurrentView: ViewTasks,
		Focus: FocusState{
			WorkDurationSec:  25 * 60,
			BreakDurationSec: 5 * 60,
			RemainingSec:     25 * 60,
			Phase:            FocusPhaseWork,
		},
		DesktopEnabled: false,
		notifier:       NoopDesktopNotifier{},
		catalog:        locale.NewCatalog("en"),
		Keys: GlobalKeyMap{
			Tasks: "1",
			Focus: "2",
			Help:  "?",
			Quit:  "q",
		},
	}
	m.initBubbleComponents()
	m.syncBubbleData()
	return m
}

func NewModelWithConfig(alarms *scheduler.Engine, repo storage.Repository, cfg RuntimeConfig) Model {
	m := NewModel()
	m.Alarms = alarms
	m.repo = repo
	m.DesktopEnabled = cfg.DesktopNotifications
	m.notifier = ResolveDesktopNotifier(cfg.DesktopNotifications)
	m.catalog = locale.NewCatalog(cfg.Locale)
	if cfg.FocusWorkMinutes > 0 {
		m.Focus.WorkDurationSec = cfg.FocusWorkMinutes * 60
	}
	if cfg.FocusBreakMinutes > 0 {
		m.Focus.BreakDurationSec = cfg.FocusBreakMinutes * 60
	}
	m.Focus.RemainingSec = m.Focus.WorkDurationSec
	if repo != nil {
		if tasks, err := loadTasks(repo); err == nil {
			m.Tasks = tasks
		}
	}
	m.syncBubbleData()
	return m
}

func (m *Model) SetNotifier(n DesktopNotifier) {
	if n != nil {
		m.notifier = n
	}
}

func (m *Model) initBubbleComponents() {
	m.taskList = list.New([]list.Item{}, list.NewDefaultDelegate(), 56, 12)
	m.taskList.Title = "Tasks"
	m.taskList.SetShowHelp(false)
	m.taskList.SetFilteringEnabled(false)

	m.taskAddInput = textinput.New()
	m.taskAddInput.Prompt = "task> "
	m.taskAddInput.CharLimit = 256
	m.taskAddInput.Width = 42

	m.subAddInput = textinput.New()
	m.subAddInput.Prompt = "subtask> "
	m.subAddInput.CharLimit = 256
	m.subAddInput.Width = 42

	m.durationInput = textinput.New()
	m.durationInput.Prompt = ""
	m.durationInput.CharLimit = 4
	m.durationInput.Width = 5

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.focusProgress = progress.New(progress.WithDefaultGradient())
	m.focusSpinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.helpModel = help.New()
	m.notesViewport = viewport.New(54, 10)
}

func (m *Model) syncBubbleData() {
	items := make([]list.Item, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		desc := metrics.TimeBlockLabel(task)
		if desc == "" {
			desc = string(task.Priority)
		}
		items = append(items, listItem{title: task.Title, description: desc})
	}
	m.taskList.SetItems(items)
	if len(items) > 0 && m.Cursor < len(items) {
		m.taskList.Select(m.Cursor)
	}

	m.taskAddInput.SetValue(m.taskAddInput.Value())
	if m.Palette.Active {
		m.commandInput.Focus()
	}

	if task, ok := m.selectedTask(); ok {
		m.notesViewport.SetContent(views.RenderMarkdown(task.Description))
	}

	total := m.currentFocusTotal()
	pct := timer.Progress(m.Focus.RemainingSec, total) / 100
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	_ = m.focusProgress.SetPercent(pct)
}

func (m Model) selectedTask() (domainmodel.Task, bool) {
	for _, task := range m.Tasks {
		if task.ID == m.SelectedTaskID {
			return task, true
		}
	}
	if m.Cursor >= 0 && m.Cursor < len(m.Tasks) {
		return m.Tasks[m.Cursor], true
	}
	return domainmodel.Task{}, false
}

func (m *Model) selectedTaskIndex() (int, bool) {
	for i := range m.Tasks {
		if m.Tasks[i].ID == m.SelectedTaskID {
			return i, true
		}
	}
	return 0, false
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	n := Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    time.Now().UTC(),
	}
	m.Notifications = append(m.Notifications, n)
	if len(m.Notifications) > 40 {
		m.Notifications = m.Notifications[len(m.Notifications)-40:]
	}
	if m.DesktopEnabled && m.notifier != nil {
		_ = m.notifier.Send(n)
	}
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func newTaskID() string {
	return fmt.Sprintf("task-%d", time.Now().UnixNano())
}
