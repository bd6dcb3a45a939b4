package views

import (
	"fmt"
	"strings"

	"github.com/nikitabhat/focusd/internal/metrics"
)

type TaskItemData struct {
	ID              string
	Title           string
	Completed       bool
	DifficultyLabel string
	DifficultyColor metrics.Color
	PriorityLabel   string
	PriorityColor   metrics.Color
	TimeBlock       string
	DueDate         string
	CompletionPct   int
	SubtaskCount    int
}

type TaskPanelData struct {
	ListView   string
	Items      []TaskItemData
	SelectedID string
}

type SubtaskItemData struct {
	ID            string
	Title         string
	Completed     bool
	Icon          string
	PhaseLabel    string
	PhaseColor    metrics.Color
	DurationLabel string
	EditView      string // non-empty while this row's duration is being edited
}

type PhaseCountData struct {
	Label string
	Icon  string
	Count int
	Color metrics.Color
}

type SubtaskPanelData struct {
	TaskTitle     string
	QuickAddView  string
	Items         []SubtaskItemData
	Cursor        int
	CompletionPct int
	CompletedOf   string // "2/5"
	TotalMinutes  int
	PhaseCounts   []PhaseCountData
	DescriptionMD string
}

type ConfirmDialogData struct {
	Active  bool
	Message string
}

type FocusPanelData struct {
	TaskTitle         string
	Phase             string
	Timer             string
	ProgressView      string
	ProgressPct       int
	CompletedSessions int
	ShowEndPrompt     bool
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

func RenderTaskPanel(data TaskPanelData) string {
	var b strings.Builder
	b.WriteString("tasks:\n")
	b.WriteString("actions: [j/k]move [enter]open [c]toggle-complete [a]add\n")
	b.WriteString(data.ListView + "\n")
	for _, item := range data.Items {
		cursor := " "
		if data.SelectedID == item.ID {
			cursor = ">"
		}
		check := "[ ]"
		if item.Completed {
			check = "[x]"
		}
		b.WriteString(fmt.Sprintf("%s %s %s", cursor, check, item.Title))
		if badge := Badge(item.DifficultyLabel, item.DifficultyColor); badge != "" {
			b.WriteString(" " + badge)
		}
		if badge := Badge(item.PriorityLabel, item.PriorityColor); badge != "" {
			b.WriteString(" " + badge)
		}
		if item.TimeBlock != "" {
			b.WriteString(" @" + item.TimeBlock)
		}
		if item.DueDate != "" {
			b.WriteString(" due:" + item.DueDate)
		}
		if item.SubtaskCount > 0 {
			b.WriteString(fmt.Sprintf(" (%d%%)", item.CompletionPct))
		}
		b.WriteString("\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderSubtaskPanel(data SubtaskPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("subtasks: %s\n", data.TaskTitle))
	b.WriteString("actions: [a]add [space]toggle [e]edit-minutes [d]delete [esc]back\n")
	b.WriteString(data.QuickAddView + "\n")

	if len(data.Items) == 0 {
		b.WriteString("  (no subtasks yet)\n")
	}
	for i, item := range data.Items {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		check := "[ ]"
		if item.Completed {
			check = "[x]"
		}
		label := Badge(item.PhaseLabel, item.PhaseColor)
		b.WriteString(fmt.Sprintf("%s %s %s %s %s", cursor, check, item.Icon, item.Title, label))
		if item.EditView != "" {
			b.WriteString(" minutes> " + item.EditView)
		} else if item.DurationLabel != "" {
			b.WriteString(" ~" + item.DurationLabel)
		}
		b.WriteString("\n")
	}

	b.WriteString(fmt.Sprintf("\nprogress: %s done (%d%%) | est total: %dm\n", data.CompletedOf, data.CompletionPct, data.TotalMinutes))
	if len(data.PhaseCounts) > 0 {
		b.WriteString("phases:\n")
		for _, pc := range data.PhaseCounts {
			bar := strings.Repeat("#", pc.Count)
			b.WriteString(fmt.Sprintf("  %s %-12s %s %d\n", pc.Icon, pc.Label, bar, pc.Count))
		}
	}
	if data.DescriptionMD != "" {
		b.WriteString("\nnotes:\n")
		b.WriteString(data.DescriptionMD)
	}
	return strings.TrimSpace(b.String())
}

func RenderConfirmDialog(data ConfirmDialogData) string {
	if !data.Active {
		return ""
	}
	var b strings.Builder
	b.WriteString("\nconfirm:\n")
	b.WriteString(data.Message + "\n")
	b.WriteString("[y]delete [n/esc]cancel")
	return b.String()
}

func RenderFocusPanel(data FocusPanelData) string {
	var b strings.Builder
	b.WriteString("focus:\n")
	if data.TaskTitle != "" {
		b.WriteString(fmt.Sprintf("task: %s\n", data.TaskTitle))
	} else {
		b.WriteString("task: (none selected)\n")
	}
	b.WriteString(fmt.Sprintf("phase: %s\n", strings.ToUpper(data.Phase)))
	b.WriteString(fmt.Sprintf("timer: %s\n", data.Timer))
	b.WriteString(fmt.Sprintf("progress: %s %d%%\n", data.ProgressView, data.ProgressPct))
	b.WriteString(fmt.Sprintf("sessions completed: %d\n", data.CompletedSessions))
	b.WriteString("actions: [space]start/pause [r]reset [n]next-phase\n")
	if data.ShowEndPrompt {
		b.WriteString("prompt: session ended, press [n] to continue")
	}
	return strings.TrimSpace(b.String())
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("\nnotification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\nglobal:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}
