package metrics

import (
	"testing"

	"github.com/nikitabhat/focusd/internal/locale"
	"github.com/nikitabhat/focusd/internal/model"
)

func TestPhaseStatsNilYieldsEmptyMap(t *testing.T) {
	stats := PhaseStats(nil)
	if stats == nil {
		t.Fatal("expected non-nil map")
	}
	if len(stats) != 0 {
		t.Fatalf("expected empty map for nil input, got: %v", stats)
	}
}

func TestPhaseStatsCarriesAllFiveKeys(t *testing.T) {
	subs := []model.Subtask{
		{Phase: model.PhaseKnowledge},
		{Phase: model.PhasePractice},
		{Phase: model.PhasePractice},
		{Phase: model.Phase("unknown")},
	}
	stats := PhaseStats(subs)
	if len(stats) != 5 {
		t.Fatalf("expected five keys, got %d: %v", len(stats), stats)
	}
	want := map[model.Phase]int{
		model.PhaseKnowledge:   1,
		model.PhasePractice:    2,
		model.PhaseApplication: 0,
		model.PhaseReflection:  0,
		model.PhaseOutput:      0,
	}
	for phase, count := range want {
		if stats[phase] != count {
			t.Fatalf("phase %q: want %d, got %d", phase, count, stats[phase])
		}
	}
}

func TestPhaseStatsExcludesReview(t *testing.T) {
	stats := PhaseStats([]model.Subtask{{Phase: model.PhaseReview}})
	for phase, count := range stats {
		if count != 0 {
			t.Fatalf("expected review excluded, got %q=%d", phase, count)
		}
	}
}

func TestCompletedCountNeverExceedsLength(t *testing.T) {
	subs := []model.Subtask{{Completed: true}, {Completed: false}, {Completed: true}}
	if got := CompletedCount(subs); got != 2 {
		t.Fatalf("want 2, got %d", got)
	}
	if got := CompletedCount(nil); got != 0 {
		t.Fatalf("want 0 for nil, got %d", got)
	}
}

func TestCompletionPercent(t *testing.T) {
	if got := CompletionPercent(nil); got != 0 {
		t.Fatalf("nil: want 0, got %d", got)
	}
	if got := CompletionPercent([]model.Subtask{}); got != 0 {
		t.Fatalf("empty: want 0, got %d", got)
	}
	oneOfThree := []model.Subtask{{Completed: true}, {}, {}}
	if got := CompletionPercent(oneOfThree); got != 33 {
		t.Fatalf("1/3: want 33, got %d", got)
	}
	twoOfThree := []model.Subtask{{Completed: true}, {Completed: true}, {}}
	if got := CompletionPercent(twoOfThree); got != 67 {
		t.Fatalf("2/3: want 67, got %d", got)
	}
}

func TestTotalEstimatedMinutesSubstitutesDefault(t *testing.T) {
	subs := []model.Subtask{
		{EstimatedDuration: 20},
		{},
		{EstimatedDuration: 45},
	}
	if got := TotalEstimatedMinutes(subs); got != 95 {
		t.Fatalf("want 95, got %d", got)
	}
	if got := TotalEstimatedMinutes(nil); got != 0 {
		t.Fatalf("nil: want 0, got %d", got)
	}
}

func TestDifficultyColorTotal(t *testing.T) {
	cases := map[model.Difficulty]Color{
		model.DifficultyEasy:   ColorSuccess,
		model.DifficultyMedium: ColorWarning,
		model.DifficultyHard:   ColorError,
		model.Difficulty(""):   ColorNeutral,
		model.Difficulty("??"): ColorNeutral,
	}
	for in, want := range cases {
		if got := DifficultyColor(in); got != want {
			t.Fatalf("difficulty %q: want %q, got %q", in, want, got)
		}
	}
}

func TestPriorityColorTotal(t *testing.T) {
	cases := map[model.Priority]Color{
		model.PriorityLow:    ColorSuccess,
		model.PriorityMedium: ColorWarning,
		model.PriorityHigh:   ColorError,
		model.Priority(""):   ColorNeutral,
		model.Priority("!!"): ColorNeutral,
	}
	for in, want := range cases {
		if got := PriorityColor(in); got != want {
			t.Fatalf("priority %q: want %q, got %q", in, want, got)
		}
	}
}

func TestPhaseColorPaletteDistinct(t *testing.T) {
	displayable := append([]model.Phase{}, model.CanonicalPhases...)
	displayable = append(displayable, model.PhaseReview)
	seen := make(map[Color]model.Phase)
	for _, p := range displayable {
		c := PhaseColor(p)
		if c == ColorNeutral {
			t.Fatalf("phase %q must not map to neutral", p)
		}
		if prev, dup := seen[c]; dup {
			t.Fatalf("phases %q and %q share color %q", prev, p, c)
		}
		seen[c] = p
	}
	if got := PhaseColor(model.Phase("unknown")); got != ColorNeutral {
		t.Fatalf("unknown phase: want neutral, got %q", got)
	}
}

func TestPhaseLabel(t *testing.T) {
	tr := locale.NewCatalog("en").Translator()

	if got := PhaseLabel(model.PhaseKnowledge, tr); got != "Knowledge" {
		t.Fatalf("translated label: got %q", got)
	}
	if got := PhaseLabel(model.PhaseReview, tr); got != "Review" {
		t.Fatalf("review label: got %q", got)
	}
	if got := PhaseLabel(model.PhasePractice, nil); got != "practice" {
		t.Fatalf("nil translator should fall back to raw key, got %q", got)
	}
	if got := PhaseLabel(model.Phase("unknown"), tr); got != "" {
		t.Fatalf("unknown phase must yield empty even with translator, got %q", got)
	}
}

func TestPhaseIconDefaultsToPending(t *testing.T) {
	if got := PhaseIcon(model.Phase("unknown")); got != "⏳" {
		t.Fatalf("unexpected default icon: %q", got)
	}
	if got := PhaseIcon(model.PhaseKnowledge); got == "⏳" {
		t.Fatal("known phase must not use the pending icon")
	}
}

func TestTimeBlockLabel(t *testing.T) {
	if got := TimeBlockLabel(model.Task{}); got != "" {
		t.Fatalf("no schedule: got %q", got)
	}
	if got := TimeBlockLabel(model.Task{ScheduledTime: "09:30"}); got != "09:30" {
		t.Fatalf("start only: got %q", got)
	}
	both := model.Task{ScheduledTime: "09:30", ScheduledEndTime: "11:00"}
	if got := TimeBlockLabel(both); got != "09:30-11:00" {
		t.Fatalf("window: got %q", got)
	}
	orphan := model.Task{ScheduledEndTime: "11:00"}
	if got := TimeBlockLabel(orphan); got != "" {
		t.Fatalf("orphan end must render as absent, got %q", got)
	}
}

func TestQueriesAreIdempotent(t *testing.T) {
	subs := []model.Subtask{
		{Phase: model.PhaseKnowledge, Completed: true, EstimatedDuration: 20},
		{Phase: model.PhasePractice},
	}
	first := CompletionPercent(subs)
	second := CompletionPercent(subs)
	if first != second {
		t.Fatalf("completion percent not idempotent: %d vs %d", first, second)
	}
	a := PhaseStats(subs)
	b := PhaseStats(subs)
	for k, v := range a {
		if b[k] != v {
			t.Fatalf("phase stats not idempotent at %q", k)
		}
	}
	if subs[0].Completed != true || subs[1].Phase != model.PhasePractice {
		t.Fatal("queries must not mutate input")
	}
}
