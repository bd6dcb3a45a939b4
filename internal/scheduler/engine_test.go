package scheduler

import (
	"testing"
	"time"
)

func TestEngineEmitsInFireOrder(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(SessionAlarm{ID: "later", FireAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule later: %v", err)
	}
	if err := engine.Schedule(SessionAlarm{ID: "sooner", FireAt: now.Add(20 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule sooner: %v", err)
	}

	first := waitAlarm(t, engine.C(), time.Second)
	second := waitAlarm(t, engine.C(), time.Second)
	if first.ID != "sooner" || second.ID != "later" {
		t.Fatalf("unexpected order: first=%s second=%s", first.ID, second.ID)
	}
}

func TestEngineNonBlockingDropsWhenConsumerIsSlow(t *testing.T) {
	engine := NewEngine(1)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC().Add(20 * time.Millisecond)
	for i := 0; i < 25; i++ {
		if err := engine.Schedule(SessionAlarm{ID: "alarm", FireAt: now}); err != nil {
			t.Fatalf("schedule alarm: %v", err)
		}
	}

	time.Sleep(120 * time.Millisecond)
	if engine.Dropped() == 0 {
		t.Fatalf("expected dropped alarms > 0, got %d", engine.Dropped())
	}
}

func TestScheduleValidatesFireTime(t *testing.T) {
	engine := NewEngine(1)
	if err := engine.Schedule(SessionAlarm{ID: "bad"}); err != ErrInvalidFireTime {
		t.Fatalf("expected ErrInvalidFireTime, got %v", err)
	}
}

func TestCancelTaskDropsQueuedAlarms(t *testing.T) {
	engine := NewEngine(8)
	engine.Start()
	defer engine.Stop()

	now := time.Now().UTC()
	if err := engine.Schedule(SessionAlarm{ID: "doomed", TaskID: "task-1", Kind: AlarmWorkEnd, FireAt: now.Add(60 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule doomed: %v", err)
	}
	if err := engine.Schedule(SessionAlarm{ID: "kept", TaskID: "task-2", Kind: AlarmWorkEnd, FireAt: now.Add(80 * time.Millisecond)}); err != nil {
		t.Fatalf("schedule kept: %v", err)
	}

	engine.CancelTask("task-1")

	got := waitAlarm(t, engine.C(), time.Second)
	if got.ID != "kept" {
		t.Fatalf("expected only the kept alarm, got %s", got.ID)
	}
}

func waitAlarm(t *testing.T, ch <-chan SessionAlarm, timeout time.Duration) SessionAlarm {
	t.Helper()
	select {
	case alarm := <-ch:
		return alarm
	case <-time.After(timeout):
		t.Fatalf("timed out waiting for alarm")
		return SessionAlarm{}
	}
}
