// Package scheduler fires focus-session alarms at their target wall-clock
// time. The UI ticks its own countdown; the engine exists so that a session
// ending still produces a notification when the user has switched views or
// the terminal is in the background.
package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidFireTime = errors.New("scheduler: invalid fire time")

type AlarmKind string

const (
	AlarmWorkEnd  AlarmKind = "work_end"
	AlarmBreakEnd AlarmKind = "break_end"
)

type SessionAlarm struct {
	ID     string
	TaskID string
	Kind   AlarmKind
	FireAt time.Time
}

type queueItem struct {
	alarm SessionAlarm
}

type alarmQueue []queueItem

func (q alarmQueue) Len() int { return len(q) }

func (q alarmQueue) Less(i, j int) bool {
	return q[i].alarm.FireAt.Before(q[j].alarm.FireAt)
}

func (q alarmQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
}

func (q *alarmQueue) Push(x any) {
	*q = append(*q, x.(queueItem))
}

func (q *alarmQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[0 : n-1]
	return item
}

// Engine delivers due alarms on a buffered channel. Delivery is
// non-blocking: a slow consumer loses alarms rather than stalling the loop,
// and Dropped reports how many.
type Engine struct {
	mu      sync.Mutex
	queue   alarmQueue
	out     chan SessionAlarm
	wakeup  chan struct{}
	stopCh  chan struct{}
	doneCh  chan struct{}
	started bool
	stopped bool
	dropped uint64
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:  make(alarmQueue, 0),
		out:    make(chan SessionAlarm, bufferSize),
		wakeup: make(chan struct{}, 1),
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (e *Engine) C() <-chan SessionAlarm {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

func (e *Engine) Schedule(alarm SessionAlarm) error {
	if alarm.FireAt.IsZero() {
		return ErrInvalidFireTime
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return errors.New("scheduler: engine stopped")
	}

	heap.Push(&e.queue, queueItem{alarm: alarm})
	e.signalWakeup()
	return nil
}

// CancelTask drops every queued alarm for the task, for when a session is
// reset or abandoned before it rings.
func (e *Engine) CancelTask(taskID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	kept := make(alarmQueue, 0, len(e.queue))
	for _, item := range e.queue {
		if item.alarm.TaskID != taskID {
			kept = append(kept, item)
		}
	}
	e.queue = kept
	heap.Init(&e.queue)
	e.signalWakeup()
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.FireAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(time.Now().UTC())
			for _, alarm := range due {
				select {
				case e.out <- alarm:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (SessionAlarm, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return SessionAlarm{}, false
	}
	return e.queue[0].alarm, true
}

func (e *Engine) popDue(now time.Time) []SessionAlarm {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]SessionAlarm, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].alarm
		if next.FireAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		out = append(out, item.alarm)
	}
	return out
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
