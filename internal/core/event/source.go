package event

import "time"

// InputSource yields pending input events. Poll returns false once no event
// is waiting. Events of non-input types other than Quit are dropped.
type InputSource interface {
	Poll() (Event, bool)
}

// FrameSink brackets the drawing of one frame.
type FrameSink interface {
	BeginFrame()
	EndFrame()
}

// Clock is the time source used for frame pacing.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

type noInput struct{}

func (noInput) Poll() (Event, bool) { return Event{}, false }

type noFrame struct{}

func (noFrame) BeginFrame() {}
func (noFrame) EndFrame()   {}

type realClock struct{}

func (realClock) Now() time.Time        { return time.Now() }
func (realClock) Sleep(d time.Duration) { time.Sleep(d) }

// Queue is an InputSource backed by a slice, for scripted and headless runs.
type Queue struct {
	events []Event
}

// Push appends events to the queue.
func (q *Queue) Push(evs ...Event) {
	q.events = append(q.events, evs...)
}

func (q *Queue) Poll() (Event, bool) {
	if len(q.events) == 0 {
		return Event{}, false
	}
	ev := q.events[0]
	q.events = q.events[1:]
	return ev, true
}

// Len returns the number of queued events.
func (q *Queue) Len() int { return len(q.events) }
