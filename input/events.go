package input

// EventKind identifies a window or input event.
type EventKind int

const (
	EventQuit EventKind = iota + 1
	EventKeyDown
	EventKeyUp
	EventResize
)

// Event is a single item from the window/input event stream.
type Event struct {
	Kind   EventKind
	Key    Key
	Width  int
	Height int
}

// Quit returns a quit event.
func Quit() Event { return Event{Kind: EventQuit} }

// KeyDown returns a key press event.
func KeyDown(k Key) Event { return Event{Kind: EventKeyDown, Key: k} }

// KeyUp returns a key release event.
func KeyUp(k Key) Event { return Event{Kind: EventKeyUp, Key: k} }

// Resize returns a window resize event.
func Resize(w, h int) Event { return Event{Kind: EventResize, Width: w, Height: h} }

// EventSource delivers pending events. Poll never blocks.
type EventSource interface {
	Poll() []Event
}

// Queue is an in-memory EventSource.
type Queue struct {
	items []Event
}

// Push adds events to the queue.
func (q *Queue) Push(evts ...Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evts...)
}

// Poll drains the queue.
func (q *Queue) Poll() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}
