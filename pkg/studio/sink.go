package studio

import "sync"

// Sink receives the progress of a run as it happens. Calls are made from
// the goroutine running Run, in order.
type Sink interface {
	// Begin is called when a stage starts.
	Begin(stage Stage)

	// Show is called once when a stage produces its artifact. Binary data
	// and Path must be consumed before Show returns.
	Show(a Artifact)

	// Warn reports a problem that did not come from a capability, such as
	// blank input.
	Warn(msg string)

	// Fail reports a failed stage.
	Fail(err *StageError)
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) Begin(Stage)      {}
func (NopSink) Show(Artifact)    {}
func (NopSink) Warn(string)      {}
func (NopSink) Fail(*StageError) {}

// EventType names a Sink call.
type EventType string

const (
	EventBegin EventType = "begin"
	EventShow  EventType = "artifact"
	EventWarn  EventType = "warning"
	EventFail  EventType = "error"
)

// Event is one recorded Sink call.
type Event struct {
	Type     EventType
	Stage    Stage
	Artifact Artifact
	Message  string
	Err      *StageError
}

// Collector is a Sink that records every call. It is safe for concurrent
// use.
type Collector struct {
	mu     sync.Mutex
	events []Event
}

func (c *Collector) add(e Event) {
	c.mu.Lock()
	c.events = append(c.events, e)
	c.mu.Unlock()
}

func (c *Collector) Begin(stage Stage) {
	c.add(Event{Type: EventBegin, Stage: stage})
}

func (c *Collector) Show(a Artifact) {
	c.add(Event{Type: EventShow, Stage: a.Stage, Artifact: a})
}

func (c *Collector) Warn(msg string) {
	c.add(Event{Type: EventWarn, Message: msg})
}

func (c *Collector) Fail(err *StageError) {
	c.add(Event{Type: EventFail, Stage: err.Stage, Message: err.Error(), Err: err})
}

// Events returns a copy of the recorded events.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Filter returns the recorded events of type t.
func (c *Collector) Filter(t EventType) []Event {
	var out []Event
	for _, e := range c.Events() {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Kinds returns the kinds of shown artifacts in display order.
func (c *Collector) Kinds() []Kind {
	var out []Kind
	for _, e := range c.Filter(EventShow) {
		out = append(out, e.Artifact.Kind)
	}
	return out
}

var (
	_ Sink = NopSink{}
	_ Sink = (*Collector)(nil)
)
