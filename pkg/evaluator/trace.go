package evaluator

import (
	"time"
)

// TraceEventType identifies the type of a trace event.
type TraceEventType string

const (
	TraceMacroExpand TraceEventType = "macro_expand"
	TraceTailCall    TraceEventType = "tail_call"
	TracePrimitive   TraceEventType = "primitive_call"
	TraceTryStart    TraceEventType = "try_start"
	TraceTryEnd      TraceEventType = "try_end"
	TraceCatch       TraceEventType = "catch"
)

// TraceEvent represents a single trace event emitted during evaluation.
type TraceEvent struct {
	Timestamp string         `json:"ts"`
	Event     TraceEventType `json:"event"`
	Name      string         `json:"name,omitempty"`
	Detail    string         `json:"detail,omitempty"`
}

func (ev *Evaluator) emit(event TraceEventType, name, detail string) {
	if ev.trace != nil {
		ev.trace(TraceEvent{
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			Event:     event,
			Name:      name,
			Detail:    detail,
		})
	}
}
