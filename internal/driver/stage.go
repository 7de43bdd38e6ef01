package driver

import "time"

// Stage names one step of the compilation pipeline.
type Stage string

const (
	StageLex     Stage = "lex"
	StageParse   Stage = "parse"
	StageCheck   Stage = "check"
	StageLower   Stage = "lower"
	StageCodegen Stage = "codegen"
)

// Stages lists the pipeline in execution order.
var Stages = []Stage{StageLex, StageParse, StageCheck, StageLower, StageCodegen}

func (s Stage) index() int {
	for i, st := range Stages {
		if st == s {
			return i
		}
	}
	return len(Stages) - 1
}

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports the progress of one stage.
type Event struct {
	Stage   Stage
	Status  Status
	Detail  string
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// SinkFunc adapts a function to ProgressSink.
type SinkFunc func(Event)

func (f SinkFunc) OnEvent(evt Event) { f(evt) }
