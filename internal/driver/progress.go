package driver

import "time"

// Stage describes a phase of a directory run.
type Stage string

const (
	// StageLoad is the file loading stage.
	StageLoad Stage = "load"
	// StageParse is the lex+parse stage.
	StageParse Stage = "parse"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting for a worker.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being processed.
	StatusWorking Status = "working"
	// StatusCached indicates the tags came from the disk cache.
	StatusCached Status = "cached"
	// StatusDone indicates the file parsed cleanly.
	StatusDone Status = "done"
	// StatusError indicates the file produced diagnostics.
	StatusError Status = "error"
)

// ProgressEvent reports progress for a file (or for the whole run when File is empty).
type ProgressEvent struct {
	File    string
	Stage   Stage
	Status  Status
	Elapsed time.Duration
}

// Finished reports whether the event closes the file's lifecycle.
func (e ProgressEvent) Finished() bool {
	return e.Status == StatusDone || e.Status == StatusError || e.Status == StatusCached
}

// ProgressSink consumes progress events. OnEvent may be called from several workers.
type ProgressSink interface {
	OnEvent(ProgressEvent)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- ProgressEvent
}

func (s ChannelSink) OnEvent(evt ProgressEvent) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func (o Options) progress(evt ProgressEvent) {
	if o.Progress != nil {
		o.Progress.OnEvent(evt)
	}
}

// finalStatus maps a finished parse to the status shown for its file.
func finalStatus(res *ParseResult) Status {
	switch {
	case res == nil || !res.OK():
		return StatusError
	case res.Cached:
		return StatusCached
	default:
		return StatusDone
	}
}
