package trace

import (
	"bufio"
	"io"
	"os"
	"sync"
)

// StreamTracer writes events as they happen. Output to a regular file is
// buffered until Flush; other writers see each event immediately.
type StreamTracer struct {
	mu     sync.Mutex
	dst    io.Writer     // where the bytes end up; closed by Close if it can be
	w      io.Writer     // dst or buf
	buf    *bufio.Writer // nil when unbuffered
	level  Level
	format Format
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	if format == FormatAuto {
		format = FormatText
	}
	t := &StreamTracer{dst: w, w: w, level: level, format: format}
	if _, isFile := w.(*os.File); isFile {
		t.buf = bufio.NewWriterSize(w, 64<<10)
		t.w = t.buf
	}
	return t
}

// Emit writes ev if the level streams its scope. Write errors are dropped:
// tracing never fails a run.
func (t *StreamTracer) Emit(ev *Event) {
	if ev == nil || !t.level.ShouldEmit(ev.Scope) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	ev.Seq = NextSeq()
	_, _ = t.w.Write(FormatEvent(ev, t.format)) //nolint:errcheck
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.buf != nil {
		return t.buf.Flush()
	}
	return nil
}

// Close flushes and closes the destination if it is an io.Closer.
func (t *StreamTracer) Close() error {
	if err := t.Flush(); err != nil {
		return err
	}
	if c, ok := t.dst.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (t *StreamTracer) Level() Level { return t.level }

func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }
