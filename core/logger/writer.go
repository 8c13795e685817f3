package logger

import (
	"errors"
	"io"
	"sync"
)

// asyncWriter hands log lines to a background goroutine that fans them out
// to every sink. Lines queued before a Flush are written when it returns.
type asyncWriter struct {
	lines   chan []byte
	flushes chan chan struct{}
	stopped chan struct{}
	close   sync.Once

	sinks []io.Writer

	mu  sync.Mutex
	err error
}

func newAsyncWriter(sinks []io.Writer, queue int) *asyncWriter {
	if queue <= 0 {
		queue = 256
	}
	out := make([]io.Writer, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	w := &asyncWriter{
		lines:   make(chan []byte, queue),
		flushes: make(chan chan struct{}),
		stopped: make(chan struct{}),
		sinks:   out,
	}
	go w.run()
	return w
}

func (w *asyncWriter) run() {
	defer close(w.stopped)
	for {
		select {
		case line, ok := <-w.lines:
			if !ok {
				return
			}
			w.fanOut(line)
		case done := <-w.flushes:
			w.drain()
			close(done)
		}
	}
}

// drain writes whatever is already queued without waiting for more.
func (w *asyncWriter) drain() {
	for {
		select {
		case line, ok := <-w.lines:
			if !ok {
				return
			}
			w.fanOut(line)
		default:
			return
		}
	}
}

func (w *asyncWriter) fanOut(line []byte) {
	var errs []error
	for _, s := range w.sinks {
		if _, err := s.Write(line); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		w.mu.Lock()
		if w.err == nil {
			w.err = err
		}
		w.mu.Unlock()
	}
}

func (w *asyncWriter) firstErr() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

// Write queues a copy of p. It blocks while the queue is full, so lines are
// never dropped.
func (w *asyncWriter) Write(p []byte) (int, error) {
	if err := w.firstErr(); err != nil {
		return 0, err
	}
	if len(p) == 0 {
		return 0, nil
	}
	w.lines <- append([]byte(nil), p...)
	return len(p), nil
}

// Flush returns once every line queued before the call reached the sinks.
func (w *asyncWriter) Flush() error {
	done := make(chan struct{})
	select {
	case w.flushes <- done:
		<-done
	case <-w.stopped:
	}
	return w.firstErr()
}

// Close writes the remaining lines and stops the goroutine.
func (w *asyncWriter) Close() error {
	w.close.Do(func() { close(w.lines) })
	<-w.stopped
	return w.firstErr()
}
