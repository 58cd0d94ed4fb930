package errors

import (
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"
)

var (
	handlerMu sync.RWMutex
	handler   ErrorHandler = &LogHandler{}
)

// SetHandler installs h as the process-wide error handler and returns the
// previous one. A nil h restores a LogHandler on slog.Default().
func SetHandler(h ErrorHandler) ErrorHandler {
	if h == nil {
		h = &LogHandler{}
	}
	handlerMu.Lock()
	defer handlerMu.Unlock()
	previous := handler
	handler = h
	return previous
}

// CurrentHandler returns the installed error handler.
func CurrentHandler() ErrorHandler {
	handlerMu.RLock()
	defer handlerMu.RUnlock()
	return handler
}

// Report sends err to the installed handler.
func Report(err *ComponentError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	CurrentHandler().HandleError(err)
}

// ReportPanic sends a recovered panic to the installed handler.
func ReportPanic(err *PanicError) {
	if err == nil {
		return
	}
	stamp(&err.Timestamp)
	CurrentHandler().HandlePanic(err)
}

func stamp(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Guard runs fn, reports a panic raised inside it and returns it as an error.
// Engine errors come back unchanged; other values become a *PanicError
// tagged with op.
func Guard(op string, fn func()) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		err = FromPanic(op, r)
		switch e := err.(type) {
		case *ComponentError:
			Report(e)
		case *PanicError:
			ReportPanic(e)
		}
	}()
	fn()
	return nil
}

// FromPanic converts a recovered value into an error. Engine errors raised
// with panic are returned unchanged so callers can match their Kind.
func FromPanic(op string, r any) error {
	if ce, ok := r.(*ComponentError); ok {
		return ce
	}
	return &PanicError{
		Op:         op,
		Value:      r,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
}

// CaptureStack formats the caller's stack, one "function\n\tfile:line" entry
// per frame, at most 32 frames deep.
func CaptureStack() string {
	var pcs [32]uintptr
	n := runtime.Callers(3, pcs[:])
	var sb strings.Builder
	frames := runtime.CallersFrames(pcs[:n])
	for n > 0 {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return sb.String()
}
