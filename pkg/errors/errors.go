// Package errors provides structured error handling for the progressive engine.
package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorKind identifies the category of an error.
type ErrorKind int

const (
	// KindUnknown indicates an error of unknown type.
	KindUnknown ErrorKind = iota
	// KindConfig indicates a missing or invalid collaborator at construction.
	KindConfig
	// KindUndeclaredEvent indicates a component posted an event kind it never declared.
	KindUndeclaredEvent
	// KindThread indicates an engine operation invoked off the UI thread.
	KindThread
	// KindProps indicates props of the wrong type were handed to a component.
	KindProps
	// KindPanic indicates a recovered panic.
	KindPanic
	// KindRender indicates a rendering error.
	KindRender
)

func (k ErrorKind) String() string {
	switch k {
	case KindConfig:
		return "config"
	case KindUndeclaredEvent:
		return "undeclared-event"
	case KindThread:
		return "thread"
	case KindProps:
		return "props"
	case KindPanic:
		return "panic"
	case KindRender:
		return "render"
	default:
		return "unknown"
	}
}

// Sentinel causes wrapped by ComponentError. Match them with Is.
var (
	ErrMissingCollaborator = stderrors.New("missing collaborator")
	ErrUndeclaredEvent     = stderrors.New("undeclared event kind")
	ErrWrongThread         = stderrors.New("not on the UI thread")
	ErrPropsType           = stderrors.New("props type mismatch")
	ErrAbsentData          = stderrors.New("data cannot be cleared once committed")
)

// ComponentError represents a structured engine error.
type ComponentError struct {
	// Op is the operation that failed (e.g., "core.SetData").
	Op string
	// Kind categorizes the error.
	Kind ErrorKind
	// Component is the concrete component type name, if applicable.
	Component string
	// Err is the underlying error.
	Err error
	// StackTrace contains the call stack at the time of the error.
	StackTrace string
	// Timestamp is when the error occurred.
	Timestamp time.Time
}

func (e *ComponentError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s [%s] component=%s: %v", e.Op, e.Kind, e.Component, e.Err)
	}
	return fmt.Sprintf("%s [%s]: %v", e.Op, e.Kind, e.Err)
}

func (e *ComponentError) Unwrap() error {
	return e.Err
}

// New builds a ComponentError stamped with the current time and stack.
func New(op string, kind ErrorKind, component string, err error) *ComponentError {
	return &ComponentError{
		Op:         op,
		Kind:       kind,
		Component:  component,
		Err:        err,
		StackTrace: CaptureStack(),
		Timestamp:  time.Now(),
	}
}

// PanicError represents a recovered panic.
type PanicError struct {
	// Op is the operation that panicked (e.g., "uithread.Invoke").
	Op string
	// Value is the value passed to panic().
	Value any
	// StackTrace contains the call stack at the time of the panic.
	StackTrace string
	// Timestamp is when the panic occurred.
	Timestamp time.Time
}

func (e *PanicError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("panic in %s: %v", e.Op, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// ErrorHandler receives errors reported by the engine.
type ErrorHandler interface {
	// HandleError is called when an error is reported.
	HandleError(err *ComponentError)
	// HandlePanic is called when a panic is recovered.
	HandlePanic(err *PanicError)
}

// Is, As and Join re-export the standard helpers so callers importing this
// package under its default name keep access to them.
var (
	Is   = stderrors.Is
	As   = stderrors.As
	Join = stderrors.Join
)
