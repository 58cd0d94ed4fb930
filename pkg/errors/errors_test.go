package errors

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestComponentErrorString(t *testing.T) {
	err := &ComponentError{
		Op:   "core.Post",
		Kind: KindUndeclaredEvent,
		Err:  ErrUndeclaredEvent,
	}
	got := err.Error()
	want := "core.Post [undeclared-event]: undeclared event kind"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestComponentErrorWithComponent(t *testing.T) {
	err := &ComponentError{
		Op:        "core.SetProps",
		Kind:      KindProps,
		Component: "*components.Button",
		Err:       ErrPropsType,
	}
	got := err.Error()
	want := "component=*components.Button"
	if !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestComponentErrorUnwrap(t *testing.T) {
	err := New("core.SetData", KindThread, "", ErrWrongThread)
	if !Is(err, ErrWrongThread) {
		t.Error("expected errors.Is to match ErrWrongThread")
	}
	if err.StackTrace == "" {
		t.Error("expected New to capture a stack trace")
	}
	if err.Timestamp.IsZero() {
		t.Error("expected New to stamp the time")
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindConfig, "config"},
		{KindUndeclaredEvent, "undeclared-event"},
		{KindThread, "thread"},
		{KindProps, "props"},
		{KindPanic, "panic"},
		{KindRender, "render"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestPanicErrorString(t *testing.T) {
	err := &PanicError{Value: "test panic", Timestamp: time.Now()}
	if got, want := err.Error(), "panic: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}

	err.Op = "uithread.Invoke"
	if got, want := err.Error(), "panic in uithread.Invoke: test panic"; got != want {
		t.Errorf("PanicError.Error() = %q, want %q", got, want)
	}
}

func TestPanicErrorUnwrap(t *testing.T) {
	err := &PanicError{Value: ErrWrongThread}
	if !Is(err, ErrWrongThread) {
		t.Error("expected panic value error to be unwrapped")
	}
	if (&PanicError{Value: 42}).Unwrap() != nil {
		t.Error("non-error panic values should not unwrap")
	}
}

func TestFromPanic(t *testing.T) {
	ce := New("core.Post", KindUndeclaredEvent, "x", ErrUndeclaredEvent)
	if got := FromPanic("op", ce); got != ce {
		t.Errorf("FromPanic should pass ComponentError through, got %v", got)
	}

	got := FromPanic("op", "boom")
	pe, ok := got.(*PanicError)
	if !ok {
		t.Fatalf("FromPanic = %T, want *PanicError", got)
	}
	if pe.Value != "boom" || pe.Op != "op" {
		t.Errorf("unexpected PanicError %+v", pe)
	}
}

func TestReport(t *testing.T) {
	var captured *ComponentError
	old := SetHandler(&testHandler{onError: func(err *ComponentError) { captured = err }})
	defer SetHandler(old)

	Report(&ComponentError{Op: "test.op", Kind: KindConfig, Err: ErrMissingCollaborator})

	if captured == nil {
		t.Fatal("expected error to be captured")
	}
	if captured.Op != "test.op" {
		t.Errorf("Op = %q, want %q", captured.Op, "test.op")
	}
	if captured.Timestamp.IsZero() {
		t.Error("expected Timestamp to be set")
	}
}

func TestGuard(t *testing.T) {
	var (
		panics []*PanicError
		errs   []*ComponentError
	)
	old := SetHandler(&testHandler{
		onPanic: func(err *PanicError) { panics = append(panics, err) },
		onError: func(err *ComponentError) { errs = append(errs, err) },
	})
	defer SetHandler(old)

	if err := Guard("test.ok", func() {}); err != nil {
		t.Fatalf("Guard = %v, want nil", err)
	}

	err := Guard("test.guard", func() { panic("intentional test panic") })
	pe, ok := err.(*PanicError)
	if !ok {
		t.Fatalf("Guard = %T, want *PanicError", err)
	}
	if pe.Op != "test.guard" || pe.Value != "intentional test panic" {
		t.Errorf("unexpected PanicError %+v", pe)
	}

	ce := New("core.Post", KindUndeclaredEvent, "", ErrUndeclaredEvent)
	if got := Guard("test.guard", func() { panic(ce) }); got != ce {
		t.Errorf("Guard should pass ComponentError through, got %v", got)
	}

	if len(panics) != 1 || panics[0] != pe {
		t.Errorf("reported panics = %v, want [%v]", panics, pe)
	}
	if len(errs) != 1 || errs[0] != ce {
		t.Errorf("reported errors = %v, want [%v]", errs, ce)
	}
}

func TestCaptureStack(t *testing.T) {
	stack := CaptureStack()
	if stack == "" {
		t.Error("expected non-empty stack trace")
	}
	if !strings.Contains(stack, "testing") && !strings.Contains(stack, "runtime") {
		t.Errorf("stack trace should contain testing or runtime frames, got: %s", stack)
	}
}

func TestSetHandlerNil(t *testing.T) {
	old := SetHandler(nil)
	defer SetHandler(old)
	if _, ok := CurrentHandler().(*LogHandler); !ok {
		t.Errorf("SetHandler(nil) should install a LogHandler, got %T", CurrentHandler())
	}
}

func TestLogHandlerWritesRecords(t *testing.T) {
	var buf bytes.Buffer
	h := &LogHandler{Logger: slog.New(slog.NewTextHandler(&buf, nil)), Verbose: true}

	h.HandleError(&ComponentError{Op: "core.Post", Kind: KindUndeclaredEvent, Component: "*x.Y", Err: ErrUndeclaredEvent, StackTrace: "frame"})
	h.HandlePanic(&PanicError{Op: "uithread.Invoke", Value: "boom"})

	out := buf.String()
	for _, want := range []string{"kind=undeclared-event", "component=*x.Y", "stack=frame", "op=uithread.Invoke", "value=boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q should contain %q", out, want)
		}
	}
}

type testHandler struct {
	onError func(*ComponentError)
	onPanic func(*PanicError)
}

func (h *testHandler) HandleError(err *ComponentError) {
	if h.onError != nil {
		h.onError(err)
	}
}

func (h *testHandler) HandlePanic(err *PanicError) {
	if h.onPanic != nil {
		h.onPanic(err)
	}
}
