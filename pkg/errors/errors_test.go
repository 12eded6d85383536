package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestViewErrorString(t *testing.T) {
	err := &ViewError{
		Op:   "view.Render",
		Kind: KindTemplate,
		Err:  &MissingTemplateError{View: "v1"},
	}
	got := err.Error()
	if got == "" {
		t.Error("expected non-empty error string")
	}
}

func TestViewErrorWithView(t *testing.T) {
	err := &ViewError{
		Op:   "view.Render",
		Kind: KindDisposed,
		View: "abc-123",
		Err:  &DisposedError{View: "abc-123", Op: "Render"},
	}
	got := err.Error()
	want := "view=abc-123"
	if !strings.Contains(got, want) {
		t.Errorf("error string %q should contain %q", got, want)
	}
}

func TestErrorKindString(t *testing.T) {
	tests := []struct {
		kind ErrorKind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindDisposed, "disposed"},
		{KindBinding, "binding"},
		{KindSubview, "subview"},
		{KindTemplate, "template"},
		{KindRender, "render"},
		{KindPanic, "panic"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", tt.kind, got, tt.want)
		}
	}
}

func TestViewErrorUnwrap(t *testing.T) {
	inner := &MissingTemplateDataError{View: "v1"}
	err := &ViewError{Op: "view.Render", Kind: KindTemplate, Err: inner}

	var target *MissingTemplateDataError
	if !stderrors.As(err, &target) {
		t.Error("errors.As should unwrap to MissingTemplateDataError")
	}
}

func TestCascadeErrorAggregates(t *testing.T) {
	err := &CascadeError{
		View: "parent",
		Errs: []error{
			stderrors.New("child a failed"),
			stderrors.New("child b failed"),
		},
	}
	got := err.Error()
	if !strings.Contains(got, "2 error(s)") {
		t.Errorf("cascade error %q should report 2 errors", got)
	}
	if !stderrors.Is(err, err.Errs[1]) {
		t.Error("errors.Is should match collected child errors")
	}
}

type capturingHandler struct {
	errs   []*ViewError
	panics []*PanicError
}

func (h *capturingHandler) HandleError(err *ViewError)  { h.errs = append(h.errs, err) }
func (h *capturingHandler) HandlePanic(err *PanicError) { h.panics = append(h.panics, err) }

func TestSetHandlerAndReport(t *testing.T) {
	h := &capturingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	Report(&ViewError{Op: "test.op", Kind: KindBinding, Err: stderrors.New("boom")})
	if len(h.errs) != 1 {
		t.Fatalf("expected 1 reported error, got %d", len(h.errs))
	}
	if h.errs[0].Timestamp.IsZero() {
		t.Error("Report should stamp a timestamp")
	}
}

func TestRecoverReportsPanic(t *testing.T) {
	h := &capturingHandler{}
	SetHandler(h)
	defer SetHandler(nil)

	func() {
		defer Recover("test.panicker")
		panic("kaboom")
	}()

	if len(h.panics) != 1 {
		t.Fatalf("expected 1 reported panic, got %d", len(h.panics))
	}
	if h.panics[0].Value != "kaboom" {
		t.Errorf("unexpected panic value: %v", h.panics[0].Value)
	}
	if h.panics[0].StackTrace == "" {
		t.Error("expected a captured stack trace")
	}
}
