package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestKindOf(t *testing.T) {
	if got := KindOf(NotFoundf("doctor %s not found", "x")); got != KindNotFound {
		t.Errorf("KindOf(NotFoundf) = %v, want KindNotFound", got)
	}
	if got := KindOf(Validationf("patient_name is required")); got != KindValidation {
		t.Errorf("KindOf(Validationf) = %v, want KindValidation", got)
	}
	if got := KindOf(Conflictf("slot already booked")); got != KindConflict {
		t.Errorf("KindOf(Conflictf) = %v, want KindConflict", got)
	}
	if got := KindOf(errors.New("boom")); got != KindUnknown {
		t.Errorf("KindOf(plain error) = %v, want KindUnknown", got)
	}
}

func TestKindOf_Wrapped(t *testing.T) {
	err := fmt.Errorf("create appointment: %w", Conflictf("slot already booked"))
	if !IsConflict(err) {
		t.Error("expected wrapped conflict to be detected")
	}
}

func TestToHTTP(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{NotFoundf("nope"), http.StatusNotFound},
		{Validationf("bad"), http.StatusBadRequest},
		{Conflictf("dup"), http.StatusConflict},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		he := ToHTTP(tc.err)
		if he.Code != tc.code {
			t.Errorf("ToHTTP(%v) code = %d, want %d", tc.err, he.Code, tc.code)
		}
	}
}

func TestToHTTP_HidesInternalMessage(t *testing.T) {
	he := ToHTTP(errors.New("pq: connection refused"))
	if he.Message == "pq: connection refused" {
		t.Error("internal error message leaked to client")
	}
}
