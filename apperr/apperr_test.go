package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrap(t *testing.T) {
	base := errors.New("redis: nil")

	wrapped := Wrap(base, ErrSessionExpired, "")
	if wrapped == nil {
		t.Fatal("Wrap() = nil for a non-nil error")
	}
	if wrapped.Code != "session_expired" || wrapped.Status != http.StatusGone {
		t.Errorf("Wrap() = %+v, want session_expired/410", wrapped)
	}
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to the original")
	}
	if Wrap(nil, ErrInternal, "x") != nil {
		t.Error("Wrap(nil) should be nil")
	}
	if got := Wrap(base, nil, ""); got.Code != "internal_error" {
		t.Errorf("Wrap with nil base = %q, want internal_error", got.Code)
	}

	// Wrapping must not mutate the shared sentinel.
	Wrap(base, ErrNotFound, "custom message")
	if ErrNotFound.Message != "" || ErrNotFound.Err != nil {
		t.Errorf("sentinel mutated: %+v", ErrNotFound)
	}
}

func TestStatusAndCode(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"typed error", ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{"wrapped typed error", fmt.Errorf("handler: %w", Wrap(errors.New("boom"), ErrAirtable, "")), http.StatusBadGateway, "airtable_error"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
		{"nil", nil, http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Status(tt.err); got != tt.wantStatus {
				t.Errorf("Status() = %d, want %d", got, tt.wantStatus)
			}
			if got := Code(tt.err); got != tt.wantCode {
				t.Errorf("Code() = %q, want %q", got, tt.wantCode)
			}
		})
	}
}

func TestPayload(t *testing.T) {
	err := Wrap(errors.New("boom"), ErrValidation, "phone number too short")
	err.Fields = map[string]any{"phone": "too short"}

	payload := Payload(err)
	if payload["code"] != "validation_error" {
		t.Errorf("code = %v", payload["code"])
	}
	if payload["message"] != "phone number too short" {
		t.Errorf("message = %v", payload["message"])
	}
	if _, ok := payload["fields"]; !ok {
		t.Error("fields missing from payload")
	}

	plain := Payload(errors.New("boom"))
	if plain["code"] != "internal_error" || plain["message"] != "boom" {
		t.Errorf("plain payload = %v", plain)
	}
}
