package response

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sqooli/partner-api/internal/pkg/apperror"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func TestFromErrorMapsKinds(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apperror.New(apperror.KindConflict, "role name already exists"), http.StatusConflict, "CONFLICT"},
		{apperror.New(apperror.KindNotFound, "wallet not found"), http.StatusNotFound, "NOT_FOUND"},
		{apperror.New(apperror.KindInvalidReference, "invalid permission reference"), http.StatusUnprocessableEntity, "INVALID_REFERENCE"},
		{apperror.New(apperror.KindPolicyViolation, "system role is protected"), http.StatusConflict, "POLICY_VIOLATION"},
		{errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		FromError(w, fmt.Errorf("op: %w", tc.err))
		if w.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.err, tc.status, w.Code)
		}
		resp := decode(t, w)
		if resp.Success || resp.Error == nil || resp.Error.Code != tc.code {
			t.Fatalf("%v: unexpected body %+v", tc.err, resp)
		}
	}
}

func TestFromErrorKeepsDomainMessage(t *testing.T) {
	w := httptest.NewRecorder()
	FromError(w, fmt.Errorf("%w: %w", apperror.New(apperror.KindConflict, "user already exists"), errors.New("pq: 23505")))

	resp := decode(t, w)
	if resp.Error.Message != "user already exists" {
		t.Fatalf("expected domain message, got %q", resp.Error.Message)
	}
}

func TestFromErrorReportsInUseCount(t *testing.T) {
	sentinel := apperror.New(apperror.KindPolicyViolation, "role is assigned to users")
	w := httptest.NewRecorder()
	FromError(w, &apperror.InUseError{Sentinel: sentinel, Count: 2})

	resp := decode(t, w)
	if resp.Error.Details["user_count"] != "2" {
		t.Fatalf("expected user_count detail, got %+v", resp.Error.Details)
	}
}

func TestNewMetaPages(t *testing.T) {
	m := NewMeta(45, 2, 20)
	if m.Pages != 3 || !m.HasNext || !m.HasPrev {
		t.Fatalf("unexpected meta %+v", m)
	}
	if m := NewMeta(0, 1, 20); m.Pages != 0 || m.HasNext || m.HasPrev {
		t.Fatalf("unexpected empty meta %+v", m)
	}
}
