package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pocketcook/auth-service/internal/domain"
	pkgctx "github.com/pocketcook/auth-service/internal/pkg/context"
)

func TestDecodeJSON_OK(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"a@b.com"}`))
	var dst struct {
		Email string `json:"email"`
	}
	if err := DecodeJSON(r, &dst); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dst.Email != "a@b.com" {
		t.Fatalf("unexpected email: %q", dst.Email)
	}
}

func TestDecodeJSON_Malformed(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":`))
	var dst map[string]any
	err := DecodeJSON(r, &dst)
	if !domain.Is(err, "invalid_json") {
		t.Fatalf("expected invalid_json, got %v", err)
	}
}

func TestDecodeJSON_TrailingData(t *testing.T) {
	t.Parallel()

	r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}{}`))
	var dst map[string]any
	err := DecodeJSON(r, &dst)
	if !domain.Is(err, "invalid_json") {
		t.Fatalf("expected invalid_json, got %v", err)
	}
}

func TestWriteError_DomainError(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r = r.WithContext(pkgctx.WithRequestID(r.Context(), "req-1"))

	WriteError(w, r, domain.ErrInvalidCredentials())

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	var body ErrorBody
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Error.Code != "invalid_credentials" {
		t.Fatalf("unexpected code: %q", body.Error.Code)
	}
	if body.Error.RequestID != "req-1" {
		t.Fatalf("expected request id, got %q", body.Error.RequestID)
	}
}

func TestWriteError_UnknownError_Is500(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	WriteError(w, r, errors.New("sql: driver panic"))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "driver panic") {
		t.Fatalf("internal details leaked: %s", w.Body.String())
	}
}

func TestStatusFromKind(t *testing.T) {
	t.Parallel()

	cases := map[domain.ErrKind]int{
		domain.KindValidation:     http.StatusBadRequest,
		domain.KindAuth:           http.StatusUnauthorized,
		domain.KindNotFound:       http.StatusNotFound,
		domain.KindRateLimited:    http.StatusTooManyRequests,
		domain.KindInfrastructure: http.StatusServiceUnavailable,
		domain.KindInternal:       http.StatusInternalServerError,
		domain.ErrKind("nope"):    http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := statusFromKind(kind); got != want {
			t.Fatalf("kind %q: expected %d, got %d", kind, want, got)
		}
	}
}

func TestOK_WrapsInDataEnvelope(t *testing.T) {
	t.Parallel()

	w := httptest.NewRecorder()
	OK(w, map[string]string{"token": "abc"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var body struct {
		Data map[string]string `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if body.Data["token"] != "abc" {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}
