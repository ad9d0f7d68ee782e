package http_handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/pocketcook/auth-service/internal/application/auth"
	"github.com/pocketcook/auth-service/internal/infrastructure/memory"
	"github.com/pocketcook/auth-service/internal/transport/http/middleware"
)

// mustJSONBody marshals v to JSON and returns an io.Reader for request body.
func mustJSONBody(t *testing.T, v any) io.Reader {
	t.Helper()

	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json marshal: %v", err)
	}
	return bytes.NewReader(b)
}

// mustReadData decodes the {"data": ...} envelope into out.
func mustReadData(t *testing.T, r io.Reader, out any) {
	t.Helper()

	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}

	wrapped := struct {
		Data json.RawMessage `json:"data"`
	}{}
	if err := json.Unmarshal(raw, &wrapped); err != nil || len(wrapped.Data) == 0 {
		t.Fatalf("decode envelope failed; body=%s", string(raw))
	}
	if err := json.Unmarshal(wrapped.Data, out); err != nil {
		t.Fatalf("decode data failed; body=%s err=%v", string(raw), err)
	}
}

// mustReadErrorCode extracts error.code from an error envelope.
func mustReadErrorCode(t *testing.T, r io.Reader) string {
	t.Helper()

	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	raw, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		t.Fatalf("decode error envelope failed; body=%s", string(raw))
	}
	return body.Error.Code
}

// withUserCtx injects the authenticated user into the request context.
func withUserCtx(req *http.Request, userID string) *http.Request {
	return req.WithContext(middleware.WithUser(req.Context(), userID))
}

// -------------------------
// Test wiring (pure unit)
// -------------------------

// plainHasher avoids bcrypt cost in unit tests.
type plainHasher struct{}

func (plainHasher) Hash(pw string) (string, error) { return "hash:" + pw, nil }

func (plainHasher) Compare(hash, pw string) error {
	if hash != "hash:"+pw {
		return errors.New("mismatch")
	}
	return nil
}

type stubSigner struct{}

func (stubSigner) Sign(c auth.Claims, _ time.Duration) (string, error) {
	return "tok:" + c.Subject, nil
}

func (stubSigner) Verify(token string) (auth.TokenClaims, error) {
	return auth.TokenClaims{Subject: token}, nil
}

type stubVerifier struct {
	configured bool
	identity   auth.GoogleIdentity
	err        error
}

func (v *stubVerifier) IsConfigured() bool { return v.configured }

func (v *stubVerifier) Verify(_ context.Context, _ string) (auth.GoogleIdentity, error) {
	return v.identity, v.err
}

func newTestHandler(verifier *stubVerifier) (*AuthHandler, *memory.UserRepo) {
	users := memory.NewUserRepo()
	svc := auth.NewService(
		users,
		plainHasher{},
		stubSigner{},
		verifier,
		memory.NewNoopPublisher(),
		auth.Config{Issuer: "pocketcook", Audience: "pocketcook-api"},
	)
	return NewAuthHandler(svc), users
}
