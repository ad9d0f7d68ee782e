package middleware

import (
	"net/http"

	"github.com/google/uuid"

	pkgctx "github.com/pocketcook/auth-service/internal/pkg/context"
)

const HeaderXRequestID = "X-Request-Id"

// RequestID propagates an inbound X-Request-Id header or mints a new
// one, echoing it on the response and storing it in the context.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(HeaderXRequestID)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(HeaderXRequestID, reqID)

		ctx := pkgctx.WithRequestID(r.Context(), reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
