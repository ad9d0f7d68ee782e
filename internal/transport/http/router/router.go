package router

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type HealthHandler interface {
	Healthz(w http.ResponseWriter, r *http.Request)
	Readyz(w http.ResponseWriter, r *http.Request)
}

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	GoogleLogin(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
}

type Deps struct {
	Health HealthHandler
	Auth   AuthHandler

	AuthMW func(http.Handler) http.Handler

	// Optional per-route rate limits. Nil means unlimited.
	RegisterLimitMW func(http.Handler) http.Handler
	LoginLimitMW    func(http.Handler) http.Handler

	RequestIDMW func(http.Handler) http.Handler
}

func New(deps Deps) (http.Handler, error) {
	if deps.Health == nil {
		return nil, fmt.Errorf("nil Health handler")
	}
	if deps.Auth == nil {
		return nil, fmt.Errorf("nil Auth handler")
	}
	if deps.AuthMW == nil {
		return nil, fmt.Errorf("nil Auth middleware")
	}

	r := chi.NewRouter()
	if deps.RequestIDMW != nil {
		r.Use(deps.RequestIDMW)
	}

	r.Get("/healthz", deps.Health.Healthz)
	r.Get("/readyz", deps.Health.Readyz)

	r.Route("/api/auth", func(r chi.Router) {
		if deps.RegisterLimitMW != nil {
			r.With(deps.RegisterLimitMW).Post("/register", deps.Auth.Register)
		} else {
			r.Post("/register", deps.Auth.Register)
		}

		if deps.LoginLimitMW != nil {
			r.With(deps.LoginLimitMW).Post("/login", deps.Auth.Login)
			r.With(deps.LoginLimitMW).Post("/google-login", deps.Auth.GoogleLogin)
		} else {
			r.Post("/login", deps.Auth.Login)
			r.Post("/google-login", deps.Auth.GoogleLogin)
		}

		r.With(deps.AuthMW).Get("/me", deps.Auth.Me)
	})

	return r, nil
}
