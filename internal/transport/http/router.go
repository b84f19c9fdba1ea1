package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sitecrew/auth-api/internal/application/session"
	"github.com/sitecrew/auth-api/internal/application/verification"
	"github.com/sitecrew/auth-api/internal/config"
	"github.com/sitecrew/auth-api/internal/domain"
	jwtinfra "github.com/sitecrew/auth-api/internal/infrastructure/jwt"
	"github.com/sitecrew/auth-api/internal/infrastructure/mail"
	"github.com/sitecrew/auth-api/internal/infrastructure/memstore"
	"github.com/sitecrew/auth-api/internal/transport/http/handler"
	appmiddleware "github.com/sitecrew/auth-api/internal/transport/http/middleware"
	"golang.org/x/time/rate"
)

// Deps holds all infrastructure dependencies for the router.
type Deps struct {
	PasscodeStore *verification.Store
	SessionRepo   *memstore.SessionRepo
	Accounts      verification.AccountClient
	Mailer        mail.Mailer
	JWTProvider   *jwtinfra.Provider
}

// NewRouter builds and returns the application router. The returned
// verification service is also handed back so main can start its sweeper.
func NewRouter(cfg *config.Config, deps *Deps) (http.Handler, verification.Service) {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// 5 requests/second, burst of 10 — applied to the public auth endpoints.
	sensitiveRL := appmiddleware.NewRateLimiter(rate.Limit(5), 10)

	sessionSvc := session.NewService(deps.SessionRepo, deps.JWTProvider, cfg.RefreshTokenExpiry())
	verifySvc := verification.NewService(verification.ServiceDeps{
		Store:    deps.PasscodeStore,
		Accounts: deps.Accounts,
		Mailer:   deps.Mailer,
		Sessions: sessionSvc,
		Cooldown: cfg.ResendCooldown,
	})

	healthH := handler.NewHealthHandler()
	authH := handler.NewAuthHandler(verifySvc)
	sessionH := handler.NewSessionHandler(sessionSvc)

	r.Route("/v1", func(r chi.Router) {
		// ── Public routes (no auth) ──────────────────────────────────────────
		r.Get("/health-check/{action}", healthH.Ping)
		r.With(sensitiveRL.Limit).Post("/auth/login", authH.Login)
		r.With(sensitiveRL.Limit).Post("/auth/verify", authH.Verify)
		r.With(sensitiveRL.Limit).Post("/auth/resend", authH.Resend)
		r.Post("/sessions/refresh", sessionH.Refresh)

		// Passcode visibility for manual testing; never mounted in production.
		if !cfg.IsProduction() {
			devH := handler.NewDevHandler(deps.PasscodeStore)
			r.Get("/dev/passcodes/{email}", devH.PeekPasscode)
		}

		// ── Authenticated routes ─────────────────────────────────────────────
		r.Group(func(r chi.Router) {
			r.Use(appmiddleware.Auth(deps.JWTProvider))

			r.Get("/sessions", sessionH.GetCurrent)
			r.Post("/sessions/logout", sessionH.Logout)

			// Admin-only routes
			r.With(appmiddleware.RequirePosition(domain.PositionAdmin)).
				Get("/admin/sessions", sessionH.ListActive)
		})
	})

	return r, verifySvc
}
