package auth

import (
	"context"
	"errors"
	"net/http"

	authhandlers "github.com/Black-And-White-Club/hackathon-judging/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/hackathon-judging/app/modules/auth/infrastructure/jwt"
	"github.com/Black-And-White-Club/hackathon-judging/app/observability"
	"github.com/Black-And-White-Club/hackathon-judging/config"
	"github.com/go-chi/chi/v5"
)

// Module represents the auth module. It owns token validation and the
// middleware stack placed in front of every API route.
type Module struct {
	Provider authjwt.Provider
	limiter  *authhandlers.IPRateLimiter
	cfg      *config.Config
	obs      observability.Observability
}

// NewAuthModule creates the JWT provider and rate limiter from config.
func NewAuthModule(ctx context.Context, cfg *config.Config, obs observability.Observability) (*Module, error) {
	obs.Logger.InfoContext(ctx, "auth.NewAuthModule initializing")

	if cfg.JWT.Secret == "" {
		return nil, errors.New("jwt secret not set")
	}

	return &Module{
		Provider: authjwt.NewProvider(cfg.JWT.Secret),
		limiter:  authhandlers.NewIPRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst),
		cfg:      cfg,
		obs:      obs,
	}, nil
}

// Middleware returns the global middleware: CORS then per-IP rate limiting.
func (m *Module) Middleware() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		authhandlers.CORSMiddleware(m.cfg.HTTP.AllowedOrigins),
		authhandlers.RateLimitMiddleware(m.limiter),
	}
}

// Protect installs bearer authentication on r.
func (m *Module) Protect(r chi.Router) {
	r.Use(authhandlers.BearerAuth(m.Provider, m.obs.Logger))
}
