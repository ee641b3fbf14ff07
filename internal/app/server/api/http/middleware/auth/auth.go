package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/exp/slog"

	"github.com/Reinvik/nexus-lean-sub000/internal/domain/session"
)

type Auth struct {
	session session.Servicer
	log     *slog.Logger
}

func New(session session.Servicer, log *slog.Logger) *Auth {
	return &Auth{
		session: session,
		log:     log.With("component", "auth_middleware"),
	}
}

type contextKey string

const identityKey contextKey = "identity"

// Middleware validates the bearer token and stores the resolved identity,
// including its company scope, in the request context.
func (a *Auth) Middleware() func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		token, ok := strings.CutPrefix(ctx.Header("Authorization"), "Bearer ")
		if !ok || token == "" {
			a.reject(ctx)
			return
		}

		identity, err := a.session.Validate(ctx.Context(), token)
		if err != nil {
			a.log.Debug("token validation failed", "error", err)
			a.reject(ctx)
			return
		}

		newCtx := context.WithValue(ctx.Context(), identityKey, identity)
		next(huma.WithContext(ctx, newCtx))
	}
}

func (a *Auth) reject(ctx huma.Context) {
	ctx.SetStatus(http.StatusUnauthorized)
	ctx.SetHeader("Content-Type", "application/json")
	if err := json.NewEncoder(ctx.BodyWriter()).Encode(map[string]string{
		"error": "Unauthorized",
	}); err != nil {
		a.log.Error("failed to write unauthorized response", "error", err)
	}
}

// WithIdentity returns a context carrying the identity, the same way the
// middleware stores it.
func WithIdentity(ctx context.Context, identity session.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// GetIdentity returns the identity the auth middleware stored.
func GetIdentity(ctx context.Context) (session.Identity, bool) {
	identity, ok := ctx.Value(identityKey).(session.Identity)
	return identity, ok
}
