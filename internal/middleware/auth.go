package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"
)

// contextKey is a private type for context keys, avoiding collisions with
// other packages that store values on the request context.
type contextKey string

const contributorKey contextKey = "contributor"

// AuthConfig selects and configures the token verifier.
// Exactly one of Secret or JWKSURL must be set: Secret enables HS256 with a
// shared key (development, single-tenant deployments), JWKSURL enables RS256
// against an identity provider's published key set.
type AuthConfig struct {
	// Secret is the HS256 shared signing key.
	Secret string
	// JWKSURL is the identity provider's JWKS endpoint.
	JWKSURL string
	// Issuer, when non-empty, is enforced against the token's iss claim.
	Issuer string
}

// Auth verifies Bearer JWTs on mutating routes and exposes the verified
// contributor identity to handlers via the request context.
//
// This service never issues tokens and never parses raw credentials; it
// only checks signatures and extracts an opaque identity string.
type Auth struct {
	jwks    keyfunc.Keyfunc // nil in shared-secret mode
	secret  []byte
	methods []string
	issuer  string
	logger  *slog.Logger
}

// contributorClaims are the token claims this service reads.
// preferred_username is what OIDC providers put a human-facing handle in;
// sub is the stable fallback.
type contributorClaims struct {
	jwt.RegisteredClaims
	PreferredUsername string `json:"preferred_username"`
}

// NewAuth builds the JWT verification middleware.
// In JWKS mode the key set is fetched over HTTP and refreshed in the
// background; startup does not fail if the identity provider is briefly
// unreachable (NoErrorReturnFirstHTTPReq).
func NewAuth(ctx context.Context, cfg AuthConfig, logger *slog.Logger) (*Auth, error) {
	a := &Auth{
		issuer: cfg.Issuer,
		logger: logger.With(slog.String("component", "auth")),
	}

	switch {
	case cfg.JWKSURL != "":
		storage, err := jwkset.NewStorageFromHTTP(cfg.JWKSURL, jwkset.HTTPClientStorageOptions{
			Ctx:                       ctx,
			Client:                    &http.Client{Timeout: 10 * time.Second},
			NoErrorReturnFirstHTTPReq: true,
			RefreshInterval:           time.Hour,
			RefreshErrorHandler: func(_ context.Context, err error) {
				a.logger.Error("JWKS refresh failed",
					slog.String("error", err.Error()),
					slog.String("url", cfg.JWKSURL),
				)
			},
		})
		if err != nil {
			return nil, err
		}
		k, err := keyfunc.New(keyfunc.Options{Storage: storage})
		if err != nil {
			return nil, err
		}
		a.jwks = k
		a.methods = []string{"RS256"}
	case cfg.Secret != "":
		a.secret = []byte(cfg.Secret)
		a.methods = []string{"HS256"}
	default:
		return nil, errors.New("auth: neither JWT secret nor JWKS URL configured")
	}

	return a, nil
}

// keyfuncFor returns the jwt.Keyfunc for the configured verification mode.
func (a *Auth) keyfuncFor(ctx context.Context) jwt.Keyfunc {
	if a.jwks != nil {
		return a.jwks.KeyfuncCtx(ctx)
	}
	return func(_ *jwt.Token) (any, error) { return a.secret, nil }
}

// RequireContributor returns a middleware that rejects the request with 401
// unless it carries a valid Bearer token, and otherwise stores the verified
// contributor identity in the request context.
//
// It runs before any body validation or persistence access: an
// unauthenticated mutation never gets further than this middleware.
func (a *Auth) RequireContributor() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				unauthorized(w, "missing Authorization header")
				return
			}

			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				unauthorized(w, "expected Bearer token")
				return
			}

			claims := &contributorClaims{}
			opts := []jwt.ParserOption{
				jwt.WithValidMethods(a.methods),
				jwt.WithExpirationRequired(),
				jwt.WithLeeway(30 * time.Second),
			}
			if a.issuer != "" {
				opts = append(opts, jwt.WithIssuer(a.issuer))
			}

			token, err := jwt.ParseWithClaims(parts[1], claims, a.keyfuncFor(r.Context()), opts...)
			if err != nil || !token.Valid {
				a.logger.Debug("token rejected", slog.String("remote_addr", r.RemoteAddr))
				unauthorized(w, "invalid or expired token")
				return
			}

			contributor := claims.PreferredUsername
			if contributor == "" {
				contributor = claims.Subject
			}
			if contributor == "" {
				unauthorized(w, "token carries no identity")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithContributor(r.Context(), contributor)))
		})
	}
}

// WithContributor returns a context carrying the verified contributor
// identity. Exported so handler tests can inject identities without
// minting tokens.
func WithContributor(ctx context.Context, contributor string) context.Context {
	return context.WithValue(ctx, contributorKey, contributor)
}

// ContributorFromContext returns the verified contributor identity, or ""
// when the request was not authenticated.
func ContributorFromContext(ctx context.Context) string {
	c, _ := ctx.Value(contributorKey).(string)
	return c
}

// unauthorized writes the API's standard error envelope with status 401.
// Duplicated from the handler package rather than imported so that
// middleware never depends on handler.
func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": "unauthorized", "message": message},
	})
}
