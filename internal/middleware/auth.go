package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sqooli/partner-api/internal/pkg/access"
	"github.com/sqooli/partner-api/internal/pkg/response"
)

type contextKey string

const (
	PrincipalKey contextKey = "principal"
	TokenKey     contextKey = "session_token"
)

// Principal is the authenticated caller resolved from a session token.
// Permissions are the user's own permission keys, never derived from role.
type Principal struct {
	UserID      uuid.UUID
	PartnerID   uuid.UUID
	Role        string
	Permissions []string
}

// Authenticator resolves a session token. A nil principal with nil error
// means the token is unknown or expired.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*Principal, error)
}

// SessionAuth returns middleware that validates a Bearer session token
func SessionAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := BearerToken(r)
			if !ok {
				response.Unauthorized(w, "Missing or invalid authorization header")
				return
			}

			principal, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				response.InternalError(w)
				return
			}
			if principal == nil {
				response.Unauthorized(w, "Session expired or invalid")
				return
			}

			rememberCaller(r.Context(), principal)
			ctx := WithPrincipal(r.Context(), principal)
			ctx = context.WithValue(ctx, TokenKey, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	parts := strings.Split(r.Header.Get("Authorization"), " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// WithPrincipal attaches a principal to ctx.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

// GetPrincipal extracts the principal from context
func GetPrincipal(ctx context.Context) *Principal {
	if p, ok := ctx.Value(PrincipalKey).(*Principal); ok {
		return p
	}
	return nil
}

// GetUserID extracts user ID from context
func GetUserID(ctx context.Context) uuid.UUID {
	if p := GetPrincipal(ctx); p != nil {
		return p.UserID
	}
	return uuid.Nil
}

// GetPartnerID extracts the caller's partner ID from context
func GetPartnerID(ctx context.Context) uuid.UUID {
	if p := GetPrincipal(ctx); p != nil {
		return p.PartnerID
	}
	return uuid.Nil
}

// GetToken returns the raw session token of the request.
func GetToken(ctx context.Context) string {
	if t, ok := ctx.Value(TokenKey).(string); ok {
		return t
	}
	return ""
}

// HasPermission checks the caller's own permission set.
func HasPermission(ctx context.Context, key string) bool {
	p := GetPrincipal(ctx)
	return p != nil && access.Allows(p.Permissions, key)
}

// CanAccessPartner reports whether the caller may act on partnerID:
// its own partner, or any partner with all_access.
func CanAccessPartner(ctx context.Context, partnerID uuid.UUID) bool {
	p := GetPrincipal(ctx)
	if p == nil {
		return false
	}
	return p.PartnerID == partnerID || access.Allows(p.Permissions, access.AllAccess)
}

// RequirePermission returns middleware that checks the caller's permission set
func RequirePermission(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if GetPrincipal(r.Context()) == nil {
				response.Unauthorized(w, "Authentication required")
				return
			}
			if !HasPermission(r.Context(), key) {
				response.Forbidden(w, "Permission denied")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
