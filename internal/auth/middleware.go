package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/Sidnaik04/YT-Assistant/pkg/util"
)

const principalKey = "auth_principal"

// Principal represents the authenticated caller of a protected request.
type Principal struct {
	UserID    int64
	TokenID   string
	ExpiresAt time.Time
}

// AuthMiddleware validates bearer tokens against the verifier and the
// revocation blacklist.
type AuthMiddleware struct {
	tokens    *TokenManager
	blacklist TokenBlacklist
}

// NewAuthMiddleware constructs middleware.
func NewAuthMiddleware(tokens *TokenManager, blacklist TokenBlacklist) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, blacklist: blacklist}
}

// Handle enforces authentication for protected routes. Expired, forged and
// revoked tokens are rejected with distinct messages; a blacklist outage
// denies the request rather than treating the token as not revoked.
func (m *AuthMiddleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return apperrors.NewUnauthorized("missing authorization header")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return apperrors.NewUnauthorized("invalid authorization header")
	}

	claims, err := m.tokens.Decode(parts[1])
	if err != nil {
		if errors.Is(err, ErrTokenExpired) {
			return apperrors.NewUnauthorized("token expired")
		}
		return apperrors.NewUnauthorized("invalid token")
	}
	if claims.TokenType != TokenTypeAccess {
		return apperrors.NewUnauthorized("invalid token")
	}

	revoked, err := m.blacklist.IsRevoked(c.Context(), claims.ID)
	if err != nil {
		return apperrors.NewStoreUnavailable("revocation store", err)
	}
	if revoked {
		return apperrors.NewUnauthorized("token has been revoked")
	}

	c.Locals(principalKey, &Principal{
		UserID:    claims.UserID,
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	})
	return c.Next()
}

// PrincipalFromContext retrieves the authenticated caller.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok
}
