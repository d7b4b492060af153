package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Sidnaik04/YT-Assistant/pkg/util"
)

type failingBlacklist struct{}

func (failingBlacklist) Revoke(context.Context, string, time.Duration) error {
	return errors.New("redis down")
}

func (failingBlacklist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func newTestApp(t *testing.T, blacklist TokenBlacklist) (*fiber.App, *TokenManager) {
	t.Helper()
	tm := newTestTokenManager(t)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			domainErr := apperrors.ToDomainError(err)
			return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{
				"message": domainErr.Message,
			})
		},
	})

	mw := NewAuthMiddleware(tm, blacklist)
	app.Get("/protected", mw.Handle, func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		require.True(t, ok)
		return c.JSON(fiber.Map{"user_id": principal.UserID})
	})
	return app, tm
}

func doProtected(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	t.Parallel()
	app, tm := newTestApp(t, NewMemoryBlacklist())

	tokenStr, _, err := tm.IssueAccess(42)
	require.NoError(t, err)

	resp := doProtected(t, app, "Bearer "+tokenStr)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_MissingOrMalformedHeader(t *testing.T) {
	t.Parallel()
	app, tm := newTestApp(t, NewMemoryBlacklist())

	tokenStr, _, err := tm.IssueAccess(1)
	require.NoError(t, err)

	for _, header := range []string{"", "Bearer", "Token " + tokenStr} {
		resp := doProtected(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t, NewMemoryBlacklist())

	resp := doProtected(t, app, "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	t.Parallel()
	app, _ := newTestApp(t, NewMemoryBlacklist())

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID:    1,
		TokenType: TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "expired",
			IssuedAt:  jwt.NewNumericDate(now.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
		},
	})
	tokenStr, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	resp := doProtected(t, app, "Bearer "+tokenStr)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_RevokedToken(t *testing.T) {
	t.Parallel()
	bl := NewMemoryBlacklist()
	app, tm := newTestApp(t, bl)

	tokenStr, claims, err := tm.IssueAccess(42)
	require.NoError(t, err)
	require.NoError(t, bl.Revoke(context.Background(), claims.ID, time.Minute))

	resp := doProtected(t, app, "Bearer "+tokenStr)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_RevocationScopedToTokenID(t *testing.T) {
	t.Parallel()
	bl := NewMemoryBlacklist()
	app, tm := newTestApp(t, bl)

	first, firstClaims, err := tm.IssueAccess(42)
	require.NoError(t, err)
	second, _, err := tm.IssueAccess(42)
	require.NoError(t, err)

	require.NoError(t, bl.Revoke(context.Background(), firstClaims.ID, time.Minute))

	resp := doProtected(t, app, "Bearer "+first)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// the same user's other token stays valid
	resp = doProtected(t, app, "Bearer "+second)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuthMiddleware_RefreshTokenRejected(t *testing.T) {
	t.Parallel()
	app, tm := newTestApp(t, NewMemoryBlacklist())

	tokenStr, _, err := tm.IssueRefresh(42)
	require.NoError(t, err)

	resp := doProtected(t, app, "Bearer "+tokenStr)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_BlacklistOutageFailsClosed(t *testing.T) {
	t.Parallel()
	app, tm := newTestApp(t, failingBlacklist{})

	tokenStr, _, err := tm.IssueAccess(42)
	require.NoError(t, err)

	resp := doProtected(t, app, "Bearer "+tokenStr)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
