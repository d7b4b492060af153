package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Sidnaik04/YT-Assistant/internal/auth"
	"github.com/Sidnaik04/YT-Assistant/internal/config"
	"github.com/Sidnaik04/YT-Assistant/internal/domain"
	apperrors "github.com/Sidnaik04/YT-Assistant/pkg/util"
)

type fakeUserRepo struct {
	byEmail map[string]*domain.User
	nextID  int64
	err     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byEmail: make(map[string]*domain.User), nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if f.err != nil {
		return f.err
	}
	user.ID = f.nextID
	f.nextID++
	user.CreatedAt = time.Now()
	f.byEmail[user.Email] = user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, pgx.ErrNoRows
}

type failingBlacklist struct{}

func (failingBlacklist) Revoke(context.Context, string, time.Duration) error {
	return errors.New("redis down")
}

func (failingBlacklist) IsRevoked(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:           "test-secret",
		JWTAlgorithm:        "HS256",
		AccessTokenTTLMins:  15,
		RefreshTokenTTLDays: 7,
		BcryptCost:          4,
	}
}

func newTestAuthService(t *testing.T, blacklist auth.TokenBlacklist) (*AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	svc, err := NewAuthService(testAuthConfig(), repo, blacklist, zap.NewNop())
	require.NoError(t, err)
	return svc, repo
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	return domainErr.Code
}

func TestRegister_ThenDuplicateConflicts(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuthService(t, auth.NewMemoryBlacklist())
	ctx := context.Background()

	user, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.NotEqual(t, "pw1", user.PasswordHash)

	_, err = svc.Register(ctx, "a@x.com", "pw2")
	assert.Equal(t, "CONFLICT", domainCode(t, err))
}

func TestLogin_SuccessIssuesBothTokens(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuthService(t, auth.NewMemoryBlacklist())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.True(t, time.Now().Before(pair.ExpiresAt))

	access, err := svc.TokenManager().Decode(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, auth.TokenTypeAccess, access.TokenType)
	assert.NotEmpty(t, access.ID)

	refresh, err := svc.TokenManager().Decode(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, auth.TokenTypeRefresh, refresh.TokenType)
	assert.Equal(t, access.UserID, refresh.UserID)
}

func TestLogin_IdenticalErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuthService(t, auth.NewMemoryBlacklist())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	_, errUnknown := svc.Login(ctx, "nobody@x.com", "pw1")
	_, errWrongPw := svc.Login(ctx, "a@x.com", "wrong")

	require.Error(t, errUnknown)
	require.Error(t, errWrongPw)
	// same external message for both, so accounts cannot be enumerated
	assert.Equal(t, errUnknown.Error(), errWrongPw.Error())
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, errUnknown))
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, errWrongPw))
}

func TestLogin_CredentialStoreOutage(t *testing.T) {
	t.Parallel()
	svc, repo := newTestAuthService(t, auth.NewMemoryBlacklist())
	repo.err = errors.New("connection refused")

	_, err := svc.Login(context.Background(), "a@x.com", "pw1")
	assert.Equal(t, "STORE_UNAVAILABLE", domainCode(t, err))
}

func TestLogout_RevokesOnlyThatToken(t *testing.T) {
	t.Parallel()
	blacklist := auth.NewMemoryBlacklist()
	svc, _ := newTestAuthService(t, blacklist)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	first, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	second, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	firstClaims, err := svc.TokenManager().Decode(first.AccessToken)
	require.NoError(t, err)
	secondClaims, err := svc.TokenManager().Decode(second.AccessToken)
	require.NoError(t, err)

	revoked, err := svc.Logout(ctx, firstClaims.ID, firstClaims.ExpiresAt.Time)
	require.NoError(t, err)
	assert.True(t, revoked)

	isRevoked, err := blacklist.IsRevoked(ctx, firstClaims.ID)
	require.NoError(t, err)
	assert.True(t, isRevoked)

	isRevoked, err = blacklist.IsRevoked(ctx, secondClaims.ID)
	require.NoError(t, err)
	assert.False(t, isRevoked)
}

func TestLogout_ExpiredTokenIsNoOp(t *testing.T) {
	t.Parallel()
	blacklist := auth.NewMemoryBlacklist()
	svc, _ := newTestAuthService(t, blacklist)
	ctx := context.Background()

	revoked, err := svc.Logout(ctx, "stale-jti", time.Now().Add(-time.Minute))
	require.NoError(t, err)
	assert.False(t, revoked)

	isRevoked, err := blacklist.IsRevoked(ctx, "stale-jti")
	require.NoError(t, err)
	assert.False(t, isRevoked)
}

func TestLogout_Idempotent(t *testing.T) {
	t.Parallel()
	blacklist := auth.NewMemoryBlacklist()
	svc, _ := newTestAuthService(t, blacklist)
	ctx := context.Background()

	expiresAt := time.Now().Add(10 * time.Minute)
	_, err := svc.Logout(ctx, "jti", expiresAt)
	require.NoError(t, err)
	_, err = svc.Logout(ctx, "jti", expiresAt)
	require.NoError(t, err)
}

func TestLogout_RevocationStoreOutage(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuthService(t, failingBlacklist{})

	_, err := svc.Logout(context.Background(), "jti", time.Now().Add(time.Minute))
	assert.Equal(t, "STORE_UNAVAILABLE", domainCode(t, err))
}

func TestRefresh_IssuesNewAccessToken(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuthService(t, auth.NewMemoryBlacklist())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	accessToken, expiresAt, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.True(t, time.Now().Before(expiresAt))

	claims, err := svc.TokenManager().Decode(accessToken)
	require.NoError(t, err)
	assert.Equal(t, auth.TokenTypeAccess, claims.TokenType)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuthService(t, auth.NewMemoryBlacklist())
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	_, _, err = svc.Refresh(ctx, pair.AccessToken)
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

func TestRefresh_RejectsRevokedRefreshToken(t *testing.T) {
	t.Parallel()
	blacklist := auth.NewMemoryBlacklist()
	svc, _ := newTestAuthService(t, blacklist)
	ctx := context.Background()

	_, err := svc.Register(ctx, "a@x.com", "pw1")
	require.NoError(t, err)
	pair, err := svc.Login(ctx, "a@x.com", "pw1")
	require.NoError(t, err)

	refreshClaims, err := svc.TokenManager().Decode(pair.RefreshToken)
	require.NoError(t, err)
	require.NoError(t, blacklist.Revoke(ctx, refreshClaims.ID, time.Hour))

	_, _, err = svc.Refresh(ctx, pair.RefreshToken)
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}

func TestRefresh_RejectsGarbage(t *testing.T) {
	t.Parallel()
	svc, _ := newTestAuthService(t, auth.NewMemoryBlacklist())

	_, _, err := svc.Refresh(context.Background(), "not.a.jwt")
	assert.Equal(t, "UNAUTHORIZED", domainCode(t, err))
}
