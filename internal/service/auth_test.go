package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kebabcase/housing/internal/domain"
)

type mockUserStore struct {
	users map[string]domain.User
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	u, ok := m.users[email]
	if !ok {
		return domain.User{}, domain.NotFoundError{Resource: "user"}
	}
	return u, nil
}

type mockTokenStore struct {
	clients map[string]domain.Client
	tokens  map[string]domain.Token
	gets    int
}

func (m *mockTokenStore) GetClientByName(ctx context.Context, name string) (domain.Client, error) {
	c, ok := m.clients[name]
	if !ok {
		return domain.Client{}, domain.NotFoundError{Resource: "client"}
	}
	return c, nil
}

func (m *mockTokenStore) Create(ctx context.Context, t domain.Token) error {
	m.tokens[t.Token] = t
	return nil
}

func (m *mockTokenStore) Get(ctx context.Context, token string) (domain.Token, error) {
	m.gets++
	t, ok := m.tokens[token]
	if !ok {
		return domain.Token{}, domain.NotFoundError{Resource: "token"}
	}
	return t, nil
}

func newTestAuth(t *testing.T, ttl time.Duration) (*AuthService, *mockTokenStore) {
	t.Helper()
	tokens := &mockTokenStore{
		clients: map[string]domain.Client{"web": {ID: 3, Name: "web"}},
		tokens:  map[string]domain.Token{},
	}
	users := &mockUserStore{users: map[string]domain.User{}}
	svc := NewAuthService(users, tokens, ttl, zap.NewNop())

	hash, err := svc.HashPassword("hunter2")
	require.NoError(t, err)
	users.users["ada@example.com"] = domain.User{ID: 11, FirstName: "Ada", EmailAddress: "ada@example.com", PasswordHash: hash}

	return svc, tokens
}

func TestAuthenticateIssuesToken(t *testing.T) {
	svc, tokens := newTestAuth(t, time.Hour)

	result, err := svc.Authenticate(context.Background(), "ada@example.com", "hunter2", "web")
	require.NoError(t, err)

	assert.Len(t, result.Token, tokenLength)
	assert.Equal(t, "Ada", result.UserName)
	stored, ok := tokens.tokens[result.Token]
	require.True(t, ok)
	assert.Equal(t, int64(11), stored.UserID)
	assert.Equal(t, int64(3), stored.ClientID)
	require.NotNil(t, stored.Expires)
}

func TestAuthenticateFailures(t *testing.T) {
	svc, _ := newTestAuth(t, 0)
	ctx := context.Background()

	_, err := svc.Authenticate(ctx, "ada@example.com", "wrong", "web")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = svc.Authenticate(ctx, "bob@example.com", "hunter2", "web")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Authenticate(ctx, "ada@example.com", "hunter2", "cli")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAuthTokenCachesLookups(t *testing.T) {
	svc, tokens := newTestAuth(t, 0)
	ctx := context.Background()

	issued, err := svc.Authenticate(ctx, "ada@example.com", "hunter2", "web")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		result, err := svc.AuthToken(ctx, issued.Token)
		require.NoError(t, err)
		assert.Equal(t, int64(11), result.UserID)
	}
	assert.Equal(t, 1, tokens.gets)

	_, err = svc.AuthToken(ctx, "NOPE")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthTokenExpired(t *testing.T) {
	svc, tokens := newTestAuth(t, 0)
	past := time.Now().Add(-time.Minute)
	tokens.tokens["OLD"] = domain.Token{Token: "OLD", UserID: 11, Expires: &past}

	_, err := svc.AuthToken(context.Background(), "OLD")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGenerateTokenAlphabet(t *testing.T) {
	token, err := generateToken()
	require.NoError(t, err)
	for _, r := range token {
		assert.Contains(t, tokenCharacters, string(r))
	}
}
