package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/kebabcase/housing/internal/domain"
)

var tracer = otel.Tracer("auth")

const (
	tokenCharacters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ1234567890"
	tokenLength     = 20
)

type UserStore interface {
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

type TokenStore interface {
	GetClientByName(ctx context.Context, name string) (domain.Client, error)
	Create(ctx context.Context, token domain.Token) error
	Get(ctx context.Context, token string) (domain.Token, error)
}

type AuthService struct {
	users    UserStore
	tokens   TokenStore
	cache    *cache.Cache
	tokenTTL time.Duration
	logger   *zap.Logger
}

// NewAuthService builds the token service. A zero tokenTTL issues tokens
// that never expire.
func NewAuthService(
	users UserStore,
	tokens TokenStore,
	tokenTTL time.Duration,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:    users,
		tokens:   tokens,
		cache:    cache.New(5*time.Minute, 10*time.Minute),
		tokenTTL: tokenTTL,
		logger:   logger.Named("auth"),
	}
}

type AuthResult struct {
	Token    string `json:"token"`
	UserID   int64  `json:"user_id"`
	UserName string `json:"user_name"`
	ClientID int64  `json:"-"`
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", errors.Wrap(err, "hash password")
	}
	return string(hash), nil
}

// Authenticate checks the credentials and issues a new token for the client.
func (s *AuthService) Authenticate(ctx context.Context, email, password, clientName string) (AuthResult, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.Authenticate")
	defer span.End()

	client, err := s.tokens.GetClientByName(ctx, clientName)
	if err != nil {
		span.RecordError(err)
		return AuthResult{}, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		span.RecordError(err)
		return AuthResult{}, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password))
	if err != nil {
		span.RecordError(errors.Wrap(err, "password mismatch"))
		return AuthResult{}, domain.ErrUnauthorized
	}

	value, err := generateToken()
	if err != nil {
		return AuthResult{}, err
	}

	token := domain.Token{
		Token:    value,
		UserID:   user.ID,
		ClientID: client.ID,
	}
	if s.tokenTTL > 0 {
		expires := time.Now().Add(s.tokenTTL)
		token.Expires = &expires
	}

	if err := s.tokens.Create(ctx, token); err != nil {
		span.RecordError(err)
		return AuthResult{}, err
	}

	span.SetAttributes(attribute.Int64("userID", user.ID), attribute.String("client", client.Name))
	s.logger.Info("token issued", zap.Int64("user", user.ID), zap.String("client", client.Name))

	return AuthResult{
		Token:    value,
		UserID:   user.ID,
		UserName: user.FirstName,
		ClientID: client.ID,
	}, nil
}

// AuthToken resolves a bearer token to the user it was issued for.
func (s *AuthService) AuthToken(ctx context.Context, value string) (*AuthResult, error) {
	ctx, span := tracer.Start(ctx, "Auth.Service.AuthToken")
	defer span.End()

	if cached, ok := s.cache.Get(value); ok {
		result := cached.(AuthResult)
		return &result, nil
	}

	token, err := s.tokens.Get(ctx, value)
	if errors.Is(err, domain.ErrNotFound) {
		span.RecordError(err)
		return nil, domain.ErrUnauthorized
	}
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	ttl := cache.DefaultExpiration
	if token.Expires != nil {
		remaining := time.Until(*token.Expires)
		if remaining <= 0 {
			err := fmt.Errorf("token expired at %s", token.Expires.Format(time.RFC3339))
			span.RecordError(err)
			return nil, domain.ErrUnauthorized
		}
		if remaining < 5*time.Minute {
			ttl = remaining
		}
	}

	result := AuthResult{
		Token:    token.Token,
		UserID:   token.UserID,
		ClientID: token.ClientID,
	}
	s.cache.Set(value, result, ttl)

	return &result, nil
}

func generateToken() (string, error) {
	limit := big.NewInt(int64(len(tokenCharacters)))
	buf := make([]byte, tokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", errors.Wrap(err, "generate token")
		}
		buf[i] = tokenCharacters[n.Int64()]
	}
	return string(buf), nil
}
