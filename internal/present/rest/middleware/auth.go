package middleware

import (
	"context"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/kebabcase/housing/internal/domain"
	"github.com/kebabcase/housing/internal/present/rest/presenter"
	"github.com/kebabcase/housing/internal/service"
)

var tracer = otel.Tracer("auth")

type TokenAuthenticator interface {
	AuthToken(ctx context.Context, token string) (*service.AuthResult, error)
}

type AuthMiddleware struct {
	auth        TokenAuthenticator
	requireAuth bool
}

func NewAuthMiddleware(auth TokenAuthenticator, requireAuth bool) *AuthMiddleware {
	return &AuthMiddleware{
		auth:        auth,
		requireAuth: requireAuth,
	}
}

// IdentifyIdentity resolves a bearer token into a requester id on the request
// context. Requests without a valid token pass through anonymous.
func (s *AuthMiddleware) IdentifyIdentity(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Middleware.IdentifyIdentity")
		defer span.End()

		authHeader := c.Request().Header.Get(domain.AuthorizationHeader)

		if authHeader != "" {
			split := strings.Split(authHeader, " ")
			if len(split) != 2 {
				span.RecordError(fmt.Errorf("invalid authentication header"))
				goto skipCheckAuthorization
			}

			authType, token := split[0], split[1]
			if authType != "Bearer" {
				span.RecordError(fmt.Errorf("only Bearer is acceptable"))
				goto skipCheckAuthorization
			}

			result, err := s.auth.AuthToken(ctx, token)
			if err != nil {
				span.RecordError(errors.Wrap(err, "AuthMiddleware.IdentifyIdentity: s.auth.AuthToken failed"))
				goto skipCheckAuthorization
			}

			ctx = context.WithValue(ctx, domain.RequesterIdCtxKey, result.UserID)
			ctx = context.WithValue(ctx, domain.RequesterClientCtxKey, result.ClientID)
			span.SetAttributes(attribute.Int64("RequesterId", result.UserID))
		}

	skipCheckAuthorization:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// RequireUser rejects anonymous requests when authentication is enabled.
func (s *AuthMiddleware) RequireUser(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !s.requireAuth {
			return next(c)
		}
		if _, ok := c.Request().Context().Value(domain.RequesterIdCtxKey).(int64); !ok {
			return presenter.Unauthorized(c)
		}
		return next(c)
	}
}
