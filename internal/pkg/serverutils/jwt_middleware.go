// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"fmt"
	"strings"

	"adorder-be/internal/entity"
	"adorder-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const principalKey = "principal"

// ParsePrincipal validates an HS256 token and extracts the caller identity
// from its user_id and tier claims.
func ParsePrincipal(tokenStr, secret string) (entity.Principal, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return entity.Principal{}, apperror.Unauthenticated("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entity.Principal{}, apperror.Unauthenticated("invalid claims")
	}

	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return entity.Principal{}, apperror.Unauthenticated("invalid claims")
	}

	tier := entity.UserTier(fmt.Sprint(claims["tier"]))
	if !tier.Valid() {
		return entity.Principal{}, apperror.Unauthenticated("invalid claims")
	}

	return entity.Principal{UserID: userID, Tier: tier}, nil
}

// JwtMiddleware requires a Bearer token and stores the Principal in Locals.
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return apperror.Unauthenticated("missing token")
		}

		principal, err := ParsePrincipal(authHeader[7:], secret)
		if err != nil {
			return err
		}

		ctx.Locals(principalKey, principal)
		ctx.Locals("user_id", principal.UserID.String())
		return ctx.Next()
	}
}

// RequireCapability rejects callers whose role lacks the capability.
func RequireCapability(c entity.Capability) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		principal, err := GetPrincipal(ctx)
		if err != nil {
			return err
		}
		if !principal.Can(c) {
			return apperror.Forbidden("insufficient permissions")
		}
		return ctx.Next()
	}
}

// GetPrincipal returns the caller stored by JwtMiddleware.
func GetPrincipal(ctx *fiber.Ctx) (entity.Principal, error) {
	principal, ok := ctx.Locals(principalKey).(entity.Principal)
	if !ok {
		return entity.Principal{}, apperror.Unauthenticated("missing token")
	}
	return principal, nil
}

// ParseUUIDParam reads a path parameter as a UUID.
func ParseUUIDParam(ctx *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Params(name))
	if err != nil {
		return uuid.Nil, apperror.InvalidArgument("invalid " + name)
	}
	return id, nil
}
