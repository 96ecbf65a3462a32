// FILE: internal/pkg/serverutils/jwt_middleware.go
package serverutils

import (
	"strings"
	"time"

	"milk-platform-be/internal/entity"
	"milk-platform-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	localUserId = "user_id"
	localRole   = "role"
)

// IssueToken signs an HS256 token carrying the user id and role.
func IssueToken(secret string, principal entity.Principal, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": principal.Id.String(),
		"role":    string(principal.Role),
		"exp":     time.Now().Add(ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates tokenStr and returns the principal it names.
func ParseToken(secret, tokenStr string) (entity.Principal, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return entity.Principal{}, apperror.Unauthorized("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return entity.Principal{}, apperror.Unauthorized("Invalid claims")
	}
	rawId, _ := claims["user_id"].(string)
	id, err := uuid.Parse(rawId)
	if err != nil {
		return entity.Principal{}, apperror.Unauthorized("Invalid claims")
	}
	role, _ := claims["role"].(string)
	return entity.Principal{Id: id, Role: entity.UserRole(role)}, nil
}

// NewJwtMiddleware requires a bearer token and stores user_id and role in locals.
func NewJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return apperror.Unauthorized("Missing token")
		}

		principal, err := ParseToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			return err
		}

		ctx.Locals(localUserId, principal.Id)
		ctx.Locals(localRole, principal.Role)
		return ctx.Next()
	}
}

// CurrentPrincipal reads what NewJwtMiddleware stored.
func CurrentPrincipal(ctx *fiber.Ctx) (entity.Principal, error) {
	id, ok := ctx.Locals(localUserId).(uuid.UUID)
	if !ok {
		return entity.Principal{}, apperror.Unauthorized("Unauthorized")
	}
	role, _ := ctx.Locals(localRole).(entity.UserRole)
	return entity.Principal{Id: id, Role: role}, nil
}

// RequireRoles rejects principals whose role is not listed. Must run after the JWT middleware.
func RequireRoles(roles ...entity.UserRole) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		principal, err := CurrentPrincipal(ctx)
		if err != nil {
			return err
		}
		for _, r := range roles {
			if principal.Role == r {
				return ctx.Next()
			}
		}
		return apperror.Forbidden("Access denied")
	}
}
