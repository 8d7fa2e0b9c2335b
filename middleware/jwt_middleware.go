// middleware/jwt_middleware.go
package middleware

import (
	"errors"
	"log"
	"os"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// PartnerClaims carries the authenticated partner identity. Tokens are issued
// by the identity service; this backend only validates them.
type PartnerClaims struct {
	PartnerID string `json:"partnerId"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	jwt.StandardClaims
}

// Valid implements the Claims interface for Echo's JWT middleware
func (c PartnerClaims) Valid() error {
	if c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt {
		return errors.New("token is expired")
	}
	if c.NotBefore > 0 && time.Now().Unix() < c.NotBefore {
		return errors.New("token used before valid")
	}
	return nil
}

// GetJWTSecret returns the JWT secret from environment variables
func GetJWTSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		panic("JWT_SECRET environment variable is required")
	}
	return secret
}

// JWTMiddleware returns a configured JWT middleware
func JWTMiddleware() echo.MiddlewareFunc {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Printf("Warning: JWT_SECRET environment variable is not set")
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error {
				return echo.NewHTTPError(echo.ErrUnauthorized.Code, "JWT configuration error")
			}
		}
	}

	return middleware.JWTWithConfig(middleware.JWTConfig{
		SigningKey: []byte(secret),
		Claims:     &PartnerClaims{},
		SuccessHandler: func(c echo.Context) {
			user := c.Get("user").(*jwt.Token)
			claims := user.Claims.(*PartnerClaims)

			c.Set("partnerId", claims.PartnerID)
			c.Set("role", claims.Role)
			c.Set("email", claims.Email)
		},
		ErrorHandler: func(err error) error {
			log.Printf("JWT middleware error: %v", err)
			return echo.NewHTTPError(echo.ErrUnauthorized.Code, "Please provide valid credentials")
		},
	})
}

// GetPartnerClaims extracts the claims from the validated token
func GetPartnerClaims(c echo.Context) *PartnerClaims {
	user := c.Get("user")
	if user == nil {
		return nil
	}

	token, ok := user.(*jwt.Token)
	if !ok {
		return nil
	}

	claims, ok := token.Claims.(*PartnerClaims)
	if !ok {
		return nil
	}

	return claims
}

// ExtractPartnerID returns the authenticated partner id or an error
func ExtractPartnerID(c echo.Context) (string, error) {
	if partnerID, ok := c.Get("partnerId").(string); ok && partnerID != "" {
		return partnerID, nil
	}

	claims := GetPartnerClaims(c)
	if claims != nil && claims.PartnerID != "" {
		return claims.PartnerID, nil
	}

	return "", errors.New("invalid partner ID in token")
}

// ExtractRole safely extracts the caller's role from the context
func ExtractRole(c echo.Context) string {
	if role, ok := c.Get("role").(string); ok && role != "" {
		return role
	}

	claims := GetPartnerClaims(c)
	if claims != nil {
		return claims.Role
	}

	return ""
}

// RequireAdmin rejects callers whose token does not carry the admin role
func RequireAdmin() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if ExtractRole(c) != "admin" {
				return echo.NewHTTPError(echo.ErrForbidden.Code, "Admin access required")
			}
			return next(c)
		}
	}
}
