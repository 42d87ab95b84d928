package handler

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/nazmulhs/farebridge/internal/models"
)

// callerRole reads the caller's role from the bearer token. Markup must never
// be the thing that breaks a page, so any missing, malformed or unverifiable
// token quietly prices the caller as a regular USER.
func (h *BookingHandler) callerRole(c echo.Context) models.Role {
	auth := c.Request().Header.Get(echo.HeaderAuthorization)
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return models.RoleUser
	}

	token, err := jwt.Parse(
		strings.TrimPrefix(auth, prefix),
		func(t *jwt.Token) (any, error) {
			return []byte(h.jwtSecret), nil
		},
		jwt.WithValidMethods([]string{"HS256"}),
	)
	if err != nil || !token.Valid {
		return models.RoleUser
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return models.RoleUser
	}
	role, _ := claims["role"].(string)
	return models.NormalizeRole(role)
}
