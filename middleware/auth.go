package middleware

import (
	"net/http"
	"strings"

	"evidencias_app_go/db"
	"evidencias_app_go/models"
	"evidencias_app_go/services"

	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyUsuario is the context key for the authenticated user
	ContextKeyUsuario = "usuario"
	// ContextKeySession is the context key for the session
	ContextKeySession = "session"
)

// RequireAuth validates the Bearer session token and loads the user into the
// request context. API clients get a JSON envelope, never a redirect.
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := extractToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"error":   "No autorizado",
				})
			}

			session, err := services.ValidateSession(db.DB, token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"error":   "Sesión inválida o expirada",
				})
			}

			c.Set(ContextKeyUsuario, &session.Usuario)
			c.Set(ContextKeySession, session)

			return next(c)
		}
	}
}

// RequireRole restricts a route to users holding one of the given roles
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			usuario := GetCurrentUsuario(c)
			if usuario == nil {
				return c.JSON(http.StatusUnauthorized, map[string]interface{}{
					"success": false,
					"error":   "No autorizado",
				})
			}

			for _, role := range roles {
				if usuario.Rol == role {
					return next(c)
				}
			}

			return c.JSON(http.StatusForbidden, map[string]interface{}{
				"success": false,
				"error":   "Permisos insuficientes",
			})
		}
	}
}

// GetCurrentUsuario retrieves the authenticated user from context
func GetCurrentUsuario(c echo.Context) *models.Usuario {
	usuario, ok := c.Get(ContextKeyUsuario).(*models.Usuario)
	if !ok {
		return nil
	}
	return usuario
}

// GetCurrentSession retrieves the session from context
func GetCurrentSession(c echo.Context) *models.Session {
	session, ok := c.Get(ContextKeySession).(*models.Session)
	if !ok {
		return nil
	}
	return session
}

func extractToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return ""
}
