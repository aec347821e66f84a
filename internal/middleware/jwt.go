package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nanci1121/app-entradas/internal/utils"
)

// HeaderToken is the designated header carrying the bearer token on every
// protected request.
const HeaderToken = "x-token"

// ClaveUsuarioID is the context key under which ValidarJWT stores the
// authenticated user id for downstream handlers.
const ClaveUsuarioID = "usuario_id"

// ValidarJWT returns an Echo middleware that enforces a valid x-token header
// and injects the decoded user id into the request context.  Its response
// shapes (400 for a missing token, 401 for an invalid one) are the historic
// contract of the route-level gate; several write handlers additionally run
// their own in-handler token check with different wording, and that
// divergence is intentional and preserved.
func ValidarJWT(clave string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(HeaderToken)
			if token == "" {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"ok":  false,
					"msg": "No hay token",
				})
			}
			if clave == "" {
				// Fail closed: without a signing key no token can be trusted.
				return c.JSON(http.StatusInternalServerError, echo.Map{
					"ok":  false,
					"msg": "Configuración de servidor inválida",
				})
			}
			valido, id := utils.ComprobarJWT(clave, token)
			if !valido {
				return c.JSON(http.StatusUnauthorized, echo.Map{
					"ok":  false,
					"msg": "Token no válido",
				})
			}
			c.Set(ClaveUsuarioID, id)
			return next(c)
		}
	}
}

// UsuarioID extracts the authenticated user id stored by ValidarJWT.
func UsuarioID(c echo.Context) (int, bool) {
	id, ok := c.Get(ClaveUsuarioID).(int)
	return id, ok && id > 0
}
