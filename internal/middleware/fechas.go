package middleware

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/nanci1121/app-entradas/internal/utils"
)

// ValidateDates returns a middleware that bounds-checks the named date
// fields of the JSON body before the handler runs.  Fields absent from the
// payload are skipped: required-ness is a per-operation concern, this layer
// only rejects values that are present but malformed or in the future.  The
// first failing field short-circuits with a descriptive 400.
func ValidateDates(campos ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			body := leerBody(c)
			for _, campo := range campos {
				valor, presente := body[campo]
				if !presente || valor == nil {
					continue
				}
				s, esTexto := valor.(string)
				if esTexto && s == "" {
					continue
				}
				if _, ok := utils.ParseAndValidateDate(s); !esTexto || !ok {
					return c.JSON(http.StatusBadRequest, echo.Map{
						"ok": false,
						"mensaje": fmt.Sprintf(
							"El campo '%s' tiene un formato de fecha inválido, no sigue el formato YYYY-MM-DD, o es una fecha futura.",
							campo),
					})
				}
			}
			return next(c)
		}
	}
}
