package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
)

// Regla is one declarative per-field assertion evaluated before a handler.
type Regla struct {
	Campo   string
	Mensaje string
	Valida  func(valor any) bool
}

// Requerido asserts the field is present and non-blank.
func Requerido(campo, mensaje string) Regla {
	return Regla{Campo: campo, Mensaje: mensaje, Valida: func(v any) bool {
		s, ok := v.(string)
		return ok && strings.TrimSpace(s) != ""
	}}
}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// EsEmail asserts the field is present and shaped like an email address.
func EsEmail(campo, mensaje string) Regla {
	return Regla{Campo: campo, Mensaje: mensaje, Valida: func(v any) bool {
		s, ok := v.(string)
		return ok && emailRe.MatchString(strings.TrimSpace(s))
	}}
}

// ValidarCampos evaluates all the rules against the JSON body and, on any
// failure, aggregates every failing field into one 400 response keyed by
// field name.  The handler never runs when a rule fails.  Unlike the date
// validator this layer knows nothing about dates, only presence and shape.
func ValidarCampos(reglas ...Regla) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			body := leerBody(c)
			errores := echo.Map{}
			for _, regla := range reglas {
				if !regla.Valida(body[regla.Campo]) {
					errores[regla.Campo] = echo.Map{"msg": regla.Mensaje}
				}
			}
			if len(errores) > 0 {
				return c.JSON(http.StatusBadRequest, echo.Map{
					"ok":     false,
					"errors": errores,
				})
			}
			return next(c)
		}
	}
}
