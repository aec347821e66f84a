package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ejecutarValidarCampos(t *testing.T, body string, reglas ...Regla) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	siguiente := false
	h := ValidarCampos(reglas...)(func(c echo.Context) error {
		siguiente = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, siguiente
}

func TestValidarCamposCompletos(t *testing.T) {
	rec, siguiente := ejecutarValidarCampos(t,
		`{"email":"ana@empresa.com","password":"1234"}`,
		EsEmail("email", "El email es obligatorio"),
		Requerido("password", "El password es obligatorio"),
	)
	assert.True(t, siguiente)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestValidarCamposAgregaTodosLosErrores(t *testing.T) {
	rec, siguiente := ejecutarValidarCampos(t,
		`{"email":"no-es-email","password":"   "}`,
		EsEmail("email", "El email es obligatorio"),
		Requerido("password", "El password es obligatorio"),
	)
	assert.False(t, siguiente)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		OK     bool `json:"ok"`
		Errors map[string]struct {
			Msg string `json:"msg"`
		} `json:"errors"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, "El email es obligatorio", resp.Errors["email"].Msg)
	assert.Equal(t, "El password es obligatorio", resp.Errors["password"].Msg)
}

func TestValidarCamposCampoAusente(t *testing.T) {
	rec, siguiente := ejecutarValidarCampos(t, `{}`,
		Requerido("name", "El nombre es obligatorio"),
	)
	assert.False(t, siguiente)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "El nombre es obligatorio")
}
