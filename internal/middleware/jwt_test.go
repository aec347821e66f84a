package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanci1121/app-entradas/internal/utils"
)

const claveTest = "clave-de-prueba"

func ejecutarConToken(t *testing.T, clave, token string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(HeaderToken, token)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	siguiente := false
	h := ValidarJWT(clave)(func(c echo.Context) error {
		siguiente = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, siguiente
}

func TestValidarJWTSinToken(t *testing.T) {
	rec, siguiente := ejecutarConToken(t, claveTest, "")

	assert.False(t, siguiente)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"ok":false,"msg":"No hay token"}`, rec.Body.String())
}

func TestValidarJWTTokenInvalido(t *testing.T) {
	rec, siguiente := ejecutarConToken(t, claveTest, "basura")

	assert.False(t, siguiente)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"ok":false,"msg":"Token no válido"}`, rec.Body.String())
}

func TestValidarJWTClaveAjena(t *testing.T) {
	token, err := utils.GenerarJWT("otra-clave", 5)
	require.NoError(t, err)

	rec, siguiente := ejecutarConToken(t, claveTest, token)
	assert.False(t, siguiente)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestValidarJWTSinClaveServidor(t *testing.T) {
	token, err := utils.GenerarJWT(claveTest, 5)
	require.NoError(t, err)

	rec, siguiente := ejecutarConToken(t, "", token)
	assert.False(t, siguiente)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestValidarJWTTokenValido(t *testing.T) {
	token, err := utils.GenerarJWT(claveTest, 9)
	require.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderToken, token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := ValidarJWT(claveTest)(func(c echo.Context) error {
		id, ok := UsuarioID(c)
		assert.True(t, ok)
		assert.Equal(t, 9, id)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
