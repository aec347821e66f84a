package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanci1121/app-entradas/internal/middleware"
	"github.com/nanci1121/app-entradas/internal/repository"
	"github.com/nanci1121/app-entradas/internal/utils"
)

// These tests exercise the request-shaping layers that run before any
// database access: token re-checks, payload completeness and id parsing.

const claveTest = "clave-de-prueba"

func contexto(t *testing.T, method, target, body, token string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	if token != "" {
		req.Header.Set(middleware.HeaderToken, token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func tokenValido(t *testing.T) string {
	t.Helper()
	token, err := utils.GenerarJWT(claveTest, 1)
	require.NoError(t, err)
	return token
}

func cuerpo(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

func TestPing(t *testing.T) {
	c, rec := contexto(t, http.MethodGet, "/api/ping", "", "")
	require.NoError(t, Ping(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pong", rec.Body.String())
}

func TestSetEntradaSinToken(t *testing.T) {
	h := NewEntradaHandler(&repository.EntradaRepo{}, claveTest)
	c, rec := contexto(t, http.MethodPost, "/api/entradas", `{}`, "")

	require.NoError(t, h.SetEntrada(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token no proporcionado", cuerpo(t, rec)["mensaje"])
}

func TestSetEntradaTokenInvalido(t *testing.T) {
	h := NewEntradaHandler(&repository.EntradaRepo{}, claveTest)
	c, rec := contexto(t, http.MethodPost, "/api/entradas", `{}`, "basura")

	require.NoError(t, h.SetEntrada(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token inválido", cuerpo(t, rec)["mensaje"])
}

func TestSetEntradaDatosIncompletos(t *testing.T) {
	h := NewEntradaHandler(&repository.EntradaRepo{}, claveTest)
	c, rec := contexto(t, http.MethodPost, "/api/entradas",
		`{"nombre_conductor":"Ana","empresa":"Acme"}`, tokenValido(t))

	require.NoError(t, h.SetEntrada(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Datos enviados nulos o incompletos", cuerpo(t, rec)["mensaje"])
}

func TestUpdateRecepcionCamposObligatorios(t *testing.T) {
	h := NewEntradaHandler(&repository.EntradaRepo{}, claveTest)
	c, rec := contexto(t, http.MethodPut, "/api/entradas/recepcion",
		`{"id":3}`, tokenValido(t))

	require.NoError(t, h.UpdateRecepcionEntrada(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Los campos id y recepcion son obligatorios.", cuerpo(t, rec)["mensaje"])
}

func TestDeleteEntradaIDNoNumerico(t *testing.T) {
	h := NewEntradaHandler(&repository.EntradaRepo{}, claveTest)
	c, rec := contexto(t, http.MethodDelete, "/api/entradas/abc", "", tokenValido(t))
	c.SetParamNames("id")
	c.SetParamValues("abc")

	require.NoError(t, h.DeleteEntrada(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "El ID proporcionado no es un número válido.", cuerpo(t, rec)["mensaje"])
}

func TestGetEntradasSelectRequiereFecha(t *testing.T) {
	h := NewEntradaHandler(&repository.EntradaRepo{}, claveTest)
	c, rec := contexto(t, http.MethodPut, "/api/entradas/select",
		`{"empresa":"Acme"}`, tokenValido(t))

	require.NoError(t, h.GetEntradasSelect(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "El campo fecha_entrada1 es obligatorio para la búsqueda.", cuerpo(t, rec)["mensaje"])
}

func TestSetExternaDatosIncompletos(t *testing.T) {
	h := NewExternaHandler(&repository.ExternaRepo{}, claveTest)
	c, rec := contexto(t, http.MethodPost, "/api/externas/new_externa",
		`{"nombre_persona":"Ana"}`, tokenValido(t))

	require.NoError(t, h.SetExterna(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Datos de persona exterior incompletos", cuerpo(t, rec)["mensaje"])
}

func TestUpdatePorteriaExternaRequiereRecepcion(t *testing.T) {
	h := NewExternaHandler(&repository.ExternaRepo{}, claveTest)
	c, rec := contexto(t, http.MethodPut, "/api/externas/porteria",
		`{"id":4}`, tokenValido(t))

	require.NoError(t, h.UpdatePorteriaExterna(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "El campo recepcion es obligatorio", cuerpo(t, rec)["mensaje"])
}

func TestSetInternaErroresBajoMsg(t *testing.T) {
	h := NewInternaHandler(&repository.InternaRepo{}, &repository.UserRepo{}, claveTest)
	c, rec := contexto(t, http.MethodPost, "/api/internas/new_Interna", `{}`, "basura")

	require.NoError(t, h.SetInterna(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	body := cuerpo(t, rec)
	assert.Equal(t, "Token inválido", body["msg"])
	assert.NotContains(t, body, "mensaje")
}

func TestSetInternaDatosIncompletos(t *testing.T) {
	h := NewInternaHandler(&repository.InternaRepo{}, &repository.UserRepo{}, claveTest)
	c, rec := contexto(t, http.MethodPost, "/api/internas/new_Interna",
		`{"codigoEmpleado":"E1"}`, tokenValido(t))

	require.NoError(t, h.SetInterna(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "datos empleado enviados nulos", cuerpo(t, rec)["entrada"])
}

func TestSetTornoTokenInvalido(t *testing.T) {
	h := NewTornoHandler(&repository.TornoRepo{}, &repository.UserRepo{}, claveTest)
	c, rec := contexto(t, http.MethodPost, "/api/tornos/setTorno", `{}`, "")

	require.NoError(t, h.SetTorno(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Token no válido o expirado.", cuerpo(t, rec)["mensaje"])
}

func TestSetTornoSinFechas(t *testing.T) {
	h := NewTornoHandler(&repository.TornoRepo{}, &repository.UserRepo{}, claveTest)
	c, rec := contexto(t, http.MethodPost, "/api/tornos/setTorno",
		`{"codigoEmpleado":"E1"}`, tokenValido(t))

	require.NoError(t, h.SetTorno(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "El código de empleado y al menos una fecha (entrada o salida) son obligatorios.",
		cuerpo(t, rec)["mensaje"])
}

func TestSetTornoFechasInvertidas(t *testing.T) {
	h := NewTornoHandler(&repository.TornoRepo{}, &repository.UserRepo{}, claveTest)
	c, rec := contexto(t, http.MethodPost, "/api/tornos/setTorno",
		`{"codigoEmpleado":"E1","fechaEntrada":"2024-05-10 10:00:00","fechaSalida":"2024-05-10 08:00:00"}`,
		tokenValido(t))

	require.NoError(t, h.SetTorno(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "La fecha de entrada no puede ser posterior a la fecha de salida.",
		cuerpo(t, rec)["mensaje"])
}

func TestConsultaTornoRangoInvertido(t *testing.T) {
	h := NewTornoHandler(&repository.TornoRepo{}, &repository.UserRepo{}, claveTest)
	c, rec := contexto(t, http.MethodPost, "/api/tornos/consulta",
		`{"fechaInicio":"2024-06-01","fechaFin":"2024-05-01"}`, tokenValido(t))

	require.NoError(t, h.ConsultaTorno(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "La fecha de inicio no puede ser posterior a la fecha de fin.",
		cuerpo(t, rec)["mensaje"])
}

func TestUpdateTornoSinCampos(t *testing.T) {
	h := NewTornoHandler(&repository.TornoRepo{}, &repository.UserRepo{}, claveTest)
	c, rec := contexto(t, http.MethodPut, "/api/tornos/7", `{}`, tokenValido(t))
	c.SetParamNames("id")
	c.SetParamValues("7")

	require.NoError(t, h.UpdateTorno(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Debe proporcionar al menos un campo para actualizar.", cuerpo(t, rec)["mensaje"])
}
