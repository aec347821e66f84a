package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ejecutarValidateDates(t *testing.T, body string, campos ...string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	siguiente := false
	h := ValidateDates(campos...)(func(c echo.Context) error {
		siguiente = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, siguiente
}

func TestValidateDatesAcepta(t *testing.T) {
	tests := []struct {
		nombre string
		body   string
	}{
		{"fecha válida", `{"fecha_entrada":"2024-03-01 10:00:00"}`},
		{"campo ausente", `{"otro":"x"}`},
		{"campo nulo", `{"fecha_entrada":null}`},
		{"cadena vacía", `{"fecha_entrada":""}`},
	}
	for _, tc := range tests {
		t.Run(tc.nombre, func(t *testing.T) {
			rec, siguiente := ejecutarValidateDates(t, tc.body, "fecha_entrada")
			assert.True(t, siguiente)
			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestValidateDatesRechaza(t *testing.T) {
	tests := []struct {
		nombre string
		body   string
	}{
		{"formato europeo", `{"fecha_entrada":"15-01-2024"}`},
		{"no es texto", `{"fecha_entrada":1700000000}`},
		{"fecha futura", `{"fecha_entrada":"2099-01-01"}`},
		{"fecha imposible", `{"fecha_entrada":"2024-02-30"}`},
	}
	for _, tc := range tests {
		t.Run(tc.nombre, func(t *testing.T) {
			rec, siguiente := ejecutarValidateDates(t, tc.body, "fecha_entrada")
			assert.False(t, siguiente)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "fecha_entrada")
			assert.Contains(t, rec.Body.String(), "formato de fecha inválido")
		})
	}
}

func TestValidateDatesVariosCampos(t *testing.T) {
	rec, siguiente := ejecutarValidateDates(t,
		`{"fecha_entrada":"2024-01-01","fecha_salida":"mala"}`,
		"fecha_entrada", "fecha_salida")

	assert.False(t, siguiente)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "fecha_salida")
}

func TestValidateDatesBodyRestaurado(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"fecha":"2024-01-01","dato":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := ValidateDates("fecha")(func(c echo.Context) error {
		var cuerpo struct {
			Dato string `json:"dato"`
		}
		require.NoError(t, c.Bind(&cuerpo))
		assert.Equal(t, "x", cuerpo.Dato)
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
