package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExternaRequestNormalizarPrefiereSnake(t *testing.T) {
	req := ExternaRequest{
		NombrePersona:        "camel",
		NombrePersonaSnake:   "snake",
		EmpresaExterior:      "Acme Camel",
		EmpresaExteriorSnake: "Acme Snake",
		TelefonoPersona:      "111",
		TelefonoPersonaSnake: "222",
		FechaEntrada:         "2024-01-01",
		FechaEntradaSnake:    "2024-02-02",
	}
	d := req.Normalizar()

	assert.Equal(t, "snake", d.NombrePersona)
	assert.Equal(t, "Acme Snake", d.EmpresaExterior)
	assert.Equal(t, "222", d.TelefonoPersona)
	assert.Equal(t, "2024-02-02", d.FechaEntrada)
}

func TestExternaRequestNormalizarCaeACamel(t *testing.T) {
	req := ExternaRequest{
		NombrePersona:   "camel",
		EmpresaExterior: "Acme",
		TelefonoPersona: "111",
		FechaEntrada:    "2024-01-01",
		FechaSalida:     "2024-01-02",
	}
	d := req.Normalizar()

	assert.Equal(t, "camel", d.NombrePersona)
	assert.Equal(t, "Acme", d.EmpresaExterior)
	assert.Equal(t, "2024-01-01", d.FechaEntrada)
	assert.Equal(t, "2024-01-02", d.FechaSalida)
}

func TestExternaRequestNormalizarAliasDeSalida(t *testing.T) {
	// fecha_entrada2 is the historic alias some screens use for the exit bound.
	req := ExternaRequest{FechaEntrada2: "2024-03-03", FechaSalida: "2024-01-01"}
	assert.Equal(t, "2024-03-03", req.Normalizar().FechaSalida)
}
