package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerarYComprobarJWT(t *testing.T) {
	token, err := GenerarJWT("clave-de-prueba", 42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	valido, id := ComprobarJWT("clave-de-prueba", token)
	assert.True(t, valido)
	assert.Equal(t, 42, id)
}

func TestGenerarJWTSinClave(t *testing.T) {
	_, err := GenerarJWT("", 1)
	assert.ErrorIs(t, err, ErrSinClave)
}

func TestComprobarJWTRechazos(t *testing.T) {
	token, err := GenerarJWT("clave-correcta", 7)
	require.NoError(t, err)

	tests := []struct {
		nombre string
		clave  string
		token  string
	}{
		{"token vacío", "clave-correcta", ""},
		{"clave vacía", "", token},
		{"clave distinta", "otra-clave", token},
		{"token basura", "clave-correcta", "no.es.un.jwt"},
	}
	for _, tc := range tests {
		t.Run(tc.nombre, func(t *testing.T) {
			valido, id := ComprobarJWT(tc.clave, tc.token)
			assert.False(t, valido)
			assert.Zero(t, id)
		})
	}
}
