package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFiltroILike(t *testing.T) {
	var f filtro
	f.ILike("empresa", "  acme  ")
	f.ILike("matricula", "")
	f.ILike("nombre", "   ")

	assert.Equal(t, " WHERE 1=1 AND empresa ILIKE $1", f.Where())
	assert.Equal(t, []any{"%acme%"}, f.Args())
}

func TestFiltroPlaceholdersConsecutivos(t *testing.T) {
	var f filtro
	f.ILike("nombre_conductor", "ana")
	f.ILike("empresa", "acme")
	f.Entre("fecha_entrada", "2024-01-01", "2024-02-01")

	assert.Equal(t,
		" WHERE 1=1 AND nombre_conductor ILIKE $1 AND empresa ILIKE $2 AND fecha_entrada BETWEEN $3 AND $4",
		f.Where())
	assert.Len(t, f.Args(), 4)
}

func TestFiltroExpr(t *testing.T) {
	var f filtro
	f.ILike("empresa", "acme")
	f.Expr("(clase_carga IS NULL OR clase_carga ILIKE ?)", "%palets%")

	assert.Equal(t,
		" WHERE 1=1 AND empresa ILIKE $1 AND (clase_carga IS NULL OR clase_carga ILIKE $2)",
		f.Where())
	assert.Equal(t, []any{"%acme%", "%palets%"}, f.Args())
}

func TestFiltroExprVariosMarcadores(t *testing.T) {
	var f filtro
	f.Expr("(fecha_entrada BETWEEN ? AND ? OR fecha_salida BETWEEN ? AND ?)",
		"a", "b", "a", "b")

	assert.Equal(t,
		" WHERE 1=1 AND (fecha_entrada BETWEEN $1 AND $2 OR fecha_salida BETWEEN $3 AND $4)",
		f.Where())
	assert.Len(t, f.Args(), 4)
}

func TestFiltroSinCondiciones(t *testing.T) {
	var f filtro
	assert.Equal(t, " WHERE 1=1", f.Where())
	assert.Empty(t, f.Args())
}

func TestFiltroPaginar(t *testing.T) {
	var f filtro
	f.ILike("motivo", "visita")
	clausula := f.Paginar("fecha_salida DESC", 100, 20)

	assert.Equal(t, " ORDER BY fecha_salida DESC LIMIT $2 OFFSET $3", clausula)
	assert.Equal(t, []any{"%visita%", 100, 20}, f.Args())
}
