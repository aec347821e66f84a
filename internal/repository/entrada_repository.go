package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/nanci1121/app-entradas/internal/model"
)

// EntradaRepo persists vehicle entries ('entradas_vehiculos').
type EntradaRepo struct{ DB *sql.DB }

func NewEntradaRepo(db *sql.DB) *EntradaRepo { return &EntradaRepo{DB: db} }

const columnasEntrada = "id, nombre_conductor, empresa, matricula, clase_carga, fecha_entrada, fecha_salida, firma, recepcion, vigilancia, usuario"

func escanearEntrada(rs interface{ Scan(...any) error }) (model.Entrada, error) {
	var e model.Entrada
	err := rs.Scan(&e.ID, &e.NombreConductor, &e.Empresa, &e.Matricula, &e.ClaseCarga,
		&e.FechaEntrada, &e.FechaSalida, &e.Firma, &e.Recepcion, &e.Vigilancia, &e.Usuario)
	return e, err
}

func (r *EntradaRepo) listar(ctx context.Context, query string, args ...any) ([]model.Entrada, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entradas := make([]model.Entrada, 0)
	for rows.Next() {
		e, err := escanearEntrada(rows)
		if err != nil {
			return nil, err
		}
		entradas = append(entradas, e)
	}
	return entradas, rows.Err()
}

// Actuales returns the vehicles currently inside: a computed membership, not
// a stored flag.  Recent entries cover the running shift; a missing exit
// keeps older entries visible regardless of age.
func (r *EntradaRepo) Actuales(ctx context.Context) ([]model.Entrada, error) {
	return r.listar(ctx, `SELECT `+columnasEntrada+`
		FROM entradas_vehiculos
		WHERE fecha_entrada >= (NOW() AT TIME ZONE 'UTC' - INTERVAL '12 hours')
		   OR fecha_salida IS NULL
		ORDER BY fecha_entrada DESC`)
}

// Almacen returns entries not yet confirmed by warehouse reception.
func (r *EntradaRepo) Almacen(ctx context.Context) ([]model.Entrada, error) {
	return r.listar(ctx, `SELECT `+columnasEntrada+`
		FROM entradas_vehiculos WHERE recepcion = false ORDER BY fecha_entrada ASC`)
}

// Porteria returns entries received by warehouse but not yet cleared by the
// exit checkpoint.
func (r *EntradaRepo) Porteria(ctx context.Context) ([]model.Entrada, error) {
	return r.listar(ctx, `SELECT `+columnasEntrada+`
		FROM entradas_vehiculos WHERE recepcion = true AND vigilancia = false`)
}

// PorID fetches one entry; sql.ErrNoRows when absent.
func (r *EntradaRepo) PorID(ctx context.Context, id int) (model.Entrada, error) {
	return escanearEntrada(r.DB.QueryRowContext(ctx,
		`SELECT `+columnasEntrada+` FROM entradas_vehiculos WHERE id = $1`, id))
}

// PorMatricula fetches the latest entry for an upper-cased plate.
func (r *EntradaRepo) PorMatricula(ctx context.Context, matricula string) (model.Entrada, error) {
	return escanearEntrada(r.DB.QueryRowContext(ctx,
		`SELECT `+columnasEntrada+` FROM entradas_vehiculos
		 WHERE matricula = $1 ORDER BY fecha_entrada DESC LIMIT 1`, matricula))
}

// Crear inserts a vehicle entry and reselects it by its natural key
// (signature plus entry time) to return the generated id.
func (r *EntradaRepo) Crear(ctx context.Context, nombre, empresa, matricula, claseCarga, fechaEntrada, firma string, usuario int) (model.EntradaCreada, error) {
	var creada model.EntradaCreada
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO entradas_vehiculos (nombre_conductor, empresa, matricula, clase_carga, fecha_entrada, firma, usuario)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		nombre, empresa, matricula, claseCarga, fechaEntrada, firma, usuario)
	if err != nil {
		return creada, err
	}
	err = r.DB.QueryRowContext(ctx,
		`SELECT id, nombre_conductor, empresa, matricula, clase_carga, fecha_entrada, firma
		 FROM entradas_vehiculos WHERE firma = $1 AND fecha_entrada = $2 ORDER BY fecha_entrada ASC`,
		firma, fechaEntrada).
		Scan(&creada.ID, &creada.NombreConductor, &creada.Empresa, &creada.Matricula,
			&creada.ClaseCarga, &creada.FechaEntrada, &creada.Firma)
	return creada, err
}

// existe reports whether an entry id is present.  Update and delete check
// first and write second; a row vanishing in between is an accepted race.
func (r *EntradaRepo) existe(ctx context.Context, id int) (bool, error) {
	var uno int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM entradas_vehiculos WHERE id = $1", id).Scan(&uno)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// ActualizarRecepcion flips the warehouse reception flag, recording who did it.
func (r *EntradaRepo) ActualizarRecepcion(ctx context.Context, id int, recepcion bool, usuario int) error {
	ok, err := r.existe(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return sql.ErrNoRows
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE entradas_vehiculos SET recepcion = $1, usuario = $2 WHERE id = $3",
		recepcion, usuario, id)
	return err
}

// ActualizarPorteria records the security clearance and the exit timestamp.
// No prior warehouse reception is required: transitions are independent.
func (r *EntradaRepo) ActualizarPorteria(ctx context.Context, id int, vigilancia bool, fecha string, usuario int) error {
	ok, err := r.existe(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return sql.ErrNoRows
	}
	_, err = r.DB.ExecContext(ctx,
		"UPDATE entradas_vehiculos SET vigilancia = $1, fecha_salida = $2, usuario = $3 WHERE id = $4",
		vigilancia, fecha, usuario, id)
	return err
}

// Actualizar replaces the mutable columns of an entry.
func (r *EntradaRepo) Actualizar(ctx context.Context, id int, e model.NuevaEntrada, usuario int) error {
	ok, err := r.existe(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return sql.ErrNoRows
	}
	_, err = r.DB.ExecContext(ctx,
		`UPDATE entradas_vehiculos
		 SET nombre_conductor = $1, empresa = $2, matricula = $3, clase_carga = $4,
		     fecha_entrada = $5, fecha_salida = $6, usuario = $7
		 WHERE id = $8`,
		e.NombreConductor, e.Empresa, e.Matricula, e.ClaseCarga, e.FechaEntrada, e.FechaSalida, usuario, id)
	return err
}

// Eliminar removes an entry and returns the snapshot that was deleted.
func (r *EntradaRepo) Eliminar(ctx context.Context, id int) (model.Entrada, error) {
	e, err := r.PorID(ctx, id)
	if err != nil {
		return e, err
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM entradas_vehiculos WHERE id = $1", id)
	return e, err
}

// Buscar runs the dynamic entry search.  The caller guarantees a lower date
// bound; the upper bound falls back to the database clock.
func (r *EntradaRepo) Buscar(ctx context.Context, b model.BusquedaEntradas) ([]model.Entrada, error) {
	hasta := any(b.FechaEntrada2)
	if b.FechaEntrada2 == "" {
		t, err := ahora(ctx, r.DB)
		if err != nil {
			return nil, err
		}
		hasta = t
	}

	var f filtro
	f.ILike("nombre_conductor", b.NombreConductor)
	f.ILike("empresa", b.Empresa)
	f.ILike("matricula", b.Matricula)
	if c := strings.TrimSpace(b.ClaseCarga); c != "" {
		f.Expr("(clase_carga IS NULL OR clase_carga ILIKE ?)", "%"+c+"%")
	}
	f.Entre("fecha_entrada", b.FechaEntrada1, hasta)

	query := `SELECT ` + columnasEntrada + ` FROM entradas_vehiculos` +
		f.Where() + f.Paginar("fecha_entrada DESC", b.Limit, b.Offset)
	return r.listar(ctx, query, f.Args()...)
}
