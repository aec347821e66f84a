package repository

import (
	"context"
	"database/sql"

	"github.com/nanci1121/app-entradas/internal/model"
)

// ExternaRepo persists external-visitor check-ins ('empresas_exteriores').
type ExternaRepo struct{ DB *sql.DB }

func NewExternaRepo(db *sql.DB) *ExternaRepo { return &ExternaRepo{DB: db} }

const columnasExterna = "id, nombre_persona, empresa_exterior, peticionario, telefono_persona, firma, recepcion, fecha_entrada, fecha_salida, nota, usuario"

func escanearExterna(rs interface{ Scan(...any) error }) (model.Externa, error) {
	var e model.Externa
	err := rs.Scan(&e.ID, &e.NombrePersona, &e.EmpresaExterior, &e.Peticionario, &e.TelefonoPersona,
		&e.Firma, &e.Recepcion, &e.FechaEntrada, &e.FechaSalida, &e.Nota, &e.Usuario)
	return e, err
}

func (r *ExternaRepo) listar(ctx context.Context, query string, args ...any) ([]model.Externa, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	externas := make([]model.Externa, 0)
	for rows.Next() {
		e, err := escanearExterna(rows)
		if err != nil {
			return nil, err
		}
		externas = append(externas, e)
	}
	return externas, rows.Err()
}

// Hoy returns the external visits whose entry date is the current day.
func (r *ExternaRepo) Hoy(ctx context.Context) ([]model.Externa, error) {
	return r.listar(ctx, `SELECT `+columnasExterna+`
		FROM empresas_exteriores
		WHERE fecha_entrada::DATE = NOW()::DATE
		ORDER BY fecha_entrada ASC`)
}

// Porteria returns the visits not yet confirmed by reception.
func (r *ExternaRepo) Porteria(ctx context.Context) ([]model.Externa, error) {
	return r.listar(ctx, `SELECT `+columnasExterna+`
		FROM empresas_exteriores WHERE recepcion = false ORDER BY fecha_entrada ASC`)
}

// PorID fetches one visit; sql.ErrNoRows when absent.
func (r *ExternaRepo) PorID(ctx context.Context, id int) (model.Externa, error) {
	return escanearExterna(r.DB.QueryRowContext(ctx,
		`SELECT `+columnasExterna+` FROM empresas_exteriores WHERE id = $1`, id))
}

// PorNombre fetches the latest visit whose person name matches.
func (r *ExternaRepo) PorNombre(ctx context.Context, nombre string) (model.Externa, error) {
	return escanearExterna(r.DB.QueryRowContext(ctx,
		`SELECT `+columnasExterna+` FROM empresas_exteriores
		 WHERE nombre_persona ILIKE $1 ORDER BY fecha_entrada DESC LIMIT 1`, "%"+nombre+"%"))
}

// Crear inserts a visit with no exit yet and returns the generated id.
func (r *ExternaRepo) Crear(ctx context.Context, d model.DatosExterna, usuario int) (int, error) {
	var nota any
	if d.Nota != "" {
		nota = d.Nota
	}
	var id int
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO empresas_exteriores
		 (nombre_persona, empresa_exterior, peticionario, telefono_persona, firma, fecha_entrada, fecha_salida, nota, usuario)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id`,
		d.NombrePersona, d.EmpresaExterior, d.Peticionario, d.TelefonoPersona,
		d.Firma, d.FechaEntrada, nil, nota, usuario).Scan(&id)
	return id, err
}

// ActualizarPorteria records the reception confirmation and exit time, then
// reselects the row so the caller can echo the persisted state.
func (r *ExternaRepo) ActualizarPorteria(ctx context.Context, id int, recepcion bool, fechaSalida string, usuario int) (model.Externa, error) {
	if _, err := r.PorID(ctx, id); err != nil {
		return model.Externa{}, err
	}
	var salida any
	if fechaSalida != "" {
		salida = fechaSalida
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE empresas_exteriores SET recepcion = $1, fecha_salida = $2, usuario = $3 WHERE id = $4",
		recepcion, salida, usuario, id)
	if err != nil {
		return model.Externa{}, err
	}
	return r.PorID(ctx, id)
}

// Actualizar replaces the mutable columns of a visit.
func (r *ExternaRepo) Actualizar(ctx context.Context, id int, d model.DatosExterna, usuario int) error {
	if _, err := r.PorID(ctx, id); err != nil {
		return err
	}
	var salida, nota any
	if d.FechaSalida != "" {
		salida = d.FechaSalida
	}
	if d.Nota != "" {
		nota = d.Nota
	}
	_, err := r.DB.ExecContext(ctx,
		`UPDATE empresas_exteriores
		 SET nombre_persona = $1, empresa_exterior = $2, peticionario = $3,
		     telefono_persona = $4, fecha_entrada = $5, nota = $6, fecha_salida = $7,
		     usuario = $8, recepcion = $9
		 WHERE id = $10`,
		d.NombrePersona, d.EmpresaExterior, d.Peticionario, d.TelefonoPersona,
		d.FechaEntrada, nota, salida, usuario, d.Recepcion, id)
	return err
}

// Eliminar removes a visit; sql.ErrNoRows when the id is absent.
func (r *ExternaRepo) Eliminar(ctx context.Context, id int) error {
	if _, err := r.PorID(ctx, id); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx, "DELETE FROM empresas_exteriores WHERE id = $1", id)
	return err
}

// Buscar runs the dynamic visit search over the entry date range.
func (r *ExternaRepo) Buscar(ctx context.Context, d model.DatosExterna, limit, offset int) ([]model.Externa, error) {
	hasta := any(d.FechaSalida)
	if d.FechaSalida == "" {
		t, err := ahora(ctx, r.DB)
		if err != nil {
			return nil, err
		}
		hasta = t
	}

	var f filtro
	f.ILike("nombre_persona", d.NombrePersona)
	f.ILike("empresa_exterior", d.EmpresaExterior)
	f.ILike("peticionario", d.Peticionario)
	f.ILike("telefono_persona", d.TelefonoPersona)
	f.Entre("fecha_entrada", d.FechaEntrada, hasta)

	query := `SELECT ` + columnasExterna + ` FROM empresas_exteriores` +
		f.Where() + f.Paginar("fecha_entrada DESC", limit, offset)
	return r.listar(ctx, query, f.Args()...)
}
