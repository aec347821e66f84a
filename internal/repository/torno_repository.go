package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/nanci1121/app-entradas/internal/model"
)

// TornoRepo persists turnstile badge events ('salidas_tornos').  The
// employee code is a foreign key in spirit only: listings tolerate codes with
// no matching user via LEFT JOIN, while creation requires an existing code,
// checked in application code by the handler.
type TornoRepo struct{ DB *sql.DB }

func NewTornoRepo(db *sql.DB) *TornoRepo { return &TornoRepo{DB: db} }

// Hoy returns the badge events whose entry or exit falls inside the given
// day, newest first, enriched with the employee display name when one exists.
func (r *TornoRepo) Hoy(ctx context.Context, dia string, limit, offset int) ([]model.Torno, error) {
	inicio := dia + "T00:00:00.000Z"
	fin := dia + "T23:59:59.999Z"
	rows, err := r.DB.QueryContext(ctx, `
		SELECT st.id, st.codigo_empleado, st.fecha_entrada, st.fecha_salida, u.name AS nombre_persona
		FROM salidas_tornos st
		LEFT JOIN users u ON st.codigo_empleado = u.codigo_empleado
		WHERE (st.fecha_salida >= $1 AND st.fecha_salida <= $2)
		   OR (st.fecha_entrada >= $1 AND st.fecha_entrada <= $2)
		ORDER BY st.fecha_salida DESC, st.fecha_entrada DESC
		LIMIT $3 OFFSET $4`,
		inicio, fin, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tornos := make([]model.Torno, 0)
	for rows.Next() {
		var t model.Torno
		if err := rows.Scan(&t.ID, &t.CodigoEmpleado, &t.FechaEntrada, &t.FechaSalida, &t.NombrePersona); err != nil {
			return nil, err
		}
		tornos = append(tornos, t)
	}
	return tornos, rows.Err()
}

// PorID fetches one badge event; sql.ErrNoRows when absent.
func (r *TornoRepo) PorID(ctx context.Context, id int) (model.Torno, error) {
	var t model.Torno
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, codigo_empleado, fecha_entrada, fecha_salida, usuario FROM salidas_tornos WHERE id = $1", id).
		Scan(&t.ID, &t.CodigoEmpleado, &t.FechaEntrada, &t.FechaSalida, &t.Usuario)
	return t, err
}

// Crear inserts a badge event and returns the generated id.  Either date may
// be absent; chronology and employee-code existence are the handler's checks.
func (r *TornoRepo) Crear(ctx context.Context, n model.NuevoTorno, usuario int) (int, error) {
	var entrada, salida any
	if n.FechaEntrada != "" {
		entrada = n.FechaEntrada
	}
	if n.FechaSalida != "" {
		salida = n.FechaSalida
	}
	var id int
	err := r.DB.QueryRowContext(ctx,
		`INSERT INTO salidas_tornos (codigo_empleado, fecha_entrada, fecha_salida, usuario)
		 VALUES ($1, $2, $3, $4) RETURNING id`,
		n.CodigoEmpleado, entrada, salida, usuario).Scan(&id)
	return id, err
}

// Actualizar is the one fully partial update of the API: only the columns
// present in the payload are written, plus the auditing usuario column.
func (r *TornoRepo) Actualizar(ctx context.Context, id int, a model.ActualizarTorno, usuario int) error {
	if _, err := r.PorID(ctx, id); err != nil {
		return err
	}

	var f filtro
	sets := []string{}
	if a.CodigoEmpleado != nil && *a.CodigoEmpleado != "" {
		sets = append(sets, "codigo_empleado = "+f.marcador(*a.CodigoEmpleado))
	}
	if a.FechaEntrada != nil {
		sets = append(sets, "fecha_entrada = "+f.marcador(nuloSiVacio(*a.FechaEntrada)))
	}
	if a.FechaSalida != nil {
		sets = append(sets, "fecha_salida = "+f.marcador(nuloSiVacio(*a.FechaSalida)))
	}
	sets = append(sets, "usuario = "+f.marcador(usuario))

	query := "UPDATE salidas_tornos SET " + strings.Join(sets, ", ") + " WHERE id = " + f.marcador(id)
	_, err := r.DB.ExecContext(ctx, query, f.Args()...)
	return err
}

// Eliminar removes a badge event; sql.ErrNoRows when the id is absent.
func (r *TornoRepo) Eliminar(ctx context.Context, id int) error {
	if _, err := r.PorID(ctx, id); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx, "DELETE FROM salidas_tornos WHERE id = $1", id)
	return err
}

// Consulta runs the badge-event search.  Range predicates cover whichever of
// the two timestamp columns fall inside the requested bounds; an INNER JOIN
// drops events with no matching employee, as the historic report does.
func (r *TornoRepo) Consulta(ctx context.Context, c model.ConsultaTornos) ([]model.Torno, error) {
	var f filtro
	if strings.TrimSpace(c.CodigoEmpleado) != "" {
		f.Expr("t.codigo_empleado::TEXT ILIKE ?::VARCHAR", "%"+strings.TrimSpace(c.CodigoEmpleado)+"%")
	}
	switch {
	case c.FechaInicio != "" && c.FechaFin != "":
		f.Expr("(t.fecha_entrada BETWEEN ? AND ? OR t.fecha_salida BETWEEN ? AND ?)",
			c.FechaInicio, c.FechaFin, c.FechaInicio, c.FechaFin)
	case c.FechaInicio != "":
		f.Expr("(t.fecha_entrada >= ? OR t.fecha_salida >= ?)", c.FechaInicio, c.FechaInicio)
	case c.FechaFin != "":
		f.Expr("(t.fecha_entrada <= ? OR t.fecha_salida <= ?)", c.FechaFin, c.FechaFin)
	}

	query := `SELECT t.id, t.codigo_empleado, t.fecha_entrada, t.fecha_salida, t.usuario, u.name AS nombre_persona
		FROM salidas_tornos t
		JOIN users u ON t.codigo_empleado = u.codigo_empleado` +
		f.Where() + f.Paginar("t.fecha_entrada DESC, t.fecha_salida DESC", c.Limit, c.Offset)

	rows, err := r.DB.QueryContext(ctx, query, f.Args()...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tornos := make([]model.Torno, 0)
	for rows.Next() {
		var t model.Torno
		if err := rows.Scan(&t.ID, &t.CodigoEmpleado, &t.FechaEntrada, &t.FechaSalida, &t.Usuario, &t.NombrePersona); err != nil {
			return nil, err
		}
		tornos = append(tornos, t)
	}
	return tornos, rows.Err()
}

// nuloSiVacio persists empty strings as NULL for nullable date columns.
func nuloSiVacio(s string) any {
	if s == "" {
		return nil
	}
	return s
}
