package repository

import (
	"context"
	"database/sql"

	"github.com/nanci1121/app-entradas/internal/model"
)

// InternaRepo persists employee departures ('salidas_empleados').
type InternaRepo struct{ DB *sql.DB }

func NewInternaRepo(db *sql.DB) *InternaRepo { return &InternaRepo{DB: db} }

const columnasInterna = "id, codigo_empleado, nombre_persona, fecha_entrada, fecha_salida, motivo, usuario"

func escanearInterna(rs interface{ Scan(...any) error }) (model.Interna, error) {
	var i model.Interna
	err := rs.Scan(&i.ID, &i.CodigoEmpleado, &i.NombrePersona, &i.FechaEntrada,
		&i.FechaSalida, &i.Motivo, &i.Usuario)
	return i, err
}

func (r *InternaRepo) listar(ctx context.Context, query string, args ...any) ([]model.Interna, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	internas := make([]model.Interna, 0)
	for rows.Next() {
		i, err := escanearInterna(rows)
		if err != nil {
			return nil, err
		}
		internas = append(internas, i)
	}
	return internas, rows.Err()
}

// Hoy returns the departures recorded today.
func (r *InternaRepo) Hoy(ctx context.Context) ([]model.Interna, error) {
	return r.listar(ctx, `SELECT `+columnasInterna+`
		FROM salidas_empleados
		WHERE fecha_salida::DATE = NOW()::DATE
		ORDER BY fecha_salida ASC`)
}

// PorID fetches one departure; sql.ErrNoRows when absent.
func (r *InternaRepo) PorID(ctx context.Context, id int) (model.Interna, error) {
	return escanearInterna(r.DB.QueryRowContext(ctx,
		`SELECT `+columnasInterna+` FROM salidas_empleados WHERE id = $1`, id))
}

// Crear inserts a departure with no return time yet and returns the
// generated id, reselected by employee code and departure time.
func (r *InternaRepo) Crear(ctx context.Context, n model.NuevaInterna, usuario int) (int, error) {
	var motivo any
	if n.Motivo != "" {
		motivo = n.Motivo
	}
	_, err := r.DB.ExecContext(ctx,
		`INSERT INTO salidas_empleados (codigo_empleado, nombre_persona, fecha_entrada, fecha_salida, motivo, usuario)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		n.CodigoEmpleado, n.NombrePersona, nil, n.FechaSalida, motivo, usuario)
	if err != nil {
		return 0, err
	}
	var id int
	err = r.DB.QueryRowContext(ctx,
		`SELECT id FROM salidas_empleados
		 WHERE codigo_empleado = $1 AND fecha_salida = $2 ORDER BY fecha_salida ASC`,
		n.CodigoEmpleado, n.FechaSalida).Scan(&id)
	return id, err
}

// RegistrarRetorno stores the gatehouse return time of a departure.
func (r *InternaRepo) RegistrarRetorno(ctx context.Context, id int, fechaEntrada string, usuario int) error {
	if _, err := r.PorID(ctx, id); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx,
		"UPDATE salidas_empleados SET fecha_entrada = $1, usuario = $2 WHERE id = $3",
		fechaEntrada, usuario, id)
	return err
}

// Actualizar replaces the mutable columns of a departure.  Empty date
// strings persist as NULL.
func (r *InternaRepo) Actualizar(ctx context.Context, id int, a model.ActualizarInterna, usuario int) error {
	var uno int
	err := r.DB.QueryRowContext(ctx, "SELECT 1 FROM salidas_empleados WHERE id = $1", id).Scan(&uno)
	if err != nil {
		return err
	}
	var entrada, salida, motivo any
	if a.FechaEntrada != "" {
		entrada = a.FechaEntrada
	}
	if a.FechaSalida != "" {
		salida = a.FechaSalida
	}
	if a.Motivo != "" {
		motivo = a.Motivo
	}
	_, err = r.DB.ExecContext(ctx,
		`UPDATE salidas_empleados
		 SET codigo_empleado = $1, nombre_persona = $2, fecha_salida = $3, motivo = $4, fecha_entrada = $5, usuario = $6
		 WHERE id = $7`,
		a.CodigoEmpleado, a.NombrePersona, salida, motivo, entrada, usuario, id)
	return err
}

// Eliminar removes a departure; sql.ErrNoRows when the id is absent.
func (r *InternaRepo) Eliminar(ctx context.Context, id int) error {
	if _, err := r.PorID(ctx, id); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx, "DELETE FROM salidas_empleados WHERE id = $1", id)
	return err
}

// Buscar runs the dynamic departure search over the fecha_salida range.
func (r *InternaRepo) Buscar(ctx context.Context, b model.BusquedaInternas) ([]model.Interna, error) {
	hasta := any(b.FechaEntrada2)
	if b.FechaEntrada2 == "" {
		t, err := ahora(ctx, r.DB)
		if err != nil {
			return nil, err
		}
		hasta = t
	}

	var f filtro
	f.ILike("codigo_empleado", b.CodigoEmpleado)
	f.ILike("nombre_persona", b.NombrePersona)
	f.ILike("motivo", b.Motivo)
	f.Entre("fecha_salida", b.FechaEntrada, hasta)

	query := `SELECT ` + columnasInterna + ` FROM salidas_empleados` +
		f.Where() + f.Paginar("fecha_salida DESC", b.Limit, b.Offset)
	return r.listar(ctx, query, f.Args()...)
}
