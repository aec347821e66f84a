package repository

import (
	"context"
	"database/sql"

	"github.com/nanci1121/app-entradas/internal/model"
)

// UserRepo persists application users ('users' table).  Email uniqueness is
// enforced by explicit existence checks before insert/update rather than by
// assuming a store-level constraint.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const columnasUsuario = "id, name, email, password, online, type, codigo_empleado"

func escanearUsuario(rs interface{ Scan(...any) error }) (model.Usuario, error) {
	var u model.Usuario
	err := rs.Scan(&u.ID, &u.Name, &u.Email, &u.Password, &u.Online, &u.Type, &u.CodigoEmpleado)
	return u, err
}

// Todos returns every user ordered by id.
func (r *UserRepo) Todos(ctx context.Context) ([]model.Usuario, error) {
	rows, err := r.DB.QueryContext(ctx, "SELECT "+columnasUsuario+" FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	usuarios := make([]model.Usuario, 0)
	for rows.Next() {
		u, err := escanearUsuario(rows)
		if err != nil {
			return nil, err
		}
		usuarios = append(usuarios, u)
	}
	return usuarios, rows.Err()
}

// PorID fetches a user by id; sql.ErrNoRows when absent.
func (r *UserRepo) PorID(ctx context.Context, id int) (model.Usuario, error) {
	return escanearUsuario(r.DB.QueryRowContext(ctx,
		"SELECT "+columnasUsuario+" FROM users WHERE id = $1", id))
}

// PorEmail fetches a user by email; sql.ErrNoRows when absent.
func (r *UserRepo) PorEmail(ctx context.Context, email string) (model.Usuario, error) {
	return escanearUsuario(r.DB.QueryRowContext(ctx,
		"SELECT "+columnasUsuario+" FROM users WHERE email = $1", email))
}

// PorCodigoEmpleado fetches a user by employee code; sql.ErrNoRows when absent.
func (r *UserRepo) PorCodigoEmpleado(ctx context.Context, codigo string) (model.Usuario, error) {
	return escanearUsuario(r.DB.QueryRowContext(ctx,
		"SELECT "+columnasUsuario+" FROM users WHERE codigo_empleado = $1", codigo))
}

// ExisteCodigoEmpleado reports whether any user carries the employee code.
func (r *UserRepo) ExisteCodigoEmpleado(ctx context.Context, codigo string) (bool, error) {
	var id int
	err := r.DB.QueryRowContext(ctx, "SELECT id FROM users WHERE codigo_empleado = $1", codigo).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// ExisteEmail reports whether the email is already registered.
func (r *UserRepo) ExisteEmail(ctx context.Context, email string) (bool, error) {
	var e string
	err := r.DB.QueryRowContext(ctx, "SELECT email FROM users WHERE email = $1", email).Scan(&e)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

// EmailDeOtro returns the id of a different user already holding the email.
// ok is false when the email is free or belongs to the same id.
func (r *UserRepo) EmailDeOtro(ctx context.Context, email string, id int) (int, bool, error) {
	var otro int
	err := r.DB.QueryRowContext(ctx,
		"SELECT id FROM users WHERE email = $1 AND id <> $2", email, id).Scan(&otro)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return otro, true, nil
}

// Crear inserts a user with an already-hashed password and returns the
// generated id, reselected by email.
func (r *UserRepo) Crear(ctx context.Context, name, email, passwordHash, tipo string, codigoEmpleado *string) (int, error) {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name, email, password, type, codigo_empleado) VALUES ($1, $2, $3, $4, $5)",
		name, email, passwordHash, tipo, codigoEmpleado)
	if err != nil {
		return 0, err
	}
	var id int
	err = r.DB.QueryRowContext(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	return id, err
}

// Actualizar replaces the mutable columns of a user.
func (r *UserRepo) Actualizar(ctx context.Context, id int, name, email, passwordHash, tipo string, codigoEmpleado *string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET name = $1, email = $2, password = $3, type = $4, codigo_empleado = $5 WHERE id = $6",
		name, email, passwordHash, tipo, codigoEmpleado, id)
	return err
}

// Eliminar removes a user; sql.ErrNoRows when the id is absent.
func (r *UserRepo) Eliminar(ctx context.Context, id int) error {
	if _, err := r.PorID(ctx, id); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx, "DELETE FROM users WHERE id = $1", id)
	return err
}

// SetOnline flips the presence flag of a user.  The presence bridge calls
// this on connect and disconnect.
func (r *UserRepo) SetOnline(ctx context.Context, id int, online bool) error {
	if _, err := r.PorID(ctx, id); err != nil {
		return err
	}
	_, err := r.DB.ExecContext(ctx, "UPDATE users SET online = $1 WHERE id = $2", online, id)
	return err
}
