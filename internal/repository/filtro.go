package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// filtro builds dynamic WHERE clauses with PostgreSQL positional
// placeholders.  Every appended condition draws consecutive $N indices from
// the same counter as its arguments, so the statement and the parameter list
// can never drift apart no matter which optional filters the client sent.
type filtro struct {
	conds []string
	args  []any
}

// marcador registers an argument and returns its $N placeholder.
func (f *filtro) marcador(v any) string {
	f.args = append(f.args, v)
	return fmt.Sprintf("$%d", len(f.args))
}

// ILike appends a case-insensitive substring match for col when val is
// non-blank after trimming; blank values are skipped entirely.
func (f *filtro) ILike(col, val string) {
	val = strings.TrimSpace(val)
	if val == "" {
		return
	}
	f.conds = append(f.conds, col+" ILIKE "+f.marcador("%"+val+"%"))
}

// Entre appends a BETWEEN condition over col.
func (f *filtro) Entre(col string, desde, hasta any) {
	p1 := f.marcador(desde)
	p2 := f.marcador(hasta)
	f.conds = append(f.conds, col+" BETWEEN "+p1+" AND "+p2)
}

// Expr appends an arbitrary condition; each '?' in expr is replaced, in
// order, by the placeholder of the corresponding value.
func (f *filtro) Expr(expr string, vals ...any) {
	for _, v := range vals {
		expr = strings.Replace(expr, "?", f.marcador(v), 1)
	}
	f.conds = append(f.conds, expr)
}

// Where renders the accumulated conditions as a WHERE clause.  With no
// conditions it still emits the neutral 1=1 so callers can append more SQL
// unconditionally.
func (f *filtro) Where() string {
	if len(f.conds) == 0 {
		return " WHERE 1=1"
	}
	return " WHERE 1=1 AND " + strings.Join(f.conds, " AND ")
}

// Paginar renders ORDER BY plus LIMIT/OFFSET with tracked placeholders.
func (f *filtro) Paginar(orden string, limit, offset int) string {
	return " ORDER BY " + orden + " LIMIT " + f.marcador(limit) + " OFFSET " + f.marcador(offset)
}

// Args returns the accumulated parameter list.
func (f *filtro) Args() []any { return f.args }

// ahora reads the database clock; search operations use it when the client
// omits the closing bound of a date range.
func ahora(ctx context.Context, db *sql.DB) (time.Time, error) {
	var t time.Time
	err := db.QueryRowContext(ctx, "SELECT now()").Scan(&t)
	return t, err
}
