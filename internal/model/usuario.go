package model

// Usuario mirrors a row of the 'users' table.  The hashed password travels in
// responses because the historic client contract includes it; login never
// compares anything but the bcrypt hash.
type Usuario struct {
	ID             int     `json:"id"`
	Name           string  `json:"name"`
	Email          string  `json:"email"`
	Password       string  `json:"password"`
	Online         bool    `json:"online"`
	Type           string  `json:"type"`
	CodigoEmpleado *string `json:"codigo_empleado"`
}
