package model

import "time"

// Torno mirrors a row of the 'salidas_tornos' table: one badge event at a
// turnstile.  Either timestamp or both may be present.  NombrePersona is not
// a column; it is enriched at query time by joining users on codigo_empleado.
type Torno struct {
	ID             int        `json:"id"`
	CodigoEmpleado string     `json:"codigo_empleado"`
	FechaEntrada   *time.Time `json:"fecha_entrada"`
	FechaSalida    *time.Time `json:"fecha_salida"`
	Usuario        *int       `json:"usuario,omitempty"`
	NombrePersona  *string    `json:"nombre_persona,omitempty"`
}

// NuevoTorno carries the creation payload of a badge event.  At least one of
// the two dates is required; when both are present entry must not be after
// exit.
type NuevoTorno struct {
	CodigoEmpleado string `json:"codigoEmpleado"`
	FechaEntrada   string `json:"fechaEntrada"`
	FechaSalida    string `json:"fechaSalida"`
}

// ActualizarTorno is the one fully partial update of the API: only fields
// present in the payload are written.
type ActualizarTorno struct {
	CodigoEmpleado *string `json:"codigoEmpleado"`
	FechaEntrada   *string `json:"fechaEntrada"`
	FechaSalida    *string `json:"fechaSalida"`
}

// ConsultaTornos holds the badge-event search filters.
type ConsultaTornos struct {
	CodigoEmpleado string `json:"codigoEmpleado"`
	FechaInicio    string `json:"fechaInicio"`
	FechaFin       string `json:"fechaFin"`
	Limit          int    `json:"limit"`
	Offset         int    `json:"offset"`
}
