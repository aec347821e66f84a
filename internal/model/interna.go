package model

import "time"

// Interna mirrors a row of the 'salidas_empleados' table: an employee leaving
// the facility during a shift.  FechaSalida is set at creation; FechaEntrada
// is filled later when the gatehouse records the return.
type Interna struct {
	ID             int        `json:"id"`
	CodigoEmpleado string     `json:"codigo_empleado"`
	NombrePersona  string     `json:"nombre_persona"`
	FechaEntrada   *time.Time `json:"fecha_entrada"`
	FechaSalida    *time.Time `json:"fecha_salida"`
	Motivo         *string    `json:"motivo"`
	Usuario        *int       `json:"usuario"`
}

// NuevaInterna carries the creation payload for an employee departure.
type NuevaInterna struct {
	CodigoEmpleado string `json:"codigoEmpleado"`
	NombrePersona  string `json:"nombrePersona"`
	FechaSalida    string `json:"fechaSalida"`
	Motivo         string `json:"motivo"`
}

// ActualizarInterna carries a full update of a departure record.  Empty date
// strings persist as NULL.
type ActualizarInterna struct {
	CodigoEmpleado string `json:"codigo_empleado"`
	NombrePersona  string `json:"nombre_persona"`
	FechaEntrada   string `json:"fecha_entrada"`
	FechaSalida    string `json:"fecha_salida"`
	Motivo         string `json:"motivo"`
}

// BusquedaInternas holds the departure search filters.  FechaEntrada is the
// mandatory lower bound over fecha_salida; FechaEntrada2 defaults to the
// database clock when omitted.
type BusquedaInternas struct {
	CodigoEmpleado string `json:"codigo_empleado"`
	NombrePersona  string `json:"nombre_persona"`
	Motivo         string `json:"motivo"`
	FechaEntrada   string `json:"fecha_entrada"`
	FechaEntrada2  string `json:"fecha_entrada2"`
	Limit          int    `json:"limit"`
	Offset         int    `json:"offset"`
}
