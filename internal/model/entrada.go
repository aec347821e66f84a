package model

import "time"

// Entrada mirrors a row of the 'entradas_vehiculos' table.  List and detail
// endpoints return rows with the column names the client already consumes.
type Entrada struct {
	ID              int        `json:"id"`
	NombreConductor string     `json:"nombre_conductor"`
	Empresa         string     `json:"empresa"`
	Matricula       string     `json:"matricula"`
	ClaseCarga      *string    `json:"clase_carga"`
	FechaEntrada    time.Time  `json:"fecha_entrada"`
	FechaSalida     *time.Time `json:"fecha_salida"`
	Firma           string     `json:"firma"`
	Recepcion       bool       `json:"recepcion"`
	Vigilancia      bool       `json:"vigilancia"`
	Usuario         *int       `json:"usuario"`
}

// EntradaCreada is the reduced camelCase shape returned right after creating
// a vehicle entry.  The existing client depends on these exact keys, which
// differ from the raw row shape used everywhere else.
type EntradaCreada struct {
	ID              int       `json:"id"`
	NombreConductor string    `json:"nombreConductor"`
	Empresa         string    `json:"empresa"`
	Matricula       string    `json:"matricula"`
	ClaseCarga      *string   `json:"claseCarga"`
	FechaEntrada    time.Time `json:"fechaEntrada"`
	Firma           string    `json:"firma"`
}

// NuevaEntrada carries the request payload for creating or replacing a
// vehicle entry.
type NuevaEntrada struct {
	NombreConductor *string `json:"nombre_conductor"`
	Empresa         *string `json:"empresa"`
	Matricula       *string `json:"matricula"`
	ClaseCarga      *string `json:"clase_carga"`
	FechaEntrada    *string `json:"fecha_entrada"`
	FechaSalida     *string `json:"fecha_salida"`
	Firma           *string `json:"firma"`
}

// BusquedaEntradas holds the optional filters and pagination of the entry
// search operation.  FechaEntrada1 is the mandatory lower bound; an empty
// FechaEntrada2 defaults to the database clock at query time.
type BusquedaEntradas struct {
	NombreConductor string `json:"nombre_conductor"`
	Empresa         string `json:"empresa"`
	Matricula       string `json:"matricula"`
	ClaseCarga      string `json:"clase_carga"`
	FechaEntrada1   string `json:"fecha_entrada1"`
	FechaEntrada2   string `json:"fecha_entrada2"`
	Limit           int    `json:"limit"`
	Offset          int    `json:"offset"`
}
