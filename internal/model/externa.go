package model

import "time"

// Externa mirrors a row of the 'empresas_exteriores' table: a visiting
// external party checked in at the gatehouse.
type Externa struct {
	ID              int        `json:"id"`
	NombrePersona   string     `json:"nombre_persona"`
	EmpresaExterior string     `json:"empresa_exterior"`
	Peticionario    string     `json:"peticionario"`
	TelefonoPersona string     `json:"telefono_persona"`
	Firma           string     `json:"firma"`
	Recepcion       bool       `json:"recepcion"`
	FechaEntrada    time.Time  `json:"fecha_entrada"`
	FechaSalida     *time.Time `json:"fecha_salida"`
	Nota            *string    `json:"nota"`
	Usuario         *int       `json:"usuario"`
}

// ExternaRequest is the boundary adapter for external-visitor payloads: the
// client sends snake_case on some screens and camelCase on others, so every
// field accepts both spellings.  Normalizar collapses the aliases into one
// canonical value set; nothing downstream sees the duplication.
type ExternaRequest struct {
	ID                   int     `json:"id"`
	NombrePersona        string  `json:"nombrePersona"`
	NombrePersonaSnake   string  `json:"nombre_persona"`
	EmpresaExterior      string  `json:"empresaExterior"`
	EmpresaExteriorSnake string  `json:"empresa_exterior"`
	Peticionario         string  `json:"peticionario"`
	TelefonoPersona      string  `json:"telefonoPersona"`
	TelefonoPersonaSnake string  `json:"telefono_persona"`
	Firma                string  `json:"firma"`
	Recepcion            bool    `json:"recepcion"`
	FechaEntrada         string  `json:"fechaEntrada"`
	FechaEntradaSnake    string  `json:"fecha_entrada"`
	FechaSalida          string  `json:"fechaSalida"`
	FechaEntrada2        string  `json:"fecha_entrada2"`
	Nota                 string  `json:"nota"`
	Limit                int     `json:"limit"`
	Offset               int     `json:"offset"`
}

// DatosExterna is the normalized payload after alias resolution.
type DatosExterna struct {
	NombrePersona   string
	EmpresaExterior string
	Peticionario    string
	TelefonoPersona string
	Firma           string
	Recepcion       bool
	FechaEntrada    string
	FechaSalida     string
	Nota            string
}

// Normalizar maps the aliased request fields to their canonical names,
// preferring the snake_case spelling when both are present, as the historic
// contract does.
func (r ExternaRequest) Normalizar() DatosExterna {
	d := DatosExterna{
		NombrePersona:   coalesce(r.NombrePersonaSnake, r.NombrePersona),
		EmpresaExterior: coalesce(r.EmpresaExteriorSnake, r.EmpresaExterior),
		Peticionario:    r.Peticionario,
		TelefonoPersona: coalesce(r.TelefonoPersonaSnake, r.TelefonoPersona),
		Firma:           r.Firma,
		Recepcion:       r.Recepcion,
		FechaEntrada:    coalesce(r.FechaEntradaSnake, r.FechaEntrada),
		FechaSalida:     coalesce(r.FechaEntrada2, r.FechaSalida),
		Nota:            r.Nota,
	}
	return d
}

func coalesce(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
