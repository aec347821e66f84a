// Package queue defines the gate events exchanged over the message broker
// and the background consumer that turns them into an audit log.
package queue

// Event names carried in RegistroEntradaEvent.
const (
	EventoCreada = "entrada.creada"
	EventoSalida = "entrada.salida"
)

// RegistroEntradaEvent is published when a vehicle entry is registered or
// cleared out by security.  It carries enough for downstream consumers to
// log or notify without querying the primary database.
type RegistroEntradaEvent struct {
	EntradaID       int    `json:"entrada_id"`
	Evento          string `json:"evento"`
	NombreConductor string `json:"nombre_conductor,omitempty"`
	Empresa         string `json:"empresa,omitempty"`
	Matricula       string `json:"matricula,omitempty"`
	FechaEntrada    string `json:"fecha_entrada,omitempty"`
	FechaSalida     string `json:"fecha_salida,omitempty"`
	Usuario         int    `json:"usuario"`
	RegistradoEn    string `json:"registrado_en"`
}
