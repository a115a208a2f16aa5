package model

import "time"

type CaseStatus string

const (
	CaseStatusOpen       CaseStatus = "Abierto"
	CaseStatusInProgress CaseStatus = "En Proceso"
	CaseStatusClosed     CaseStatus = "Cerrado"
)

// Case is a community policing incident report linked to an alarm raised by
// the Kuntur detector. Wire field names follow the original UPC contract.
type Case struct {
	CaseID         string     `json:"id_caso"`
	AlarmID        string     `json:"id_alarma"`
	AgentName      string     `json:"nombre_agente"`
	AgentIDNumber  string     `json:"cedula_agente"`
	VictimName     string     `json:"nombre_victima"`
	VictimIDNumber string     `json:"cedula_victima"`
	PoliceReport   string     `json:"informe_policial"`
	Status         CaseStatus `json:"estado"`

	CreatedAt time.Time  `json:"fecha_creacion"`
	UpdatedAt *time.Time `json:"fecha_actualizacion,omitempty"`
}
