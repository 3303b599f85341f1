package entities

import (
	"time"

	"clinical-service/pkg/constants"
	"clinical-service/pkg/types"

	"github.com/aarondl/null/v8"
)

// SolicitudBaja pide retirar un equipo del inventario activo.
type SolicitudBaja struct {
	ID            uint64           `json:"id" db:"id"`
	EquipoID      uint64           `json:"equipo_id" db:"equipo_id"`
	SolicitanteID uint64           `json:"solicitante_id" db:"solicitante_id"`
	Motivo        string           `json:"motivo" db:"motivo"`
	Justificacion string           `json:"justificacion" db:"justificacion"`
	Estado        constants.Estado `json:"estado" db:"estado"`
	ResueltaAt    null.Time        `json:"resuelta_at" db:"resuelta_at"`

	types.BaseEntity

	Evidencias []Evidencia `json:"evidencias,omitempty" db:"-"`
}

type Evidencia struct {
	ID          uint64    `json:"id" db:"id"`
	SolicitudID uint64    `json:"solicitud_id" db:"solicitud_id"`
	URL         string    `json:"url" db:"url"`
	Nombre      string    `json:"nombre" db:"nombre"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}
