package entities

import (
	"clinical-service/pkg/constants"
	"clinical-service/pkg/types"
)

// SolicitudServicio es el pedido de atención sobre un equipo. Al aprobarse
// genera una OrdenServicio.
type SolicitudServicio struct {
	ID            uint64           `json:"id" db:"id"`
	EquipoID      uint64           `json:"equipo_id" db:"equipo_id"`
	SolicitanteID uint64           `json:"solicitante_id" db:"solicitante_id"`
	Descripcion   string           `json:"descripcion" db:"descripcion"`
	Prioridad     string           `json:"prioridad" db:"prioridad"`
	Estado        constants.Estado `json:"estado" db:"estado"`

	types.BaseEntity
}
