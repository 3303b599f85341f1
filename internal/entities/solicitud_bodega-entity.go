package entities

import (
	"clinical-service/pkg/constants"
	"clinical-service/pkg/types"

	"github.com/aarondl/null/v8"
)

type SolicitudBodega struct {
	ID            uint64           `json:"id" db:"id"`
	OrdenID       null.Uint64      `json:"orden_id" db:"orden_id"`
	SolicitanteID uint64           `json:"solicitante_id" db:"solicitante_id"`
	Motivo        string           `json:"motivo" db:"motivo"`
	Estado        constants.Estado `json:"estado" db:"estado"`

	types.BaseEntity

	Items []SolicitudBodegaItem `json:"items,omitempty" db:"-"`
}

type SolicitudBodegaItem struct {
	ID          uint64 `json:"id" db:"id"`
	SolicitudID uint64 `json:"solicitud_id" db:"solicitud_id"`
	Codigo      string `json:"codigo" db:"codigo"`
	Descripcion string `json:"descripcion" db:"descripcion"`
	Cantidad    int    `json:"cantidad" db:"cantidad"`
}
