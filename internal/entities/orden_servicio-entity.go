package entities

import (
	"fmt"

	"clinical-service/pkg/constants"
	"clinical-service/pkg/geo"
	"clinical-service/pkg/types"

	"github.com/aarondl/null/v8"
)

type OrdenServicio struct {
	ID              uint64           `json:"id" db:"id"`
	Codigo          string           `json:"codigo" db:"codigo"`
	EquipoID        uint64           `json:"equipo_id" db:"equipo_id"`
	SolicitudID     null.Uint64      `json:"solicitud_id" db:"solicitud_id"`
	TecnicoID       null.Uint64      `json:"tecnico_id" db:"tecnico_id"`
	Descripcion     string           `json:"descripcion" db:"descripcion"`
	Prioridad       string           `json:"prioridad" db:"prioridad"`
	Estado          constants.Estado `json:"estado" db:"estado"`
	Latitud         float64          `json:"latitud" db:"latitud"`
	Longitud        float64          `json:"longitud" db:"longitud"`
	QRToken         string           `json:"qr_token" db:"qr_token"`
	FechaProgramada null.Time        `json:"fecha_programada" db:"fecha_programada"`

	types.BaseEntity
}

func (o OrdenServicio) Point() geo.Point {
	return geo.Point{Lat: o.Latitud, Lng: o.Longitud}
}

// CodigoOrden formatea el código visible de una orden a partir de su id.
func CodigoOrden(id uint64) string {
	return fmt.Sprintf("OS-%06d", id)
}
