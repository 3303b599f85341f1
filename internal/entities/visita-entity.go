package entities

import (
	"time"

	"clinical-service/pkg/constants"
	"clinical-service/pkg/types"

	"github.com/aarondl/null/v8"
)

type Visita struct {
	ID              uint64           `json:"id" db:"id"`
	OrdenID         uint64           `json:"orden_id" db:"orden_id"`
	TecnicoID       uint64           `json:"tecnico_id" db:"tecnico_id"`
	Estado          constants.Estado `json:"estado" db:"estado"`
	FechaProgramada time.Time        `json:"fecha_programada" db:"fecha_programada"`

	CheckInAt        null.Time    `json:"check_in_at" db:"check_in_at"`
	CheckInLatitud   null.Float64 `json:"check_in_latitud" db:"check_in_latitud"`
	CheckInLongitud  null.Float64 `json:"check_in_longitud" db:"check_in_longitud"`
	CheckInDistancia null.Float64 `json:"check_in_distancia" db:"check_in_distancia"`

	CheckOutAt        null.Time    `json:"check_out_at" db:"check_out_at"`
	CheckOutLatitud   null.Float64 `json:"check_out_latitud" db:"check_out_latitud"`
	CheckOutLongitud  null.Float64 `json:"check_out_longitud" db:"check_out_longitud"`
	CheckOutDistancia null.Float64 `json:"check_out_distancia" db:"check_out_distancia"`

	Observaciones null.String `json:"observaciones" db:"observaciones"`

	types.BaseEntity
}

// Marca es un registro de check-in o check-out.
type Marca struct {
	At        time.Time
	Latitud   float64
	Longitud  float64
	Distancia float64
}
