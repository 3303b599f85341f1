package dto

import (
	"time"
)

type CreateOrdenServicioDTO struct {
	EquipoID        uint64     `json:"equipo_id" validate:"required,gt=0"`
	TecnicoID       *uint64    `json:"tecnico_id,omitempty" validate:"omitempty,gt=0"`
	Descripcion     string     `json:"descripcion" validate:"required,max=2000"`
	Prioridad       string     `json:"prioridad" validate:"required,prioridad"`
	Latitud         *float64   `json:"latitud,omitempty" validate:"omitempty,latitude"`
	Longitud        *float64   `json:"longitud,omitempty" validate:"omitempty,longitude"`
	FechaProgramada *time.Time `json:"fecha_programada,omitempty"`
}

type UpdateOrdenServicioDTO struct {
	TecnicoID       *uint64    `json:"tecnico_id,omitempty" validate:"omitempty,gt=0"`
	Descripcion     *string    `json:"descripcion,omitempty" validate:"omitempty,max=2000"`
	Prioridad       *string    `json:"prioridad,omitempty" validate:"omitempty,prioridad"`
	Latitud         *float64   `json:"latitud,omitempty" validate:"omitempty,latitude"`
	Longitud        *float64   `json:"longitud,omitempty" validate:"omitempty,longitude"`
	FechaProgramada *time.Time `json:"fecha_programada,omitempty"`
}
