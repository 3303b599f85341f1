package dto

import (
	"time"

	"clinical-service/pkg/geo"
)

type CreateVisitaDTO struct {
	OrdenID         uint64    `json:"orden_id" validate:"required,gt=0"`
	TecnicoID       uint64    `json:"tecnico_id" validate:"required,gt=0"`
	FechaProgramada time.Time `json:"fecha_programada" validate:"required"`
}

// MarcaDTO es el cuerpo de check-in y check-out: token leído del QR de la
// orden y posición GPS del dispositivo. Sin coordenadas no hay marca.
type MarcaDTO struct {
	QRToken  string   `json:"qr_token" validate:"required,uuid"`
	Latitud  *float64 `json:"latitud" validate:"required,latitude"`
	Longitud *float64 `json:"longitud" validate:"required,longitude"`
}

func (d MarcaDTO) Point() geo.Point {
	var p geo.Point
	if d.Latitud != nil {
		p.Lat = *d.Latitud
	}
	if d.Longitud != nil {
		p.Lng = *d.Longitud
	}
	return p
}

type CheckInDTO struct {
	MarcaDTO
}

type CheckOutDTO struct {
	MarcaDTO
	Observaciones *string `json:"observaciones,omitempty" validate:"omitempty,max=2000"`
}
