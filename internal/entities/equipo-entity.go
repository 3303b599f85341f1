package entities

import (
	"clinical-service/pkg/geo"
	"clinical-service/pkg/types"
)

type Equipo struct {
	ID        uint64  `json:"id" db:"id"`
	Nombre    string  `json:"nombre" db:"nombre"`
	Serie     string  `json:"serie" db:"serie"`
	Marca     string  `json:"marca" db:"marca"`
	Modelo    string  `json:"modelo" db:"modelo"`
	Ubicacion string  `json:"ubicacion" db:"ubicacion"`
	Latitud   float64 `json:"latitud" db:"latitud"`
	Longitud  float64 `json:"longitud" db:"longitud"`
	Estado    string  `json:"estado" db:"estado"`

	types.BaseEntity
}

func (e Equipo) Point() geo.Point {
	return geo.Point{Lat: e.Latitud, Lng: e.Longitud}
}
