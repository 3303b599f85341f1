// Package geo implements the great-circle distance and radius checks used by
// the QR check-in flow.
package geo

import (
	"fmt"
	"math"
)

const (
	// EarthRadius es el radio medio terrestre en metros.
	EarthRadius = 6371000.0
	// DefaultRadius es el radio permitido alrededor de una orden, en metros.
	DefaultRadius = 100.0
)

// Point es una coordenada en grados decimales.
type Point struct {
	Lat float64 `json:"latitud"`
	Lng float64 `json:"longitud"`
}

func (p Point) Validate() error {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) {
		return fmt.Errorf("coordenada inválida: %v", p)
	}
	if p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitud fuera de rango: %f", p.Lat)
	}
	if p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("longitud fuera de rango: %f", p.Lng)
	}
	return nil
}

// Distance devuelve la distancia haversine entre a y b en metros.
func Distance(a, b Point) float64 {
	lat1 := radians(a.Lat)
	lat2 := radians(b.Lat)
	dLat := radians(b.Lat - a.Lat)
	dLng := radians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	// h puede exceder 1 por redondeo en puntos antipodales.
	h = math.Min(1, h)
	return 2 * EarthRadius * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Fence es un círculo permitido alrededor de Center.
type Fence struct {
	Center Point
	Radius float64
}

// NewFence usa DefaultRadius cuando radius no es positivo.
func NewFence(center Point, radius float64) Fence {
	if radius <= 0 {
		radius = DefaultRadius
	}
	return Fence{Center: center, Radius: radius}
}

type Result struct {
	Allowed  bool    `json:"permitido"`
	Distance float64 `json:"distancia"`
	Radius   float64 `json:"radio"`
}

// Check admite p si su distancia al centro es menor o igual al radio.
func (f Fence) Check(p Point) Result {
	d := Distance(f.Center, p)
	return Result{Allowed: d <= f.Radius, Distance: d, Radius: f.Radius}
}
