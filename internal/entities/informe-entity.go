package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

// ConteoEstado es el número de registros de una tabla en un estado.
type ConteoEstado struct {
	Estado string `json:"estado" db:"estado"`
	Total  int64  `json:"total" db:"total"`
}

type Resumen struct {
	Ordenes             []ConteoEstado `json:"ordenes"`
	SolicitudesServicio []ConteoEstado `json:"solicitudes_servicio"`
	Visitas             []ConteoEstado `json:"visitas"`
	SolicitudesBodega   []ConteoEstado `json:"solicitudes_bodega"`
	SolicitudesBaja     []ConteoEstado `json:"solicitudes_baja"`
	EquiposPorEstado    []ConteoEstado `json:"equipos"`
}

type VisitaReportFilter struct {
	Desde     null.Time   `json:"desde"`
	Hasta     null.Time   `json:"hasta"`
	TecnicoID null.Uint64 `json:"tecnico_id"`
}

// VisitaReporteRow es una fila del informe de visitas.
type VisitaReporteRow struct {
	VisitaID          uint64       `json:"visita_id" db:"visita_id"`
	OrdenCodigo       string       `json:"orden_codigo" db:"orden_codigo"`
	Equipo            string       `json:"equipo" db:"equipo"`
	Serie             string       `json:"serie" db:"serie"`
	Tecnico           string       `json:"tecnico" db:"tecnico"`
	Estado            string       `json:"estado" db:"estado"`
	FechaProgramada   time.Time    `json:"fecha_programada" db:"fecha_programada"`
	CheckInAt         null.Time    `json:"check_in_at" db:"check_in_at"`
	CheckOutAt        null.Time    `json:"check_out_at" db:"check_out_at"`
	CheckInDistancia  null.Float64 `json:"check_in_distancia" db:"check_in_distancia"`
	CheckOutDistancia null.Float64 `json:"check_out_distancia" db:"check_out_distancia"`
	Observaciones     null.String  `json:"observaciones" db:"observaciones"`
}

// DuracionMinutos es el tiempo en sitio, o 0 si la visita no cerró.
func (r VisitaReporteRow) DuracionMinutos() float64 {
	if !r.CheckInAt.Valid || !r.CheckOutAt.Valid {
		return 0
	}
	return r.CheckOutAt.Time.Sub(r.CheckInAt.Time).Minutes()
}
