package constants

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Estado es el código de estado que se guarda en la BD y viaja en el JSON.
type Estado string

const (
	EstadoPendiente  Estado = "pendiente"
	EstadoAprobada   Estado = "aprobada"
	EstadoRechazada  Estado = "rechazada"
	EstadoEnProceso  Estado = "en_proceso"
	EstadoCompletada Estado = "completada"
	EstadoCancelada  Estado = "cancelada"
	EstadoEntregada  Estado = "entregada"

	// Visitas
	EstadoProgramada Estado = "programada"
	EstadoEnCurso    Estado = "en_curso"
)

// Códigos numéricos heredados de clientes antiguos.
var legacyCodes = map[int]Estado{
	0: EstadoPendiente,
	1: EstadoAprobada,
	2: EstadoRechazada,
	3: EstadoEnProceso,
	4: EstadoCompletada,
	5: EstadoCancelada,
	6: EstadoEntregada,
}

var known = map[Estado]bool{
	EstadoPendiente:  true,
	EstadoAprobada:   true,
	EstadoRechazada:  true,
	EstadoEnProceso:  true,
	EstadoCompletada: true,
	EstadoCancelada:  true,
	EstadoEntregada:  true,
	EstadoProgramada: true,
	EstadoEnCurso:    true,
}

func (e Estado) String() string { return string(e) }

func (e Estado) Valid() bool { return known[e] }

// ParseEstado acepta el código textual o el numérico heredado.
func ParseEstado(s string) (Estado, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if e, ok := legacyCodes[n]; ok {
			return e, nil
		}
		return "", fmt.Errorf("código de estado desconocido: %d", n)
	}
	e := Estado(s)
	if !e.Valid() {
		return "", fmt.Errorf("estado desconocido: %q", s)
	}
	return e, nil
}

func (e *Estado) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] != '"' {
		var n int
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("estado: %w", err)
		}
		parsed, err := ParseEstado(strconv.Itoa(n))
		if err != nil {
			return err
		}
		*e = parsed
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseEstado(s)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}

// Workflow describe las transiciones permitidas para un tipo de registro.
type Workflow map[Estado][]Estado

func (w Workflow) CanTransition(from, to Estado) bool {
	for _, next := range w[from] {
		if next == to {
			return true
		}
	}
	return false
}

var (
	SolicitudServicioWorkflow = Workflow{
		EstadoPendiente: {EstadoAprobada, EstadoRechazada, EstadoCancelada},
		EstadoAprobada:  {EstadoEnProceso, EstadoCancelada},
		EstadoEnProceso: {EstadoCompletada},
	}

	OrdenServicioWorkflow = Workflow{
		EstadoPendiente: {EstadoEnProceso, EstadoCancelada},
		EstadoEnProceso: {EstadoCompletada, EstadoCancelada},
	}

	VisitaWorkflow = Workflow{
		EstadoProgramada: {EstadoEnCurso, EstadoCancelada},
		EstadoEnCurso:    {EstadoCompletada},
	}

	SolicitudBodegaWorkflow = Workflow{
		EstadoPendiente: {EstadoAprobada, EstadoRechazada, EstadoCancelada},
		EstadoAprobada:  {EstadoEntregada},
	}

	SolicitudBajaWorkflow = Workflow{
		EstadoPendiente: {EstadoAprobada, EstadoRechazada, EstadoCancelada},
	}
)

// Estados del equipo.
const (
	EquipoOperativo       = "operativo"
	EquipoEnMantenimiento = "en_mantenimiento"
	EquipoDadoDeBaja      = "dado_de_baja"
)

// Prioridades.
const (
	PrioridadBaja    = "baja"
	PrioridadMedia   = "media"
	PrioridadAlta    = "alta"
	PrioridadCritica = "critica"
)

// Eventos publicados en el bus.
const (
	EventOrdenCreada          = "orden.creada"
	EventOrdenActualizada     = "orden.actualizada"
	EventSolicitudActualizada = "solicitud.actualizada"
	EventBodegaActualizada    = "bodega.actualizada"
	EventBajaActualizada      = "baja.actualizada"
	EventEquipoActualizado    = "equipo.actualizado"
	EventVisitaProgramada     = "visita.programada"
	EventVisitaCheckIn        = "visita.check_in"
	EventVisitaCheckOut       = "visita.check_out"
	EventVisitaCancelada      = "visita.cancelada"
)

// UploadContext agrupa los archivos subidos por tipo de registro.
type UploadContext string

const (
	UploadContextBaja   UploadContext = "bajas"
	UploadContextVisita UploadContext = "visitas"
)

func (uc UploadContext) String() string { return string(uc) }
