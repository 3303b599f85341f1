package services

import (
	"context"
	"fmt"
	"time"

	"clinical-service/internal/dto"
	"clinical-service/internal/entities"
	"clinical-service/internal/repositories"
	"clinical-service/pkg/cache"
	apperrors "clinical-service/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const (
	informesCachePrefix = "informes"
	visitasSheet        = "Visitas"
	reportDateLayout    = "2006-01-02"
	reportTimeLayout    = "2006-01-02 15:04"
)

var visitasReportHeaders = []interface{}{
	"Visita", "Orden", "Equipo", "Serie", "Técnico", "Estado", "Programada",
	"Check-in", "Check-out", "Minutos en sitio", "Distancia entrada (m)", "Distancia salida (m)", "Observaciones",
}

type InformeService struct {
	*BaseService
	informeRepository repositories.InformeRepositoryInterface
}

func NewInformeService(base *BaseService, informeRepository repositories.InformeRepositoryInterface) *InformeService {
	return &InformeService{BaseService: base, informeRepository: informeRepository}
}

// Resumen cuenta los registros de cada tabla por estado.
func (s *InformeService) Resumen(ctx context.Context) (*entities.Resumen, error) {
	return memoize(ctx, s.BaseService, informesCachePrefix+":resumen", func(ctx context.Context) (*entities.Resumen, error) {
		r := &entities.Resumen{}
		targets := []struct {
			table string
			dst   *[]entities.ConteoEstado
		}{
			{"ordenes_servicio", &r.Ordenes},
			{"solicitudes_servicio", &r.SolicitudesServicio},
			{"visitas", &r.Visitas},
			{"solicitudes_bodega", &r.SolicitudesBodega},
			{"solicitudes_baja", &r.SolicitudesBaja},
			{"equipos", &r.EquiposPorEstado},
		}
		for _, t := range targets {
			conteo, err := s.informeRepository.CountByEstado(ctx, t.table)
			if err != nil {
				s.logger.Error("Error al contar por estado", zap.String("tabla", t.table), zap.Error(err))
				return nil, err
			}
			*t.dst = conteo
		}
		return r, nil
	})
}

func (s *InformeService) Visitas(ctx context.Context, query dto.VisitaReportQueryDTO) ([]entities.VisitaReporteRow, error) {
	filter, err := parseVisitaReportFilter(query)
	if err != nil {
		return nil, err
	}
	return memoize(ctx, s.BaseService, cache.Key(informesCachePrefix+":visitas", filter), func(ctx context.Context) ([]entities.VisitaReporteRow, error) {
		return s.informeRepository.GetVisitasReport(ctx, filter)
	})
}

// VisitasWorkbook arma el informe de visitas como libro XLSX.
func (s *InformeService) VisitasWorkbook(ctx context.Context, query dto.VisitaReportQueryDTO) (*excelize.File, error) {
	rows, err := s.Visitas(ctx, query)
	if err != nil {
		return nil, err
	}
	return buildVisitasWorkbook(rows)
}

func buildVisitasWorkbook(rows []entities.VisitaReporteRow) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", visitasSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(visitasSheet, "A1", &visitasReportHeaders); err != nil {
		return nil, err
	}
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(visitasSheet, "A1", "M1", style); err != nil {
		return nil, err
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []interface{}{
			r.VisitaID,
			r.OrdenCodigo,
			r.Equipo,
			r.Serie,
			r.Tecnico,
			r.Estado,
			r.FechaProgramada.Format(reportTimeLayout),
			formatNullTime(r.CheckInAt),
			formatNullTime(r.CheckOutAt),
			fmt.Sprintf("%.0f", r.DuracionMinutos()),
			formatNullFloat(r.CheckInDistancia),
			formatNullFloat(r.CheckOutDistancia),
			r.Observaciones.String,
		}
		if err := f.SetSheetRow(visitasSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	_ = f.SetColWidth(visitasSheet, "B", "E", 22)
	_ = f.SetColWidth(visitasSheet, "G", "I", 18)
	_ = f.SetColWidth(visitasSheet, "M", "M", 50)
	return f, nil
}

// parseVisitaReportFilter convierte las fechas del query; hasta es inclusivo.
func parseVisitaReportFilter(q dto.VisitaReportQueryDTO) (entities.VisitaReportFilter, error) {
	var filter entities.VisitaReportFilter
	if q.Desde != "" {
		t, err := time.Parse(reportDateLayout, q.Desde)
		if err != nil {
			return filter, apperrors.NewInvalidInputError("fecha 'desde' inválida: %s", q.Desde)
		}
		filter.Desde = null.TimeFrom(t)
	}
	if q.Hasta != "" {
		t, err := time.Parse(reportDateLayout, q.Hasta)
		if err != nil {
			return filter, apperrors.NewInvalidInputError("fecha 'hasta' inválida: %s", q.Hasta)
		}
		filter.Hasta = null.TimeFrom(t.AddDate(0, 0, 1))
	}
	if filter.Desde.Valid && filter.Hasta.Valid && !filter.Desde.Time.Before(filter.Hasta.Time) {
		return filter, apperrors.NewInvalidInputError("el rango de fechas está invertido")
	}
	if q.TecnicoID > 0 {
		filter.TecnicoID = null.Uint64From(q.TecnicoID)
	}
	return filter, nil
}

func formatNullTime(t null.Time) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(reportTimeLayout)
}

func formatNullFloat(v null.Float64) string {
	if !v.Valid {
		return ""
	}
	return fmt.Sprintf("%.1f", v.Float64)
}
