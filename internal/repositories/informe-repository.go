package repositories

import (
	"context"
	"fmt"

	"clinical-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type InformeRepositoryInterface interface {
	CountByEstado(ctx context.Context, table string) ([]entities.ConteoEstado, error)
	GetVisitasReport(ctx context.Context, filter entities.VisitaReportFilter) ([]entities.VisitaReporteRow, error)
}

// Tablas que admite CountByEstado.
var conteoTables = map[string]bool{
	ordenTable:             true,
	solicitudServicioTable: true,
	visitaTable:            true,
	solicitudBodegaTable:   true,
	solicitudBajaTable:     true,
	equipoTable:            true,
}

type InformeRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewInformeRepository(storage *pgxpool.Pool, logger *zap.Logger) InformeRepositoryInterface {
	return &InformeRepository{storage: storage, logger: logger}
}

func (r *InformeRepository) CountByEstado(ctx context.Context, table string) ([]entities.ConteoEstado, error) {
	if !conteoTables[table] {
		return nil, fmt.Errorf("tabla no permitida para el conteo: %s", table)
	}
	query, args, err := psql.Select("estado", "COUNT(*) AS total").
		From(table).
		GroupBy("estado").
		OrderBy("estado").
		ToSql()
	if err != nil {
		return nil, err
	}
	return selectMany[entities.ConteoEstado](ctx, conn(ctx, r.storage), query, args...)
}

func (r *InformeRepository) GetVisitasReport(ctx context.Context, filter entities.VisitaReportFilter) ([]entities.VisitaReporteRow, error) {
	b := psql.Select(
		"v.id AS visita_id",
		"o.codigo AS orden_codigo",
		"e.nombre AS equipo",
		"e.serie AS serie",
		"u.nombre AS tecnico",
		"v.estado AS estado",
		"v.fecha_programada",
		"v.check_in_at",
		"v.check_out_at",
		"v.check_in_distancia",
		"v.check_out_distancia",
		"v.observaciones",
	).
		From("visitas v").
		Join("ordenes_servicio o ON o.id = v.orden_id").
		Join("equipos e ON e.id = o.equipo_id").
		Join("usuarios u ON u.id = v.tecnico_id").
		OrderBy("v.fecha_programada DESC", "v.id DESC")

	if filter.Desde.Valid {
		b = b.Where(sq.GtOrEq{"v.fecha_programada": filter.Desde.Time})
	}
	if filter.Hasta.Valid {
		b = b.Where(sq.Lt{"v.fecha_programada": filter.Hasta.Time})
	}
	if filter.TecnicoID.Valid {
		b = b.Where(sq.Eq{"v.tecnico_id": filter.TecnicoID.Uint64})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := selectMany[entities.VisitaReporteRow](ctx, conn(ctx, r.storage), query, args...)
	if err != nil {
		r.logger.Error("InformeRepository: error al leer el informe de visitas", zap.Error(err))
		return nil, err
	}
	return rows, nil
}
