package repositories

import (
	"context"

	"clinical-service/internal/entities"
	"clinical-service/pkg/constants"
	"clinical-service/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const solicitudServicioTable = "solicitudes_servicio"

var solicitudServicioColumns = []string{
	"id", "equipo_id", "solicitante_id", "descripcion", "prioridad", "estado", "created_at", "updated_at",
}

var solicitudServicioListSpec = listSpec{
	filters: map[string]string{
		"estado":         "estado",
		"prioridad":      "prioridad",
		"equipo_id":      "equipo_id",
		"solicitante_id": "solicitante_id",
	},
	sortable:    map[string]bool{"id": true, "created_at": true, "prioridad": true},
	search:      []string{"descripcion"},
	defaultSort: "created_at DESC",
}

type SolicitudServicioRepositoryInterface interface {
	GetAll(ctx context.Context, filter types.Filter) ([]entities.SolicitudServicio, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.SolicitudServicio, error)
	Create(ctx context.Context, s entities.SolicitudServicio) (uint64, error)
	Update(ctx context.Context, s entities.SolicitudServicio) error
	UpdateEstado(ctx context.Context, id uint64, estado constants.Estado) error
}

type SolicitudServicioRepository struct {
	storage *pgxpool.Pool
}

func NewSolicitudServicioRepository(storage *pgxpool.Pool) SolicitudServicioRepositoryInterface {
	return &SolicitudServicioRepository{storage: storage}
}

func (r *SolicitudServicioRepository) GetAll(ctx context.Context, filter types.Filter) ([]entities.SolicitudServicio, uint64, error) {
	return list[entities.SolicitudServicio](ctx, conn(ctx, r.storage), solicitudServicioTable, solicitudServicioColumns, solicitudServicioListSpec, filter)
}

func (r *SolicitudServicioRepository) FindByID(ctx context.Context, id uint64) (*entities.SolicitudServicio, error) {
	return selectOne[entities.SolicitudServicio](ctx, conn(ctx, r.storage),
		psql.Select(solicitudServicioColumns...).From(solicitudServicioTable).Where(sq.Eq{"id": id}))
}

func (r *SolicitudServicioRepository) Create(ctx context.Context, s entities.SolicitudServicio) (uint64, error) {
	return insertReturningID(ctx, conn(ctx, r.storage), psql.Insert(solicitudServicioTable).
		Columns("equipo_id", "solicitante_id", "descripcion", "prioridad", "estado").
		Values(s.EquipoID, s.SolicitanteID, s.Descripcion, s.Prioridad, string(s.Estado)))
}

func (r *SolicitudServicioRepository) Update(ctx context.Context, s entities.SolicitudServicio) error {
	return execAffecting(ctx, conn(ctx, r.storage), psql.Update(solicitudServicioTable).
		Set("descripcion", s.Descripcion).
		Set("prioridad", s.Prioridad).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": s.ID}))
}

func (r *SolicitudServicioRepository) UpdateEstado(ctx context.Context, id uint64, estado constants.Estado) error {
	return execAffecting(ctx, conn(ctx, r.storage), psql.Update(solicitudServicioTable).
		Set("estado", string(estado)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}))
}
