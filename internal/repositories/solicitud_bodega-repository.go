package repositories

import (
	"context"

	"clinical-service/internal/entities"
	"clinical-service/pkg/constants"
	"clinical-service/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	solicitudBodegaTable     = "solicitudes_bodega"
	solicitudBodegaItemTable = "solicitudes_bodega_items"
)

var solicitudBodegaColumns = []string{
	"id", "orden_id", "solicitante_id", "motivo", "estado", "created_at", "updated_at",
}

var solicitudBodegaItemColumns = []string{"id", "solicitud_id", "codigo", "descripcion", "cantidad"}

var solicitudBodegaListSpec = listSpec{
	filters: map[string]string{
		"estado":         "estado",
		"orden_id":       "orden_id",
		"solicitante_id": "solicitante_id",
	},
	sortable:    map[string]bool{"id": true, "created_at": true},
	search:      []string{"motivo"},
	defaultSort: "created_at DESC",
}

type SolicitudBodegaRepositoryInterface interface {
	GetAll(ctx context.Context, filter types.Filter) ([]entities.SolicitudBodega, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.SolicitudBodega, error)
	Create(ctx context.Context, s entities.SolicitudBodega) (uint64, error)
	AddItems(ctx context.Context, solicitudID uint64, items []entities.SolicitudBodegaItem) error
	UpdateEstado(ctx context.Context, id uint64, estado constants.Estado) error
}

type SolicitudBodegaRepository struct {
	storage *pgxpool.Pool
}

func NewSolicitudBodegaRepository(storage *pgxpool.Pool) SolicitudBodegaRepositoryInterface {
	return &SolicitudBodegaRepository{storage: storage}
}

func (r *SolicitudBodegaRepository) GetAll(ctx context.Context, filter types.Filter) ([]entities.SolicitudBodega, uint64, error) {
	return list[entities.SolicitudBodega](ctx, conn(ctx, r.storage), solicitudBodegaTable, solicitudBodegaColumns, solicitudBodegaListSpec, filter)
}

// FindByID carga la cabecera junto con sus ítems.
func (r *SolicitudBodegaRepository) FindByID(ctx context.Context, id uint64) (*entities.SolicitudBodega, error) {
	q := conn(ctx, r.storage)
	s, err := selectOne[entities.SolicitudBodega](ctx, q,
		psql.Select(solicitudBodegaColumns...).From(solicitudBodegaTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	query, args, err := psql.Select(solicitudBodegaItemColumns...).
		From(solicitudBodegaItemTable).
		Where(sq.Eq{"solicitud_id": id}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	s.Items, err = selectMany[entities.SolicitudBodegaItem](ctx, q, query, args...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SolicitudBodegaRepository) Create(ctx context.Context, s entities.SolicitudBodega) (uint64, error) {
	return insertReturningID(ctx, conn(ctx, r.storage), psql.Insert(solicitudBodegaTable).
		Columns("orden_id", "solicitante_id", "motivo", "estado").
		Values(s.OrdenID, s.SolicitanteID, s.Motivo, string(s.Estado)))
}

func (r *SolicitudBodegaRepository) AddItems(ctx context.Context, solicitudID uint64, items []entities.SolicitudBodegaItem) error {
	if len(items) == 0 {
		return nil
	}
	b := psql.Insert(solicitudBodegaItemTable).Columns("solicitud_id", "codigo", "descripcion", "cantidad")
	for _, it := range items {
		b = b.Values(solicitudID, it.Codigo, it.Descripcion, it.Cantidad)
	}
	return execAffecting(ctx, conn(ctx, r.storage), b)
}

func (r *SolicitudBodegaRepository) UpdateEstado(ctx context.Context, id uint64, estado constants.Estado) error {
	return execAffecting(ctx, conn(ctx, r.storage), psql.Update(solicitudBodegaTable).
		Set("estado", string(estado)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}))
}
