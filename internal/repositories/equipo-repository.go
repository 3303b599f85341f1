package repositories

import (
	"context"

	"clinical-service/internal/entities"
	"clinical-service/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const equipoTable = "equipos"

var equipoColumns = []string{
	"id", "nombre", "serie", "marca", "modelo", "ubicacion",
	"latitud", "longitud", "estado", "created_at", "updated_at",
}

var equipoListSpec = listSpec{
	filters: map[string]string{
		"estado":    "estado",
		"marca":     "marca",
		"ubicacion": "ubicacion",
	},
	sortable:    map[string]bool{"id": true, "nombre": true, "serie": true, "created_at": true},
	search:      []string{"nombre", "serie", "modelo"},
	defaultSort: "id DESC",
}

type EquipoRepositoryInterface interface {
	GetAll(ctx context.Context, filter types.Filter) ([]entities.Equipo, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Equipo, error)
	Create(ctx context.Context, e entities.Equipo) (uint64, error)
	Update(ctx context.Context, e entities.Equipo) error
	UpdateEstado(ctx context.Context, id uint64, estado string) error
	Delete(ctx context.Context, id uint64) error
}

type EquipoRepository struct {
	storage *pgxpool.Pool
}

func NewEquipoRepository(storage *pgxpool.Pool) EquipoRepositoryInterface {
	return &EquipoRepository{storage: storage}
}

func (r *EquipoRepository) GetAll(ctx context.Context, filter types.Filter) ([]entities.Equipo, uint64, error) {
	return list[entities.Equipo](ctx, conn(ctx, r.storage), equipoTable, equipoColumns, equipoListSpec, filter)
}

func (r *EquipoRepository) FindByID(ctx context.Context, id uint64) (*entities.Equipo, error) {
	return selectOne[entities.Equipo](ctx, conn(ctx, r.storage),
		psql.Select(equipoColumns...).From(equipoTable).Where(sq.Eq{"id": id}))
}

func (r *EquipoRepository) Create(ctx context.Context, e entities.Equipo) (uint64, error) {
	return insertReturningID(ctx, conn(ctx, r.storage), psql.Insert(equipoTable).
		Columns("nombre", "serie", "marca", "modelo", "ubicacion", "latitud", "longitud", "estado").
		Values(e.Nombre, e.Serie, e.Marca, e.Modelo, e.Ubicacion, e.Latitud, e.Longitud, e.Estado))
}

func (r *EquipoRepository) Update(ctx context.Context, e entities.Equipo) error {
	return execAffecting(ctx, conn(ctx, r.storage), psql.Update(equipoTable).
		Set("nombre", e.Nombre).
		Set("serie", e.Serie).
		Set("marca", e.Marca).
		Set("modelo", e.Modelo).
		Set("ubicacion", e.Ubicacion).
		Set("latitud", e.Latitud).
		Set("longitud", e.Longitud).
		Set("estado", e.Estado).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": e.ID}))
}

func (r *EquipoRepository) UpdateEstado(ctx context.Context, id uint64, estado string) error {
	return execAffecting(ctx, conn(ctx, r.storage), psql.Update(equipoTable).
		Set("estado", estado).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}))
}

func (r *EquipoRepository) Delete(ctx context.Context, id uint64) error {
	return execAffecting(ctx, conn(ctx, r.storage), psql.Delete(equipoTable).Where(sq.Eq{"id": id}))
}
