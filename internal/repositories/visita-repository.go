package repositories

import (
	"context"

	"clinical-service/internal/entities"
	"clinical-service/pkg/constants"
	"clinical-service/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5/pgxpool"
)

const visitaTable = "visitas"

var visitaColumns = []string{
	"id", "orden_id", "tecnico_id", "estado", "fecha_programada",
	"check_in_at", "check_in_latitud", "check_in_longitud", "check_in_distancia",
	"check_out_at", "check_out_latitud", "check_out_longitud", "check_out_distancia",
	"observaciones", "created_at", "updated_at",
}

var visitaListSpec = listSpec{
	filters: map[string]string{
		"estado":     "estado",
		"orden_id":   "orden_id",
		"tecnico_id": "tecnico_id",
	},
	sortable:    map[string]bool{"id": true, "fecha_programada": true, "created_at": true},
	defaultSort: "fecha_programada DESC",
}

type VisitaRepositoryInterface interface {
	GetAll(ctx context.Context, filter types.Filter) ([]entities.Visita, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Visita, error)
	Create(ctx context.Context, v entities.Visita) (uint64, error)
	RegistrarCheckIn(ctx context.Context, id uint64, m entities.Marca) error
	RegistrarCheckOut(ctx context.Context, id uint64, m entities.Marca, observaciones null.String) error
	UpdateEstado(ctx context.Context, id uint64, desde, hacia constants.Estado) error
}

type VisitaRepository struct {
	storage *pgxpool.Pool
}

func NewVisitaRepository(storage *pgxpool.Pool) VisitaRepositoryInterface {
	return &VisitaRepository{storage: storage}
}

func (r *VisitaRepository) GetAll(ctx context.Context, filter types.Filter) ([]entities.Visita, uint64, error) {
	return list[entities.Visita](ctx, conn(ctx, r.storage), visitaTable, visitaColumns, visitaListSpec, filter)
}

func (r *VisitaRepository) FindByID(ctx context.Context, id uint64) (*entities.Visita, error) {
	return selectOne[entities.Visita](ctx, conn(ctx, r.storage),
		psql.Select(visitaColumns...).From(visitaTable).Where(sq.Eq{"id": id}))
}

func (r *VisitaRepository) Create(ctx context.Context, v entities.Visita) (uint64, error) {
	return insertReturningID(ctx, conn(ctx, r.storage), psql.Insert(visitaTable).
		Columns("orden_id", "tecnico_id", "estado", "fecha_programada").
		Values(v.OrdenID, v.TecnicoID, string(v.Estado), v.FechaProgramada))
}

// RegistrarCheckIn solo actúa sobre visitas programadas; una segunda marca
// concurrente no toca filas y vuelve como ErrNotFound.
func (r *VisitaRepository) RegistrarCheckIn(ctx context.Context, id uint64, m entities.Marca) error {
	return execAffecting(ctx, conn(ctx, r.storage), psql.Update(visitaTable).
		Set("estado", string(constants.EstadoEnCurso)).
		Set("check_in_at", m.At).
		Set("check_in_latitud", m.Latitud).
		Set("check_in_longitud", m.Longitud).
		Set("check_in_distancia", m.Distancia).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "estado": string(constants.EstadoProgramada)}))
}

func (r *VisitaRepository) RegistrarCheckOut(ctx context.Context, id uint64, m entities.Marca, observaciones null.String) error {
	return execAffecting(ctx, conn(ctx, r.storage), psql.Update(visitaTable).
		Set("estado", string(constants.EstadoCompletada)).
		Set("check_out_at", m.At).
		Set("check_out_latitud", m.Latitud).
		Set("check_out_longitud", m.Longitud).
		Set("check_out_distancia", m.Distancia).
		Set("observaciones", observaciones).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "estado": string(constants.EstadoEnCurso)}))
}

// UpdateEstado solo cambia la visita si sigue en el estado desde el que se
// validó la transición; si otra petición la movió antes, vuelve ErrNotFound.
func (r *VisitaRepository) UpdateEstado(ctx context.Context, id uint64, desde, hacia constants.Estado) error {
	return execAffecting(ctx, conn(ctx, r.storage), psql.Update(visitaTable).
		Set("estado", string(hacia)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id, "estado": string(desde)}))
}
