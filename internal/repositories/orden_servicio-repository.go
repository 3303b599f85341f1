package repositories

import (
	"context"

	"clinical-service/internal/entities"
	"clinical-service/pkg/constants"
	"clinical-service/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ordenTable = "ordenes_servicio"

var ordenColumns = []string{
	"id", "codigo", "equipo_id", "solicitud_id", "tecnico_id", "descripcion", "prioridad",
	"estado", "latitud", "longitud", "qr_token::text AS qr_token", "fecha_programada",
	"created_at", "updated_at",
}

var ordenListSpec = listSpec{
	filters: map[string]string{
		"estado":       "estado",
		"tecnico_id":   "tecnico_id",
		"equipo_id":    "equipo_id",
		"prioridad":    "prioridad",
		"solicitud_id": "solicitud_id",
	},
	sortable:    map[string]bool{"id": true, "codigo": true, "created_at": true, "fecha_programada": true, "prioridad": true},
	search:      []string{"codigo", "descripcion"},
	defaultSort: "created_at DESC",
}

// El código se deriva del id en la misma sentencia.
const insertOrdenSQL = `
WITH seq AS (SELECT nextval(pg_get_serial_sequence('ordenes_servicio', 'id')) AS id)
INSERT INTO ordenes_servicio
	(id, codigo, equipo_id, solicitud_id, tecnico_id, descripcion, prioridad, estado, latitud, longitud, qr_token, fecha_programada)
SELECT seq.id, 'OS-' || LPAD(seq.id::text, 6, '0'), $1, $2, $3, $4, $5, $6, $7, $8, $9::uuid, $10
FROM seq
RETURNING id`

type OrdenServicioRepositoryInterface interface {
	GetAll(ctx context.Context, filter types.Filter) ([]entities.OrdenServicio, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.OrdenServicio, error)
	FindByQRToken(ctx context.Context, token string) (*entities.OrdenServicio, error)
	Create(ctx context.Context, o entities.OrdenServicio) (uint64, error)
	Update(ctx context.Context, o entities.OrdenServicio) error
	UpdateEstado(ctx context.Context, id uint64, estado constants.Estado) error
	Delete(ctx context.Context, id uint64) error
}

type OrdenServicioRepository struct {
	storage *pgxpool.Pool
}

func NewOrdenServicioRepository(storage *pgxpool.Pool) OrdenServicioRepositoryInterface {
	return &OrdenServicioRepository{storage: storage}
}

func (r *OrdenServicioRepository) GetAll(ctx context.Context, filter types.Filter) ([]entities.OrdenServicio, uint64, error) {
	return list[entities.OrdenServicio](ctx, conn(ctx, r.storage), ordenTable, ordenColumns, ordenListSpec, filter)
}

func (r *OrdenServicioRepository) FindByID(ctx context.Context, id uint64) (*entities.OrdenServicio, error) {
	return selectOne[entities.OrdenServicio](ctx, conn(ctx, r.storage),
		psql.Select(ordenColumns...).From(ordenTable).Where(sq.Eq{"id": id}))
}

// FindByQRToken compara como texto para que un token mal formado sea un
// simple "no encontrado" y no un error de conversión.
func (r *OrdenServicioRepository) FindByQRToken(ctx context.Context, token string) (*entities.OrdenServicio, error) {
	return selectOne[entities.OrdenServicio](ctx, conn(ctx, r.storage),
		psql.Select(ordenColumns...).From(ordenTable).Where(sq.Eq{"qr_token::text": token}))
}

func (r *OrdenServicioRepository) Create(ctx context.Context, o entities.OrdenServicio) (uint64, error) {
	var id uint64
	err := conn(ctx, r.storage).QueryRow(ctx, insertOrdenSQL,
		o.EquipoID, o.SolicitudID, o.TecnicoID, o.Descripcion, o.Prioridad, string(o.Estado),
		o.Latitud, o.Longitud, o.QRToken, o.FechaProgramada,
	).Scan(&id)
	if err != nil {
		return 0, mapPgError(err)
	}
	return id, nil
}

func (r *OrdenServicioRepository) Update(ctx context.Context, o entities.OrdenServicio) error {
	return execAffecting(ctx, conn(ctx, r.storage), psql.Update(ordenTable).
		Set("tecnico_id", o.TecnicoID).
		Set("descripcion", o.Descripcion).
		Set("prioridad", o.Prioridad).
		Set("latitud", o.Latitud).
		Set("longitud", o.Longitud).
		Set("fecha_programada", o.FechaProgramada).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": o.ID}))
}

func (r *OrdenServicioRepository) UpdateEstado(ctx context.Context, id uint64, estado constants.Estado) error {
	return execAffecting(ctx, conn(ctx, r.storage), psql.Update(ordenTable).
		Set("estado", string(estado)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}))
}

func (r *OrdenServicioRepository) Delete(ctx context.Context, id uint64) error {
	return execAffecting(ctx, conn(ctx, r.storage), psql.Delete(ordenTable).Where(sq.Eq{"id": id}))
}
