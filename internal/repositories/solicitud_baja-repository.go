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
	solicitudBajaTable = "solicitudes_baja"
	evidenciaTable     = "solicitudes_baja_evidencias"
)

var solicitudBajaColumns = []string{
	"id", "equipo_id", "solicitante_id", "motivo", "justificacion", "estado", "resuelta_at",
	"created_at", "updated_at",
}

var evidenciaColumns = []string{"id", "solicitud_id", "url", "nombre", "created_at"}

var solicitudBajaListSpec = listSpec{
	filters: map[string]string{
		"estado":    "estado",
		"equipo_id": "equipo_id",
	},
	sortable:    map[string]bool{"id": true, "created_at": true},
	search:      []string{"motivo", "justificacion"},
	defaultSort: "created_at DESC",
}

type SolicitudBajaRepositoryInterface interface {
	GetAll(ctx context.Context, filter types.Filter) ([]entities.SolicitudBaja, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.SolicitudBaja, error)
	Create(ctx context.Context, s entities.SolicitudBaja) (uint64, error)
	UpdateEstado(ctx context.Context, id uint64, estado constants.Estado) error
	AddEvidencia(ctx context.Context, e entities.Evidencia) (uint64, error)
	FindEvidencia(ctx context.Context, solicitudID, evidenciaID uint64) (*entities.Evidencia, error)
	DeleteEvidencia(ctx context.Context, evidenciaID uint64) error
}

type SolicitudBajaRepository struct {
	storage *pgxpool.Pool
}

func NewSolicitudBajaRepository(storage *pgxpool.Pool) SolicitudBajaRepositoryInterface {
	return &SolicitudBajaRepository{storage: storage}
}

func (r *SolicitudBajaRepository) GetAll(ctx context.Context, filter types.Filter) ([]entities.SolicitudBaja, uint64, error) {
	return list[entities.SolicitudBaja](ctx, conn(ctx, r.storage), solicitudBajaTable, solicitudBajaColumns, solicitudBajaListSpec, filter)
}

func (r *SolicitudBajaRepository) FindByID(ctx context.Context, id uint64) (*entities.SolicitudBaja, error) {
	q := conn(ctx, r.storage)
	s, err := selectOne[entities.SolicitudBaja](ctx, q,
		psql.Select(solicitudBajaColumns...).From(solicitudBajaTable).Where(sq.Eq{"id": id}))
	if err != nil {
		return nil, err
	}

	query, args, err := psql.Select(evidenciaColumns...).
		From(evidenciaTable).
		Where(sq.Eq{"solicitud_id": id}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, err
	}
	s.Evidencias, err = selectMany[entities.Evidencia](ctx, q, query, args...)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (r *SolicitudBajaRepository) Create(ctx context.Context, s entities.SolicitudBaja) (uint64, error) {
	return insertReturningID(ctx, conn(ctx, r.storage), psql.Insert(solicitudBajaTable).
		Columns("equipo_id", "solicitante_id", "motivo", "justificacion", "estado").
		Values(s.EquipoID, s.SolicitanteID, s.Motivo, s.Justificacion, string(s.Estado)))
}

// UpdateEstado fija resuelta_at cuando la solicitud sale de pendiente.
func (r *SolicitudBajaRepository) UpdateEstado(ctx context.Context, id uint64, estado constants.Estado) error {
	b := psql.Update(solicitudBajaTable).
		Set("estado", string(estado)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id})
	if estado != constants.EstadoPendiente {
		b = b.Set("resuelta_at", sq.Expr("NOW()"))
	}
	return execAffecting(ctx, conn(ctx, r.storage), b)
}

func (r *SolicitudBajaRepository) AddEvidencia(ctx context.Context, e entities.Evidencia) (uint64, error) {
	return insertReturningID(ctx, conn(ctx, r.storage), psql.Insert(evidenciaTable).
		Columns("solicitud_id", "url", "nombre").
		Values(e.SolicitudID, e.URL, e.Nombre))
}

func (r *SolicitudBajaRepository) FindEvidencia(ctx context.Context, solicitudID, evidenciaID uint64) (*entities.Evidencia, error) {
	return selectOne[entities.Evidencia](ctx, conn(ctx, r.storage),
		psql.Select(evidenciaColumns...).From(evidenciaTable).
			Where(sq.Eq{"id": evidenciaID, "solicitud_id": solicitudID}))
}

func (r *SolicitudBajaRepository) DeleteEvidencia(ctx context.Context, evidenciaID uint64) error {
	return execAffecting(ctx, conn(ctx, r.storage), psql.Delete(evidenciaTable).Where(sq.Eq{"id": evidenciaID}))
}
