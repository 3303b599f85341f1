package repositories

import (
	"context"
	"strings"

	"clinical-service/internal/entities"
	"clinical-service/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
)

const usuarioTable = "usuarios"

var usuarioColumns = []string{
	"id", "nombre", "email", "password_hash", "rol", "activo", "created_at", "updated_at",
}

var usuarioListSpec = listSpec{
	filters:     map[string]string{"rol": "rol", "activo": "activo"},
	sortable:    map[string]bool{"id": true, "nombre": true, "email": true},
	search:      []string{"nombre", "email"},
	defaultSort: "nombre ASC",
}

type UsuarioRepositoryInterface interface {
	GetAll(ctx context.Context, filter types.Filter) ([]entities.Usuario, uint64, error)
	FindByID(ctx context.Context, id uint64) (*entities.Usuario, error)
	FindByEmail(ctx context.Context, email string) (*entities.Usuario, error)
	Create(ctx context.Context, u entities.Usuario) (uint64, error)
}

type UsuarioRepository struct {
	storage *pgxpool.Pool
}

func NewUsuarioRepository(storage *pgxpool.Pool) UsuarioRepositoryInterface {
	return &UsuarioRepository{storage: storage}
}

func (r *UsuarioRepository) GetAll(ctx context.Context, filter types.Filter) ([]entities.Usuario, uint64, error) {
	return list[entities.Usuario](ctx, conn(ctx, r.storage), usuarioTable, usuarioColumns, usuarioListSpec, filter)
}

func (r *UsuarioRepository) FindByID(ctx context.Context, id uint64) (*entities.Usuario, error) {
	return selectOne[entities.Usuario](ctx, conn(ctx, r.storage),
		psql.Select(usuarioColumns...).From(usuarioTable).Where(sq.Eq{"id": id}))
}

func (r *UsuarioRepository) FindByEmail(ctx context.Context, email string) (*entities.Usuario, error) {
	return selectOne[entities.Usuario](ctx, conn(ctx, r.storage),
		psql.Select(usuarioColumns...).From(usuarioTable).Where(sq.Eq{"LOWER(email)": strings.ToLower(email)}))
}

func (r *UsuarioRepository) Create(ctx context.Context, u entities.Usuario) (uint64, error) {
	return insertReturningID(ctx, conn(ctx, r.storage), psql.Insert(usuarioTable).
		Columns("nombre", "email", "password_hash", "rol", "activo").
		Values(u.Nombre, strings.ToLower(u.Email), u.PasswordHash, u.Rol, u.Activo))
}
