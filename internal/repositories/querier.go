package repositories

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "clinical-service/pkg/errors"
	"clinical-service/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

type txKey struct{}

// conn devuelve la transacción abierta por TxManager si la hay, o el pool.
func conn(ctx context.Context, pool *pgxpool.Pool) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// listSpec describe qué columnas acepta un listado para filtrar, ordenar y buscar.
type listSpec struct {
	filters     map[string]string
	sortable    map[string]bool
	search      []string
	defaultSort string
}

func (s listSpec) apply(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	if filter.Search != "" && len(s.search) > 0 {
		or := sq.Or{}
		for _, col := range s.search {
			or = append(or, sq.ILike{col: "%" + filter.Search + "%"})
		}
		b = b.Where(or)
	}
	for key, value := range filter.Filters {
		dbColumn, ok := s.filters[key]
		if !ok {
			continue
		}
		if strings.Contains(value, ",") {
			b = b.Where(sq.Eq{dbColumn: strings.Split(value, ",")})
		} else {
			b = b.Where(sq.Eq{dbColumn: value})
		}
	}
	return b
}

func (s listSpec) order(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	if filter.SortBy != "" && s.sortable[filter.SortBy] {
		direction := "ASC"
		if strings.EqualFold(filter.SortOrder, "desc") {
			direction = "DESC"
		}
		return b.OrderBy(filter.SortBy + " " + direction)
	}
	return b.OrderBy(s.defaultSort)
}

// list ejecuta COUNT y SELECT paginado con las mismas condiciones.
func list[T any](ctx context.Context, q querier, table string, columns []string, spec listSpec, filter types.Filter) ([]T, uint64, error) {
	countQuery, countArgs, err := spec.apply(psql.Select("COUNT(*)").From(table), filter).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error al construir el conteo: %w", err)
	}

	var total uint64
	if err := q.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error al contar %s: %w", table, err)
	}
	if total == 0 {
		return []T{}, 0, nil
	}

	b := spec.order(spec.apply(psql.Select(columns...).From(table), filter), filter)
	if filter.Limit > 0 {
		b = b.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		b = b.Offset(filter.Offset)
	}
	query, args, err := b.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error al construir el listado: %w", err)
	}

	items, err := selectMany[T](ctx, q, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func selectMany[T any](ctx context.Context, q querier, query string, args ...any) ([]T, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	items, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// selectOne devuelve apperrors.ErrNotFound si no hay filas.
func selectOne[T any](ctx context.Context, q querier, b sq.SelectBuilder) (*T, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	item, err := pgx.CollectOneRow(rows, pgx.RowToAddrOfStructByName[T])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return item, nil
}

// execAffecting ejecuta b y devuelve ErrNotFound si no tocó ninguna fila.
func execAffecting(ctx context.Context, q querier, b sq.Sqlizer) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return mapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func insertReturningID(ctx context.Context, q querier, b sq.InsertBuilder) (uint64, error) {
	query, args, err := b.Suffix("RETURNING id").ToSql()
	if err != nil {
		return 0, err
	}
	var id uint64
	if err := q.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return 0, mapPgError(err)
	}
	return id, nil
}

// mapPgError traduce violaciones de unicidad y de llave foránea a errores de negocio.
func mapPgError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return apperrors.NewHttpError(http.StatusConflict, "El registro ya existe", apperrors.ErrConflict, map[string]interface{}{"constraint": pgErr.ConstraintName})
		case "23503":
			return apperrors.NewHttpError(http.StatusBadRequest, "Referencia a un registro inexistente", apperrors.ErrBadRequest, map[string]interface{}{"constraint": pgErr.ConstraintName})
		}
	}
	return err
}
