package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TxManagerInterface interface {
	// RunInTransaction ejecuta fn dentro de una transacción. Los repositorios
	// que reciban el ctx de fn participan de ella.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) TxManagerInterface {
	return &TxManager{pool: pool}
}

func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}

	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("no se pudo iniciar la transacción: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		} else if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil {
				err = fmt.Errorf("error al revertir la transacción: %v (error original: %w)", rbErr, err)
			}
		} else {
			if err = tx.Commit(ctx); err != nil {
				err = fmt.Errorf("error al confirmar la transacción: %w", err)
			}
		}
	}()

	err = fn(context.WithValue(ctx, txKey{}, tx))
	return err
}
