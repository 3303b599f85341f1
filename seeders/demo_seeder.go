package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"clinical-service/internal/entities"
	"clinical-service/pkg/constants"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func seedEquipos(ctx context.Context, db *pgxpool.Pool) error {
	for _, e := range equiposData {
		_, err := db.Exec(ctx, `INSERT INTO equipos (nombre, serie, marca, modelo, ubicacion, latitud, longitud, estado)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8) ON CONFLICT (serie) DO NOTHING`,
			e.Nombre, e.Serie, e.Marca, e.Modelo, e.Ubicacion, e.Latitud, e.Longitud, constants.EquipoOperativo)
		if err != nil {
			return fmt.Errorf("equipo %s: %w", e.Serie, err)
		}
	}
	log.Printf("  - %d equipos", len(equiposData))
	return nil
}

// seedOrdenes crea cada orden con su visita en una transacción. Una orden
// que ya existe para el equipo no se duplica.
func seedOrdenes(ctx context.Context, db *pgxpool.Pool) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	manana := time.Now().Add(24 * time.Hour).Truncate(time.Hour)
	for _, o := range ordenesData {
		var equipoID uint64
		var lat, lng float64
		err := tx.QueryRow(ctx, `SELECT id, latitud, longitud FROM equipos WHERE serie = $1`, o.Serie).Scan(&equipoID, &lat, &lng)
		if err != nil {
			return fmt.Errorf("equipo %s no encontrado: %w", o.Serie, err)
		}
		var tecnicoID uint64
		if err := tx.QueryRow(ctx, `SELECT id FROM usuarios WHERE email = $1`, o.Tecnico).Scan(&tecnicoID); err != nil {
			return fmt.Errorf("técnico %s no encontrado (ejecute -usuarios): %w", o.Tecnico, err)
		}

		var existente uint64
		err = tx.QueryRow(ctx, `SELECT id FROM ordenes_servicio WHERE equipo_id = $1 AND descripcion = $2`, equipoID, o.Descripcion).Scan(&existente)
		if err == nil {
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		var ordenID uint64
		err = tx.QueryRow(ctx, `SELECT nextval(pg_get_serial_sequence('ordenes_servicio', 'id'))`).Scan(&ordenID)
		if err != nil {
			return err
		}
		token := uuid.New()
		_, err = tx.Exec(ctx, `INSERT INTO ordenes_servicio
			(id, codigo, equipo_id, tecnico_id, descripcion, prioridad, estado, latitud, longitud, qr_token, fecha_programada)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
			ordenID, entities.CodigoOrden(ordenID), equipoID, tecnicoID, o.Descripcion, o.Prioridad,
			constants.EstadoPendiente, lat, lng, token, manana)
		if err != nil {
			return fmt.Errorf("orden para %s: %w", o.Serie, err)
		}
		_, err = tx.Exec(ctx, `INSERT INTO visitas (orden_id, tecnico_id, estado, fecha_programada) VALUES ($1, $2, $3, $4)`,
			ordenID, tecnicoID, constants.EstadoProgramada, manana)
		if err != nil {
			return fmt.Errorf("visita para %s: %w", entities.CodigoOrden(ordenID), err)
		}
		log.Printf("  - %s (%s) QR %s", entities.CodigoOrden(ordenID), o.Serie, token)
	}
	return tx.Commit(ctx)
}
