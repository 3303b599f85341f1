package seeders

import (
	"context"
	"fmt"
	"log"

	"clinical-service/pkg/utils"

	"github.com/jackc/pgx/v5/pgxpool"
)

func seedUsuarios(ctx context.Context, db *pgxpool.Pool) error {
	hash, err := utils.HashPassword(demoPassword)
	if err != nil {
		return fmt.Errorf("no se pudo generar el hash: %w", err)
	}

	for _, u := range usuariosData {
		tag, err := db.Exec(ctx, `INSERT INTO usuarios (nombre, email, password_hash, rol)
			VALUES ($1, $2, $3, $4) ON CONFLICT (email) DO NOTHING`, u.Nombre, u.Email, hash, u.Rol)
		if err != nil {
			return fmt.Errorf("usuario %s: %w", u.Email, err)
		}
		if tag.RowsAffected() == 0 {
			log.Printf("  - %s ya existe, se omite", u.Email)
			continue
		}
		log.Printf("  - %s (%s)", u.Email, u.Rol)
	}
	return nil
}
