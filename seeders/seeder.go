package seeders

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SeedUsuarios crea los usuarios de demostración.
func SeedUsuarios(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Creando usuarios de demostración...")
	if err := seedUsuarios(ctx, db); err != nil {
		log.Fatalf("Error creando usuarios: %v", err)
	}
	log.Println("Usuarios listos.")
}

// SeedDemo carga equipos, órdenes con su QR y una visita programada por orden.
// Requiere los usuarios.
func SeedDemo(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Cargando datos de demostración...")
	if err := seedEquipos(ctx, db); err != nil {
		log.Fatalf("Error cargando equipos: %v", err)
	}
	if err := seedOrdenes(ctx, db); err != nil {
		log.Fatalf("Error cargando órdenes: %v", err)
	}
	log.Println("Datos de demostración listos.")
}
