package main

import (
	"context"
	"flag"
	"log"

	"clinical-service/pkg/config"
	"clinical-service/pkg/database/postgresql"
	"clinical-service/seeders"
)

func main() {
	runUsuarios := flag.Bool("usuarios", false, "Crear los usuarios de demostración")
	runDemo := flag.Bool("demo", false, "Cargar equipos, órdenes y visitas de demostración")
	runAll := flag.Bool("all", false, "Ejecutar todos los seeders (-usuarios -demo)")
	migrate := flag.Bool("migrate", true, "Aplicar las migraciones antes de sembrar")
	flag.Parse()

	if !*runUsuarios && !*runDemo && !*runAll {
		log.Println("No se eligió ningún seeder. Flags disponibles:")
		flag.PrintDefaults()
		log.Println("Ejemplo: go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	if *migrate {
		if err := postgresql.Migrate(cfg.Postgres.DSN); err != nil {
			log.Fatalf("Error aplicando migraciones: %v", err)
		}
	}
	dbPool, err := postgresql.ConnectDB(context.Background(), cfg.Postgres.DSN)
	if err != nil {
		log.Fatalf("Error conectando a la BD: %v", err)
	}
	defer dbPool.Close()

	if *runAll || *runUsuarios {
		seeders.SeedUsuarios(dbPool)
	}
	if *runAll || *runDemo {
		seeders.SeedDemo(dbPool)
	}
	log.Println("Seeders terminados.")
}
