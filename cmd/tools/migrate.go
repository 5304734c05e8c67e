package main

import (
	"flag"
	"log"

	"github.com/baxromumarov/seo-auditor/internal/config"
	"github.com/baxromumarov/seo-auditor/internal/store"
)

func main() {
	dbURL := flag.String("db", "", "Database URL (defaults to DATABASE_URL)")
	schema := flag.String("schema", config.DefaultSchemaPath, "Path to schema file")
	flag.Parse()

	if *dbURL == "" {
		cfg, err := config.Load("")
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		*dbURL = cfg.DatabaseURL
	}
	if *dbURL == "" {
		log.Fatal("No database URL: pass -db or set DATABASE_URL")
	}

	db, err := store.NewStore(*dbURL)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations(*schema); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations executed successfully")
}
