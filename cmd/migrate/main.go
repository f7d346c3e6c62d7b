package main

import (
	"context"
	"flag"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"inkwell/internal/config"
	"inkwell/internal/repository/postgres"
)

// Schema setup tool. The CHECK constraints deliberately duplicate the
// API-level validation: a direct data-layer write must be rejected by
// the same rules the handlers enforce.
func main() {
	dropTables := flag.Bool("drop-tables", false, "Drop all tables before creating (fresh start)")
	flag.Parse()

	_ = godotenv.Load()

	cfg := config.Load()

	if cfg.Environment == "prod" && *dropTables {
		log.Fatalf("BLOCKED: cannot drop tables in production environment")
	}

	ctx := context.Background()
	pool, err := postgres.CreateConnectionPool(ctx, cfg.SupabaseDBURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	tables := postgres.NewTableNames(cfg.TablePrefix)

	if *dropTables {
		log.Println("Dropping tables...")
		if err := dropAll(ctx, pool, tables); err != nil {
			log.Fatalf("Failed to drop tables: %v", err)
		}
	}

	log.Printf("Ensuring schema (prefix: %s)...", cfg.TablePrefix)
	if err := runSchema(ctx, pool, tables, cfg.TablePrefix); err != nil {
		log.Fatalf("Failed to run schema: %v", err)
	}
	log.Println("Schema ready")
}

func dropAll(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames) error {
	for _, table := range []string{tables.Pages, tables.Folders} {
		if _, err := pool.Exec(ctx, "DROP TABLE IF EXISTS "+table+" CASCADE"); err != nil {
			return err
		}
	}
	return nil
}

func runSchema(ctx context.Context, pool *pgxpool.Pool, tables *postgres.TableNames, prefix string) error {
	if _, err := pool.Exec(ctx, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`); err != nil {
		return err
	}

	createFolders := `
		CREATE TABLE IF NOT EXISTS ` + tables.Folders + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			owner_id UUID NOT NULL,
			parent_id UUID REFERENCES ` + tables.Folders + `(id) ON DELETE SET NULL,
			name VARCHAR(100) NOT NULL CHECK (name ~ '^[a-zA-Z0-9 _-]+$'),
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			UNIQUE(owner_id, parent_id, name)
		)
	`
	if _, err := pool.Exec(ctx, createFolders); err != nil {
		return err
	}

	createPages := `
		CREATE TABLE IF NOT EXISTS ` + tables.Pages + ` (
			id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
			owner_id UUID NOT NULL,
			slug VARCHAR(200) NOT NULL CHECK (slug ~ '^[a-zA-Z0-9_-]+$'),
			markdown TEXT NOT NULL DEFAULT '',
			folder_id UUID REFERENCES ` + tables.Folders + `(id) ON DELETE SET NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			deleted_at TIMESTAMPTZ,
			UNIQUE(owner_id, slug)
		)
	`
	if _, err := pool.Exec(ctx, createPages); err != nil {
		return err
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `folders_owner_parent ON ` + tables.Folders + `(owner_id, parent_id)`,
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_` + prefix + `folders_root_unique ON ` + tables.Folders + `(owner_id, name) WHERE parent_id IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `pages_owner_active ON ` + tables.Pages + `(owner_id, updated_at DESC) WHERE deleted_at IS NULL`,
		`CREATE INDEX IF NOT EXISTS idx_` + prefix + `pages_slug_active ON ` + tables.Pages + `(slug) WHERE deleted_at IS NULL`,
	}

	for _, indexSQL := range indexes {
		if _, err := pool.Exec(ctx, indexSQL); err != nil {
			return err
		}
	}

	return nil
}
