package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"petpatrol/internal/domain/catalog"
)

// schemaStatements crea las tablas si no existen. mascota.post_id y
// post.mascota_id se referencian mutuamente, por eso la FK de mascota
// se agrega al final.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		user_id       BIGSERIAL PRIMARY KEY,
		email_address TEXT NOT NULL UNIQUE,
		password      TEXT NOT NULL,
		first_name    TEXT NOT NULL DEFAULT '',
		last_name     TEXT NOT NULL DEFAULT '',
		phone_number  TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS distrito (id BIGINT PRIMARY KEY, nombre TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS edad_mascota (id BIGINT PRIMARY KEY, nombre TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS sexo (id BIGINT PRIMARY KEY, nombre TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS size (id BIGINT PRIMARY KEY, nombre TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS tipo_mascota (id BIGINT PRIMARY KEY, nombre TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS tipo_post (id BIGINT PRIMARY KEY, nombre TEXT NOT NULL)`,
	`CREATE TABLE IF NOT EXISTS mascota (
		id_mascota        BIGSERIAL PRIMARY KEY,
		name_mascota      TEXT NOT NULL,
		contenido_mascota TEXT NOT NULL DEFAULT '',
		id_distrito       BIGINT NOT NULL REFERENCES distrito (id),
		id_edad           BIGINT NOT NULL REFERENCES edad_mascota (id),
		id_sexo           BIGINT NOT NULL REFERENCES sexo (id),
		id_size           BIGINT NOT NULL REFERENCES size (id),
		id_tipo           BIGINT NOT NULL REFERENCES tipo_mascota (id),
		user_id           BIGINT NOT NULL,
		post_id           BIGINT NULL,
		created_at        TIMESTAMPTZ NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS post (
		id_post    BIGSERIAL PRIMARY KEY,
		user_id    BIGINT NOT NULL,
		mascota_id BIGINT NOT NULL REFERENCES mascota (id_mascota),
		tipo_post  BIGINT NOT NULL REFERENCES tipo_post (id),
		has_image  BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMPTZ NOT NULL
	)`,
	`DO $$ BEGIN
		IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'mascota_post_id_fkey') THEN
			ALTER TABLE mascota ADD CONSTRAINT mascota_post_id_fkey FOREIGN KEY (post_id) REFERENCES post (id_post);
		END IF;
	END $$`,
	`CREATE INDEX IF NOT EXISTS post_created_at_idx ON post (created_at DESC, id_post DESC)`,
	`CREATE INDEX IF NOT EXISTS post_user_id_idx ON post (user_id)`,
}

func seedStatement(kind catalog.Kind) string {
	// kind viene de catalog.Kinds, nunca del request.
	return fmt.Sprintf(`INSERT INTO %s (id, nombre) VALUES ($1, $2) ON CONFLICT (id) DO NOTHING`, kind)
}

// Migrate crea el esquema y siembra las tablas de referencia. Es idempotente.
func Migrate(ctx context.Context, db *sql.DB) error {
	for i, stmt := range schemaStatements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}

	defaults := catalog.Defaults()
	for _, kind := range catalog.Kinds {
		stmt := seedStatement(kind)
		for _, e := range defaults[kind] {
			if _, err := db.ExecContext(ctx, stmt, e.ID, e.Name); err != nil {
				return fmt.Errorf("seed %s: %w", kind, err)
			}
		}
	}
	return nil
}
