package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"content-studio/internal/config"
	pg "content-studio/internal/infra/db/postgres"
)

// Applies the database schema and seeds the default product tag catalog.
// Safe to run repeatedly: DDL is idempotent and tags are inserted with
// ON CONFLICT DO NOTHING.

var schema = []string{
	`CREATE TABLE IF NOT EXISTS scheduled_posts (
		id               TEXT PRIMARY KEY,
		title            TEXT NOT NULL,
		caption          TEXT NOT NULL,
		social_platforms TEXT[] NOT NULL,
		image_paths      TEXT[] NOT NULL,
		scheduled_for    TIMESTAMPTZ NOT NULL,
		status           TEXT NOT NULL DEFAULT 'scheduled',
		posted_at        TIMESTAMPTZ,
		last_error       TEXT NOT NULL DEFAULT '',
		created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_scheduled_posts_due
		ON scheduled_posts (scheduled_for) WHERE status = 'scheduled'`,
	`CREATE TABLE IF NOT EXISTS product_tags (
		id           BIGSERIAL PRIMARY KEY,
		name         TEXT NOT NULL UNIQUE,
		display_name TEXT NOT NULL,
		color        TEXT NOT NULL DEFAULT '#6b7280',
		description  TEXT NOT NULL DEFAULT '',
		is_active    BOOLEAN NOT NULL DEFAULT true
	)`,
	`CREATE TABLE IF NOT EXISTS image_tags (
		storage_path TEXT NOT NULL,
		tag_id       BIGINT NOT NULL REFERENCES product_tags(id) ON DELETE CASCADE,
		created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
		UNIQUE (storage_path, tag_id)
	)`,
	`CREATE TABLE IF NOT EXISTS published_posts (
		id               TEXT PRIMARY KEY,
		platform_post_id TEXT NOT NULL,
		platform         TEXT NOT NULL,
		caption          TEXT NOT NULL,
		image_url        TEXT NOT NULL,
		caption_length   INT NOT NULL,
		posted_at        TIMESTAMPTZ NOT NULL
	)`,
}

var defaultTags = []struct {
	Name        string
	DisplayName string
	Color       string
	Description string
}{
	{"canvas", "Canvas Print", "#e90b75", "Gallery-wrapped canvas wall art"},
	{"photo-book", "Photo Book", "#8b5cf6", "Hardcover and softcover photo books"},
	{"mug", "Photo Mug", "#f59e0b", "Ceramic mugs with printed photos"},
	{"blanket", "Photo Blanket", "#10b981", "Fleece and sherpa photo blankets"},
	{"photo-prints", "Photo Prints", "#3b82f6", "Standard photo prints in all sizes"},
	{"frame", "Framed Print", "#6366f1", "Framed wall prints"},
	{"pillow", "Photo Pillow", "#ec4899", "Printed cushions and pillows"},
	{"poster", "Poster", "#14b8a6", "Large-format posters"},
}

func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*cfgPath, false)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool := pg.MustConnectPostgres(cfg.Database.URL)
	defer pool.Close()

	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			log.Fatalf("apply schema: %v", err)
		}
	}
	fmt.Println("schema applied")

	seeded := 0
	for _, t := range defaultTags {
		tag, err := pool.Exec(ctx,
			`INSERT INTO product_tags (name, display_name, color, description)
			 VALUES ($1, $2, $3, $4)
			 ON CONFLICT (name) DO NOTHING`,
			t.Name, t.DisplayName, t.Color, t.Description)
		if err != nil {
			log.Fatalf("seed tag %q: %v", t.Name, err)
		}
		seeded += int(tag.RowsAffected())
	}
	if seeded == 0 {
		fmt.Println("product tags already present. No changes.")
		return
	}
	fmt.Printf("seeded %d product tags\n", seeded)
}
