package postgres

import (
	"context"
	"fmt"

	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Ensure interface compliance
var _ repository.TagRepository = (*PostgresTagRepo)(nil)

type PostgresTagRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresTagRepo(pool *pgxpool.Pool) *PostgresTagRepo {
	return &PostgresTagRepo{pool: pool}
}

const tagCols = `id, name, display_name, color, description, is_active`

func scanTag(row pgx.Row) (*model.Tag, error) {
	var t model.Tag
	if err := row.Scan(&t.ID, &t.Name, &t.DisplayName, &t.Color, &t.Description, &t.Active); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *PostgresTagRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Tag, error) {
	sql := `SELECT ` + tagCols + ` FROM product_tags WHERE is_active = true ORDER BY display_name;`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("ListActive tags: %w", err)
	}
	defer rows.Close()
	var out []*model.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresTagRepo) TagsForImage(ctx context.Context, tx repository.Tx, storagePath string) ([]*model.Tag, error) {
	sql := `
SELECT t.id, t.name, t.display_name, t.color, t.description, t.is_active
  FROM image_tags it
  JOIN product_tags t ON t.id = it.tag_id
 WHERE it.storage_path = $1
 ORDER BY t.display_name;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, sql, storagePath)
	if err != nil {
		return nil, fmt.Errorf("TagsForImage: %w", err)
	}
	defer rows.Close()
	var out []*model.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *PostgresTagRepo) TagsForAllImages(ctx context.Context, tx repository.Tx) (map[string][]*model.Tag, error) {
	sql := `
SELECT it.storage_path, t.id, t.name, t.display_name, t.color, t.description, t.is_active
  FROM image_tags it
  JOIN product_tags t ON t.id = it.tag_id;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, sql)
	if err != nil {
		return nil, fmt.Errorf("TagsForAllImages: %w", err)
	}
	defer rows.Close()
	out := make(map[string][]*model.Tag)
	for rows.Next() {
		var path string
		var t model.Tag
		if err := rows.Scan(&path, &t.ID, &t.Name, &t.DisplayName, &t.Color, &t.Description, &t.Active); err != nil {
			return nil, err
		}
		out[path] = append(out[path], &t)
	}
	return out, rows.Err()
}

func (r *PostgresTagRepo) AddImageTags(ctx context.Context, tx repository.Tx, storagePath string, tagIDs []int64) error {
	const sql = `
INSERT INTO image_tags (storage_path, tag_id, created_at)
VALUES ($1, $2, now())
ON CONFLICT (storage_path, tag_id) DO NOTHING;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	for _, id := range tagIDs {
		if _, err := ex.Exec(ctx, sql, storagePath, id); err != nil {
			return fmt.Errorf("AddImageTags: %w", err)
		}
	}
	return nil
}

func (r *PostgresTagRepo) RemoveImageTag(ctx context.Context, tx repository.Tx, storagePath string, tagID int64) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	if _, err := ex.Exec(ctx, `DELETE FROM image_tags WHERE storage_path = $1 AND tag_id = $2;`, storagePath, tagID); err != nil {
		return fmt.Errorf("RemoveImageTag: %w", err)
	}
	return nil
}
