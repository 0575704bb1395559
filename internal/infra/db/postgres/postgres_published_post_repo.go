package postgres

import (
	"context"
	"fmt"

	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Ensure interface compliance
var _ repository.PublishedPostRepository = (*PostgresPublishedPostRepo)(nil)

type PostgresPublishedPostRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresPublishedPostRepo(pool *pgxpool.Pool) *PostgresPublishedPostRepo {
	return &PostgresPublishedPostRepo{pool: pool}
}

func (r *PostgresPublishedPostRepo) Save(ctx context.Context, tx repository.Tx, post *model.PublishedPost) error {
	const sql = `
INSERT INTO published_posts (id, platform_post_id, platform, caption, image_url, caption_length, posted_at)
VALUES ($1, $2, $3, $4, $5, $6, $7);
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, sql,
		post.ID, post.PlatformPostID, post.Platform, post.Caption,
		post.ImageURL, post.CaptionLength, post.PostedAt,
	)
	if err != nil {
		return fmt.Errorf("Save published post: %w", err)
	}
	return nil
}

func (r *PostgresPublishedPostRepo) List(ctx context.Context, tx repository.Tx, limit int) ([]*model.PublishedPost, error) {
	const sql = `
SELECT id, platform_post_id, platform, caption, image_url, caption_length, posted_at
  FROM published_posts
 ORDER BY posted_at DESC
 LIMIT $1;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, sql, limit)
	if err != nil {
		return nil, fmt.Errorf("List published posts: %w", err)
	}
	defer rows.Close()
	var out []*model.PublishedPost
	for rows.Next() {
		var p model.PublishedPost
		if err := rows.Scan(&p.ID, &p.PlatformPostID, &p.Platform, &p.Caption, &p.ImageURL, &p.CaptionLength, &p.PostedAt); err != nil {
			return nil, err
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}
