package postgres

import (
	"context"
	"fmt"
	"time"

	"content-studio/internal/domain"
	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/repository"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// Ensure interface compliance
var _ repository.ScheduledPostRepository = (*PostgresScheduledPostRepo)(nil)

type PostgresScheduledPostRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresScheduledPostRepo(pool *pgxpool.Pool) *PostgresScheduledPostRepo {
	return &PostgresScheduledPostRepo{pool: pool}
}

const scheduledPostCols = `id, title, caption, social_platforms, image_paths, scheduled_for, status, posted_at, last_error, created_at, updated_at`

func scanScheduledPost(row pgx.Row) (*model.ScheduledPost, error) {
	var p model.ScheduledPost
	err := row.Scan(
		&p.ID, &p.Title, &p.Caption, &p.SocialPlatforms, &p.ImagePaths,
		&p.ScheduledFor, &p.Status, &p.PostedAt, &p.LastError,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresScheduledPostRepo) Create(ctx context.Context, tx repository.Tx, post *model.ScheduledPost) error {
	const sql = `
INSERT INTO scheduled_posts
  (id, title, caption, social_platforms, image_paths, scheduled_for, status, last_error, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, sql,
		post.ID, post.Title, post.Caption, post.SocialPlatforms, post.ImagePaths,
		post.ScheduledFor, post.Status, post.LastError, post.CreatedAt, post.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("Create scheduled post: %w", err)
	}
	return nil
}

func (r *PostgresScheduledPostRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.ScheduledPost, error) {
	sql := `SELECT ` + scheduledPostCols + ` FROM scheduled_posts WHERE id = $1;`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	p, err := scanScheduledPost(ex.QueryRow(ctx, sql, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("FindByID scheduled post: %w", err)
	}
	return p, nil
}

func (r *PostgresScheduledPostRepo) List(ctx context.Context, tx repository.Tx, filter repository.PostFilter) ([]*model.ScheduledPost, error) {
	sql := `SELECT ` + scheduledPostCols + ` FROM scheduled_posts`
	var args []interface{}
	var where []string
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Platform != "" {
		args = append(args, filter.Platform)
		where = append(where, fmt.Sprintf("$%d = ANY(social_platforms)", len(args)))
	}
	for i, w := range where {
		if i == 0 {
			sql += " WHERE " + w
		} else {
			sql += " AND " + w
		}
	}
	sql += " ORDER BY scheduled_for ASC;"

	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("List scheduled posts: %w", err)
	}
	defer rows.Close()
	var out []*model.ScheduledPost
	for rows.Next() {
		p, err := scanScheduledPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostgresScheduledPostRepo) ListDue(ctx context.Context, tx repository.Tx, before time.Time, limit int) ([]*model.ScheduledPost, error) {
	sql := `
SELECT ` + scheduledPostCols + `
  FROM scheduled_posts
 WHERE status = $1 AND scheduled_for <= $2
 ORDER BY scheduled_for ASC
 LIMIT $3;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, sql, model.PostStatusScheduled, before, limit)
	if err != nil {
		return nil, fmt.Errorf("ListDue scheduled posts: %w", err)
	}
	defer rows.Close()
	var out []*model.ScheduledPost
	for rows.Next() {
		p, err := scanScheduledPost(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// UpdateStatus performs the conditional transition. A zero-row update means
// either a lost race (row exists in another status) or a missing row; the
// follow-up existence check disambiguates.
func (r *PostgresScheduledPostRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id string, from, to model.PostStatus, postedAt *time.Time, lastErr string) error {
	const sql = `
UPDATE scheduled_posts
   SET status = $3, posted_at = $4, last_error = $5, updated_at = now()
 WHERE id = $1 AND status = $2;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	ct, err := ex.Exec(ctx, sql, id, from, to, postedAt, lastErr)
	if err != nil {
		return fmt.Errorf("UpdateStatus scheduled post: %w", err)
	}
	if ct.RowsAffected() == 0 {
		var exists bool
		if err := ex.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM scheduled_posts WHERE id = $1);`, id).Scan(&exists); err != nil {
			return fmt.Errorf("UpdateStatus existence check: %w", err)
		}
		if exists {
			return domain.ErrConflict
		}
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresScheduledPostRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	ct, err := ex.Exec(ctx, `DELETE FROM scheduled_posts WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("Delete scheduled post: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
