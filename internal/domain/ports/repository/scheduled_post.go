package repository

import (
	"context"
	"time"

	"content-studio/internal/domain/model"
)

// PostFilter narrows List results. Zero values match everything.
type PostFilter struct {
	Status   model.PostStatus
	Platform string
}

type ScheduledPostRepository interface {
	Create(ctx context.Context, tx Tx, post *model.ScheduledPost) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.ScheduledPost, error)
	List(ctx context.Context, tx Tx, filter PostFilter) ([]*model.ScheduledPost, error)

	// ListDue returns posts still in status scheduled whose fire time is at
	// or before the given instant, oldest first.
	ListDue(ctx context.Context, tx Tx, before time.Time, limit int) ([]*model.ScheduledPost, error)

	// UpdateStatus performs the conditional transition from -> to. When the
	// row exists but is no longer in `from`, it returns domain.ErrConflict;
	// when the row does not exist, domain.ErrNotFound. postedAt and lastErr
	// overwrite the stored values (nil / empty clears them).
	UpdateStatus(ctx context.Context, tx Tx, id string, from, to model.PostStatus, postedAt *time.Time, lastErr string) error

	Delete(ctx context.Context, tx Tx, id string) error
}
