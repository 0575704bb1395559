package repository

import (
	"context"

	"content-studio/internal/domain/model"
)

type PublishedPostRepository interface {
	Save(ctx context.Context, tx Tx, post *model.PublishedPost) error
	List(ctx context.Context, tx Tx, limit int) ([]*model.PublishedPost, error)
}
