package repository

import (
	"context"

	"content-studio/internal/domain/model"
)

type TagRepository interface {
	ListActive(ctx context.Context, tx Tx) ([]*model.Tag, error)
	TagsForImage(ctx context.Context, tx Tx, storagePath string) ([]*model.Tag, error)

	// TagsForAllImages returns every image->tags association in one pass,
	// keyed by storage path. Used by the gallery listing.
	TagsForAllImages(ctx context.Context, tx Tx) (map[string][]*model.Tag, error)

	AddImageTags(ctx context.Context, tx Tx, storagePath string, tagIDs []int64) error
	RemoveImageTag(ctx context.Context, tx Tx, storagePath string, tagID int64) error
}
