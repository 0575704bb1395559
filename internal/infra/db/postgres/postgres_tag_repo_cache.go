package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/repository"
	"content-studio/internal/infra/metrics"
	red "content-studio/internal/infra/redis"
)

var _ repository.TagRepository = (*tagRepoCacheDecorator)(nil)

// tagRepoCacheDecorator caches the active tag list and per-image tag sets.
// The full-gallery map is not cached; the gallery endpoint is the only
// caller and its freshness matters more than its latency.
type tagRepoCacheDecorator struct {
	inner repository.TagRepository
	cache red.RedisClient
	ttl   time.Duration
}

func NewTagRepoCacheDecorator(inner repository.TagRepository, cache red.RedisClient, ttl time.Duration) repository.TagRepository {
	return &tagRepoCacheDecorator{inner: inner, cache: cache, ttl: ttl}
}

const tagsActiveKey = "tags:active"

func imageTagsKey(storagePath string) string {
	return fmt.Sprintf("tags:image:%s", storagePath)
}

func (d *tagRepoCacheDecorator) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Tag, error) {
	val, err := d.cache.Get(ctx, tagsActiveKey)
	if err == nil {
		var tags []*model.Tag
		if json.Unmarshal([]byte(val), &tags) == nil {
			metrics.IncCacheRequest("tags", "hit")
			return tags, nil
		}
	}

	metrics.IncCacheRequest("tags", "miss")
	tags, err := d.inner.ListActive(ctx, tx)
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		bytes, _ := json.Marshal(tags)
		d.cache.Set(ctx, tagsActiveKey, bytes, d.ttl)
	}
	return tags, nil
}

func (d *tagRepoCacheDecorator) TagsForImage(ctx context.Context, tx repository.Tx, storagePath string) ([]*model.Tag, error) {
	key := imageTagsKey(storagePath)
	val, err := d.cache.Get(ctx, key)
	if err == nil {
		var tags []*model.Tag
		if json.Unmarshal([]byte(val), &tags) == nil {
			metrics.IncCacheRequest("image_tags", "hit")
			return tags, nil
		}
	}

	metrics.IncCacheRequest("image_tags", "miss")
	tags, err := d.inner.TagsForImage(ctx, tx, storagePath)
	if err != nil {
		return nil, err
	}
	bytes, _ := json.Marshal(tags)
	d.cache.Set(ctx, key, bytes, d.ttl)
	return tags, nil
}

func (d *tagRepoCacheDecorator) TagsForAllImages(ctx context.Context, tx repository.Tx) (map[string][]*model.Tag, error) {
	return d.inner.TagsForAllImages(ctx, tx)
}

// Write operations invalidate the per-image entry.
func (d *tagRepoCacheDecorator) AddImageTags(ctx context.Context, tx repository.Tx, storagePath string, tagIDs []int64) error {
	d.cache.Del(ctx, imageTagsKey(storagePath))
	return d.inner.AddImageTags(ctx, tx, storagePath, tagIDs)
}

func (d *tagRepoCacheDecorator) RemoveImageTag(ctx context.Context, tx repository.Tx, storagePath string, tagID int64) error {
	d.cache.Del(ctx, imageTagsKey(storagePath))
	return d.inner.RemoveImageTag(ctx, tx, storagePath, tagID)
}
