package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"content-studio/internal/domain"
	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/adapter"
	"content-studio/internal/domain/ports/repository"
	"content-studio/internal/infra/metrics"
)

type PostImageInput struct {
	Caption     string
	ContentType string
	Image       []byte
	// ImageURL may be set instead of Image when the asset is already
	// publicly reachable.
	ImageURL string
}

// PublishUseCase posts an image to Instagram immediately and records the
// published post.
type PublishUseCase interface {
	PostImage(ctx context.Context, in PostImageInput) (*model.PublishedPost, error)
	History(ctx context.Context, limit int) ([]*model.PublishedPost, error)
}

var _ PublishUseCase = (*publishUC)(nil)

type publishUC struct {
	publisher adapter.SocialPublisher
	store     adapter.ObjectStore
	published repository.PublishedPostRepository
	tx        repository.TransactionManager
	clock     adapter.Clock
	log       *zerolog.Logger
}

func NewPublishUseCase(
	publisher adapter.SocialPublisher,
	store adapter.ObjectStore,
	published repository.PublishedPostRepository,
	tx repository.TransactionManager,
	clock adapter.Clock,
	logger *zerolog.Logger,
) PublishUseCase {
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	l := logger.With().Str("component", "publish_uc").Logger()
	return &publishUC{
		publisher: publisher,
		store:     store,
		published: published,
		tx:        tx,
		clock:     clock,
		log:       &l,
	}
}

func (uc *publishUC) PostImage(ctx context.Context, in PostImageInput) (*model.PublishedPost, error) {
	if strings.TrimSpace(in.Caption) == "" {
		return nil, fmt.Errorf("%w: caption is required", domain.ErrInvalidArgument)
	}
	if len(in.Image) == 0 && in.ImageURL == "" {
		return nil, fmt.Errorf("%w: an image is required", domain.ErrInvalidArgument)
	}

	imageURL := in.ImageURL
	if imageURL == "" {
		contentType := in.ContentType
		if contentType == "" {
			contentType = "image/png"
		}
		path := fmt.Sprintf("instagram-posts/%s%s", uuid.NewString(), extensionFor(contentType))
		if err := uc.store.Put(ctx, path, in.Image, contentType); err != nil {
			return nil, fmt.Errorf("stage image for publishing: %w", err)
		}
		imageURL = uc.store.PublicURL(path)
	}

	platformPostID, err := uc.publisher.Publish(ctx, adapter.PublishRequest{
		Caption:  in.Caption,
		ImageURL: imageURL,
	})
	metrics.IncPublishAttempt(uc.publisher.Platform(), err == nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPublish, err)
	}

	post := &model.PublishedPost{
		ID:             uuid.NewString(),
		PlatformPostID: platformPostID,
		Platform:       uc.publisher.Platform(),
		Caption:        in.Caption,
		ImageURL:       imageURL,
		CaptionLength:  len([]rune(in.Caption)),
		PostedAt:       uc.clock.Now(),
	}
	err = uc.tx.WithTx(ctx, pgx.TxOptions{}, func(ctx context.Context, tx repository.Tx) error {
		return uc.published.Save(ctx, tx, post)
	})
	if err != nil {
		// The post is live; a failed record write must not report failure.
		uc.log.Error().Err(err).Str("platform_post_id", platformPostID).Msg("failed to record published post")
	}

	uc.log.Info().Str("platform_post_id", platformPostID).Msg("image published")
	return post, nil
}

func (uc *publishUC) History(ctx context.Context, limit int) ([]*model.PublishedPost, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.published.List(ctx, repository.NoTX, limit)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
