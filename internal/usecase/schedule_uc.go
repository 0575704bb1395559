package usecase

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"content-studio/internal/domain"
	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/adapter"
	"content-studio/internal/domain/ports/repository"
	"content-studio/internal/infra/metrics"
)

// CreatePostInput carries the fields needed to schedule a post.
type CreatePostInput struct {
	Title           string    `json:"title"`
	Caption         string    `json:"caption"`
	SocialPlatforms []string  `json:"social_platforms"`
	ImagePaths      []string  `json:"image_paths"`
	ScheduledFor    time.Time `json:"scheduled_for"`
}

// ScheduleUseCase owns the scheduled-post lifecycle:
// scheduled -> posted | cancelled | failed, with failed -> retryable.
type ScheduleUseCase interface {
	Create(ctx context.Context, in CreatePostInput) (*model.ScheduledPost, error)
	List(ctx context.Context, filter repository.PostFilter) ([]*model.ScheduledPost, error)
	Get(ctx context.Context, id string) (*model.ScheduledPost, error)
	PostNow(ctx context.Context, id string) (*model.ScheduledPost, error)
	Cancel(ctx context.Context, id string) (*model.ScheduledPost, error)
	Retry(ctx context.Context, id string) (*model.ScheduledPost, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (model.ScheduleStats, error)

	// DuePosts returns scheduled posts whose fire time has passed.
	DuePosts(ctx context.Context, limit int) ([]*model.ScheduledPost, error)
}

var _ ScheduleUseCase = (*scheduleUC)(nil)

type scheduleUC struct {
	posts          repository.ScheduledPostRepository
	publishers     map[string]adapter.SocialPublisher
	store          adapter.ObjectStore
	clock          adapter.Clock
	publishTimeout time.Duration
	log            *zerolog.Logger
}

// NewScheduleUseCase constructs the schedule use case. clock may be nil
// (system clock is used).
func NewScheduleUseCase(
	posts repository.ScheduledPostRepository,
	publishers []adapter.SocialPublisher,
	store adapter.ObjectStore,
	clock adapter.Clock,
	publishTimeout time.Duration,
	logger *zerolog.Logger,
) ScheduleUseCase {
	byPlatform := make(map[string]adapter.SocialPublisher, len(publishers))
	for _, p := range publishers {
		byPlatform[p.Platform()] = p
	}
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	if publishTimeout <= 0 {
		publishTimeout = 30 * time.Second
	}
	l := logger.With().Str("component", "schedule_uc").Logger()
	return &scheduleUC{
		posts:          posts,
		publishers:     byPlatform,
		store:          store,
		clock:          clock,
		publishTimeout: publishTimeout,
		log:            &l,
	}
}

func (uc *scheduleUC) Create(ctx context.Context, in CreatePostInput) (*model.ScheduledPost, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", domain.ErrInvalidArgument)
	}
	if strings.TrimSpace(in.Caption) == "" {
		return nil, fmt.Errorf("%w: caption is required", domain.ErrInvalidArgument)
	}
	if len(in.SocialPlatforms) == 0 {
		return nil, fmt.Errorf("%w: at least one social platform is required", domain.ErrInvalidArgument)
	}
	if len(in.ImagePaths) == 0 {
		return nil, fmt.Errorf("%w: at least one image is required", domain.ErrInvalidArgument)
	}
	now := uc.clock.Now()
	if !in.ScheduledFor.After(now) {
		return nil, fmt.Errorf("%w: scheduled time must be in the future", domain.ErrInvalidArgument)
	}

	post := &model.ScheduledPost{
		ID:              newPostID(now),
		Title:           strings.TrimSpace(in.Title),
		Caption:         in.Caption,
		SocialPlatforms: in.SocialPlatforms,
		ImagePaths:      in.ImagePaths,
		ScheduledFor:    in.ScheduledFor,
		Status:          model.PostStatusScheduled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.posts.Create(ctx, repository.NoTX, post); err != nil {
		return nil, err
	}
	uc.log.Info().Str("post_id", post.ID).Time("scheduled_for", post.ScheduledFor).Msg("post scheduled")
	return post, nil
}

func (uc *scheduleUC) List(ctx context.Context, filter repository.PostFilter) ([]*model.ScheduledPost, error) {
	return uc.posts.List(ctx, repository.NoTX, filter)
}

func (uc *scheduleUC) Get(ctx context.Context, id string) (*model.ScheduledPost, error) {
	return uc.posts.FindByID(ctx, repository.NoTX, id)
}

// PostNow publishes immediately. Only scheduled posts may be posted.
func (uc *scheduleUC) PostNow(ctx context.Context, id string) (*model.ScheduledPost, error) {
	post, err := uc.posts.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	if post.Status != model.PostStatusScheduled {
		return nil, fmt.Errorf("%w: cannot post from status %q", domain.ErrConflict, post.Status)
	}
	return uc.publish(ctx, post)
}

// Retry re-runs every publish sub-operation of a failed post.
func (uc *scheduleUC) Retry(ctx context.Context, id string) (*model.ScheduledPost, error) {
	post, err := uc.posts.FindByID(ctx, repository.NoTX, id)
	if err != nil {
		return nil, err
	}
	if post.Status != model.PostStatusFailed {
		return nil, fmt.Errorf("%w: only failed posts can be retried", domain.ErrConflict)
	}
	return uc.publish(ctx, post)
}

func (uc *scheduleUC) Cancel(ctx context.Context, id string) (*model.ScheduledPost, error) {
	err := uc.posts.UpdateStatus(ctx, repository.NoTX, id, model.PostStatusScheduled, model.PostStatusCancelled, nil, "")
	if err != nil {
		return nil, err
	}
	metrics.IncScheduleTransition(string(model.PostStatusCancelled))
	uc.log.Info().Str("post_id", id).Msg("post cancelled")
	return uc.posts.FindByID(ctx, repository.NoTX, id)
}

func (uc *scheduleUC) Delete(ctx context.Context, id string) error {
	return uc.posts.Delete(ctx, repository.NoTX, id)
}

func (uc *scheduleUC) Stats(ctx context.Context) (model.ScheduleStats, error) {
	posts, err := uc.posts.List(ctx, repository.NoTX, repository.PostFilter{})
	if err != nil {
		return model.ScheduleStats{}, err
	}
	return model.ComputeScheduleStats(posts, uc.clock.Now()), nil
}

func (uc *scheduleUC) DuePosts(ctx context.Context, limit int) ([]*model.ScheduledPost, error) {
	return uc.posts.ListDue(ctx, repository.NoTX, uc.clock.Now(), limit)
}

// publish fans out one sub-operation per platform per image. Any failed
// sub-operation marks the whole post failed; the per-platform errors are
// aggregated into LastError. The final transition is a conditional update,
// so a lost race against a concurrent transition surfaces as ErrConflict.
func (uc *scheduleUC) publish(ctx context.Context, post *model.ScheduledPost) (*model.ScheduledPost, error) {
	from := post.Status
	var failures []string
	for _, platform := range post.SocialPlatforms {
		pub, ok := uc.publishers[platform]
		if !ok {
			failures = append(failures, fmt.Sprintf("%s: no publisher configured", platform))
			metrics.IncPublishAttempt(platform, false)
			continue
		}
		for _, imagePath := range post.ImagePaths {
			err := uc.publishOne(ctx, pub, post.Caption, imagePath)
			metrics.IncPublishAttempt(platform, err == nil)
			if err != nil {
				failures = append(failures, fmt.Sprintf("%s (%s): %v", platform, imagePath, err))
				uc.log.Warn().Err(err).
					Str("post_id", post.ID).
					Str("platform", platform).
					Str("image", imagePath).
					Msg("publish sub-operation failed")
			}
		}
	}

	if len(failures) > 0 {
		lastErr := strings.Join(failures, "; ")
		if err := uc.posts.UpdateStatus(ctx, repository.NoTX, post.ID, from, model.PostStatusFailed, nil, lastErr); err != nil {
			return nil, err
		}
		metrics.IncScheduleTransition(string(model.PostStatusFailed))
		updated, err := uc.posts.FindByID(ctx, repository.NoTX, post.ID)
		if err != nil {
			return nil, err
		}
		return updated, fmt.Errorf("%w: %s", domain.ErrPublish, lastErr)
	}

	postedAt := uc.clock.Now()
	if err := uc.posts.UpdateStatus(ctx, repository.NoTX, post.ID, from, model.PostStatusPosted, &postedAt, ""); err != nil {
		return nil, err
	}
	metrics.IncScheduleTransition(string(model.PostStatusPosted))
	uc.log.Info().Str("post_id", post.ID).Int("platforms", len(post.SocialPlatforms)).Msg("post published")
	return uc.posts.FindByID(ctx, repository.NoTX, post.ID)
}

func (uc *scheduleUC) publishOne(ctx context.Context, pub adapter.SocialPublisher, caption, imagePath string) error {
	cctx, cancel := context.WithTimeout(ctx, uc.publishTimeout)
	defer cancel()
	_, err := pub.Publish(cctx, adapter.PublishRequest{
		Caption:  caption,
		ImageURL: uc.store.PublicURL(imagePath),
	})
	return err
}

func newPostID(now time.Time) string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(now.UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(now), entropy).String()
}
