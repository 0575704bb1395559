// File: internal/infra/web/mocks_test.go
package web

import (
	"context"

	"github.com/rs/zerolog"

	"content-studio/internal/domain"
	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/repository"
	"content-studio/internal/usecase"
)

// Handler tests drive the router through stub use cases with overridable
// function fields; unset fields return not-found or empty results.

type stubScheduleUC struct {
	createFn  func(ctx context.Context, in usecase.CreatePostInput) (*model.ScheduledPost, error)
	listFn    func(ctx context.Context, filter repository.PostFilter) ([]*model.ScheduledPost, error)
	getFn     func(ctx context.Context, id string) (*model.ScheduledPost, error)
	postNowFn func(ctx context.Context, id string) (*model.ScheduledPost, error)
	cancelFn  func(ctx context.Context, id string) (*model.ScheduledPost, error)
	retryFn   func(ctx context.Context, id string) (*model.ScheduledPost, error)
	deleteFn  func(ctx context.Context, id string) error
	statsFn   func(ctx context.Context) (model.ScheduleStats, error)
}

func (s *stubScheduleUC) Create(ctx context.Context, in usecase.CreatePostInput) (*model.ScheduledPost, error) {
	if s.createFn != nil {
		return s.createFn(ctx, in)
	}
	return nil, domain.ErrInvalidArgument
}

func (s *stubScheduleUC) List(ctx context.Context, filter repository.PostFilter) ([]*model.ScheduledPost, error) {
	if s.listFn != nil {
		return s.listFn(ctx, filter)
	}
	return nil, nil
}

func (s *stubScheduleUC) Get(ctx context.Context, id string) (*model.ScheduledPost, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (s *stubScheduleUC) PostNow(ctx context.Context, id string) (*model.ScheduledPost, error) {
	if s.postNowFn != nil {
		return s.postNowFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (s *stubScheduleUC) Cancel(ctx context.Context, id string) (*model.ScheduledPost, error) {
	if s.cancelFn != nil {
		return s.cancelFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (s *stubScheduleUC) Retry(ctx context.Context, id string) (*model.ScheduledPost, error) {
	if s.retryFn != nil {
		return s.retryFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

func (s *stubScheduleUC) Delete(ctx context.Context, id string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, id)
	}
	return domain.ErrNotFound
}

func (s *stubScheduleUC) Stats(ctx context.Context) (model.ScheduleStats, error) {
	if s.statsFn != nil {
		return s.statsFn(ctx)
	}
	return model.ScheduleStats{}, nil
}

func (s *stubScheduleUC) DuePosts(ctx context.Context, limit int) ([]*model.ScheduledPost, error) {
	return nil, nil
}

type stubVideoUC struct {
	generateFn func(ctx context.Context, prompt, negativePrompt string) (*model.VideoResult, error)
	resolveFn  func(ctx context.Context, fileHandle string) (string, func(), error)
}

func (s *stubVideoUC) Generate(ctx context.Context, prompt, negativePrompt string) (*model.VideoResult, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, prompt, negativePrompt)
	}
	return nil, domain.ErrGeneration
}

func (s *stubVideoUC) ResolveFile(ctx context.Context, fileHandle string) (string, func(), error) {
	if s.resolveFn != nil {
		return s.resolveFn(ctx, fileHandle)
	}
	return "", nil, domain.ErrInvalidArgument
}

type stubImageUC struct {
	generateFn func(ctx context.Context, alias, prompt string) (*usecase.GeneratedImage, error)
}

func (s *stubImageUC) Generate(ctx context.Context, alias, prompt string) (*usecase.GeneratedImage, error) {
	if s.generateFn != nil {
		return s.generateFn(ctx, alias, prompt)
	}
	return nil, domain.ErrGeneration
}

type stubCaptionUC struct {
	enhanceImageFn func(ctx context.Context, prompt string) (string, error)
	enhanceVideoFn func(ctx context.Context, prompt string) (string, error)
	imageCaptionFn func(ctx context.Context, prompt string) (usecase.Caption, error)
	videoCaptionFn func(ctx context.Context, prompt string) (usecase.Caption, error)
}

func (s *stubCaptionUC) EnhanceImagePrompt(ctx context.Context, prompt string) (string, error) {
	if s.enhanceImageFn != nil {
		return s.enhanceImageFn(ctx, prompt)
	}
	return "", domain.ErrGeneration
}

func (s *stubCaptionUC) EnhanceVideoPrompt(ctx context.Context, prompt string) (string, error) {
	if s.enhanceVideoFn != nil {
		return s.enhanceVideoFn(ctx, prompt)
	}
	return "", domain.ErrGeneration
}

func (s *stubCaptionUC) ImageCaption(ctx context.Context, prompt string) (usecase.Caption, error) {
	if s.imageCaptionFn != nil {
		return s.imageCaptionFn(ctx, prompt)
	}
	return usecase.Caption{}, domain.ErrGeneration
}

func (s *stubCaptionUC) VideoCaption(ctx context.Context, prompt string) (usecase.Caption, error) {
	if s.videoCaptionFn != nil {
		return s.videoCaptionFn(ctx, prompt)
	}
	return usecase.Caption{}, domain.ErrGeneration
}

type stubGalleryUC struct {
	listFn   func(ctx context.Context) ([]*model.GalleryImage, error)
	getFn    func(ctx context.Context, storagePath string) ([]byte, string, error)
	deleteFn func(ctx context.Context, storagePath string) error
}

func (s *stubGalleryUC) ListImages(ctx context.Context) ([]*model.GalleryImage, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *stubGalleryUC) GetImage(ctx context.Context, storagePath string) ([]byte, string, error) {
	if s.getFn != nil {
		return s.getFn(ctx, storagePath)
	}
	return nil, "", domain.ErrNotFound
}

func (s *stubGalleryUC) DeleteImage(ctx context.Context, storagePath string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, storagePath)
	}
	return domain.ErrNotFound
}

type stubTagUC struct {
	listFn     func(ctx context.Context) ([]*model.Tag, error)
	forImageFn func(ctx context.Context, storagePath string) ([]*model.Tag, error)
	addFn      func(ctx context.Context, storagePath string, tagIDs []int64) error
	removeFn   func(ctx context.Context, storagePath string, tagID int64) error
}

func (s *stubTagUC) ListTags(ctx context.Context) ([]*model.Tag, error) {
	if s.listFn != nil {
		return s.listFn(ctx)
	}
	return nil, nil
}

func (s *stubTagUC) TagsForImage(ctx context.Context, storagePath string) ([]*model.Tag, error) {
	if s.forImageFn != nil {
		return s.forImageFn(ctx, storagePath)
	}
	return nil, nil
}

func (s *stubTagUC) AddTags(ctx context.Context, storagePath string, tagIDs []int64) error {
	if s.addFn != nil {
		return s.addFn(ctx, storagePath, tagIDs)
	}
	return nil
}

func (s *stubTagUC) RemoveTag(ctx context.Context, storagePath string, tagID int64) error {
	if s.removeFn != nil {
		return s.removeFn(ctx, storagePath, tagID)
	}
	return nil
}

func (s *stubTagUC) AutoTag(ctx context.Context, storagePath, prompt string) ([]*model.Tag, error) {
	return nil, nil
}

type stubEmailUC struct {
	sendFn func(ctx context.Context, in usecase.SendImagesInput) error
}

func (s *stubEmailUC) SendImages(ctx context.Context, in usecase.SendImagesInput) error {
	if s.sendFn != nil {
		return s.sendFn(ctx, in)
	}
	return nil
}

type stubPublishUC struct {
	postFn    func(ctx context.Context, in usecase.PostImageInput) (*model.PublishedPost, error)
	historyFn func(ctx context.Context, limit int) ([]*model.PublishedPost, error)
}

func (s *stubPublishUC) PostImage(ctx context.Context, in usecase.PostImageInput) (*model.PublishedPost, error) {
	if s.postFn != nil {
		return s.postFn(ctx, in)
	}
	return nil, domain.ErrPublish
}

func (s *stubPublishUC) History(ctx context.Context, limit int) ([]*model.PublishedPost, error) {
	if s.historyFn != nil {
		return s.historyFn(ctx, limit)
	}
	return nil, nil
}

type stubPromptStore struct {
	loadFn func(ctx context.Context) (*model.PromptSet, error)
	saveFn func(ctx context.Context, key model.PromptKey, content string) error
}

func (s *stubPromptStore) Load(ctx context.Context) (*model.PromptSet, error) {
	if s.loadFn != nil {
		return s.loadFn(ctx)
	}
	return &model.PromptSet{}, nil
}

func (s *stubPromptStore) Save(ctx context.Context, key model.PromptKey, content string) error {
	if s.saveFn != nil {
		return s.saveFn(ctx, key, content)
	}
	return nil
}

// testStubs bundles every stub wired into a test server.
type testStubs struct {
	schedule *stubScheduleUC
	video    *stubVideoUC
	image    *stubImageUC
	caption  *stubCaptionUC
	gallery  *stubGalleryUC
	tags     *stubTagUC
	email    *stubEmailUC
	publish  *stubPublishUC
	prompts  *stubPromptStore
}

func newTestServer() (*Server, *testStubs) {
	stubs := &testStubs{
		schedule: &stubScheduleUC{},
		video:    &stubVideoUC{},
		image:    &stubImageUC{},
		caption:  &stubCaptionUC{},
		gallery:  &stubGalleryUC{},
		tags:     &stubTagUC{},
		email:    &stubEmailUC{},
		publish:  &stubPublishUC{},
		prompts:  &stubPromptStore{},
	}
	logger := zerolog.Nop()
	srv := NewServer(
		stubs.schedule, stubs.video, stubs.image, stubs.caption,
		stubs.gallery, stubs.tags, stubs.email, stubs.publish,
		stubs.prompts, &logger,
	)
	return srv, stubs
}
