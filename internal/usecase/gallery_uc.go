package usecase

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"content-studio/internal/domain"
	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/adapter"
	"content-studio/internal/domain/ports/repository"
)

// GalleryUseCase exposes the generated-asset bucket as a browsable
// gallery, with product tags joined in.
type GalleryUseCase interface {
	ListImages(ctx context.Context) ([]*model.GalleryImage, error)
	GetImage(ctx context.Context, storagePath string) (data []byte, contentType string, err error)
	DeleteImage(ctx context.Context, storagePath string) error
}

var _ GalleryUseCase = (*galleryUC)(nil)

type galleryUC struct {
	store adapter.ObjectStore
	tags  repository.TagRepository
	log   *zerolog.Logger
}

func NewGalleryUseCase(store adapter.ObjectStore, tags repository.TagRepository, logger *zerolog.Logger) GalleryUseCase {
	l := logger.With().Str("component", "gallery_uc").Logger()
	return &galleryUC{store: store, tags: tags, log: &l}
}

// isModelFolder keeps the gallery scoped to generated assets; anything
// else in the bucket (uploads, exports) is ignored.
func isModelFolder(name string) bool {
	return strings.HasPrefix(name, "imagen-") || strings.HasPrefix(name, "veo-")
}

func (uc *galleryUC) ListImages(ctx context.Context) ([]*model.GalleryImage, error) {
	folders, err := uc.store.ListFolders(ctx)
	if err != nil {
		return nil, fmt.Errorf("list gallery folders: %w", err)
	}

	tagsByPath, err := uc.tags.TagsForAllImages(ctx, repository.NoTX)
	if err != nil {
		uc.log.Warn().Err(err).Msg("failed to load image tags, returning untagged gallery")
		tagsByPath = map[string][]*model.Tag{}
	}

	var images []*model.GalleryImage
	for _, folder := range folders {
		if !isModelFolder(folder) {
			continue
		}
		objects, err := uc.store.List(ctx, folder+"/")
		if err != nil {
			return nil, fmt.Errorf("list folder %s: %w", folder, err)
		}
		for _, obj := range objects {
			name := path.Base(obj.Path)
			tags := tagsByPath[obj.Path]
			if tags == nil {
				tags = []*model.Tag{}
			}
			images = append(images, &model.GalleryImage{
				ID:        folder + "-" + name,
				Name:      name,
				Path:      obj.Path,
				URL:       uc.store.PublicURL(obj.Path),
				Model:     folder,
				Size:      obj.Size,
				CreatedAt: obj.CreatedAt,
				Tags:      tags,
			})
		}
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].CreatedAt.After(images[j].CreatedAt)
	})
	return images, nil
}

func (uc *galleryUC) GetImage(ctx context.Context, storagePath string) ([]byte, string, error) {
	if strings.TrimSpace(storagePath) == "" {
		return nil, "", fmt.Errorf("%w: storage path is required", domain.ErrInvalidArgument)
	}
	return uc.store.Get(ctx, storagePath)
}

func (uc *galleryUC) DeleteImage(ctx context.Context, storagePath string) error {
	if strings.TrimSpace(storagePath) == "" {
		return fmt.Errorf("%w: storage path is required", domain.ErrInvalidArgument)
	}
	if err := uc.store.Delete(ctx, storagePath); err != nil {
		return err
	}
	uc.log.Info().Str("path", storagePath).Msg("gallery image deleted")
	return nil
}
