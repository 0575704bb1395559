// File: internal/usecase/gallery_uc_test.go
package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"content-studio/internal/domain"
	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/repository"
)

func TestGalleryUseCase_ListImages(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("lists model folders with tags, newest first", func(t *testing.T) {
		store := newFakeStore()
		store.Put(ctx, "imagen-3/old.png", []byte("aaa"), "image/png")
		store.Put(ctx, "veo-3/clip.mp4", []byte("bbbb"), "video/mp4")
		store.Put(ctx, "instagram-posts/staged.png", []byte("cc"), "image/png")
		store.created["imagen-3/old.png"] = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		store.created["veo-3/clip.mp4"] = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

		tagRepo := newMemTagRepo(catalogTags()...)
		tagRepo.AddImageTags(ctx, nil, "imagen-3/old.png", []int64{1})

		uc := NewGalleryUseCase(store, tagRepo, testLogger())
		images, err := uc.ListImages(ctx)
		if err != nil {
			t.Fatalf("ListImages returned error: %v", err)
		}
		if len(images) != 2 {
			t.Fatalf("expected 2 gallery images, got %d", len(images))
		}
		if images[0].Path != "veo-3/clip.mp4" {
			t.Fatalf("expected newest first, got %q", images[0].Path)
		}
		if images[0].Model != "veo-3" || images[0].Name != "clip.mp4" {
			t.Fatalf("unexpected image metadata %+v", images[0])
		}
		if images[0].URL != "https://cdn.test/veo-3/clip.mp4" {
			t.Fatalf("unexpected URL %q", images[0].URL)
		}
		if len(images[1].Tags) != 1 || images[1].Tags[0].Name != "canvas" {
			t.Fatalf("expected canvas tag on %s, got %+v", images[1].Path, images[1].Tags)
		}
		if images[0].Tags == nil {
			t.Fatalf("tags must never be nil")
		}
	})

	t.Run("tag lookup failure degrades to untagged", func(t *testing.T) {
		store := newFakeStore()
		store.Put(ctx, "imagen-4/a.png", []byte("x"), "image/png")
		uc := NewGalleryUseCase(store, failingTagRepo{newMemTagRepo()}, testLogger())
		images, err := uc.ListImages(ctx)
		if err != nil {
			t.Fatalf("expected degraded listing, got %v", err)
		}
		if len(images) != 1 || len(images[0].Tags) != 0 {
			t.Fatalf("expected one untagged image, got %+v", images)
		}
	})
}

// failingTagRepo makes the bulk tag lookup fail while delegating the rest.
type failingTagRepo struct{ *memTagRepo }

func (f failingTagRepo) TagsForAllImages(ctx context.Context, tx repository.Tx) (map[string][]*model.Tag, error) {
	return nil, errors.New("db down")
}

func TestGalleryUseCase_GetAndDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newFakeStore()
	store.Put(ctx, "imagen-3/a.png", []byte("png"), "image/png")
	uc := NewGalleryUseCase(store, newMemTagRepo(), testLogger())

	data, contentType, err := uc.GetImage(ctx, "imagen-3/a.png")
	if err != nil {
		t.Fatalf("GetImage returned error: %v", err)
	}
	if string(data) != "png" || contentType != "image/png" {
		t.Fatalf("unexpected object %q %q", data, contentType)
	}

	if _, _, err := uc.GetImage(ctx, ""); !errors.Is(err, domain.ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument, got %v", err)
	}

	if err := uc.DeleteImage(ctx, "imagen-3/a.png"); err != nil {
		t.Fatalf("DeleteImage returned error: %v", err)
	}
	if _, _, err := uc.GetImage(ctx, "imagen-3/a.png"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}
