package usecase

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/repository"
)

// TagUseCase manages product tags on generated images, including the
// keyword-based auto-tagger applied after image generation.
type TagUseCase interface {
	ListTags(ctx context.Context) ([]*model.Tag, error)
	TagsForImage(ctx context.Context, storagePath string) ([]*model.Tag, error)
	AddTags(ctx context.Context, storagePath string, tagIDs []int64) error
	RemoveTag(ctx context.Context, storagePath string, tagID int64) error

	// AutoTag suggests up to two product tags from the generation prompt
	// and attaches them. Best effort: errors are returned but callers are
	// expected to log rather than fail the generation.
	AutoTag(ctx context.Context, storagePath, prompt string) ([]*model.Tag, error)
}

var _ TagUseCase = (*tagUC)(nil)

type tagUC struct {
	tags repository.TagRepository
	log  *zerolog.Logger
}

func NewTagUseCase(tags repository.TagRepository, logger *zerolog.Logger) TagUseCase {
	l := logger.With().Str("component", "tag_uc").Logger()
	return &tagUC{tags: tags, log: &l}
}

func (uc *tagUC) ListTags(ctx context.Context) ([]*model.Tag, error) {
	return uc.tags.ListActive(ctx, repository.NoTX)
}

func (uc *tagUC) TagsForImage(ctx context.Context, storagePath string) ([]*model.Tag, error) {
	return uc.tags.TagsForImage(ctx, repository.NoTX, storagePath)
}

func (uc *tagUC) AddTags(ctx context.Context, storagePath string, tagIDs []int64) error {
	return uc.tags.AddImageTags(ctx, repository.NoTX, storagePath, tagIDs)
}

func (uc *tagUC) RemoveTag(ctx context.Context, storagePath string, tagID int64) error {
	return uc.tags.RemoveImageTag(ctx, repository.NoTX, storagePath, tagID)
}

// Keyword table for prompt-based tagging. Priority products are the shop's
// best sellers and win over secondary matches.
var tagKeywords = map[string][]string{
	"canvas":     {"canvas", "art", "painting", "wall art", "artwork", "gallery", "wall", "display", "framed", "hanging"},
	"photo-book": {"book", "album", "memories", "collection", "story", "family", "pages", "flip", "coffee table"},
	"mug":        {"mug", "coffee", "tea", "cup", "drink", "morning", "kitchen", "beverage", "ceramic"},
	"blanket":    {"blanket", "cozy", "warm", "comfort", "soft", "cuddle", "throw", "sofa", "bed", "snuggle"},

	"photo-prints": {"photo", "print", "picture", "image", "standard", "classic"},
	"frame":        {"frame", "framed", "border", "display", "elegant"},
	"pillow":       {"pillow", "cushion", "sofa", "bed", "home", "decor"},
	"poster":       {"poster", "large", "room", "decoration"},
}

var (
	priorityProducts  = []string{"canvas", "photo-book", "mug", "blanket"}
	secondaryProducts = []string{"photo-prints", "frame", "pillow", "poster"}
	defaultProducts   = []string{"canvas", "photo-book"}
)

const maxAutoTags = 2

func (uc *tagUC) AutoTag(ctx context.Context, storagePath, prompt string) ([]*model.Tag, error) {
	active, err := uc.tags.ListActive(ctx, repository.NoTX)
	if err != nil {
		return nil, err
	}
	suggested := SuggestTags(active, prompt)
	if len(suggested) == 0 {
		return nil, nil
	}

	ids := make([]int64, len(suggested))
	for i, t := range suggested {
		ids[i] = t.ID
	}
	if err := uc.tags.AddImageTags(ctx, repository.NoTX, storagePath, ids); err != nil {
		return nil, err
	}
	names := make([]string, len(suggested))
	for i, t := range suggested {
		names[i] = t.Name
	}
	uc.log.Info().Str("path", storagePath).Strs("tags", names).Msg("image auto-tagged")
	return suggested, nil
}

// SuggestTags picks up to two product tags for a prompt. Priority products
// match first; secondary products only fill remaining slots; with no match
// at all the default products are used.
func SuggestTags(active []*model.Tag, prompt string) []*model.Tag {
	byName := make(map[string]*model.Tag, len(active))
	for _, t := range active {
		byName[t.Name] = t
	}
	promptLower := strings.ToLower(prompt)

	var suggested []*model.Tag
	match := func(names []string) {
		for _, name := range names {
			tag, ok := byName[name]
			if !ok || containsTag(suggested, tag.ID) {
				continue
			}
			for _, kw := range tagKeywords[name] {
				if strings.Contains(promptLower, kw) {
					suggested = append(suggested, tag)
					break
				}
			}
		}
	}

	match(priorityProducts)
	if len(suggested) < maxAutoTags {
		match(secondaryProducts)
	}
	if len(suggested) == 0 {
		for _, name := range defaultProducts {
			if tag, ok := byName[name]; ok && !containsTag(suggested, tag.ID) {
				suggested = append(suggested, tag)
			}
		}
	}
	if len(suggested) > maxAutoTags {
		suggested = suggested[:maxAutoTags]
	}
	return suggested
}

func containsTag(tags []*model.Tag, id int64) bool {
	for _, t := range tags {
		if t.ID == id {
			return true
		}
	}
	return false
}
