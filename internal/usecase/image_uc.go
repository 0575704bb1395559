package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"content-studio/internal/domain"
	"content-studio/internal/domain/ports/adapter"
	"content-studio/internal/infra/metrics"
)

// GeneratedImage is the outcome of one image generation: raw PNG bytes
// plus where they were stored.
type GeneratedImage struct {
	Data        []byte
	StoragePath string
}

// ImageUseCase generates product images and files them into the bucket.
type ImageUseCase interface {
	// Generate accepts an endpoint alias ("imagen-3", "imagen-4",
	// "imagen-4-ultra"), produces one 1:1 image, stores it under the
	// alias folder and auto-tags it from the prompt.
	Generate(ctx context.Context, alias, prompt string) (*GeneratedImage, error)
}

var _ ImageUseCase = (*imageUC)(nil)

// imageModels maps endpoint aliases onto provider model identifiers.
var imageModels = map[string]string{
	"imagen-3":       "imagen-3.0-generate-002",
	"imagen-4":       "imagen-4.0-generate-preview-06-06",
	"imagen-4-ultra": "imagen-4.0-ultra-generate-preview-06-06",
}

type imageUC struct {
	gen   adapter.ImageGenerator
	store adapter.ObjectStore
	tags  TagUseCase
	clock adapter.Clock
	log   *zerolog.Logger
}

func NewImageUseCase(gen adapter.ImageGenerator, store adapter.ObjectStore, tags TagUseCase, clock adapter.Clock, logger *zerolog.Logger) ImageUseCase {
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	l := logger.With().Str("component", "image_uc").Logger()
	return &imageUC{gen: gen, store: store, tags: tags, clock: clock, log: &l}
}

func (uc *imageUC) Generate(ctx context.Context, alias, prompt string) (*GeneratedImage, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrInvalidArgument)
	}
	providerModel, ok := imageModels[alias]
	if !ok {
		return nil, fmt.Errorf("%w: unknown image model %q (valid: %s)",
			domain.ErrInvalidArgument, alias, strings.Join(ImageModelAliases(), ", "))
	}

	started := uc.clock.Now()
	data, err := uc.gen.Generate(ctx, adapter.ImageRequest{
		Prompt:      prompt,
		Model:       providerModel,
		AspectRatio: "1:1",
	})
	if err != nil {
		metrics.IncGenerationJob("image", "failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	if len(data) == 0 {
		metrics.IncGenerationJob("image", "failed")
		return nil, fmt.Errorf("%w: empty image from provider", domain.ErrGeneration)
	}
	metrics.IncGenerationJob("image", "completed")
	metrics.ObserveGenerationLatency("image", uc.clock.Now().Sub(started).Seconds(), true)

	path := fmt.Sprintf("%s/%s-%s.png", alias, started.UTC().Format("20060102-150405"), shortID())
	if err := uc.store.Put(ctx, path, data, "image/png"); err != nil {
		// The image itself is good; return it even if filing failed.
		uc.log.Error().Err(err).Str("path", path).Msg("failed to store generated image")
		return &GeneratedImage{Data: data}, nil
	}

	if _, err := uc.tags.AutoTag(ctx, path, prompt); err != nil {
		uc.log.Warn().Err(err).Str("path", path).Msg("auto-tagging failed")
	}

	uc.log.Info().Str("model", alias).Str("path", path).Int("size", len(data)).Msg("image generated")
	return &GeneratedImage{Data: data, StoragePath: path}, nil
}

func shortID() string {
	return strings.Split(uuid.NewString(), "-")[0]
}

// ImageModelAliases lists the endpoint aliases Generate accepts, sorted.
func ImageModelAliases() []string {
	out := make([]string, 0, len(imageModels))
	for alias := range imageModels {
		out = append(out, alias)
	}
	sort.Strings(out)
	return out
}
