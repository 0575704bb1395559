// File: internal/infra/adapters/ai/imagen_adapter.go
package ai

import (
	"context"
	"errors"

	"google.golang.org/genai"

	"content-studio/internal/domain/ports/adapter"
)

var _ adapter.ImageGenerator = (*ImagenAdapter)(nil)

type ImagenAdapter struct {
	client *genai.Client
}

func NewImagenAdapter(ctx context.Context, apiKey string) (*ImagenAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("imagen: empty api key")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &ImagenAdapter{client: c}, nil
}

func (a *ImagenAdapter) Generate(ctx context.Context, req adapter.ImageRequest) ([]byte, error) {
	cfg := &genai.GenerateImagesConfig{
		NumberOfImages: 1,
		AspectRatio:    req.AspectRatio,
	}
	resp, err := a.client.Models.GenerateImages(ctx, req.Model, req.Prompt, cfg)
	if err != nil {
		return nil, err
	}
	if len(resp.GeneratedImages) == 0 || resp.GeneratedImages[0].Image == nil {
		return nil, errors.New("imagen: empty response")
	}
	return resp.GeneratedImages[0].Image.ImageBytes, nil
}
