package adapter

import "context"

type ImageRequest struct {
	Prompt      string
	Model       string
	AspectRatio string
}

// ImageGenerator produces one finished image (PNG bytes) per request.
type ImageGenerator interface {
	Generate(ctx context.Context, req ImageRequest) ([]byte, error)
}
