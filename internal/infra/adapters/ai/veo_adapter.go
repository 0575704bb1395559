// File: internal/infra/adapters/ai/veo_adapter.go
package ai

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"content-studio/internal/domain/ports/adapter"
)

var _ adapter.VideoGenerator = (*VeoAdapter)(nil)

// VeoAdapter drives Veo video generation through the official SDK's
// long-running operation API.
type VeoAdapter struct {
	client *genai.Client
	model  string
}

func NewVeoAdapter(ctx context.Context, apiKey, model string) (*VeoAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("veo: empty api key")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &VeoAdapter{client: c, model: model}, nil
}

func (a *VeoAdapter) Submit(ctx context.Context, req adapter.VideoRequest) (*adapter.VideoOperation, error) {
	cfg := &genai.GenerateVideosConfig{
		AspectRatio:    req.AspectRatio,
		NegativePrompt: req.NegativePrompt,
	}
	op, err := a.client.Models.GenerateVideos(ctx, a.model, req.Prompt, nil, cfg)
	if err != nil {
		return nil, err
	}
	return toVideoOperation(op), nil
}

func (a *VeoAdapter) Poll(ctx context.Context, op *adapter.VideoOperation) (*adapter.VideoOperation, error) {
	prev, ok := op.Raw.(*genai.GenerateVideosOperation)
	if !ok {
		return nil, fmt.Errorf("veo: operation %s has no provider handle", op.Handle)
	}
	next, err := a.client.Operations.GetVideosOperation(ctx, prev, nil)
	if err != nil {
		return nil, err
	}
	return toVideoOperation(next), nil
}

func (a *VeoAdapter) Download(ctx context.Context, fileHandle string) ([]byte, error) {
	vid := &genai.Video{URI: fileHandle}
	data, err := a.client.Files.Download(ctx, vid, nil)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		data = vid.VideoBytes
	}
	return data, nil
}

func toVideoOperation(op *genai.GenerateVideosOperation) *adapter.VideoOperation {
	out := &adapter.VideoOperation{
		Handle: op.Name,
		Done:   op.Done,
		Raw:    op,
	}
	if op.Error != nil {
		if msg, ok := op.Error["message"].(string); ok {
			out.ErrMessage = msg
		} else {
			out.ErrMessage = fmt.Sprintf("%v", op.Error)
		}
	}
	if op.Response != nil && len(op.Response.GeneratedVideos) > 0 {
		if v := op.Response.GeneratedVideos[0].Video; v != nil {
			out.ResultURI = v.URI
		}
	}
	return out
}
