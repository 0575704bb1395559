package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"content-studio/internal/domain"
	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/adapter"
	"content-studio/internal/domain/ports/repository"
)

// Caption is an LLM-written social caption plus its hashtag line.
type Caption struct {
	Text string `json:"caption"`
	Tags string `json:"tags"`
}

// CaptionUseCase wraps the LLM behind the prompt-enhancement and
// captioning endpoints. System prompts come from the editable prompt
// store and are re-read on every call.
type CaptionUseCase interface {
	EnhanceImagePrompt(ctx context.Context, prompt string) (string, error)
	EnhanceVideoPrompt(ctx context.Context, prompt string) (string, error)
	ImageCaption(ctx context.Context, prompt string) (Caption, error)
	VideoCaption(ctx context.Context, prompt string) (Caption, error)
}

var _ CaptionUseCase = (*captionUC)(nil)

type captionUC struct {
	llm     adapter.TextGenerator
	prompts repository.PromptStore
	model   string
	log     *zerolog.Logger
}

func NewCaptionUseCase(llm adapter.TextGenerator, prompts repository.PromptStore, captionModel string, logger *zerolog.Logger) CaptionUseCase {
	l := logger.With().Str("component", "caption_uc").Logger()
	return &captionUC{llm: llm, prompts: prompts, model: captionModel, log: &l}
}

const (
	defaultVideoCaption = "Bringing your memories to life, one frame at a time ✨"
	defaultVideoTags    = "#PhotoGifts #CustomPrints #MemoriesThatLast"
)

func (uc *captionUC) EnhanceImagePrompt(ctx context.Context, prompt string) (string, error) {
	return uc.enhance(ctx, prompt, model.PromptImageEnhance)
}

func (uc *captionUC) EnhanceVideoPrompt(ctx context.Context, prompt string) (string, error) {
	return uc.enhance(ctx, prompt, model.PromptVideoEnhance)
}

func (uc *captionUC) enhance(ctx context.Context, prompt string, key model.PromptKey) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt is required", domain.ErrInvalidArgument)
	}
	system, err := uc.systemPrompt(ctx, key)
	if err != nil {
		return "", err
	}
	out, err := uc.llm.Chat(ctx, uc.model, []adapter.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	return normalizeEnhanced(out), nil
}

func (uc *captionUC) ImageCaption(ctx context.Context, prompt string) (Caption, error) {
	raw, err := uc.captionRaw(ctx, prompt, model.PromptImageCaption)
	if err != nil {
		return Caption{}, err
	}
	return parseCaption(raw, Caption{}), nil
}

// VideoCaption falls back to stock copy when the model returns something
// unusable; video captions are shown right next to the player and must
// never be empty.
func (uc *captionUC) VideoCaption(ctx context.Context, prompt string) (Caption, error) {
	fallback := Caption{Text: defaultVideoCaption, Tags: defaultVideoTags}
	raw, err := uc.captionRaw(ctx, prompt, model.PromptVideoCaption)
	if err != nil {
		if strings.TrimSpace(prompt) == "" {
			return Caption{}, err
		}
		uc.log.Warn().Err(err).Msg("video caption generation failed, using fallback")
		return fallback, nil
	}
	return parseCaption(raw, fallback), nil
}

func (uc *captionUC) captionRaw(ctx context.Context, prompt string, key model.PromptKey) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("%w: prompt is required", domain.ErrInvalidArgument)
	}
	system, err := uc.systemPrompt(ctx, key)
	if err != nil {
		return "", err
	}
	out, err := uc.llm.Chat(ctx, uc.model, []adapter.Message{
		{Role: "system", Content: system},
		{Role: "user", Content: prompt},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}
	return out, nil
}

func (uc *captionUC) systemPrompt(ctx context.Context, key model.PromptKey) (string, error) {
	set, err := uc.prompts.Load(ctx)
	if err != nil {
		return "", fmt.Errorf("load prompts: %w", err)
	}
	p, _ := set.Get(key)
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("%w: system prompt %q is not configured", domain.ErrInvalidArgument, key)
	}
	return p, nil
}

// normalizeEnhanced pretty-prints JSON replies so the editor shows a
// readable structured prompt; plain text passes through untouched.
func normalizeEnhanced(out string) string {
	trimmed := strings.TrimSpace(out)
	var obj map[string]any
	if err := json.Unmarshal([]byte(trimmed), &obj); err == nil {
		if pretty, err := json.MarshalIndent(obj, "", "  "); err == nil {
			return string(pretty)
		}
	}
	return trimmed
}

// parseCaption accepts either a JSON {caption, tags} object or plain text
// where the hashtag line starts with '#'. Missing pieces come from the
// fallback.
func parseCaption(raw string, fallback Caption) Caption {
	trimmed := strings.TrimSpace(raw)

	var jsonCap struct {
		Caption string `json:"caption"`
		Tags    string `json:"tags"`
	}
	if err := json.Unmarshal([]byte(trimmed), &jsonCap); err == nil && jsonCap.Caption != "" {
		out := Caption{Text: jsonCap.Caption, Tags: jsonCap.Tags}
		if out.Tags == "" {
			out.Tags = fallback.Tags
		}
		return out
	}

	var captionLines []string
	tags := ""
	for _, line := range strings.Split(trimmed, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "#") && tags == "" {
			tags = line
			continue
		}
		captionLines = append(captionLines, line)
	}

	out := Caption{Text: strings.Join(captionLines, " "), Tags: tags}
	if out.Text == "" {
		out.Text = fallback.Text
	}
	if out.Tags == "" {
		out.Tags = fallback.Tags
	}
	return out
}
