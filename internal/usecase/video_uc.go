package usecase

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"content-studio/internal/domain"
	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/adapter"
	"content-studio/internal/infra/logging"
	"content-studio/internal/infra/metrics"
)

// VideoUseCase runs the submit-then-poll video generation flow.
type VideoUseCase interface {
	Generate(ctx context.Context, prompt, negativePrompt string) (*model.VideoResult, error)

	// ResolveFile downloads a provider file handle into a temp file and
	// returns its path. cleanup removes the file and must always be called.
	ResolveFile(ctx context.Context, fileHandle string) (path string, cleanup func(), err error)
}

var _ VideoUseCase = (*videoUC)(nil)

type videoUC struct {
	gen          adapter.VideoGenerator
	clock        adapter.Clock
	model        string
	aspectRatio  string
	pollInterval time.Duration
	maxPolls     int
	apiKey       string
	log          *zerolog.Logger
}

// NewVideoUseCase constructs the video use case. clock may be nil (system
// clock). apiKey is appended to direct result URLs so they stay fetchable
// by the browser.
func NewVideoUseCase(
	gen adapter.VideoGenerator,
	clock adapter.Clock,
	videoModel, aspectRatio string,
	pollInterval time.Duration,
	maxPolls int,
	apiKey string,
	logger *zerolog.Logger,
) VideoUseCase {
	if clock == nil {
		clock = adapter.SystemClock{}
	}
	if pollInterval <= 0 {
		pollInterval = 10 * time.Second
	}
	if maxPolls <= 0 {
		maxPolls = 60
	}
	l := logger.With().Str("component", "video_uc").Logger()
	return &videoUC{
		gen:          gen,
		clock:        clock,
		model:        videoModel,
		aspectRatio:  aspectRatio,
		pollInterval: pollInterval,
		maxPolls:     maxPolls,
		apiKey:       apiKey,
		log:          &l,
	}
}

func (uc *videoUC) Generate(ctx context.Context, prompt, negativePrompt string) (*model.VideoResult, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", domain.ErrInvalidArgument)
	}
	defer logging.TraceDuration(uc.log, "VideoUC.Generate")()

	started := uc.clock.Now()
	op, err := uc.gen.Submit(ctx, adapter.VideoRequest{
		Prompt:         prompt,
		NegativePrompt: negativePrompt,
		AspectRatio:    uc.aspectRatio,
	})
	if err != nil {
		metrics.IncGenerationJob("video", "failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrSubmission, err)
	}
	uc.log.Info().Str("operation", op.Handle).Msg("video generation submitted")

	polls := 0
	for !op.Done && polls < uc.maxPolls {
		if err := uc.clock.Sleep(ctx, uc.pollInterval); err != nil {
			return nil, err
		}
		op, err = uc.gen.Poll(ctx, op)
		if err != nil {
			metrics.IncGenerationJob("video", "failed")
			return nil, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
		}
		polls++
		uc.log.Debug().Str("operation", op.Handle).Int("polls", polls).Bool("done", op.Done).Msg("video generation polled")

		if op.ErrMessage != "" {
			metrics.IncGenerationJob("video", "failed")
			return nil, fmt.Errorf("%w: %s", domain.ErrGeneration, op.ErrMessage)
		}
	}
	if !op.Done {
		metrics.IncGenerationJob("video", "timeout")
		uc.log.Warn().Str("operation", op.Handle).Int("polls", polls).Msg("video generation poll budget exhausted")
		return nil, fmt.Errorf("%w: still running after %d polls", domain.ErrGenerationTimeout, polls)
	}
	if op.ErrMessage != "" {
		metrics.IncGenerationJob("video", "failed")
		return nil, fmt.Errorf("%w: %s", domain.ErrGeneration, op.ErrMessage)
	}

	result, err := uc.classify(op.ResultURI, polls)
	if err != nil {
		metrics.IncGenerationJob("video", "failed")
		return nil, err
	}
	metrics.IncGenerationJob("video", "completed")
	metrics.ObserveGenerationPolls(polls)
	metrics.ObserveGenerationLatency("video", uc.clock.Now().Sub(started).Seconds(), true)
	uc.log.Info().
		Str("operation", op.Handle).
		Str("kind", string(result.Kind)).
		Int("polls", polls).
		Msg("video generation completed")
	return result, nil
}

// classify maps the raw result reference onto the two supported shapes.
func (uc *videoUC) classify(raw string, polls int) (*model.VideoResult, error) {
	switch {
	case strings.HasPrefix(raw, "http://") || strings.HasPrefix(raw, "https://"):
		return &model.VideoResult{
			Kind:  model.VideoResultURL,
			URL:   uc.withAPIKey(raw),
			Model: uc.model,
			Polls: polls,
		}, nil
	case raw != "":
		return &model.VideoResult{
			Kind:       model.VideoResultFile,
			FileHandle: raw,
			Model:      uc.model,
			Polls:      polls,
		}, nil
	default:
		return nil, fmt.Errorf("%w: empty result reference", domain.ErrUnrecognizedResult)
	}
}

// withAPIKey appends the provider key to a direct URL unless one is
// already present.
func (uc *videoUC) withAPIKey(raw string) string {
	if uc.apiKey == "" || strings.Contains(raw, "key=") {
		return raw
	}
	sep := "?"
	if strings.Contains(raw, "?") {
		sep = "&"
	}
	return raw + sep + "key=" + uc.apiKey
}

func (uc *videoUC) ResolveFile(ctx context.Context, fileHandle string) (string, func(), error) {
	if strings.TrimSpace(fileHandle) == "" {
		return "", nil, fmt.Errorf("%w: file handle is required", domain.ErrInvalidArgument)
	}
	data, err := uc.gen.Download(ctx, fileHandle)
	if err != nil {
		return "", nil, fmt.Errorf("%w: download %s: %v", domain.ErrGeneration, fileHandle, err)
	}
	if len(data) == 0 {
		return "", nil, fmt.Errorf("%w: downloaded file %s is empty", domain.ErrGeneration, fileHandle)
	}

	f, err := os.CreateTemp("", "veo_video_*.mp4")
	if err != nil {
		return "", nil, fmt.Errorf("create temp file: %w", err)
	}
	cleanup := func() { os.Remove(f.Name()) }
	if _, err := f.Write(data); err != nil {
		f.Close()
		cleanup()
		return "", nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("close temp file: %w", err)
	}
	uc.log.Debug().Str("file", fileHandle).Int("size", len(data)).Msg("video file resolved")
	return f.Name(), cleanup, nil
}
