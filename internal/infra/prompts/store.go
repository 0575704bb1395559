// File: internal/infra/prompts/store.go
package prompts

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"content-studio/internal/domain"
	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/repository"
)

var _ repository.PromptStore = (*FileStore)(nil)

// FileStore keeps the four system prompts as markdown files in a git
// working tree. Saves are committed (and optionally pushed) so prompt
// edits stay versioned; git failures are logged but never fail the save.
type FileStore struct {
	dir        string
	autoCommit bool
	push       bool
	log        zerolog.Logger

	mu sync.Mutex
}

func NewFileStore(dir string, autoCommit, push bool, logger *zerolog.Logger) *FileStore {
	return &FileStore{
		dir:        dir,
		autoCommit: autoCommit,
		push:       push,
		log:        logger.With().Str("component", "prompt_store").Logger(),
	}
}

var promptFiles = map[model.PromptKey]string{
	model.PromptImageEnhance: "image-enhance-prompt.md",
	model.PromptImageCaption: "image-caption-prompt.md",
	model.PromptVideoEnhance: "video-enhance-prompt.md",
	model.PromptVideoCaption: "video-caption-prompt.md",
}

func (s *FileStore) Load(ctx context.Context) (*model.PromptSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := &model.PromptSet{}
	for key, name := range promptFiles {
		b, err := os.ReadFile(filepath.Join(s.dir, name))
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("read prompt %s: %w", name, err)
		}
		content := strings.TrimSpace(string(b))
		switch key {
		case model.PromptImageEnhance:
			set.ImageEnhance = content
		case model.PromptImageCaption:
			set.ImageCaption = content
		case model.PromptVideoEnhance:
			set.VideoEnhance = content
		case model.PromptVideoCaption:
			set.VideoCaption = content
		}
	}
	return set, nil
}

func (s *FileStore) Save(ctx context.Context, key model.PromptKey, content string) error {
	name, ok := promptFiles[key]
	if !ok {
		return fmt.Errorf("%w: unknown prompt key %q", domain.ErrInvalidArgument, key)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%w: empty prompt content", domain.ErrInvalidArgument)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create prompt dir: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write prompt %s: %w", name, err)
	}
	s.log.Info().Str("prompt", string(key)).Msg("prompt saved")

	if s.autoCommit {
		s.commit(ctx, name)
	}
	return nil
}

func (s *FileStore) commit(ctx context.Context, name string) {
	if err := s.git(ctx, "add", name); err != nil {
		s.log.Warn().Err(err).Msg("git add failed")
		return
	}
	out, err := s.gitOutput(ctx, "status", "--porcelain", name)
	if err != nil {
		s.log.Warn().Err(err).Msg("git status failed")
		return
	}
	if strings.TrimSpace(out) == "" {
		s.log.Debug().Str("file", name).Msg("prompt unchanged, nothing to commit")
		return
	}
	msg := fmt.Sprintf("Update %s via editor", name)
	if err := s.git(ctx, "commit", "-m", msg); err != nil {
		s.log.Warn().Err(err).Msg("git commit failed")
		return
	}
	if s.push {
		if err := s.git(ctx, "push"); err != nil {
			s.log.Warn().Err(err).Msg("git push failed")
			return
		}
	}
	s.log.Info().Str("file", name).Msg("prompt change committed")
}

func (s *FileStore) git(ctx context.Context, args ...string) error {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = s.dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("git %s: %v: %s", args[0], err, strings.TrimSpace(string(out)))
	}
	return nil
}

func (s *FileStore) gitOutput(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = s.dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return string(out), nil
}
