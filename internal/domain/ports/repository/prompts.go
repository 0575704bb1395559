package repository

import (
	"context"

	"content-studio/internal/domain/model"
)

// PromptStore persists the editable system prompts. Load always reflects the
// current backing store, not a startup snapshot.
type PromptStore interface {
	Load(ctx context.Context) (*model.PromptSet, error)
	Save(ctx context.Context, key model.PromptKey, content string) error
}
