// File: internal/infra/sched/dispatch_worker_test.go
package sched

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"content-studio/internal/domain"
	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/repository"
	"content-studio/internal/infra/worker"
	"content-studio/internal/usecase"
)

// fakeScheduleUC serves a fixed due list and records PostNow calls.
type fakeScheduleUC struct {
	usecase.ScheduleUseCase

	mu         sync.Mutex
	due        []*model.ScheduledPost
	postNowErr error
	posted     []string
}

func (f *fakeScheduleUC) DuePosts(ctx context.Context, limit int) ([]*model.ScheduledPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	due := f.due
	f.due = nil // serve each batch once
	return due, nil
}

func (f *fakeScheduleUC) PostNow(ctx context.Context, id string) (*model.ScheduledPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.posted = append(f.posted, id)
	if f.postNowErr != nil {
		return nil, f.postNowErr
	}
	return &model.ScheduledPost{ID: id, Status: model.PostStatusPosted}, nil
}

func (f *fakeScheduleUC) List(ctx context.Context, filter repository.PostFilter) ([]*model.ScheduledPost, error) {
	return nil, nil
}

func (f *fakeScheduleUC) postedIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.posted...)
}

func runWorker(t *testing.T, uc *fakeScheduleUC) {
	t.Helper()
	logger := zerolog.Nop()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool := worker.NewPool(2, &logger)
	pool.Start(ctx)
	defer pool.Stop()

	w := NewDispatchWorker(5*time.Millisecond, 10, uc, pool, &logger)
	go w.Run(ctx)

	deadline := time.After(time.Second)
	for {
		if len(uc.postedIDs()) > 0 {
			return
		}
		select {
		case <-deadline:
			t.Fatalf("dispatch worker never published due posts")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestDispatchWorker_PublishesDuePosts(t *testing.T) {
	t.Parallel()
	uc := &fakeScheduleUC{due: []*model.ScheduledPost{
		{ID: "p1", Status: model.PostStatusScheduled},
		{ID: "p2", Status: model.PostStatusScheduled},
	}}
	runWorker(t, uc)

	// Both tasks land eventually; poll a little longer for the second.
	deadline := time.After(time.Second)
	for len(uc.postedIDs()) < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected 2 posts published, got %v", uc.postedIDs())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestDispatchWorker_SwallowsConflicts(t *testing.T) {
	t.Parallel()
	// A post grabbed concurrently reports ErrConflict; the worker must
	// neither retry nor crash.
	uc := &fakeScheduleUC{
		due:        []*model.ScheduledPost{{ID: "contended", Status: model.PostStatusScheduled}},
		postNowErr: domain.ErrConflict,
	}
	runWorker(t, uc)

	time.Sleep(20 * time.Millisecond)
	if got := uc.postedIDs(); len(got) != 1 {
		t.Fatalf("expected exactly one attempt, got %v", got)
	}
}

func TestDispatchWorker_StopsOnContextCancel(t *testing.T) {
	t.Parallel()
	logger := zerolog.Nop()
	ctx, cancel := context.WithCancel(context.Background())
	pool := worker.NewPool(1, &logger)
	pool.Start(ctx)
	defer pool.Stop()

	w := NewDispatchWorker(time.Millisecond, 10, &fakeScheduleUC{}, pool, &logger)
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Fatalf("expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatalf("worker did not stop on cancel")
	}
}
