// File: internal/usecase/mocks_test.go
package usecase

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"content-studio/internal/domain"
	"content-studio/internal/domain/model"
	"content-studio/internal/domain/ports/adapter"
	"content-studio/internal/domain/ports/repository"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

// memPostRepo is a small in-memory implementation used by unit tests. Its
// UpdateStatus mirrors the conditional transition of the SQL repo.
type memPostRepo struct {
	mu    sync.RWMutex
	store map[string]*model.ScheduledPost
}

func newMemPostRepo() *memPostRepo {
	return &memPostRepo{store: make(map[string]*model.ScheduledPost)}
}

func (m *memPostRepo) Create(ctx context.Context, tx repository.Tx, post *model.ScheduledPost) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *post
	m.store[post.ID] = &cp
	return nil
}

func (m *memPostRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.ScheduledPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memPostRepo) List(ctx context.Context, tx repository.Tx, filter repository.PostFilter) ([]*model.ScheduledPost, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.ScheduledPost
	for _, p := range m.store {
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		if filter.Platform != "" && !p.HasPlatform(filter.Platform) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.Before(out[j].ScheduledFor) })
	return out, nil
}

func (m *memPostRepo) ListDue(ctx context.Context, tx repository.Tx, before time.Time, limit int) ([]*model.ScheduledPost, error) {
	all, _ := m.List(ctx, tx, repository.PostFilter{Status: model.PostStatusScheduled})
	var out []*model.ScheduledPost
	for _, p := range all {
		if !p.ScheduledFor.After(before) {
			out = append(out, p)
		}
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (m *memPostRepo) UpdateStatus(ctx context.Context, tx repository.Tx, id string, from, to model.PostStatus, postedAt *time.Time, lastErr string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Status != from {
		return domain.ErrConflict
	}
	p.Status = to
	p.PostedAt = postedAt
	p.LastError = lastErr
	p.UpdatedAt = time.Now()
	return nil
}

func (m *memPostRepo) Delete(ctx context.Context, tx repository.Tx, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.store, id)
	return nil
}

// fakePublisher records publish calls and fails on demand.
type fakePublisher struct {
	mu       sync.Mutex
	platform string
	err      error
	calls    []adapter.PublishRequest
}

func (f *fakePublisher) Platform() string { return f.platform }

func (f *fakePublisher) Publish(ctx context.Context, req adapter.PublishRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)
	if f.err != nil {
		return "", f.err
	}
	return "post-123", nil
}

func (f *fakePublisher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// fakeStore is an in-memory ObjectStore.
type fakeStore struct {
	mu           sync.Mutex
	objects      map[string][]byte
	contentTypes map[string]string
	created      map[string]time.Time
	putErr       error
	deleted      []string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:      make(map[string][]byte),
		contentTypes: make(map[string]string),
		created:      make(map[string]time.Time),
	}
}

func (f *fakeStore) Put(ctx context.Context, path string, data []byte, contentType string) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[path] = data
	f.contentTypes[path] = contentType
	if _, ok := f.created[path]; !ok {
		f.created[path] = time.Now()
	}
	return nil
}

func (f *fakeStore) Get(ctx context.Context, path string) ([]byte, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[path]
	if !ok {
		return nil, "", domain.ErrNotFound
	}
	return data, f.contentTypes[path], nil
}

func (f *fakeStore) Delete(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.objects[path]; !ok {
		return domain.ErrNotFound
	}
	delete(f.objects, path)
	f.deleted = append(f.deleted, path)
	return nil
}

func (f *fakeStore) ListFolders(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for path := range f.objects {
		for i := 0; i < len(path); i++ {
			if path[i] == '/' {
				if !seen[path[:i]] {
					seen[path[:i]] = true
					out = append(out, path[:i])
				}
				break
			}
		}
	}
	sort.Strings(out)
	return out, nil
}

func (f *fakeStore) List(ctx context.Context, prefix string) ([]adapter.ObjectInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []adapter.ObjectInfo
	for path, data := range f.objects {
		if len(path) >= len(prefix) && path[:len(prefix)] == prefix {
			out = append(out, adapter.ObjectInfo{Path: path, Size: int64(len(data)), CreatedAt: f.created[path]})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out, nil
}

func (f *fakeStore) PublicURL(path string) string { return "https://cdn.test/" + path }

// fakeClock advances instantly on Sleep and counts the sleeps.
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	sleeps int
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	c.now = c.now.Add(d)
	c.sleeps++
	return nil
}

// fakeVideoGen scripts the submit/poll sequence: Poll returns ops[n] on the
// n-th call, repeating the last entry once the script runs out.
type fakeVideoGen struct {
	submitErr error
	pollErr   error
	ops       []*adapter.VideoOperation
	pollCalls int
	downloads map[string][]byte
}

func (f *fakeVideoGen) Submit(ctx context.Context, req adapter.VideoRequest) (*adapter.VideoOperation, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return &adapter.VideoOperation{Handle: "op-1"}, nil
}

func (f *fakeVideoGen) Poll(ctx context.Context, op *adapter.VideoOperation) (*adapter.VideoOperation, error) {
	if f.pollErr != nil {
		return nil, f.pollErr
	}
	i := f.pollCalls
	f.pollCalls++
	if i >= len(f.ops) {
		i = len(f.ops) - 1
	}
	return f.ops[i], nil
}

func (f *fakeVideoGen) Download(ctx context.Context, fileHandle string) ([]byte, error) {
	data, ok := f.downloads[fileHandle]
	if !ok {
		return nil, errors.New("file not found")
	}
	return data, nil
}

// memTagRepo keeps the tag catalog and image associations in memory.
type memTagRepo struct {
	mu        sync.Mutex
	active    []*model.Tag
	imageTags map[string][]int64
	listErr   error
}

func newMemTagRepo(active ...*model.Tag) *memTagRepo {
	return &memTagRepo{active: active, imageTags: make(map[string][]int64)}
}

func (m *memTagRepo) ListActive(ctx context.Context, tx repository.Tx) ([]*model.Tag, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.active, nil
}

func (m *memTagRepo) TagsForImage(ctx context.Context, tx repository.Tx, storagePath string) ([]*model.Tag, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.Tag
	for _, id := range m.imageTags[storagePath] {
		for _, t := range m.active {
			if t.ID == id {
				out = append(out, t)
			}
		}
	}
	return out, nil
}

func (m *memTagRepo) TagsForAllImages(ctx context.Context, tx repository.Tx) (map[string][]*model.Tag, error) {
	m.mu.Lock()
	paths := make([]string, 0, len(m.imageTags))
	for p := range m.imageTags {
		paths = append(paths, p)
	}
	m.mu.Unlock()
	out := make(map[string][]*model.Tag, len(paths))
	for _, p := range paths {
		tags, _ := m.TagsForImage(ctx, tx, p)
		out[p] = tags
	}
	return out, nil
}

func (m *memTagRepo) AddImageTags(ctx context.Context, tx repository.Tx, storagePath string, tagIDs []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range tagIDs {
		exists := false
		for _, have := range m.imageTags[storagePath] {
			if have == id {
				exists = true
				break
			}
		}
		if !exists {
			m.imageTags[storagePath] = append(m.imageTags[storagePath], id)
		}
	}
	return nil
}

func (m *memTagRepo) RemoveImageTag(ctx context.Context, tx repository.Tx, storagePath string, tagID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	ids := m.imageTags[storagePath]
	for i, id := range ids {
		if id == tagID {
			m.imageTags[storagePath] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

// fakeTextGen returns a canned reply and records the last conversation.
type fakeTextGen struct {
	reply string
	err   error
	got   []adapter.Message
}

func (f *fakeTextGen) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	f.got = messages
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

// memPromptStore serves a fixed prompt set.
type memPromptStore struct {
	set     model.PromptSet
	loadErr error
	saved   map[model.PromptKey]string
}

func newMemPromptStore() *memPromptStore {
	return &memPromptStore{
		set: model.PromptSet{
			ImageEnhance: "enhance the image prompt",
			ImageCaption: "write an image caption",
			VideoEnhance: "enhance the video prompt",
			VideoCaption: "write a video caption",
		},
		saved: make(map[model.PromptKey]string),
	}
}

func (m *memPromptStore) Load(ctx context.Context) (*model.PromptSet, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	cp := m.set
	return &cp, nil
}

func (m *memPromptStore) Save(ctx context.Context, key model.PromptKey, content string) error {
	m.saved[key] = content
	return nil
}

// fakeMailer records outgoing email.
type fakeMailer struct {
	sent []adapter.Email
	err  error
}

func (f *fakeMailer) Send(ctx context.Context, email adapter.Email) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, email)
	return nil
}

// memPublishedRepo stores published posts newest first.
type memPublishedRepo struct {
	mu      sync.Mutex
	posts   []*model.PublishedPost
	saveErr error
}

func (m *memPublishedRepo) Save(ctx context.Context, tx repository.Tx, post *model.PublishedPost) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *post
	m.posts = append([]*model.PublishedPost{&cp}, m.posts...)
	return nil
}

func (m *memPublishedRepo) List(ctx context.Context, tx repository.Tx, limit int) ([]*model.PublishedPost, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if limit > len(m.posts) {
		limit = len(m.posts)
	}
	return m.posts[:limit], nil
}

// fakeTxManager runs the callback without a real transaction.
type fakeTxManager struct{}

func (fakeTxManager) WithTx(ctx context.Context, opts pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	return fn(ctx, repository.NoTX)
}
