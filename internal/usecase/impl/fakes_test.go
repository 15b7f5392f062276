package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"folio/internal/domain/entity"
	"folio/internal/domain/repository"
	"folio/internal/domain/service"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeChallengeVerifier scripts siteverify outcomes per token.
type fakeChallengeVerifier struct {
	mu      sync.Mutex
	accept  map[string]bool
	calls   int
	failErr error
}

func (f *fakeChallengeVerifier) Verify(_ context.Context, token string) (service.ChallengeResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls++
	if f.failErr != nil {
		return service.ChallengeResult{}, f.failErr
	}
	if f.accept[token] {
		return service.ChallengeResult{Success: true}, nil
	}

	return service.ChallengeResult{ErrorCodes: []string{"invalid-input-response"}}, nil
}

func (f *fakeChallengeVerifier) verifyCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.calls
}

// fakeIdentityVerifier maps tokens to identities.
type fakeIdentityVerifier struct {
	identities map[string]service.Identity
	err        error
	calls      int
}

func (f *fakeIdentityVerifier) Verify(_ context.Context, idToken string) (service.Identity, error) {
	f.calls++
	if f.err != nil {
		return service.Identity{}, f.err
	}

	return f.identities[idToken], nil
}

// fakeProjectRepo records mutations.
type fakeProjectRepo struct {
	mu          sync.Mutex
	created     []entity.ProjectFields
	updated     map[string]entity.ProjectFields
	deleted     []string
	incremented []string
	updateErr   error
	createErr   error

	incrementDone chan string
}

func newFakeProjectRepo() *fakeProjectRepo {
	return &fakeProjectRepo{
		updated:       make(map[string]entity.ProjectFields),
		incrementDone: make(chan string, 8),
	}
}

func (f *fakeProjectRepo) Create(_ context.Context, fields entity.ProjectFields) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, fields)

	return "doc-1", nil
}

func (f *fakeProjectRepo) Update(_ context.Context, id string, fields entity.ProjectFields) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated[id] = fields

	return nil
}

func (f *fakeProjectRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.deleted = append(f.deleted, id)

	return nil
}

func (f *fakeProjectRepo) IncrementViews(_ context.Context, id string) error {
	f.mu.Lock()
	f.incremented = append(f.incremented, id)
	f.mu.Unlock()

	f.incrementDone <- id

	return nil
}

func (f *fakeProjectRepo) Watch(ctx context.Context, _ func(repository.ProjectsSnapshot)) error {
	<-ctx.Done()

	return nil
}

func (f *fakeProjectRepo) mutationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.created) + len(f.updated) + len(f.deleted) + len(f.incremented)
}

// fakeProfileRepo records saves.
type fakeProfileRepo struct {
	mu     sync.Mutex
	saved  []entity.Profile
	getErr error
	exists bool
}

func (f *fakeProfileRepo) Get(_ context.Context) (entity.Profile, bool, error) {
	if f.getErr != nil {
		return entity.Profile{}, false, f.getErr
	}

	return entity.Profile{}, f.exists, nil
}

func (f *fakeProfileRepo) Save(_ context.Context, profile entity.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.saved = append(f.saved, profile)

	return nil
}

func (f *fakeProfileRepo) Watch(ctx context.Context, _ func(repository.ProfileSnapshot)) error {
	<-ctx.Done()

	return nil
}

func (f *fakeProfileRepo) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return len(f.saved)
}

func adminSession() *entity.Session {
	return &entity.Session{ID: "s1", Verified: true, UID: "admin", Admin: true}
}
