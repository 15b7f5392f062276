package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"folio/internal/domain/entity"
	"folio/internal/domain/repository"
	"folio/internal/usecase"

	"go.uber.org/fx"
)

const ensureTimeout = 10 * time.Second

// mirrorService implements the MirrorUsecase interface. The two watcher
// goroutines are the snapshots' single writers; handlers read through the
// RWMutex.
type mirrorService struct {
	projects repository.ProjectRepository
	profile  repository.ProfileRepository
	logger   *slog.Logger

	mu   sync.RWMutex
	snap usecase.Snapshot

	ensureOnce sync.Once

	subMu       sync.Mutex
	subscribers map[chan struct{}]struct{}
}

// MirrorParams holds dependencies for the mirror, injected by Fx.
type MirrorParams struct {
	fx.In
	fx.Lifecycle

	Projects repository.ProjectRepository
	Profile  repository.ProfileRepository
	Logger   *slog.Logger
}

// NewMirrorService starts the two standing subscriptions for the process
// lifetime; they are cancelled on shutdown.
func NewMirrorService(params MirrorParams) usecase.MirrorUsecase {
	srv := newMirrorService(params.Projects, params.Profile, params.Logger)

	ctx, cancel := context.WithCancel(context.Background())
	go srv.watchProjects(ctx)
	go srv.watchProfile(ctx)

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			cancel()

			return nil
		},
	})

	return srv
}

func newMirrorService(projects repository.ProjectRepository, profile repository.ProfileRepository, logger *slog.Logger) *mirrorService {
	return &mirrorService{
		projects:    projects,
		profile:     profile,
		logger:      logger,
		subscribers: make(map[chan struct{}]struct{}),
	}
}

// Snapshot returns the most recently received materialization. Renders
// derived from it never interleave old and new items because every remote
// notification replaces the whole snapshot.
func (srv *mirrorService) Snapshot() usecase.Snapshot {
	srv.mu.RLock()
	defer srv.mu.RUnlock()

	snap := srv.snap
	snap.Projects = append([]entity.Project(nil), srv.snap.Projects...)

	return snap
}

// Subscribe registers a change listener. Signals coalesce: a subscriber
// that has not drained its channel misses no content, only intermediate
// version numbers.
func (srv *mirrorService) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)

	srv.subMu.Lock()
	srv.subscribers[ch] = struct{}{}
	srv.subMu.Unlock()

	cancel := func() {
		srv.subMu.Lock()
		delete(srv.subscribers, ch)
		srv.subMu.Unlock()
	}

	return ch, cancel
}

func (srv *mirrorService) watchProjects(ctx context.Context) {
	err := srv.projects.Watch(ctx, srv.onProjects)
	if err != nil {
		srv.logger.Error("Projects subscription ended", slog.Any("error", err))
	}
}

func (srv *mirrorService) watchProfile(ctx context.Context) {
	err := srv.profile.Watch(ctx, srv.onProfile)
	if err != nil {
		srv.logger.Error("Profile subscription ended", slog.Any("error", err))
	}
}

// onProjects replaces the project snapshot wholesale.
func (srv *mirrorService) onProjects(snap repository.ProjectsSnapshot) {
	srv.mu.Lock()
	if snap.Err != nil {
		srv.snap.ProjectsErr = snap.Err.Error()
	} else {
		srv.snap.Projects = snap.Projects
		srv.snap.ProjectsErr = ""
	}
	srv.snap.Version++
	version := srv.snap.Version
	srv.mu.Unlock()

	srv.logger.Debug("Projects snapshot received",
		slog.Int("count", len(snap.Projects)),
		slog.Int64("version", version),
	)
	srv.broadcast()
}

// onProfile replaces the profile snapshot, and on the first observation
// of an absent singleton writes the default document exactly once per
// process. The write is read-check-then-write, not transactional; two
// clients starting simultaneously race benignly because the merge write
// is idempotent in content.
func (srv *mirrorService) onProfile(snap repository.ProfileSnapshot) {
	if snap.Err == nil && !snap.Exists {
		srv.ensureOnce.Do(func() {
			srv.logger.Info("Profile singleton absent, writing default")
			ctx, cancel := context.WithTimeout(context.Background(), ensureTimeout)
			defer cancel()
			if err := srv.profile.Save(ctx, entity.DefaultProfile()); err != nil {
				srv.logger.Error("Writing default profile failed", slog.Any("error", err))
			}
		})
	}

	srv.mu.Lock()
	if snap.Err != nil {
		srv.snap.ProfileErr = snap.Err.Error()
	} else {
		srv.snap.Profile = snap.Profile
		srv.snap.ProfileExists = snap.Exists
		srv.snap.ProfileErr = ""
	}
	srv.snap.Version++
	srv.mu.Unlock()

	srv.broadcast()
}

func (srv *mirrorService) broadcast() {
	srv.subMu.Lock()
	defer srv.subMu.Unlock()

	for ch := range srv.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
