// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"folio/config"
	"folio/internal/domain/entity"
	domainerrors "folio/internal/domain/errors"
	"folio/internal/domain/service"
	"folio/internal/infra/session"
	"folio/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	msgExpired = "Verification expired, please verify again."
	msgError   = "Verification failed, please reload the page or try again later."
)

// gateService implements the GateUsecase interface.
type gateService struct {
	store    *session.Store
	verifier service.ChallengeVerifier
	interval time.Duration
	attempts int
	logger   *slog.Logger

	mu      sync.Mutex
	polling map[string]struct{}
	done    chan struct{}
}

// GateParams holds dependencies for the gate service, injected by Fx.
type GateParams struct {
	fx.In
	fx.Lifecycle

	Store    *session.Store
	Verifier service.ChallengeVerifier
	Config   *config.Config
	Logger   *slog.Logger
}

// NewGateService is the constructor for gateService.
func NewGateService(params GateParams) usecase.GateUsecase {
	srv := newGateService(params.Store, params.Verifier, params.Config.Gate, params.Logger)

	params.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			close(srv.done)

			return nil
		},
	})

	return srv
}

func newGateService(store *session.Store, verifier service.ChallengeVerifier, cfg config.GateConfig, logger *slog.Logger) *gateService {
	return &gateService{
		store:    store,
		verifier: verifier,
		interval: cfg.RescueInterval,
		attempts: cfg.RescueAttempts,
		logger:   logger,
		polling:  make(map[string]struct{}),
		done:     make(chan struct{}),
	}
}

// Status reports the gate state and arms the rescue poll for a locked
// session. The poll is the safety net for the widget's success callback,
// which is not perfectly reliable in practice.
func (srv *gateService) Status(ctx context.Context, sessionID string) usecase.GateStatus {
	sess, ok := srv.store.Get(sessionID)
	if !ok {
		return usecase.GateStatus{}
	}

	if !sess.Verified {
		srv.startRescue(sessionID)
	}

	return usecase.GateStatus{Verified: sess.Verified, Message: sess.GateMsg}
}

// Success handles the widget's success callback.
func (srv *gateService) Success(ctx context.Context, sessionID, token string) error {
	result, err := srv.verifier.Verify(ctx, token)
	if err != nil {
		return errors.Wrap(err, "verify challenge token")
	}
	if !result.Success {
		srv.relock(sessionID, msgError)

		return domainerrors.ErrChallengeRejected.WithDetails(strings.Join(result.ErrorCodes, ", "))
	}

	srv.unlock(sessionID, "callback")

	return nil
}

// CaptureToken records the hidden-input token without unlocking.
func (srv *gateService) CaptureToken(sessionID, token string) {
	srv.store.Mutate(sessionID, func(sess *entity.Session) {
		sess.PendingToken = strings.TrimSpace(token)
	})
}

// Expired relocks the session; the visitor must verify again.
func (srv *gateService) Expired(sessionID string) {
	srv.relock(sessionID, msgExpired)
}

// Failed relocks the session after a widget error.
func (srv *gateService) Failed(sessionID string) {
	srv.relock(sessionID, msgError)
}

func (srv *gateService) unlock(sessionID, reason string) {
	changed := false
	srv.store.Mutate(sessionID, func(sess *entity.Session) {
		if sess.Verified {
			return
		}
		sess.Verified = true
		sess.GateMsg = ""
		sess.PendingToken = ""
		changed = true
	})

	if changed {
		srv.logger.Info("Gate unlocked", slog.String("sessionID", sessionID), slog.String("reason", reason))
	}
}

func (srv *gateService) relock(sessionID, msg string) {
	srv.store.Mutate(sessionID, func(sess *entity.Session) {
		sess.Verified = false
		sess.GateMsg = msg
		sess.PendingToken = ""
	})
	srv.logger.Info("Gate locked", slog.String("sessionID", sessionID), slog.String("msg", msg))
}

// startRescue arms one bounded poll per session. Each tick checks whether
// the widget wrote its completion token even though the success callback
// never fired; the first verified token unlocks the session exactly once.
// The poll self-cancels on unlock, budget exhaustion, session loss, or
// shutdown.
func (srv *gateService) startRescue(sessionID string) {
	srv.mu.Lock()
	if _, running := srv.polling[sessionID]; running {
		srv.mu.Unlock()

		return
	}
	srv.polling[sessionID] = struct{}{}
	srv.mu.Unlock()

	go srv.rescue(sessionID)
}

func (srv *gateService) rescue(sessionID string) {
	defer func() {
		srv.mu.Lock()
		delete(srv.polling, sessionID)
		srv.mu.Unlock()
	}()

	ticker := time.NewTicker(srv.interval)
	defer ticker.Stop()

	for tries := 0; tries < srv.attempts; tries++ {
		select {
		case <-srv.done:
			return
		case <-ticker.C:
		}

		sess, ok := srv.store.Get(sessionID)
		if !ok || sess.Verified {
			return
		}

		token := sess.PendingToken
		if token == "" {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), srv.interval*4)
		result, err := srv.verifier.Verify(ctx, token)
		cancel()
		if err != nil {
			srv.logger.Warn("Rescue verification failed", slog.String("sessionID", sessionID), slog.Any("error", err))

			continue
		}
		if result.Success {
			srv.unlock(sessionID, "rescue-token")

			return
		}

		// Token present but rejected; drop it so a fresh one can land.
		srv.store.Mutate(sessionID, func(sess *entity.Session) {
			if sess.PendingToken == token {
				sess.PendingToken = ""
			}
		})
	}
}
