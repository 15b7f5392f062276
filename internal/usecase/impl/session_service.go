package impl

import (
	"context"
	"log/slog"

	"folio/config"
	"folio/internal/domain/entity"
	domainerrors "folio/internal/domain/errors"
	"folio/internal/domain/service"
	"folio/internal/infra/session"
	"folio/internal/usecase"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	store    *session.Store
	verifier service.IdentityVerifier
	adminUID string
	logger   *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(
	store *session.Store,
	verifier service.IdentityVerifier,
	cfg *config.Config,
	logger *slog.Logger,
) usecase.SessionUsecase {
	return &sessionService{
		store:    store,
		verifier: verifier,
		adminUID: cfg.Auth.AdminUID,
		logger:   logger,
	}
}

// SignIn verifies the ID token and derives the admin capability. Behind a
// locked gate it is a silent no-op: the token never reaches the verifier.
// On verification failure the previous session state stays untouched and
// the collaborator's message is passed through in the error details.
func (srv *sessionService) SignIn(ctx context.Context, sessionID, idToken string) (usecase.SignInOutput, bool, error) {
	sess, ok := srv.store.Get(sessionID)
	if !ok {
		return usecase.SignInOutput{}, false, domainerrors.ErrSessionNotFound
	}
	if !sess.Verified {
		srv.logger.Debug("Sign-in skipped, gate is locked")

		return usecase.SignInOutput{}, false, nil
	}

	identity, err := srv.verifier.Verify(ctx, idToken)
	if err != nil {
		srv.logger.Warn("Sign-in rejected", slog.Any("error", err))

		return usecase.SignInOutput{}, true, domainerrors.ErrSignInFailed.WithDetails(err.Error())
	}

	admin := identity.UID != "" && (srv.adminUID == "" || identity.UID == srv.adminUID)

	if !srv.store.Mutate(sessionID, func(sess *entity.Session) {
		sess.UID = identity.UID
		sess.Admin = admin
	}) {
		return usecase.SignInOutput{}, true, domainerrors.ErrSessionNotFound
	}

	srv.logger.Info("Signed in", slog.String("uid", identity.UID), slog.Bool("admin", admin))

	return usecase.SignInOutput{UID: identity.UID, Admin: admin}, true, nil
}

// SignOut clears the identity and admin flag; a silent no-op behind a
// locked gate.
func (srv *sessionService) SignOut(sessionID string) (bool, error) {
	sess, ok := srv.store.Get(sessionID)
	if !ok {
		return false, domainerrors.ErrSessionNotFound
	}
	if !sess.Verified {
		srv.logger.Debug("Sign-out skipped, gate is locked")

		return false, nil
	}

	if !srv.store.Mutate(sessionID, func(sess *entity.Session) {
		sess.UID = ""
		sess.Admin = false
	}) {
		return false, domainerrors.ErrSessionNotFound
	}

	return true, nil
}
