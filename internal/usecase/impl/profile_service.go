package impl

import (
	"context"
	"log/slog"

	"folio/internal/domain/entity"
	domainerrors "folio/internal/domain/errors"
	"folio/internal/domain/repository"
	"folio/internal/usecase"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	repo   repository.ProfileRepository
	logger *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(repo repository.ProfileRepository, logger *slog.Logger) usecase.ProfileUsecase {
	return &profileService{repo: repo, logger: logger}
}

// Update merge-writes all profile fields; a silent no-op without a
// verified admin session. Merge semantics keep partial updates from
// erasing untouched fields.
func (srv *profileService) Update(ctx context.Context, sess *entity.Session, input usecase.ProfileInput) (bool, error) {
	if !sess.CanMutate() {
		srv.logger.Debug("Profile update skipped, session cannot mutate")

		return false, nil
	}

	profile := entity.Profile{
		Name:      input.Name,
		Tagline:   input.Tagline,
		About:     input.About,
		GitHub:    input.GitHub,
		LinkedIn:  input.LinkedIn,
		Instagram: input.Instagram,
		Email:     input.Email,
	}

	if err := srv.repo.Save(ctx, profile); err != nil {
		srv.logger.Error("Profile save failed", slog.Any("error", err))

		return true, domainerrors.ErrProfileSaveFailed.WithDetails(err.Error())
	}

	srv.logger.Info("Profile updated")

	return true, nil
}
