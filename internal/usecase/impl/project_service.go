package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"folio/internal/domain/entity"
	domainerrors "folio/internal/domain/errors"
	"folio/internal/domain/repository"
	"folio/internal/domain/service"
	"folio/internal/usecase"

	"github.com/pkg/errors"
)

const incrementTimeout = 10 * time.Second

// projectService implements the ProjectUsecase interface.
type projectService struct {
	repo       repository.ProjectRepository
	thumbnails service.ThumbnailStore
	logger     *slog.Logger
}

// NewProjectService is the constructor for projectService. The thumbnail
// store may be nil when no bucket is configured.
func NewProjectService(
	repo repository.ProjectRepository,
	thumbnails service.ThumbnailStore,
	logger *slog.Logger,
) usecase.ProjectUsecase {
	return &projectService{
		repo:       repo,
		thumbnails: thumbnails,
		logger:     logger,
	}
}

// Create writes a new record; a silent no-op without a verified admin
// session.
func (srv *projectService) Create(ctx context.Context, sess *entity.Session, input usecase.ProjectInput) (bool, error) {
	if !sess.CanMutate() {
		srv.logger.Debug("Create skipped, session cannot mutate")

		return false, nil
	}

	fields := fieldsFromInput(input)
	if fields.Thumbnail == "" {
		fields.Thumbnail = entity.PlaceholderThumbnail(fields.Title)
	}

	id, err := srv.repo.Create(ctx, fields)
	if err != nil {
		srv.logger.Error("Create project failed", slog.Any("error", err))

		return true, domainerrors.ErrProjectSaveFailed.WithDetails(err.Error())
	}

	srv.logger.Info("Project created", slog.String("id", id), slog.String("title", fields.Title))

	return true, nil
}

// Update overwrites the field set; createdAt and views stay untouched.
func (srv *projectService) Update(ctx context.Context, sess *entity.Session, id string, input usecase.ProjectInput) (bool, error) {
	if !sess.CanMutate() {
		srv.logger.Debug("Update skipped, session cannot mutate")

		return false, nil
	}

	fields := fieldsFromInput(input)
	if fields.Thumbnail == "" {
		fields.Thumbnail = entity.PlaceholderThumbnail(fields.Title)
	}

	if err := srv.repo.Update(ctx, id, fields); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			return true, domainerrors.ErrProjectNotFound
		}
		srv.logger.Error("Update project failed", slog.String("id", id), slog.Any("error", err))

		return true, domainerrors.ErrProjectSaveFailed.WithDetails(err.Error())
	}

	return true, nil
}

// Delete removes the record, irreversibly.
func (srv *projectService) Delete(ctx context.Context, sess *entity.Session, id string) (bool, error) {
	if !sess.CanMutate() {
		srv.logger.Debug("Delete skipped, session cannot mutate")

		return false, nil
	}

	if err := srv.repo.Delete(ctx, id); err != nil {
		srv.logger.Error("Delete project failed", slog.String("id", id), slog.Any("error", err))

		return true, domainerrors.ErrProjectDeleteFailed.WithDetails(err.Error())
	}

	srv.logger.Info("Project deleted", slog.String("id", id))

	return true, nil
}

// IncrementViews is fire-and-forget. It needs only a verified session,
// not an admin one: any gated-in visitor following the external link
// counts. Failures are logged and never block the navigation.
func (srv *projectService) IncrementViews(sess *entity.Session, id string) {
	if sess == nil || !sess.Verified {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), incrementTimeout)
		defer cancel()

		if err := srv.repo.IncrementViews(ctx, id); err != nil {
			srv.logger.Warn("View-count increment failed", slog.String("id", id), slog.Any("error", err))
		}
	}()
}

// UploadThumbnail stores the bytes and returns the durable URL.
func (srv *projectService) UploadThumbnail(ctx context.Context, sess *entity.Session, filename, contentType string, r io.Reader) (string, bool, error) {
	if !sess.CanMutate() {
		srv.logger.Debug("Upload skipped, session cannot mutate")

		return "", false, nil
	}
	if srv.thumbnails == nil {
		return "", true, domainerrors.ErrUploadFailed.WithDetails("no storage bucket configured")
	}

	url, err := srv.thumbnails.Upload(ctx, filename, contentType, r)
	if err != nil {
		srv.logger.Error("Thumbnail upload failed", slog.Any("error", err))

		return "", true, domainerrors.ErrUploadFailed.WithDetails(err.Error())
	}

	return url, true, nil
}

func fieldsFromInput(input usecase.ProjectInput) entity.ProjectFields {
	return entity.ProjectFields{
		Title:       input.Title,
		URL:         input.URL,
		Description: input.Description,
		Prompt:      input.Prompt,
		Thumbnail:   input.Thumbnail,
	}
}
