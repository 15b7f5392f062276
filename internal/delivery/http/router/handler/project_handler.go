package handler

import (
	"log/slog"
	"net/http"

	"folio/internal/delivery/http/middleware"
	"folio/internal/delivery/http/response"
	"folio/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProjectHandler holds dependencies for project mutation handlers. All of
// them go through the gateway, which makes them silent no-ops for
// sessions that are locked or not admin; the applied flag in the envelope
// is the only trace.
type ProjectHandler struct {
	projects usecase.ProjectUsecase
	logger   *slog.Logger
}

// NewProjectHandler is the constructor for ProjectHandler, injected by Fx.
func NewProjectHandler(projects usecase.ProjectUsecase, logger *slog.Logger) *ProjectHandler {
	return &ProjectHandler{projects: projects, logger: logger}
}

// Create handles new-project submissions.
func (h *ProjectHandler) Create(c echo.Context) error {
	var input usecase.ProjectInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid project input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	sess := middleware.SessionFrom(c)
	applied, err := h.projects.Create(c.Request().Context(), sess, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, map[string]any{"applied": applied}, "")
}

// Update handles edits to an existing project.
func (h *ProjectHandler) Update(c echo.Context) error {
	var input usecase.ProjectInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid project input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	sess := middleware.SessionFrom(c)
	applied, err := h.projects.Update(c.Request().Context(), sess, c.Param("id"), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"applied": applied}, "")
}

// Delete removes a project. The browser's confirmation dialog precedes
// this call; reaching here is the confirmed step.
func (h *ProjectHandler) Delete(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	applied, err := h.projects.Delete(c.Request().Context(), sess, c.Param("id"))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"applied": applied}, "")
}

// IncrementView fires the view-count increment. It always answers 204:
// failure must never block or reverse the navigation it accompanies.
func (h *ProjectHandler) IncrementView(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	h.projects.IncrementViews(sess, c.Param("id"))

	return c.NoContent(http.StatusNoContent)
}

// Upload stores a thumbnail file and returns its durable URL.
func (h *ProjectHandler) Upload(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Missing upload file")
	}

	src, err := file.Open()
	if err != nil {
		return errors.Wrap(err, "open upload")
	}
	defer src.Close()

	sess := middleware.SessionFrom(c)
	url, applied, err := h.projects.UploadThumbnail(
		c.Request().Context(),
		sess,
		file.Filename,
		file.Header.Get("Content-Type"),
		src,
	)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"applied": applied, "url": url}, "")
}
