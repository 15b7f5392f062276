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

// ProfileHandler holds dependencies for profile handlers.
type ProfileHandler struct {
	profile usecase.ProfileUsecase
	logger  *slog.Logger
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(profile usecase.ProfileUsecase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profile: profile, logger: logger}
}

// Update merge-writes the landing-area content.
func (h *ProfileHandler) Update(c echo.Context) error {
	var input usecase.ProfileInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.WithStack(err)
	}

	sess := middleware.SessionFrom(c)
	applied, err := h.profile.Update(c.Request().Context(), sess, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"applied": applied}, "")
}
