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

// SessionHandler holds dependencies for sign-in/out handlers.
type SessionHandler struct {
	sessions usecase.SessionUsecase
	logger   *slog.Logger
}

// NewSessionHandler is the constructor for SessionHandler, injected by Fx.
func NewSessionHandler(sessions usecase.SessionUsecase, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

type signInInput struct {
	IDToken string `json:"idToken"`
}

// SignIn resolves the provider ID token into the session's identity and
// admin capability. Behind a locked gate it no-ops like the mutation
// routes, with applied false as the only trace.
func (h *SessionHandler) SignIn(c echo.Context) error {
	var input signInInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid sign-in input")
	}

	sess := middleware.SessionFrom(c)
	output, applied, err := h.sessions.SignIn(c.Request().Context(), sess.ID, input.IDToken)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{
		"applied": applied,
		"uid":     output.UID,
		"admin":   output.Admin,
	}, "")
}

// SignOut clears the session's identity; a no-op behind a locked gate.
func (h *SessionHandler) SignOut(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	applied, err := h.sessions.SignOut(sess.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"applied": applied}, "")
}
