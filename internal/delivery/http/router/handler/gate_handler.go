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

// GateHandler holds dependencies for verification-gate handlers.
type GateHandler struct {
	gate   usecase.GateUsecase
	logger *slog.Logger
}

// NewGateHandler is the constructor for GateHandler, injected by Fx.
func NewGateHandler(gate usecase.GateUsecase, logger *slog.Logger) *GateHandler {
	return &GateHandler{gate: gate, logger: logger}
}

type gateTokenInput struct {
	Token string `json:"token"`
}

// Status reports the session's gate state; calling it also arms the
// rescue poll for locked sessions.
func (h *GateHandler) Status(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	status := h.gate.Status(c.Request().Context(), sess.ID)

	return response.Success(c, http.StatusOK, status, "")
}

// Verify handles the widget's success callback.
func (h *GateHandler) Verify(c echo.Context) error {
	var input gateTokenInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid gate input")
	}

	sess := middleware.SessionFrom(c)
	if err := h.gate.Success(c.Request().Context(), sess.ID, input.Token); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, usecase.GateStatus{Verified: true}, "Verification passed")
}

// CaptureToken records the hidden-input token for the rescue poll. It
// never unlocks by itself and always answers OK.
func (h *GateHandler) CaptureToken(c echo.Context) error {
	var input gateTokenInput
	if err := c.Bind(&input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid gate input")
	}

	sess := middleware.SessionFrom(c)
	h.gate.CaptureToken(sess.ID, input.Token)

	return response.Success(c, http.StatusOK, nil, "")
}

// Expired handles the widget's expiry callback.
func (h *GateHandler) Expired(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	h.gate.Expired(sess.ID)

	return response.Success(c, http.StatusOK, h.gate.Status(c.Request().Context(), sess.ID), "")
}

// Failed handles the widget's error callback.
func (h *GateHandler) Failed(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	h.gate.Failed(sess.ID)

	return response.Success(c, http.StatusOK, h.gate.Status(c.Request().Context(), sess.ID), "")
}
