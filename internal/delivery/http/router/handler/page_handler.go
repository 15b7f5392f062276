package handler

import (
	"log/slog"
	"net/http"

	"folio/config"
	"folio/internal/delivery/http/middleware"
	"folio/internal/usecase"
	"folio/internal/view"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// PageHandler renders the projected page.
type PageHandler struct {
	mirror   usecase.MirrorUsecase
	gate     usecase.GateUsecase
	renderer *view.Renderer
	auth     view.AuthClient
	logger   *slog.Logger
}

// NewPageHandler is the constructor for PageHandler, injected by Fx.
func NewPageHandler(mirror usecase.MirrorUsecase, gate usecase.GateUsecase, renderer *view.Renderer, cfg *config.Config, logger *slog.Logger) *PageHandler {
	h := &PageHandler{mirror: mirror, gate: gate, renderer: renderer, logger: logger}
	if cfg.Firebase != nil {
		h.auth = view.AuthClient{
			APIKey:     cfg.Firebase.WebAPIKey,
			AuthDomain: cfg.Firebase.AuthDomain,
		}
	}

	return h
}

// Home renders the list view, or the single-project detail view when the
// p parameter carries an id. Rendering is a pure derivation of the latest
// snapshot; it performs no writes.
func (h *PageHandler) Home(c echo.Context) error {
	sess := middleware.SessionFrom(c)

	// Arms the rescue poll for locked sessions on first render.
	status := h.gate.Status(c.Request().Context(), sess.ID)

	page := view.Project(h.mirror.Snapshot(), view.State{
		Search:   c.QueryParam("q"),
		Sort:     c.QueryParam("sort"),
		DetailID: c.QueryParam("p"),
		Admin:    sess.Admin,
		Verified: status.Verified,
		GateMsg:  status.Message,
	})
	page.SignedIn = sess.UID != ""
	page.Auth = h.auth

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextHTMLCharsetUTF8)
	c.Response().WriteHeader(http.StatusOK)

	return errors.WithStack(h.renderer.Render(c.Response(), page))
}
