package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"folio/internal/delivery/http/middleware"
	"folio/internal/delivery/http/response"
	"folio/internal/usecase"

	"github.com/labstack/echo/v4"
)

// StateHandler exposes the mirror's snapshot and its change feed.
type StateHandler struct {
	mirror usecase.MirrorUsecase
	logger *slog.Logger
}

// NewStateHandler is the constructor for StateHandler, injected by Fx.
func NewStateHandler(mirror usecase.MirrorUsecase, logger *slog.Logger) *StateHandler {
	return &StateHandler{mirror: mirror, logger: logger}
}

type stateOutput struct {
	usecase.Snapshot
	Verified bool   `json:"verified"`
	Admin    bool   `json:"admin"`
	SignedIn bool   `json:"signedIn"`
	GateMsg  string `json:"gateMsg"`
}

// State returns the latest snapshot plus the session flags the page needs
// to decide which controls to show.
func (h *StateHandler) State(c echo.Context) error {
	sess := middleware.SessionFrom(c)
	snap := h.mirror.Snapshot()

	// View counts are admin-only; hide them from everyone else rather
	// than trusting the page to.
	if !sess.Admin {
		for i := range snap.Projects {
			snap.Projects[i].Views = 0
		}
	}

	return response.Success(c, http.StatusOK, stateOutput{
		Snapshot: snap,
		Verified: sess.Verified,
		Admin:    sess.Admin,
		SignedIn: sess.UID != "",
		GateMsg:  sess.GateMsg,
	}, "")
}

// Events streams one server-sent event per mirror version bump for the
// life of the connection. The page re-fetches state on each signal, so
// every render derives from the most recent push.
func (h *StateHandler) Events(c echo.Context) error {
	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	updates, cancel := h.mirror.Subscribe()
	defer cancel()

	// Send the current version immediately so late joiners catch up.
	if err := writeEvent(w, h.mirror.Snapshot().Version); err != nil {
		return nil
	}

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-updates:
			if err := writeEvent(w, h.mirror.Snapshot().Version); err != nil {
				return nil
			}
		}
	}
}

func writeEvent(w *echo.Response, version int64) error {
	if _, err := fmt.Fprintf(w, "data: %d\n\n", version); err != nil {
		return err
	}
	w.Flush()

	return nil
}
