// Package router contains routing setup for the HTTP delivery.
package router

import (
	"folio/internal/delivery/http/middleware"
	"folio/internal/delivery/http/router/handler"
	"folio/internal/delivery/http/static"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds everything the router needs, injected by Fx.
type RouterParams struct {
	fx.In

	PageHandler    *handler.PageHandler
	StateHandler   *handler.StateHandler
	GateHandler    *handler.GateHandler
	SessionHandler *handler.SessionHandler
	ProjectHandler *handler.ProjectHandler
	ProfileHandler *handler.ProfileHandler
	Session        *middleware.SessionMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the routes for the application. Every route
// runs behind the session middleware; mutation gating happens inside the
// usecases, not here, so locked or non-admin requests no-op silently
// instead of erroring.
func (r *router) RegisterRoutes(e *echo.Echo) {
	p := r.params

	e.Use(p.Session.Attach)

	e.GET("/healthz", handler.HealthCheck)
	e.GET("/", p.PageHandler.Home)
	e.StaticFS("/static", static.FS())

	api := e.Group("/api")
	{
		api.GET("/state", p.StateHandler.State)
		api.GET("/events", p.StateHandler.Events)

		gate := api.Group("/gate")
		{
			gate.GET("", p.GateHandler.Status)
			gate.POST("/verify", p.GateHandler.Verify)
			gate.POST("/token", p.GateHandler.CaptureToken)
			gate.POST("/expired", p.GateHandler.Expired)
			gate.POST("/error", p.GateHandler.Failed)
		}

		api.POST("/session/signin", p.SessionHandler.SignIn)
		api.POST("/session/signout", p.SessionHandler.SignOut)

		api.POST("/projects", p.ProjectHandler.Create)
		api.PUT("/projects/:id", p.ProjectHandler.Update)
		api.DELETE("/projects/:id", p.ProjectHandler.Delete)
		api.POST("/projects/:id/view", p.ProjectHandler.IncrementView)
		api.POST("/uploads", p.ProjectHandler.Upload)

		api.PUT("/profile", p.ProfileHandler.Update)
	}
}
