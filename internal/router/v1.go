package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/jobportal/internal/handler"
	"github.com/deppfellow/jobportal/internal/middleware"
)

func registerV1Routes(g *echo.Group, h *handler.Handlers, auth *middleware.AuthMiddleware) {
	g.GET("/jobs", handler.Handle(h.Jobs.Search, http.StatusOK))
	g.GET("/jobs/:id", handler.Handle(h.Jobs.Get, http.StatusOK))
	g.POST("/jobs", handler.Handle(h.Jobs.Post, http.StatusCreated))
	g.GET("/jobs/:id/applications", handler.Handle(h.Applications.ListForJob, http.StatusOK))

	g.GET("/companies", handler.Handle(h.Companies.List, http.StatusOK))
	g.POST("/companies", handler.Handle(h.Companies.Create, http.StatusCreated))
	g.GET("/companies/:id", handler.Handle(h.Companies.Get, http.StatusOK))

	g.POST("/users", handler.Handle(h.Users.Register, http.StatusCreated))

	g.GET("/applications/:id", handler.Handle(h.Applications.Get, http.StatusOK))
	g.PATCH("/applications/:id", handler.Handle(h.Applications.UpdateStatus, http.StatusOK))
	g.POST("/applications/:id/interviews", handler.Handle(h.Applications.ScheduleInterview, http.StatusCreated))

	g.GET("/interviews", handler.Handle(h.Applications.Interviews, http.StatusOK))
	g.GET("/interviews/:id", handler.Handle(h.Applications.Interview, http.StatusOK))
	g.PATCH("/interviews/:id", handler.Handle(h.Applications.UpdateInterview, http.StatusOK))

	me := g.Group("/me", auth.RequireAuth)
	me.GET("", handler.Handle(h.Users.Profile, http.StatusOK))
	me.PATCH("", handler.Handle(h.Users.UpdateProfile, http.StatusOK))
	me.POST("/applications", handler.Handle(h.Users.Apply, http.StatusCreated))
	me.GET("/applications", handler.Handle(h.Users.Applications, http.StatusOK))
	me.DELETE("/applications/:id", handler.HandleNoContent(h.Users.Withdraw, http.StatusNoContent))
	me.GET("/interviews", handler.Handle(h.Users.Interviews, http.StatusOK))
}
