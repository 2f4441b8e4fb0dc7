package main

import (
	"github.com/julienschmidt/httprouter"
)

// MiddlewareMap contains middlewares chain to
// use for public-facing and ops requests.
type MiddlewareMap struct {
	public func(httprouter.Handle) httprouter.Handle
	ops    func(httprouter.Handle) httprouter.Handle
}

// SetupRoutes injects book and ops related endpoints.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.NotFound = api.NotFound()
	api.SetupBookRoutes(router, m)
	api.SetupOpsRoutes(router, m)
	return router
}

// SetupBookRoutes injects book related the api endpoints.
func (api *APIHandler) SetupBookRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.GET("/", m.public(api.Index))
	router.GET("/status", m.public(api.Status))
	router.POST("/v1/books", m.public(api.CreateBook))
	router.GET("/v1/books", m.public(api.GetAllBooks))
	router.PATCH("/v1/books", m.public(api.UpdateBook))
	router.DELETE("/v1/books", m.public(api.DeleteBooks))
	router.GET("/v1/genres", m.public(api.GetGenres))
	router.GET("/v1/stats", m.public(api.GetStats))
	router.GET("/v1/stats/genres", m.public(api.GetGenreDistribution))
	router.GET("/v1/export", m.public(api.ExportBooks))
	return router
}

// SetupOpsRoutes injects internal operations related endpoints.
func (api *APIHandler) SetupOpsRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.GET("/ops/stats", m.ops(api.GetStatistics))
	router.POST("/ops/persist", m.ops(api.PersistBooks))
	return router
}
