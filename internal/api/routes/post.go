package routes

import (
	"Nest/internal/api/handlers/post"
	"Nest/internal/api/middleware"
	"Nest/internal/core/state"

	"github.com/go-chi/chi/v5"
)

// RegisterPostRoutes registers post-related XRPC endpoints on the router.
// Procedures take the writer lock and require a caller; queries share the reader lock.
func RegisterPostRoutes(r chi.Router, gateway state.Gateway, caller *middleware.CallerMiddleware, writer *middleware.SingleWriter) {
	createHandler := post.NewCreateHandler(gateway)
	editHandler := post.NewEditHandler(gateway)
	changeStatusHandler := post.NewChangeStatusHandler(gateway)
	deleteHandler := post.NewDeleteHandler(gateway)
	getHandler := post.NewGetHandler(gateway)
	pageHandler := post.NewPageHandler(gateway)

	// Procedure endpoints (POST)
	procedures := r.With(caller.RequireCaller, writer.Write)
	procedures.Post("/xrpc/nest.post.create", createHandler.HandleCreate)
	procedures.Post("/xrpc/nest.post.edit", editHandler.HandleEdit)
	procedures.Post("/xrpc/nest.post.changeStatus", changeStatusHandler.HandleChangeStatus)
	procedures.Post("/xrpc/nest.post.delete", deleteHandler.HandleDelete)

	// Query endpoints (GET)
	queries := r.With(caller.OptionalCaller, writer.Read)
	queries.Get("/xrpc/nest.post.get", getHandler.HandleGet)
	queries.Get("/xrpc/nest.post.page", pageHandler.HandlePage)
}
