package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	// Reader resolves resource lookups
	Reader Reader

	// MaxLimit is the server-enforced page size ceiling
	MaxLimit int

	// EnableDocs serves the interactive API documentation page
	EnableDocs bool
}

// NewRouter builds the route table. More specific literal segments are
// registered before the parameterized ones so chi resolves, for example,
// /users/by-username/{username} ahead of /users/{fid}.
func NewRouter(config RouterConfig) chi.Router {
	h := NewHandlers(config.Reader, config.MaxLimit)
	r := chi.NewRouter()

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/openapi.json", GetOpenAPI)

		r.Get("/users/by-username/{username}", h.GetUserByUsername)
		r.Get("/users/{fid}", h.GetUserByFid)

		r.Get("/verifications/all-by-fid/{fid}", h.GetAllVerificationMessagesByFid)
		r.Get("/verifications/{fid}/{address}", h.GetVerificationByAddress)
		r.Get("/verifications/{fid}", h.GetVerificationsByFid)

		r.Get("/casts/by-fid/{fid}", h.GetCastsByFid)
		r.Get("/casts/by-mention/{fid}", h.GetCastsByMention)
		r.Get("/casts/by-parent/{fid}/{hash}", h.GetCastsByParent)
		r.Get("/casts/by-parent-url", h.GetCastsByParentURL)
		r.Get("/casts/{fid}/{hash}", h.GetCast)

		r.Get("/conversations/{fid}/{hash}", h.GetConversation)

		r.Get("/reactions/by-fid/{fid}", h.GetReactionsByFid)
		r.Get("/reactions/by-target-cast/{fid}/{hash}", h.GetReactionsByTargetCast)
		r.Get("/reactions/by-target-url", h.GetReactionsByTargetURL)

		r.Get("/links/by-fid/{fid}", h.GetLinksByFid)
		r.Get("/links/by-target/{fid}", h.GetLinksByTarget)
		r.Get("/links/compact-state/{fid}", h.GetLinkCompactState)

		r.Get("/username-proofs/by-name/{name}", h.GetUsernameProofByName)
		r.Get("/username-proofs/{fid}", h.GetUsernameProofsByFid)
	})

	if config.EnableDocs {
		r.Get("/docs", GetDocsPage)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusNotFound, ErrorEnvelope{
			Error: ErrorBody{Code: "not_found", Message: "Resource not found: no such route"},
		})
	})

	return r
}
