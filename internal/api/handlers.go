package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hubgate/hubgate/internal/resource"
)

// Handlers holds the request-scoped assembly for every route: validate
// inputs, build a descriptor and options, call the Reader, write the result.
type Handlers struct {
	reader   Reader
	maxLimit int
}

// NewHandlers creates the handler set for the given reader and limit ceiling
func NewHandlers(reader Reader, maxLimit int) *Handlers {
	return &Handlers{reader: reader, maxLimit: maxLimit}
}

// fetch runs a lookup and writes the response for it
func (h *Handlers) fetch(w http.ResponseWriter, r *http.Request, d resource.Descriptor, opts resource.ReadOptions) {
	payload, err := h.reader.ReadResource(r.Context(), d, opts)
	if err != nil {
		writeError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, payload)
}

// limitOptions validates the limit query parameter and wraps it in options
func (h *Handlers) limitOptions(r *http.Request) (resource.ReadOptions, *resource.Error) {
	requested, err := parseOptionalInt(r.URL.Query().Get("limit"))
	if err != nil {
		return resource.ReadOptions{}, err
	}
	limit, err := normalizeLimit(requested, h.maxLimit)
	if err != nil {
		return resource.ReadOptions{}, err
	}
	return resource.ReadOptions{Limit: &limit}, nil
}

// GetUserByFid handles GET /api/v1/users/{fid}
func (h *Handlers) GetUserByFid(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFid(chi.URLParam(r, "fid"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.fetch(w, r, resource.UserByFid(fid), resource.ReadOptions{})
}

// GetUserByUsername handles GET /api/v1/users/by-username/{username}
func (h *Handlers) GetUserByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	h.fetch(w, r, resource.UserByUsername(username), resource.ReadOptions{})
}

// GetVerificationsByFid handles GET /api/v1/verifications/{fid}
func (h *Handlers) GetVerificationsByFid(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFid(chi.URLParam(r, "fid"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := h.limitOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.fetch(w, r, resource.VerificationsByFid(fid), opts)
}

// GetVerificationByAddress handles GET /api/v1/verifications/{fid}/{address}
func (h *Handlers) GetVerificationByAddress(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFid(chi.URLParam(r, "fid"))
	if err != nil {
		writeError(w, err)
		return
	}
	address := chi.URLParam(r, "address")
	if _, err := parseAddressBytes(address); err != nil {
		writeError(w, err)
		return
	}
	h.fetch(w, r, resource.VerificationByAddress(fid, address), resource.ReadOptions{})
}

// GetAllVerificationMessagesByFid handles GET /api/v1/verifications/all-by-fid/{fid}
func (h *Handlers) GetAllVerificationMessagesByFid(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFid(chi.URLParam(r, "fid"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := h.limitOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	startTime, err := parseOptionalUint64(r.URL.Query().Get("start_time"))
	if err != nil {
		writeError(w, err)
		return
	}
	endTime, err := parseOptionalUint64(r.URL.Query().Get("end_time"))
	if err != nil {
		writeError(w, err)
		return
	}
	if err := validateTimeRange(startTime, endTime); err != nil {
		writeError(w, err)
		return
	}

	h.fetch(w, r, resource.AllVerificationMessagesByFid(fid, startTime, endTime), opts)
}

// GetCast handles GET /api/v1/casts/{fid}/{hash}
func (h *Handlers) GetCast(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFid(chi.URLParam(r, "fid"))
	if err != nil {
		writeError(w, err)
		return
	}
	hash := chi.URLParam(r, "hash")
	if err := validateHash(hash); err != nil {
		writeError(w, err)
		return
	}
	h.fetch(w, r, resource.Cast(fid, hash), resource.ReadOptions{})
}

// GetConversation handles GET /api/v1/conversations/{fid}/{hash}
func (h *Handlers) GetConversation(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFid(chi.URLParam(r, "fid"))
	if err != nil {
		writeError(w, err)
		return
	}
	hash := chi.URLParam(r, "hash")
	if err := validateHash(hash); err != nil {
		writeError(w, err)
		return
	}

	opts, err := h.limitOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}

	recursive, err := parseOptionalBool(r.URL.Query().Get("recursive"))
	if err != nil {
		writeError(w, err)
		return
	}
	maxDepth, err := parseOptionalInt(r.URL.Query().Get("max_depth"))
	if err != nil {
		writeError(w, err)
		return
	}
	if maxDepth != nil && *maxDepth == 0 {
		writeError(w, resource.InvalidParams("max_depth must be greater than 0"))
		return
	}

	opts.Recursive = recursive
	opts.MaxDepth = maxDepth
	h.fetch(w, r, resource.Conversation(fid, hash), opts)
}

// GetCastsByFid handles GET /api/v1/casts/by-fid/{fid}
func (h *Handlers) GetCastsByFid(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFid(chi.URLParam(r, "fid"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := h.limitOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.fetch(w, r, resource.CastsByFid(fid), opts)
}

// GetCastsByMention handles GET /api/v1/casts/by-mention/{fid}
func (h *Handlers) GetCastsByMention(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFid(chi.URLParam(r, "fid"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := h.limitOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.fetch(w, r, resource.CastsByMention(fid), opts)
}

// GetCastsByParent handles GET /api/v1/casts/by-parent/{fid}/{hash}
func (h *Handlers) GetCastsByParent(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFid(chi.URLParam(r, "fid"))
	if err != nil {
		writeError(w, err)
		return
	}
	hash := chi.URLParam(r, "hash")
	if err := validateHash(hash); err != nil {
		writeError(w, err)
		return
	}
	opts, err := h.limitOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.fetch(w, r, resource.CastsByParent(fid, hash), opts)
}

// GetCastsByParentURL handles GET /api/v1/casts/by-parent-url
func (h *Handlers) GetCastsByParentURL(w http.ResponseWriter, r *http.Request) {
	url, err := requiredURL(r.URL.Query().Get("url"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := h.limitOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.fetch(w, r, resource.CastsByParentURL(url), opts)
}

// GetReactionsByFid handles GET /api/v1/reactions/by-fid/{fid}
func (h *Handlers) GetReactionsByFid(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFid(chi.URLParam(r, "fid"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := h.limitOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.fetch(w, r, resource.ReactionsByFid(fid), opts)
}

// GetReactionsByTargetCast handles GET /api/v1/reactions/by-target-cast/{fid}/{hash}
func (h *Handlers) GetReactionsByTargetCast(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFid(chi.URLParam(r, "fid"))
	if err != nil {
		writeError(w, err)
		return
	}
	hash := chi.URLParam(r, "hash")
	if err := validateHash(hash); err != nil {
		writeError(w, err)
		return
	}
	opts, err := h.limitOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.fetch(w, r, resource.ReactionsByTargetCast(fid, hash), opts)
}

// GetReactionsByTargetURL handles GET /api/v1/reactions/by-target-url
func (h *Handlers) GetReactionsByTargetURL(w http.ResponseWriter, r *http.Request) {
	url, err := requiredURL(r.URL.Query().Get("url"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := h.limitOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.fetch(w, r, resource.ReactionsByTargetURL(url), opts)
}

// GetLinksByFid handles GET /api/v1/links/by-fid/{fid}
func (h *Handlers) GetLinksByFid(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFid(chi.URLParam(r, "fid"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := h.limitOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.fetch(w, r, resource.LinksByFid(fid), opts)
}

// GetLinksByTarget handles GET /api/v1/links/by-target/{fid}
func (h *Handlers) GetLinksByTarget(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFid(chi.URLParam(r, "fid"))
	if err != nil {
		writeError(w, err)
		return
	}
	opts, err := h.limitOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	h.fetch(w, r, resource.LinksByTarget(fid), opts)
}

// GetLinkCompactState handles GET /api/v1/links/compact-state/{fid}
func (h *Handlers) GetLinkCompactState(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFid(chi.URLParam(r, "fid"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.fetch(w, r, resource.LinkCompactStateByFid(fid), resource.ReadOptions{})
}

// GetUsernameProofByName handles GET /api/v1/username-proofs/by-name/{name}
func (h *Handlers) GetUsernameProofByName(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	h.fetch(w, r, resource.UsernameProofByName(name), resource.ReadOptions{})
}

// GetUsernameProofsByFid handles GET /api/v1/username-proofs/{fid}
func (h *Handlers) GetUsernameProofsByFid(w http.ResponseWriter, r *http.Request) {
	fid, err := parseFid(chi.URLParam(r, "fid"))
	if err != nil {
		writeError(w, err)
		return
	}
	h.fetch(w, r, resource.UsernameProofsByFid(fid), resource.ReadOptions{})
}
