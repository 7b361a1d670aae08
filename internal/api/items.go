package api

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/erazemk/sledilnik/internal/docstore"
	"github.com/erazemk/sledilnik/internal/model"
	"github.com/erazemk/sledilnik/internal/store"
)

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	Store docstore.Store
}

// List handles GET /api/items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	items, err := store.ListItems(r.Context(), h.Store, query.Get("q"), query.Get("status"))
	if err != nil {
		storeError(w, r, err, "failed to list items")
		return
	}
	jsonResponse(w, r, http.StatusOK, items)
}

// Create handles POST /api/items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req model.NewItem
	if err := decodeJSON(r, &req); err != nil {
		if !isValidationError(err) {
			jsonError(w, r, http.StatusBadRequest, "invalid request body")
			return
		}
		storeError(w, r, err, "invalid item")
		return
	}

	item, err := store.CreateItem(r.Context(), h.Store, req)
	if err != nil {
		storeError(w, r, err, "failed to create item")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("item", item.ID).Str("title", item.Title).Msg("item created")
	jsonResponse(w, r, http.StatusOK, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := store.GetItem(r.Context(), h.Store, r.PathValue("id"))
	if err != nil {
		storeError(w, r, err, "failed to get item")
		return
	}
	jsonResponse(w, r, http.StatusOK, item)
}

// Update handles PATCH /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var patch model.ItemPatch
	if err := decodeJSON(r, &patch); err != nil && !isEmptyBody(err) {
		if !isValidationError(err) {
			jsonError(w, r, http.StatusBadRequest, "invalid request body")
			return
		}
		storeError(w, r, err, "invalid item patch")
		return
	}

	id := r.PathValue("id")
	item, changed, err := store.UpdateItem(r.Context(), h.Store, id, patch)
	if err != nil {
		storeError(w, r, err, "failed to update item")
		return
	}
	if !changed {
		jsonResponse(w, r, http.StatusOK, map[string]bool{"updated": false})
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("item", id).Msg("item updated")
	jsonResponse(w, r, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := store.DeleteItem(r.Context(), h.Store, id); err != nil {
		storeError(w, r, err, "failed to delete item")
		return
	}

	zerolog.Ctx(r.Context()).Info().Str("item", id).Msg("item deleted")
	jsonResponse(w, r, http.StatusOK, map[string]bool{"deleted": true})
}

// GetActivity handles GET /api/items/{id}/activity.
func (h *ItemsHandler) GetActivity(w http.ResponseWriter, r *http.Request) {
	activity, err := store.GetActivity(r.Context(), h.Store, r.PathValue("id"))
	if err != nil {
		storeError(w, r, err, "failed to get item activity")
		return
	}
	jsonResponse(w, r, http.StatusOK, activity)
}
