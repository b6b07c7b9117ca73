package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/mlakar/inventar/internal/imaging"
	"github.com/mlakar/inventar/internal/model"
	"github.com/mlakar/inventar/internal/store"
)

// InventoryHandler handles the owner-scoped item CRUD endpoints. Every
// operation takes the user id from the verified claims, never from the
// request payload.
type InventoryHandler struct {
	DB *sql.DB
}

// List handles GET /api/inventory.
func (h *InventoryHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	items, err := store.ListItems(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("listing items", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to fetch inventory items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/inventory.
func (h *InventoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var patch model.ItemPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	name, quantity, description, err := patch.NormalizeCreate()
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, claims.UserID, name, quantity, description)
	if errors.Is(err, store.ErrDuplicate) {
		jsonError(w, http.StatusBadRequest, "Item with this name already exists")
		return
	}
	if err != nil {
		slog.Error("creating item", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to create inventory item")
		return
	}

	jsonResponse(w, http.StatusCreated, item)
}

// Update handles PUT /api/inventory/{id}. Only supplied fields change.
func (h *InventoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	var patch model.ItemPatch
	if err := decodeJSON(r, &patch); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := patch.NormalizeUpdate(); err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	item, err := store.UpdateItem(r.Context(), h.DB, claims.UserID, id, patch)
	switch {
	case errors.Is(err, store.ErrNotFound):
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	case errors.Is(err, store.ErrDuplicate):
		jsonError(w, http.StatusBadRequest, "Item with this name already exists")
		return
	case err != nil:
		slog.Error("updating item", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to update inventory item")
		return
	}

	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/inventory/{id}.
func (h *InventoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	err := store.DeleteItem(r.Context(), h.DB, claims.UserID, id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		slog.Error("deleting item", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to delete inventory item")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "Item deleted successfully"})
}

// UploadImage handles PUT /api/inventory/{id}/image.
func (h *InventoryHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	data, err := imaging.Normalize(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	err = store.SetItemImage(r.Context(), h.DB, claims.UserID, id, data)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		slog.Error("saving item image", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to save image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/inventory/{id}/image.
func (h *InventoryHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	data, err := store.GetItemImage(r.Context(), h.DB, claims.UserID, id)
	if errors.Is(err, store.ErrNotFound) {
		jsonError(w, http.StatusNotFound, "Item not found")
		return
	}
	if err != nil {
		slog.Error("getting item image", "error", err)
		jsonError(w, http.StatusInternalServerError, "Failed to fetch image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}
