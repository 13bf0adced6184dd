package httpapi

import (
	"net/http"
	"strings"

	"menuqr.app/internal/auth"
	"menuqr.app/internal/menu"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	SortOrder   int    `json:"sort_order"`
}

type categoryUpdateRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
}

type itemRequest struct {
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  int64  `json:"price_cents"`
	ImageURL    string `json:"image_url"`
	SortOrder   int    `json:"sort_order"`
}

type itemUpdateRequest struct {
	CategoryID  *string `json:"category_id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"price_cents"`
	ImageURL    *string `json:"image_url"`
	IsAvailable *bool   `json:"is_available"`
	SortOrder   *int    `json:"sort_order"`
}

func (a *API) Categories(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listCategories(w, r)
	case http.MethodPost:
		a.createCategory(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) CategoryByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/categories/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	cat, ok := a.ownedCategory(w, r, id)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, cat)
	case http.MethodPatch:
		var in categoryUpdateRequest
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		updated, err := a.menu.UpdateCategory(r.Context(), id, menu.CategoryUpdate{
			Name:        in.Name,
			Description: in.Description,
			SortOrder:   in.SortOrder,
			IsActive:    in.IsActive,
		})
		if err != nil {
			handleCoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := a.menu.DeleteCategory(r.Context(), id); err != nil {
			handleCoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}

func (a *API) listCategories(w http.ResponseWriter, r *http.Request) {
	tenantID, err := effectiveTenant(r)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	activeOnly := r.URL.Query().Get("active") == "true"
	cats, err := a.menu.ListCategories(r.Context(), tenantID, activeOnly)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": cats})
}

func (a *API) createCategory(w http.ResponseWriter, r *http.Request) {
	tenantID, err := effectiveTenant(r)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	var in categoryRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	cat, err := a.menu.CreateCategory(r.Context(), tenantID, menu.Category{
		Name:        in.Name,
		Description: in.Description,
		SortOrder:   in.SortOrder,
	})
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, cat)
}

func (a *API) MenuItems(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		a.listItems(w, r)
	case http.MethodPost:
		a.createItem(w, r)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) MenuItemByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/menu-items/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	item, ok := a.ownedItem(w, r, id)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, item)
	case http.MethodPatch:
		var in itemUpdateRequest
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		updated, err := a.menu.UpdateItem(r.Context(), id, menu.ItemUpdate{
			CategoryID:  in.CategoryID,
			Name:        in.Name,
			Description: in.Description,
			PriceCents:  in.PriceCents,
			ImageURL:    in.ImageURL,
			IsAvailable: in.IsAvailable,
			SortOrder:   in.SortOrder,
		})
		if err != nil {
			handleCoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	case http.MethodDelete:
		if err := a.menu.DeleteItem(r.Context(), id); err != nil {
			handleCoreError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"status": "deleted"})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}

func (a *API) listItems(w http.ResponseWriter, r *http.Request) {
	tenantID, err := effectiveTenant(r)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	filter := menu.ItemFilter{
		TenantID:      tenantID,
		CategoryID:    r.URL.Query().Get("category_id"),
		AvailableOnly: r.URL.Query().Get("available") == "true",
	}
	items, err := a.menu.ListItems(r.Context(), filter)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (a *API) createItem(w http.ResponseWriter, r *http.Request) {
	tenantID, err := effectiveTenant(r)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	var in itemRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	item, err := a.menu.CreateItem(r.Context(), tenantID, menu.Item{
		CategoryID:  in.CategoryID,
		Name:        in.Name,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		ImageURL:    in.ImageURL,
		SortOrder:   in.SortOrder,
	})
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// ownedCategory loads a category and rejects the request unless the actor
// may touch it. A foreign resource is a denial: 404 stays reserved for ids
// that do not exist.
func (a *API) ownedCategory(w http.ResponseWriter, r *http.Request, id string) (*menu.Category, bool) {
	actor, ok := requireActor(w, r)
	if !ok {
		return nil, false
	}
	cat, err := a.menu.GetCategory(r.Context(), id)
	if err != nil {
		handleCoreError(w, r, err)
		return nil, false
	}
	if !auth.CanMutateResource(actor, cat) {
		handleCoreError(w, r, auth.ErrForbidden)
		return nil, false
	}
	return cat, true
}

// ownedItem mirrors ownedCategory for menu items.
func (a *API) ownedItem(w http.ResponseWriter, r *http.Request, id string) (*menu.Item, bool) {
	actor, ok := requireActor(w, r)
	if !ok {
		return nil, false
	}
	item, err := a.menu.GetItem(r.Context(), id)
	if err != nil {
		handleCoreError(w, r, err)
		return nil, false
	}
	if !auth.CanMutateResource(actor, item) {
		handleCoreError(w, r, auth.ErrForbidden)
		return nil, false
	}
	return item, true
}
