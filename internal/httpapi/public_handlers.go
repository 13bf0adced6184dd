package httpapi

import (
	"net/http"
	"strings"

	"menuqr.app/internal/menu"
	"menuqr.app/internal/tenant"
)

// publicTenantView is the anonymous projection of a tenant. Contact email
// and lifecycle status stay private.
type publicTenantView struct {
	Slug           string `json:"slug"`
	BusinessName   string `json:"business_name"`
	BusinessType   string `json:"business_type,omitempty"`
	WhatsappNumber string `json:"whatsapp_number,omitempty"`
	LogoURL        string `json:"logo_url,omitempty"`
	PrimaryColor   string `json:"primary_color,omitempty"`
	Currency       string `json:"currency,omitempty"`
}

type publicMenuSection struct {
	Category *menu.Category `json:"category"`
	Items    []*menu.Item   `json:"items"`
}

type publicMenuResponse struct {
	Tenant publicTenantView    `json:"tenant"`
	Menu   []publicMenuSection `json:"menu"`
	// Uncategorized holds available items without a category link.
	Uncategorized []*menu.Item `json:"uncategorized,omitempty"`
}

func publicView(t *tenant.Tenant) publicTenantView {
	return publicTenantView{
		Slug:           t.Slug,
		BusinessName:   t.BusinessName,
		BusinessType:   t.BusinessType,
		WhatsappNumber: t.WhatsappNumber,
		LogoURL:        t.LogoURL,
		PrimaryColor:   t.PrimaryColor,
		Currency:       t.Currency,
	}
}

// PublicTenant serves GET /v1/public/tenants/{slug} for menu page branding.
func (a *API) PublicTenant(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	slug, ok := publicSlug(w, r, "/v1/public/tenants/")
	if !ok {
		return
	}
	t, err := a.tenants.PublicBySlug(r.Context(), slug)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, publicView(t))
}

// PublicMenu serves GET /v1/public/menu/{slug}: the full menu a diner sees
// after scanning the QR code. Only active categories and available items
// appear; hidden tenants answer exactly like unknown slugs.
func (a *API) PublicMenu(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	slug, ok := publicSlug(w, r, "/v1/public/menu/")
	if !ok {
		return
	}
	t, err := a.tenants.PublicBySlug(r.Context(), slug)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}

	cats, err := a.menu.ListCategories(r.Context(), t.ID, true)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	filter := menu.ItemFilter{TenantID: t.ID, AvailableOnly: true}
	if cid := r.URL.Query().Get("category"); cid != "" {
		filter.CategoryID = cid
		var kept []*menu.Category
		for _, c := range cats {
			if c.ID == cid {
				kept = append(kept, c)
			}
		}
		cats = kept
	}
	items, err := a.menu.ListItems(r.Context(), filter)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}

	byCategory := make(map[string][]*menu.Item)
	var loose []*menu.Item
	for _, it := range items {
		if it.CategoryID == "" {
			loose = append(loose, it)
			continue
		}
		byCategory[it.CategoryID] = append(byCategory[it.CategoryID], it)
	}

	resp := publicMenuResponse{Tenant: publicView(t), Menu: []publicMenuSection{}}
	for _, c := range cats {
		resp.Menu = append(resp.Menu, publicMenuSection{
			Category: c,
			Items:    byCategory[c.ID],
		})
	}
	resp.Uncategorized = loose
	writeJSON(w, http.StatusOK, resp)
}

func publicSlug(w http.ResponseWriter, r *http.Request, prefix string) (string, bool) {
	slug := strings.TrimPrefix(r.URL.Path, prefix)
	if slug == "" || strings.Contains(slug, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return "", false
	}
	return slug, true
}
