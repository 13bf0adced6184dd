package httpapi

import (
	"net/http"
	"strings"

	"menuqr.app/internal/audit"
	"menuqr.app/internal/auth"
	"menuqr.app/internal/tenant"
)

type tenantUpdateRequest struct {
	BusinessName   *string `json:"business_name"`
	BusinessType   *string `json:"business_type"`
	WhatsappNumber *string `json:"whatsapp_number"`
	PrimaryColor   *string `json:"primary_color"`
	Currency       *string `json:"currency"`
}

type logoRequest struct {
	LogoURL string `json:"logo_url"`
}

// TenantByID routes /v1/tenants/{id} and its sub-resources.
func (a *API) TenantByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/tenants/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	if strings.HasSuffix(path, "/logo") {
		id := strings.TrimSuffix(strings.TrimSuffix(path, "/logo"), "/")
		a.tenantLogo(w, r, id)
		return
	}
	if strings.HasSuffix(path, "/qr") {
		id := strings.TrimSuffix(strings.TrimSuffix(path, "/qr"), "/")
		a.tenantQR(w, r, id)
		return
	}
	if strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		a.getTenant(w, r, path)
	case http.MethodPatch:
		a.updateTenant(w, r, path)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPatch)
	}
}

func (a *API) getTenant(w http.ResponseWriter, r *http.Request, id string) {
	if !requireTenantAccess(w, r, id) {
		return
	}
	t, err := a.tenants.Get(r.Context(), id)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (a *API) updateTenant(w http.ResponseWriter, r *http.Request, id string) {
	if _, ok := requireRole(w, r, auth.RoleTenantAdmin, auth.RoleSuperAdmin); !ok {
		return
	}
	if !requireTenantAccess(w, r, id) {
		return
	}
	var in tenantUpdateRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	upd := tenant.Update{
		BusinessName:   in.BusinessName,
		BusinessType:   in.BusinessType,
		WhatsappNumber: in.WhatsappNumber,
		PrimaryColor:   in.PrimaryColor,
		Currency:       in.Currency,
	}
	t, err := a.tenants.Update(r.Context(), id, upd)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "tenant.profile.updated", map[string]any{"tenant_id": id})
	writeJSON(w, http.StatusOK, t)
}

func (a *API) tenantLogo(w http.ResponseWriter, r *http.Request, id string) {
	if r.Method != http.MethodPut {
		methodNotAllowed(w, r, http.MethodPut)
		return
	}
	if _, ok := requireRole(w, r, auth.RoleTenantAdmin, auth.RoleSuperAdmin); !ok {
		return
	}
	if !requireTenantAccess(w, r, id) {
		return
	}
	var in logoRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	t, err := a.tenants.SetLogo(r.Context(), id, in.LogoURL)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

// tenantQR serves the tenant's QR code. GET returns the stored file URL
// plus an inline data URL; POST re-renders the PNG from the current slug.
func (a *API) tenantQR(w http.ResponseWriter, r *http.Request, id string) {
	if !requireTenantAccess(w, r, id) {
		return
	}
	t, err := a.tenants.Get(r.Context(), id)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}

	switch r.Method {
	case http.MethodGet:
		resp := map[string]any{"qr_code_url": t.QRCodeURL}
		if a.qr != nil {
			if dataURL, err := a.qr.DataURL(r.Context(), t.Slug); err == nil {
				resp["qr_code_data_url"] = dataURL
			}
		}
		writeJSON(w, http.StatusOK, resp)
	case http.MethodPost:
		if _, ok := requireRole(w, r, auth.RoleTenantAdmin, auth.RoleSuperAdmin); !ok {
			return
		}
		if a.qr == nil {
			writeError(w, r, http.StatusServiceUnavailable, "qr rendering is disabled")
			return
		}
		qrURL, err := a.qr.Generate(r.Context(), t.ID, t.Slug)
		if err != nil {
			handleCoreError(w, r, err)
			return
		}
		t, err = a.tenants.SetQRCode(r.Context(), t.ID, qrURL)
		if err != nil {
			handleCoreError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "tenant.qr.rendered", map[string]any{"tenant_id": t.ID})
		writeJSON(w, http.StatusOK, map[string]any{"qr_code_url": t.QRCodeURL})
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}
