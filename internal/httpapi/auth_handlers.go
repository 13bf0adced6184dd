package httpapi

import (
	"net/http"

	"menuqr.app/internal/audit"
	"menuqr.app/internal/auth"
	"menuqr.app/internal/tenant"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type sessionResponse struct {
	auth.Session
	User   *auth.User     `json:"user,omitempty"`
	Tenant *tenant.Tenant `json:"tenant,omitempty"`
}

func (a *API) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var in auth.RegisterInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	session, user, t, err := a.auth.Register(r.Context(), in)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "auth.tenant.registered", map[string]any{
		"tenant_id": t.ID,
		"user_id":   user.ID,
		"slug":      t.Slug,
	})
	writeJSON(w, http.StatusCreated, sessionResponse{Session: session, User: user, Tenant: t})
}

func (a *API) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var in loginRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	session, user, t, err := a.auth.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	fields := map[string]any{"user_id": user.ID}
	if t != nil {
		fields["tenant_id"] = t.ID
	}
	_ = audit.LogEvent(r.Context(), "auth.session.issued", fields)
	writeJSON(w, http.StatusOK, sessionResponse{Session: session, User: user, Tenant: t})
}

func (a *API) Refresh(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var in refreshRequest
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	session, err := a.auth.Refresh(r.Context(), in.RefreshToken)
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{Session: session})
}

// Logout is stateless: tokens are not tracked server side, so the endpoint
// only acknowledges and clients discard their pair.
func (a *API) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "logged_out"})
}

func (a *API) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	actor, ok := requireActor(w, r)
	if !ok {
		return
	}
	user, t, err := a.auth.Profile(r.Context(), actor.UserID())
	if err != nil {
		handleCoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user":   user,
		"tenant": t,
	})
}
