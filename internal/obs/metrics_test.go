package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"/healthz":                           "/healthz",
		"/v1/auth/login":                     "/v1/auth/login",
		"/v1/tenants/01J8X5":                 "/v1/tenants/:id",
		"/v1/tenants/01J8X5/qr":              "/v1/tenants/:id/qr",
		"/v1/tenants/01J8X5/logo":            "/v1/tenants/:id/logo",
		"/v1/categories/01J8X5":              "/v1/categories/:id",
		"/v1/menu-items/01J8X5":              "/v1/menu-items/:id",
		"/v1/public/menu/corner-cafe":        "/v1/public/menu/:slug",
		"/v1/public/tenants/corner-cafe":     "/v1/public/tenants/:slug",
		"/v1/public/menu/corner-cafe/extra":  "/v1/public/menu/corner-cafe/extra",
		"/v1/menu-items/01J8X5?available=on": "/v1/menu-items/:id",
		"":                                   "/",
	}
	for in, want := range cases {
		if got := CanonicalPath(in); got != want {
			t.Errorf("CanonicalPath(%q): expected %q, got %q", in, want, got)
		}
	}
}
