package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                              "/",
		"/metrics":                      "/metrics",
		"/v1/requests":                  "/v1/requests",
		"/v1/requests/1730000000000":    "/v1/requests/:id",
		"/v1/requests/17/approve":       "/v1/requests/:id/approve",
		"/v1/requests/17/deny":          "/v1/requests/:id/deny",
		"/v1/requests/17/extra":         "/v1/requests/17/extra",
		"/v1/announcements/3":           "/v1/announcements/:id",
		"/v1/directory?q=chen":          "/v1/directory",
		"/v1/reports/export":            "/v1/reports/export",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
