package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// Every mutating route must reject requests without a valid session cookie.
func TestMutationsRequireSession(t *testing.T) {
	env := newTestEnv(t)

	cases := []struct {
		method, path string
	}{
		{"POST", "/api/categories"},
		{"PUT", "/api/categories/0"},
		{"DELETE", "/api/categories/0"},
		{"POST", "/api/products"},
		{"PUT", "/api/products/0"},
		{"DELETE", "/api/products/0"},
	}
	for _, tc := range cases {
		resp, err := env.app.Test(httptest.NewRequest(tc.method, tc.path, nil))
		if err != nil {
			t.Fatalf("%s %s: %v", tc.method, tc.path, err)
		}
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s: want 401, got %d", tc.method, tc.path, resp.StatusCode)
		}
	}
}

func TestStaleCookieIsRejected(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest("POST", "/api/categories", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: "never-issued"})
	resp, err := env.app.Test(req)
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("want 401 for unknown sid, got %d", resp.StatusCode)
	}
}

func TestReadsArePublic(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/categories", "/api/products"} {
		resp, err := env.app.Test(httptest.NewRequest("GET", path, nil))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Errorf("GET %s: want 200 without auth, got %d", path, resp.StatusCode)
		}
	}
}
