package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"golang.org/x/crypto/bcrypt"

	"merchbase/internal/http/handlers"
	"merchbase/internal/mediastore"
	"merchbase/internal/repos"
	"merchbase/internal/rowstore"
	"merchbase/internal/services"
)

// memStore is an in-memory rowstore.Store for wiring a full app in tests.
type memStore struct {
	tables map[string][]rowstore.Row
}

func newMemStore() *memStore {
	return &memStore{tables: map[string][]rowstore.Row{}}
}

func cloneRow(r rowstore.Row) rowstore.Row {
	cp := rowstore.Row{}
	for k, v := range r {
		cp[k] = v
	}
	return cp
}

func (m *memStore) ListRows(_ context.Context, table string) ([]rowstore.Row, error) {
	rows := m.tables[table]
	out := make([]rowstore.Row, len(rows))
	for i, r := range rows {
		out[i] = cloneRow(r)
	}
	return out, nil
}

func (m *memStore) AppendRow(_ context.Context, table string, fields rowstore.Row) (rowstore.Row, error) {
	m.tables[table] = append(m.tables[table], cloneRow(fields))
	return cloneRow(fields), nil
}

func (m *memStore) ReplaceRow(_ context.Context, table string, index int, fields rowstore.Row) (rowstore.Row, error) {
	rows := m.tables[table]
	if index < 0 || index >= len(rows) {
		return nil, rowstore.ErrRowNotFound
	}
	rows[index] = cloneRow(fields)
	return cloneRow(fields), nil
}

func (m *memStore) RemoveRow(_ context.Context, table string, index int) error {
	rows := m.tables[table]
	if index < 0 || index >= len(rows) {
		return rowstore.ErrRowNotFound
	}
	m.tables[table] = append(rows[:index], rows[index+1:]...)
	return nil
}

type memMedia struct {
	uploads   int
	removed   []string
	removeErr map[string]error
}

func newMemMedia() *memMedia { return &memMedia{removeErr: map[string]error{}} }

func (m *memMedia) Upload(_ context.Context, _ []byte, publicID string) (mediastore.Upload, error) {
	m.uploads++
	return mediastore.Upload{
		URL:      fmt.Sprintf("https://media.test/demo/image/upload/%s.jpg", publicID),
		PublicID: "admin-portal/products/" + publicID,
	}, nil
}

func (m *memMedia) Remove(_ context.Context, publicID string) error {
	m.removed = append(m.removed, publicID)
	if err := m.removeErr[publicID]; err != nil {
		return err
	}
	return nil
}

type testEnv struct {
	app   *fiber.App
	store *memStore
	media *memMedia
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("Passw0rd!"), bcrypt.MinCost)
	if err != nil {
		t.Fatal(err)
	}
	authSvc := &services.AuthService{
		Sessions: repos.NewSessionRepo(db),
		Cfg: services.AuthConfig{
			Username:     "admin",
			PasswordHash: string(hash),
			SessionTTL:   24 * time.Hour,
		},
	}

	store := newMemStore()
	media := newMemMedia()

	app := fiber.New()
	app.Use(requestid.New())
	handlers.Register(app, handlers.NewDeps(
		authSvc,
		services.NewCategoryService(store, "Categories"),
		services.NewProductService(store, media, "Products"),
	))
	return &testEnv{app: app, store: store, media: media}
}

func jsonRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func login(t *testing.T, env *testEnv) *http.Cookie {
	t.Helper()
	resp, err := env.app.Test(jsonRequest("POST", "/api/auth/login", `{"username":"admin","password":"Passw0rd!"}`))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed with %d", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == "sid" {
			return c
		}
	}
	t.Fatal("sid cookie missing from login response")
	return nil
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(b, out); err != nil {
		t.Fatalf("decode body %q: %v", b, err)
	}
}

// multipartBody builds a product form with optional image files attached.
func multipartBody(t *testing.T, fields map[string]string, imageNames ...string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	for i, name := range imageNames {
		fw, err := mw.CreateFormFile("images", name)
		if err != nil {
			t.Fatal(err)
		}
		fmt.Fprintf(fw, "fake-image-%d", i)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}
