package repos_test

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"merchbase/internal/repos"
)

func memRepo(t *testing.T) *repos.SessionRepo {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return repos.NewSessionRepo(db)
}

func TestSessionBindGetDelete(t *testing.T) {
	r := memRepo(t)

	exp := time.Now().Add(time.Hour)
	if err := r.Bind("sid-1", "admin", "admin", exp); err != nil {
		t.Fatalf("bind: %v", err)
	}

	s, err := r.Get("sid-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.UserID != "admin" || s.Username != "admin" || s.ExpiresAt != exp.Unix() {
		t.Fatalf("unexpected session: %+v", s)
	}

	if err := r.Delete("sid-1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := r.Get("sid-1"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("want ErrNoRows after delete, got %v", err)
	}
}

func TestSessionRebindRefreshesExpiry(t *testing.T) {
	r := memRepo(t)

	first := time.Now().Add(time.Minute)
	later := time.Now().Add(2 * time.Hour)
	if err := r.Bind("sid-1", "admin", "admin", first); err != nil {
		t.Fatal(err)
	}
	if err := r.Bind("sid-1", "admin", "admin", later); err != nil {
		t.Fatal(err)
	}

	s, err := r.Get("sid-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.ExpiresAt != later.Unix() {
		t.Fatalf("expiry not refreshed: %d != %d", s.ExpiresAt, later.Unix())
	}
}

func TestExpiredSessionPurgedOnRead(t *testing.T) {
	r := memRepo(t)

	if err := r.Bind("sid-1", "admin", "admin", time.Now().Add(-time.Minute)); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Get("sid-1"); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expired session should read as missing, got %v", err)
	}

	// the row itself is gone now
	var n int
	if err := r.DB.Get(&n, `SELECT COUNT(*) FROM sessions WHERE id='sid-1'`); err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatal("expired row not purged")
	}
}
