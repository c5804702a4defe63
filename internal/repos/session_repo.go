package repos

import (
	"database/sql"
	"time"

	"merchbase/internal/domain"

	"github.com/jmoiron/sqlx"
)

type SessionRepo struct{ DB *sqlx.DB }

func NewSessionRepo(db *sqlx.DB) *SessionRepo { return &SessionRepo{DB: db} }

// Bind creates or refreshes the session row for sid.
func (r *SessionRepo) Bind(sid, userID, username string, expiresAt time.Time) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,username,expires_at)
                          VALUES(?,?,?,?)
                          ON CONFLICT(id) DO UPDATE SET
                            user_id=excluded.user_id,
                            username=excluded.username,
                            expires_at=excluded.expires_at`,
		sid, userID, username, expiresAt.Unix())
	return err
}

// Get returns the live session for sid. Expired rows are deleted on sight
// and reported as sql.ErrNoRows.
func (r *SessionRepo) Get(sid string) (*domain.Session, error) {
	var s domain.Session
	err := r.DB.Get(&s, `
      SELECT id,user_id,username,COALESCE(created_at,'') AS created_at,expires_at
      FROM sessions
      WHERE id=?`, sid)
	if err != nil {
		return nil, err
	}
	if s.ExpiresAt <= time.Now().Unix() {
		_, _ = r.DB.Exec(`DELETE FROM sessions WHERE id=?`, sid)
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (r *SessionRepo) Delete(sid string) error {
	_, err := r.DB.Exec(`DELETE FROM sessions WHERE id=?`, sid)
	return err
}
