package services_test

import (
	"context"
	"fmt"

	"merchbase/internal/mediastore"
	"merchbase/internal/rowstore"
)

// memStore is an in-memory rowstore.Store with the same addressing semantics
// as the real tabular backend: positional indexes over insertion order.
type memStore struct {
	tables map[string][]rowstore.Row
	err    error // forced failure for every call when set
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
	if m.err != nil {
		return nil, m.err
	}
	rows := m.tables[table]
	out := make([]rowstore.Row, len(rows))
	for i, r := range rows {
		out[i] = cloneRow(r)
	}
	return out, nil
}

func (m *memStore) AppendRow(_ context.Context, table string, fields rowstore.Row) (rowstore.Row, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.tables[table] = append(m.tables[table], cloneRow(fields))
	return cloneRow(fields), nil
}

func (m *memStore) ReplaceRow(_ context.Context, table string, index int, fields rowstore.Row) (rowstore.Row, error) {
	if m.err != nil {
		return nil, m.err
	}
	rows := m.tables[table]
	if index < 0 || index >= len(rows) {
		return nil, rowstore.ErrRowNotFound
	}
	rows[index] = cloneRow(fields)
	return cloneRow(fields), nil
}

func (m *memStore) RemoveRow(_ context.Context, table string, index int) error {
	if m.err != nil {
		return m.err
	}
	rows := m.tables[table]
	if index < 0 || index >= len(rows) {
		return rowstore.ErrRowNotFound
	}
	m.tables[table] = append(rows[:index], rows[index+1:]...)
	return nil
}

// memMedia records uploads and removals; removal failures can be injected
// per public id.
type memMedia struct {
	uploads   []mediastore.Upload
	removed   []string
	removeErr map[string]error
	uploadErr error
}

func newMemMedia() *memMedia {
	return &memMedia{removeErr: map[string]error{}}
}

func (m *memMedia) Upload(_ context.Context, _ []byte, publicID string) (mediastore.Upload, error) {
	if m.uploadErr != nil {
		return mediastore.Upload{}, m.uploadErr
	}
	up := mediastore.Upload{
		URL:      fmt.Sprintf("https://media.test/demo/image/upload/%s.jpg", publicID),
		PublicID: "admin-portal/products/" + publicID,
	}
	m.uploads = append(m.uploads, up)
	return up, nil
}

func (m *memMedia) Remove(_ context.Context, publicID string) error {
	m.removed = append(m.removed, publicID)
	if err := m.removeErr[publicID]; err != nil {
		return err
	}
	return nil
}

func ptr[T any](v T) *T { return &v }
