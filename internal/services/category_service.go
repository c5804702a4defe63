package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"merchbase/internal/domain"
	"merchbase/internal/rowstore"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Slugify lowercases a name and collapses whitespace runs into hyphens.
func Slugify(name string) string {
	return reSpaces.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "-")
}

func newID() string {
	return strconv.FormatInt(time.Now().UnixMilli(), 10)
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// resolveRow finds the row addressed by key: the id column of a fresh listing
// wins; a purely numeric key that matches no id falls back to list position,
// keeping rows created before ids were assigned reachable.
func resolveRow(rows []rowstore.Row, key string) (int, rowstore.Row, bool) {
	for i, r := range rows {
		if id := r["id"]; id != "" && id == key {
			return i, r, true
		}
	}
	if n, err := strconv.Atoi(key); err == nil && n >= 0 && n < len(rows) {
		return n, rows[n], true
	}
	return -1, nil, false
}

type CategoryService struct {
	Rows  rowstore.Store
	Table string
}

func NewCategoryService(rows rowstore.Store, table string) *CategoryService {
	return &CategoryService{Rows: rows, Table: table}
}

func categoryFromRow(r rowstore.Row) domain.Category {
	return domain.Category{
		ID:          r["id"],
		Name:        r["name"],
		Description: r["description"],
		Slug:        r["slug"],
		CreatedAt:   r["createdAt"],
		UpdatedAt:   r["updatedAt"],
	}
}

func (s *CategoryService) List(ctx context.Context) ([]domain.Category, error) {
	rows, err := s.Rows.ListRows(ctx, s.Table)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Category, 0, len(rows))
	for _, r := range rows {
		out = append(out, categoryFromRow(r))
	}
	return out, nil
}

func (s *CategoryService) Create(ctx context.Context, name, description, slug string) (domain.Category, error) {
	if strings.TrimSpace(name) == "" {
		return domain.Category{}, validationf("Category name required")
	}
	if slug == "" {
		slug = Slugify(name)
	}

	row := rowstore.Row{
		"id":          newID(),
		"name":        name,
		"description": description,
		"slug":        slug,
		"createdAt":   nowStamp(),
	}
	stored, err := s.Rows.AppendRow(ctx, s.Table, row)
	if err != nil {
		return domain.Category{}, err
	}
	return categoryFromRow(stored), nil
}

func (s *CategoryService) Update(ctx context.Context, key string, patch domain.CategoryPatch) (domain.Category, error) {
	rows, err := s.Rows.ListRows(ctx, s.Table)
	if err != nil {
		return domain.Category{}, err
	}
	idx, row, ok := resolveRow(rows, key)
	if !ok {
		return domain.Category{}, fmt.Errorf("category %s: %w", key, ErrNotFound)
	}

	if patch.Name != nil {
		row["name"] = *patch.Name
	}
	if patch.Description != nil {
		row["description"] = *patch.Description
	}
	if patch.Slug != nil {
		row["slug"] = *patch.Slug
	}
	row["updatedAt"] = nowStamp()

	stored, err := s.Rows.ReplaceRow(ctx, s.Table, idx, row)
	if errors.Is(err, rowstore.ErrRowNotFound) {
		return domain.Category{}, fmt.Errorf("category %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return domain.Category{}, err
	}
	return categoryFromRow(stored), nil
}

// Delete removes the category row. Products referencing the category by name
// are left untouched; there is no referential integrity across tables.
func (s *CategoryService) Delete(ctx context.Context, key string) error {
	rows, err := s.Rows.ListRows(ctx, s.Table)
	if err != nil {
		return err
	}
	idx, _, ok := resolveRow(rows, key)
	if !ok {
		return fmt.Errorf("category %s: %w", key, ErrNotFound)
	}
	if err := s.Rows.RemoveRow(ctx, s.Table, idx); err != nil {
		if errors.Is(err, rowstore.ErrRowNotFound) {
			return fmt.Errorf("category %s: %w", key, ErrNotFound)
		}
		return err
	}
	return nil
}
