package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"merchbase/internal/domain"
	applog "merchbase/internal/log"
	"merchbase/internal/mediastore"
	"merchbase/internal/rowstore"
)

// MaxProductImages caps uploads per create/update request.
const MaxProductImages = 4

// ImageFile is one uploaded image, already read off the multipart form.
type ImageFile struct {
	Name string
	Data []byte
}

type ProductService struct {
	Rows  rowstore.Store
	Media mediastore.Store
	Table string
}

func NewProductService(rows rowstore.Store, media mediastore.Store, table string) *ProductService {
	return &ProductService{Rows: rows, Media: media, Table: table}
}

// ParseNum parses a numeric form value, defaulting to 0 on garbage.
func ParseNum(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// splitList breaks a comma-delimited column into trimmed, non-empty parts.
func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// normalize turns a stored row into the API product shape: lists split,
// numbers parsed (zero on garbage), discounted price derived.
func normalize(r rowstore.Row) domain.Product {
	price := ParseNum(r["price"])
	discount := ParseNum(r["discount"])
	return domain.Product{
		ID:              r["id"],
		Name:            r["name"],
		Description:     r["description"],
		Category:        r["category"],
		Price:           price,
		Discount:        discount,
		DiscountedPrice: price * (1 - discount/100),
		Sizes:           splitList(r["sizes"]),
		SKU:             r["sku"],
		Images:          splitList(r["images"]),
		CreatedAt:       r["createdAt"],
		UpdatedAt:       r["updatedAt"],
	}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	rows, err := s.Rows.ListRows(ctx, s.Table)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(rows))
	for _, r := range rows {
		out = append(out, normalize(r))
	}
	return out, nil
}

func (s *ProductService) Get(ctx context.Context, key string) (domain.Product, error) {
	rows, err := s.Rows.ListRows(ctx, s.Table)
	if err != nil {
		return domain.Product{}, err
	}
	_, row, ok := resolveRow(rows, key)
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s: %w", key, ErrNotFound)
	}
	return normalize(row), nil
}

// uploadImages pushes up to MaxProductImages files to the media store and
// returns their hosted URLs. Public ids embed a millisecond timestamp plus
// ordinal so parallel files within one request cannot collide.
func (s *ProductService) uploadImages(ctx context.Context, images []ImageFile) ([]string, error) {
	if len(images) > MaxProductImages {
		images = images[:MaxProductImages]
	}
	base := time.Now().UnixMilli()
	urls := make([]string, 0, len(images))
	for i, img := range images {
		up, err := s.Media.Upload(ctx, img.Data, fmt.Sprintf("product-%d-%d", base, i))
		if err != nil {
			return nil, err
		}
		urls = append(urls, up.URL)
	}
	return urls, nil
}

func (s *ProductService) Create(ctx context.Context, in domain.ProductInput, images []ImageFile) (domain.Product, error) {
	if strings.TrimSpace(in.Name) == "" {
		return domain.Product{}, validationf("Product name required")
	}

	urls, err := s.uploadImages(ctx, images)
	if err != nil {
		return domain.Product{}, err
	}

	row := rowstore.Row{
		"id":          newID(),
		"name":        in.Name,
		"description": in.Description,
		"category":    in.Category,
		"price":       formatNum(ParseNum(in.Price)),
		"discount":    formatNum(ParseNum(in.Discount)),
		"sizes":       in.Sizes,
		"sku":         in.SKU,
		"images":      strings.Join(urls, ", "),
		"createdAt":   nowStamp(),
	}
	stored, err := s.Rows.AppendRow(ctx, s.Table, row)
	if err != nil {
		return domain.Product{}, err
	}
	return normalize(stored), nil
}

// Update merges the patch over the existing row. Pointer fields make explicit
// zeroes stick: price 0 is stored, an omitted price leaves the old value.
// existingImages is the client-submitted retained set (nil keeps everything);
// new uploads are appended after it.
func (s *ProductService) Update(ctx context.Context, key string, patch domain.ProductPatch, images []ImageFile, existingImages *string) (domain.Product, error) {
	rows, err := s.Rows.ListRows(ctx, s.Table)
	if err != nil {
		return domain.Product{}, err
	}
	idx, row, ok := resolveRow(rows, key)
	if !ok {
		return domain.Product{}, fmt.Errorf("product %s: %w", key, ErrNotFound)
	}

	if patch.Name != nil {
		row["name"] = *patch.Name
	}
	if patch.Description != nil {
		row["description"] = *patch.Description
	}
	if patch.Category != nil {
		row["category"] = *patch.Category
	}
	if patch.Price != nil {
		row["price"] = formatNum(*patch.Price)
	}
	if patch.Discount != nil {
		row["discount"] = formatNum(*patch.Discount)
	}
	if patch.Sizes != nil {
		row["sizes"] = *patch.Sizes
	}
	if patch.SKU != nil {
		row["sku"] = *patch.SKU
	}

	urls := splitList(row["images"])
	if existingImages != nil {
		urls = splitList(*existingImages)
	}
	newURLs, err := s.uploadImages(ctx, images)
	if err != nil {
		return domain.Product{}, err
	}
	row["images"] = strings.Join(append(urls, newURLs...), ", ")
	row["updatedAt"] = nowStamp()

	stored, err := s.Rows.ReplaceRow(ctx, s.Table, idx, row)
	if errors.Is(err, rowstore.ErrRowNotFound) {
		return domain.Product{}, fmt.Errorf("product %s: %w", key, ErrNotFound)
	}
	if err != nil {
		return domain.Product{}, err
	}
	return normalize(stored), nil
}

// Delete removes the product row, then best-effort deletes its hosted images.
// Cleanup failures are logged and swallowed; an orphaned remote image must
// not resurrect the product.
func (s *ProductService) Delete(ctx context.Context, key string) error {
	rows, err := s.Rows.ListRows(ctx, s.Table)
	if err != nil {
		return err
	}
	idx, row, ok := resolveRow(rows, key)
	if !ok {
		return fmt.Errorf("product %s: %w", key, ErrNotFound)
	}

	cleanup := make([]string, 0, MaxProductImages)
	for _, u := range splitList(row["images"]) {
		cleanup = append(cleanup, publicIDFromURL(u))
	}

	if err := s.Rows.RemoveRow(ctx, s.Table, idx); err != nil {
		if errors.Is(err, rowstore.ErrRowNotFound) {
			return fmt.Errorf("product %s: %w", key, ErrNotFound)
		}
		return err
	}

	for _, pid := range cleanup {
		if err := s.Media.Remove(ctx, pid); err != nil {
			applog.Error(nil, "product.image.cleanup", err, map[string]any{"public_id": pid})
		}
	}
	return nil
}

// publicIDFromURL recovers the bare public id from a hosted image URL:
// the last path segment minus its extension.
func publicIDFromURL(u string) string {
	seg := u
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	if dot := strings.LastIndex(seg, "."); dot > 0 {
		seg = seg[:dot]
	}
	return seg
}
