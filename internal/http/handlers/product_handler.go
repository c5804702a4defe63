package handlers

import (
	"io"
	"mime/multipart"

	"merchbase/internal/domain"
	applog "merchbase/internal/log"
	"merchbase/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Products *services.ProductService
}

func readImages(files []*multipart.FileHeader) ([]services.ImageFile, error) {
	if len(files) > services.MaxProductImages {
		files = files[:services.MaxProductImages]
	}
	out := make([]services.ImageFile, 0, len(files))
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return nil, err
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, err
		}
		out = append(out, services.ImageFile{Name: fh.Filename, Data: data})
	}
	return out, nil
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Products.List(c.Context())
	if err != nil {
		return fail(c, err, "Product not found", "Failed to fetch products")
	}
	return c.JSON(products)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	p, err := h.Products.Get(c.Context(), c.Params("id"))
	if err != nil {
		return fail(c, err, "Product not found", "Failed to fetch product")
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Multipart form required"})
	}

	in := domain.ProductInput{
		Name:        c.FormValue("name"),
		Description: c.FormValue("description"),
		Category:    c.FormValue("category"),
		Price:       c.FormValue("price"),
		Discount:    c.FormValue("discount"),
		Sizes:       c.FormValue("sizes"),
		SKU:         c.FormValue("sku"),
	}
	images, err := readImages(form.File["images"])
	if err != nil {
		return fail(c, err, "Product not found", "Failed to create product")
	}

	p, err := h.Products.Create(c.Context(), in, images)
	if err != nil {
		return fail(c, err, "Product not found", "Failed to create product")
	}
	applog.Audit(c, "product.create", map[string]any{"id": p.ID, "name": p.Name, "images": len(p.Images)})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// Update builds the patch from submitted form keys only, so a field the
// client never sent stays untouched while an explicit "0" or "" is applied.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Multipart form required"})
	}

	strField := func(name string) *string {
		if vs, ok := form.Value[name]; ok && len(vs) > 0 {
			return &vs[0]
		}
		return nil
	}
	numField := func(name string) *float64 {
		if s := strField(name); s != nil {
			f := services.ParseNum(*s)
			return &f
		}
		return nil
	}

	patch := domain.ProductPatch{
		Name:        strField("name"),
		Description: strField("description"),
		Category:    strField("category"),
		Price:       numField("price"),
		Discount:    numField("discount"),
		Sizes:       strField("sizes"),
		SKU:         strField("sku"),
	}
	existingImages := strField("existingImages")

	images, err := readImages(form.File["images"])
	if err != nil {
		return fail(c, err, "Product not found", "Failed to update product")
	}

	p, err := h.Products.Update(c.Context(), c.Params("id"), patch, images, existingImages)
	if err != nil {
		return fail(c, err, "Product not found", "Failed to update product")
	}
	applog.Audit(c, "product.update", map[string]any{"id": p.ID})
	return c.JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.Products.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err, "Product not found", "Failed to delete product")
	}
	applog.Audit(c, "product.delete", map[string]any{"key": c.Params("id")})
	return c.JSON(fiber.Map{"success": true})
}
