package handlers

import (
	"merchbase/internal/domain"
	applog "merchbase/internal/log"
	"merchbase/internal/services"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Categories *services.CategoryService
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Categories.List(c.Context())
	if err != nil {
		return fail(c, err, "Category not found", "Failed to fetch categories")
	}
	return c.JSON(cats)
}

func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var body struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Slug        string `json:"slug"`
	}
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Category name required"})
	}

	cat, err := h.Categories.Create(c.Context(), body.Name, body.Description, body.Slug)
	if err != nil {
		return fail(c, err, "Category not found", "Failed to create category")
	}
	applog.Audit(c, "category.create", map[string]any{"id": cat.ID, "name": cat.Name})
	return c.Status(fiber.StatusCreated).JSON(cat)
}

func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var patch domain.CategoryPatch
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	cat, err := h.Categories.Update(c.Context(), c.Params("id"), patch)
	if err != nil {
		return fail(c, err, "Category not found", "Failed to update category")
	}
	applog.Audit(c, "category.update", map[string]any{"id": cat.ID})
	return c.JSON(cat)
}

func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.Categories.Delete(c.Context(), c.Params("id")); err != nil {
		return fail(c, err, "Category not found", "Failed to delete category")
	}
	applog.Audit(c, "category.delete", map[string]any{"key": c.Params("id")})
	return c.JSON(fiber.Map{"success": true})
}
