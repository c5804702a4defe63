package handlers

import (
	"merchbase/internal/services"

	"github.com/gofiber/fiber/v2"
)

type Deps struct {
	AuthSvc    *services.AuthService
	Auth       *AuthHandler
	Categories *CategoryHandler
	Products   *ProductHandler
}

func NewDeps(auth *services.AuthService, cats *services.CategoryService, prods *services.ProductService) *Deps {
	return &Deps{
		AuthSvc:    auth,
		Auth:       &AuthHandler{Auth: auth},
		Categories: &CategoryHandler{Categories: cats},
		Products:   &ProductHandler{Products: prods},
	}
}

// Register mounts the full API surface. Reads are public; every mutation sits
// behind the session gate.
func Register(app *fiber.App, d *Deps) {
	gate := RequireAuth(d.AuthSvc)

	api := app.Group("/api")
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "OK"})
	})

	auth := api.Group("/auth")
	auth.Post("/login", d.Auth.Login)
	auth.Post("/logout", d.Auth.Logout)
	auth.Get("/me", gate, d.Auth.Me)

	cats := api.Group("/categories")
	cats.Get("/", d.Categories.List)
	cats.Post("/", gate, d.Categories.Create)
	cats.Put("/:id", gate, d.Categories.Update)
	cats.Delete("/:id", gate, d.Categories.Delete)

	prods := api.Group("/products")
	prods.Get("/", d.Products.List)
	prods.Get("/:id", d.Products.Get)
	prods.Post("/", gate, d.Products.Create)
	prods.Put("/:id", gate, d.Products.Update)
	prods.Delete("/:id", gate, d.Products.Delete)
}
