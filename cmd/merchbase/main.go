package main

import (
	"io"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"golang.org/x/crypto/bcrypt"

	"merchbase/internal/config"
	"merchbase/internal/http/handlers"
	applog "merchbase/internal/log"
	"merchbase/internal/mediastore"
	"merchbase/internal/repos"
	"merchbase/internal/rowstore"
	"merchbase/internal/services"
)

func main() {
	cfg := config.Load()

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			applog.Logger().Warnf("could not open log file %s: %v", cfg.LogFile, err)
		} else {
			applog.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.SessionDSN)
	if err != nil {
		applog.Logger().Fatal(err)
	}

	// Auth wiring
	hash := cfg.AdminPasswordHash
	if hash == "" {
		h, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), 10)
		if err != nil {
			applog.Logger().Fatal(err)
		}
		hash = string(h)
	}
	authSvc := &services.AuthService{
		Sessions: repos.NewSessionRepo(db),
		Cfg: services.AuthConfig{
			Username:     cfg.AdminUsername,
			PasswordHash: hash,
			SessionTTL:   cfg.SessionTTL,
		},
	}

	// External stores
	rows := rowstore.NewClient(cfg.RowStoreURL, cfg.RowStoreToken, applog.Logger())
	media := mediastore.NewClient(cfg.MediaAPIURL, cfg.MediaCloud, cfg.MediaKey, cfg.MediaSecret, cfg.MediaFolder, applog.Logger())

	catSvc := services.NewCategoryService(rows, cfg.CategoriesTable)
	prodSvc := services.NewProductService(rows, media, cfg.ProductsTable)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			// Avoid leaking internals
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Server error"})
		},
	})
	// Body guard: up to 4 images per request
	app.Server().MaxRequestBodySize = 32 << 20 // 32 MiB

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigin,
		AllowCredentials: true,
	}))

	// Login throttle
	app.Use("/api/auth/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "Too many attempts, retry later"})
		},
	}))

	// ---------- Routes ----------
	handlers.Register(app, handlers.NewDeps(authSvc, catSvc, prodSvc))

	applog.Logger().Fatal(app.Listen(":" + cfg.Port))
}
