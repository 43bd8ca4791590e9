package main

import (
	"io"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"

	"shopbook/internal/config"
	"shopbook/internal/http/handlers"
	applog "shopbook/internal/log"
	"shopbook/internal/repos"
	"shopbook/internal/services"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Optional file logging
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			log.Printf("[warn] could not open log file %s: %v", cfg.LogFile, err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		log.Fatal(err)
	}

	userRepo := repos.NewUserRepo(db)
	authSvc := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)

	app := fiber.New(fiber.Config{
		// Product names appear percent-encoded in route params.
		UnescapePath: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Error(c, "server.error", err, nil)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "INTERNAL"})
		},
	})
	app.Server().MaxRequestBodySize = 1 << 20 // 1 MiB

	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: time.Minute,
	}))

	deps := handlers.NewDeps(db, authSvc)
	requireUser := handlers.RequireUser(authSvc)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/", deps.UserHandler.Register)
	users.Post("/login", limiter.New(limiter.Config{
		Max:        5,
		Expiration: 10 * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.login.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "TOO_MANY_ATTEMPTS"})
		},
	}), deps.UserHandler.Login)

	products := api.Group("/products", requireUser)
	products.Get("/", deps.ProductHandler.List)
	products.Post("/", deps.ProductHandler.Create)
	products.Put("/", deps.ProductHandler.Update)
	products.Get("/:name", deps.ProductHandler.GetByName)
	products.Delete("/:name", deps.ProductHandler.Delete)

	sales := api.Group("/sales", requireUser)
	sales.Get("/", deps.SaleHandler.List)
	sales.Post("/", deps.SaleHandler.Make)
	sales.Get("/profit/:date", deps.SaleHandler.ProfitByDate)
	sales.Get("/total/:date", deps.SaleHandler.TotalByDate)
	sales.Get("/buyer/:buyer", deps.SaleHandler.ByBuyer)
	sales.Get("/product/:name", deps.SaleHandler.ByProduct)
	sales.Get("/:date", deps.SaleHandler.ByDate)
	sales.Put("/:id", deps.SaleHandler.Correct)

	credits := api.Group("/credits", requireUser)
	credits.Get("/", deps.CreditHandler.List)
	credits.Post("/", deps.CreditHandler.Create)
	credits.Post("/pay", deps.CreditHandler.Pay)
	// /total must register before the /:date wildcard
	credits.Get("/total", deps.CreditHandler.Total)
	credits.Get("/buyer/:name", deps.CreditHandler.ByBuyer)
	credits.Get("/unique/:id", deps.CreditHandler.Get)
	credits.Get("/:date", deps.CreditHandler.ByDate)
	credits.Put("/:id", deps.CreditHandler.Correct)

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "NOT_FOUND"})
	})

	log.Fatal(app.Listen(":" + cfg.Port))
}
