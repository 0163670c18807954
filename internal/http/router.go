package api

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"tablefinder/internal/config"
	"tablefinder/internal/http/handlers"
	applog "tablefinder/internal/log"
)

const genericErrMsg = "something went wrong, please try again"

// NewApp assembles the fiber app. access receives the request log lines;
// nil means stdout.
func NewApp(cfg config.Config, deps *handlers.Deps, access io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "tablefinder",
		BodyLimit:             cfg.BodyLimitBytes,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})

	// ---------- Middlewares ----------
	app.Use(recover.New())
	app.Use(requestid.New())
	if access != nil {
		app.Use(logger.New(logger.Config{Output: access}))
	} else {
		app.Use(logger.New())
	}
	app.Use(helmet.New())
	app.Use(cors.New(corsConfig(cfg.CORSOrigins)))

	searchLimiter := limiter.New(limiter.Config{
		Max:        cfg.RateLimitPerMin,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP() + "|search"
		},
		LimitReached: func(c *fiber.Ctx) error {
			applog.Security(c, "rate.search.hit", nil)
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "rate limit exceeded, retry soon"})
		},
	})

	// ---------- Routes ----------
	app.Get("/ping", deps.HealthHandler.Ping)
	app.Get("/healthz", deps.HealthHandler.Healthz)

	app.Post("/api/tables/available", searchLimiter, deps.AvailabilityHandler.Search)

	v1 := app.Group("/api/v1")
	v1.Get("/tables/available", searchLimiter, deps.AvailabilityHandler.SearchQuery)
	v1.Post("/tables/available", searchLimiter, deps.AvailabilityHandler.Search)

	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not found"})
	})
	return app
}

func corsConfig(origins string) cors.Config {
	return cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:  "Content-Type,Authorization,Telegram-WebApp-Version,Origin,Accept",
		ExposeHeaders: "Content-Length,Content-Type",
		// fiber refuses credentials together with a wildcard origin
		AllowCredentials: origins != "*",
	}
}

// errorHandler answers JSON and never echoes internal error text for 5xx.
func errorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) && fe.Code < fiber.StatusInternalServerError {
		c.Status(fe.Code)
		applog.Security(c, "request.reject", map[string]any{"reason": fe.Message})
		return c.JSON(fiber.Map{"error": fe.Message})
	}
	c.Status(fiber.StatusInternalServerError)
	applog.Error(c, "server.error", err, nil)
	return c.JSON(fiber.Map{"error": genericErrMsg})
}
