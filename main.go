package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/google/uuid"

	"jbh_backend/internals/configs"
	database "jbh_backend/internals/databases"
	webhookScheduler "jbh_backend/internals/features/liveclass/webhooks/scheduler"
	helper "jbh_backend/internals/helpers"
	"jbh_backend/internals/helpers/videosdk"
	middlewares "jbh_backend/internals/middlewares"
	routes "jbh_backend/internals/route"
)

func main() {
	configs.LoadEnv()

	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())

	// Request-ID + timing + per-request timeout guard
	app.Use(func(c *fiber.Ctx) error {
		id := c.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("X-Request-ID", id)
		c.Locals("reqid", id)
		start := time.Now()
		ctx, cancel := context.WithTimeout(c.Context(), 15*time.Second)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		log.Printf("[REQ] id=%s %s %s status=%d dur=%s",
			id, c.Method(), c.OriginalURL(), c.Response().StatusCode(), time.Since(start))
		return err
	})

	middlewares.SetupMiddlewares(app)

	database.ConnectDB()
	database.TunePool()

	// Durable deferred attendance finalization (survives restarts).
	webhookScheduler.StartFinalizeSweeper(database.DB, 15*time.Second)

	rooms := videosdk.NewClient(
		configs.VideoSDKAPIKey,
		configs.VideoSDKSecretKey,
		configs.VideoSDKEndpoint,
		configs.WebhookEndpoint,
	)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	routes.SetupRoutes(app, database.DB, rooms)

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("[INFO] Shutting down...")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	port := configs.GetEnvOr("PORT", "8080")
	log.Printf("[INFO] Listening on :%s (class timezone %s)", port, helper.ClassLocation())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("[ERROR] server stopped: %v", err)
	}
}
