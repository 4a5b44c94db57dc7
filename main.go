package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"schoolku_backend/internals/configs"
	database "schoolku_backend/internals/databases"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/locker"
	"schoolku_backend/internals/helpers/logger"
	"schoolku_backend/internals/helpers/tracing"
	middlewares "schoolku_backend/internals/middlewares"
	routes "schoolku_backend/internals/route"
)

func main() {
	logger.Init(configs.GetEnv("APP_ENV", "development"))
	configs.LoadEnv()
	log := logger.Init(configs.AppEnv)
	defer logger.Sync()

	shutdownTracer, err := tracing.Init(configs.OtelExporter)
	if err != nil {
		log.Warn("⚠️ tracer gagal diinisialisasi", zap.Error(err))
	}

	// 🔌 DB connect + pool + migrate
	db, err := database.ConnectDB(log)
	if err != nil {
		log.Fatal("❌ DB", zap.Error(err))
	}
	if err := database.TunePool(db); err != nil {
		log.Warn("⚠️ tune pool", zap.Error(err))
	}
	if configs.GetEnv("AUTO_MIGRATE", "true") == "true" {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatal("❌ migrate", zap.Error(err))
		}
	}

	lk := locker.FromAddr(configs.RedisAddr)

	app := fiber.New(fiber.Config{
		// 🚀 JSON super cepat
		JSONEncoder:           sonic.Marshal,
		JSONDecoder:           sonic.Unmarshal,
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return helper.FromServiceError(c, err)
		},
	})

	// ⚙️ middleware dasar + performa
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	routes.SetupRoutes(app, db, routes.Deps{Locker: lk, Log: log, JWTSecret: configs.JWTSecret})

	// 🔒 Keep-Alive & timeout koneksi server
	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 10 * time.Minute // kenaikan kelas bisa lama
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("✅ Listening", zap.String("port", port))
		return app.Listen("0.0.0.0:" + port)
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info("🛑 shutting down...")
		err := app.ShutdownWithContext(sctx)
		if terr := shutdownTracer(sctx); terr != nil {
			log.Warn("tracer shutdown", zap.Error(terr))
		}
		database.Close(db)
		return err
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server berhenti dengan error", zap.Error(err))
	}
}
