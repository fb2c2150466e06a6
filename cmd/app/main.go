package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"
	"github.com/wichananm65/select-shop-backend/internal/config"
	"github.com/wichananm65/select-shop-backend/internal/database"
	"github.com/wichananm65/select-shop-backend/internal/favorite"
	"github.com/wichananm65/select-shop-backend/internal/folder"
	"github.com/wichananm65/select-shop-backend/internal/logging"
	"github.com/wichananm65/select-shop-backend/internal/product"
	"github.com/wichananm65/select-shop-backend/internal/user"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	db := mustOpenDB(cfg, logger)
	defer db.Close()

	app := fiber.New()
	app.Use(recover.New(recover.Config{EnableStackTrace: true}))
	setupCORS(app, cfg.CORSOrigins)
	app.Use(logging.Middleware(logger))

	tx := database.NewTxManager(db)

	userService := user.NewService(user.NewPostgresRepository(db), cfg.AdminToken)
	userHandler := user.NewHandler(userService, cfg.JWTSecret)

	folderService := folder.NewService(folder.NewPostgresRepository(db), tx)
	folderHandler := folder.NewHandler(folderService, userService)

	favoriteService := favorite.NewService(
		product.NewPostgresRepository(db),
		folder.NewPostgresRepository(db),
		folder.NewPostgresProductFolderRepository(db),
		tx,
		nil,
	)
	favoriteHandler := favorite.NewHandler(favoriteService, userService)

	userHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
	}))

	folderHandler.RegisterProtectedRoutes(app)
	favoriteHandler.RegisterProtectedRoutes(app)

	logger.Info("starting server", "addr", cfg.Addr)
	if err := app.Listen(cfg.Addr); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func setupCORS(app *fiber.App, origins string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Trace-ID",
	}))
}

func mustOpenDB(cfg config.Config, logger *slog.Logger) *sql.DB {
	ctx := context.Background()

	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("open database", "error", err)
		os.Exit(1)
	}

	if cfg.AutoMigrate {
		if err := database.Migrate(ctx, db); err != nil {
			logger.Error("migrate database", "error", err)
			os.Exit(1)
		}
	}
	return db
}
