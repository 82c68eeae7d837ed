// @title          SIGMA caixa API
// @version        1.0
// @description    Catálogo de produtos e livro de caixa.
// @BasePath       /
// @securityDefinitions.apikey Bearer
// @in             header
// @name           Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/shopspring/decimal"

	_ "github.com/jhoicas/sigma-caixa-api/docs"
	"github.com/jhoicas/sigma-caixa-api/internal/application/auth"
	"github.com/jhoicas/sigma-caixa-api/internal/application/catalog"
	"github.com/jhoicas/sigma-caixa-api/internal/application/ledger"
	"github.com/jhoicas/sigma-caixa-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/sigma-caixa-api/internal/infrastructure/pdf"
	"github.com/jhoicas/sigma-caixa-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/sigma-caixa-api/internal/interfaces/http"
	"github.com/jhoicas/sigma-caixa-api/pkg/config"
	"github.com/jhoicas/sigma-caixa-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	// Valores monetarios como número JSON (no string).
	decimal.MarshalJSONWithoutQuotes = true

	ctx := context.Background()
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), log.Component("migrate")); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewCashMovementRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Tokens revocados: Redis si está configurado, si no en memoria (una sola instancia).
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
		}
		defer client.Close()
		blacklist = cache.NewRedisTokenBlacklist(client)
	} else {
		log.Warn().Msg("REDIS_ADDR no definido, revocación de tokens en memoria")
		blacklist = cache.NewMemoryTokenBlacklist()
	}

	authUC := auth.NewAuthUseCase(userRepo, blacklist, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	if cfg.Auth.AdminPassword != "" {
		created, err := authUC.EnsureUser(ctx, cfg.Auth.AdminUsername, cfg.Auth.AdminPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("crear usuario administrador")
		}
		if created {
			log.Info().Str("username", cfg.Auth.AdminUsername).Msg("usuario administrador creado")
		}
	}

	productUC := catalog.NewProductUseCase(productRepo, txRunner)
	cashUC := ledger.NewCashUseCase(movementRepo, txRunner)

	// PDF: extracto del libro de caja
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		log.Warn().Err(err).Msg("zona horaria America/Sao_Paulo no disponible, usando UTC")
		loc = time.UTC
	}
	statementUC := ledger.NewStatementUseCase(cashUC, infrapdf.NewStatementGenerator(cfg.App.Name, loc))

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    cfg.App.Name,
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		ProductUC: productUC,
		CashUC:    cashUC,
		Statement: statementUC,
		AuthUC:    authUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
