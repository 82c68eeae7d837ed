package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/sigma-caixa-api/internal/application/auth"
	"github.com/jhoicas/sigma-caixa-api/internal/application/catalog"
	"github.com/jhoicas/sigma-caixa-api/internal/application/ledger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	ProductUC *catalog.ProductUseCase
	CashUC    *ledger.CashUseCase
	Statement *ledger.StatementUseCase // opcional
	AuthUC    *auth.AuthUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Públicas
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": deps.AppName, "docs": "/docs"})
	})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	requireAuth := AuthMiddleware(deps.AuthUC)
	app.Post("/logout", requireAuth, authHandler.Logout)

	products := app.Group("/produtos", requireAuth)
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	cash := app.Group("/caixa", requireAuth)
	cashHandler := NewCashHandler(deps.CashUC, deps.Statement)
	cash.Get("/", cashHandler.List)
	cash.Get("/relatorio", cashHandler.Statement)
	cash.Post("/movimentacao", cashHandler.Create)
	cash.Get("/movimentacao/:id", cashHandler.GetByID)
	cash.Put("/movimentacao/:id", cashHandler.Update)
	cash.Delete("/movimentacao/:id", cashHandler.Delete)
}
