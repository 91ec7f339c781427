package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Kauan-Sabino/almoxarifado-api/internal/application/stock"
	"github.com/Kauan-Sabino/almoxarifado-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	MovementUC *stock.MovementUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token del servicio de identidad)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Stock movements (protegido)
	movements := protected.Group("/movements")
	stockHandler := NewStockHandler(deps.MovementUC)
	movements.Post("/", stockHandler.CreateMovement)
	movements.Get("/", stockHandler.ListMovements)
	movements.Get("/:id", stockHandler.GetMovement)
	movements.Patch("/:id", stockHandler.CorrectMovement)
	movements.Delete("/:id", stockHandler.ReverseMovement)
}
