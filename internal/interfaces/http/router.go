package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Kardex-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	LedgerUC *usecase.LedgerUseCase
	ImportUC *usecase.ImportUseCase
	ExportUC *usecase.ExportUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	products := api.Group("/products")
	handler := NewProductHandler(deps.LedgerUC, deps.ImportUC, deps.ExportUC)
	products.Get("/", handler.List)
	products.Get("/search", handler.Search)
	products.Get("/export", handler.Export)
	products.Post("/import", handler.Import)
	products.Put("/:id", handler.Update)
	products.Get("/:id/history", handler.History)
}
