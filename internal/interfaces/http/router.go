package http

import (
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Taller-api/internal/application/cashregister"
	"github.com/jhoicas/Taller-api/internal/application/inventory"
	"github.com/jhoicas/Taller-api/internal/application/repairs"
	"github.com/jhoicas/Taller-api/internal/application/sales"
	"github.com/jhoicas/Taller-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Taller-api/pkg/jwt"
	"github.com/jhoicas/Taller-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Ledger    *inventory.Ledger
	LowStock  *inventory.LowStockUseCase
	Sales     *sales.SalesUseCase
	Receipt   *sales.ReceiptUseCase
	Repairs   *repairs.RepairUseCase
	Cash      *cashregister.CashRegisterUseCase
	Metrics   *metrics.Metrics // opcional; sin él no se expone /metrics
	APIDocs   []byte           // swagger.json servido en /docs; vacío lo deshabilita
	Log       *logger.Logger
	JWTSecret string
	AppName   string
}

// NewApp crea la app Fiber con el manejador de errores y los middlewares comunes, y registra las rutas.
func NewApp(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ErrorHandler: ErrorHandler,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	if deps.Metrics != nil {
		app.Use(Metrics(deps.Metrics))
	}
	app.Use(RequestLogger(deps.Log.Component("http")))
	app.Use(recover.New())
	if len(deps.APIDocs) > 0 {
		app.Use(swagger.New(swagger.Config{
			BasePath:    "/",
			FilePath:    "./docs/swagger.json",
			FileContent: deps.APIDocs,
			Path:        "docs",
			Title:       deps.AppName,
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API. Todas requieren Bearer Token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	supervisors := RequireRole(jwt.RoleAdmin, jwt.RoleSupervisor)
	counter := RequireRole(jwt.RoleAdmin, jwt.RoleSupervisor, jwt.RoleCashier)
	workshop := RequireRole(jwt.RoleAdmin, jwt.RoleSupervisor, jwt.RoleTechnician)
	anyRole := RequireRole(jwt.RoleAdmin, jwt.RoleSupervisor, jwt.RoleCashier, jwt.RoleTechnician)

	// Inventario
	inv := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.LowStock)
	inv.Post("/movements", supervisors, inventoryHandler.RegisterMovement)
	inv.Get("/movements", supervisors, inventoryHandler.ListMovements)
	inv.Get("/kardex/:productId", anyRole, inventoryHandler.Kardex)
	inv.Get("/low-stock", supervisors, inventoryHandler.LowStock)

	// Ventas
	salesGroup := api.Group("/sales")
	saleHandler := NewSaleHandler(deps.Sales, deps.Receipt)
	salesGroup.Post("/", counter, saleHandler.Create)
	salesGroup.Get("/", counter, saleHandler.List)
	salesGroup.Get("/:id", counter, saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", counter, saleHandler.Receipt)
	salesGroup.Put("/:id/cancel", supervisors, saleHandler.Cancel)

	// Reparaciones
	rep := api.Group("/repairs")
	repairHandler := NewRepairHandler(deps.Repairs)
	rep.Post("/", counter, repairHandler.Create)
	rep.Get("/", anyRole, repairHandler.List)
	rep.Get("/history", anyRole, repairHandler.History)
	rep.Get("/:id", anyRole, repairHandler.GetByID)
	rep.Put("/:id", supervisors, repairHandler.Update)
	rep.Put("/:id/status", anyRole, repairHandler.ChangeStatus)
	rep.Post("/:id/items", workshop, repairHandler.AddItem)
	rep.Post("/:id/software", workshop, repairHandler.AddSoftwareAction)
	rep.Post("/:id/notes", anyRole, repairHandler.AddNote)
	rep.Post("/:id/deliver", supervisors, repairHandler.Deliver)
	rep.Delete("/:id", supervisors, repairHandler.Cancel)

	// Caja
	cash := api.Group("/cash-register")
	cashHandler := NewCashRegisterHandler(deps.Cash)
	cash.Post("/open", counter, cashHandler.Open)
	cash.Put("/:id/close", counter, cashHandler.Close)
	cash.Post("/movements", counter, cashHandler.AddMovement)
	cash.Get("/current", counter, cashHandler.Current)
	cash.Get("/history", counter, cashHandler.History)
}
