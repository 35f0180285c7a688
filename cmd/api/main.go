package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/calebcharles343/divine-favour-store-backend/internal/handler"
	"github.com/calebcharles343/divine-favour-store-backend/internal/middleware"
	"github.com/calebcharles343/divine-favour-store-backend/internal/model"
	"github.com/calebcharles343/divine-favour-store-backend/internal/repository"
	"github.com/calebcharles343/divine-favour-store-backend/internal/service"
	"github.com/calebcharles343/divine-favour-store-backend/internal/ws"
	"github.com/calebcharles343/divine-favour-store-backend/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(
		&model.User{},
		&model.StoreProduct{},
		&model.SalesTransaction{},
		&model.SalesItem{},
		&model.File{},
		&model.FileAssociation{},
	)

	// 3. Seed default admin user
	seedAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	productRepo := repository.NewProductRepo(db)
	salesRepo := repository.NewSalesRepo(db)
	userRepo := repository.NewUserRepo(db)
	fileRepo := repository.NewFileRepo(db)

	fileService := service.NewFileService(fileRepo)
	productService := service.NewProductService(productRepo, fileService, wsHub)
	salesService := service.NewSalesService(productRepo, salesRepo, wsHub)
	inventoryService := service.NewInventoryService(productRepo, wsHub)
	reportService := service.NewReportService(salesRepo, productRepo)
	authService := service.NewAuthService(userRepo)

	productHandler := handler.NewProductHandler(productService, fileService)
	salesHandler := handler.NewSalesHandler(salesService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	reportHandler := handler.NewReportHandler(reportService)
	authHandler := handler.NewAuthHandler(authService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Divine Favour Store v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", middleware.RequireAuth(userRepo))

	protected.Post("/auth/register",
		middleware.RestrictTo(model.RoleSuperAdmin, model.RoleAdmin), authHandler.Register)
	protected.Post("/auth/update-password", authHandler.UpdatePassword)

	// Product Routes (catalog CRUD)
	staffAndUp := middleware.RestrictTo(model.RoleSuperAdmin, model.RoleAdmin, model.RoleManager, model.RoleStaff)
	managersOnly := middleware.RestrictTo(model.RoleSuperAdmin, model.RoleAdmin, model.RoleManager)

	protected.Get("/products", staffAndUp, productHandler.GetProducts)
	protected.Post("/products", managersOnly, productHandler.CreateProduct)
	protected.Get("/products/barcode/:barcode", staffAndUp, productHandler.GetProductByBarcode)
	protected.Get("/products/:id", staffAndUp, productHandler.GetProduct)
	protected.Put("/products/:id", managersOnly, productHandler.UpdateProduct)
	protected.Delete("/products/:id",
		middleware.RestrictTo(model.RoleSuperAdmin, model.RoleAdmin), productHandler.DeleteProduct)

	// Sales Routes (write path + ledger listing)
	protected.Post("/sales", staffAndUp, salesHandler.RecordSale)
	protected.Get("/sales", staffAndUp, salesHandler.GetSales)
	protected.Get("/sales/stats", managersOnly, reportHandler.GetSalesStats)
	protected.Get("/sales/:id", staffAndUp, salesHandler.GetSale)

	// Inventory Routes
	protected.Get("/inventory/low-stock", staffAndUp, inventoryHandler.GetLowStock)
	protected.Get("/inventory/out-of-stock", staffAndUp, inventoryHandler.GetOutOfStock)
	protected.Post("/inventory/bulk-update", managersOnly, inventoryHandler.BulkAdjustStock)
	protected.Post("/inventory/restock/:id", managersOnly, inventoryHandler.Restock)
	protected.Get("/inventory/report", managersOnly, inventoryHandler.GetInventoryReport)
	protected.Get("/inventory/expected-profit", managersOnly, inventoryHandler.GetExpectedProfit)

	// Report Routes
	protected.Get("/reports/stock-movement/:productId", managersOnly, reportHandler.GetStockMovement)
	protected.Get("/reports/best-sellers", managersOnly, reportHandler.GetBestSellers)
	protected.Get("/reports/profit-loss", managersOnly, reportHandler.GetProfitLoss)

	// WebSocket Route
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 8. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// seedAdmin creates the default super admin if no account exists yet
func seedAdmin(db *gorm.DB) {
	userRepo := repository.NewUserRepo(db)

	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@example.com"
	}

	if _, err := userRepo.FindByEmail(email); err == nil {
		return
	}

	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin123"
	}

	admin := &model.User{
		Email:     email,
		FirstName: "Store",
		LastName:  "Administrator",
		Role:      model.RoleSuperAdmin,
		IsActive:  true,
	}
	admin.CreatedBy = "system"
	admin.UpdatedBy = "system"

	if err := admin.SetPassword(password); err != nil {
		log.Printf("Warning: Failed to hash admin password: %v", err)
		return
	}

	if err := userRepo.Create(admin); err != nil {
		log.Printf("Warning: Failed to create admin user: %v", err)
	} else {
		log.Printf("Admin user created: %s (SUPER-ADMIN)", email)
	}
}
