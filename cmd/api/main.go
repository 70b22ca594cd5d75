package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-sales-tracker/internal/handler"
	"go-sales-tracker/internal/model"
	"go-sales-tracker/internal/repository"
	"go-sales-tracker/internal/service"
	"go-sales-tracker/pkg/database"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (Hati-hati di production, sebaiknya pakai tools migrasi terpisah)
	if err := db.AutoMigrate(&model.Category{}, &model.Product{}, &model.Sale{}, &model.MonthlySales{}); err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}
	// Case-insensitive uniqueness for category names lives in the store,
	// not just in the pre-insert lookup.
	if err := db.Exec("CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_ci ON categories (LOWER(name))").Error; err != nil {
		log.Fatal("Failed to create category name index: ", err)
	}

	// 3. Dependency Injection (Wiring Layers)
	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)
	monthlyRepo := repository.NewMonthlySalesRepo(db)

	categoryService := service.NewCategoryService(categoryRepo)
	productService := service.NewProductService(productRepo, categoryRepo, saleRepo)
	salesService := service.NewSalesService(saleRepo, monthlyRepo)

	categoryHandler := handler.NewCategoryHandler(categoryService)
	productHandler := handler.NewProductHandler(productService)
	salesHandler := handler.NewSalesHandler(salesService)

	// 4. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Sales Tracker v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 5. Routes
	api := app.Group("/api/v1")

	categories := api.Group("/categories")
	categories.Get("/", categoryHandler.GetCategories)
	categories.Post("/", categoryHandler.CreateCategory)
	categories.Put("/:id", categoryHandler.UpdateCategory)
	categories.Post("/upload", categoryHandler.UploadCSV)
	categories.Get("/csv", categoryHandler.ExportCSV)

	products := api.Group("/products")
	products.Get("/", productHandler.GetProducts)
	products.Post("/", productHandler.CreateProduct)
	products.Put("/:id", productHandler.UpdateProduct)
	products.Delete("/:id", productHandler.DeleteProduct)
	products.Post("/upload", productHandler.UploadCSV)
	products.Get("/csv", productHandler.ExportCSV)

	sales := api.Group("/sales")
	sales.Get("/summary", salesHandler.GetSummary)
	sales.Get("/years", salesHandler.GetYears)
	sales.Post("/upload", salesHandler.UploadCSV)
	sales.Get("/csv", salesHandler.ExportCSV)
	sales.Put("/override/:year/:month", salesHandler.UpsertOverride)

	// 6. Graceful Shutdown
	go func() {
		port := os.Getenv("PORT")
		if port == "" {
			port = "3000"
		}
		if err := app.Listen(":" + port); err != nil {
			log.Panic(err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
