package main

import (
	"log"

	"github.com/cakebro/bakery-api/internal/application/service"
	"github.com/cakebro/bakery-api/internal/config"
	"github.com/cakebro/bakery-api/internal/infrastructure/database"
	"github.com/cakebro/bakery-api/internal/infrastructure/export"
	"github.com/cakebro/bakery-api/internal/infrastructure/repository"
	"github.com/cakebro/bakery-api/internal/presentation/http/handler"
	"github.com/cakebro/bakery-api/internal/presentation/http/routes"
	"github.com/cakebro/bakery-api/pkg/email"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize repositories
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	dailySaleRepo := repository.NewDailySaleRepository(db)
	reportRepo := repository.NewReportRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
	})

	// Initialize exporters
	xlsxBuilder := export.NewXLSXBuilder()
	pdfRenderer := export.NewGotenbergRenderer(cfg.Gotenberg.URL)

	// Initialize services
	pricer := service.NewCartPricer(productRepo)
	catalogService := service.NewCatalogService(categoryRepo, productRepo)
	customerService := service.NewCustomerService(customerRepo)
	invoiceService := service.NewInvoiceService(invoiceRepo, customerService, pricer)
	orderService := service.NewOrderService(orderRepo, customerService, pricer)
	reportService := service.NewReportService(
		reportRepo,
		dailySaleRepo,
		emailService,
		xlsxBuilder,
		pdfRenderer,
		cfg.Shop.Name,
		cfg.Shop.OwnerEmail,
	)

	// Initialize handlers
	handlers := &routes.Handlers{
		Category: handler.NewCategoryHandler(catalogService),
		Product:  handler.NewProductHandler(catalogService),
		Customer: handler.NewCustomerHandler(customerService),
		Invoice:  handler.NewInvoiceHandler(invoiceService),
		Order:    handler.NewOrderHandler(orderService),
		Report:   handler.NewReportHandler(reportService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
