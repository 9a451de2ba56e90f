package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agriconnect/internal/config"
	"agriconnect/internal/handler"
	"agriconnect/internal/model"
	"agriconnect/internal/repository"
	"agriconnect/internal/service"
	"agriconnect/internal/session"
	"agriconnect/pkg/database"

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
	cfg := config.Load()

	// 2. Setup Database
	db := database.ConnectDB()
	// Auto Migrate (use a dedicated migration tool in production)
	if err := db.AutoMigrate(
		&model.UserType{},
		&model.User{},
		&model.Product{},
		&model.Listing{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}

	// 3. Seed static user types (farmer, buyer)
	userTypeRepo := repository.NewUserTypeRepo(db)
	if err := userTypeRepo.SeedDefaults(); err != nil {
		log.Printf("Warning: failed to seed user types: %v", err)
	}

	// 4. Session store (redis, TTL-based expiry)
	sessions := session.NewRedisStore(cfg.RedisAddr, cfg.SessionTTL)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := sessions.Ping(ctx); err != nil {
		log.Fatalf("Failed to connect to redis at %s: %v", cfg.RedisAddr, err)
	}
	cancel()

	// 5. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	listingRepo := repository.NewListingRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	authService := service.NewAuthService(userRepo, userTypeRepo, sessions)
	catalogService := service.NewCatalogService(productRepo, listingRepo)
	orderService := service.NewOrderService(orderRepo, listingRepo, db)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL)
	userHandler := handler.NewUserHandler(userRepo, catalogService, orderService)
	productHandler := handler.NewProductHandler(catalogService)
	listingHandler := handler.NewListingHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "AgriConnect API v1.0",
	})

	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 7. Routes
	handler.RegisterRoutes(app, sessions, authHandler, userHandler, productHandler, listingHandler, orderHandler)

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
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
