package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-resale-ops/internal/handler"
	"go-resale-ops/internal/model"
	"go-resale-ops/internal/repository"
	"go-resale-ops/internal/service"
	"go-resale-ops/internal/ws"
	"go-resale-ops/pkg/database"

	"github.com/gofiber/contrib/websocket"
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
	db.AutoMigrate(
		&model.Client{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
		&model.KanbanCard{},
		&model.Expense{},
		&model.RevenueEntry{},
	)

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	clientRepo := repository.NewClientRepo(db)
	productRepo := repository.NewProductRepo(db)
	orderRepo := repository.NewOrderRepo(db)
	kanbanRepo := repository.NewKanbanRepo(db)
	expenseRepo := repository.NewExpenseRepo(db)
	revenueRepo := repository.NewRevenueRepo(db)

	orderService := service.NewOrderService(orderRepo, clientRepo, productRepo, kanbanRepo, wsHub)
	kanbanService := service.NewKanbanService(kanbanRepo, orderRepo, wsHub)
	analyticsService := service.NewAnalyticsService(orderRepo, clientRepo, expenseRepo, revenueRepo)

	orderHandler := handler.NewOrderHandler(orderService)
	kanbanHandler := handler.NewKanbanHandler(kanbanService)
	reportHandler := handler.NewReportHandler(analyticsService)
	clientHandler := handler.NewClientHandler(clientRepo)
	productHandler := handler.NewProductHandler(productRepo)
	expenseHandler := handler.NewExpenseHandler(expenseRepo)
	revenueHandler := handler.NewRevenueHandler(revenueRepo)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Revenda Local API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// 6. Routes
	api := app.Group("/api/v1")

	// Dashboard & Reports
	api.Get("/dashboard/stats", reportHandler.GetDashboardStats)
	api.Get("/reports", reportHandler.GetReport)

	// Orders (workflow, not plain CRUD)
	api.Get("/orders", orderHandler.GetOrders)
	api.Get("/orders/:id", orderHandler.GetOrder)
	api.Post("/orders", orderHandler.CreateOrder)
	api.Post("/orders/:id/resume", orderHandler.ResumeOrder)

	// Kanban board
	api.Get("/kanban", kanbanHandler.GetBoard)
	api.Put("/kanban/:id/move", kanbanHandler.MoveCard)

	// Record editors
	api.Get("/clients", clientHandler.GetClients)
	api.Post("/clients", clientHandler.CreateClient)
	api.Put("/clients/:id", clientHandler.UpdateClient)
	api.Delete("/clients/:id", clientHandler.DeleteClient)

	api.Get("/products", productHandler.GetProducts)
	api.Post("/products", productHandler.CreateProduct)
	api.Put("/products/:id", productHandler.UpdateProduct)
	api.Delete("/products/:id", productHandler.DeleteProduct)

	api.Get("/expenses", expenseHandler.GetExpenses)
	api.Post("/expenses", expenseHandler.CreateExpense)
	api.Put("/expenses/:id", expenseHandler.UpdateExpense)
	api.Delete("/expenses/:id", expenseHandler.DeleteExpense)

	api.Get("/revenue-entries", revenueHandler.GetEntries)
	api.Post("/revenue-entries", revenueHandler.CreateEntry)

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

	// 7. Graceful Shutdown
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
