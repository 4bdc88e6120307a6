package main

import (
	"academy/catalog"
	"academy/config"
	"academy/database"
	"academy/engine"
	"academy/middleware"
	"academy/repository"
	adminRoutes "academy/routers/adminRoutes"
	authRoutes "academy/routers/authRoutes"
	courseRoutes "academy/routers/courseRoutes"
	"academy/utils"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	cat, err := catalog.Load(database.Database.Db, config.AppConfig.ModuleCap, config.AppConfig.FreeModuleID)
	if err != nil {
		log.Fatalf("Failed to load module catalog: %v", err)
	}
	catalog.Default = cat

	engine.Setup(database.Database.Db, cat, config.AppConfig.AllowRerequestApproved)
	middleware.Users = repository.NewUserRepo(database.Database.Db)

	utils.InitializeDigestScheduler()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	authRoutes.SetupAuthRoutes(app)
	courseRoutes.SetupCourseRoutes(app)
	adminRoutes.SetupAdminRoutes(app)

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
