package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/seferogluemre/LibraryManagement-sub001/app/apperr"
	"github.com/seferogluemre/LibraryManagement-sub001/app/config"
	"github.com/seferogluemre/LibraryManagement-sub001/app/database"
	"github.com/seferogluemre/LibraryManagement-sub001/app/presence"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/auth"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/authors"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/books"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/categories"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/classrooms"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/notifications"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/publishers"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/students"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/ws"
	"github.com/seferogluemre/LibraryManagement-sub001/app/services"
)

// errorHandler maps domain errors to HTTP statuses. Unclassified errors
// surface as a generic 500; the cause is logged, never sent.
func errorHandler(c *fiber.Ctx, err error) error {
	if kind := apperr.KindOf(err); kind != apperr.KindUnknown {
		return c.Status(apperr.StatusCode(err)).JSON(fiber.Map{"error": err.Error()})
	}

	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
	}

	log.Printf("Unhandled error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(500).JSON(fiber.Map{"error": "Internal server error"})
}

func main() {
	// Initialize database
	config.InitDB()
	defer config.GetDB().Close()

	// Run database migrations
	if err := database.RunMigrations(config.GetDB()); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	// Start background scheduler
	mailer := services.NewMailer(config.AppConfig.SMTP)
	services.StartScheduler(config.GetDB(), mailer)

	// Online presence tracker with TTL expiry for missed disconnects
	tracker := presence.NewTracker(60 * time.Second)
	tracker.Start(15 * time.Second)
	defer tracker.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      config.AppConfig.AppName,
		ErrorHandler: errorHandler,
	})

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Routes
	auth.SetupAuthRoutes(app)
	authors.SetupAuthorsRoutes(app)
	categories.SetupCategoriesRoutes(app)
	publishers.SetupPublishersRoutes(app)
	books.SetupBooksRoutes(app)
	classrooms.SetupClassroomsRoutes(app)
	students.SetupStudentsRoutes(app)
	notifications.SetupNotificationsRoutes(app)
	ws.SetupWSRoutes(app, tracker)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "online_users": tracker.Count()})
	})

	log.Printf("%s listening on port %s", config.AppConfig.AppName, config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
