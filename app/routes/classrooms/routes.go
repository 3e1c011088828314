package classrooms

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seferogluemre/LibraryManagement-sub001/app/config"
	"github.com/seferogluemre/LibraryManagement-sub001/app/database"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/auth"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/crud"
	"github.com/seferogluemre/LibraryManagement-sub001/app/schema"
	"github.com/seferogluemre/LibraryManagement-sub001/app/services"
)

func SetupClassroomsRoutes(app *fiber.App) {
	svc := services.NewCRUDService(config.GetDB(), schema.Classrooms)

	api := app.Group("/api/classrooms")
	api.Use(auth.AuthMiddleware)
	api.Get("/stats", GetClassroomsStatsAPI)
	crud.NewHandler(svc).Register(api)
}

// GetClassroomsStatsAPI returns student counts per classroom for the
// dashboard overview.
func GetClassroomsStatsAPI(c *fiber.Ctx) error {
	counts, err := database.GetClassroomStudentCounts(config.GetDB())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch classroom statistics"})
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    counts,
	})
}
