package students

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seferogluemre/LibraryManagement-sub001/app/config"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/auth"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/crud"
	"github.com/seferogluemre/LibraryManagement-sub001/app/schema"
	"github.com/seferogluemre/LibraryManagement-sub001/app/services"
)

func SetupStudentsRoutes(app *fiber.App) {
	svc := services.NewCRUDService(config.GetDB(), schema.Students)
	handler := &Handler{svc: svc}

	api := app.Group("/api/students")
	api.Use(auth.AuthMiddleware)

	// Literal paths before the generic /:id routes
	api.Get("/by-class/:classId", handler.GetByClassAPI)
	api.Get("/by-student-no/:studentNo", handler.GetByStudentNoAPI)
	api.Post("/:id/transfer", handler.TransferAPI)
	api.Get("/:id/transfers", handler.GetTransfersAPI)

	crud.NewHandler(svc).Register(api)
}
