package books

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seferogluemre/LibraryManagement-sub001/app/config"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/auth"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/crud"
	"github.com/seferogluemre/LibraryManagement-sub001/app/schema"
	"github.com/seferogluemre/LibraryManagement-sub001/app/services"
)

func SetupBooksRoutes(app *fiber.App) {
	svc := services.NewCRUDService(config.GetDB(), schema.Books)
	handler := &Handler{svc: svc}

	api := app.Group("/api/books")
	api.Use(auth.AuthMiddleware)

	api.Post("/:id/assign", handler.AssignAPI)
	api.Post("/:id/return", handler.ReturnAPI)

	crud.NewHandler(svc).Register(api)

	// Read-only view over the assignment ledger
	assignments := app.Group("/api/assignments")
	assignments.Use(auth.AuthMiddleware)
	assignmentSvc := services.NewCRUDService(config.GetDB(), schema.BookAssignments)
	assignmentHandler := crud.NewHandler(assignmentSvc)
	assignments.Get("/", assignmentHandler.Index)
	assignments.Get("/:id", assignmentHandler.Show)
}
