package authors

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seferogluemre/LibraryManagement-sub001/app/config"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/auth"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/crud"
	"github.com/seferogluemre/LibraryManagement-sub001/app/schema"
	"github.com/seferogluemre/LibraryManagement-sub001/app/services"
)

func SetupAuthorsRoutes(app *fiber.App) {
	svc := services.NewCRUDService(config.GetDB(), schema.Authors)

	api := app.Group("/api/authors")
	api.Use(auth.AuthMiddleware)
	crud.NewHandler(svc).Register(api)
}
