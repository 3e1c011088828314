package publishers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/seferogluemre/LibraryManagement-sub001/app/config"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/auth"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/crud"
	"github.com/seferogluemre/LibraryManagement-sub001/app/schema"
	"github.com/seferogluemre/LibraryManagement-sub001/app/services"
)

func SetupPublishersRoutes(app *fiber.App) {
	svc := services.NewCRUDService(config.GetDB(), schema.Publishers)

	api := app.Group("/api/publishers")
	api.Use(auth.AuthMiddleware)
	crud.NewHandler(svc).Register(api)
}
