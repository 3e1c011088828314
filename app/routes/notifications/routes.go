package notifications

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/seferogluemre/LibraryManagement-sub001/app/config"
	"github.com/seferogluemre/LibraryManagement-sub001/app/database"
	"github.com/seferogluemre/LibraryManagement-sub001/app/routes/auth"
	"github.com/seferogluemre/LibraryManagement-sub001/app/schema"
	"github.com/seferogluemre/LibraryManagement-sub001/app/services"
)

// Notifications are written by the background job; the API only lists
// them and marks them read.
func SetupNotificationsRoutes(app *fiber.App) {
	svc := services.NewCRUDService(config.GetDB(), schema.Notifications)
	handler := &Handler{svc: svc}

	api := app.Group("/api/notifications")
	api.Use(auth.AuthMiddleware)
	api.Get("/", handler.IndexAPI)
	api.Patch("/read-all", handler.ReadAllAPI)
	api.Patch("/:id/read", handler.ReadAPI)
}

type Handler struct {
	svc *services.CRUDService
}

// IndexAPI lists the authenticated user's notifications. Client filters
// (is_read, type) are AND-ed with the ownership predicate.
func (h *Handler) IndexAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	where := map[string]any{"user_id": userID}
	if c.Query("is_read") != "" {
		where["is_read"] = c.QueryBool("is_read")
	}
	if t := c.Query("type"); t != "" {
		where["type"] = t
	}

	result, err := h.svc.Index(c.Context(), services.ListQuery{
		Page:    c.QueryInt("page", 0),
		Limit:   c.QueryInt("limit", 0),
		OrderBy: c.Query("order_by"),
		Where:   where,
	})
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *Handler) ReadAPI(c *fiber.Ctx) error {
	notificationID := c.Params("id")
	if _, err := uuid.Parse(notificationID); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": "Invalid notification id"})
	}

	userID := c.Locals("user_id").(string)
	if err := database.MarkNotificationRead(config.GetDB(), notificationID, userID); err != nil {
		if err == sql.ErrNoRows {
			return c.Status(404).JSON(fiber.Map{"error": "notification not found"})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update notification"})
	}
	return c.JSON(fiber.Map{"message": "Notification marked as read"})
}

func (h *Handler) ReadAllAPI(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	updated, err := database.MarkAllNotificationsRead(config.GetDB(), userID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to update notifications"})
	}
	return c.JSON(fiber.Map{
		"message": "Notifications marked as read",
		"updated": updated,
	})
}
