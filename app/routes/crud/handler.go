package crud

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"

	"github.com/seferogluemre/LibraryManagement-sub001/app/services"
)

// Handler binds the five standard routes for one entity to its generic
// CRUD service. Entity packages register it on their route group and
// add their own endpoints next to it.
type Handler struct {
	svc *services.CRUDService
}

func NewHandler(svc *services.CRUDService) *Handler {
	return &Handler{svc: svc}
}

// Register wires the standard verbs onto a route group.
func (h *Handler) Register(api fiber.Router) {
	api.Get("/", h.Index)
	api.Post("/", h.Store)
	api.Get("/:id", h.Show)
	api.Patch("/:id", h.Update)
	api.Delete("/:id", h.Destroy)
}

func (h *Handler) Index(c *fiber.Ctx) error {
	query := services.ListQuery{
		Page:    c.QueryInt("page", 0),
		Limit:   c.QueryInt("limit", 0),
		OrderBy: c.Query("order_by"),
		Include: c.Query("include"),
	}
	if raw := c.Query("where"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &query.Where); err != nil {
			return c.Status(422).JSON(fiber.Map{"error": "where must be a JSON object"})
		}
	}

	result, err := h.svc.Index(c.Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(result)
}

func (h *Handler) Show(c *fiber.Ctx) error {
	record, err := h.svc.Show(c.Context(), map[string]any{"id": c.Params("id")}, c.Query("include"))
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (h *Handler) Store(c *fiber.Ctx) error {
	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
	}

	record, err := h.svc.Store(c.Context(), payload)
	if err != nil {
		return err
	}
	return c.Status(201).JSON(record)
}

func (h *Handler) Update(c *fiber.Ctx) error {
	payload := map[string]any{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid request body"})
		}
	}

	record, err := h.svc.Update(c.Context(), c.Params("id"), payload)
	if err != nil {
		return err
	}
	return c.JSON(record)
}

func (h *Handler) Destroy(c *fiber.Ctx) error {
	record, err := h.svc.Destroy(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(record)
}
