package students

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/seferogluemre/LibraryManagement-sub001/app/apperr"
	"github.com/seferogluemre/LibraryManagement-sub001/app/config"
	"github.com/seferogluemre/LibraryManagement-sub001/app/database"
	"github.com/seferogluemre/LibraryManagement-sub001/app/services"
)

type Handler struct {
	svc *services.CRUDService
}

// GetByClassAPI lists the students of one classroom, paginated like any
// other index endpoint.
func (h *Handler) GetByClassAPI(c *fiber.Ctx) error {
	classID := c.Params("classId")
	if _, err := uuid.Parse(classID); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": "Invalid class id"})
	}

	result, err := h.svc.Index(c.Context(), services.ListQuery{
		Page:    c.QueryInt("page", 0),
		Limit:   c.QueryInt("limit", 0),
		OrderBy: c.Query("order_by"),
		Include: c.Query("include"),
		Where:   map[string]any{"class_id": classID},
	})
	if err != nil {
		return err
	}
	return c.JSON(result)
}

// GetByStudentNoAPI looks a student up by the school-issued number.
func (h *Handler) GetByStudentNoAPI(c *fiber.Ctx) error {
	record, err := h.svc.Show(c.Context(), map[string]any{"student_no": c.Params("studentNo")}, c.Query("include"))
	if err != nil {
		return err
	}
	return c.JSON(record)
}

// TransferAPI moves a student to another classroom and records the
// transfer in the audit log.
func (h *Handler) TransferAPI(c *fiber.Ctx) error {
	type TransferRequest struct {
		NewClassID string  `json:"new_class_id"`
		Notes      *string `json:"notes,omitempty"`
	}

	studentID := c.Params("id")
	if _, err := uuid.Parse(studentID); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": "Invalid student id"})
	}

	var req TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if _, err := uuid.Parse(req.NewClassID); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": "Invalid class id"})
	}

	transfer, err := database.TransferStudent(config.GetDB(), studentID, req.NewClassID, req.Notes)
	if err != nil {
		return apperr.Classify("student", err)
	}
	return c.Status(201).JSON(transfer)
}

// GetTransfersAPI returns a student's transfer history, newest first.
func (h *Handler) GetTransfersAPI(c *fiber.Ctx) error {
	studentID := c.Params("id")
	if _, err := uuid.Parse(studentID); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": "Invalid student id"})
	}

	exists, err := database.StudentExists(config.GetDB(), studentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Database error"})
	}
	if !exists {
		return c.Status(404).JSON(fiber.Map{"error": "student not found"})
	}

	transfers, err := database.GetStudentTransfers(config.GetDB(), studentID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch transfers"})
	}
	return c.JSON(fiber.Map{
		"data":  transfers,
		"count": len(transfers),
	})
}
