package books

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/seferogluemre/LibraryManagement-sub001/app/apperr"
	"github.com/seferogluemre/LibraryManagement-sub001/app/config"
	"github.com/seferogluemre/LibraryManagement-sub001/app/database"
	"github.com/seferogluemre/LibraryManagement-sub001/app/services"
)

// defaultLoanDays is applied when an assign request names no due date.
const defaultLoanDays = 14

type Handler struct {
	svc *services.CRUDService
}

// AssignAPI hands a copy of the book to a student. The available count
// drops by one; a book with no free copies answers 409.
func (h *Handler) AssignAPI(c *fiber.Ctx) error {
	type AssignRequest struct {
		StudentID string     `json:"student_id"`
		DueDate   *time.Time `json:"due_date,omitempty"`
	}

	bookID := c.Params("id")
	if _, err := uuid.Parse(bookID); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": "Invalid book id"})
	}

	var req AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if _, err := uuid.Parse(req.StudentID); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": "Invalid student id"})
	}

	dueDate := time.Now().AddDate(0, 0, defaultLoanDays)
	if req.DueDate != nil {
		dueDate = *req.DueDate
	}

	assignedBy := c.Locals("user_id").(string)
	assignment, err := database.AssignBook(config.GetDB(), bookID, req.StudentID, assignedBy, dueDate)
	if err != nil {
		return apperr.Classify("book", err)
	}
	return c.Status(201).JSON(assignment)
}

// ReturnAPI closes the student's open assignment and restores the copy.
func (h *Handler) ReturnAPI(c *fiber.Ctx) error {
	type ReturnRequest struct {
		StudentID string `json:"student_id"`
	}

	bookID := c.Params("id")
	if _, err := uuid.Parse(bookID); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": "Invalid book id"})
	}

	var req ReturnRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid request"})
	}
	if _, err := uuid.Parse(req.StudentID); err != nil {
		return c.Status(422).JSON(fiber.Map{"error": "Invalid student id"})
	}

	assignment, err := database.ReturnBook(config.GetDB(), bookID, req.StudentID)
	if err != nil {
		return apperr.Classify("book assignment", err)
	}
	return c.JSON(assignment)
}
