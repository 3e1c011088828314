package database

import (
	"database/sql"
	"time"

	"github.com/seferogluemre/LibraryManagement-sub001/app/apperr"
	"github.com/seferogluemre/LibraryManagement-sub001/app/models"
)

// AssignBook hands one copy of a book to a student: decrements the
// available count and opens an assignment row in one transaction. No
// copies available is a Conflict, not a silent negative count.
func AssignBook(db *sql.DB, bookID, studentID, assignedByID string, dueDate time.Time) (*models.BookAssignment, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var available int
	if err := tx.QueryRow(`SELECT available_copies FROM books WHERE id = $1 FOR UPDATE`, bookID).Scan(&available); err != nil {
		return nil, err
	}
	if available <= 0 {
		return nil, apperr.Conflict("book has no available copies")
	}

	if _, err := tx.Exec(`UPDATE books SET available_copies = available_copies - 1, updated_at = NOW() WHERE id = $1`, bookID); err != nil {
		return nil, err
	}

	assignment := &models.BookAssignment{
		BookID:       bookID,
		StudentID:    studentID,
		AssignedByID: assignedByID,
		DueDate:      dueDate,
	}
	err = tx.QueryRow(
		`INSERT INTO book_assignments (book_id, student_id, assigned_by_id, due_date)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		assignment.BookID, assignment.StudentID, assignment.AssignedByID, assignment.DueDate,
	).Scan(&assignment.ID, &assignment.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return assignment, nil
}

// ReturnBook closes the student's open assignment for the book and
// gives the copy back.
func ReturnBook(db *sql.DB, bookID, studentID string) (*models.BookAssignment, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	assignment := &models.BookAssignment{}
	var returnedAt time.Time
	err = tx.QueryRow(
		`UPDATE book_assignments SET returned_at = NOW()
		 WHERE id = (
			SELECT id FROM book_assignments
			WHERE book_id = $1 AND student_id = $2 AND returned_at IS NULL
			ORDER BY created_at ASC LIMIT 1
		 )
		 RETURNING id, book_id, student_id, assigned_by_id, due_date, returned_at, created_at`,
		bookID, studentID,
	).Scan(&assignment.ID, &assignment.BookID, &assignment.StudentID, &assignment.AssignedByID,
		&assignment.DueDate, &returnedAt, &assignment.CreatedAt)
	if err != nil {
		return nil, err
	}
	assignment.ReturnedAt = &returnedAt

	if _, err := tx.Exec(`UPDATE books SET available_copies = available_copies + 1, updated_at = NOW() WHERE id = $1`, bookID); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return assignment, nil
}

// OverdueAssignment carries what the overdue job needs to notify the
// staff member who handed the book out.
type OverdueAssignment struct {
	AssignmentID string
	BookID       string
	BookTitle    string
	StudentID    string
	StudentName  string
	AssignedByID string
	DueDate      time.Time
}

// GetOverdueAssignments lists unreturned assignments past their due
// date as of now.
func GetOverdueAssignments(db *sql.DB, now time.Time) ([]OverdueAssignment, error) {
	query := `
		SELECT ba.id, ba.book_id, b.title, ba.student_id, s.name, ba.assigned_by_id, ba.due_date
		FROM book_assignments ba
		JOIN books b ON b.id = ba.book_id
		JOIN students s ON s.id = ba.student_id
		WHERE ba.returned_at IS NULL AND ba.due_date < $1
		ORDER BY ba.due_date ASC
	`
	rows, err := db.Query(query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var overdue []OverdueAssignment
	for rows.Next() {
		var oa OverdueAssignment
		if err := rows.Scan(&oa.AssignmentID, &oa.BookID, &oa.BookTitle, &oa.StudentID, &oa.StudentName, &oa.AssignedByID, &oa.DueDate); err != nil {
			return nil, err
		}
		overdue = append(overdue, oa)
	}
	return overdue, rows.Err()
}
