package database

import (
	"database/sql"
	"time"

	"github.com/seferogluemre/LibraryManagement-sub001/app/models"
)

// TransferStudent moves a student to a new classroom and appends the
// audit row in the same transaction, so the class change and its
// history entry are never observed apart.
func TransferStudent(db *sql.DB, studentID, newClassID string, notes *string) (*models.TransferHistory, error) {
	tx, err := db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var oldClassID string
	if err := tx.QueryRow(`SELECT class_id FROM students WHERE id = $1 FOR UPDATE`, studentID).Scan(&oldClassID); err != nil {
		return nil, err
	}

	if _, err := tx.Exec(`UPDATE students SET class_id = $1, updated_at = NOW() WHERE id = $2`, newClassID, studentID); err != nil {
		return nil, err
	}

	transfer := &models.TransferHistory{
		StudentID:    studentID,
		OldClassID:   oldClassID,
		NewClassID:   newClassID,
		Notes:        notes,
		TransferDate: time.Now(),
	}
	err = tx.QueryRow(
		`INSERT INTO transfer_histories (student_id, old_class_id, new_class_id, notes, transfer_date)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		transfer.StudentID, transfer.OldClassID, transfer.NewClassID, transfer.Notes, transfer.TransferDate,
	).Scan(&transfer.ID, &transfer.CreatedAt)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return transfer, nil
}

// GetStudentTransfers returns the transfer audit log for one student,
// newest first.
func GetStudentTransfers(db *sql.DB, studentID string) ([]*models.TransferHistory, error) {
	query := `SELECT id, student_id, old_class_id, new_class_id, notes, transfer_date, created_at
			  FROM transfer_histories WHERE student_id = $1 ORDER BY transfer_date DESC`
	rows, err := db.Query(query, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var transfers []*models.TransferHistory
	for rows.Next() {
		t := &models.TransferHistory{}
		if err := rows.Scan(&t.ID, &t.StudentID, &t.OldClassID, &t.NewClassID, &t.Notes, &t.TransferDate, &t.CreatedAt); err != nil {
			return nil, err
		}
		transfers = append(transfers, t)
	}
	return transfers, rows.Err()
}

// GetClassroomStudentCounts returns student counts keyed by classroom id.
func GetClassroomStudentCounts(db *sql.DB) (map[string]int, error) {
	rows, err := db.Query(`SELECT class_id, COUNT(*) FROM students GROUP BY class_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var classID string
		var n int
		if err := rows.Scan(&classID, &n); err != nil {
			return nil, err
		}
		counts[classID] = n
	}
	return counts, rows.Err()
}

// StudentExists reports whether the id belongs to a student row.
func StudentExists(db *sql.DB, studentID string) (bool, error) {
	var exists bool
	err := db.QueryRow(`SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`, studentID).Scan(&exists)
	return exists, err
}
