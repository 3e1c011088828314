package database

import (
	"database/sql"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A transfer must flip the student's class and append exactly one
// audit row inside the same transaction.
func TestTransferStudent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	studentID := uuid.NewString()
	oldClassID := uuid.NewString()
	newClassID := uuid.NewString()
	transferID := uuid.NewString()
	notes := "moved after first term"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT class_id FROM students WHERE id = $1 FOR UPDATE`)).
		WithArgs(studentID).
		WillReturnRows(sqlmock.NewRows([]string{"class_id"}).AddRow(oldClassID))
	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE students SET class_id = $1, updated_at = NOW() WHERE id = $2`)).
		WithArgs(newClassID, studentID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		`INSERT INTO transfer_histories (student_id, old_class_id, new_class_id, notes, transfer_date) VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`)).
		WithArgs(studentID, oldClassID, newClassID, notes, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(transferID, time.Now()))
	mock.ExpectCommit()

	transfer, err := TransferStudent(db, studentID, newClassID, &notes)
	require.NoError(t, err)
	assert.Equal(t, transferID, transfer.ID)
	assert.Equal(t, studentID, transfer.StudentID)
	assert.Equal(t, oldClassID, transfer.OldClassID)
	assert.Equal(t, newClassID, transfer.NewClassID)
	require.NotNil(t, transfer.Notes)
	assert.Equal(t, notes, *transfer.Notes)
	require.NoError(t, mock.ExpectationsWereMet())
}

// An unknown student rolls the transaction back before anything is
// written.
func TestTransferStudentMissingStudent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	studentID := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT class_id FROM students WHERE id = $1 FOR UPDATE`)).
		WithArgs(studentID).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	_, err = TransferStudent(db, studentID, uuid.NewString(), nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	require.NoError(t, mock.ExpectationsWereMet())
}
