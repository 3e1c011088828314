package apperr

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantKind Kind
		wantMsg  string
	}{
		{"no rows", sql.ErrNoRows, KindNotFound, "book not found"},
		{"wrapped no rows", fmt.Errorf("fetch: %w", sql.ErrNoRows), KindNotFound, "book not found"},
		{"unique violation", &pq.Error{Code: "23505"}, KindConflict, "book already exists"},
		{"foreign key violation", &pq.Error{Code: "23503"}, KindConflict, "book is referenced by other records"},
		{"not null violation", &pq.Error{Code: "23502"}, KindValidation, "invalid book data"},
		{"check violation", &pq.Error{Code: "23514"}, KindValidation, "invalid book data"},
		{"data exception class", &pq.Error{Code: "22P02"}, KindValidation, "invalid book data"},
		{"other pq error", &pq.Error{Code: "40001"}, KindUnknown, "internal error"},
		{"plain error", errors.New("boom"), KindUnknown, "internal error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("book", tt.err)
			require.Error(t, got)
			assert.Equal(t, tt.wantKind, KindOf(got))
			assert.Equal(t, tt.wantMsg, got.Error())
		})
	}
}

func TestClassifyNil(t *testing.T) {
	assert.NoError(t, Classify("book", nil))
}

func TestClassifyPassesThroughClassified(t *testing.T) {
	orig := Conflict("book has no available copies")
	got := Classify("book", orig)
	assert.Same(t, orig, got)
}

func TestClassifyPreservesCause(t *testing.T) {
	cause := &pq.Error{Code: "23505", Constraint: "books_isbn_key"}
	got := Classify("book", cause)
	var pqErr *pq.Error
	require.True(t, errors.As(got, &pqErr))
	assert.Equal(t, "books_isbn_key", pqErr.Constraint)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, 404, StatusCode(NotFound("x")))
	assert.Equal(t, 422, StatusCode(Validation("x")))
	assert.Equal(t, 409, StatusCode(Conflict("x")))
	assert.Equal(t, 401, StatusCode(Unauthorized("x")))
	assert.Equal(t, 500, StatusCode(errors.New("boom")))
	assert.Equal(t, 500, StatusCode(Unknown(errors.New("boom"))))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindNotFound, KindOf(fmt.Errorf("wrap: %w", NotFound("gone"))))
	assert.Equal(t, KindUnknown, KindOf(errors.New("boom")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}
