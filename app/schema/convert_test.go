package schema

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/qawatake/fixify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/seferogluemre/LibraryManagement-sub001/app/apperr"
	"github.com/seferogluemre/LibraryManagement-sub001/app/models"
)

func TestConvertDataDropsUndeclaredFields(t *testing.T) {
	raw := map[string]any{
		"id":         uuid.NewString(),
		"name":       "Sabahattin Ali",
		"created_at": "2024-03-01T10:00:00Z",
		"updated_at": "2024-03-01T10:00:00Z",
		"row_num":    7,
		"internal":   true,
	}
	out, err := ConvertData(raw, Authors)
	require.NoError(t, err)
	assert.NotContains(t, out, "row_num")
	assert.NotContains(t, out, "internal")
	assert.Equal(t, "Sabahattin Ali", out["name"])
}

func TestConvertDataCoercions(t *testing.T) {
	id := uuid.New()
	raw := map[string]any{
		"id":               id,                              // uuid.UUID from the driver
		"title":            []byte("Tutunamayanlar"),        // text column as []byte
		"total_copies":     []byte("5"),                     // numeric column as []byte
		"available_copies": float64(2),                      // JSON number
		"published_year":   int64(1972),                     // bigint scan
		"author_id":        []byte(uuid.NewString()),        // uuid column as []byte
		"added_by_id":      uuid.NewString(),
		"created_at":       "2024-03-01T10:00:00Z",
		"updated_at":       time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC),
	}
	out, err := ConvertData(raw, Books)
	require.NoError(t, err)

	assert.Equal(t, id.String(), out["id"])
	assert.Equal(t, "Tutunamayanlar", out["title"])
	assert.Equal(t, 5, out["total_copies"])
	assert.Equal(t, 2, out["available_copies"])
	assert.Equal(t, 1972, out["published_year"])
	assert.IsType(t, time.Time{}, out["created_at"])
	assert.IsType(t, time.Time{}, out["updated_at"])
	assert.NotContains(t, out, "isbn") // absent optional stays absent
}

func TestConvertDataNotificationMetadata(t *testing.T) {
	raw := map[string]any{
		"id":         uuid.NewString(),
		"type":       []byte("OVERDUE_BOOK"),
		"user_id":    uuid.NewString(),
		"message":    "book overdue",
		"is_read":    false,
		"metadata":   []byte(`{"assignment_id":"a1","days":3}`),
		"created_at": "2024-03-01T10:00:00Z",
	}
	out, err := ConvertData(raw, Notifications)
	require.NoError(t, err)
	assert.Equal(t, "OVERDUE_BOOK", out["type"])
	meta, ok := out["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "a1", meta["assignment_id"])
}

func TestConvertDataMissingRequired(t *testing.T) {
	raw := map[string]any{
		"id":         uuid.NewString(),
		"created_at": "2024-03-01T10:00:00Z",
		"updated_at": "2024-03-01T10:00:00Z",
	}
	_, err := ConvertData(raw, Authors)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Contains(t, err.Error(), `"name"`)
}

func TestConvertDataUncoercibleValue(t *testing.T) {
	raw := map[string]any{
		"id":         uuid.NewString(),
		"name":       []any{"not", "a", "string"},
		"created_at": "2024-03-01T10:00:00Z",
		"updated_at": "2024-03-01T10:00:00Z",
	}
	_, err := ConvertData(raw, Authors)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestConvertDataDoesNotMutateInput(t *testing.T) {
	raw := map[string]any{
		"id":         uuid.NewString(),
		"name":       "Oğuz Atay",
		"created_at": "2024-03-01T10:00:00Z",
		"updated_at": "2024-03-01T10:00:00Z",
		"extra":      "kept in the input",
	}
	_, err := ConvertData(raw, Authors)
	require.NoError(t, err)
	assert.Equal(t, "kept in the input", raw["extra"])
	assert.Equal(t, "2024-03-01T10:00:00Z", raw["created_at"])
}

// The fixture graph mirrors what the API actually serves: an author
// loaded with its books relation, where the driver has already stamped
// the foreign keys.
func TestConvertDataRelationGraph(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	userID := uuid.NewString()

	connect := fixify.ConnectorFunc(func(_ testing.TB, book *models.Book, author *models.Author) {
		book.AuthorID = author.ID
	})
	author := fixify.NewModel(&models.Author{
		ID: uuid.NewString(), Name: "Sabahattin Ali", CreatedAt: now, UpdatedAt: now,
	})
	bookA := fixify.NewModel(&models.Book{
		ID: uuid.NewString(), Title: "Kürk Mantolu Madonna",
		TotalCopies: 3, AvailableCopies: 1, AddedByID: userID,
		CreatedAt: now, UpdatedAt: now,
	}, connect)
	bookB := fixify.NewModel(&models.Book{
		ID: uuid.NewString(), Title: "İçimizdeki Şeytan",
		TotalCopies: 2, AvailableCopies: 2, AddedByID: userID,
		CreatedAt: now, UpdatedAt: now,
	}, connect)
	author.With(bookA, bookB)
	f := fixify.New(t, author)
	f.Iterate(func(any) error { return nil })

	av := author.Value()
	av.Books = []*models.Book{bookA.Value(), bookB.Value()}

	// the same JSON round trip the handlers perform
	encoded, err := json.Marshal(av)
	require.NoError(t, err)
	var raw map[string]any
	require.NoError(t, json.Unmarshal(encoded, &raw))
	raw["audit_token"] = "should be dropped"

	out, err := ConvertData(raw, Authors)
	require.NoError(t, err)
	assert.NotContains(t, out, "audit_token")

	books, ok := out["books"].([]map[string]any)
	require.True(t, ok)
	require.Len(t, books, 2)
	for _, b := range books {
		assert.Equal(t, av.ID, b["author_id"])
		assert.IsType(t, 0, b["total_copies"])
		assert.IsType(t, time.Time{}, b["created_at"])
	}
	assert.Equal(t, "Kürk Mantolu Madonna", books[0]["title"])
}

func TestConvertDataRelationShapeErrors(t *testing.T) {
	raw := map[string]any{
		"id":         uuid.NewString(),
		"name":       "x",
		"created_at": "2024-03-01T10:00:00Z",
		"updated_at": "2024-03-01T10:00:00Z",
		"books":      "not-a-list",
	}
	_, err := ConvertData(raw, Authors)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestConvertDataIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := map[string]any{
			"id":               uuid.NewString(),
			"title":            rapid.StringN(1, 64, -1).Draw(t, "title"),
			"total_copies":     float64(rapid.IntRange(0, 500).Draw(t, "total")),
			"available_copies": float64(rapid.IntRange(0, 500).Draw(t, "avail")),
			"author_id":        uuid.NewString(),
			"added_by_id":      uuid.NewString(),
			"created_at":       "2024-03-01T10:00:00Z",
			"updated_at":       "2024-03-01T10:00:00Z",
		}
		if rapid.Bool().Draw(t, "with_isbn") {
			raw["isbn"] = rapid.StringMatching(`97[89]-[0-9]{10}`).Draw(t, "isbn")
		}
		once, err := ConvertData(raw, Books)
		if err != nil {
			t.Fatalf("first conversion: %v", err)
		}
		twice, err := ConvertData(once, Books)
		if err != nil {
			t.Fatalf("second conversion: %v", err)
		}
		assert.Equal(t, once, twice)
	})
}
