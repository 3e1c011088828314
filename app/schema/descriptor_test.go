package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seferogluemre/LibraryManagement-sub001/app/apperr"
)

func TestValidateCreate(t *testing.T) {
	valid := map[string]any{
		"name":       "Ayşe Yılmaz",
		"student_no": "STU-001",
		"class_id":   "6f1e1f9e-58da-4bc6-9e18-3f6b20a0a3a1",
	}
	require.NoError(t, Students.ValidateCreate(valid))

	tests := []struct {
		name    string
		payload map[string]any
	}{
		{"unknown field", map[string]any{"name": "x", "student_no": "1", "class_id": "6f1e1f9e-58da-4bc6-9e18-3f6b20a0a3a1", "nickname": "y"}},
		{"missing required", map[string]any{"name": "x"}},
		{"server generated field", map[string]any{"id": "6f1e1f9e-58da-4bc6-9e18-3f6b20a0a3a1", "name": "x", "student_no": "1", "class_id": "6f1e1f9e-58da-4bc6-9e18-3f6b20a0a3a1"}},
		{"wrong kind", map[string]any{"name": 42, "student_no": "1", "class_id": "6f1e1f9e-58da-4bc6-9e18-3f6b20a0a3a1"}},
		{"bad uuid", map[string]any{"name": "x", "student_no": "1", "class_id": "not-a-uuid"}},
		{"null required", map[string]any{"name": nil, "student_no": "1", "class_id": "6f1e1f9e-58da-4bc6-9e18-3f6b20a0a3a1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Students.ValidateCreate(tt.payload)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestValidateCreateIntAcceptsJSONNumbers(t *testing.T) {
	// JSON decoding hands integers over as float64
	payload := map[string]any{
		"title":            "Kürk Mantolu Madonna",
		"total_copies":     float64(3),
		"available_copies": float64(3),
		"author_id":        "6f1e1f9e-58da-4bc6-9e18-3f6b20a0a3a1",
		"added_by_id":      "0b2f5cfa-57f3-4f0d-8f0e-6f4f2c1a9b77",
	}
	require.NoError(t, Books.ValidateCreate(payload))

	payload["total_copies"] = 2.5
	err := Books.ValidateCreate(payload)
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestValidateUpdate(t *testing.T) {
	assert.NoError(t, Books.ValidateUpdate(map[string]any{}))
	assert.NoError(t, Books.ValidateUpdate(map[string]any{"title": "new title"}))
	assert.NoError(t, Books.ValidateUpdate(map[string]any{"isbn": nil}))

	assert.Error(t, Books.ValidateUpdate(map[string]any{"created_at": "2024-01-01T00:00:00Z"}))
	assert.Error(t, Books.ValidateUpdate(map[string]any{"pages": 300}))
	assert.Error(t, Books.ValidateUpdate(map[string]any{"title": nil}))
}

func TestValidateWhereUnique(t *testing.T) {
	id := "6f1e1f9e-58da-4bc6-9e18-3f6b20a0a3a1"

	assert.NoError(t, Students.ValidateWhereUnique(map[string]any{"id": id}))
	assert.NoError(t, Students.ValidateWhereUnique(map[string]any{"student_no": "STU-001"}))
	// extra fields are fine as long as a unique combination is covered
	assert.NoError(t, Students.ValidateWhereUnique(map[string]any{"id": id, "name": "x"}))

	assert.Error(t, Students.ValidateWhereUnique(map[string]any{}))
	assert.Error(t, Students.ValidateWhereUnique(map[string]any{"name": "x"}))
	assert.Error(t, Students.ValidateWhereUnique(map[string]any{"id": nil}))
}

func TestParseOrderBy(t *testing.T) {
	col, dir, err := Books.ParseOrderBy("title:desc")
	require.NoError(t, err)
	assert.Equal(t, "title", col)
	assert.Equal(t, "desc", dir)

	col, dir, err = Books.ParseOrderBy("title")
	require.NoError(t, err)
	assert.Equal(t, "title", col)
	assert.Equal(t, "asc", dir)

	_, _, err = Books.ParseOrderBy("author_id:asc") // not sortable
	assert.Error(t, err)
	_, _, err = Books.ParseOrderBy("title:sideways")
	assert.Error(t, err)
	_, _, err = Books.ParseOrderBy("nope")
	assert.Error(t, err)
}

func TestParseIncludes(t *testing.T) {
	rels, err := Books.ParseIncludes("author, publisher")
	require.NoError(t, err)
	require.Len(t, rels, 2)
	assert.Equal(t, "author", rels[0].Name)
	assert.Equal(t, "publisher", rels[1].Name)

	rels, err = Books.ParseIncludes("")
	require.NoError(t, err)
	assert.Nil(t, rels)

	_, err = Books.ParseIncludes("loans")
	assert.Error(t, err)
}

// Token columns must stay out of the session plain shape so the
// generic read path can never serve them.
func TestSessionsShapeExcludesTokens(t *testing.T) {
	for _, name := range []string{"access_token", "refresh_token", "token"} {
		_, ok := Sessions.Field(name)
		assert.False(t, ok, name)
	}
}

func TestDescriptorWiring(t *testing.T) {
	// every relation must point at a wired descriptor and a real column
	for _, d := range []*Descriptor{Users, Authors, Categories, Publishers, Books, Classrooms, Students, TransferHistories, Notifications, Sessions, BookAssignments} {
		require.NotEmpty(t, d.UniqueKeys, d.Entity)
		for _, combo := range d.UniqueKeys {
			for _, name := range combo {
				_, ok := d.Field(name)
				assert.True(t, ok, "%s unique key references unknown field %s", d.Entity, name)
			}
		}
		for _, r := range d.Relations {
			require.NotNil(t, r.Target, "%s relation %s", d.Entity, r.Name)
			owner := d
			if r.Many {
				owner = r.Target
			}
			found := false
			for _, f := range owner.Fields {
				if f.Column == r.ForeignKey {
					found = true
					break
				}
			}
			assert.True(t, found, "%s relation %s foreign key %s", d.Entity, r.Name, r.ForeignKey)
		}
	}
}
