package schema

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/seferogluemre/LibraryManagement-sub001/app/apperr"
)

func mustFilter(t *testing.T, d *Descriptor, raw string) Predicate {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	p, err := ParsePredicate(d, m)
	require.NoError(t, err)
	return p
}

func TestParsePredicate(t *testing.T) {
	p := mustFilter(t, Books, `{"title": "Tutunamayanlar"}`)
	assert.Equal(t, Leaf{Field: "title", Op: OpEq, Value: "Tutunamayanlar"}, p)

	p = mustFilter(t, Books, `{"total_copies": {"gte": 3}}`)
	assert.Equal(t, Leaf{Field: "total_copies", Op: OpGte, Value: float64(3)}, p)

	p = mustFilter(t, Books, `{"OR": [{"title": {"contains": "mantolu"}}, {"total_copies": {"lt": 2}}]}`)
	or, ok := p.(Or)
	require.True(t, ok)
	assert.Len(t, or, 2)

	p = mustFilter(t, Books, `{"NOT": {"available_copies": 0}}`)
	not, ok := p.(Not)
	require.True(t, ok)
	assert.Equal(t, Leaf{Field: "available_copies", Op: OpEq, Value: float64(0)}, not.P)

	// empty filter is a match-all
	p = mustFilter(t, Books, `{}`)
	assert.Equal(t, And(nil), p)
}

func TestParsePredicateMultiKeyIsImplicitAnd(t *testing.T) {
	p := mustFilter(t, Books, `{"title": "x", "total_copies": {"gt": 1}}`)
	and, ok := p.(And)
	require.True(t, ok)
	assert.Len(t, and, 2)
}

func TestParsePredicateRejections(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"unknown field", `{"pages": 300}`},
		{"unknown operator", `{"title": {"like": "x"}}`},
		{"contains on int", `{"total_copies": {"contains": "3"}}`},
		{"in without array", `{"title": {"in": "x"}}`},
		{"AND without array", `{"AND": {"title": "x"}}`},
		{"NOT without object", `{"NOT": [1]}`},
		{"kind mismatch", `{"total_copies": "many"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m map[string]any
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &m))
			_, err := ParsePredicate(Books, m)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestParsePredicateDepthLimit(t *testing.T) {
	raw := `{"title":"x"}`
	for i := 0; i < maxPredicateDepth+1; i++ {
		raw = `{"NOT":` + raw + `}`
	}
	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &m))
	_, err := ParsePredicate(Books, m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nesting too deep")
}

func TestEval(t *testing.T) {
	rec := map[string]any{
		"title":            "Kürk Mantolu Madonna",
		"total_copies":     int64(5),
		"available_copies": int64(0),
		"created_at":       "2024-03-01T10:00:00Z",
	}
	tests := []struct {
		name   string
		filter string
		want   bool
	}{
		{"eq hit", `{"title": "Kürk Mantolu Madonna"}`, true},
		{"eq miss", `{"title": "other"}`, false},
		{"numeric coercion", `{"total_copies": {"gte": 5}}`, true},
		{"contains case-insensitive", `{"title": {"contains": "MANTOLU"}}`, true},
		{"in", `{"total_copies": {"in": [1, 5, 9]}}`, true},
		{"time comparison", `{"created_at": {"lt": "2025-01-01T00:00:00Z"}}`, true},
		{"not", `{"NOT": {"available_copies": 0}}`, false},
		{"or short-circuit", `{"OR": [{"title": "other"}, {"total_copies": {"gt": 1}}]}`, true},
		{"and all must hold", `{"AND": [{"total_copies": {"gt": 1}}, {"available_copies": {"gt": 0}}]}`, false},
		{"empty matches all", `{}`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustFilter(t, Books, tt.filter)
			assert.Equal(t, tt.want, Eval(p, rec))
		})
	}
}

func TestEvalMissingField(t *testing.T) {
	p := mustFilter(t, Books, `{"isbn": {"ne": "978"}}`)
	assert.False(t, Eval(p, map[string]any{"title": "x"}))
}

func TestWhereSQL(t *testing.T) {
	p := mustFilter(t, Books, `{"title": {"contains": "madonna"}}`)
	clause, args, err := WhereSQL(Books, p, 0)
	require.NoError(t, err)
	assert.Equal(t, "title ILIKE $1", clause)
	assert.Equal(t, []any{"%madonna%"}, args)

	p = mustFilter(t, Books, `{"OR": [{"available_copies": 0}, {"total_copies": {"gte": 10}}]}`)
	clause, args, err = WhereSQL(Books, p, 2)
	require.NoError(t, err)
	assert.Equal(t, "(available_copies = $3 OR total_copies >= $4)", clause)
	assert.Len(t, args, 2)

	// empty filter never changes the query shape
	clause, args, err = WhereSQL(Books, And(nil), 0)
	require.NoError(t, err)
	assert.Equal(t, "TRUE", clause)
	assert.Empty(t, args)
}

// Empty boolean nodes take their identity element: a vacuous
// conjunction holds, a vacuous disjunction does not.
func TestEmptyBooleanNodes(t *testing.T) {
	rec := map[string]any{"title": "x"}
	assert.True(t, Eval(And(nil), rec))
	assert.False(t, Eval(Or(nil), rec))

	p := mustFilter(t, Books, `{"OR": []}`)
	assert.False(t, Eval(p, rec))

	clause, args, err := WhereSQL(Books, Or(nil), 0)
	require.NoError(t, err)
	assert.Equal(t, "FALSE", clause)
	assert.Empty(t, args)
}

func TestWhereSQLNotAndIn(t *testing.T) {
	p := mustFilter(t, Books, `{"NOT": {"author_id": {"in": ["6f1e1f9e-58da-4bc6-9e18-3f6b20a0a3a1"]}}}`)
	clause, args, err := WhereSQL(Books, p, 0)
	require.NoError(t, err)
	assert.Equal(t, "NOT (author_id = ANY($1))", clause)
	require.Len(t, args, 1)
}

func TestWhereSQLPlaceholdersAreSequential(t *testing.T) {
	p := mustFilter(t, Books, `{"AND": [{"title": {"ne": "a"}}, {"total_copies": {"lt": 9}}, {"available_copies": {"gt": 0}}]}`)
	clause, args, err := WhereSQL(Books, p, 0)
	require.NoError(t, err)
	require.Len(t, args, 3)
	for i := 1; i <= 3; i++ {
		assert.True(t, strings.Contains(clause, "$"+string(rune('0'+i))), clause)
	}
}
