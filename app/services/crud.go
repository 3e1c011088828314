package services

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/seferogluemre/LibraryManagement-sub001/app/apperr"
	"github.com/seferogluemre/LibraryManagement-sub001/app/database"
	"github.com/seferogluemre/LibraryManagement-sub001/app/schema"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100
)

// ListQuery is the raw list-endpoint input before defaults and
// validation are applied.
type ListQuery struct {
	Page    int
	Limit   int
	OrderBy string         // "field" or "field:desc"
	Include string         // comma-separated relation names
	Where   map[string]any // decoded filter object, may be nil
}

// ListResult is the envelope every list endpoint returns.
type ListResult struct {
	Data  []map[string]any `json:"data"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}

// Normalize applies the pagination defaults and caps.
func (q *ListQuery) Normalize() {
	if q.Page < 1 {
		q.Page = DefaultPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultLimit
	}
	if q.Limit > MaxLimit {
		q.Limit = MaxLimit
	}
}

// CRUDService implements the five standard operations for one entity,
// parameterized by its descriptor. Ten entities, one implementation.
type CRUDService struct {
	db   *sql.DB
	desc *schema.Descriptor
}

func NewCRUDService(db *sql.DB, desc *schema.Descriptor) *CRUDService {
	return &CRUDService{db: db, desc: desc}
}

func (s *CRUDService) Descriptor() *schema.Descriptor {
	return s.desc
}

// Index returns one page plus the total row count taken from the same
// transaction snapshot.
func (s *CRUDService) Index(ctx context.Context, q ListQuery) (*ListResult, error) {
	q.Normalize()

	orderCol, orderDir, err := s.desc.ParseOrderBy(q.OrderBy)
	if err != nil {
		return nil, err
	}
	includes, err := s.desc.ParseIncludes(q.Include)
	if err != nil {
		return nil, err
	}
	var where schema.Predicate
	if len(q.Where) > 0 {
		where, err = schema.ParsePredicate(s.desc, q.Where)
		if err != nil {
			return nil, err
		}
	}

	records, total, err := database.SelectPage(ctx, s.db, s.desc, database.ListParams{
		Where:       where,
		OrderColumn: orderCol,
		OrderDir:    orderDir,
		Limit:       q.Limit,
		Offset:      (q.Page - 1) * q.Limit,
	})
	if err != nil {
		return nil, apperr.Classify(s.desc.Entity, err)
	}

	data := make([]map[string]any, 0, len(records))
	for _, rec := range records {
		if len(includes) > 0 {
			if err := database.LoadRelations(ctx, s.db, s.desc, rec, includes); err != nil {
				return nil, apperr.Classify(s.desc.Entity, err)
			}
		}
		converted, err := schema.ConvertData(rec, s.desc)
		if err != nil {
			return nil, err
		}
		data = append(data, converted)
	}

	return &ListResult{Data: data, Total: total, Page: q.Page, Limit: q.Limit}, nil
}

// Show fetches a single record by a unique lookup.
func (s *CRUDService) Show(ctx context.Context, where map[string]any, include string) (map[string]any, error) {
	if err := s.desc.ValidateWhereUnique(where); err != nil {
		return nil, err
	}
	includes, err := s.desc.ParseIncludes(include)
	if err != nil {
		return nil, err
	}
	rec, err := database.SelectByUnique(ctx, s.db, s.desc, where)
	if err != nil {
		return nil, apperr.Classify(s.desc.Entity, err)
	}
	if len(includes) > 0 {
		if err := database.LoadRelations(ctx, s.db, s.desc, rec, includes); err != nil {
			return nil, apperr.Classify(s.desc.Entity, err)
		}
	}
	return schema.ConvertData(rec, s.desc)
}

// Store validates and persists a creation payload, returning the full
// record including generated fields.
func (s *CRUDService) Store(ctx context.Context, payload map[string]any) (map[string]any, error) {
	if err := s.desc.ValidateCreate(payload); err != nil {
		return nil, err
	}
	rec, err := database.InsertRecord(ctx, s.db, s.desc, payload)
	if err != nil {
		return nil, apperr.Classify(s.desc.Entity, err)
	}
	return schema.ConvertData(rec, s.desc)
}

// Update writes only the fields present in the payload. An empty
// payload is a no-op returning the current record unchanged.
func (s *CRUDService) Update(ctx context.Context, id string, payload map[string]any) (map[string]any, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.Validation("%s: invalid id", s.desc.Entity)
	}
	if err := s.desc.ValidateUpdate(payload); err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return s.Show(ctx, map[string]any{"id": id}, "")
	}
	rec, err := database.UpdateRecord(ctx, s.db, s.desc, id, payload)
	if err != nil {
		return nil, apperr.Classify(s.desc.Entity, err)
	}
	return schema.ConvertData(rec, s.desc)
}

// Destroy hard-deletes a record. Missing id is NotFound; rows still
// referenced by foreign keys come back as Conflict.
func (s *CRUDService) Destroy(ctx context.Context, id string) (map[string]any, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, apperr.Validation("%s: invalid id", s.desc.Entity)
	}
	rec, err := database.DeleteRecord(ctx, s.db, s.desc, id)
	if err != nil {
		return nil, apperr.Classify(s.desc.Entity, err)
	}
	return schema.ConvertData(rec, s.desc)
}
