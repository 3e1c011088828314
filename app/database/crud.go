package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/seferogluemre/LibraryManagement-sub001/app/apperr"
	"github.com/seferogluemre/LibraryManagement-sub001/app/schema"
)

// Queryer is satisfied by both *sql.DB and *sql.Tx so the generic
// helpers compose into transactions.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// ListParams narrows a page fetch: optional predicate, ordering and the
// already-resolved limit/offset.
type ListParams struct {
	Where       schema.Predicate
	OrderColumn string
	OrderDir    string
	Limit       int
	Offset      int
}

// SelectPage runs the count and the page fetch inside one repeatable-read
// transaction so total and data reflect the same snapshot.
func SelectPage(ctx context.Context, db *sql.DB, d *schema.Descriptor, p ListParams) ([]map[string]any, int, error) {
	tx, err := db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	where, args := "TRUE", []any(nil)
	if p.Where != nil {
		where, args, err = schema.WhereSQL(d, p.Where, 0)
		if err != nil {
			return nil, 0, err
		}
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s`, d.Table, where)
	if err := tx.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	order := d.Fields[0].Column + " ASC"
	if p.OrderColumn != "" {
		order = p.OrderColumn + " " + strings.ToUpper(p.OrderDir)
	}
	pageQuery := fmt.Sprintf(`SELECT %s FROM %s WHERE %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		strings.Join(d.Columns(), ", "), d.Table, where, order, len(args)+1, len(args)+2)
	rows, err := tx.QueryContext(ctx, pageQuery, append(args, p.Limit, p.Offset)...)
	if err != nil {
		return nil, 0, err
	}
	records, err := scanRecords(rows, d)
	if err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// SelectByUnique fetches the single row matched by a validated
// WhereUnique payload. sql.ErrNoRows passes through for classification.
func SelectByUnique(ctx context.Context, q Queryer, d *schema.Descriptor, where map[string]any) (map[string]any, error) {
	clauses := make([]string, 0, len(where))
	args := make([]any, 0, len(where))
	for name, v := range where {
		f, ok := d.Field(name)
		if !ok {
			return nil, apperr.Validation("%s: unknown field %q", d.Entity, name)
		}
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", f.Column, len(args)))
	}
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s`,
		strings.Join(d.Columns(), ", "), d.Table, strings.Join(clauses, " AND "))
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	records, err := scanRecords(rows, d)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, sql.ErrNoRows
	}
	return records[0], nil
}

// InsertRecord inserts a validated create payload and returns the full
// row including generated columns.
func InsertRecord(ctx context.Context, q Queryer, d *schema.Descriptor, payload map[string]any) (map[string]any, error) {
	cols := make([]string, 0, len(payload))
	placeholders := make([]string, 0, len(payload))
	args := make([]any, 0, len(payload))
	for i := range d.Fields {
		f := &d.Fields[i]
		v, ok := payload[f.Name]
		if !ok || v == nil {
			continue
		}
		dv, err := driverValue(d.Entity, f, v)
		if err != nil {
			return nil, err
		}
		args = append(args, dv)
		cols = append(cols, f.Column)
		placeholders = append(placeholders, fmt.Sprintf("$%d", len(args)))
	}
	var query string
	if len(cols) == 0 {
		query = fmt.Sprintf(`INSERT INTO %s DEFAULT VALUES RETURNING %s`,
			d.Table, strings.Join(d.Columns(), ", "))
	} else {
		query = fmt.Sprintf(`INSERT INTO %s (%s) VALUES (%s) RETURNING %s`,
			d.Table, strings.Join(cols, ", "), strings.Join(placeholders, ", "),
			strings.Join(d.Columns(), ", "))
	}
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	records, err := scanRecords(rows, d)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, sql.ErrNoRows
	}
	return records[0], nil
}

// UpdateRecord applies a validated partial update to one row and
// returns the updated row. Callers handle the empty-payload no-op.
func UpdateRecord(ctx context.Context, q Queryer, d *schema.Descriptor, id string, payload map[string]any) (map[string]any, error) {
	sets := make([]string, 0, len(payload)+1)
	args := make([]any, 0, len(payload)+1)
	for i := range d.Fields {
		f := &d.Fields[i]
		v, ok := payload[f.Name]
		if !ok {
			continue
		}
		if v == nil {
			sets = append(sets, f.Column+" = NULL")
			continue
		}
		dv, err := driverValue(d.Entity, f, v)
		if err != nil {
			return nil, err
		}
		args = append(args, dv)
		sets = append(sets, fmt.Sprintf("%s = $%d", f.Column, len(args)))
	}
	if _, ok := d.Field("updated_at"); ok {
		sets = append(sets, "updated_at = NOW()")
	}
	args = append(args, id)
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE id = $%d RETURNING %s`,
		d.Table, strings.Join(sets, ", "), len(args), strings.Join(d.Columns(), ", "))
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	records, err := scanRecords(rows, d)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, sql.ErrNoRows
	}
	return records[0], nil
}

// DeleteRecord hard-deletes one row and returns it. sql.ErrNoRows when
// the id does not exist; foreign-key violations surface as pq errors
// for the caller to classify into Conflict.
func DeleteRecord(ctx context.Context, q Queryer, d *schema.Descriptor, id string) (map[string]any, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1 RETURNING %s`,
		d.Table, strings.Join(d.Columns(), ", "))
	rows, err := q.QueryContext(ctx, query, id)
	if err != nil {
		return nil, err
	}
	records, err := scanRecords(rows, d)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, sql.ErrNoRows
	}
	return records[0], nil
}

// LoadRelations expands the requested relations onto rec in place. One
// query per relation, the way the admin dashboard composes includes.
func LoadRelations(ctx context.Context, q Queryer, d *schema.Descriptor, rec map[string]any, rels []*schema.Relation) error {
	for _, r := range rels {
		if r.Many {
			fkField, err := fieldForColumn(r.Target, r.ForeignKey)
			if err != nil {
				return err
			}
			query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY created_at ASC`,
				strings.Join(r.Target.Columns(), ", "), r.Target.Table, fkField.Column)
			rows, err := q.QueryContext(ctx, query, rec["id"])
			if err != nil {
				return err
			}
			children, err := scanRecords(rows, r.Target)
			if err != nil {
				return err
			}
			rec[r.Name] = children
			continue
		}
		fkField, err := fieldForColumn(d, r.ForeignKey)
		if err != nil {
			return err
		}
		fk, ok := rec[fkField.Name]
		if !ok || fk == nil {
			continue // optional relation not connected
		}
		parent, err := SelectByUnique(ctx, q, r.Target, map[string]any{"id": fk})
		if err != nil {
			if err == sql.ErrNoRows {
				continue
			}
			return err
		}
		rec[r.Name] = parent
	}
	return nil
}

func fieldForColumn(d *schema.Descriptor, column string) (*schema.Field, error) {
	for i := range d.Fields {
		if d.Fields[i].Column == column {
			return &d.Fields[i], nil
		}
	}
	return nil, fmt.Errorf("%s: no field for column %q", d.Entity, column)
}

func scanRecords(rows *sql.Rows, d *schema.Descriptor) ([]map[string]any, error) {
	defer rows.Close()
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	nameFor := make(map[string]string, len(d.Fields))
	for _, f := range d.Fields {
		nameFor[f.Column] = f.Name
	}
	var records []map[string]any
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		rec := make(map[string]any, len(cols))
		for i, col := range cols {
			name, ok := nameFor[col]
			if !ok {
				continue
			}
			if vals[i] == nil {
				continue
			}
			rec[name] = vals[i]
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// driverValue converts a validated payload value into something the
// driver accepts (jsonb as bytes, timestamps as time.Time).
func driverValue(entity string, f *schema.Field, v any) (any, error) {
	switch f.Kind {
	case schema.JSON:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, apperr.Validation("%s: field %q is not serializable", entity, f.Name)
		}
		return raw, nil
	case schema.Time:
		if s, ok := v.(string); ok {
			t, err := time.Parse(time.RFC3339, s)
			if err != nil {
				t, err = time.Parse("2006-01-02", s)
			}
			if err != nil {
				return nil, apperr.Validation("%s: field %q is not a valid timestamp", entity, f.Name)
			}
			return t, nil
		}
	}
	return v, nil
}
