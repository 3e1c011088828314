package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/seferogluemre/LibraryManagement-sub001/app/apperr"
)

// Kind enumerates the primitive types a persisted column can carry.
type Kind int

const (
	String Kind = iota
	Int
	Float
	Decimal // numeric/decimal columns; converted to float64 on the way out
	Bool
	Time
	UUID
	JSON
	Enum
)

// Field describes one scalar column of an entity.
type Field struct {
	Name      string // json name
	Column    string // database column
	Kind      Kind
	Required  bool // must be present in a create payload
	Generated bool // server-generated, rejected in create/update payloads
	Sortable  bool
	Values    []string // allowed values when Kind == Enum
}

// Relation describes a related-entity field. For Many relations the
// foreign key lives on the target table and points back at this entity;
// otherwise this entity's row holds the foreign key.
type Relation struct {
	Name       string
	Target     *Descriptor
	ForeignKey string
	Many       bool
}

// Descriptor is the declarative shape of one entity: its columns,
// relations and unique-key combinations. Descriptors are pure data and
// perform no side effects.
type Descriptor struct {
	Entity     string
	Table      string
	Fields     []Field
	Relations  []Relation
	UniqueKeys [][]string
}

func (d *Descriptor) Field(name string) (*Field, bool) {
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			return &d.Fields[i], true
		}
	}
	return nil, false
}

func (d *Descriptor) Relation(name string) (*Relation, bool) {
	for i := range d.Relations {
		if d.Relations[i].Name == name {
			return &d.Relations[i], true
		}
	}
	return nil, false
}

// Columns returns the database columns in declaration order.
func (d *Descriptor) Columns() []string {
	cols := make([]string, len(d.Fields))
	for i, f := range d.Fields {
		cols[i] = f.Column
	}
	return cols
}

// ValidateCreate checks a creation payload: unknown fields rejected,
// server-generated fields rejected, required fields present, every
// value matching its declared kind.
func (d *Descriptor) ValidateCreate(payload map[string]any) error {
	for name, v := range payload {
		f, ok := d.Field(name)
		if !ok {
			return apperr.Validation("%s: unknown field %q", d.Entity, name)
		}
		if f.Generated {
			return apperr.Validation("%s: field %q is server-generated", d.Entity, name)
		}
		if v == nil {
			if f.Required {
				return apperr.Validation("%s: field %q may not be null", d.Entity, name)
			}
			continue
		}
		if err := checkKind(d.Entity, f, v); err != nil {
			return err
		}
	}
	for i := range d.Fields {
		f := &d.Fields[i]
		if !f.Required || f.Generated {
			continue
		}
		if v, ok := payload[f.Name]; !ok || v == nil {
			return apperr.Validation("%s: missing required field %q", d.Entity, f.Name)
		}
	}
	return nil
}

// ValidateUpdate checks a partial-update payload: every field optional,
// unknown and generated fields rejected. An empty payload is valid and
// means no-op.
func (d *Descriptor) ValidateUpdate(payload map[string]any) error {
	for name, v := range payload {
		f, ok := d.Field(name)
		if !ok {
			return apperr.Validation("%s: unknown field %q", d.Entity, name)
		}
		if f.Generated {
			return apperr.Validation("%s: field %q is server-generated", d.Entity, name)
		}
		if v == nil {
			if f.Required {
				return apperr.Validation("%s: field %q may not be null", d.Entity, name)
			}
			continue
		}
		if err := checkKind(d.Entity, f, v); err != nil {
			return err
		}
	}
	return nil
}

// ValidateWhereUnique ensures the payload covers at least one declared
// unique-key combination, so the lookup matches at most one row.
func (d *Descriptor) ValidateWhereUnique(where map[string]any) error {
	if len(where) == 0 {
		return apperr.Validation("%s: empty unique lookup", d.Entity)
	}
	for name, v := range where {
		f, ok := d.Field(name)
		if !ok {
			return apperr.Validation("%s: unknown field %q", d.Entity, name)
		}
		if v == nil {
			return apperr.Validation("%s: unique field %q may not be null", d.Entity, name)
		}
		if err := checkKind(d.Entity, f, v); err != nil {
			return err
		}
	}
	for _, combo := range d.UniqueKeys {
		covered := true
		for _, name := range combo {
			if _, ok := where[name]; !ok {
				covered = false
				break
			}
		}
		if covered {
			return nil
		}
	}
	return apperr.Validation("%s: lookup does not match any unique key", d.Entity)
}

// ParseOrderBy parses "field" or "field:desc" into a column and
// direction, allowing only sortable fields.
func (d *Descriptor) ParseOrderBy(s string) (string, string, error) {
	if s == "" {
		return "", "", nil
	}
	name, dir := s, "asc"
	if i := strings.IndexByte(s, ':'); i >= 0 {
		name, dir = s[:i], strings.ToLower(s[i+1:])
	}
	if dir != "asc" && dir != "desc" {
		return "", "", apperr.Validation("%s: invalid sort direction %q", d.Entity, dir)
	}
	f, ok := d.Field(name)
	if !ok || !f.Sortable {
		return "", "", apperr.Validation("%s: cannot sort by %q", d.Entity, name)
	}
	return f.Column, dir, nil
}

// ParseIncludes parses a comma-separated list of relation names.
func (d *Descriptor) ParseIncludes(s string) ([]*Relation, error) {
	if s == "" {
		return nil, nil
	}
	var rels []*Relation
	for _, name := range strings.Split(s, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		r, ok := d.Relation(name)
		if !ok {
			return nil, apperr.Validation("%s: unknown relation %q", d.Entity, name)
		}
		rels = append(rels, r)
	}
	return rels, nil
}

func checkKind(entity string, f *Field, v any) error {
	switch f.Kind {
	case String:
		if _, ok := v.(string); !ok {
			return kindErr(entity, f, "string", v)
		}
	case Int:
		switch n := v.(type) {
		case int, int32, int64:
		case float64:
			if n != float64(int64(n)) {
				return kindErr(entity, f, "integer", v)
			}
		default:
			return kindErr(entity, f, "integer", v)
		}
	case Float, Decimal:
		switch v.(type) {
		case float64, float32, int, int64:
		default:
			return kindErr(entity, f, "number", v)
		}
	case Bool:
		if _, ok := v.(bool); !ok {
			return kindErr(entity, f, "boolean", v)
		}
	case Time:
		switch t := v.(type) {
		case time.Time:
		case string:
			if _, err := parseTime(t); err != nil {
				return kindErr(entity, f, "timestamp", v)
			}
		default:
			return kindErr(entity, f, "timestamp", v)
		}
	case UUID:
		s, ok := v.(string)
		if !ok {
			return kindErr(entity, f, "uuid", v)
		}
		if _, err := uuid.Parse(s); err != nil {
			return kindErr(entity, f, "uuid", v)
		}
	case JSON:
		switch v.(type) {
		case map[string]any, []any:
		default:
			return kindErr(entity, f, "json object", v)
		}
	case Enum:
		s, ok := v.(string)
		if !ok {
			return kindErr(entity, f, "enum value", v)
		}
		for _, allowed := range f.Values {
			if s == allowed {
				return nil
			}
		}
		return apperr.Validation("%s: field %q must be one of %s", entity, f.Name, strings.Join(f.Values, ", "))
	}
	return nil
}

func kindErr(entity string, f *Field, want string, got any) error {
	return apperr.Validation("%s: field %q must be a %s, got %T", entity, f.Name, want, got)
}

func parseTime(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}
