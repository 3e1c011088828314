package schema

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/seferogluemre/LibraryManagement-sub001/app/apperr"
)

// ConvertData projects a raw persisted record onto the descriptor's
// shape: fields the descriptor does not declare are dropped, the rest
// are coerced to their declared kind, and declared relations present in
// the record are converted recursively. The input map is never mutated;
// a fresh map comes back. Converting an already converted record is a
// no-op.
//
// A required field missing after cleaning is a shape mismatch and
// yields a validation error.
func ConvertData(raw map[string]any, d *Descriptor) (map[string]any, error) {
	out := make(map[string]any, len(d.Fields))
	for i := range d.Fields {
		f := &d.Fields[i]
		v, ok := raw[f.Name]
		if !ok || v == nil {
			if f.Required {
				return nil, apperr.Validation("%s: record is missing field %q", d.Entity, f.Name)
			}
			continue
		}
		converted, err := coerce(d.Entity, f, v)
		if err != nil {
			return nil, err
		}
		out[f.Name] = converted
	}
	for i := range d.Relations {
		r := &d.Relations[i]
		v, ok := raw[r.Name]
		if !ok || v == nil {
			continue
		}
		converted, err := convertRelation(v, r)
		if err != nil {
			return nil, err
		}
		out[r.Name] = converted
	}
	return out, nil
}

func convertRelation(v any, r *Relation) (any, error) {
	if r.Many {
		var items []any
		switch list := v.(type) {
		case []map[string]any:
			for _, item := range list {
				items = append(items, item)
			}
		case []any:
			items = list
		default:
			return nil, apperr.Validation("%s: relation %q must be a list", r.Target.Entity, r.Name)
		}
		out := make([]map[string]any, 0, len(items))
		for _, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				return nil, apperr.Validation("%s: relation %q items must be objects", r.Target.Entity, r.Name)
			}
			converted, err := ConvertData(m, r.Target)
			if err != nil {
				return nil, err
			}
			out = append(out, converted)
		}
		return out, nil
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, apperr.Validation("%s: relation %q must be an object", r.Target.Entity, r.Name)
	}
	return ConvertData(m, r.Target)
}

func coerce(entity string, f *Field, v any) (any, error) {
	switch f.Kind {
	case String, Enum:
		switch s := v.(type) {
		case string:
			return s, nil
		case []byte:
			return string(s), nil
		}
	case Int:
		switch n := v.(type) {
		case int:
			return n, nil
		case int32:
			return int(n), nil
		case int64:
			return int(n), nil
		case float64:
			if n == float64(int64(n)) {
				return int(n), nil
			}
		case []byte:
			if parsed, err := strconv.Atoi(string(n)); err == nil {
				return parsed, nil
			}
		case string:
			if parsed, err := strconv.Atoi(n); err == nil {
				return parsed, nil
			}
		}
	case Float, Decimal:
		// lib/pq hands numeric/decimal columns back as []byte; the
		// float64 conversion drops precision beyond IEEE 754 doubles.
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int64:
			return float64(n), nil
		case []byte:
			if parsed, err := strconv.ParseFloat(string(n), 64); err == nil {
				return parsed, nil
			}
		case string:
			if parsed, err := strconv.ParseFloat(n, 64); err == nil {
				return parsed, nil
			}
		}
	case Bool:
		switch b := v.(type) {
		case bool:
			return b, nil
		case string:
			if parsed, err := strconv.ParseBool(b); err == nil {
				return parsed, nil
			}
		}
	case Time:
		switch t := v.(type) {
		case time.Time:
			return t, nil
		case string:
			if parsed, err := parseTime(t); err == nil {
				return parsed, nil
			}
		case []byte:
			if parsed, err := parseTime(string(t)); err == nil {
				return parsed, nil
			}
		}
	case UUID:
		switch s := v.(type) {
		case string:
			if _, err := uuid.Parse(s); err == nil {
				return s, nil
			}
		case []byte:
			if parsed, err := uuid.Parse(string(s)); err == nil {
				return parsed.String(), nil
			}
		case uuid.UUID:
			return s.String(), nil
		}
	case JSON:
		switch j := v.(type) {
		case map[string]any, []any:
			return j, nil
		case []byte:
			var decoded any
			if err := json.Unmarshal(j, &decoded); err == nil {
				return decoded, nil
			}
		case string:
			var decoded any
			if err := json.Unmarshal([]byte(j), &decoded); err == nil {
				return decoded, nil
			}
		}
	}
	return nil, apperr.Validation("%s: cannot convert field %q from %T", entity, f.Name, v)
}
