package schema

import (
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/seferogluemre/LibraryManagement-sub001/app/apperr"
)

// Op is a leaf comparison operator.
type Op string

const (
	OpEq       Op = "eq"
	OpNe       Op = "ne"
	OpLt       Op = "lt"
	OpLte      Op = "lte"
	OpGt       Op = "gt"
	OpGte      Op = "gte"
	OpContains Op = "contains"
	OpIn       Op = "in"
)

// Predicate is a tagged recursive filter tree. Boolean composition is
// explicit (And/Or/Not nodes) rather than relying on structural schema
// recursion, so nesting depth is bounded by the parser rather than by
// the validator.
type Predicate interface {
	isPredicate()
}

type Leaf struct {
	Field string
	Op    Op
	Value any
}

type And []Predicate

type Or []Predicate

type Not struct {
	P Predicate
}

func (Leaf) isPredicate() {}
func (And) isPredicate()  {}
func (Or) isPredicate()   {}
func (Not) isPredicate()  {}

// maxPredicateDepth guards hostile deeply-nested filter payloads.
const maxPredicateDepth = 32

// ParsePredicate builds a Predicate from a decoded JSON filter object:
//
//	{"AND": [...]}           conjunction
//	{"OR": [...]}            disjunction
//	{"NOT": {...}}           negation
//	{"title": "x"}           shorthand for {"title": {"eq": "x"}}
//	{"total_copies": {"gte": 3}}
//
// Multiple keys in one object are an implicit AND. Field names and
// operators are validated against the descriptor.
func ParsePredicate(d *Descriptor, raw map[string]any) (Predicate, error) {
	return parsePredicate(d, raw, 0)
}

func parsePredicate(d *Descriptor, raw map[string]any, depth int) (Predicate, error) {
	if depth > maxPredicateDepth {
		return nil, apperr.Validation("%s: filter nesting too deep", d.Entity)
	}
	var parts []Predicate
	for key, val := range raw {
		switch key {
		case "AND", "OR":
			list, ok := val.([]any)
			if !ok {
				return nil, apperr.Validation("%s: %s expects an array", d.Entity, key)
			}
			var children []Predicate
			for _, item := range list {
				m, ok := item.(map[string]any)
				if !ok {
					return nil, apperr.Validation("%s: %s items must be objects", d.Entity, key)
				}
				child, err := parsePredicate(d, m, depth+1)
				if err != nil {
					return nil, err
				}
				children = append(children, child)
			}
			if key == "AND" {
				parts = append(parts, And(children))
			} else {
				parts = append(parts, Or(children))
			}
		case "NOT":
			m, ok := val.(map[string]any)
			if !ok {
				return nil, apperr.Validation("%s: NOT expects an object", d.Entity)
			}
			child, err := parsePredicate(d, m, depth+1)
			if err != nil {
				return nil, err
			}
			parts = append(parts, Not{P: child})
		default:
			leaves, err := parseLeaves(d, key, val)
			if err != nil {
				return nil, err
			}
			parts = append(parts, leaves...)
		}
	}
	switch len(parts) {
	case 0:
		return And(nil), nil
	case 1:
		return parts[0], nil
	default:
		return And(parts), nil
	}
}

func parseLeaves(d *Descriptor, field string, val any) ([]Predicate, error) {
	f, ok := d.Field(field)
	if !ok {
		return nil, apperr.Validation("%s: unknown filter field %q", d.Entity, field)
	}
	ops, ok := val.(map[string]any)
	if !ok {
		// scalar shorthand for equality
		if err := checkKind(d.Entity, f, val); err != nil {
			return nil, err
		}
		return []Predicate{Leaf{Field: field, Op: OpEq, Value: val}}, nil
	}
	var leaves []Predicate
	for opName, operand := range ops {
		op := Op(opName)
		switch op {
		case OpEq, OpNe, OpLt, OpLte, OpGt, OpGte:
			if err := checkKind(d.Entity, f, operand); err != nil {
				return nil, err
			}
		case OpContains:
			if f.Kind != String {
				return nil, apperr.Validation("%s: contains requires a string field", d.Entity)
			}
			if _, ok := operand.(string); !ok {
				return nil, apperr.Validation("%s: contains expects a string", d.Entity)
			}
		case OpIn:
			list, ok := operand.([]any)
			if !ok {
				return nil, apperr.Validation("%s: in expects an array", d.Entity)
			}
			for _, item := range list {
				if err := checkKind(d.Entity, f, item); err != nil {
					return nil, err
				}
			}
		default:
			return nil, apperr.Validation("%s: unknown operator %q", d.Entity, opName)
		}
		leaves = append(leaves, Leaf{Field: field, Op: op, Value: operand})
	}
	return leaves, nil
}

// Eval interprets the predicate against an in-memory record keyed by
// field name. Used by tests and by in-process filtering; the SQL
// compilation below is the hot path.
func Eval(p Predicate, rec map[string]any) bool {
	switch node := p.(type) {
	case And:
		for _, child := range node {
			if !Eval(child, rec) {
				return false
			}
		}
		return true
	case Or:
		for _, child := range node {
			if Eval(child, rec) {
				return true
			}
		}
		return false
	case Not:
		return !Eval(node.P, rec)
	case Leaf:
		return evalLeaf(node, rec)
	}
	return false
}

func evalLeaf(l Leaf, rec map[string]any) bool {
	have, ok := rec[l.Field]
	if !ok {
		return false
	}
	switch l.Op {
	case OpEq:
		return compare(have, l.Value) == 0
	case OpNe:
		return compare(have, l.Value) != 0
	case OpLt:
		return compare(have, l.Value) < 0
	case OpLte:
		return compare(have, l.Value) <= 0
	case OpGt:
		return compare(have, l.Value) > 0
	case OpGte:
		return compare(have, l.Value) >= 0
	case OpContains:
		s, ok1 := have.(string)
		sub, ok2 := l.Value.(string)
		return ok1 && ok2 && strings.Contains(strings.ToLower(s), strings.ToLower(sub))
	case OpIn:
		list, ok := l.Value.([]any)
		if !ok {
			return false
		}
		for _, item := range list {
			if compare(have, item) == 0 {
				return true
			}
		}
		return false
	}
	return false
}

// compare orders two scalars, coercing numerics to float64 and times to
// UTC. Unequal incomparable values order arbitrarily but consistently.
func compare(a, b any) int {
	if af, aok := toFloat(a); aok {
		if bf, bok := toFloat(b); bok {
			switch {
			case af < bf:
				return -1
			case af > bf:
				return 1
			default:
				return 0
			}
		}
	}
	if at, aok := toTime(a); aok {
		if bt, bok := toTime(b); bok {
			switch {
			case at.Before(bt):
				return -1
			case at.After(bt):
				return 1
			default:
				return 0
			}
		}
	}
	as, bs := fmt.Sprint(a), fmt.Sprint(b)
	return strings.Compare(as, bs)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case bool:
		if n {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

func toTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), true
	case string:
		parsed, err := parseTime(t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed.UTC(), true
	}
	return time.Time{}, false
}

// WhereSQL compiles the predicate into a parameterized SQL fragment.
// Placeholders start at $argOffset+1; the returned args line up with
// them. Empty nodes take their boolean identity: an empty And compiles
// to TRUE so a missing filter never changes the query shape, an empty
// Or to FALSE. Eval agrees.
func WhereSQL(d *Descriptor, p Predicate, argOffset int) (string, []any, error) {
	b := &sqlBuilder{desc: d, n: argOffset}
	clause, err := b.build(p)
	if err != nil {
		return "", nil, err
	}
	return clause, b.args, nil
}

type sqlBuilder struct {
	desc *Descriptor
	args []any
	n    int
}

func (b *sqlBuilder) build(p Predicate) (string, error) {
	switch node := p.(type) {
	case And:
		return b.joins(node, " AND ", "TRUE")
	case Or:
		return b.joins(node, " OR ", "FALSE")
	case Not:
		inner, err := b.build(node.P)
		if err != nil {
			return "", err
		}
		return "NOT (" + inner + ")", nil
	case Leaf:
		return b.leaf(node)
	}
	return "", apperr.Validation("%s: unsupported predicate node", b.desc.Entity)
}

func (b *sqlBuilder) joins(children []Predicate, sep, identity string) (string, error) {
	if len(children) == 0 {
		return identity, nil
	}
	parts := make([]string, 0, len(children))
	for _, child := range children {
		clause, err := b.build(child)
		if err != nil {
			return "", err
		}
		parts = append(parts, clause)
	}
	return "(" + strings.Join(parts, sep) + ")", nil
}

func (b *sqlBuilder) leaf(l Leaf) (string, error) {
	f, ok := b.desc.Field(l.Field)
	if !ok {
		return "", apperr.Validation("%s: unknown filter field %q", b.desc.Entity, l.Field)
	}
	switch l.Op {
	case OpEq:
		return f.Column + " = " + b.arg(l.Value), nil
	case OpNe:
		return f.Column + " <> " + b.arg(l.Value), nil
	case OpLt:
		return f.Column + " < " + b.arg(l.Value), nil
	case OpLte:
		return f.Column + " <= " + b.arg(l.Value), nil
	case OpGt:
		return f.Column + " > " + b.arg(l.Value), nil
	case OpGte:
		return f.Column + " >= " + b.arg(l.Value), nil
	case OpContains:
		return f.Column + " ILIKE " + b.arg("%" + l.Value.(string) + "%"), nil
	case OpIn:
		list := l.Value.([]any)
		return f.Column + " = ANY(" + b.arg(pq.Array(list)) + ")", nil
	}
	return "", apperr.Validation("%s: unsupported operator %q", b.desc.Entity, string(l.Op))
}

func (b *sqlBuilder) arg(v any) string {
	b.args = append(b.args, v)
	b.n++
	return fmt.Sprintf("$%d", b.n)
}
