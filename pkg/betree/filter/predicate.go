package filter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Predicate is one parsed leaf of a filter: a record key, a comparison
// operator, and a literal to compare against. A predicate with an empty Op
// is a bare key tested for truthiness.
type Predicate struct {
	Key   string
	Op    string
	Value any
}

// comparisonOps lists the recognized operators, longest first so that
// splitting never matches a prefix of a longer operator. "contains" is
// matched with surrounding spaces to keep word boundaries.
var comparisonOps = []string{"==", "!=", ">=", "<=", ">", "<", " contains "}

// ParsePredicate parses one raw atom like "size >= 100", "type == nfs",
// "label contains tmp", or a bare key. Whitespace around key and value is
// ignored.
func ParsePredicate(raw string) (Predicate, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Predicate{}, fmt.Errorf("filter: empty predicate")
	}
	for _, op := range comparisonOps {
		parts := strings.SplitN(trimmed, op, 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		if key == "" {
			return Predicate{}, fmt.Errorf("filter: predicate %q has no key", trimmed)
		}
		value := strings.TrimSpace(parts[1])
		if value == "" {
			return Predicate{}, fmt.Errorf("filter: predicate %q has no value", trimmed)
		}
		return Predicate{
			Key:   key,
			Op:    strings.TrimSpace(op),
			Value: parseLiteral(value),
		}, nil
	}
	if strings.ContainsAny(trimmed, " \t") {
		return Predicate{}, fmt.Errorf("filter: cannot parse predicate %q", trimmed)
	}
	// Bare key, tested for truthiness.
	return Predicate{Key: trimmed}, nil
}

// String returns the predicate in its source form.
func (p Predicate) String() string {
	if p.Op == "" {
		return p.Key
	}
	return fmt.Sprintf("%s %s %v", p.Key, p.Op, p.Value)
}

// Match evaluates the predicate against a record. A missing key compares
// as nil: falsy for bare predicates, unequal to everything but nil
// otherwise.
func (p Predicate) Match(record map[string]any) (bool, error) {
	val := record[p.Key]
	if p.Op == "" {
		return isTruthy(val), nil
	}
	return compare(val, p.Value, p.Op)
}

// parseLiteral interprets the value side of a predicate: quoted strings,
// booleans, null, numbers, everything else as a bare string.
func parseLiteral(s string) any {
	if (strings.HasPrefix(s, "'") && strings.HasSuffix(s, "'")) ||
		(strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)) {
		if len(s) < 2 {
			return ""
		}
		return s[1 : len(s)-1]
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	case "null", "nil":
		return nil
	}
	var num json.Number
	if err := json.Unmarshal([]byte(s), &num); err == nil {
		if i, err := num.Int64(); err == nil {
			return i
		}
		if f, err := num.Float64(); err == nil {
			return f
		}
	}
	return s
}

// compare applies a comparison operator: string comparison for equality,
// numeric comparison for ordering, substring for contains.
func compare(left, right any, op string) (bool, error) {
	switch op {
	case "==":
		return asString(left) == asString(right), nil
	case "!=":
		return asString(left) != asString(right), nil
	case "<":
		return toFloat64(left) < toFloat64(right), nil
	case ">":
		return toFloat64(left) > toFloat64(right), nil
	case "<=":
		return toFloat64(left) <= toFloat64(right), nil
	case ">=":
		return toFloat64(left) >= toFloat64(right), nil
	case "contains":
		return strings.Contains(asString(left), asString(right)), nil
	default:
		return false, fmt.Errorf("filter: unknown operator %q", op)
	}
}

func asString(v any) string {
	return fmt.Sprintf("%v", v)
}

// isTruthy reports whether a value is truthy: nil is false, bools return
// their value, empty strings and zero numbers are false, everything else
// is true.
func isTruthy(v any) bool {
	if v == nil {
		return false
	}
	switch val := v.(type) {
	case bool:
		return val
	case string:
		return val != ""
	case int:
		return val != 0
	case int64:
		return val != 0
	case int32:
		return val != 0
	case float64:
		return val != 0
	case float32:
		return val != 0
	default:
		return true
	}
}

// toFloat64 converts a value for numeric comparison; inconvertible values
// count as 0.
func toFloat64(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case float32:
		return float64(val)
	case int:
		return float64(val)
	case int64:
		return float64(val)
	case int32:
		return float64(val)
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(val), 64); err == nil {
			return f
		}
		return 0
	default:
		return 0
	}
}
