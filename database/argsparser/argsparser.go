// Normalization of variadic builder arguments into fixed-arity tuples.
//
// Builder calls accept several shapes:
//   - a flat list of scalars forming one tuple:   Where("age", 30)
//   - one tuple per argument:                     Columns("a", []interface{}{"b", "bb"})
//   - a single list of tuples (AllowList):        Where([][]interface{}{{"a", 1}, {"b", 2}})
//   - a single keyword map (AllowDict):           Where(map[string]interface{}{"a": 1})
//
// Every returned tuple has exactly MaxItems entries; missing trailing items
// are nil.
package argsparser

import (
	"reflect"
	"sort"

	"github.com/dropbox/sqlpuzzle/errors"
)

// A single normalized argument tuple.
type Tuple []interface{}

// A type check applied to one position of a tuple.
type TypeCheck func(value interface{}) bool

type Options struct {
	// Minimum number of items per tuple.  Values below 1 are treated as 1.
	MinItems int
	// Maximum number of items per tuple.
	MaxItems int
	// Accept a single map argument, one tuple per (sorted) key.
	AllowDict bool
	// Accept a single [][]interface{} argument, one tuple per element.
	AllowList bool
	// Type checks per position.  A nil entry, or a position past the end of
	// the slice, accepts anything.
	Positions []TypeCheck
}

func (o Options) minItems() int {
	if o.MinItems < 1 {
		return 1
	}
	return o.MinItems
}

// Parse converts args into tuples according to opts.
func Parse(opts Options, args ...interface{}) ([]Tuple, error) {
	if opts.MaxItems < opts.minItems() {
		return nil, errors.Newf(
			"Invalid options: max items %d is less than min items %d",
			opts.MaxItems,
			opts.minItems())
	}

	if len(args) == 0 {
		return nil, nil
	}

	var raw []Tuple
	if len(args) == 1 && isMap(args[0]) {
		if !opts.AllowDict {
			return nil, errors.New("Keyword (map) arguments are not allowed")
		}
		raw = mapToTuples(args[0])
	} else if len(args) == 1 && isTupleList(args[0]) {
		if !opts.AllowList {
			return nil, errors.New("List of tuples arguments are not allowed")
		}
		for _, t := range args[0].([][]interface{}) {
			raw = append(raw, Tuple(t))
		}
	} else if _, ok := asTuple(args[0]); ok || opts.minItems() <= 1 {
		raw = make([]Tuple, 0, len(args))
		for _, arg := range args {
			if t, ok := asTuple(arg); ok {
				raw = append(raw, t)
			} else {
				raw = append(raw, Tuple{arg})
			}
		}
	} else {
		raw = []Tuple{Tuple(args)}
	}

	result := make([]Tuple, 0, len(raw))
	for _, t := range raw {
		normalized, err := normalize(opts, t)
		if err != nil {
			return nil, err
		}
		result = append(result, normalized)
	}
	return result, nil
}

func normalize(opts Options, t Tuple) (Tuple, error) {
	if len(t) < opts.minItems() || len(t) > opts.MaxItems {
		return nil, errors.Newf(
			"Expected between %d and %d items, got %d: %v",
			opts.minItems(),
			opts.MaxItems,
			len(t),
			[]interface{}(t))
	}

	for i, item := range t {
		if i >= len(opts.Positions) || opts.Positions[i] == nil {
			continue
		}
		if !opts.Positions[i](item) {
			return nil, errors.Newf(
				"Unexpected type %T at position %d: %v",
				item,
				i,
				item)
		}
	}

	padded := make(Tuple, opts.MaxItems)
	copy(padded, t)
	return padded, nil
}

// asTuple recognizes the tuple shaped arguments.  Typed slices such as
// []int are values, not tuples.
func asTuple(arg interface{}) (Tuple, bool) {
	switch t := arg.(type) {
	case Tuple:
		return t, true
	case []interface{}:
		return Tuple(t), true
	case []string:
		result := make(Tuple, len(t))
		for i, s := range t {
			result[i] = s
		}
		return result, true
	}
	return nil, false
}

func isTupleList(arg interface{}) bool {
	_, ok := arg.([][]interface{})
	return ok
}

func isMap(arg interface{}) bool {
	v := reflect.ValueOf(arg)
	return v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String
}

func mapToTuples(arg interface{}) []Tuple {
	v := reflect.ValueOf(arg)
	keys := make([]string, 0, v.Len())
	for _, k := range v.MapKeys() {
		keys = append(keys, k.String())
	}
	sort.Strings(keys)

	result := make([]Tuple, 0, len(keys))
	for _, k := range keys {
		value := v.MapIndex(reflect.ValueOf(k).Convert(v.Type().Key()))
		result = append(result, Tuple{k, value.Interface()})
	}
	return result
}

// Accepts any value, including nil.
func Any(value interface{}) bool {
	return true
}

// Accepts non-empty strings.
func IsString(value interface{}) bool {
	s, ok := value.(string)
	return ok && s != ""
}

// Accepts nil or strings.
func IsOptionalString(value interface{}) bool {
	if value == nil {
		return true
	}
	_, ok := value.(string)
	return ok
}

// Accepts values that pass at least one of the checks.
func AnyOf(checks ...TypeCheck) TypeCheck {
	return func(value interface{}) bool {
		for _, check := range checks {
			if check(value) {
				return true
			}
		}
		return false
	}
}

// Accepts nil or values that pass check.
func Optional(check TypeCheck) TypeCheck {
	return func(value interface{}) bool {
		return value == nil || check(value)
	}
}
