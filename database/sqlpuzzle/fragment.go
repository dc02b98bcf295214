package sqlpuzzle

import (
	"bytes"
	"reflect"
)

// Anything that can be rendered into sql text.
type Clause interface {
	SerializeSql(r Renderer, out *bytes.Buffer) error
}

// A nested statement.  Subqueries may be used as tables, columns and
// condition values; they are rendered in parentheses.
type Subquery interface {
	SubquerySql(r Renderer, out *bytes.Buffer) error
}

// A fragment held by a container: either a structured fragment (*Condition,
// *JoinCondition, *Column, *Table) or Raw sql.
type Fragment interface {
	Clause
	isFragment()
}

// Raw sql, injected verbatim.  Raw fragments bypass validation, quoting and
// de-duplication.
type Raw string

func (r Raw) SerializeSql(_ Renderer, out *bytes.Buffer) error {
	_, _ = out.WriteString(string(r))
	return nil
}

func (Raw) isFragment() {}

// Returns a (name, alias) tuple, for use with Tables.Set, the join calls
// and Columns.Columns.
func As(name interface{}, alias string) []interface{} {
	return []interface{}{name, alias}
}

func fragmentsEqual(a, b Fragment) bool {
	switch x := a.(type) {
	case Raw:
		y, ok := b.(Raw)
		return ok && x == y
	case *Condition:
		y, ok := b.(*Condition)
		return ok && x.Equal(y)
	case *JoinCondition:
		y, ok := b.(*JoinCondition)
		return ok && x.Equal(y)
	case *Column:
		y, ok := b.(*Column)
		return ok && x.Equal(y)
	case *Table:
		y, ok := b.(*Table)
		return ok && x.Equal(y)
	}
	return false
}

// Ordered list of fragments shared by the containers.
type fragmentList struct {
	items []Fragment
}

func (l *fragmentList) isSet() bool {
	return len(l.items) > 0
}

func (l *fragmentList) contains(f Fragment) bool {
	for _, item := range l.items {
		if fragmentsEqual(item, f) {
			return true
		}
	}
	return false
}

// Appends f unless an equal fragment is already present.  Raw fragments are
// always appended.
func (l *fragmentList) add(f Fragment) {
	if _, ok := f.(Raw); !ok && l.contains(f) {
		return
	}
	l.items = append(l.items, f)
}

// Order insensitive comparison of the two lists (as multisets).
func (l *fragmentList) equal(other *fragmentList) bool {
	if len(l.items) != len(other.items) {
		return false
	}

	matched := make([]bool, len(other.items))
	for _, item := range l.items {
		found := false
		for i, candidate := range other.items {
			if !matched[i] && fragmentsEqual(item, candidate) {
				matched[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (l *fragmentList) serialize(
	r Renderer,
	separator string,
	out *bytes.Buffer) error {

	for i, item := range l.items {
		if i > 0 {
			_, _ = out.WriteString(separator)
		}
		if item == nil {
			return newInvalidQuery("nil fragment.  Generated sql: %s", out.String())
		}
		if err := item.SerializeSql(r, out); err != nil {
			return err
		}
	}
	return nil
}

// Returns true for nil and for typed nil subqueries, e.g. (*T)(nil).
func isNilSubquery(sub Subquery) bool {
	if sub == nil {
		return true
	}
	v := reflect.ValueOf(sub)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan,
		reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Compares column/table references.  Subqueries compare by identity;
// incomparable dynamic types are never equal.
func referencesEqual(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb || !ta.Comparable() {
		return false
	}
	return a == b
}
