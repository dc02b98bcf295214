package sqlpuzzle

import (
	"reflect"
	"time"
)

// The category of a condition value.  It decides the default relation and
// the set of relations a value may be used with.
type Category int

const (
	OtherCategory Category = iota
	TextCategory
	BooleanCategory
	NumericCategory
	DateTimeCategory
	SequenceCategory
	SubqueryCategory
)

func (c Category) String() string {
	switch c {
	case TextCategory:
		return "text"
	case BooleanCategory:
		return "boolean"
	case NumericCategory:
		return "numeric"
	case DateTimeCategory:
		return "datetime"
	case SequenceCategory:
		return "sequence"
	case SubqueryCategory:
		return "subquery"
	}
	return "other"
}

// Returns the category of value.  Named types are categorized by their
// underlying kind.  Slices and arrays are sequences only when every element
// is text, boolean, numeric or datetime; []byte is text.
func CategoryOf(value interface{}) Category {
	switch value.(type) {
	case nil:
		return OtherCategory
	case Subquery:
		if isNilSubquery(value.(Subquery)) {
			return OtherCategory
		}
		return SubqueryCategory
	case time.Time:
		return DateTimeCategory
	case []byte:
		return TextCategory
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return TextCategory
	// bool must stay distinct from numeric: it only supports EQ/NE.
	case reflect.Bool:
		return BooleanCategory
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return NumericCategory
	case reflect.Slice, reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if !isScalarCategory(CategoryOf(v.Index(i).Interface())) {
				return OtherCategory
			}
		}
		return SequenceCategory
	}
	return OtherCategory
}

func isScalarCategory(c Category) bool {
	switch c {
	case TextCategory, BooleanCategory, NumericCategory, DateTimeCategory:
		return true
	}
	return false
}
