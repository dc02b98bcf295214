package sqlpuzzle

import (
	"bytes"
	"reflect"
	"strings"
	"time"

	"github.com/dropbox/sqlpuzzle/database/sqltypes"
	"github.com/dropbox/sqlpuzzle/errors"
)

// Renderer turns references and values into db-safe sql text.  Fragments
// never quote or escape anything themselves, so tests may inject their own
// Renderer.
type Renderer interface {
	// Writes a quoted identifier, e.g. user.id => `user`.`id`.
	SerializeReference(ref string, out *bytes.Buffer) error

	// Writes an escaped literal, a parenthesized list of literals, or a
	// parenthesized subquery.
	SerializeValue(value interface{}, out *bytes.Buffer) error
}

// The default MySQL renderer.
var MySQL = NewRenderer(NewMySQLDatabase())

type dialectRenderer struct {
	escape string
	style  sqltypes.EscapeStyle
}

// Returns a Renderer which quotes identifiers with the database's escape
// character and encodes literals with sqltypes, using the database's
// escape style.
func NewRenderer(db Database) Renderer {
	return &dialectRenderer{
		escape: string(db.EscapeCharacter()),
		style:  db.EscapeStyle(),
	}
}

func (r *dialectRenderer) SerializeReference(
	ref string,
	out *bytes.Buffer) error {

	if ref == "" {
		return newInvalidArgument("Empty reference")
	}

	parts := strings.Split(ref, ".")
	for i, part := range parts {
		if part == "" {
			return newInvalidArgument("Empty identifier in reference '%s'", ref)
		}

		if i > 0 {
			_ = out.WriteByte('.')
		}

		if part == "*" {
			_ = out.WriteByte('*')
			continue
		}

		_, _ = out.WriteString(r.escape)
		_, _ = out.WriteString(
			strings.Replace(part, r.escape, r.escape+r.escape, -1))
		_, _ = out.WriteString(r.escape)
	}
	return nil
}

func (r *dialectRenderer) SerializeValue(
	value interface{},
	out *bytes.Buffer) error {

	switch CategoryOf(value) {
	case SubqueryCategory:
		return serializeSubquery(r, value.(Subquery), out)
	case SequenceCategory:
		list := reflect.ValueOf(value)
		_ = out.WriteByte('(')
		for i := 0; i < list.Len(); i++ {
			if i > 0 {
				_, _ = out.WriteString(", ")
			}
			if err := r.serializeScalar(list.Index(i).Interface(), out); err != nil {
				return err
			}
		}
		_ = out.WriteByte(')')
		return nil
	}
	return r.serializeScalar(value, out)
}

func (r *dialectRenderer) serializeScalar(
	value interface{},
	out *bytes.Buffer) error {

	builtin := toBuiltin(value)
	if b, ok := builtin.(bool); ok && r.style != sqltypes.BackslashEscape {
		// Boolean literals; only MySQL stores booleans as 1/0.
		if b {
			_, _ = out.WriteString("TRUE")
		} else {
			_, _ = out.WriteString("FALSE")
		}
		return nil
	}

	literal, err := sqltypes.BuildValue(builtin)
	if err != nil {
		return wrapInvalidArgument(err, "Cannot render value")
	}
	literal.EncodeSqlStyle(out, r.style)
	return nil
}

// Converts named scalar types (e.g. type UserId int64) into the builtin type
// of the same kind so sqltypes can encode them.
func toBuiltin(value interface{}) interface{} {
	switch value.(type) {
	case nil, time.Time, []byte:
		return value
	}

	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Bool:
		return v.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint()
	case reflect.Float32:
		return float32(v.Float())
	case reflect.Float64:
		return v.Float()
	}
	return value
}

func serializeSubquery(r Renderer, sub Subquery, out *bytes.Buffer) error {
	if isNilSubquery(sub) {
		return newInvalidArgument("nil subquery.  Generated sql: %s", out.String())
	}
	_ = out.WriteByte('(')
	if err := sub.SubquerySql(r, out); err != nil {
		return errors.Wrap(err, "Failed to render subquery")
	}
	_ = out.WriteByte(')')
	return nil
}

// Writes a column or table reference: either a quoted identifier or a
// parenthesized subquery.
func serializeSource(r Renderer, source interface{}, out *bytes.Buffer) error {
	switch s := source.(type) {
	case string:
		return r.SerializeReference(s, out)
	case Subquery:
		return serializeSubquery(r, s, out)
	}
	return newInvalidArgument("Unsupported reference type %T", source)
}

// Writes a double quoted column alias.
func serializeAlias(alias string, out *bytes.Buffer) {
	_ = out.WriteByte('"')
	_, _ = out.WriteString(strings.Replace(alias, `"`, `""`, -1))
	_ = out.WriteByte('"')
}

func serializeToString(c Clause, r Renderer) (string, error) {
	if r == nil {
		r = MySQL
	}
	buf := &bytes.Buffer{}
	if err := c.SerializeSql(r, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
