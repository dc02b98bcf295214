package sqlpuzzle

import (
	"bytes"

	"github.com/dropbox/sqlpuzzle/database/argsparser"
)

// A selected column: a reference, a subquery or raw sql, with an optional
// alias.
type Column struct {
	column interface{} // string, Subquery or Raw
	alias  string
}

func NewColumn(column interface{}, alias string) (*Column, error) {
	if !isReference(column) && !isRaw(column) {
		return nil, newInvalidArgument(
			"Column must be a non-empty string, a subquery or raw sql, got %T",
			column)
	}
	return &Column{column: column, alias: alias}, nil
}

func (c *Column) Column() interface{} {
	return c.column
}

func (c *Column) Alias() string {
	return c.alias
}

func (c *Column) Equal(other *Column) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.alias == other.alias && referencesEqual(c.column, other.column)
}

func (c *Column) SerializeSql(r Renderer, out *bytes.Buffer) error {
	if raw, ok := c.column.(Raw); ok {
		_ = raw.SerializeSql(r, out)
	} else if err := serializeSource(r, c.column, out); err != nil {
		return err
	}

	if c.alias != "" {
		_, _ = out.WriteString(" AS ")
		serializeAlias(c.alias, out)
	}
	return nil
}

func (c *Column) String(r Renderer) (string, error) {
	return serializeToString(c, r)
}

func (*Column) isFragment() {}

func isRaw(v interface{}) bool {
	_, ok := v.(Raw)
	return ok
}

var columnArgs = argsparser.Options{
	MaxItems: 2,
	Positions: []argsparser.TypeCheck{
		argsparser.AnyOf(isReference, isRaw),
		argsparser.IsOptionalString,
	},
}

// An ordered, de-duplicated list of selected columns.
type Columns struct {
	fragments fragmentList
}

func NewColumns() *Columns {
	return &Columns{}
}

// Adds columns.  Each argument is a column name, a subquery, raw sql or a
// (column, alias) tuple (see As).  Raw sql without an alias is appended
// verbatim; other columns equal to an existing one are skipped.  On error
// nothing is added.
func (c *Columns) Columns(args ...interface{}) error {
	tuples, err := argsparser.Parse(columnArgs, args...)
	if err != nil {
		return wrapInvalidArgument(err, "Invalid column arguments")
	}

	fragments := make([]Fragment, 0, len(tuples))
	for _, t := range tuples {
		alias, _ := t[1].(string)
		if raw, ok := t[0].(Raw); ok && alias == "" {
			fragments = append(fragments, raw)
			continue
		}
		column, err := NewColumn(t[0], alias)
		if err != nil {
			return err
		}
		fragments = append(fragments, column)
	}

	for _, f := range fragments {
		c.fragments.add(f)
	}
	return nil
}

func (c *Columns) IsSet() bool {
	return c.fragments.isSet()
}

func (c *Columns) Equal(other *Columns) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.fragments.equal(&other.fragments)
}

// Writes the columns separated by ", ", or "*" when no column is set.
func (c *Columns) SerializeSql(r Renderer, out *bytes.Buffer) error {
	if !c.IsSet() {
		_ = out.WriteByte('*')
		return nil
	}
	return c.fragments.serialize(r, ", ", out)
}

func (c *Columns) String(r Renderer) (string, error) {
	return serializeToString(c, r)
}
