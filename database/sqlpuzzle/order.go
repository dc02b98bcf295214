package sqlpuzzle

import (
	"bytes"
	"strings"

	"github.com/dropbox/sqlpuzzle/database/argsparser"
)

type Direction int

const (
	ASC Direction = iota
	DESC
)

func (d Direction) String() string {
	if d == DESC {
		return "DESC"
	}
	return "ASC"
}

// Parses "asc" / "desc" (case insensitive).  Anything else is ASC.
func ParseDirection(s string) Direction {
	if strings.EqualFold(strings.TrimSpace(s), "desc") {
		return DESC
	}
	return ASC
}

// A single ORDER BY item.
type Order struct {
	column    interface{} // string or Subquery
	direction Direction
}

func NewOrder(column interface{}, direction Direction) (*Order, error) {
	if !isReference(column) {
		return nil, newInvalidArgument(
			"Order column must be a non-empty string or a subquery, got %T",
			column)
	}
	if direction != ASC && direction != DESC {
		return nil, newInvalidArgument("Unknown order direction %d", int(direction))
	}
	return &Order{column: column, direction: direction}, nil
}

func (o *Order) Column() interface{} {
	return o.column
}

func (o *Order) Direction() Direction {
	return o.direction
}

// ASC is the default and is not written.
func (o *Order) SerializeSql(r Renderer, out *bytes.Buffer) error {
	if err := serializeSource(r, o.column, out); err != nil {
		return err
	}
	if o.direction == DESC {
		_, _ = out.WriteString(" DESC")
	}
	return nil
}

func isDirectionOrNil(v interface{}) bool {
	switch d := v.(type) {
	case nil, string:
		return true
	case Direction:
		return d == ASC || d == DESC
	}
	return false
}

var orderArgs = argsparser.Options{
	MaxItems:  2,
	AllowList: true,
	Positions: []argsparser.TypeCheck{isReference, isDirectionOrNil},
}

// The ORDER BY clause.  Items are kept in insertion order, duplicates
// included.
type OrderBy struct {
	orders []*Order
}

func NewOrderBy() *OrderBy {
	return &OrderBy{}
}

// Adds items.  Each argument is a column or a (column, direction) tuple
// where direction is a Direction or a string such as "desc".
func (o *OrderBy) OrderBy(args ...interface{}) error {
	tuples, err := argsparser.Parse(orderArgs, args...)
	if err != nil {
		return wrapInvalidArgument(err, "Invalid order by arguments")
	}

	orders := make([]*Order, 0, len(tuples))
	for _, t := range tuples {
		direction := ASC
		switch d := t[1].(type) {
		case Direction:
			direction = d
		case string:
			direction = ParseDirection(d)
		}
		order, err := NewOrder(t[0], direction)
		if err != nil {
			return err
		}
		orders = append(orders, order)
	}

	o.orders = append(o.orders, orders...)
	return nil
}

func (o *OrderBy) IsSet() bool {
	return len(o.orders) > 0
}

// Writes "ORDER BY a, b DESC", or nothing when no item is set.
func (o *OrderBy) SerializeSql(r Renderer, out *bytes.Buffer) error {
	if !o.IsSet() {
		return nil
	}
	_, _ = out.WriteString("ORDER BY ")
	for i, order := range o.orders {
		if i > 0 {
			_, _ = out.WriteString(", ")
		}
		if err := order.SerializeSql(r, out); err != nil {
			return err
		}
	}
	return nil
}

func (o *OrderBy) String(r Renderer) (string, error) {
	return serializeToString(o, r)
}
