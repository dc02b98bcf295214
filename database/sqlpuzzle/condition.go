package sqlpuzzle

import (
	"bytes"
	"reflect"

	"github.com/google/go-cmp/cmp"

	"github.com/dropbox/sqlpuzzle/database/argsparser"
)

// A single "column relation value" filter.
type Condition struct {
	column   interface{} // string reference or Subquery
	value    interface{}
	relation Relation
}

// Creates a condition.  A zero relation is replaced by the value's default
// relation (EQ for scalars and subqueries, IN for sequences).  Returns an
// InvalidArgumentError if the relation is not allowed for the value.
func NewCondition(
	column interface{},
	value interface{},
	relation Relation) (*Condition, error) {

	c := &Condition{}
	if err := c.Set(column, value, relation); err != nil {
		return nil, err
	}
	return c, nil
}

// Sets column, value and relation.  On error the condition is unchanged.
func (c *Condition) Set(
	column interface{},
	value interface{},
	relation Relation) error {

	if !isReference(column) {
		return newInvalidArgument(
			"Condition column must be a non-empty string or a subquery, got %T",
			column)
	}

	category := CategoryOf(value)
	if relation == 0 {
		var ok bool
		relation, ok = DefaultRelation(category)
		if !ok {
			return newInvalidArgument(
				"No default relation for value of type %T (%s); "+
					"a relation must be given",
				value,
				category)
		}
	}

	if !IsRelationAllowed(relation, category) {
		return newInvalidArgument(
			"Relation \"%s\" is not allowed for data type \"%s\" (%T)",
			relation,
			category,
			value)
	}

	c.column = column
	c.value = value
	c.relation = relation
	return nil
}

// Changes the relation, keeping column and value.
func (c *Condition) SetRelation(relation Relation) error {
	return c.Set(c.column, c.value, relation)
}

func (c *Condition) Column() interface{} {
	return c.column
}

func (c *Condition) Value() interface{} {
	return c.value
}

func (c *Condition) Relation() Relation {
	return c.relation
}

// Two conditions are equal when column, value and relation are equal.
func (c *Condition) Equal(other *Condition) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.relation == other.relation &&
		referencesEqual(c.column, other.column) &&
		valuesEqual(c.value, other.value)
}

func (c *Condition) SerializeSql(r Renderer, out *bytes.Buffer) error {
	if c.column == nil {
		return newInvalidQuery("Condition without column.  Generated sql: %s", out.String())
	}

	if c.relation == IN || c.relation == NOT_IN {
		if v := reflect.ValueOf(c.value); CategoryOf(c.value) == SequenceCategory && v.Len() == 0 {
			// Nothing is IN an empty list; everything is NOT IN it.
			if c.relation == IN {
				_, _ = out.WriteString("FALSE")
			} else {
				_, _ = out.WriteString("TRUE")
			}
			return nil
		}
	}

	if err := serializeSource(r, c.column, out); err != nil {
		return err
	}
	_ = out.WriteByte(' ')
	_, _ = out.WriteString(c.relation.String())
	_ = out.WriteByte(' ')
	return r.SerializeValue(c.value, out)
}

func (c *Condition) String(r Renderer) (string, error) {
	return serializeToString(c, r)
}

func (*Condition) isFragment() {}

func isReference(v interface{}) bool {
	switch ref := v.(type) {
	case string:
		return ref != ""
	case Subquery:
		return !isNilSubquery(ref)
	}
	return false
}

func isRelationOrNil(v interface{}) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Relation)
	return ok
}

func valuesEqual(a, b interface{}) bool {
	_, aSub := a.(Subquery)
	_, bSub := b.(Subquery)
	if aSub || bSub {
		return referencesEqual(a, b)
	}
	return cmp.Equal(a, b)
}

var conditionArgs = argsparser.Options{
	MinItems:  2,
	MaxItems:  3,
	AllowDict: true,
	AllowList: true,
	Positions: []argsparser.TypeCheck{isReference, argsparser.Any, isRelationOrNil},
}

// An ordered, de-duplicated collection of conditions rendered as an AND
// joined predicate.
type Conditions struct {
	fragments fragmentList
}

func NewConditions() *Conditions {
	return &Conditions{}
}

// Adds conditions.  Accepted shapes:
//
//   Where(Raw("a IS NULL"))                      raw sql, appended verbatim
//   Where("age", 30)                             column, value
//   Where("age", 30, GT)                         column, value, relation
//   Where([]interface{}{"a", 1}, []interface{}{"b", "x%", LIKE})
//   Where([][]interface{}{{"a", 1}, {"b", 2}})
//   Where(map[string]interface{}{"a": 1, "b": 2}) (sorted by column)
//
// Conditions equal to an existing one are skipped.  On error nothing is
// added.
func (c *Conditions) Where(args ...interface{}) error {
	if len(args) > 0 {
		if raw, ok := args[0].(Raw); ok {
			if len(args) > 1 {
				return newInvalidArgument("Raw condition must be the only argument")
			}
			c.fragments.add(raw)
			return nil
		}
	}

	tuples, err := argsparser.Parse(conditionArgs, args...)
	if err != nil {
		return wrapInvalidArgument(err, "Invalid condition arguments")
	}

	conditions := make([]*Condition, 0, len(tuples))
	for _, t := range tuples {
		relation, _ := t[2].(Relation)
		condition, err := NewCondition(t[0], t[1], relation)
		if err != nil {
			return err
		}
		conditions = append(conditions, condition)
	}

	for _, condition := range conditions {
		c.fragments.add(condition)
	}
	return nil
}

func (c *Conditions) IsSet() bool {
	return c.fragments.isSet()
}

// Two collections are equal when they hold the same fragments, regardless
// of order.
func (c *Conditions) Equal(other *Conditions) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.fragments.equal(&other.fragments)
}

// Writes the conditions joined with " AND ".  An empty collection writes
// nothing.
func (c *Conditions) SerializeSql(r Renderer, out *bytes.Buffer) error {
	return c.fragments.serialize(r, " AND ", out)
}

func (c *Conditions) String(r Renderer) (string, error) {
	return serializeToString(c, r)
}
