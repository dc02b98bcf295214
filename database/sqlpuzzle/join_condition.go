package sqlpuzzle

import (
	"bytes"

	"github.com/dropbox/sqlpuzzle/database/argsparser"
)

// An ON condition comparing two column references ("column = value").
type JoinCondition struct {
	column string
	value  string
}

func NewJoinCondition(column string, value string) (*JoinCondition, error) {
	if column == "" || value == "" {
		return nil, newInvalidArgument(
			"Join condition needs two column references, got '%s' and '%s'",
			column,
			value)
	}
	return &JoinCondition{column: column, value: value}, nil
}

func (c *JoinCondition) Column() string {
	return c.column
}

func (c *JoinCondition) Value() string {
	return c.value
}

// Join conditions are symmetric: a = b equals b = a.
func (c *JoinCondition) Equal(other *JoinCondition) bool {
	if c == nil || other == nil {
		return c == other
	}
	return (c.column == other.column && c.value == other.value) ||
		(c.column == other.value && c.value == other.column)
}

// Always written in the order the references were given.
func (c *JoinCondition) SerializeSql(r Renderer, out *bytes.Buffer) error {
	if err := r.SerializeReference(c.column, out); err != nil {
		return err
	}
	_, _ = out.WriteString(" = ")
	return r.SerializeReference(c.value, out)
}

func (c *JoinCondition) String(r Renderer) (string, error) {
	return serializeToString(c, r)
}

func (*JoinCondition) isFragment() {}

var joinConditionArgs = argsparser.Options{
	MinItems:  2,
	MaxItems:  2,
	AllowDict: true,
	AllowList: true,
	Positions: []argsparser.TypeCheck{argsparser.IsString, argsparser.IsString},
}

// The ON conditions of a single join.
type JoinConditions struct {
	fragments fragmentList
}

func NewJoinConditions() *JoinConditions {
	return &JoinConditions{}
}

// Adds join conditions.  Accepts the same shapes as Conditions.Where, with
// (column, column) pairs instead of (column, value, relation) tuples:
//
//   On("user.country_id", "country.id")
//   On(map[string]interface{}{"user.country_id": "country.id"})
//   On(Raw("user.id = profile.user_id"))
func (c *JoinConditions) On(args ...interface{}) error {
	if len(args) > 0 {
		if raw, ok := args[0].(Raw); ok {
			if len(args) > 1 {
				return newInvalidArgument("Raw join condition must be the only argument")
			}
			c.fragments.add(raw)
			return nil
		}
	}

	tuples, err := argsparser.Parse(joinConditionArgs, args...)
	if err != nil {
		return wrapInvalidArgument(err, "Invalid join condition arguments")
	}

	conditions := make([]*JoinCondition, 0, len(tuples))
	for _, t := range tuples {
		condition, err := NewJoinCondition(t[0].(string), t[1].(string))
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

func (c *JoinConditions) IsSet() bool {
	return c != nil && c.fragments.isSet()
}

// Equal when both hold the same join conditions, regardless of order.
func (c *JoinConditions) Equal(other *JoinConditions) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.fragments.equal(&other.fragments)
}

func (c *JoinConditions) SerializeSql(r Renderer, out *bytes.Buffer) error {
	return c.fragments.serialize(r, " AND ", out)
}

func (c *JoinConditions) String(r Renderer) (string, error) {
	return serializeToString(c, r)
}
