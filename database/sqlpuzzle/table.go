// Modeling of tables and joins.

package sqlpuzzle

import (
	"bytes"

	"github.com/dropbox/sqlpuzzle/database/argsparser"
	"github.com/dropbox/sqlpuzzle/errors"
)

type JoinType int

const (
	INNER_JOIN JoinType = iota
	LEFT_JOIN
	RIGHT_JOIN
)

// Returns the join keyword.  Inner joins are written as a plain JOIN.
func (t JoinType) String() string {
	switch t {
	case INNER_JOIN:
		return "JOIN"
	case LEFT_JOIN:
		return "LEFT JOIN"
	case RIGHT_JOIN:
		return "RIGHT JOIN"
	}
	return "UNKNOWN JOIN"
}

// A single join edge of a table.
type join struct {
	joinType JoinType
	table    *Table
	ons      *JoinConditions
}

func (j *join) equal(other *join) bool {
	return j.joinType == other.joinType &&
		j.table.Equal(other.table) &&
		j.ons.Equal(other.ons)
}

// Joins on the same edge have equal target tables and equal ON conditions.
func (j *join) sameEdge(other *join) bool {
	return j.table.Equal(other.table) && j.ons.Equal(other.ons)
}

// A named table (or a subquery) with an optional alias and a list of joins.
type Table struct {
	name     string
	subquery Subquery
	alias    string
	joins    []*join
}

// Creates a table from a name or a subquery.  alias may be empty.
func NewTable(name interface{}, alias string) (*Table, error) {
	switch n := name.(type) {
	case string:
		if n == "" {
			return nil, newInvalidArgument("Empty table name")
		}
		return &Table{name: n, alias: alias}, nil
	case Subquery:
		if isNilSubquery(n) {
			return nil, newInvalidArgument("nil subquery table")
		}
		return &Table{subquery: n, alias: alias}, nil
	}
	return nil, newInvalidArgument(
		"Table must be a name or a subquery, got %T",
		name)
}

var tableArgs = argsparser.Options{
	MaxItems:  2,
	Positions: []argsparser.TypeCheck{isReference, argsparser.IsOptionalString},
}

// Builds the tables described by args: names, subqueries or (name, alias)
// tuples.
func parseTables(args ...interface{}) ([]*Table, error) {
	tuples, err := argsparser.Parse(tableArgs, args...)
	if err != nil {
		return nil, wrapInvalidArgument(err, "Invalid table arguments")
	}

	tables := make([]*Table, 0, len(tuples))
	for _, t := range tuples {
		alias, _ := t[1].(string)
		table, err := NewTable(t[0], alias)
		if err != nil {
			return nil, err
		}
		tables = append(tables, table)
	}
	return tables, nil
}

// Returns the table name; empty for subquery tables.
func (t *Table) Name() string {
	return t.name
}

func (t *Table) Alias() string {
	return t.alias
}

// Adds a join with an empty ON clause.  target is a table name, a subquery
// or a (name, alias) tuple (see As).  Conditions are added with On.
func (t *Table) Join(target interface{}, joinType JoinType) error {
	switch joinType {
	case INNER_JOIN, LEFT_JOIN, RIGHT_JOIN:
	default:
		return newInvalidArgument("Unknown join type %d", int(joinType))
	}

	targets, err := parseTables(target)
	if err != nil {
		return err
	}
	if len(targets) != 1 {
		return newInvalidArgument("Expected exactly one join table, got %d", len(targets))
	}

	t.joins = append(t.joins, &join{
		joinType: joinType,
		table:    targets[0],
		ons:      NewJoinConditions(),
	})
	return nil
}

// Adds ON conditions to the most recent join.
func (t *Table) On(args ...interface{}) error {
	if t.IsSimple() {
		return newInvalidQuery("You can't set join condition without a join")
	}
	return t.joins[len(t.joins)-1].ons.On(args...)
}

// Returns true if the table has no join.
func (t *Table) IsSimple() bool {
	return len(t.joins) == 0
}

// Two tables are equal when name, alias and joins (in order) are equal.
func (t *Table) Equal(other *Table) bool {
	if t == nil || other == nil {
		return t == other
	}
	if t.name != other.name ||
		t.alias != other.alias ||
		!referencesEqual(t.subquery, other.subquery) ||
		len(t.joins) != len(other.joins) {

		return false
	}
	for i, j := range t.joins {
		if !j.equal(other.joins[i]) {
			return false
		}
	}
	return true
}

func (t *Table) SerializeSql(r Renderer, out *bytes.Buffer) error {
	if t.subquery != nil {
		if err := serializeSubquery(r, t.subquery, out); err != nil {
			return err
		}
	} else if err := r.SerializeReference(t.name, out); err != nil {
		return err
	}

	if t.alias != "" {
		_, _ = out.WriteString(" AS ")
		if err := r.SerializeReference(t.alias, out); err != nil {
			return err
		}
	}

	if t.IsSimple() {
		return nil
	}

	for _, j := range t.joins {
		if !j.ons.IsSet() {
			return newInvalidQuery(
				"You can't use join without on.  Generated sql: %s",
				out.String())
		}
	}

	for _, j := range minimizeJoins(t.joins) {
		_ = out.WriteByte(' ')
		_, _ = out.WriteString(j.joinType.String())
		_ = out.WriteByte(' ')
		if err := j.table.SerializeSql(r, out); err != nil {
			return errors.Wrap(err, "Failed to render join table")
		}
		_, _ = out.WriteString(" ON (")
		if err := j.ons.SerializeSql(r, out); err != nil {
			return err
		}
		_ = out.WriteByte(')')
	}
	return nil
}

func (t *Table) String(r Renderer) (string, error) {
	return serializeToString(t, r)
}

func (*Table) isFragment() {}

// Collapses joins on the same edge (equal target table and equal ON
// conditions).  A group containing an inner join becomes a single inner
// join built from the group's first member.  Other groups keep one join per
// distinct join type, so a LEFT and a RIGHT join on the same edge are both
// kept.  Groups are emitted in first seen order.  joins is not modified.
func minimizeJoins(joins []*join) []*join {
	var groups [][]*join
	for _, j := range joins {
		placed := false
		for i, group := range groups {
			if group[0].sameEdge(j) {
				groups[i] = append(group, j)
				placed = true
				break
			}
		}
		if !placed {
			groups = append(groups, []*join{j})
		}
	}

	result := make([]*join, 0, len(groups))
	for _, group := range groups {
		if len(group) == 1 {
			result = append(result, group[0])
			continue
		}

		if hasInnerJoin(group) {
			merged := *group[0]
			merged.joinType = INNER_JOIN
			result = append(result, &merged)
			continue
		}

		seen := make(map[JoinType]bool)
		for _, j := range group {
			if !seen[j.joinType] {
				seen[j.joinType] = true
				result = append(result, j)
			}
		}
	}
	return result
}

func hasInnerJoin(joins []*join) bool {
	for _, j := range joins {
		if j.joinType == INNER_JOIN {
			return true
		}
	}
	return false
}
