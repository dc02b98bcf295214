package sqlpuzzle

import (
	"bytes"
)

// An ordered, de-duplicated list of tables.  The join and on calls always
// apply to the most recently added table.
type Tables struct {
	tables []*Table
}

func NewTables() *Tables {
	return &Tables{}
}

// Adds tables.  Each argument is a name, a subquery or a (name, alias) tuple
// (see As); nil and empty names are ignored.  Tables equal to an existing
// one are skipped.
func (t *Tables) Set(args ...interface{}) error {
	filtered := make([]interface{}, 0, len(args))
	for _, arg := range args {
		if arg == nil {
			continue
		}
		if s, ok := arg.(string); ok && s == "" {
			continue
		}
		filtered = append(filtered, arg)
	}

	tables, err := parseTables(filtered...)
	if err != nil {
		return err
	}

	for _, table := range tables {
		if !t.contains(table) {
			t.tables = append(t.tables, table)
		}
	}
	return nil
}

func (t *Tables) contains(table *Table) bool {
	for _, existing := range t.tables {
		if existing.Equal(table) {
			return true
		}
	}
	return false
}

func (t *Tables) last() (*Table, error) {
	if !t.IsSet() {
		return nil, newInvalidQuery("You can't set join without table")
	}
	return t.tables[len(t.tables)-1], nil
}

func (t *Tables) join(target interface{}, joinType JoinType) error {
	table, err := t.last()
	if err != nil {
		return err
	}
	return table.Join(target, joinType)
}

// Inner joins target to the last table.
func (t *Tables) Join(target interface{}) error {
	return t.join(target, INNER_JOIN)
}

func (t *Tables) InnerJoin(target interface{}) error {
	return t.join(target, INNER_JOIN)
}

func (t *Tables) LeftJoin(target interface{}) error {
	return t.join(target, LEFT_JOIN)
}

func (t *Tables) RightJoin(target interface{}) error {
	return t.join(target, RIGHT_JOIN)
}

// Adds ON conditions to the last join of the last table.
func (t *Tables) On(args ...interface{}) error {
	if !t.IsSet() {
		return newInvalidQuery("You can't set condition of join without table")
	}
	return t.tables[len(t.tables)-1].On(args...)
}

func (t *Tables) IsSet() bool {
	return len(t.tables) > 0
}

// Returns true if exactly one table without joins is set.
func (t *Tables) IsSimple() bool {
	return len(t.tables) == 1 && t.tables[0].IsSimple()
}

// Writes the tables separated by ", ".
func (t *Tables) SerializeSql(r Renderer, out *bytes.Buffer) error {
	for i, table := range t.tables {
		if i > 0 {
			_, _ = out.WriteString(", ")
		}
		if err := table.SerializeSql(r, out); err != nil {
			return err
		}
	}
	return nil
}

func (t *Tables) String(r Renderer) (string, error) {
	return serializeToString(t, r)
}
