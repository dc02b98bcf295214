package main

import (
	"bytes"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dropbox/sqlpuzzle/database/sqlpuzzle"
	"github.com/dropbox/sqlpuzzle/errors"
)

// A fragment document, e.g.
//
//	columns: [a, [b, bb]]
//	tables:
//	  - table: user
//	    alias: u
//	    joins:
//	      - {kind: left, table: country, alias: c, on: [[u.country_id, c.id]]}
//	where:
//	  - {column: age, value: 30}
//	  - {raw: "deleted_at IS NULL"}
//	order_by: [[name, desc], id]
type Document struct {
	Columns []NamePair       `yaml:"columns"`
	Tables  []TableEntry     `yaml:"tables"`
	Where   []ConditionEntry `yaml:"where"`
	OrderBy []NamePair       `yaml:"order_by"`
}

// Either a bare name or a two item [name, second] sequence.  second is a
// column alias or an order direction.
type NamePair struct {
	Name   string
	Second string
}

func (p *NamePair) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&p.Name)
	case yaml.SequenceNode:
		var items []string
		if err := node.Decode(&items); err != nil {
			return err
		}
		if len(items) < 1 || len(items) > 2 {
			return errors.Newf(
				"line %d: expected [name] or [name, alias], got %d items",
				node.Line,
				len(items))
		}
		p.Name = items[0]
		if len(items) == 2 {
			p.Second = items[1]
		}
		return nil
	}
	return errors.Newf("line %d: expected a name or a [name, alias] pair", node.Line)
}

func (p NamePair) args() interface{} {
	if p.Second == "" {
		return p.Name
	}
	return sqlpuzzle.As(p.Name, p.Second)
}

type TableEntry struct {
	Table string      `yaml:"table"`
	Alias string      `yaml:"alias"`
	Joins []JoinEntry `yaml:"joins"`
}

type JoinEntry struct {
	// inner (default), left or right.
	Kind  string     `yaml:"kind"`
	Table string     `yaml:"table"`
	Alias string     `yaml:"alias"`
	On    [][]string `yaml:"on"`
	Raw   string     `yaml:"raw"`
}

type ConditionEntry struct {
	Column   string      `yaml:"column"`
	Value    interface{} `yaml:"value"`
	Relation string      `yaml:"relation"`
	Raw      string      `yaml:"raw"`
}

// The containers built from a document.
type Fragments struct {
	Columns *sqlpuzzle.Columns
	Tables  *sqlpuzzle.Tables
	Where   *sqlpuzzle.Conditions
	OrderBy *sqlpuzzle.OrderBy
}

func ParseDocument(r io.Reader) (*Document, error) {
	doc := &Document{}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(doc); err != nil && err != io.EOF {
		return nil, errors.Wrap(err, "Failed to parse fragment document")
	}
	return doc, nil
}

// Builds the containers through the public builder calls.
func (d *Document) Build() (*Fragments, error) {
	f := &Fragments{
		Columns: sqlpuzzle.NewColumns(),
		Tables:  sqlpuzzle.NewTables(),
		Where:   sqlpuzzle.NewConditions(),
		OrderBy: sqlpuzzle.NewOrderBy(),
	}

	for _, column := range d.Columns {
		if err := f.Columns.Columns(column.args()); err != nil {
			return nil, errors.Wrapf(err, "column %q", column.Name)
		}
	}

	for _, table := range d.Tables {
		if err := buildTable(f.Tables, table); err != nil {
			return nil, errors.Wrapf(err, "table %q", table.Table)
		}
	}

	for i, cond := range d.Where {
		if err := buildCondition(f.Where, cond); err != nil {
			return nil, errors.Wrapf(err, "where entry %d", i)
		}
	}

	for _, order := range d.OrderBy {
		if err := f.OrderBy.OrderBy(order.args()); err != nil {
			return nil, errors.Wrapf(err, "order by %q", order.Name)
		}
	}
	return f, nil
}

func buildTable(tables *sqlpuzzle.Tables, entry TableEntry) error {
	if err := tables.Set(NamePair{entry.Table, entry.Alias}.args()); err != nil {
		return err
	}

	for _, j := range entry.Joins {
		target := NamePair{j.Table, j.Alias}.args()
		var err error
		switch strings.ToLower(j.Kind) {
		case "", "inner":
			err = tables.InnerJoin(target)
		case "left":
			err = tables.LeftJoin(target)
		case "right":
			err = tables.RightJoin(target)
		default:
			err = errors.Newf("unknown join kind %q", j.Kind)
		}
		if err != nil {
			return err
		}

		for _, on := range j.On {
			args := make([]interface{}, len(on))
			for i, ref := range on {
				args[i] = ref
			}
			if err := tables.On(args...); err != nil {
				return errors.Wrapf(err, "join %q", j.Table)
			}
		}
		if j.Raw != "" {
			if err := tables.On(sqlpuzzle.Raw(j.Raw)); err != nil {
				return err
			}
		}
	}
	return nil
}

func buildCondition(where *sqlpuzzle.Conditions, entry ConditionEntry) error {
	if entry.Raw != "" {
		if entry.Column != "" {
			return errors.New("raw conditions can't have a column")
		}
		return where.Where(sqlpuzzle.Raw(entry.Raw))
	}

	var relation sqlpuzzle.Relation
	if entry.Relation != "" {
		var err error
		relation, err = sqlpuzzle.ParseRelation(entry.Relation)
		if err != nil {
			return err
		}
	}
	return where.Where(entry.Column, entry.Value, relation)
}

// Renders "SELECT <columns> FROM <tables>[ WHERE ...][ ORDER BY ...]".
func (f *Fragments) Select(r sqlpuzzle.Renderer) (string, error) {
	if !f.Tables.IsSet() {
		return "", errors.New("select needs at least one table")
	}

	buf := &bytes.Buffer{}
	_, _ = buf.WriteString("SELECT ")
	if err := f.Columns.SerializeSql(r, buf); err != nil {
		return "", err
	}
	_, _ = buf.WriteString(" FROM ")
	if err := f.Tables.SerializeSql(r, buf); err != nil {
		return "", err
	}
	if f.Where.IsSet() {
		_, _ = buf.WriteString(" WHERE ")
		if err := f.Where.SerializeSql(r, buf); err != nil {
			return "", err
		}
	}
	if f.OrderBy.IsSet() {
		_ = buf.WriteByte(' ')
		if err := f.OrderBy.SerializeSql(r, buf); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

// Renders one "clause: text" line per set container.
func (f *Fragments) Clauses(r sqlpuzzle.Renderer) ([]string, error) {
	clauses := []struct {
		name   string
		isSet  bool
		clause sqlpuzzle.Clause
	}{
		{"columns", f.Columns.IsSet(), f.Columns},
		{"tables", f.Tables.IsSet(), f.Tables},
		{"where", f.Where.IsSet(), f.Where},
		{"order_by", f.OrderBy.IsSet(), f.OrderBy},
	}

	var lines []string
	for _, c := range clauses {
		if !c.isSet {
			continue
		}
		buf := &bytes.Buffer{}
		if err := c.clause.SerializeSql(r, buf); err != nil {
			return nil, errors.Wrapf(err, "rendering %s", c.name)
		}
		lines = append(lines, c.name+": "+buf.String())
	}
	return lines, nil
}
