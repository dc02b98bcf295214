package sqlpuzzle

import (
	"bytes"

	gc "gopkg.in/check.v1"

	. "github.com/dropbox/sqlpuzzle/gocheck2"
)

type TableSuite struct {
}

var _ = gc.Suite(&TableSuite{})

func newTestTable(c *gc.C, name interface{}, alias string) *Table {
	t, err := NewTable(name, alias)
	c.Assert(err, gc.IsNil)
	return t
}

func (s *TableSuite) TestSimple(c *gc.C) {
	t := newTestTable(c, "user", "")
	c.Assert(t.IsSimple(), IsTrue)
	c.Assert(render(c, t), gc.Equals, "`user`")

	t = newTestTable(c, "db.user", "u")
	c.Assert(render(c, t), gc.Equals, "`db`.`user` AS `u`")
}

func (s *TableSuite) TestSubqueryTable(c *gc.C) {
	t := newTestTable(c, &testSubquery{"SELECT * FROM user"}, "u")
	c.Assert(render(c, t), gc.Equals, "(SELECT * FROM user) AS `u`")
	c.Assert(t.Name(), gc.Equals, "")
	c.Assert(t.Alias(), gc.Equals, "u")
}

func (s *TableSuite) TestInvalidName(c *gc.C) {
	for _, name := range []interface{}{"", nil, 3} {
		_, err := NewTable(name, "")
		c.Assert(err, gc.NotNil)
		c.Assert(IsInvalidArgument(err), IsTrue)
	}
}

func (s *TableSuite) TestJoin(c *gc.C) {
	t := newTestTable(c, "user", "")
	c.Assert(t.Join("country", INNER_JOIN), gc.IsNil)
	c.Assert(t.On("user.country_id", "country.id"), gc.IsNil)
	c.Assert(t.IsSimple(), IsFalse)
	c.Assert(
		render(c, t),
		gc.Equals,
		"`user` JOIN `country` ON (`user`.`country_id` = `country`.`id`)")
}

func (s *TableSuite) TestJoinTypes(c *gc.C) {
	c.Assert(INNER_JOIN.String(), gc.Equals, "JOIN")
	c.Assert(LEFT_JOIN.String(), gc.Equals, "LEFT JOIN")
	c.Assert(RIGHT_JOIN.String(), gc.Equals, "RIGHT JOIN")

	t := newTestTable(c, "user", "")
	err := t.Join("country", JoinType(17))
	c.Assert(IsInvalidArgument(err), IsTrue)
	c.Assert(t.IsSimple(), IsTrue)
}

func (s *TableSuite) TestJoinWithAlias(c *gc.C) {
	t := newTestTable(c, "user", "")
	c.Assert(t.Join(As("user", "parent"), LEFT_JOIN), gc.IsNil)
	c.Assert(t.On("user.parent_id", "parent.id"), gc.IsNil)
	c.Assert(
		render(c, t),
		gc.Equals,
		"`user` LEFT JOIN `user` AS `parent` ON (`user`.`parent_id` = `parent`.`id`)")
}

func (s *TableSuite) TestJoinSubquery(c *gc.C) {
	t := newTestTable(c, "user", "")
	c.Assert(t.Join(As(&testSubquery{"SELECT 1 AS id"}, "s"), INNER_JOIN), gc.IsNil)
	c.Assert(t.On("user.id", "s.id"), gc.IsNil)
	c.Assert(
		render(c, t),
		gc.Equals,
		"`user` JOIN (SELECT 1 AS id) AS `s` ON (`user`.`id` = `s`.`id`)")
}

func (s *TableSuite) TestOnWithoutJoin(c *gc.C) {
	t := newTestTable(c, "user", "")
	err := t.On("a", "b")
	c.Assert(err, gc.NotNil)
	c.Assert(err, Satisfies, IsInvalidQuery)
}

func (s *TableSuite) TestJoinWithoutOn(c *gc.C) {
	t := newTestTable(c, "user", "")
	c.Assert(t.Join("country", INNER_JOIN), gc.IsNil)

	err := t.SerializeSql(MySQL, &bytes.Buffer{})
	c.Assert(err, gc.NotNil)
	c.Assert(err, Satisfies, IsInvalidQuery)

	// The check covers every join, not just the last one.
	c.Assert(t.Join("role", INNER_JOIN), gc.IsNil)
	c.Assert(t.On("user.role_id", "role.id"), gc.IsNil)
	err = t.SerializeSql(MySQL, &bytes.Buffer{})
	c.Assert(err, Satisfies, IsInvalidQuery)
}

func (s *TableSuite) TestEqual(c *gc.C) {
	a := newTestTable(c, "user", "u")
	b := newTestTable(c, "user", "u")
	c.Assert(a.Equal(b), IsTrue)
	c.Assert(a.Equal(newTestTable(c, "user", "")), IsFalse)
	c.Assert(a.Equal(newTestTable(c, "users", "u")), IsFalse)
	c.Assert(a.Equal(nil), IsFalse)

	c.Assert(a.Join("country", INNER_JOIN), gc.IsNil)
	c.Assert(a.On("u.country_id", "country.id"), gc.IsNil)
	c.Assert(a.Equal(b), IsFalse)

	c.Assert(b.Join("country", INNER_JOIN), gc.IsNil)
	c.Assert(b.On("country.id", "u.country_id"), gc.IsNil)
	c.Assert(a.Equal(b), IsTrue)

	sub := &testSubquery{"SELECT 1"}
	c.Assert(
		newTestTable(c, sub, "s").Equal(newTestTable(c, sub, "s")),
		IsTrue)
	c.Assert(
		newTestTable(c, sub, "s").Equal(newTestTable(c, &testSubquery{"SELECT 1"}, "s")),
		IsFalse)
}

type MinimizerSuite struct {
	table *Table
}

var _ = gc.Suite(&MinimizerSuite{})

func (s *MinimizerSuite) SetUpTest(c *gc.C) {
	s.table = newTestTable(c, "t1", "")
}

func (s *MinimizerSuite) join(c *gc.C, target interface{}, joinType JoinType, on ...interface{}) {
	c.Assert(s.table.Join(target, joinType), gc.IsNil)
	c.Assert(s.table.On(on...), gc.IsNil)
}

func (s *MinimizerSuite) TestLeftAndInnerIsInner(c *gc.C) {
	s.join(c, "t2", LEFT_JOIN, "t1.id", "t2.id")
	s.join(c, "t2", INNER_JOIN, "t1.id", "t2.id")
	c.Assert(render(c, s.table), gc.Equals, "`t1` JOIN `t2` ON (`t1`.`id` = `t2`.`id`)")
}

func (s *MinimizerSuite) TestRightAndInnerIsInner(c *gc.C) {
	s.join(c, "t2", RIGHT_JOIN, "t1.id", "t2.id")
	s.join(c, "t2", LEFT_JOIN, "t2.id", "t1.id")
	s.join(c, "t2", INNER_JOIN, "t1.id", "t2.id")
	c.Assert(render(c, s.table), gc.Equals, "`t1` JOIN `t2` ON (`t1`.`id` = `t2`.`id`)")
}

func (s *MinimizerSuite) TestInnerKeepsFirstMember(c *gc.C) {
	s.join(c, "t2", LEFT_JOIN, "t2.id", "t1.id")
	s.join(c, "t2", INNER_JOIN, "t1.id", "t2.id")
	c.Assert(render(c, s.table), gc.Equals, "`t1` JOIN `t2` ON (`t2`.`id` = `t1`.`id`)")
}

func (s *MinimizerSuite) TestTwoInnerCollapse(c *gc.C) {
	s.join(c, "t2", INNER_JOIN, "t1.id", "t2.id")
	s.join(c, "t2", INNER_JOIN, "t1.id", "t2.id")
	c.Assert(render(c, s.table), gc.Equals, "`t1` JOIN `t2` ON (`t1`.`id` = `t2`.`id`)")
}

func (s *MinimizerSuite) TestLeftAndRightStaySeparate(c *gc.C) {
	s.join(c, "t2", LEFT_JOIN, "t1.id", "t2.id")
	s.join(c, "t2", RIGHT_JOIN, "t1.id", "t2.id")
	c.Assert(
		render(c, s.table),
		gc.Equals,
		"`t1` LEFT JOIN `t2` ON (`t1`.`id` = `t2`.`id`) "+
			"RIGHT JOIN `t2` ON (`t1`.`id` = `t2`.`id`)")
}

func (s *MinimizerSuite) TestSameKindLeftCollapse(c *gc.C) {
	s.join(c, "t2", LEFT_JOIN, "t1.id", "t2.id")
	s.join(c, "t2", LEFT_JOIN, "t1.id", "t2.id")
	s.join(c, "t2", RIGHT_JOIN, "t1.id", "t2.id")
	s.join(c, "t2", LEFT_JOIN, "t1.id", "t2.id")
	c.Assert(
		render(c, s.table),
		gc.Equals,
		"`t1` LEFT JOIN `t2` ON (`t1`.`id` = `t2`.`id`) "+
			"RIGHT JOIN `t2` ON (`t1`.`id` = `t2`.`id`)")
}

func (s *MinimizerSuite) TestDifferentEdgesAreKept(c *gc.C) {
	s.join(c, "t2", LEFT_JOIN, "t1.id", "t2.id")
	s.join(c, "t3", INNER_JOIN, "t1.id", "t3.id")
	s.join(c, "t2", INNER_JOIN, "t1.other_id", "t2.id")
	s.join(c, As("t2", "x"), INNER_JOIN, "t1.id", "x.id")
	s.join(c, "t2", INNER_JOIN, "t1.id", "t2.id")
	c.Assert(
		render(c, s.table),
		gc.Equals,
		"`t1` JOIN `t2` ON (`t1`.`id` = `t2`.`id`) "+
			"JOIN `t3` ON (`t1`.`id` = `t3`.`id`) "+
			"JOIN `t2` ON (`t1`.`other_id` = `t2`.`id`) "+
			"JOIN `t2` AS `x` ON (`t1`.`id` = `x`.`id`)")
}

func (s *MinimizerSuite) TestRenderDoesNotMutate(c *gc.C) {
	s.join(c, "t2", LEFT_JOIN, "t1.id", "t2.id")
	s.join(c, "t2", INNER_JOIN, "t1.id", "t2.id")
	_ = render(c, s.table)

	c.Assert(len(s.table.joins), gc.Equals, 2)
	c.Assert(s.table.joins[0].joinType, gc.Equals, LEFT_JOIN)
	c.Assert(s.table.joins[1].joinType, gc.Equals, INNER_JOIN)
}
