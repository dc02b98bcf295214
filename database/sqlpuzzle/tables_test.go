package sqlpuzzle

import (
	"bytes"

	gc "gopkg.in/check.v1"

	. "github.com/dropbox/sqlpuzzle/gocheck2"
)

type TablesSuite struct {
	tables *Tables
}

var _ = gc.Suite(&TablesSuite{})

func (s *TablesSuite) SetUpTest(c *gc.C) {
	s.tables = NewTables()
}

func (s *TablesSuite) TestSimple(c *gc.C) {
	c.Assert(s.tables.Set("table"), gc.IsNil)
	c.Assert(render(c, s.tables), gc.Equals, "`table`")
}

func (s *TablesSuite) TestSimpleAs(c *gc.C) {
	c.Assert(s.tables.Set(As("table", "t1")), gc.IsNil)
	c.Assert(render(c, s.tables), gc.Equals, "`table` AS `t1`")
}

func (s *TablesSuite) TestMoreTables(c *gc.C) {
	c.Assert(s.tables.Set("user", "country"), gc.IsNil)
	c.Assert(render(c, s.tables), gc.Equals, "`user`, `country`")
}

func (s *TablesSuite) TestMoreTablesWithAs(c *gc.C) {
	c.Assert(s.tables.Set(As("user", "u"), []string{"country", "c"}), gc.IsNil)
	c.Assert(render(c, s.tables), gc.Equals, "`user` AS `u`, `country` AS `c`")
}

func (s *TablesSuite) TestSetSkipsEmptyAndDuplicates(c *gc.C) {
	c.Assert(s.tables.Set("user", "", nil, "user"), gc.IsNil)
	c.Assert(s.tables.Set("user"), gc.IsNil)
	c.Assert(s.tables.Set(), gc.IsNil)
	c.Assert(render(c, s.tables), gc.Equals, "`user`")

	c.Assert(s.tables.Set(As("user", "u")), gc.IsNil)
	c.Assert(render(c, s.tables), gc.Equals, "`user`, `user` AS `u`")
}

func (s *TablesSuite) TestSetInvalid(c *gc.C) {
	err := s.tables.Set("user", 42)
	c.Assert(err, gc.NotNil)
	c.Assert(IsInvalidArgument(err), IsTrue)
	c.Assert(s.tables.IsSet(), IsFalse)
}

func (s *TablesSuite) TestSimpleInnerJoin(c *gc.C) {
	c.Assert(s.tables.Set("user"), gc.IsNil)
	c.Assert(s.tables.InnerJoin("country"), gc.IsNil)
	c.Assert(s.tables.On("user.country_id", "country.id"), gc.IsNil)
	c.Assert(
		render(c, s.tables),
		gc.Equals,
		"`user` JOIN `country` ON (`user`.`country_id` = `country`.`id`)")
}

func (s *TablesSuite) TestSimpleAsInnerJoin(c *gc.C) {
	c.Assert(s.tables.Set(As("user", "u")), gc.IsNil)
	c.Assert(s.tables.InnerJoin(As("country", "c")), gc.IsNil)
	c.Assert(s.tables.On("u.country_id", "c.id"), gc.IsNil)
	c.Assert(
		render(c, s.tables),
		gc.Equals,
		"`user` AS `u` JOIN `country` AS `c` ON (`u`.`country_id` = `c`.`id`)")
}

func (s *TablesSuite) TestSimpleMoreInnerJoins(c *gc.C) {
	c.Assert(s.tables.Set("user"), gc.IsNil)
	c.Assert(s.tables.InnerJoin("country"), gc.IsNil)
	c.Assert(s.tables.On("user.country_id", "country.id"), gc.IsNil)
	c.Assert(s.tables.InnerJoin("role"), gc.IsNil)
	c.Assert(s.tables.On("user.role_id", "role.id"), gc.IsNil)
	c.Assert(
		render(c, s.tables),
		gc.Equals,
		"`user` JOIN `country` ON (`user`.`country_id` = `country`.`id`) "+
			"JOIN `role` ON (`user`.`role_id` = `role`.`id`)")
}

func (s *TablesSuite) TestLeftJoin(c *gc.C) {
	c.Assert(s.tables.Set("user"), gc.IsNil)
	c.Assert(s.tables.LeftJoin(As("user", "parent")), gc.IsNil)
	c.Assert(s.tables.On("user.parent_id", "parent.id"), gc.IsNil)
	c.Assert(
		render(c, s.tables),
		gc.Equals,
		"`user` LEFT JOIN `user` AS `parent` ON (`user`.`parent_id` = `parent`.`id`)")
}

func (s *TablesSuite) TestRightJoin(c *gc.C) {
	c.Assert(s.tables.Set("t1"), gc.IsNil)
	c.Assert(s.tables.RightJoin("t2"), gc.IsNil)
	c.Assert(s.tables.On("t1.id", "t2.id"), gc.IsNil)
	c.Assert(render(c, s.tables), gc.Equals, "`t1` RIGHT JOIN `t2` ON (`t1`.`id` = `t2`.`id`)")
}

func (s *TablesSuite) TestLeftAndInnerIsInner(c *gc.C) {
	c.Assert(s.tables.Set("t1"), gc.IsNil)
	c.Assert(s.tables.LeftJoin("t2"), gc.IsNil)
	c.Assert(s.tables.On("t1.id", "t2.id"), gc.IsNil)
	c.Assert(s.tables.Join("t2"), gc.IsNil)
	c.Assert(s.tables.On("t1.id", "t2.id"), gc.IsNil)
	c.Assert(render(c, s.tables), gc.Equals, "`t1` JOIN `t2` ON (`t1`.`id` = `t2`.`id`)")
}

func (s *TablesSuite) TestJoinsTargetLastTable(c *gc.C) {
	c.Assert(s.tables.Set("a", "b"), gc.IsNil)
	c.Assert(s.tables.Join("c"), gc.IsNil)
	c.Assert(s.tables.On("b.id", "c.b_id"), gc.IsNil)
	c.Assert(
		render(c, s.tables),
		gc.Equals,
		"`a`, `b` JOIN `c` ON (`b`.`id` = `c`.`b_id`)")
}

func (s *TablesSuite) TestIsSet(c *gc.C) {
	c.Assert(s.tables.IsSet(), IsFalse)
	c.Assert(s.tables.Set("table"), gc.IsNil)
	c.Assert(s.tables.IsSet(), IsTrue)
}

func (s *TablesSuite) TestIsSimple(c *gc.C) {
	c.Assert(s.tables.IsSimple(), IsFalse)
	c.Assert(s.tables.Set("table"), gc.IsNil)
	c.Assert(s.tables.IsSimple(), IsTrue)
	c.Assert(s.tables.Join("table2"), gc.IsNil)
	c.Assert(s.tables.On("id", "id2"), gc.IsNil)
	c.Assert(s.tables.IsSimple(), IsFalse)

	other := NewTables()
	c.Assert(other.Set("a", "b"), gc.IsNil)
	c.Assert(other.IsSimple(), IsFalse)
}

func (s *TablesSuite) TestJoinWithoutTable(c *gc.C) {
	for _, call := range []func() error{
		func() error { return s.tables.Join("t") },
		func() error { return s.tables.InnerJoin("t") },
		func() error { return s.tables.LeftJoin("t") },
		func() error { return s.tables.RightJoin("t") },
		func() error { return s.tables.On("a.id", "b.id") },
	} {
		err := call()
		c.Assert(err, gc.NotNil)
		c.Assert(err, Satisfies, IsInvalidQuery)
	}
}

func (s *TablesSuite) TestJoinWithoutOn(c *gc.C) {
	c.Assert(s.tables.Set("user"), gc.IsNil)
	c.Assert(s.tables.Join("country"), gc.IsNil)

	_, err := s.tables.String(MySQL)
	c.Assert(err, gc.NotNil)
	c.Assert(err, Satisfies, IsInvalidQuery)
}

func (s *TablesSuite) TestPostgres(c *gc.C) {
	c.Assert(s.tables.Set(As("user", "u")), gc.IsNil)
	c.Assert(s.tables.LeftJoin("country"), gc.IsNil)
	c.Assert(s.tables.On("u.country_id", "country.id"), gc.IsNil)

	buf := &bytes.Buffer{}
	err := s.tables.SerializeSql(NewRenderer(NewPostgresDatabase()), buf)
	c.Assert(err, gc.IsNil)
	c.Assert(
		buf.String(),
		gc.Equals,
		`"user" AS "u" LEFT JOIN "country" ON ("u"."country_id" = "country"."id")`)
}
