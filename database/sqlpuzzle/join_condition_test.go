package sqlpuzzle

import (
	gc "gopkg.in/check.v1"

	. "github.com/dropbox/sqlpuzzle/gocheck2"
)

type JoinConditionSuite struct {
}

var _ = gc.Suite(&JoinConditionSuite{})

func (s *JoinConditionSuite) TestRender(c *gc.C) {
	cond, err := NewJoinCondition("user.country_id", "country.id")
	c.Assert(err, gc.IsNil)
	c.Assert(render(c, cond), gc.Equals, "`user`.`country_id` = `country`.`id`")

	swapped, err := NewJoinCondition("country.id", "user.country_id")
	c.Assert(err, gc.IsNil)
	c.Assert(render(c, swapped), gc.Equals, "`country`.`id` = `user`.`country_id`")
}

func (s *JoinConditionSuite) TestSymmetricEquality(c *gc.C) {
	ab, _ := NewJoinCondition("a.x", "b.y")
	ba, _ := NewJoinCondition("b.y", "a.x")
	ab2, _ := NewJoinCondition("a.x", "b.y")
	ac, _ := NewJoinCondition("a.x", "c.y")

	c.Assert(ab.Equal(ab), IsTrue)
	c.Assert(ab.Equal(ab2), IsTrue)
	c.Assert(ab.Equal(ba), IsTrue)
	c.Assert(ba.Equal(ab), IsTrue)
	c.Assert(ab.Equal(ac), IsFalse)
	c.Assert(ab.Equal(nil), IsFalse)
}

func (s *JoinConditionSuite) TestInvalid(c *gc.C) {
	_, err := NewJoinCondition("", "b")
	c.Assert(IsInvalidArgument(err), IsTrue)
	_, err = NewJoinCondition("a", "")
	c.Assert(IsInvalidArgument(err), IsTrue)
}

func (s *JoinConditionSuite) TestOn(c *gc.C) {
	ons := NewJoinConditions()
	c.Assert(ons.IsSet(), IsFalse)

	c.Assert(ons.On("a.id", "b.a_id"), gc.IsNil)
	c.Assert(ons.On("b.a_id", "a.id"), gc.IsNil)
	c.Assert(ons.IsSet(), IsTrue)
	c.Assert(render(c, ons), gc.Equals, "`a`.`id` = `b`.`a_id`")

	c.Assert(ons.On(map[string]string{"a.kind": "b.kind"}), gc.IsNil)
	c.Assert(ons.On(Raw("b.deleted = 0")), gc.IsNil)
	c.Assert(
		render(c, ons),
		gc.Equals,
		"`a`.`id` = `b`.`a_id` AND `a`.`kind` = `b`.`kind` AND b.deleted = 0")
}

func (s *JoinConditionSuite) TestOnInvalid(c *gc.C) {
	ons := NewJoinConditions()
	for _, args := range [][]interface{}{
		{"a.id"},
		{"a.id", 5},
		{"a.id", "b.id", "c.id"},
		{Raw("x"), "y"},
	} {
		err := ons.On(args...)
		c.Assert(err, gc.NotNil, gc.Commentf("args %v", args))
		c.Assert(IsInvalidArgument(err), IsTrue)
	}
	c.Assert(ons.IsSet(), IsFalse)
}

func (s *JoinConditionSuite) TestEqualIgnoresOrderAndDirection(c *gc.C) {
	a := NewJoinConditions()
	b := NewJoinConditions()
	c.Assert(a.On("t1.id", "t2.id"), gc.IsNil)
	c.Assert(a.On("t1.kind", "t2.kind"), gc.IsNil)
	c.Assert(b.On("t2.kind", "t1.kind"), gc.IsNil)
	c.Assert(b.On("t2.id", "t1.id"), gc.IsNil)
	c.Assert(a.Equal(b), IsTrue)

	c.Assert(b.On("t1.x", "t2.x"), gc.IsNil)
	c.Assert(a.Equal(b), IsFalse)
}
