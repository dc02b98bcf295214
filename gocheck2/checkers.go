// Extensions to the go-check unittest framework.
//
// NOTE: see https://github.com/go-check/check/pull/6 for reasons why these
// checkers live here.
package gocheck2

import (
	"reflect"

	. "gopkg.in/check.v1"
)

// -----------------------------------------------------------------------
// IsTrue / IsFalse checker.

type isBoolValueChecker struct {
	*CheckerInfo
	expected bool
}

func (checker *isBoolValueChecker) Check(
	params []interface{},
	names []string) (
	result bool,
	error string) {

	obtained, ok := params[0].(bool)
	if !ok {
		return false, "Argument to " + checker.Name + " must be bool"
	}

	return obtained == checker.expected, ""
}

// The IsTrue checker verifies that the obtained value is true.
//
// For example:
//
//     c.Assert(value, IsTrue)
//
var IsTrue Checker = &isBoolValueChecker{
	&CheckerInfo{Name: "IsTrue", Params: []string{"obtained"}},
	true,
}

// The IsFalse checker verifies that the obtained value is false.
//
// For example:
//
//     c.Assert(value, IsFalse)
//
var IsFalse Checker = &isBoolValueChecker{
	&CheckerInfo{Name: "IsFalse", Params: []string{"obtained"}},
	false,
}

// -----------------------------------------------------------------------
// Satisfies checker.

type satisfiesChecker struct {
	*CheckerInfo
}

func (checker *satisfiesChecker) Check(
	params []interface{},
	names []string) (
	result bool,
	error string) {

	predicate := reflect.ValueOf(params[1])
	if predicate.Kind() != reflect.Func ||
		predicate.Type().NumIn() != 1 ||
		predicate.Type().NumOut() != 1 ||
		predicate.Type().Out(0).Kind() != reflect.Bool {

		return false, "Second argument to Satisfies must be func(T) bool"
	}

	argType := predicate.Type().In(0)
	var arg reflect.Value
	if params[0] == nil {
		switch argType.Kind() {
		case reflect.Interface, reflect.Ptr, reflect.Map, reflect.Slice,
			reflect.Func, reflect.Chan:
			arg = reflect.Zero(argType)
		default:
			return false, "Obtained value is nil"
		}
	} else {
		arg = reflect.ValueOf(params[0])
		if !arg.Type().AssignableTo(argType) {
			return false, "Obtained value is not assignable to the predicate argument"
		}
	}

	return predicate.Call([]reflect.Value{arg})[0].Bool(), ""
}

// The Satisfies checker verifies that the obtained value satisfies the given
// predicate.
//
// For example:
//
//     c.Assert(err, Satisfies, IsInvalidQuery)
//
var Satisfies Checker = &satisfiesChecker{
	&CheckerInfo{Name: "Satisfies", Params: []string{"obtained", "predicate"}},
}
