// A library for assembling sql fragments programmatically.
//
// The package models the pieces of a statement (tables and their joins,
// join conditions, filter conditions, projected columns and ordering) as
// builder containers.  Containers are mutated through builder calls and
// rendered on demand; nothing is cached, so the rendered text always
// reflects the current state.
//
// Adding the same fragment twice is a no-op: conditions, columns and tables
// are only appended when an equal fragment is not already present.  Raw
// fragments are always appended verbatim.
//
// Joins on the same table are minimized when rendered.  Joins that share
// the same target table and the same ON conditions collapse into one; when
// any of them is an inner join the result is an inner join, otherwise one
// join per distinct join type is kept (a LEFT and a RIGHT join on the same
// edge stay separate).
//
// Identifier quoting and literal escaping are delegated to a Renderer.  The
// default renderers generate MySQL (backquote) or PostgreSQL/SQLite (double
// quote) identifiers.
//
// Known limitations:
//  - the package only builds fragments; composing full statements is left
//    to the caller
//  - join conditions are always column equality ("a = b")
//  - the library never executes anything
package sqlpuzzle
