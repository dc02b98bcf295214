package sqlpuzzle

import (
	"github.com/dropbox/sqlpuzzle/errors"
)

// Returned when a builder call is malformed: wrong argument shapes or
// types, or a relation that is incompatible with the value's category.
type InvalidArgumentError struct {
	errors.DropboxError
}

// Returned when the accumulated fragments do not form a valid query: a
// join or an ON condition without a table, or a join without ON conditions.
type InvalidQueryError struct {
	errors.DropboxError
}

func newInvalidArgument(format string, args ...interface{}) error {
	return InvalidArgumentError{DropboxError: errors.Newf(format, args...)}
}

func wrapInvalidArgument(err error, msg string) error {
	return InvalidArgumentError{DropboxError: errors.Wrap(err, msg)}
}

func newInvalidQuery(format string, args ...interface{}) error {
	return InvalidQueryError{DropboxError: errors.Newf(format, args...)}
}

// Returns true if err is, or wraps, an InvalidArgumentError.
func IsInvalidArgument(err error) bool {
	_, found := errors.FindWrappedError(
		err,
		func(curErr, topErr error) error {
			if _, ok := curErr.(InvalidArgumentError); ok {
				return curErr
			}
			return nil
		})
	return found
}

// Returns true if err is, or wraps, an InvalidQueryError.
func IsInvalidQuery(err error) bool {
	_, found := errors.FindWrappedError(
		err,
		func(curErr, topErr error) error {
			if _, ok := curErr.(InvalidQueryError); ok {
				return curErr
			}
			return nil
		})
	return found
}
