package repa

import "errors"

var (
	// ErrInvalidTokenSpec reports a pattern token that matched a
	// zero-length prefix. A spec like that would submit alternatives of
	// length zero forever; it is a configuration fault, not a parse
	// failure, and is detected lazily on the first zero-length match.
	ErrInvalidTokenSpec = errors.New("invalid token spec")

	// ErrInvalidStoreMode reports an unrecognized store mode in the token
	// table configuration.
	ErrInvalidStoreMode = errors.New("invalid store mode")
)
