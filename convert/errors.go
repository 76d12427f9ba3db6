package convert

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateTag     = errors.New("duplicate tag")
	ErrDuplicateType    = errors.New("duplicate type")
	ErrFrozen           = errors.New("registry is frozen")
	ErrUnknownTag       = errors.New("unknown tag")
	ErrUnregisteredType = errors.New("unregistered type")
	ErrNotTagged        = errors.New("node is not tagged")
	ErrUnimplemented    = errors.New("unimplemented")
	ErrGraphTooDeep     = errors.New("graph too deep")
	ErrCycle            = errors.New("cyclic reference")
	ErrBadPayload       = errors.New("bad payload")
	ErrNotEqual         = errors.New("not equal")
)

// Error is returned by the dispatch functions. It locates the failure by
// tag and field path; Err is one of the sentinel errors above or wraps one.
type Error struct {
	Op   string // "decode" or "encode"
	Tag  string
	Path string // e.g. "$.rotation.inverse"
	Err  error
}

func (e *Error) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("%s error at %s (tag %q): %v", e.Op, e.Path, e.Tag, e.Err)
	}
	return fmt.Sprintf("%s error at %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
