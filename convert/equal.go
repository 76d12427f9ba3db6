package convert

import (
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Tolerance is the relative and absolute slack allowed between floats by
// the default comparison.
const Tolerance = 1e-12

var defaultCmpOpts = []cmp.Option{
	cmp.Exporter(func(reflect.Type) bool { return true }),
	cmpopts.EquateApprox(Tolerance, Tolerance),
	cmpopts.EquateNaNs(),
	cmpopts.EquateEmpty(),
}

// AssertEqual reports whether a and b are semantically equal, returning an
// error wrapping ErrNotEqual with a description of the difference if not.
// The binding registered for their type decides when it implements
// EqualAsserter; otherwise values are compared structurally with floats
// compared within Tolerance.
func (c *Context) AssertEqual(a, b any) error {
	if a == nil || b == nil {
		if a == nil && b == nil {
			return nil
		}
		return fmt.Errorf("%w: %v vs %v", ErrNotEqual, a, b)
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta != tb {
		return fmt.Errorf("%w: %s vs %s", ErrNotEqual, ta, tb)
	}
	if bind, err := c.reg.ResolveType(ta); err == nil {
		if ea, ok := bind.(EqualAsserter); ok {
			return ea.AssertEqual(c, a, b)
		}
	}
	return DefaultEqual(a, b)
}

// DefaultEqual compares a and b structurally, including unexported fields.
func DefaultEqual(a, b any, opts ...cmp.Option) error {
	opts = append(append([]cmp.Option{}, defaultCmpOpts...), opts...)
	if diff := cmp.Diff(a, b, opts...); diff != "" {
		return fmt.Errorf("%w (-a +b):\n%s", ErrNotEqual, diff)
	}
	return nil
}
