package xformtest_test

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/signadot/tony-format/go-xform/convert"
	"github.com/signadot/tony-format/go-xform/ir"
	"github.com/signadot/tony-format/go-xform/model"
	"github.com/signadot/tony-format/go-xform/transform"
	"github.com/signadot/tony-format/go-xform/xformtest"
)

// recorder collects failures instead of failing the enclosing test.
type recorder struct {
	testing.TB
	mu     sync.Mutex
	errors []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) Fatalf(format string, args ...any) {
	r.Errorf(format, args...)
	runtime.Goexit()
}

func (r *recorder) Fatal(args ...any) {
	r.Errorf("%s", fmt.Sprint(args...))
	runtime.Goexit()
}

func record(t *testing.T, f func(tb testing.TB)) []string {
	r := &recorder{TB: t}
	done := make(chan struct{})
	go func() {
		defer close(done)
		f(r)
	}()
	<-done
	return r.errors
}

func TestRoundTripPasses(t *testing.T) {
	reg, err := transform.NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	called := false
	tree := map[string]any{
		"shift": model.NewShift(2),
		"note":  "plain values pass through",
		"count": int64(3),
	}
	back := xformtest.AssertRoundTrip(t, reg, tree, func(t testing.TB, back map[string]any) {
		called = true
		if back["note"] != "plain values pass through" {
			t.Errorf("note = %v", back["note"])
		}
	})
	if !called {
		t.Error("check not run")
	}
	if _, ok := back["shift"].(*model.Shift); !ok {
		t.Errorf("shift = %T", back["shift"])
	}
}

// lossy drops the fractional part of a shift on encode.
type lossy struct{}

func (lossy) Tag() string { return "test/lossy" }

func (lossy) Types() []reflect.Type {
	return []reflect.Type{reflect.TypeOf(&model.Shift{})}
}

func (lossy) Decode(ctx *convert.Context, node *ir.Node) (any, error) {
	f, err := convert.Float(node, "offset")
	if err != nil {
		return nil, err
	}
	return model.NewShift(f), nil
}

func (lossy) Encode(ctx *convert.Context, v any) (*ir.Node, error) {
	return ir.FromMap(map[string]*ir.Node{"offset": ir.FromInt(int64(v.(*model.Shift).Offset))}), nil
}

func TestRoundTripDetectsLoss(t *testing.T) {
	reg, err := convert.NewRegistry(lossy{})
	if err != nil {
		t.Fatal(err)
	}
	errs := record(t, func(tb testing.TB) {
		xformtest.AssertRoundTrip(tb, reg, map[string]any{"s": model.NewShift(2.5)})
	})
	if len(errs) != 1 || !strings.HasPrefix(errs[0], "s: not equal") {
		t.Errorf("errors = %q", errs)
	}
}

func TestRoundTripEncodeFailure(t *testing.T) {
	reg, err := transform.NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	errs := record(t, func(tb testing.TB) {
		xformtest.AssertRoundTrip(tb, reg, map[string]any{"x": struct{}{}})
		tb.Errorf("not reached")
	})
	if len(errs) != 1 || !strings.HasPrefix(errs[0], "encode:") {
		t.Errorf("errors = %q", errs)
	}
}
