package convert

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/signadot/tony-format/go-xform/debug"
	"github.com/signadot/tony-format/go-xform/tag"
)

// Registry maps identifiers and Go types to bindings.
//
// A registry is populated before use and then frozen; NewContext freezes the
// registry it is given. A frozen registry is read-only and may be shared by
// any number of concurrent conversion passes.
type Registry struct {
	mu     sync.RWMutex
	frozen atomic.Bool

	// Map of tag -> binding
	byTag map[string]Binding

	// Map of concrete Go type -> binding
	byType map[reflect.Type]Binding

	// interface types in registration order, for family fallback
	families []family
}

type family struct {
	iface   reflect.Type
	binding Binding
}

// NewRegistry creates a registry holding bindings.
func NewRegistry(bindings ...Binding) (*Registry, error) {
	reg := &Registry{
		byTag:  make(map[string]Binding),
		byType: make(map[reflect.Type]Binding),
	}
	for _, b := range bindings {
		if err := reg.Register(b); err != nil {
			return nil, err
		}
	}
	return reg, nil
}

// Register adds a binding. It fails if the registry is frozen, if the tag is
// already registered or if one of the binding's types is already produced by
// another binding.
func (r *Registry) Register(b Binding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.frozen.Load() {
		return fmt.Errorf("%w: cannot register %q", ErrFrozen, b.Tag())
	}
	id := b.Tag()
	if err := tag.Check(id); err != nil {
		return err
	}
	if _, exists := r.byTag[id]; exists {
		return fmt.Errorf("%w: %q already registered", ErrDuplicateTag, id)
	}
	var fams []family
	for _, ty := range b.Types() {
		if ty.Kind() == reflect.Interface {
			fams = append(fams, family{iface: ty, binding: b})
			continue
		}
		if existing, exists := r.byType[ty]; exists {
			return fmt.Errorf("%w: %s already produced by %q", ErrDuplicateType, ty, existing.Tag())
		}
	}
	for _, ty := range b.Types() {
		if ty.Kind() != reflect.Interface {
			r.byType[ty] = b
		}
	}
	r.byTag[id] = b
	r.families = append(r.families, fams...)
	if debug.Registry() {
		debug.Logf("registered %q for %v\n", id, b.Types())
	}
	return nil
}

// Freeze makes the registry read-only. It is idempotent.
func (r *Registry) Freeze() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frozen.Store(true)
}

func (r *Registry) Frozen() bool {
	return r.frozen.Load()
}

// rlock takes the read lock while the registry may still change.
func (r *Registry) rlock() func() {
	if r.frozen.Load() {
		return func() {}
	}
	r.mu.RLock()
	return r.mu.RUnlock
}

// ResolveTag returns the binding registered for id.
func (r *Registry) ResolveTag(id string) (Binding, error) {
	defer r.rlock()()
	b, ok := r.byTag[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTag, id)
	}
	return b, nil
}

// ResolveType returns the binding producing ty. An exact registration wins
// over a family registration; among families the first registered wins.
func (r *Registry) ResolveType(ty reflect.Type) (Binding, error) {
	if ty == nil {
		return nil, fmt.Errorf("%w: nil", ErrUnregisteredType)
	}
	defer r.rlock()()
	if b, ok := r.byType[ty]; ok {
		return b, nil
	}
	for _, f := range r.families {
		if ty.Implements(f.iface) {
			return f.binding, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnregisteredType, ty)
}

// Tags returns the registered identifiers, sorted.
func (r *Registry) Tags() []string {
	defer r.rlock()()
	return slices.Sorted(maps.Keys(r.byTag))
}

// Len returns the number of registered bindings.
func (r *Registry) Len() int {
	defer r.rlock()()
	return len(r.byTag)
}
