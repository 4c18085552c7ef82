package di

import "sort"

// Selector marks which services a projection should resolve.
// Missing and false entries are left unresolved.
type Selector map[string]bool

// Select builds a selector enabling the given keys.
func Select(keys ...ServiceKey) Selector {
	s := make(Selector, len(keys))
	for _, key := range keys {
		s[key.Name()] = true
	}
	return s
}

// Selected returns the enabled names, sorted.
func (s Selector) Selected() []string {
	names := make([]string, 0, len(s))
	for name, on := range s {
		if on {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

type absent struct{}

func (absent) String() string { return "<absent>" }

// Absent is the marker held by projection entries that were not selected.
var Absent any = absent{}

// Projection is a reduced view of a container: every known name is present,
// selected names hold their resolved instance and the rest hold Absent.
type Projection struct {
	names  []string
	values map[string]any
}

func newProjection(names []string) *Projection {
	p := &Projection{
		names:  names,
		values: make(map[string]any, len(names)),
	}
	for _, name := range names {
		p.values[name] = Absent
	}
	return p
}

// Names returns every name in the projection, selected or not.
func (p *Projection) Names() []string {
	return append([]string(nil), p.names...)
}

// Get returns the resolved instance for name. The boolean is false when the
// name was not selected or is not part of the projection.
func (p *Projection) Get(name string) (any, bool) {
	v, ok := p.values[name]
	if !ok {
		return nil, false
	}
	if _, isAbsent := v.(absent); isAbsent {
		return nil, false
	}
	return v, true
}

// IsAbsent reports whether name is part of the projection but unselected.
func (p *Projection) IsAbsent(name string) bool {
	v, ok := p.values[name]
	if !ok {
		return false
	}
	_, isAbsent := v.(absent)
	return isAbsent
}

// Map returns a copy of the projection; unselected names map to Absent.
func (p *Projection) Map() map[string]any {
	m := make(map[string]any, len(p.values))
	for k, v := range p.values {
		m[k] = v
	}
	return m
}

// Lookup is the typed form of Projection.Get.
func Lookup[T any](p *Projection, key Key[T]) (T, bool) {
	var zero T
	v, ok := p.Get(key.Name())
	if !ok {
		return zero, false
	}
	if v == nil {
		return zero, true
	}
	result, ok := v.(T)
	if !ok {
		return zero, false
	}
	return result, true
}
