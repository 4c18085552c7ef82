package di

import (
	"fmt"
	"reflect"

	apperrors "github.com/kbukum/servicebox/errors"
)

// Schema is the fixed set of services a container may hold, in declaration
// order, with the value type of each.
type Schema struct {
	keys  []ServiceKey
	index map[string]int
}

// NewSchema builds a schema from keys. Names must be non-empty and unique.
func NewSchema(keys ...ServiceKey) (*Schema, error) {
	s := &Schema{
		keys:  make([]ServiceKey, 0, len(keys)),
		index: make(map[string]int, len(keys)),
	}
	for _, key := range keys {
		name := key.Name()
		if name == "" {
			return nil, apperrors.InvalidSchema("empty service name")
		}
		if _, dup := s.index[name]; dup {
			return nil, apperrors.InvalidSchema(fmt.Sprintf("duplicate service %q", name))
		}
		s.index[name] = len(s.keys)
		s.keys = append(s.keys, key)
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on an invalid schema.
func MustSchema(keys ...ServiceKey) *Schema {
	s, err := NewSchema(keys...)
	if err != nil {
		panic(err)
	}
	return s
}

// Names returns the service names in declaration order.
func (s *Schema) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, len(s.keys))
	for i, key := range s.keys {
		names[i] = key.Name()
	}
	return names
}

// Has reports whether name belongs to the schema.
func (s *Schema) Has(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// TypeOf returns the value type declared for name.
func (s *Schema) TypeOf(name string) (reflect.Type, bool) {
	if s == nil {
		return nil, false
	}
	i, ok := s.index[name]
	if !ok {
		return nil, false
	}
	return s.keys[i].Type(), true
}

// Len returns the number of services in the schema.
func (s *Schema) Len() int {
	if s == nil {
		return 0
	}
	return len(s.keys)
}
