// Package types holds the registry of field types a schema may use.
// Each named type resolves to one of a small set of storage kinds that
// database drivers know how to map to columns.
package types

import "fmt"

// Kind is the storage representation of a type. Several named types may
// share a kind; Encrypted, for example, is stored as a string.
type Kind int

// Storage kinds.
const (
	KindUUID Kind = iota
	KindString
	KindDateTime
)

func (k Kind) String() string {
	switch k {
	case KindUUID:
		return "UUID"
	case KindString:
		return "String"
	case KindDateTime:
		return "DateTime"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Type is a named field type.
type Type interface {
	// Name is the identifier schemas use to reference the type.
	Name() string
	// Kind is the storage representation drivers map to a column type.
	Kind() Kind
}

type simpleType struct {
	name string
	kind Kind
}

func (t simpleType) Name() string { return t.name }
func (t simpleType) Kind() Kind   { return t.kind }

// Store maps type names to types. The zero value is not usable; use
// NewStore or NewEmptyStore.
type Store struct {
	inner map[string]Type
}

// NewStore returns a store with the built-in types registered: UUID,
// String, DateTime, and Encrypted.
func NewStore() *Store {
	s := NewEmptyStore()
	for _, t := range []Type{
		simpleType{name: "UUID", kind: KindUUID},
		simpleType{name: "String", kind: KindString},
		simpleType{name: "DateTime", kind: KindDateTime},
		simpleType{name: "Encrypted", kind: KindString},
	} {
		s.inner[t.Name()] = t
	}
	return s
}

// NewEmptyStore returns a store with no types registered.
func NewEmptyStore() *Store {
	return &Store{inner: make(map[string]Type)}
}

// Register adds a type under its name. Registering a name twice is an
// error.
func (s *Store) Register(t Type) error {
	if _, ok := s.inner[t.Name()]; ok {
		return fmt.Errorf("type %q already exists", t.Name())
	}
	s.inner[t.Name()] = t
	return nil
}

// Get looks up a type by name.
func (s *Store) Get(name string) (Type, bool) {
	t, ok := s.inner[name]
	return t, ok
}

// New returns a named type with the given storage kind, for host
// programs extending the built-in set.
func New(name string, kind Kind) Type {
	return simpleType{name: name, kind: kind}
}
