// Package types provides the type registry consulted while analyzing column
// declarations and typing expressions.
//
// Types are interned by name: every lookup of the same name returns the same
// *Type, so types can be compared with ==. A registry is seeded with the
// built-in types by Prelude and is treated as read-only once analysis starts.
//
// Example usage:
//
//	reg := types.Prelude()
//	if t, ok := reg.Lookup("INTEGER"); ok {
//		fmt.Println(t) // integer
//	}
package types

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var (
	// Integer is the built-in signed integer type.
	Integer = &Type{Name: "integer"}

	// Boolean is the built-in boolean type.
	Boolean = &Type{Name: "boolean"}

	// Invalid marks the type of an operand whose construction already produced a
	// diagnostic. It is never registered and never resolvable by name.
	Invalid = &Type{Name: "invalid"}

	// ErrUnknownType is returned when an alias targets a name the registry does not know.
	ErrUnknownType = errors.New("unknown type")
)

type (
	// Type is a named, immutable type descriptor.
	Type struct {
		Name string
	}

	// Registry maps case-insensitive type names to interned types.
	Registry struct {
		types map[string]*Type
	}
)

// String returns the type's name.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.Name
}

// IsValid reports whether t is a real type rather than the Invalid marker.
func (t *Type) IsValid() bool {
	return t != nil && t != Invalid
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Type)}
}

// Prelude returns a registry seeded with the built-in types and their common
// aliases (int, bool).
func Prelude() *Registry {
	r := NewRegistry()
	r.Define(Integer.Name, Integer)
	r.Define(Boolean.Name, Boolean)
	r.types["int"] = Integer
	r.types["bool"] = Boolean
	return r
}

// Define registers t under name, replacing any previous entry.
func (r *Registry) Define(name string, t *Type) {
	r.types[normalize(name)] = t
}

// Alias makes alias resolve to the same type as target.
func (r *Registry) Alias(alias, target string) error {
	t, ok := r.Lookup(target)
	if !ok {
		return errors.Wrapf(ErrUnknownType, "cannot alias %s to %s", alias, target)
	}

	r.types[normalize(alias)] = t
	return nil
}

// Lookup resolves name to a type.
func (r *Registry) Lookup(name string) (*Type, bool) {
	t, ok := r.types[normalize(name)]
	return t, ok
}

// Names returns every registered name, aliases included, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
