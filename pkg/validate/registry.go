package validate

import (
	"sort"
	"sync"

	"github.com/Molkars/aio/pkg/types"
)

// Model is a validated model: every field's type name is resolved to a
// concrete type from the store.
type Model struct {
	Name   string
	Fields []Field
}

// Field is a validated model field.
type Field struct {
	Name     string
	Type     types.Type
	Arg      *uint64
	Optional bool
}

// HasField reports whether the model has a field with the given name.
func (m *Model) HasField(name string) bool {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return true
		}
	}
	return false
}

// Field returns the named field.
func (m *Model) Field(name string) (Field, bool) {
	for i := range m.Fields {
		if m.Fields[i].Name == name {
			return m.Fields[i], true
		}
	}
	return Field{}, false
}

// Registry holds validated models keyed by name. Registering a name
// twice overwrites the earlier entry. Safe for concurrent use, though
// validation itself registers all models before any query reads.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*Model
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]*Model)}
}

// Register installs a model, replacing any prior model of the same
// name.
func (r *Registry) Register(model *Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.models[model.Name] = model
}

// Get looks up a model by name.
func (r *Registry) Get(name string) (*Model, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.models[name]
	return m, ok
}

// Models returns all registered models sorted by name.
func (r *Registry) Models() []*Model {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*Model, 0, len(r.models))
	for _, m := range r.models {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.models)
}
