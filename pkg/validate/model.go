package validate

import (
	"github.com/Molkars/aio/pkg/qql"
	"github.com/Molkars/aio/pkg/types"
)

// ValidateModel checks a parsed model against the type store and, on
// success, installs the validated model into the registry. Validation
// is fail-fast: the first bad field aborts and nothing is registered.
func ValidateModel(store *types.Store, registry *Registry, model *qql.Model) error {
	validated := &Model{
		Name:   model.Name.Value,
		Fields: make([]Field, 0, len(model.Fields)),
	}

	seen := make(map[string]struct{}, len(model.Fields))
	for _, field := range model.Fields {
		name := field.Name.Value
		if _, ok := seen[name]; ok {
			return &DuplicateFieldError{Model: model.Name.Value, Field: name}
		}
		seen[name] = struct{}{}

		typ, ok := store.Get(field.Type.Name.Value)
		if !ok {
			return &UnknownFieldTypeError{
				Model:    model.Name.Value,
				Field:    name,
				TypeName: field.Type.Name.Value,
			}
		}

		validated.Fields = append(validated.Fields, Field{
			Name:     name,
			Type:     typ,
			Arg:      field.Type.Arg,
			Optional: field.Type.Optional,
		})
	}

	registry.Register(validated)
	return nil
}
