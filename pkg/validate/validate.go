// Package validate checks parsed QQL files against a type store and
// resolves them into a registry of validated models.
//
// Validation is an explicit two-phase pipeline over a whole project:
// first every model from every file is validated and registered, then
// every query is checked against the complete registry. Both phases are
// fail-fast. Within a file, models and queries are visited in name
// order so the first error reported is deterministic.
package validate

import (
	"sort"

	"github.com/Molkars/aio/pkg/qql"
	"github.com/Molkars/aio/pkg/types"
)

// Validate runs both validation phases over files, in order, and
// returns the completed model registry.
func Validate(store *types.Store, files []*qql.File) (*Registry, error) {
	registry := NewRegistry()

	for _, file := range files {
		for _, name := range sortedKeys(file.Models) {
			if err := ValidateModel(store, registry, file.Models[name]); err != nil {
				return nil, err
			}
		}
	}

	for _, file := range files {
		for _, name := range sortedKeys(file.Queries) {
			if err := ValidateQuery(registry, file.Queries[name]); err != nil {
				return nil, err
			}
		}
	}

	return registry, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
