// Package registry provides the combined model namespace of one check run.
package registry

import (
	"sync"

	"github.com/marshallshelly/modelcheck/pkg/schema"
)

// Key identifies a model by the module (source unit) declaring it and its
// bare class name.
type Key struct {
	Module string
	Name   string
}

// Registry stores model records in insertion order. It is safe for
// concurrent use.
type Registry struct {
	mu     sync.RWMutex
	order  []Key
	models map[Key]*schema.ModelRecord
	names  map[string][]Key
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		order:  make([]Key, 0),
		models: make(map[Key]*schema.ModelRecord),
		names:  make(map[string][]Key),
	}
}

// Register stores model under its origin file and name. Registering the
// same key again replaces the record and keeps its position.
func (r *Registry) Register(model *schema.ModelRecord) {
	key := Key{Module: model.Origin.File, Name: model.Name}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.models[key]; !ok {
		r.order = append(r.order, key)
		r.names[key.Name] = append(r.names[key.Name], key)
	}
	r.models[key] = model
}

// RegisterAll registers models in order.
func (r *Registry) RegisterAll(models []*schema.ModelRecord) {
	for _, model := range models {
		r.Register(model)
	}
}

// Get retrieves the model declared as name in module.
func (r *Registry) Get(module, name string) (*schema.ModelRecord, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	model, ok := r.models[Key{Module: module, Name: name}]
	return model, ok
}

// Lookup resolves a bare model name across all modules. More than one result
// means the name is ambiguous.
func (r *Registry) Lookup(name string) []*schema.ModelRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := r.names[name]
	models := make([]*schema.ModelRecord, 0, len(keys))
	for _, key := range keys {
		models = append(models, r.models[key])
	}
	return models
}

// All returns every model in insertion order.
func (r *Registry) All() []*schema.ModelRecord {
	r.mu.RLock()
	defer r.mu.RUnlock()

	models := make([]*schema.ModelRecord, 0, len(r.order))
	for _, key := range r.order {
		models = append(models, r.models[key])
	}
	return models
}

// KnownTables returns the table names of every table-materialised model.
func (r *Registry) KnownTables() map[string]bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tables := make(map[string]bool)
	for _, model := range r.models {
		if model.HasTable {
			tables[model.TableName] = true
		}
	}
	return tables
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}
