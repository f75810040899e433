package fixture

import (
	"slices"
	"sync"

	"github.com/syssam/fixture/schema"
)

// Registry is the ordered set of models that received at least one fixture
// row since the last Clean. Membership is keyed by model identity. It is safe
// for concurrent use.
type Registry struct {
	mu     sync.Mutex
	models []*schema.Model
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register adds the model if it is not already present and reports whether
// it was added.
func (r *Registry) Register(m *schema.Model) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.Contains(r.models, m) {
		return false
	}
	r.models = append(r.models, m)
	return true
}

// Contains reports whether the model is registered.
func (r *Registry) Contains(m *schema.Model) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Contains(r.models, m)
}

// Models returns the registered models in registration order.
func (r *Registry) Models() []*schema.Model {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Clone(r.models)
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.models)
}

// Drain empties the registry and returns the models it held.
func (r *Registry) Drain() []*schema.Model {
	r.mu.Lock()
	defer r.mu.Unlock()
	models := r.models
	r.models = nil
	return models
}

func (r *Registry) remove(m *schema.Model) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if i := slices.Index(r.models, m); i >= 0 {
		r.models = slices.Delete(r.models, i, i+1)
	}
}
