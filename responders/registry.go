package responders

import (
	"fmt"

	"github.com/careline/careline/intent"
)

// Registry manages a collection of responders for lookup by intent.
type Registry struct {
	responders map[intent.Intent]Responder
}

// NewRegistry creates a new empty responder registry.
func NewRegistry() *Registry {
	return &Registry{
		responders: make(map[intent.Intent]Responder),
	}
}

// Register adds a responder to the registry, replacing any previous
// responder for the same intent.
func (r *Registry) Register(resp Responder) {
	r.responders[resp.Intent()] = resp
}

// Get returns the responder for an intent and whether it was found.
func (r *Registry) Get(in intent.Intent) (Responder, bool) {
	resp, ok := r.responders[in]
	return resp, ok
}

// MustGet returns the responder for an intent or panics if not found.
func (r *Registry) MustGet(in intent.Intent) Responder {
	resp, ok := r.responders[in]
	if !ok {
		panic(fmt.Sprintf("responder not found for intent: %s", in))
	}
	return resp
}

// List returns the names of all registered responders.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.responders))
	for _, resp := range r.responders {
		names = append(names, resp.Name())
	}
	return names
}
