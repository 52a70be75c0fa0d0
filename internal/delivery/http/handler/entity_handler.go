package handler

import (
	"net/http"

	"clinic-agenda/pkg/response"

	"github.com/gorilla/mux"
)

// EntityHandler serves the CRUD routes of one registered entity
type EntityHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

// EntityRegistry resolves /api/{entity} to a typed handler. Only registered
// entities are reachable; the path segment never reaches SQL.
type EntityRegistry struct {
	handlers map[string]EntityHandler
}

func NewEntityRegistry(professionals *ProfessionalHandler, patients *PatientHandler) *EntityRegistry {
	return &EntityRegistry{
		handlers: map[string]EntityHandler{
			"professionals": professionals,
			"patients":      patients,
		},
	}
}

// Lookup returns the handler registered under the entity tag
func (reg *EntityRegistry) Lookup(entity string) (EntityHandler, bool) {
	h, ok := reg.handlers[entity]
	return h, ok
}

func (reg *EntityRegistry) resolve(w http.ResponseWriter, r *http.Request) (EntityHandler, bool) {
	h, ok := reg.Lookup(mux.Vars(r)["entity"])
	if !ok {
		response.NotFound(w, "Unknown entity")
	}
	return h, ok
}

func (reg *EntityRegistry) List(w http.ResponseWriter, r *http.Request) {
	if h, ok := reg.resolve(w, r); ok {
		h.List(w, r)
	}
}

func (reg *EntityRegistry) Get(w http.ResponseWriter, r *http.Request) {
	if h, ok := reg.resolve(w, r); ok {
		h.Get(w, r)
	}
}

func (reg *EntityRegistry) Create(w http.ResponseWriter, r *http.Request) {
	if h, ok := reg.resolve(w, r); ok {
		h.Create(w, r)
	}
}

func (reg *EntityRegistry) Update(w http.ResponseWriter, r *http.Request) {
	if h, ok := reg.resolve(w, r); ok {
		h.Update(w, r)
	}
}

func (reg *EntityRegistry) Delete(w http.ResponseWriter, r *http.Request) {
	if h, ok := reg.resolve(w, r); ok {
		h.Delete(w, r)
	}
}
