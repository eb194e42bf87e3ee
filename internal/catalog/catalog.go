package catalog

import (
	"strings"

	"velour/internal/model"
)

// DefaultDurationMinutes is assumed when a booking references no known
// service.
const DefaultDurationMinutes = 60

// Resolver answers duration lookups against an in-memory snapshot of the
// service catalog. Callers load the catalog once per request so that
// per-booking lookups never hit the database.
type Resolver struct {
	byID   map[int64]model.Service
	byName map[string]model.Service
	all    []model.Service
}

// NewResolver builds a resolver from a catalog snapshot.
func NewResolver(services []model.Service) *Resolver {
	r := &Resolver{
		byID:   make(map[int64]model.Service, len(services)),
		byName: make(map[string]model.Service, len(services)),
		all:    services,
	}
	for _, s := range services {
		r.byID[s.ID] = s
		r.byName[strings.ToLower(strings.TrimSpace(s.Name))] = s
	}
	return r
}

// DurationFor resolves a service duration by id, then by name, falling
// back to DefaultDurationMinutes when nothing matches or the stored
// duration is unusable.
func (r *Resolver) DurationFor(serviceID int64, serviceName string) int {
	if s, ok := r.byID[serviceID]; ok && s.DurationMinutes > 0 {
		return s.DurationMinutes
	}
	if s, ok := r.FindByName(serviceName); ok && s.DurationMinutes > 0 {
		return s.DurationMinutes
	}
	return DefaultDurationMinutes
}

// FindByName matches a service by name: exact (case-insensitive) first,
// then substring in either direction. Booking rows frequently carry
// abbreviated or suffixed service names.
func (r *Resolver) FindByName(name string) (model.Service, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		return model.Service{}, false
	}
	if s, ok := r.byName[key]; ok {
		return s, true
	}
	for _, s := range r.all {
		candidate := strings.ToLower(s.Name)
		if strings.Contains(candidate, key) || strings.Contains(key, candidate) {
			return s, true
		}
	}
	return model.Service{}, false
}
