package composer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"TootBot/internal/domain"
)

// Request carries all parameters required to compose a post.
type Request struct {
	Now time.Time
	// Item overrides the scheduled entry index when set.
	Item *int
}

// Composer produces the post of one bot flavour (on this day, planets, ...).
// A nil post means there is nothing to publish right now.
type Composer interface {
	Name() string
	Compose(ctx context.Context, req Request) (*domain.Post, error)
}

// Registry keeps a mapping from composer names to their implementations.
type Registry struct {
	composers map[string]Composer
}

// NewRegistry builds an empty registry.
func NewRegistry() *Registry {
	return &Registry{composers: map[string]Composer{}}
}

// Register adds or replaces a composer implementation.
func (r *Registry) Register(c Composer) {
	if r.composers == nil {
		r.composers = map[string]Composer{}
	}
	r.composers[c.Name()] = c
}

// Resolve returns a composer by name or an error if it is absent.
func (r *Registry) Resolve(name string) (Composer, error) {
	if c, ok := r.composers[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("composer %s is not registered", name)
}

// Names lists the registered composers in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.composers))
	for name := range r.composers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
