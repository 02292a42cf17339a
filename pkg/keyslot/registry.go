package keyslot

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry holds the slot sets known to a program.
// It is safe for concurrent use.
type Registry struct {
	mu   sync.RWMutex
	sets map[string]Set
}

// NewRegistry creates a registry pre-populated with the AUTOSAR set.
func NewRegistry() *Registry {
	r := &Registry{sets: make(map[string]Set)}
	r.sets[AUTOSAR.Name()] = AUTOSAR
	return r
}

// DefaultRegistry is the process-wide registry used by Register and Lookup.
var DefaultRegistry = NewRegistry()

// Register adds set under its name. Names are case-insensitive and must be
// unique. A nil set, including a nil *Table, is ErrEmptySetName.
func (r *Registry) Register(set Set) error {
	if set == nil || set.Name() == "" {
		return ErrEmptySetName
	}

	key := strings.ToLower(set.Name())

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sets[key]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateSet, set.Name())
	}
	r.sets[key] = set
	return nil
}

// Lookup returns the set registered under name.
func (r *Registry) Lookup(name string) (Set, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	set, ok := r.sets[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSet, name)
	}
	return set, nil
}

// Names returns the registered set names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sets))
	for _, s := range r.sets {
		names = append(names, s.Name())
	}
	sort.Strings(names)
	return names
}

// Register adds set to the DefaultRegistry.
func Register(set Set) error {
	return DefaultRegistry.Register(set)
}

// Lookup finds a set in the DefaultRegistry.
func Lookup(name string) (Set, error) {
	return DefaultRegistry.Lookup(name)
}
