// Package store holds the reference graph: per namespace, a mapping from
// element id to a typed item. It owns the namespace admission protocol that
// decides whether a deserialized document creates a new namespace, clears an
// existing one, or is rejected.
//
// All operations are safe for concurrent use. Admission and install run
// under a per-namespace critical section so that a concurrent reader
// observes either the prior element map or the fully new one, never a mix.
package store

import (
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/matzehuels/sbomstore/pkg/errors"
	"github.com/matzehuels/sbomstore/pkg/observability"
)

// Store is an in-memory namespace registry. The zero value is not usable;
// create instances with New.
type Store struct {
	mu         sync.RWMutex
	namespaces map[string]*namespaceData
	locks      namedLocks
}

// namespaceData is one namespace's element map. Its mutex guards the map so
// install can swap contents without exposing intermediate states.
type namespaceData struct {
	mu    sync.RWMutex
	items map[string]*Item
}

// New creates an empty store.
func New() *Store {
	return &Store{
		namespaces: make(map[string]*namespaceData),
		locks:      namedLocks{held: make(map[string]*sync.Mutex)},
	}
}

// namedLocks provides one mutex per namespace string. Locks are created on
// demand and retained for the life of the store.
type namedLocks struct {
	mu   sync.Mutex
	held map[string]*sync.Mutex
}

// acquire locks the mutex named name and returns its release function.
func (l *namedLocks) acquire(name string) func() {
	l.mu.Lock()
	m, ok := l.held[name]
	if !ok {
		m = &sync.Mutex{}
		l.held[name] = m
	}
	l.mu.Unlock()
	m.Lock()
	return m.Unlock
}

// EnterCriticalSection acquires the critical section for a namespace and
// returns the release function. Callers must release on every exit path.
func (s *Store) EnterCriticalSection(namespace string) func() {
	return s.locks.acquire(namespace)
}

// CreateNamespace registers an empty element map for a namespace. It fails
// with NAMESPACE_EXISTS if the namespace is already registered.
func (s *Store) CreateNamespace(namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.namespaces[namespace]; ok {
		return errors.New(errors.ErrCodeNamespaceExists, "namespace %q already exists", namespace)
	}
	s.namespaces[namespace] = &namespaceData{items: make(map[string]*Item)}
	return nil
}

// Namespaces returns the registered namespace keys sorted alphabetically.
func (s *Store) Namespaces() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.namespaces))
	for ns := range s.namespaces {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// Has reports whether a namespace is registered.
func (s *Store) Has(namespace string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.namespaces[namespace]
	return ok
}

// lookup returns the namespace data, or nil if unregistered.
func (s *Store) lookup(namespace string) *namespaceData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.namespaces[namespace]
}

// Items returns all elements of a namespace sorted by id. It fails with
// MISSING_NAMESPACE for an unregistered namespace.
func (s *Store) Items(namespace string) ([]*Item, error) {
	nd := s.lookup(namespace)
	if nd == nil {
		return nil, errors.New(errors.ErrCodeMissingNamespace, "namespace %q not found", namespace)
	}
	nd.mu.RLock()
	defer nd.mu.RUnlock()
	out := make([]*Item, 0, len(nd.items))
	for _, it := range nd.items {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Get returns the element with the given id, if present.
func (s *Store) Get(namespace, id string) (*Item, bool) {
	nd := s.lookup(namespace)
	if nd == nil {
		return nil, false
	}
	nd.mu.RLock()
	defer nd.mu.RUnlock()
	it, ok := nd.items[id]
	return it, ok
}

// Put stores an element in a namespace, replacing any element with the same
// id. The namespace must already exist.
func (s *Store) Put(namespace string, item *Item) error {
	if item == nil || item.ID == "" || item.Type == "" {
		return errors.New(errors.ErrCodeMalformedElement, "element must have a type and an id")
	}
	nd := s.lookup(namespace)
	if nd == nil {
		return errors.New(errors.ErrCodeMissingNamespace, "namespace %q not found", namespace)
	}
	nd.mu.Lock()
	defer nd.mu.Unlock()
	nd.items[item.ID] = item
	return nil
}

// Remove deletes the element with the given id from a namespace. Removing
// an absent element is a no-op; the namespace must exist.
func (s *Store) Remove(namespace, id string) error {
	nd := s.lookup(namespace)
	if nd == nil {
		return errors.New(errors.ErrCodeMissingNamespace, "namespace %q not found", namespace)
	}
	nd.mu.Lock()
	defer nd.mu.Unlock()
	delete(nd.items, id)
	return nil
}

// NextID returns a fresh generated element id. Generated ids carry a
// distinct prefix so they never collide with ids from deserialized input.
func (s *Store) NextID() string {
	return "SPDXRef-gen-" + uuid.NewString()
}

// Install atomically admits a namespace and replaces its contents with
// items. The admission decision follows the protocol:
//
//   - unregistered namespace: create and register an empty element map
//   - registered, overwrite false: fail with NAMESPACE_EXISTS
//   - registered, overwrite true: clear the existing map in place, keeping
//     its identity so other holders observe the clearing
//
// The whole operation runs under the namespace's critical section and the
// element map's write lock, so concurrent readers see either the prior
// contents or the fully installed new contents.
func (s *Store) Install(namespace string, overwrite bool, items []*Item) error {
	release := s.EnterCriticalSection(namespace)
	defer release()

	s.mu.Lock()
	nd, exists := s.namespaces[namespace]
	if !exists {
		nd = &namespaceData{items: make(map[string]*Item)}
		nd.mu.Lock()
		s.namespaces[namespace] = nd
		s.mu.Unlock()
	} else {
		s.mu.Unlock()
		if !overwrite {
			return errors.New(errors.ErrCodeNamespaceExists, "namespace %q already exists", namespace)
		}
		nd.mu.Lock()
	}
	defer nd.mu.Unlock()

	clear(nd.items)
	for _, it := range items {
		nd.items[it.ID] = it
	}
	observability.Serialization().OnAdmission(namespace, !exists, len(items))
	return nil
}
