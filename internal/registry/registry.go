package registry

import (
	"context"
	"fmt"
	"sync"
)

// Logger defines the logging interface used by the Registry.
// This allows different logging implementations to be used.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Registry tracks which host nodes this service has created, with an
// in-memory cache over the persistent repository.
//
// Reconciliation consults Has() once per topology entry per discovery
// cycle, so lookups must not hit the database; the cache is populated on
// startup via RefreshCache() and kept in sync by Register()/Deregister().
//
// All public methods are thread-safe.
type Registry struct {
	repo    Repository
	cache   map[string]*Node // Cached nodes by address
	cacheMu sync.RWMutex     // Protects cache
	logger  Logger
}

// NewRegistry creates a new node registry.
// The repository is used for persistence; the registry adds caching.
func NewRegistry(repo Repository) *Registry {
	return &Registry{
		repo:   repo,
		cache:  make(map[string]*Node),
		logger: noopLogger{},
	}
}

// SetLogger sets the logger for the registry.
func (r *Registry) SetLogger(logger Logger) {
	r.logger = logger
}

// RefreshCache reloads all nodes from the repository into the cache.
// This should be called on application startup.
func (r *Registry) RefreshCache(ctx context.Context) error {
	nodes, err := r.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("loading nodes: %w", err)
	}

	r.cacheMu.Lock()
	defer r.cacheMu.Unlock()

	r.cache = make(map[string]*Node, len(nodes))
	for i := range nodes {
		n := nodes[i]
		r.cache[n.Address] = &n
	}

	r.logger.Info("node cache refreshed", "count", len(nodes))
	return nil
}

// Has reports whether a node with the given address is registered.
func (r *Registry) Has(address string) bool {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()
	_, ok := r.cache[address]
	return ok
}

// Get retrieves a node by address from the cache.
// Returns ErrNodeNotFound if the node is not registered.
func (r *Registry) Get(address string) (*Node, error) {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()

	n, ok := r.cache[address]
	if !ok {
		return nil, ErrNodeNotFound
	}
	copied := *n
	return &copied, nil
}

// Register persists a new node and adds it to the cache.
//
// Registering an address that already exists returns ErrNodeExists and
// leaves the existing record untouched; reconciliation treats that as
// "already created" rather than a failure.
func (r *Registry) Register(ctx context.Context, node *Node) error {
	if err := r.repo.Create(ctx, node); err != nil {
		return err
	}

	r.cacheMu.Lock()
	copied := *node
	r.cache[node.Address] = &copied
	r.cacheMu.Unlock()

	r.logger.Debug("node registered",
		"address", node.Address,
		"nodedef", node.NodeDef,
		"name", node.Name)
	return nil
}

// Deregister removes a node from the repository and the cache.
// Returns ErrNodeNotFound if the node does not exist.
func (r *Registry) Deregister(ctx context.Context, address string) error {
	if err := r.repo.Delete(ctx, address); err != nil {
		return err
	}

	r.cacheMu.Lock()
	delete(r.cache, address)
	r.cacheMu.Unlock()

	r.logger.Debug("node deregistered", "address", address)
	return nil
}

// Addresses returns the addresses of all registered nodes.
// Order is unspecified.
func (r *Registry) Addresses() []string {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()

	addrs := make([]string, 0, len(r.cache))
	for addr := range r.cache {
		addrs = append(addrs, addr)
	}
	return addrs
}

// Count returns the number of registered nodes.
func (r *Registry) Count() int {
	r.cacheMu.RLock()
	defer r.cacheMu.RUnlock()
	return len(r.cache)
}
