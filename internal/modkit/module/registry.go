// Package module holds the contract modkit modules satisfy and the process wide port registry
package module

import (
	"sync"

	phttp "skillproof/internal/platform/net/http"
)

// Module is what api.Mount iterates: routes for the router, ports for the registry
type Module interface {
	Name() string
	Ports() any
	MountRoutes(r phttp.Router)
}

// process wide port sets keyed by module name, filled during bootstrap in main
var (
	mu  sync.RWMutex
	reg = map[string]any{}
)

// Register stores a port set for a module name
func Register(name string, ports any) {
	mu.Lock()
	reg[name] = ports
	mu.Unlock()
}

// PortsAs fetches and type asserts a port set for name
func PortsAs[T any](name string) (T, bool) {
	mu.RLock()
	v, ok := reg[name]
	mu.RUnlock()
	out, ok2 := v.(T)
	return out, ok && ok2
}

// MustPortsAs is PortsAs for bootstrap code, panicking when name was never registered
func MustPortsAs[T any](name string) T {
	v, ok := PortsAs[T](name)
	if !ok {
		panic("module: no " + name + " ports registered")
	}
	return v
}

// Reset clears the registry for tests
func Reset() {
	mu.Lock()
	reg = map[string]any{}
	mu.Unlock()
}
