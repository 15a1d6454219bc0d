// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard
// dependencies on specific observability backends. Consumers can register
// hooks at startup to receive events about serialization, deserialization,
// and namespace admission.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface per event category
//   - Provide a no-op default implementation
//   - Allow registration of custom implementations at startup
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSerializationHooks(&myHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Serialization().OnSerializeStart(namespace, format, verbosity)
package observability

import (
	"sync"
	"time"
)

// SerializationHooks receives events from serialize and deserialize calls
// and from the namespace admission protocol.
type SerializationHooks interface {
	// OnSerializeStart records the start of a serialize call.
	OnSerializeStart(namespace, format, verbosity string)

	// OnSerializeComplete records the outcome of a serialize call.
	OnSerializeComplete(namespace, format, verbosity string, duration time.Duration, err error)

	// OnDeserializeStart records the start of a deserialize call.
	OnDeserializeStart(format string)

	// OnDeserializeComplete records the outcome of a deserialize call.
	// The namespace is empty when the call failed before discovering it.
	OnDeserializeComplete(namespace, format string, duration time.Duration, err error)

	// OnAdmission records a namespace admission decision that installed
	// elements: created is true for a fresh namespace, false for an
	// overwrite of an existing one.
	OnAdmission(namespace string, created bool, elements int)
}

// NoopSerializationHooks is a no-op implementation of SerializationHooks.
type NoopSerializationHooks struct{}

func (NoopSerializationHooks) OnSerializeStart(string, string, string)                            {}
func (NoopSerializationHooks) OnSerializeComplete(string, string, string, time.Duration, error)   {}
func (NoopSerializationHooks) OnDeserializeStart(string)                                          {}
func (NoopSerializationHooks) OnDeserializeComplete(string, string, time.Duration, error)         {}
func (NoopSerializationHooks) OnAdmission(string, bool, int)                                      {}

var (
	serializationHooks SerializationHooks = NoopSerializationHooks{}
	hooksMu            sync.RWMutex
)

// SetSerializationHooks registers custom serialization hooks.
// This should be called once at application startup before any store operations.
func SetSerializationHooks(h SerializationHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		serializationHooks = h
	}
}

// Serialization returns the registered serialization hooks.
func Serialization() SerializationHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return serializationHooks
}

// Reset restores the no-op default hooks.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	serializationHooks = NoopSerializationHooks{}
}
