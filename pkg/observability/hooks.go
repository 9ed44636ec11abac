// Package observability provides hooks for logging and metrics around sorter
// runs and the interactive visualizer.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about sorter runs and visualizer sessions.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// Hooks are registered by main, not by libraries, so library packages never
// depend on a particular backend.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetSortHooks(&mySortHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Sort().OnRunStart(ctx, "quick", len(seq))
//	// ... step the sorter ...
//	observability.Sort().OnRunComplete(ctx, "quick", steps, duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Sort Hooks
// =============================================================================

// SortHooks receives events from sorter runs.
type SortHooks interface {
	// OnRunStart records the start of a run over size elements.
	OnRunStart(ctx context.Context, algorithm string, size int)

	// OnStep records a single step. a and b are the highlighted indices,
	// -1 when nothing is highlighted.
	OnStep(ctx context.Context, algorithm string, step, a, b int, reason string)

	// OnRunComplete records the end of a run.
	OnRunComplete(ctx context.Context, algorithm string, steps int, duration time.Duration, err error)
}

// =============================================================================
// Visualizer Hooks
// =============================================================================

// VisualizerHooks receives events from interactive sessions.
type VisualizerHooks interface {
	// OnStateChange records a transition such as "start" to "running".
	OnStateChange(ctx context.Context, session, from, to string)

	// OnAlgorithmChange records a switch of the active algorithm.
	OnAlgorithmChange(ctx context.Context, session, algorithm string)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopSortHooks is a no-op implementation of SortHooks.
type NoopSortHooks struct{}

func (NoopSortHooks) OnRunStart(context.Context, string, int)                         {}
func (NoopSortHooks) OnStep(context.Context, string, int, int, int, string)           {}
func (NoopSortHooks) OnRunComplete(context.Context, string, int, time.Duration, error) {}

// NoopVisualizerHooks is a no-op implementation of VisualizerHooks.
type NoopVisualizerHooks struct{}

func (NoopVisualizerHooks) OnStateChange(context.Context, string, string, string) {}
func (NoopVisualizerHooks) OnAlgorithmChange(context.Context, string, string)     {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	sortHooks       SortHooks       = NoopSortHooks{}
	visualizerHooks VisualizerHooks = NoopVisualizerHooks{}
	hooksMu         sync.RWMutex
)

// SetSortHooks registers custom sort hooks.
// This should be called once at application startup before any runs.
func SetSortHooks(h SortHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		sortHooks = h
	}
}

// SetVisualizerHooks registers custom visualizer hooks.
func SetVisualizerHooks(h VisualizerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		visualizerHooks = h
	}
}

// Sort returns the registered sort hooks.
func Sort() SortHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return sortHooks
}

// Visualizer returns the registered visualizer hooks.
func Visualizer() VisualizerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return visualizerHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	sortHooks = NoopSortHooks{}
	visualizerHooks = NoopVisualizerHooks{}
}
