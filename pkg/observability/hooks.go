// Package observability provides hooks for metrics and tracing.
//
// Libraries emit events through package-level hook registries; main
// registers a backend at startup. Until then every hook is a no-op, so the
// colony and cache packages carry no dependency on a metrics framework.
//
//	func main() {
//	    observability.SetColonyHooks(metrics.ColonyHooks{})
//	    observability.SetCacheHooks(metrics.CacheHooks{})
//	    // ... run application
//	}
//
// Emitting side:
//
//	observability.Colony().OnRunStart(ctx, runID, g.N(), g.EdgeCount())
//	// ... run the colony ...
//	observability.Colony().OnRunComplete(ctx, runID, res.Cost, res.Duration, err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Colony Hooks
// =============================================================================

// ColonyHooks receives events from coloring runs.
type ColonyHooks interface {
	OnRunStart(ctx context.Context, runID string, vertices, edges int)
	OnIteration(ctx context.Context, runID string, iteration, bestCost int, improved bool)
	OnRunComplete(ctx context.Context, runID string, colors int, duration time.Duration, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from artifact rendering.
type RenderHooks interface {
	OnRenderStart(ctx context.Context, format string)
	OnRenderComplete(ctx context.Context, format string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache lookups. keyType is "result" or
// "artifact".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from the HTTP server. route is the matched
// pattern, not the raw path.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, route string, status int, duration time.Duration)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopColonyHooks ignores every event.
type NoopColonyHooks struct{}

func (NoopColonyHooks) OnRunStart(context.Context, string, int, int)                     {}
func (NoopColonyHooks) OnIteration(context.Context, string, int, int, bool)              {}
func (NoopColonyHooks) OnRunComplete(context.Context, string, int, time.Duration, error) {}

// NoopRenderHooks ignores every event.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(context.Context, string)                               {}
func (NoopRenderHooks) OnRenderComplete(context.Context, string, int, time.Duration, error) {}

// NoopCacheHooks ignores every event.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// NoopHTTPHooks ignores every event.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, int, time.Duration) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	colonyHooks ColonyHooks = NoopColonyHooks{}
	renderHooks RenderHooks = NoopRenderHooks{}
	cacheHooks  CacheHooks  = NoopCacheHooks{}
	httpHooks   HTTPHooks   = NoopHTTPHooks{}
	hooksMu     sync.RWMutex
)

// SetColonyHooks registers colony hooks. Nil is ignored.
func SetColonyHooks(h ColonyHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		colonyHooks = h
	}
}

// SetRenderHooks registers render hooks. Nil is ignored.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetCacheHooks registers cache hooks. Nil is ignored.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers HTTP hooks. Nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Colony returns the registered colony hooks.
func Colony() ColonyHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return colonyHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores every hook to its no-op default.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	colonyHooks = NoopColonyHooks{}
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
