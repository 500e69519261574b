// Package observability carries pipeline, cache and server events to
// whatever metrics backend the process registers.
//
// Packages that do work call the accessor for their event family and never
// see the backend:
//
//	hooks := observability.Pipeline()
//	hooks.OnLayoutStart(ctx, "bracket", 63)
//
// Until something is registered every accessor returns [Noop]. The render
// service registers its [Prometheus] collector set once at startup:
//
//	observability.Register(observability.NewPrometheus(registry))
//
// Spans come from [Tracer], a thin wrapper over the global OpenTelemetry
// provider. With no provider installed they are no-ops.
package observability

import (
	"context"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// TracerName identifies spans emitted by this module.
const TracerName = "github.com/matzehuels/bracketgen"

// Tracer returns the module's OpenTelemetry tracer.
func Tracer() trace.Tracer { return otel.Tracer(TracerName) }

// PipelineHooks receives render pipeline stage events. Build events carry
// the input source, "teams" or "picks".
type PipelineHooks interface {
	OnBuildStart(ctx context.Context, source string)
	OnBuildComplete(ctx context.Context, source string, rounds int, duration time.Duration, err error)
	OnLayoutStart(ctx context.Context, vizType string, matchups int)
	OnLayoutComplete(ctx context.Context, vizType string, duration time.Duration, err error)
	OnRenderStart(ctx context.Context, formats []string)
	OnRenderComplete(ctx context.Context, formats []string, duration time.Duration, err error)
}

// CacheHooks receives artifact cache lookups and writes.
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// ServerHooks receives HTTP request events keyed by route pattern.
type ServerHooks interface {
	OnRequest(ctx context.Context, method, route string)
	OnResponse(ctx context.Context, method, route string, status int, duration time.Duration)
	OnRateLimited(ctx context.Context, route string)
}

// Noop implements every hook interface and discards all events. Embed it
// to implement only some methods.
type Noop struct{}

func (Noop) OnBuildStart(context.Context, string)                               {}
func (Noop) OnBuildComplete(context.Context, string, int, time.Duration, error) {}
func (Noop) OnLayoutStart(context.Context, string, int)                         {}
func (Noop) OnLayoutComplete(context.Context, string, time.Duration, error)     {}
func (Noop) OnRenderStart(context.Context, []string)                            {}
func (Noop) OnRenderComplete(context.Context, []string, time.Duration, error)   {}
func (Noop) OnCacheHit(context.Context, string)                                 {}
func (Noop) OnCacheMiss(context.Context, string)                                {}
func (Noop) OnCacheSet(context.Context, string, int)                            {}
func (Noop) OnRequest(context.Context, string, string)                          {}
func (Noop) OnResponse(context.Context, string, string, int, time.Duration)     {}
func (Noop) OnRateLimited(context.Context, string)                              {}

// slot holds one registered implementation of T.
type slot[T any] struct {
	p atomic.Pointer[T]
}

func (s *slot[T]) load() T {
	if p := s.p.Load(); p != nil {
		return *p
	}
	var fallback any = Noop{}
	return fallback.(T)
}

var (
	pipelineSlot slot[PipelineHooks]
	cacheSlot    slot[CacheHooks]
	serverSlot   slot[ServerHooks]
)

// Register installs h for every hook interface it implements. It reports
// whether h implemented any of them.
func Register(h any) bool {
	found := false
	if v, ok := h.(PipelineHooks); ok {
		pipelineSlot.p.Store(&v)
		found = true
	}
	if v, ok := h.(CacheHooks); ok {
		cacheSlot.p.Store(&v)
		found = true
	}
	if v, ok := h.(ServerHooks); ok {
		serverSlot.p.Store(&v)
		found = true
	}
	return found
}

// Pipeline returns the registered pipeline hooks.
func Pipeline() PipelineHooks { return pipelineSlot.load() }

// Cache returns the registered cache hooks.
func Cache() CacheHooks { return cacheSlot.load() }

// Server returns the registered server hooks.
func Server() ServerHooks { return serverSlot.load() }

// Reset drops every registration.
func Reset() {
	pipelineSlot.p.Store(nil)
	cacheSlot.p.Store(nil)
	serverSlot.p.Store(nil)
}
