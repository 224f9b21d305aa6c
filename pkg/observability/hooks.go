// Package observability lets callers watch the sheet pipeline.
//
// Library packages report stage timings, cache lookups and page fetches to
// the installed [Hooks]; nothing is reported until a program installs some.
// The CLI installs [LogHooks] when run with --verbose:
//
//	observability.NewLogHooks(logger).Install()
//
// Instrumented code reads the current hooks at the call site:
//
//	observability.Pipeline().OnStageStart(ctx, observability.StageParse, source)
//	// ... fetch and parse ...
//	observability.Pipeline().OnStageDone(ctx, observability.StageEvent{...})
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// Stage names a step of the sheet pipeline.
type Stage string

const (
	StageParse  Stage = "parse"
	StageLayout Stage = "layout"
	StageRender Stage = "render"
)

// StageEvent describes a finished pipeline stage. Fields that do not apply
// to the stage are left zero.
type StageEvent struct {
	Stage    Stage
	Subject  string // source for parse, formats for render
	Adapter  string
	Lines    int
	Columns  int
	Duration time.Duration
	Err      error
}

// PipelineHooks receives stage boundaries from pipeline.Runner.
type PipelineHooks interface {
	OnStageStart(ctx context.Context, stage Stage, subject string)
	OnStageDone(ctx context.Context, ev StageEvent)
}

// CacheOp is the outcome of a cache access.
type CacheOp int

const (
	CacheHit CacheOp = iota
	CacheMiss
	CacheStore
)

func (op CacheOp) String() string {
	switch op {
	case CacheHit:
		return "hit"
	case CacheMiss:
		return "miss"
	case CacheStore:
		return "store"
	}
	return "unknown"
}

// CacheHooks receives cache accesses. keyType is "page", "sheet" or
// "artifact"; size is only set for CacheStore.
type CacheHooks interface {
	OnCache(ctx context.Context, op CacheOp, keyType string, size int)
}

// FetchHooks receives outbound page requests from fetch.Client. status is
// zero when err is a transport failure.
type FetchHooks interface {
	OnFetch(ctx context.Context, url string)
	OnFetchDone(ctx context.Context, url string, status int, d time.Duration, err error)
}

// Noop implements every hook interface and discards all events.
type Noop struct{}

func (Noop) OnStageStart(context.Context, Stage, string)                    {}
func (Noop) OnStageDone(context.Context, StageEvent)                        {}
func (Noop) OnCache(context.Context, CacheOp, string, int)                  {}
func (Noop) OnFetch(context.Context, string)                                {}
func (Noop) OnFetchDone(context.Context, string, int, time.Duration, error) {}

// Hooks groups the installed hooks. Nil members are replaced with [Noop].
type Hooks struct {
	Pipeline PipelineHooks
	Cache    CacheHooks
	Fetch    FetchHooks
}

var current atomic.Pointer[Hooks]

func init() { Reset() }

// Install replaces the installed hooks. Call it at startup, before any
// pipeline work starts.
func Install(h Hooks) {
	if h.Pipeline == nil {
		h.Pipeline = Noop{}
	}
	if h.Cache == nil {
		h.Cache = Noop{}
	}
	if h.Fetch == nil {
		h.Fetch = Noop{}
	}
	current.Store(&h)
}

// Reset discards all installed hooks.
func Reset() { Install(Hooks{}) }

// Pipeline returns the installed pipeline hooks.
func Pipeline() PipelineHooks { return current.Load().Pipeline }

// Cache returns the installed cache hooks.
func Cache() CacheHooks { return current.Load().Cache }

// Fetch returns the installed fetch hooks.
func Fetch() FetchHooks { return current.Load().Fetch }
