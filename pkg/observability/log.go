package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that write to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Install makes h the pipeline, cache and fetch hooks.
func (h *LogHooks) Install() {
	Install(Hooks{Pipeline: h, Cache: h, Fetch: h})
}

func (h *LogHooks) OnStageStart(_ context.Context, stage Stage, subject string) {
	h.logger.Debug(string(stage)+" started", "subject", subject)
}

func (h *LogHooks) OnStageDone(_ context.Context, ev StageEvent) {
	kv := []any{"took", ev.Duration}
	switch ev.Stage {
	case StageParse:
		kv = append(kv, "source", ev.Subject, "adapter", ev.Adapter, "lines", ev.Lines)
	case StageLayout:
		kv = append(kv, "columns", ev.Columns)
	case StageRender:
		kv = append(kv, "formats", ev.Subject)
	}
	if ev.Err != nil {
		h.logger.Debug(string(ev.Stage)+" failed", append(kv, "err", ev.Err)...)
		return
	}
	h.logger.Debug(string(ev.Stage)+" complete", kv...)
}

func (h *LogHooks) OnCache(_ context.Context, op CacheOp, keyType string, size int) {
	if op == CacheStore {
		h.logger.Debug("cache "+op.String(), "type", keyType, "bytes", size)
		return
	}
	h.logger.Debug("cache "+op.String(), "type", keyType)
}

func (h *LogHooks) OnFetch(_ context.Context, url string) {
	h.logger.Debug("fetching", "url", url)
}

func (h *LogHooks) OnFetchDone(_ context.Context, url string, status int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fetch failed", "url", url, "err", err, "took", d)
		return
	}
	h.logger.Debug("fetched", "url", url, "status", status, "took", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ FetchHooks    = (*LogHooks)(nil)
)
