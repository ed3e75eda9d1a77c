package observability

import (
	"context"
	"testing"
	"time"
)

type recordingPipelineHooks struct {
	NoopPipelineHooks
	buildStarts   int
	buildDones    int
	repairs       int
	lastRemaining int
}

func (h *recordingPipelineHooks) OnBuildStart(ctx context.Context, nodeCount int) {
	h.buildStarts++
}

func (h *recordingPipelineHooks) OnBuildComplete(ctx context.Context, nodeCount int, d time.Duration, err error) {
	h.buildDones++
}

func (h *recordingPipelineHooks) OnRepair(ctx context.Context, defects, remaining int) {
	h.repairs++
	h.lastRemaining = remaining
}

type recordingCacheHooks struct {
	NoopCacheHooks
	hits   int
	misses int
	sets   int
}

func (h *recordingCacheHooks) OnCacheHit(ctx context.Context, keyType string)      { h.hits++ }
func (h *recordingCacheHooks) OnCacheMiss(ctx context.Context, keyType string)     { h.misses++ }
func (h *recordingCacheHooks) OnCacheSet(ctx context.Context, keyType string, n int) { h.sets++ }

func TestDefaultHooksAreNoop(t *testing.T) {
	Reset()

	// Calls on the defaults must not panic.
	ctx := context.Background()
	Pipeline().OnBuildStart(ctx, 3)
	Pipeline().OnBuildComplete(ctx, 3, time.Millisecond, nil)
	Pipeline().OnRepair(ctx, 2, 0)
	Cache().OnCacheHit(ctx, "document")
	Cache().OnCacheMiss(ctx, "document")
	Cache().OnCacheSet(ctx, "document", 1024)
}

func TestSetPipelineHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)

	ctx := context.Background()
	Pipeline().OnBuildStart(ctx, 5)
	Pipeline().OnBuildComplete(ctx, 5, time.Millisecond, nil)
	Pipeline().OnRepair(ctx, 3, 1)

	if rec.buildStarts != 1 || rec.buildDones != 1 {
		t.Errorf("build events = %d/%d, want 1/1", rec.buildStarts, rec.buildDones)
	}
	if rec.repairs != 1 || rec.lastRemaining != 1 {
		t.Errorf("repair events = %d (remaining %d), want 1 (remaining 1)", rec.repairs, rec.lastRemaining)
	}
}

func TestSetCacheHooks(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)

	ctx := context.Background()
	Cache().OnCacheMiss(ctx, "document")
	Cache().OnCacheSet(ctx, "document", 42)
	Cache().OnCacheHit(ctx, "document")

	if rec.hits != 1 || rec.misses != 1 || rec.sets != 1 {
		t.Errorf("cache events = hit %d miss %d set %d, want 1 each", rec.hits, rec.misses, rec.sets)
	}
}

func TestSetNilKeepsCurrent(t *testing.T) {
	t.Cleanup(Reset)

	rec := &recordingPipelineHooks{}
	SetPipelineHooks(rec)
	SetPipelineHooks(nil)

	Pipeline().OnBuildStart(context.Background(), 1)
	if rec.buildStarts != 1 {
		t.Error("nil registration should keep the previous hooks")
	}
}

func TestReset(t *testing.T) {
	rec := &recordingCacheHooks{}
	SetCacheHooks(rec)
	Reset()

	Cache().OnCacheHit(context.Background(), "document")
	if rec.hits != 0 {
		t.Error("Reset should restore no-op hooks")
	}
}
