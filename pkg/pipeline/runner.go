package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/terrasmith/terrasmith/pkg/cache"
	"github.com/terrasmith/terrasmith/pkg/errors"
	"github.com/terrasmith/terrasmith/pkg/external"
	"github.com/terrasmith/terrasmith/pkg/graph"
	"github.com/terrasmith/terrasmith/pkg/observability"
	"github.com/terrasmith/terrasmith/pkg/registry"
	"github.com/terrasmith/terrasmith/pkg/store"
	"github.com/terrasmith/terrasmith/pkg/terrain"
)

// Runner encapsulates pipeline execution with caching and persistence.
// Both CLI and API use this to avoid duplicating the orchestration.
//
// The Runner is stateless except for its collaborators - it doesn't store
// run results. Multiple goroutines can safely use the same Runner with
// different options.
type Runner struct {
	Registry *registry.Registry
	Cache    cache.Cache
	Keyer    cache.Keyer
	Store    store.Store // nil disables persistence
	Logger   *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Registry: registry.Builtin(),
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
	}
}

// Execute runs the complete build → assemble → validate → repair pipeline.
//
// The returned Result always carries the terminal state; the error is
// non-nil when that state is StateFailed.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	result := &Result{
		BuildID:     uuid.NewString(),
		State:       StateBuilding,
		RequestHash: opts.RequestHash(),
	}
	cacheKey := r.Keyer.DocumentKey(result.RequestHash, cache.DocumentKeyOpts{
		Mode:       opts.Mode,
		Resolution: opts.Resolution,
	})

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			logger.Debug("document cache hit", "key", cacheKey)
			observability.Cache().OnCacheHit(ctx, "document")
			result.Document = data
			result.State = StateValid
			result.CacheHit = true
			return result, nil
		}
		observability.Cache().OnCacheMiss(ctx, "document")
	}

	// Stage 1: Build.
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, len(opts.Nodes))
	g, err := graph.Build(r.Registry, opts.Nodes, opts.Connections, graph.Options{Seed: opts.Seed})
	if err != nil {
		result.State = StateFailed
		observability.Pipeline().OnBuildComplete(ctx, len(opts.Nodes), time.Since(buildStart), err)
		return result, errors.Wrap(errors.ErrCodeBuildFailed, err, "build graph")
	}
	if err := g.ResolveProperties(opts.mode); err != nil {
		result.State = StateFailed
		observability.Pipeline().OnBuildComplete(ctx, len(opts.Nodes), time.Since(buildStart), err)
		return result, errors.Wrap(errors.ErrCodeBuildFailed, err, "resolve properties")
	}
	result.Graph = g
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = len(g.Connections())

	if defects := graph.ValidateConnections(g); len(defects) > 0 {
		result.ConnectionDefects = defects
		result.State = StateFailed
		return result, errors.New(errors.ErrCodeBuildFailed,
			"%d connection defects, first: %s", len(defects), defects[0].Message)
	}
	result.State = StateBuilt
	result.Stats.BuildTime = time.Since(buildStart)
	observability.Pipeline().OnBuildComplete(ctx, result.Stats.NodeCount, result.Stats.BuildTime, nil)

	logger.Info("built graph",
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.BuildTime)

	// Stage 2: Assemble.
	assembleStart := time.Now()
	observability.Pipeline().OnAssembleStart(ctx, opts.Title)
	doc, err := terrain.Assemble(g, terrain.AssembleOptions{
		Title:           opts.Title,
		Description:     opts.Description,
		Version:         opts.Version,
		ModifiedVersion: opts.ModifiedVersion,
		Resolution:      opts.Resolution,
	})
	if err != nil {
		result.State = StateFailed
		observability.Pipeline().OnAssembleComplete(ctx, opts.Title, time.Since(assembleStart), err)
		return result, errors.Wrap(errors.ErrCodeInvalidDocument, err, "assemble document")
	}
	result.Stats.AssembleTime = time.Since(assembleStart)
	observability.Pipeline().OnAssembleComplete(ctx, opts.Title, result.Stats.AssembleTime, nil)

	// Stage 3: Validate, and repair at most once.
	validateStart := time.Now()
	defects := terrain.Check(doc, r.Registry)
	result.State = StateValidated

	if len(defects) > 0 {
		result.State = StateRepairing
		result.Repaired = true
		logger.Warn("document has structural defects, repairing",
			"defects", len(defects))

		found := len(defects)
		doc, defects = terrain.Repair(doc, defects, r.Registry)
		observability.Pipeline().OnRepair(ctx, found, len(defects))
		result.State = StateValidated
	}
	result.Stats.ValidateTime = time.Since(validateStart)

	if len(defects) > 0 {
		result.Defects = defects
		result.State = StateFailed
		return result, errors.New(errors.ErrCodeInvalidDocument,
			"%d structural defects remain after repair, first: %s", len(defects), defects[0].Message)
	}

	data, err := doc.Bytes()
	if err != nil {
		result.State = StateFailed
		return result, errors.Wrap(errors.ErrCodeInternal, err, "serialize document")
	}
	result.Document = data
	result.State = StateValid

	logger.Info("assembled document",
		"bytes", len(data),
		"repaired", result.Repaired,
		"duration", result.Stats.AssembleTime+result.Stats.ValidateTime)

	// Optional: hand the file to the editor for the final word.
	if opts.AppPath != "" {
		ext, err := r.validateExternally(ctx, data, opts.AppPath)
		if err != nil {
			return result, err
		}
		result.External = ext
		if ext.Verdict == external.Failed {
			result.State = StateFailed
			return result, errors.New(errors.ErrCodeExternalFailed, "editor rejected the document")
		}
	}

	_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLDocument)
	observability.Cache().OnCacheSet(ctx, "document", len(data))
	r.persist(ctx, opts, result, logger)

	return result, nil
}

// validateExternally writes the document to a scratch file and asks the
// editor to open it.
func (r *Runner) validateExternally(ctx context.Context, data []byte, appPath string) (*external.Result, error) {
	dir, err := os.MkdirTemp("", "terrasmith-validate-*")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "scratch dir")
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "candidate.terrain")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write candidate")
	}

	res, err := external.Validate(ctx, path, external.Options{AppPath: appPath})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeExternalInconclusive, err, "external validation")
	}
	return &res, nil
}

// persist records a successful build when a store is attached. Failures
// are logged, not fatal: the caller already has the document.
func (r *Runner) persist(ctx context.Context, opts Options, result *Result, logger *log.Logger) {
	if r.Store == nil {
		return
	}
	rec := store.Record{
		ID:          result.BuildID,
		Title:       opts.Title,
		RequestHash: result.RequestHash,
		Mode:        opts.Mode,
		NodeCount:   result.Stats.NodeCount,
		Repaired:    result.Repaired,
		Document:    result.Document,
		CreatedAt:   time.Now().UTC(),
	}
	if err := r.Store.Put(ctx, rec); err != nil {
		logger.Error("failed to persist build", "id", result.BuildID, "err", err)
	}
}

// Close releases resources held by the runner: the cache and, when
// attached, the store.
func (r *Runner) Close() error {
	var first error
	if r.Cache != nil {
		first = r.Cache.Close()
	}
	if r.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := r.Store.Close(ctx); err != nil && first == nil {
			first = err
		}
	}
	return first
}
