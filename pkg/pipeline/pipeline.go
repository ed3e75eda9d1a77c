// Package pipeline provides the core build pipeline for Terrasmith.
//
// This package implements the complete build → assemble → validate → repair
// pipeline that can be used by CLI and API components. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of four stages:
//
//  1. Build: Construct the node graph from specs, resolve properties, and
//     validate connections
//  2. Assemble: Render the graph into a project document
//  3. Validate: Re-parse the document and collect structural defects
//  4. Repair: One best-effort pass over a defective document, followed by
//     exactly one re-validation
//
// A run moves through states as stages complete; it ends Valid or Failed
// and never loops.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    Template: "eroded-peak",
//	    Mode:     "smart",
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	document := result.Document
package pipeline

import (
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/terrasmith/terrasmith/pkg/cache"
	"github.com/terrasmith/terrasmith/pkg/errors"
	"github.com/terrasmith/terrasmith/pkg/external"
	"github.com/terrasmith/terrasmith/pkg/graph"
	"github.com/terrasmith/terrasmith/pkg/template"
	"github.com/terrasmith/terrasmith/pkg/terrain"
)

// Default values shared by CLI and API.
const (
	// DefaultMode is the property emission mode used when none is given.
	DefaultMode = "smart"

	// DefaultResolution is the build resolution written into documents.
	DefaultResolution = terrain.DefaultResolution
)

// State tracks where a pipeline run is in its lifecycle. Terminal states
// are StateValid and StateFailed.
type State int

const (
	// StateBuilding covers graph construction and connection validation.
	StateBuilding State = iota
	// StateBuilt means the graph exists and its connections check out.
	StateBuilt
	// StateValidated means the assembled document has been checked.
	StateValidated
	// StateRepairing means a defective document is being repaired.
	StateRepairing
	// StateValid is the success terminal: a defect-free document exists.
	StateValid
	// StateFailed is the failure terminal.
	StateFailed
)

// String returns a short label for the state.
func (s State) String() string {
	switch s {
	case StateBuilding:
		return "building"
	case StateBuilt:
		return "built"
	case StateValidated:
		return "validated"
	case StateRepairing:
		return "repairing"
	case StateValid:
		return "valid"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options contains all configuration for one pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Graph definition. Template names a shipped definition; Nodes and
	// Connections define one inline. Template wins when both are set.
	Template    string                 `json:"template,omitempty"`
	Nodes       []graph.NodeSpec       `json:"nodes,omitempty"`
	Connections []graph.ConnectionSpec `json:"connections,omitempty"`

	// Document options.
	Title           string `json:"title,omitempty"`
	Description     string `json:"description,omitempty"`
	Mode            string `json:"mode,omitempty"`
	Resolution      int    `json:"resolution,omitempty"`
	Version         string `json:"version,omitempty"`
	ModifiedVersion string `json:"modified_version,omitempty"`

	// Seed drives editor-like id allocation for nodes without caller ids.
	Seed uint64 `json:"seed,omitempty"`

	// Refresh bypasses the cache for this run.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized).
	Logger *log.Logger `json:"-"`

	// AppPath enables external validation through the editor binary.
	AppPath string `json:"-"`

	// mode is the parsed emission mode, set during validation.
	mode graph.Mode

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// ValidateAndSetDefaults checks the options and fills defaults. It must be
// called before the options are used; Execute calls it on entry.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Template != "" {
		tpl, err := template.Get(o.Template)
		if err != nil {
			return errors.Wrap(errors.ErrCodeTemplateNotFound, err, "template %q", o.Template)
		}
		o.Nodes = tpl.Nodes
		o.Connections = tpl.Connections
		if o.Title == "" {
			o.Title = tpl.Name
		}
		if o.Description == "" {
			o.Description = tpl.Description
		}
	}
	if len(o.Nodes) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "no nodes: give a template or an inline definition")
	}

	if o.Mode == "" {
		o.Mode = DefaultMode
	}
	mode, err := graph.ParseMode(o.Mode)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidMode, err, "mode %q", o.Mode)
	}
	o.mode = mode

	if o.Resolution == 0 {
		o.Resolution = DefaultResolution
	}

	o.validated = true
	return nil
}

// RequestHash returns the content hash identifying this build request.
// Runtime-only fields and cache directives do not participate, so
// identical requests collapse onto one cache entry regardless of how they
// arrived.
func (o *Options) RequestHash() string {
	hashed := *o
	hashed.Refresh = false
	data, _ := json.Marshal(&hashed)
	return cache.Hash(data)
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// BuildID uniquely identifies this run.
	BuildID string

	// State is the terminal state the run reached.
	State State

	// Graph is the built node graph. Nil on cache hits.
	Graph *graph.Graph

	// Document is the serialized project file. Nil when the run failed.
	Document []byte

	// RequestHash is the content hash of the request.
	RequestHash string

	// ConnectionDefects are graph-level failures found before assembly.
	ConnectionDefects []graph.ConnectionDefect

	// Defects are structural defects still present after repair.
	Defects []terrain.StructuralDefect

	// Repaired reports whether the repair stage ran.
	Repaired bool

	// External holds the editor's verdict when external validation ran.
	External *external.Result

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the document came from cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount    int
	EdgeCount    int
	BuildTime    time.Duration
	AssembleTime time.Duration
	ValidateTime time.Duration
}
