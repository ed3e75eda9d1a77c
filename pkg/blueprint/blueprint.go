// Package blueprint loads graph definitions from user files.
//
// Two formats are accepted: an HCL dialect where nodes carry string labels
// and connections reference them by label, and a JSON form that references
// nodes by numeric id directly. Both produce the same spec slices the
// graph builder consumes; nothing downstream knows which format a
// definition came from.
package blueprint

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/terrasmith/terrasmith/pkg/graph"
)

// Sentinel errors for blueprint loading.
var (
	// ErrUnsupportedFormat is returned for file extensions the loader
	// does not recognize.
	ErrUnsupportedFormat = errors.New("unsupported blueprint format")

	// ErrUnknownLabel is returned when a connection references a node
	// label no node block declares.
	ErrUnknownLabel = errors.New("unknown node label")

	// ErrDuplicateLabel is returned when two node blocks share a label.
	ErrDuplicateLabel = errors.New("duplicate node label")
)

// Blueprint is a parsed graph definition, ready for the builder.
type Blueprint struct {
	Title       string
	Description string
	Mode        string // property emission mode name; empty means smart
	Resolution  int

	Nodes       []graph.NodeSpec
	Connections []graph.ConnectionSpec
}

// Load parses a blueprint file, dispatching on its extension.
func Load(path string) (*Blueprint, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return loadHCL(path)
	case ".json":
		return loadJSON(path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// idSequence hands out node ids for blocks that do not pin one. The gaps
// mimic ids the editor allocates; sequential ids mark a file as
// machine-written.
type idSequence struct {
	last int
}

func (s *idSequence) next(taken map[int]bool) int {
	if s.last == 0 {
		s.last = 110
	}
	for {
		s.last += 83
		if !taken[s.last] {
			taken[s.last] = true
			return s.last
		}
	}
}
