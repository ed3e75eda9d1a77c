package terrain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/terrasmith/terrasmith/pkg/graph"
	"github.com/terrasmith/terrasmith/pkg/ident"
	"github.com/terrasmith/terrasmith/pkg/registry"
)

// ErrUnpairedVersion is returned by [Assemble] when a populated project
// version has no modified-version counterpart. The editor rejects files
// where the pair is incomplete, so the engine refuses to emit them.
var ErrUnpairedVersion = errors.New("populated version requires a modified version counterpart")

// Default build definition values, taken from files the editor writes for a
// fresh project.
const (
	DefaultResolution  = 1024
	defaultBakeRes     = 2048
	defaultCanvasW     = 5000.0
	defaultCanvasH     = 2500.0
	defaultDestination = `<Builds>\[Filename]\[+++]`
)

// Document is one assembled project file generation.
type Document struct {
	Root *Object
}

// Bytes renders the document as indented JSON.
func (d *Document) Bytes() ([]byte, error) {
	return json.MarshalIndent(d.Root, "", "  ")
}

// ParseDocument re-parses a serialized project file, preserving key order.
func ParseDocument(data []byte) (*Document, error) {
	root := NewPlainObject()
	if err := json.Unmarshal(data, root); err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return &Document{Root: root}, nil
}

// Equal compares two documents by serialized form.
func (d *Document) Equal(other *Document) bool {
	a, err1 := d.Bytes()
	b, err2 := other.Bytes()
	return err1 == nil && err2 == nil && string(a) == string(b)
}

// AssembleOptions configures document assembly.
type AssembleOptions struct {
	Title           string // project name; defaults to "Untitled"
	Description     string
	Version         string // must stay empty unless ModifiedVersion is set
	ModifiedVersion string
	Resolution      int // build resolution; defaults to DefaultResolution

	// Alloc is the structural identity allocator for this document.
	// A fresh one is created when nil. Never share an allocator across
	// documents.
	Alloc *ident.Allocator

	// ProjectID overrides the generated project identity (tests).
	ProjectID string

	// Clock overrides the timestamp source (tests).
	Clock func() time.Time
}

// Assemble renders a graph into a project document.
//
// The graph must already have resolved properties and should have passed
// connection validation; Assemble emits what it is given. Section and key
// ordering follows files saved by the editor: per-node property keys come
// before the common identity/name/position/port block, and every empty
// collection is an identified "$values" placeholder rather than a bare
// list.
func Assemble(g *graph.Graph, opts AssembleOptions) (*Document, error) {
	if opts.Version != "" && opts.ModifiedVersion == "" {
		return nil, fmt.Errorf("%w: version %q", ErrUnpairedVersion, opts.Version)
	}

	a := opts.Alloc
	if a == nil {
		a = ident.New()
	}
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	projectID := opts.ProjectID
	if projectID == "" {
		projectID = uuid.NewString()
	}
	title := opts.Title
	if title == "" {
		title = "Untitled"
	}
	resolution := opts.Resolution
	if resolution == 0 {
		resolution = DefaultResolution
	}
	now := clock().UTC().Format("2006-01-02T15:04:05Z")

	root := NewObject(a)

	terrainObj, err := assembleTerrain(g, a, title, opts.Description, now)
	if err != nil {
		return nil, err
	}
	asset := NewObject(a).Set("Terrain", terrainObj)
	root.Set("Assets", NewValues(a, asset))

	root.Set("Id", projectID)
	root.Set("Branch", 1)

	meta := NewObject(a).
		Set("Name", title).
		Set("Description", opts.Description).
		Set("Version", opts.Version)
	if opts.ModifiedVersion != "" {
		meta.Set("ModifiedVersion", opts.ModifiedVersion)
	}
	meta.Set("DateCreated", now).
		Set("DateLastBuilt", "").
		Set("DateLastSaved", now)
	root.Set("Metadata", meta)

	automation := NewObject(a).
		Set("Bindings", NewValues(a)).
		Set("BoundProperties", NewValues(a)).
		Set("Variables", NewObject(a))
	root.Set("Automation", automation)

	build := NewObject(a).
		Set("Destination", defaultDestination).
		Set("Resolution", resolution).
		Set("BakeResolution", defaultBakeRes).
		Set("TileResolution", resolution).
		Set("EdgeBlending", 0.25).
		Set("OrganizeFiles", "PerNode")
	root.Set("BuildDefinition", build)

	root.Set("State", assembleState(g, a))

	return &Document{Root: root}, nil
}

func assembleTerrain(g *graph.Graph, a *ident.Allocator, title, description, now string) (*Object, error) {
	terrain := NewObject(a)
	terrain.Set("Id", uuid.NewString())

	meta := NewObject(a).
		Set("Name", title).
		Set("Description", description).
		Set("Version", "").
		Set("DateCreated", now).
		Set("DateLastBuilt", "").
		Set("DateLastSaved", now)
	terrain.Set("Metadata", meta)

	nodes := NewObject(a)
	for _, n := range g.Nodes() {
		nodeObj, err := assembleNode(n, a)
		if err != nil {
			return nil, err
		}
		nodes.Set(strconv.Itoa(n.ID), nodeObj)
	}
	terrain.Set("Nodes", nodes)

	terrain.Set("Groups", NewValues(a))
	terrain.Set("Notes", NewValues(a))

	tab := NewObject(a).
		Set("Name", "Graph 1").
		Set("Color", "Brass").
		Set("ZoomFactor", 0.5).
		Set("ViewportLocation", NewObject(a).Set("X", 25000.0).Set("Y", 25000.0))
	terrain.Set("GraphTabs", NewValues(a, tab))

	terrain.Set("Width", defaultCanvasW)
	terrain.Set("Height", defaultCanvasH)
	terrain.Set("Ratio", defaultCanvasH/defaultCanvasW)

	return terrain, nil
}

// assembleNode writes one node object. Key placement follows the type's
// ordering policy; the observed editor order is property keys first.
func assembleNode(n *graph.Node, a *ident.Allocator) (*Object, error) {
	obj := NewObject(a)
	obj.Set("$type", n.Type.TypeString)

	writeProps := func() {
		for _, p := range n.Type.Properties {
			if v, ok := n.Properties[p.Key]; ok {
				obj.Set(p.Key, v)
			}
		}
	}

	if n.Type.KeyOrder == registry.PropsFirst {
		writeProps()
	}

	obj.Set("Id", n.ID)
	obj.Set("Name", n.Name)
	obj.Set("Position", NewObject(a).Set("X", n.X).Set("Y", n.Y))
	for _, extra := range n.Type.ExtraNumeric {
		obj.Set(extra.Name, extra.Value)
	}

	nodeID, _ := obj.ID()
	ports := make([]any, 0, len(n.Ports))
	for _, p := range n.Ports {
		ports = append(ports, assemblePort(n, p, nodeID, a))
	}
	obj.Set("Ports", NewValues(a, ports...))

	if n.Type.EmbedsSaveDefinition && n.Save != nil {
		save := NewObject(a).
			Set("Node", n.ID).
			Set("Filename", n.Save.Filename).
			Set("Format", n.Save.Format).
			Set("IsEnabled", true)
		obj.Set("SaveDefinition", save)
	}

	obj.Set("Modifiers", NewValues(a))
	obj.Set("SnapIns", NewValues(a))

	if n.Type.KeyOrder == registry.PropsLast {
		writeProps()
	}

	return obj, nil
}

func assemblePort(n *graph.Node, p *graph.Port, ownerID string, a *ident.Allocator) *Object {
	obj := NewObject(a).
		Set("Name", p.Def.Name).
		Set("Type", portTypeString(p.Def))

	// The record lives on the destination port. Its direction is the
	// port's declared direction - "In" even for masking signals - not a
	// statement about where the data came from.
	if c := p.Connection(); c != nil && c.ToNode == n.ID && c.ToPort == p.Def.Name {
		record := NewObject(a).
			Set("From", c.FromNode).
			Set("To", c.ToNode).
			Set("FromPort", c.FromPort).
			Set("ToPort", c.ToPort).
			Set("IsValid", true)
		obj.Set("Record", record)
	}

	owner, _ := strconv.Atoi(ownerID)
	obj.Set("Parent", ident.Ref{Target: ident.ID(owner)})
	return obj
}

// portTypeString maps a port declaration to the editor's serialized type
// label.
func portTypeString(def registry.PortDefinition) string {
	switch {
	case def.Dir == registry.In && def.Name == "In" && def.Required:
		return "PrimaryIn, Required"
	case def.Dir == registry.In && def.Name == "In":
		return "PrimaryIn"
	case def.Dir == registry.In:
		return "In"
	case def.IsPrimaryOut():
		return "PrimaryOut"
	default:
		return "Out"
	}
}

func assembleState(g *graph.Graph, a *ident.Allocator) *Object {
	selected := 0
	if nodes := g.Nodes(); len(nodes) > 0 {
		selected = nodes[len(nodes)-1].ID
	}

	camera := NewObject(a).
		Set("Position", NewObject(a).Set("X", 0.0).Set("Y", 1000.0).Set("Z", 2500.0)).
		Set("Rotation", 0.0)

	viewport := NewObject(a).
		Set("Camera", camera).
		Set("RenderMode", "Realistic").
		Set("SunAltitude", 33.0).
		Set("SunAzimuth", 45.0)

	return NewObject(a).
		Set("BakeResolution", defaultBakeRes).
		Set("PreviewResolution", defaultBakeRes).
		Set("SelectedNode", selected).
		Set("NodeBookmarks", NewValues(a)).
		Set("Viewport", viewport)
}
