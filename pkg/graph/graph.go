package graph

import (
	"errors"
	"fmt"

	"github.com/terrasmith/terrasmith/pkg/registry"
)

var (
	// ErrUnknownNodeType is returned by [Build] when a node spec names a type
	// the registry does not define. Types are never invented.
	ErrUnknownNodeType = errors.New("unknown node type")

	// ErrDuplicateNodeID is returned by [Build] when two node specs carry the
	// same caller id. Caller ids must be unique but need not be sequential.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrUnknownNodeReference is returned by [Build] when a connection spec
	// references a node id absent from the node list. A common caller error
	// is carrying the id in the wrong representation (text versus number);
	// lookups are strict by integer id and never silently miss.
	ErrUnknownNodeReference = errors.New("unknown node reference")

	// ErrUnknownPort is returned by [Build] when a connection spec names a
	// port the endpoint's type does not declare.
	ErrUnknownPort = errors.New("unknown port")
)

// NodeSpec describes one requested node.
type NodeSpec struct {
	ID         int            // caller id; 0 means allocate an editor-like id
	Type       string         // registry type name
	Name       string         // display name; defaults to the type name
	X, Y       float64        // canvas position
	Properties map[string]any // property overrides, keys may be display forms
	Save       *SaveSpec      // optional embedded save/export descriptor
}

// SaveSpec is the embedded save/export descriptor carried by output nodes.
// It is serialized inside the node, never as a separate top-level list.
type SaveSpec struct {
	Filename string
	Format   string
}

// ConnectionSpec describes one requested directed connection.
type ConnectionSpec struct {
	From     int    // source node caller id
	FromPort string // "Out" or a named auxiliary output on the source
	To       int    // destination node caller id
	ToPort   string // "In", "Mask", "Input2", ...
}

// Connection is a directed edge between two ports.
type Connection struct {
	FromNode int
	FromPort string
	ToNode   int
	ToPort   string
}

// Port is an attachment point on a node. A port accumulates pending
// connections during construction; the validator enforces that at most one
// survives.
type Port struct {
	Def     registry.PortDefinition
	Node    *Node         // owning node
	Pending []*Connection // populated by Build, checked by ValidateConnections
}

// Name returns the port's declared name.
func (p *Port) Name() string { return p.Def.Name }

// Connection returns the port's single connection record, or nil.
// Only meaningful after the graph has passed validation.
func (p *Port) Connection() *Connection {
	if len(p.Pending) == 0 {
		return nil
	}
	return p.Pending[0]
}

// Node is an instance of a registered node type.
type Node struct {
	ID   int
	Type *registry.NodeTypeDefinition
	Name string
	X, Y float64

	// Overrides are the caller's raw property overrides as supplied.
	Overrides map[string]any

	// Properties is the resolved property map. Nil until property
	// resolution has run.
	Properties map[string]any

	Ports []*Port
	Save  *SaveSpec
}

// Port returns the node's port with the given name.
func (n *Node) Port(name string) (*Port, bool) {
	for _, p := range n.Ports {
		if p.Def.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Graph is the in-memory node/port/connection graph.
type Graph struct {
	reg   *registry.Registry
	nodes map[int]*Node
	order []int // caller ids in construction order
	conns []*Connection
}

// Registry returns the registry the graph was built against.
func (g *Graph) Registry() *registry.Registry { return g.reg }

// Node returns the node with the given caller id.
// Lookup is strict by integer id.
func (g *Graph) Node(id int) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all nodes in construction order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Connections returns all connections in construction order.
func (g *Graph) Connections() []*Connection {
	out := make([]*Connection, len(g.conns))
	copy(out, g.conns)
	return out
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// Options configures graph construction.
type Options struct {
	// Seed drives editor-like id allocation for node specs without caller
	// ids. The editor assigns irregular, non-sequential ids; mirroring that
	// keeps generated files indistinguishable from hand-built ones.
	Seed uint64
}

// Build constructs a graph from node and connection specs.
//
// Any schema or reference failure aborts construction immediately - no
// partial graph is returned. Direction, requiredness, and duplicate
// connection rules are deferred to [ValidateConnections] so they can be
// collected rather than failing one at a time.
func Build(reg *registry.Registry, nodes []NodeSpec, conns []ConnectionSpec, opts Options) (*Graph, error) {
	g := &Graph{
		reg:   reg,
		nodes: make(map[int]*Node, len(nodes)),
	}

	used := make(map[int]bool, len(nodes))
	for _, spec := range nodes {
		if spec.ID != 0 {
			if used[spec.ID] {
				return nil, fmt.Errorf("%w: %d", ErrDuplicateNodeID, spec.ID)
			}
			used[spec.ID] = true
		}
	}

	ids := newIDAllocator(opts.Seed)
	for _, spec := range nodes {
		def, err := reg.Definition(spec.Type)
		if err != nil {
			if errors.Is(err, registry.ErrUnknownType) {
				return nil, fmt.Errorf("%w: %s", ErrUnknownNodeType, spec.Type)
			}
			return nil, err
		}

		id := spec.ID
		if id == 0 {
			id = ids.next(used)
			used[id] = true
		}

		name := spec.Name
		if name == "" {
			name = def.Name
		}

		n := &Node{
			ID:        id,
			Type:      def,
			Name:      name,
			X:         spec.X,
			Y:         spec.Y,
			Overrides: spec.Properties,
			Save:      spec.Save,
		}
		for _, pd := range def.Ports {
			n.Ports = append(n.Ports, &Port{Def: pd, Node: n})
		}

		g.nodes[id] = n
		g.order = append(g.order, id)
	}

	for _, spec := range conns {
		from, ok := g.nodes[spec.From]
		if !ok {
			return nil, fmt.Errorf("%w: connection source %d is not in the node list", ErrUnknownNodeReference, spec.From)
		}
		to, ok := g.nodes[spec.To]
		if !ok {
			return nil, fmt.Errorf("%w: connection target %d is not in the node list", ErrUnknownNodeReference, spec.To)
		}

		fromPort, ok := from.Port(spec.FromPort)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no port %q", ErrUnknownPort, from.Type.Name, spec.FromPort)
		}
		toPort, ok := to.Port(spec.ToPort)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no port %q", ErrUnknownPort, to.Type.Name, spec.ToPort)
		}

		c := &Connection{
			FromNode: spec.From,
			FromPort: spec.FromPort,
			ToNode:   spec.To,
			ToPort:   spec.ToPort,
		}
		fromPort.Pending = append(fromPort.Pending, c)
		toPort.Pending = append(toPort.Pending, c)
		g.conns = append(g.conns, c)
	}

	return g, nil
}
