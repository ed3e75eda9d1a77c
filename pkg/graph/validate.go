package graph

import (
	"fmt"

	"github.com/terrasmith/terrasmith/pkg/registry"
)

// DefectKind classifies a connection defect.
type DefectKind int

const (
	// DefectMissingRequired flags a required input port with no connection.
	DefectMissingRequired DefectKind = iota
	// DefectDuplicateConnection flags a port carrying more than one
	// connection.
	DefectDuplicateConnection
	// DefectBadFromPort flags a connection whose from-port is not "Out" and
	// not a declared auxiliary output on the source node.
	DefectBadFromPort
	// DefectDirection flags a connection endpoint whose declared direction
	// does not match its role.
	DefectDirection
)

// String returns a short label for the defect kind.
func (k DefectKind) String() string {
	switch k {
	case DefectMissingRequired:
		return "missing-required-connection"
	case DefectDuplicateConnection:
		return "duplicate-connection"
	case DefectBadFromPort:
		return "bad-from-port"
	case DefectDirection:
		return "direction-mismatch"
	default:
		return "unknown"
	}
}

// ConnectionDefect describes one rule violation found by
// [ValidateConnections].
type ConnectionDefect struct {
	Kind    DefectKind
	NodeID  int    // node owning the offending port
	Port    string // offending port name
	Message string
}

// Error-style formatting for logs and CLI output.
func (d ConnectionDefect) String() string {
	return fmt.Sprintf("%s: node %d port %q: %s", d.Kind, d.NodeID, d.Port, d.Message)
}

// ValidateConnections checks every connection rule across the graph and
// returns the complete defect set. It never fails fast: a caller fixing a
// graph sees everything wrong with it in one call.
//
// Rules:
//   - every required input port carries exactly one connection
//   - a destination port's declared direction is always "In", even for
//     masking signals - direction is a property of the port declaration,
//     not of data-flow topology
//   - a connection's from-port is the literal "Out" unless the source node
//     declares a named auxiliary output, in which case that literal name is
//     required
//   - no port carries more than one connection
func ValidateConnections(g *Graph) []ConnectionDefect {
	var defects []ConnectionDefect

	for _, n := range g.Nodes() {
		for _, p := range n.Ports {
			if p.Def.Required && p.Def.Dir == registry.In && len(p.Pending) == 0 {
				defects = append(defects, ConnectionDefect{
					Kind:    DefectMissingRequired,
					NodeID:  n.ID,
					Port:    p.Def.Name,
					Message: "required input has no connection",
				})
			}
			if len(p.Pending) > 1 {
				defects = append(defects, ConnectionDefect{
					Kind:    DefectDuplicateConnection,
					NodeID:  n.ID,
					Port:    p.Def.Name,
					Message: fmt.Sprintf("%d connections on one port", len(p.Pending)),
				})
			}
		}
	}

	for _, c := range g.Connections() {
		from, _ := g.Node(c.FromNode)
		to, _ := g.Node(c.ToNode)

		if fromPort, ok := from.Port(c.FromPort); ok {
			if fromPort.Def.Dir != registry.Out {
				defects = append(defects, ConnectionDefect{
					Kind:    DefectDirection,
					NodeID:  from.ID,
					Port:    c.FromPort,
					Message: "connection source must be an output port",
				})
			}
		}

		if toPort, ok := to.Port(c.ToPort); ok {
			if toPort.Def.Dir != registry.In {
				defects = append(defects, ConnectionDefect{
					Kind:    DefectDirection,
					NodeID:  to.ID,
					Port:    c.ToPort,
					Message: "connection target must be an input port",
				})
			}
		}

		if c.FromPort != "Out" {
			aux := false
			for _, name := range from.Type.AuxiliaryOutputs() {
				if name == c.FromPort {
					aux = true
					break
				}
			}
			if !aux {
				defects = append(defects, ConnectionDefect{
					Kind:    DefectBadFromPort,
					NodeID:  from.ID,
					Port:    c.FromPort,
					Message: fmt.Sprintf("%s exposes no auxiliary output %q; use \"Out\"", from.Type.Name, c.FromPort),
				})
			}
		}
	}

	return defects
}
