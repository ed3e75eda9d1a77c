package blueprint

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/terrasmith/terrasmith/pkg/graph"
)

// jsonFile mirrors the JSON blueprint layout. Nodes reference each other
// by numeric id, matching what the engine serializes.
type jsonFile struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Mode        string           `json:"mode"`
	Resolution  int              `json:"resolution"`
	Nodes       []jsonNode       `json:"nodes"`
	Connections []jsonConnection `json:"connections"`
}

type jsonNode struct {
	ID         int            `json:"id"`
	Type       string         `json:"type"`
	Name       string         `json:"name"`
	X          float64        `json:"x"`
	Y          float64        `json:"y"`
	Properties map[string]any `json:"properties"`
	Save       *jsonSave      `json:"save"`
}

type jsonSave struct {
	Filename string `json:"filename"`
	Format   string `json:"format"`
}

type jsonConnection struct {
	From     int    `json:"from"`
	FromPort string `json:"from_port"`
	To       int    `json:"to"`
	ToPort   string `json:"to_port"`
}

func loadJSON(path string) (*Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read blueprint: %w", err)
	}

	var parsed jsonFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("decode blueprint %s: %w", path, err)
	}

	bp := &Blueprint{
		Title:       parsed.Title,
		Description: parsed.Description,
		Mode:        parsed.Mode,
		Resolution:  parsed.Resolution,
	}

	for _, n := range parsed.Nodes {
		spec := graph.NodeSpec{
			ID:         n.ID,
			Type:       n.Type,
			Name:       n.Name,
			X:          n.X,
			Y:          n.Y,
			Properties: n.Properties,
		}
		if n.Save != nil {
			spec.Save = &graph.SaveSpec{Filename: n.Save.Filename, Format: n.Save.Format}
		}
		bp.Nodes = append(bp.Nodes, spec)
	}

	for _, c := range parsed.Connections {
		fromPort := c.FromPort
		if fromPort == "" {
			fromPort = "Out"
		}
		toPort := c.ToPort
		if toPort == "" {
			toPort = "In"
		}
		bp.Connections = append(bp.Connections, graph.ConnectionSpec{
			From: c.From, FromPort: fromPort,
			To: c.To, ToPort: toPort,
		})
	}

	return bp, nil
}
