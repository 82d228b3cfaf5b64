package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"strings"
)

//go:embed *.json
var LevelsFS embed.FS

// Level is a vertical slice of static and moving geometry. Coordinates are
// world units with Y up.
type Level struct {
	Name      string     `json:"name"`
	Spawn     [3]float64 `json:"spawn"`
	Segments  []Segment  `json:"segments,omitempty"`
	Boxes     []Box      `json:"boxes,omitempty"`
	Platforms []Platform `json:"platforms,omitempty"`
}

type Segment struct {
	A      [2]float64 `json:"a"`
	B      [2]float64 `json:"b"`
	Radius float64    `json:"radius,omitempty"`
	Layer  string     `json:"layer,omitempty"`
}

type Box struct {
	Min   [2]float64 `json:"min"`
	Max   [2]float64 `json:"max"`
	Layer string     `json:"layer,omitempty"`
}

// Platform moves at Velocity and turns around after Travel units.
type Platform struct {
	Min      [2]float64 `json:"min"`
	Max      [2]float64 `json:"max"`
	Velocity [2]float64 `json:"velocity"`
	Travel   float64    `json:"travel,omitempty"`
	Layer    string     `json:"layer,omitempty"`
}

// LoadLevelFromFS reads an embedded level. The .json suffix is optional.
func LoadLevelFromFS(name string) (*Level, error) {
	if name == "" {
		name = "arena"
	}
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}
	data, err := fs.ReadFile(LevelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Level, error) {
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	for i, b := range lvl.Boxes {
		if b.Max[0] <= b.Min[0] || b.Max[1] <= b.Min[1] {
			return nil, fmt.Errorf("level %q: box %d has empty extent", lvl.Name, i)
		}
	}
	for i, p := range lvl.Platforms {
		if p.Max[0] <= p.Min[0] || p.Max[1] <= p.Min[1] {
			return nil, fmt.Errorf("level %q: platform %d has empty extent", lvl.Name, i)
		}
	}
	return &lvl, nil
}
