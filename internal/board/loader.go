package board

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/wroge/wgs84"

	"github.com/tracklight/replay/pkg/core"
)

// Recognized layout coordinate reference systems. Board layouts are planar;
// geographic layouts are projected before any distance math happens.
const (
	crsWebMercator = "EPSG:3857"
	crsWGS84       = "EPSG:4326"
)

// ErrUnknownCRS is returned when a layout file declares a crs the loader
// cannot project.
var ErrUnknownCRS = errors.New("unknown layout crs")

// layoutFile is the on-disk layout format.
type layoutFile struct {
	CRS       string          `json:"crs"`
	Positions []core.Position `json:"positions"`
}

// LoadFile reads a board layout from a JSON file. A missing or unreadable
// file is a startup input error and aborts initialization.
func LoadFile(path string) (*Layout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout file: %w", err)
	}
	layout, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("layout file %s: %w", path, err)
	}
	return layout, nil
}

// Parse builds a layout from raw JSON. A crs of EPSG:4326 projects
// coordinates (x=longitude, y=latitude) to EPSG:3857 first; Euclidean
// nearest-neighbor distance needs a planar frame. An empty crs or EPSG:3857
// leaves coordinates as supplied.
func Parse(raw []byte) (*Layout, error) {
	var lf layoutFile
	if err := json.Unmarshal(raw, &lf); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	switch lf.CRS {
	case "", crsWebMercator:
	case crsWGS84:
		projectToWebMercator(lf.Positions)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCRS, lf.CRS)
	}

	return NewLayout(lf.Positions)
}

// projectToWebMercator converts geographic coordinates to EPSG:3857 in place.
func projectToWebMercator(positions []core.Position) {
	transform := wgs84.EPSG().Transform(4326, 3857)
	for i, p := range positions {
		x, y, _ := transform(p.X, p.Y, 0)
		positions[i].X = x
		positions[i].Y = y
	}
}
