package board

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestParse_PlanarLayout(t *testing.T) {
	raw := []byte(`{
		"positions": [
			{"id": 1, "x": 6413, "y": 33},
			{"id": 2, "x": 6007, "y": 197}
		]
	}`)

	layout, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if layout.Len() != 2 {
		t.Errorf("expected 2 positions, got %d", layout.Len())
	}

	p, ok := layout.Position(1)
	if !ok {
		t.Fatal("expected position 1")
	}
	if p.X != 6413 || p.Y != 33 {
		t.Errorf("expected (6413,33), got (%f,%f)", p.X, p.Y)
	}
}

func TestParse_ExplicitWebMercator(t *testing.T) {
	raw := []byte(`{
		"crs": "EPSG:3857",
		"positions": [{"id": 1, "x": 100, "y": 200}]
	}`)

	layout, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p, _ := layout.Position(1)
	if p.X != 100 || p.Y != 200 {
		t.Errorf("EPSG:3857 coordinates must pass through unchanged, got (%f,%f)", p.X, p.Y)
	}
}

func TestParse_ProjectsWGS84(t *testing.T) {
	// Longitudes/latitudes near the Zandvoort circuit.
	raw := []byte(`{
		"crs": "EPSG:4326",
		"positions": [
			{"id": 1, "x": 4.54, "y": 52.39},
			{"id": 2, "x": 4.55, "y": 52.39}
		]
	}`)

	layout, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p1, _ := layout.Position(1)
	p2, _ := layout.Position(2)

	// Projected web-mercator values are meters, far from the raw degrees.
	if p1.X < 100000 {
		t.Errorf("expected projected X in meters, got %f", p1.X)
	}
	if p1.Y < 1000000 {
		t.Errorf("expected projected Y in meters, got %f", p1.Y)
	}
	// Relative ordering along the longitude axis survives projection.
	if p2.X <= p1.X {
		t.Errorf("expected p2.X > p1.X after projection, got %f <= %f", p2.X, p1.X)
	}
}

func TestParse_UnknownCRS(t *testing.T) {
	raw := []byte(`{"crs": "EPSG:27700", "positions": [{"id": 1, "x": 0, "y": 0}]}`)

	_, err := Parse(raw)
	if err == nil {
		t.Fatal("expected error for unknown crs")
	}
	if !errors.Is(err, ErrUnknownCRS) {
		t.Errorf("expected ErrUnknownCRS, got %v", err)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	_, err := Parse([]byte(`{"positions": [`))
	if err == nil {
		t.Fatal("expected error for malformed JSON")
	}
}

func TestParse_EmptyPositions(t *testing.T) {
	_, err := Parse([]byte(`{"positions": []}`))
	if err == nil {
		t.Fatal("expected error for empty positions")
	}
	if !errors.Is(err, ErrEmptyLayout) {
		t.Errorf("expected ErrEmptyLayout, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "layout.json")
	content := `{"positions": [{"id": 1, "x": 1, "y": 2}, {"id": 2, "x": 3, "y": 4}]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing layout file: %v", err)
	}

	layout, err := LoadFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if layout.Len() != 2 {
		t.Errorf("expected 2 positions, got %d", layout.Len())
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}
