package oilspill

import (
	"context"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestParseGridScrubsNaN(t *testing.T) {
	doc := gridDocument{
		Lat: []float64{0, 1},
		Lon: []float64{0, 1},
		Variables: map[string][]float64{
			"u10": {0, math.NaN(), 1, 2},
		},
	}
	g, err := ParseGrid(doc, false)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.Sample("u10", 0, 1, 0); got != 0 {
		t.Errorf("NaN scrubbed to a non-landmask variable = %v, want 0", got)
	}

	landMask, err := ParseGrid(doc, true)
	if err != nil {
		t.Fatal(err)
	}
	if got := landMask.Sample("u10", 0, 1, 0); got != 1 {
		t.Errorf("NaN scrubbed to a land-mask variable = %v, want 1", got)
	}
}

func TestGridDocumentUnmarshalOpenVariableSet(t *testing.T) {
	raw := `{"lat":[0,1],"lon":[0,1],"u10":[1,2,3,4],"v10":[5,6,7,8]}`
	var doc gridDocument
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Lat) != 2 || len(doc.Lon) != 2 {
		t.Fatalf("decoded axes = %+v", doc)
	}
	if _, ok := doc.Variables["u10"]; !ok {
		t.Error("expected u10 to be decoded as a variable array")
	}
	if _, ok := doc.Variables["v10"]; !ok {
		t.Error("expected v10 to be decoded as a variable array")
	}
}

func TestLoadGridResourceFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wind.json")
	const contents = `{"lat":[0,1],"lon":[0,1],"u10":[0,10,20,30]}`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
	g, err := LoadGridResource(context.Background(), path, false)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := g.Sample("u10", 0.5, 0.5, 0), 15.0; !approxEqual(got, want, 1e-9) {
		t.Errorf("Sample(u10, 0.5, 0.5) = %v, want %v", got, want)
	}
}

func TestLoadGridResourceMissingFile(t *testing.T) {
	if _, err := LoadGridResource(context.Background(), "/nonexistent/grid.json", false); err == nil {
		t.Error("expected an error loading a nonexistent grid resource, got nil")
	}
}
