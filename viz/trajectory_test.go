package viz

import (
	"bytes"
	"testing"

	oilspill "github.com/spatialmodel/oilspillsim"
)

func samplePoints() []oilspill.TrajectoryPoint {
	return []oilspill.TrajectoryPoint{
		{TimeSeconds: 3600, Lat: 30.01, Lon: -88.01, EvaporatedPct: 5, DispersedPct: 1, EmulsionPct: 0},
		{TimeSeconds: 7200, Lat: 30.04, Lon: -88.05, EvaporatedPct: 9, DispersedPct: 3, EmulsionPct: 2},
		{TimeSeconds: 10800, Lat: 30.08, Lon: -88.09, EvaporatedPct: 12, DispersedPct: 4, EmulsionPct: 5},
	}
}

func TestTrajectoryRendersPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := Trajectory(&buf, samplePoints()); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("Trajectory wrote no bytes")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("Trajectory output is not a PNG")
	}
}

func TestWeatheringSeriesRendersPNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WeatheringSeries(&buf, samplePoints()); err != nil {
		t.Fatal(err)
	}
	if buf.Len() == 0 {
		t.Error("WeatheringSeries wrote no bytes")
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("WeatheringSeries output is not a PNG")
	}
}
