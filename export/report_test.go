package export

import (
	"os"
	"path/filepath"
	"testing"

	oilspill "github.com/spatialmodel/oilspillsim"
)

func TestReportWritesWorkbook(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "summary.xlsx")

	trajectory := []oilspill.TrajectoryPoint{
		{TimeSeconds: 3600, Lat: 30.01, Lon: -88.01},
		{TimeSeconds: 7200, Lat: 30.02, Lon: -88.03},
	}
	stats := oilspill.Statistics{
		AreaKM2:      12.3,
		MaxDriftKM:   4.5,
		RemainingPct: 72,
		Beached:      3,
	}
	if err := Report(path, trajectory, stats); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("workbook was not created: %v", err)
	}
}
