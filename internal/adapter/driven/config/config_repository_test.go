package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/diillson/tco-compare-go/internal/shared/types"
)

func TestWriteAndLoadRoundTrip(t *testing.T) {
	repo := NewConfigRepository()

	for _, ext := range []string{".toml", ".yaml", ".json"} {
		t.Run(ext, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "tco"+ext)
			want := types.ExampleConfig()

			written, err := repo.WriteConfigFile(path, want)
			if err != nil {
				t.Fatalf("WriteConfigFile: %v", err)
			}
			if !filepath.IsAbs(written) {
				t.Errorf("returned path %q is not absolute", written)
			}

			got, err := repo.LoadConfigFile(path)
			if err != nil {
				t.Fatalf("LoadConfigFile: %v", err)
			}
			if !reflect.DeepEqual(got.Process, want.Process) {
				t.Errorf("process section changed:\n got %+v\nwant %+v", got.Process, want.Process)
			}
			if !reflect.DeepEqual(got.Rates, want.Rates) {
				t.Errorf("rates = %v, want %v", got.Rates, want.Rates)
			}
			if got.Projected != nil || got.Retention != nil {
				t.Error("unset optional sections should stay nil")
			}
			if got.ReportName != want.ReportName || got.Reference != want.Reference {
				t.Errorf("report name %q, reference %q", got.ReportName, got.Reference)
			}
		})
	}
}

func TestLoadConfigFile_Scenario(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	body := `
process:
  process_type: subtractive
  fluid:
    annual_spend: 40000
  scrap:
    rate_percent: 4
projected:
  process_type: subtractive
  fluid:
    annual_spend: 30000
  scrap:
    rate_percent: 3
retention: 0.5
report_type: [json, pdf]
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if cfg.Projected == nil || cfg.Projected.Fluid.AnnualSpend != 30000 {
		t.Fatalf("projected section not loaded: %+v", cfg.Projected)
	}
	if cfg.Retention == nil || *cfg.Retention != 0.5 {
		t.Errorf("retention = %v", cfg.Retention)
	}
	if len(cfg.ReportType) != 2 {
		t.Errorf("report types = %v", cfg.ReportType)
	}
}

func TestLoadConfigFile_Errors(t *testing.T) {
	dir := t.TempDir()
	repo := NewConfigRepository()

	ini := filepath.Join(dir, "tco.ini")
	if err := os.WriteFile(ini, []byte("x=1"), 0o644); err != nil {
		t.Fatal(err)
	}

	testCases := []struct {
		name string
		path string
		want error
	}{
		{"empty path", "", types.ErrMissingConfigFile},
		{"unsupported extension", ini, types.ErrUnsupportedFileFormat},
		{"missing file", filepath.Join(dir, "nope.toml"), os.ErrNotExist},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := repo.LoadConfigFile(tc.path)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
		})
	}

	if _, err := repo.LoadConfigFile(dir); err == nil {
		t.Error("loading a directory should fail")
	}
	if _, err := repo.WriteConfigFile(filepath.Join(dir, "tco.ini"), types.ExampleConfig()); !errors.Is(err, types.ErrUnsupportedFileFormat) {
		t.Errorf("write with unsupported extension: %v", err)
	}
}

func TestWriteConfigFile_TOMLKeepsScalarsAtTheirLevel(t *testing.T) {
	repo := NewConfigRepository()
	path := filepath.Join(t.TempDir(), "tco.toml")

	want := types.ExampleConfig()
	want.Rates = nil
	if _, err := repo.WriteConfigFile(path, want); err != nil {
		t.Fatalf("WriteConfigFile: %v", err)
	}

	got, err := repo.LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}
	if got.Process.Maintenance.AnnualAddon != 2500 {
		t.Errorf("annual_addon = %v, want 2500", got.Process.Maintenance.AnnualAddon)
	}
	if len(got.Process.Maintenance.Events) != 1 {
		t.Errorf("events = %+v", got.Process.Maintenance.Events)
	}
	if got.Dir != want.Dir || !reflect.DeepEqual(got.ReportType, want.ReportType) {
		t.Errorf("dir %q, report types %v", got.Dir, got.ReportType)
	}
}

func TestLoadConfigFile_TOMLIntegerLiterals(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tco.toml")
	body := `title = "integers"
retention = 1
report_type = ["csv"]

[process]
  process_type = "forming"

  [process.fluid]
    price_per_unit = 18
    annual_volume = 5000

  [process.scrap]
    rate_percent = 2.5
    units_produced = 1250000
    cost_per_unit = 3

  [process.maintenance]
    annual_addon = 2500

    [[process.maintenance.events]]
      label = "die clean-out"
      event_cost = 1200
      frequency = 12

[rates]
  fluid = 50
  maintenance = 30.5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewConfigRepository().LoadConfigFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFile: %v", err)
	}

	testCases := []struct {
		name string
		got  float64
		want float64
	}{
		{"price_per_unit", cfg.Process.Fluid.PricePerUnit, 18},
		{"annual_volume", cfg.Process.Fluid.AnnualVolume, 5000},
		{"cost_per_unit", cfg.Process.Scrap.CostPerUnit, 3},
		{"annual_addon", cfg.Process.Maintenance.AnnualAddon, 2500},
		{"rates.fluid", cfg.Rates["fluid"], 50},
		{"rates.maintenance", cfg.Rates["maintenance"], 30.5},
	}
	for _, tc := range testCases {
		if tc.got != tc.want {
			t.Errorf("%s = %v, want %v", tc.name, tc.got, tc.want)
		}
	}
	if cfg.Retention == nil || *cfg.Retention != 1 {
		t.Errorf("retention = %v", cfg.Retention)
	}
	if cfg.Process.Scrap.UnitsProduced != 1250000 {
		t.Errorf("units_produced = %d", cfg.Process.Scrap.UnitsProduced)
	}
	if ev := cfg.Process.Maintenance.Events; len(ev) != 1 || ev[0].Frequency != 12 || ev[0].EventCost != 1200 {
		t.Errorf("events = %+v", ev)
	}
}
