package cli

import (
	"testing"
)

func TestParseRateFlags(t *testing.T) {
	testCases := []struct {
		name    string
		in      []string
		want    map[string]float64
		wantErr bool
	}{
		{"empty", nil, nil, false},
		{"single", []string{"fluid=40"}, map[string]float64{"fluid": 40}, false},
		{"percent sign and case", []string{"Scrap = 12.5%"}, map[string]float64{"scrap": 12.5}, false},
		{"several", []string{"fluid=40", "maintenance=0"}, map[string]float64{"fluid": 40, "maintenance": 0}, false},
		{"missing value", []string{"fluid="}, nil, true},
		{"missing separator", []string{"fluid40"}, nil, true},
		{"not a number", []string{"fluid=lots"}, nil, true},
		{"duplicate", []string{"fluid=40", "FLUID=20"}, nil, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := parseRateFlags(tc.in)
			if (err != nil) != tc.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tc.wantErr)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for k, v := range tc.want {
				if got[k] != v {
					t.Errorf("%s = %v, want %v", k, got[k], v)
				}
			}
		})
	}
}

func TestParseArgs_OnlyChangedFlags(t *testing.T) {
	app := NewCLIApp("test")
	cmd := app.rootCmd
	if err := cmd.ParseFlags([]string{"-C", "tco.yaml", "--retention", "0.5", "-R", "fluid=40"}); err != nil {
		t.Fatalf("ParseFlags: %v", err)
	}

	args, err := app.parseArgs(cmd)
	if err != nil {
		t.Fatalf("parseArgs: %v", err)
	}
	if args.ConfigFile != "tco.yaml" {
		t.Errorf("config file = %q", args.ConfigFile)
	}
	if args.Retention == nil || *args.Retention != 0.5 {
		t.Errorf("retention = %v", args.Retention)
	}
	if args.ReferenceAmount != nil {
		t.Error("reference amount was not given and must stay nil")
	}
	if args.ReportType != nil {
		t.Errorf("report type default must not override the file: %v", args.ReportType)
	}
	if args.Rates["fluid"] != 40 {
		t.Errorf("rates = %v", args.Rates)
	}
}
