package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeSeedFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write seed file: %v", err)
	}
	return path
}

const validSeed = `
instruments:
  - ticker: VOLT
    company_name: Volt Motors
    open_price: 150.00
    impact_sensitivity: 0.005
    drift_volatility: 0.002
  - ticker: NIMBUS
    company_name: Nimbus Cloud
    open_price: 82.50
    impact_sensitivity: 0.008
    drift_volatility: 0.004

teams:
  - team_id: alpha
    name: Team Alpha
    password: pin1234
    starting_cash: 100000

dealers:
  - username: DEALER_1
    password: hunter2

scenarios:
  - scenario_id: volt-recall
    headline: Volt Motors recalls flagship model
    ticker: VOLT
    sentiment: -0.30
`

func TestLoadSeed_Valid(t *testing.T) {
	path := writeSeedFile(t, validSeed)

	seed, err := LoadSeedAndValidate(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(seed.Instruments) != 2 {
		t.Fatalf("instruments = %d, want 2", len(seed.Instruments))
	}
	if seed.Instruments[0].Ticker != "VOLT" {
		t.Errorf("ticker = %q, want %q", seed.Instruments[0].Ticker, "VOLT")
	}
	if seed.Instruments[0].OpenPrice != 150.00 {
		t.Errorf("open_price = %v, want 150.00", seed.Instruments[0].OpenPrice)
	}
	if seed.Instruments[0].ImpactSensitivity != 0.005 {
		t.Errorf("impact_sensitivity = %v, want 0.005", seed.Instruments[0].ImpactSensitivity)
	}

	if len(seed.Teams) != 1 {
		t.Fatalf("teams = %d, want 1", len(seed.Teams))
	}
	if seed.Teams[0].StartingCash != 100000 {
		t.Errorf("starting_cash = %v, want 100000", seed.Teams[0].StartingCash)
	}

	if len(seed.Dealers) != 1 {
		t.Fatalf("dealers = %d, want 1", len(seed.Dealers))
	}
	if seed.Dealers[0].Username != "DEALER_1" {
		t.Errorf("username = %q, want %q", seed.Dealers[0].Username, "DEALER_1")
	}

	if len(seed.Scenarios) != 1 {
		t.Fatalf("scenarios = %d, want 1", len(seed.Scenarios))
	}
	if seed.Scenarios[0].Sentiment != -0.30 {
		t.Errorf("sentiment = %v, want -0.30", seed.Scenarios[0].Sentiment)
	}
}

func TestLoadSeed_ExpandsEnvVars(t *testing.T) {
	t.Setenv("SEED_DEALER_PASSWORD", "s3cret")

	path := writeSeedFile(t, `
dealers:
  - username: DEALER_1
    password: ${SEED_DEALER_PASSWORD}
`)

	seed, err := LoadSeed(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seed.Dealers[0].Password != "s3cret" {
		t.Errorf("password = %q, want %q", seed.Dealers[0].Password, "s3cret")
	}
}

func TestLoadSeed_MissingFile(t *testing.T) {
	_, err := LoadSeed(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadSeed_MalformedYAML(t *testing.T) {
	path := writeSeedFile(t, "instruments: [unclosed")

	_, err := LoadSeed(path)
	if err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestSeedValidate_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "lowercase ticker",
			content: `
instruments:
  - ticker: volt
    company_name: Volt Motors
    open_price: 150.00
`,
			wantErr: "invalid ticker",
		},
		{
			name: "duplicate ticker",
			content: `
instruments:
  - ticker: VOLT
    company_name: Volt Motors
    open_price: 150.00
  - ticker: VOLT
    company_name: Volt Motors Again
    open_price: 90.00
`,
			wantErr: "duplicate ticker",
		},
		{
			name: "open price below floor",
			content: `
instruments:
  - ticker: VOLT
    company_name: Volt Motors
    open_price: 4.99
`,
			wantErr: "below the floor",
		},
		{
			name: "negative impact sensitivity",
			content: `
instruments:
  - ticker: VOLT
    company_name: Volt Motors
    open_price: 150.00
    impact_sensitivity: -0.1
`,
			wantErr: "impact_sensitivity",
		},
		{
			name: "missing company name",
			content: `
instruments:
  - ticker: VOLT
    open_price: 150.00
`,
			wantErr: "company_name",
		},
		{
			name: "invalid team id",
			content: `
teams:
  - team_id: "team alpha"
    name: Team Alpha
`,
			wantErr: "invalid team_id",
		},
		{
			name: "duplicate team id",
			content: `
teams:
  - team_id: alpha
    name: Team Alpha
  - team_id: alpha
    name: Also Alpha
`,
			wantErr: "duplicate team_id",
		},
		{
			name: "dealer without username",
			content: `
dealers:
  - password: hunter2
`,
			wantErr: "username",
		},
		{
			name: "scenario references unknown ticker",
			content: `
scenarios:
  - scenario_id: ghost
    headline: Ghost ticker moves
    ticker: GHOST
    sentiment: 0.1
`,
			wantErr: "unknown ticker",
		},
		{
			name: "scenario without headline",
			content: `
instruments:
  - ticker: VOLT
    company_name: Volt Motors
    open_price: 150.00
scenarios:
  - scenario_id: quiet
    ticker: VOLT
    sentiment: 0.1
`,
			wantErr: "headline",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeSeedFile(t, tt.content)

			_, err := LoadSeedAndValidate(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSeedValidate_EmptyFileIsValid(t *testing.T) {
	path := writeSeedFile(t, "")

	seed, err := LoadSeedAndValidate(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(seed.Instruments) != 0 || len(seed.Teams) != 0 {
		t.Error("empty seed should have no entries")
	}
}
