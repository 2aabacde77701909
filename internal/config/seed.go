package config

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

var (
	seedTickerRegex = regexp.MustCompile(`^[A-Z]{1,10}$`)
	seedIDRegex     = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)
)

// SeedInstrument is one tradable ticker in the seed file.
type SeedInstrument struct {
	Ticker            string  `yaml:"ticker"`
	CompanyName       string  `yaml:"company_name"`
	OpenPrice         float64 `yaml:"open_price"`
	ImpactSensitivity float64 `yaml:"impact_sensitivity"`
	DriftVolatility   float64 `yaml:"drift_volatility"`
}

// SeedTeam is a pre-registered team in the seed file.
type SeedTeam struct {
	TeamID       string  `yaml:"team_id"`
	Name         string  `yaml:"name"`
	Password     string  `yaml:"password"`
	StartingCash float64 `yaml:"starting_cash"`
}

// SeedDealer is a dealer identity in the seed file.
type SeedDealer struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// SeedScenario is a pre-scripted news event in the seed file.
type SeedScenario struct {
	ScenarioID string  `yaml:"scenario_id"`
	Headline   string  `yaml:"headline"`
	Ticker     string  `yaml:"ticker"`
	Sentiment  float64 `yaml:"sentiment"`
}

// SeedFile is the initial market state loaded at startup when SEED_FILE
// is set.
type SeedFile struct {
	Instruments []SeedInstrument `yaml:"instruments"`
	Teams       []SeedTeam       `yaml:"teams"`
	Dealers     []SeedDealer     `yaml:"dealers"`
	Scenarios   []SeedScenario   `yaml:"scenarios"`
}

// LoadSeed reads and parses a YAML seed file. Environment variables in the
// file are expanded before parsing.
func LoadSeed(path string) (*SeedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	var seed SeedFile
	if err := yaml.Unmarshal([]byte(expanded), &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	return &seed, nil
}

// LoadSeedAndValidate reads, parses, and validates a seed file in one step.
func LoadSeedAndValidate(path string) (*SeedFile, error) {
	seed, err := LoadSeed(path)
	if err != nil {
		return nil, err
	}
	if err := seed.Validate(); err != nil {
		return nil, fmt.Errorf("validating seed file: %w", err)
	}
	return seed, nil
}

// Validate checks every seed entry. The floor price check mirrors the
// engine's clamp so a seeded quote can never start below it.
func (s *SeedFile) Validate() error {
	const floorPrice = 5.0

	tickers := make(map[string]bool, len(s.Instruments))
	for i, inst := range s.Instruments {
		if !seedTickerRegex.MatchString(inst.Ticker) {
			return fmt.Errorf("instrument %d: invalid ticker %q", i, inst.Ticker)
		}
		if tickers[inst.Ticker] {
			return fmt.Errorf("instrument %d: duplicate ticker %q", i, inst.Ticker)
		}
		tickers[inst.Ticker] = true
		if inst.CompanyName == "" {
			return fmt.Errorf("instrument %q: company_name is required", inst.Ticker)
		}
		if inst.OpenPrice < floorPrice {
			return fmt.Errorf("instrument %q: open_price %.2f is below the floor price %.2f", inst.Ticker, inst.OpenPrice, floorPrice)
		}
		if inst.ImpactSensitivity < 0 {
			return fmt.Errorf("instrument %q: impact_sensitivity must be >= 0", inst.Ticker)
		}
		if inst.DriftVolatility < 0 {
			return fmt.Errorf("instrument %q: drift_volatility must be >= 0", inst.Ticker)
		}
	}

	teamIDs := make(map[string]bool, len(s.Teams))
	for i, team := range s.Teams {
		if !seedIDRegex.MatchString(team.TeamID) {
			return fmt.Errorf("team %d: invalid team_id %q", i, team.TeamID)
		}
		if teamIDs[team.TeamID] {
			return fmt.Errorf("team %d: duplicate team_id %q", i, team.TeamID)
		}
		teamIDs[team.TeamID] = true
		if team.Name == "" {
			return fmt.Errorf("team %q: name is required", team.TeamID)
		}
		if team.StartingCash < 0 {
			return fmt.Errorf("team %q: starting_cash must be >= 0", team.TeamID)
		}
	}

	dealers := make(map[string]bool, len(s.Dealers))
	for i, dealer := range s.Dealers {
		if dealer.Username == "" {
			return fmt.Errorf("dealer %d: username is required", i)
		}
		if dealers[dealer.Username] {
			return fmt.Errorf("dealer %d: duplicate username %q", i, dealer.Username)
		}
		dealers[dealer.Username] = true
	}

	scenarioIDs := make(map[string]bool, len(s.Scenarios))
	for i, sc := range s.Scenarios {
		if !seedIDRegex.MatchString(sc.ScenarioID) {
			return fmt.Errorf("scenario %d: invalid scenario_id %q", i, sc.ScenarioID)
		}
		if scenarioIDs[sc.ScenarioID] {
			return fmt.Errorf("scenario %d: duplicate scenario_id %q", i, sc.ScenarioID)
		}
		scenarioIDs[sc.ScenarioID] = true
		if sc.Headline == "" {
			return fmt.Errorf("scenario %q: headline is required", sc.ScenarioID)
		}
		if !tickers[sc.Ticker] {
			return fmt.Errorf("scenario %q: unknown ticker %q", sc.ScenarioID, sc.Ticker)
		}
	}

	return nil
}
