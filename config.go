package kapgain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config carries the tool defaults that would otherwise be repeated as flags
// on every invocation. All fields are optional; flags override.
type Config struct {
	InputDir   string   `yaml:"input"`
	OutputDir  string   `yaml:"output"`
	Parsers    []string `yaml:"parsers"`
	UseCNB     bool     `yaml:"use_cnb"`    // fetch rates from the CNB online service
	RatesFile  string   `yaml:"rates_file"` // offline rate table, used when use_cnb is false
	InCurrency bool     `yaml:"in_currency"`
	Verbose    bool     `yaml:"verbose"`
}

// LoadConfig reads a yaml config file. A missing file is not an error and
// yields the zero config.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("cannot read config %q: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("cannot parse config %q: %w", path, err)
	}
	return cfg, nil
}

// RateSource returns the rate source the config selects: the CNB online
// service or an offline rate table file.
func (c Config) RateSource() RateSource {
	if c.UseCNB || c.RatesFile == "" {
		return NewCNBClient()
	}
	return FileRateSource{Path: c.RatesFile}
}
