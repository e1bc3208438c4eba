package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"survey-insights/internal/model"
)

// Config is the YAML configuration shared by the CLI and the dashboard API.
type Config struct {
	App struct {
		Port      int    `yaml:"port"`
		DataDir   string `yaml:"data_dir"`
		OutputDir string `yaml:"output_dir"`
	} `yaml:"app"`

	// Report is the default analysis pass: dataset, filters, analyses,
	// export targets. An empty analyses list falls back to the built-in
	// chart catalogue.
	Report model.ReportSpec `yaml:"report"`
}

// Load reads the config file and fills in defaults.
func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns a usable config when no file is given.
func Default() Config {
	var cfg Config
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.App.Port == 0 {
		c.App.Port = 8080
	}
	if c.App.DataDir == "" {
		c.App.DataDir = "data"
	}
	if c.App.OutputDir == "" {
		c.App.OutputDir = "output"
	}
	if c.Report.Dataset == "" {
		c.Report.Dataset = "survey.csv"
	}
}
