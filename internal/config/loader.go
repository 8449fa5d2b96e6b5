package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nao1215/salesreport/internal/model"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".salesreport"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File is the YAML configuration file.
// Every field is optional; unset fields keep the value already in Config.
//
//	database:
//	  driver: sqlite
//	  dir: /var/lib/salesreport
//	policy:
//	  countries: [USA, UK, France]
//	  gold:
//	    threshold: 10000
//	    discount: 0.05
//	report:
//	  years: [1997]
//	  topPercent: 20
type File struct {
	Database DatabaseFile `yaml:"database"`
	Policy   PolicyFile   `yaml:"policy"`
	Report   ReportFile   `yaml:"report"`
}

// DatabaseFile selects the dataset source.
type DatabaseFile struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Dir    string `yaml:"dir"`
}

// PolicyFile overrides the loyal customer policy.
type PolicyFile struct {
	Countries []string `yaml:"countries"`
	Gold      TierFile `yaml:"gold"`
	Silver    TierFile `yaml:"silver"`
}

// TierFile holds the threshold and discount rate of one tier.
// Pointers distinguish "unset" from an explicit zero.
type TierFile struct {
	Threshold *float64 `yaml:"threshold"`
	Discount  *float64 `yaml:"discount"`
}

// ReportFile overrides the report parameters.
type ReportFile struct {
	Years        []int    `yaml:"years"`
	Quarter      string   `yaml:"quarter"`
	TopPercent   int      `yaml:"topPercent"`
	TopEmployees int      `yaml:"topEmployees"`
	TopPairs     int      `yaml:"topPairs"`
	Reports      []string `yaml:"reports"`
}

// LoadConfigFile loads the configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cf, nil
}

// Apply copies the set fields of the file into cfg.
func (f *File) Apply(cfg *Config) error {
	if f.Database.Driver != "" {
		cfg.Driver = f.Database.Driver
	}
	if f.Database.DSN != "" {
		cfg.DSN = f.Database.DSN
	}
	if f.Database.Dir != "" {
		cfg.DBDir = f.Database.Dir
	}

	if len(f.Policy.Countries) > 0 {
		cfg.Policy.Countries = f.Policy.Countries
	}
	setDecimal(&cfg.Policy.GoldThreshold, f.Policy.Gold.Threshold)
	setDecimal(&cfg.Policy.GoldDiscount, f.Policy.Gold.Discount)
	setDecimal(&cfg.Policy.SilverThreshold, f.Policy.Silver.Threshold)
	setDecimal(&cfg.Policy.SilverDiscount, f.Policy.Silver.Discount)

	if len(f.Report.Years) > 0 {
		cfg.Years = f.Report.Years
	}
	if f.Report.Quarter != "" {
		q, err := model.ParseQuarter(f.Report.Quarter)
		if err != nil {
			return err
		}
		cfg.Quarter = q
	}
	if f.Report.TopPercent != 0 {
		cfg.TopPercent = f.Report.TopPercent
	}
	if f.Report.TopEmployees != 0 {
		cfg.TopEmployees = f.Report.TopEmployees
	}
	if f.Report.TopPairs != 0 {
		cfg.TopPairs = f.Report.TopPairs
	}
	if len(f.Report.Reports) > 0 {
		cfg.Reports = f.Report.Reports
	}
	return nil
}

func setDecimal(dst *decimal.Decimal, v *float64) {
	if v != nil {
		*dst = decimal.NewFromFloat(*v)
	}
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .salesreport in the current directory
// 3. Look for .salesreport in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	xdgConfig := filepath.Join(XDGConfigDir(), "config.yaml")
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}
