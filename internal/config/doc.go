// Package config provides configuration structures and utilities for salesreport.
// It defines the dataset source, the loyal customer policy, the report
// parameters and the output preferences, and loads overrides from an
// optional YAML file.
package config
