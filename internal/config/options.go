package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Options controls interpreter diagnostics.
type Options struct {
	// Profiling logs the execution time of every named function call.
	Profiling bool `yaml:"profiling"`
	// Debug logs every named function call with its arguments and result.
	Debug bool `yaml:"debug"`
	// LogPrefix is prepended to every log line.
	LogPrefix string `yaml:"log_prefix"`
}

func Default() Options {
	return Options{LogPrefix: "termrt: "}
}

// Parse reads options from a YAML document. Missing fields keep their defaults.
func Parse(data []byte) (Options, error) {
	opts := Default()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return Options{}, fmt.Errorf("invalid options: %w", err)
	}
	return opts, nil
}

func Load(path string) (Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, err
	}
	return Parse(data)
}
