package pipeline

import (
	"fmt"

	"github.com/knadh/koanf/v2"
)

// scanConfig is the koanf shape of a scan, as found in a config file or
// assembled from flags.
type scanConfig struct {
	File          string   `koanf:"file"`
	Follow        bool     `koanf:"follow"`
	Fields        []string `koanf:"fields"`
	From          string   `koanf:"from"`
	Until         string   `koanf:"until"`
	Output        string   `koanf:"output"`
	Quiet         bool     `koanf:"quiet"`
	SkipMalformed bool     `koanf:"skip-malformed"`
}

// ParseOptions builds Options from a koanf tree.
func ParseOptions(ko *koanf.Koanf) (Options, error) {
	var cfg scanConfig
	if err := ko.Unmarshal("", &cfg); err != nil {
		return Options{}, fmt.Errorf("error un-marshaling scan config: %w", err)
	}

	opts := Options{
		Filename:      cfg.File,
		Follow:        cfg.Follow,
		Quiet:         cfg.Quiet,
		SkipMalformed: cfg.SkipMalformed,
	}
	if cfg.Output != "" {
		opts.Output = cfg.Output
	}
	if cfg.From != "" {
		opts.From = cfg.From
	}
	if cfg.Until != "" {
		opts.Until = cfg.Until
	}
	for _, f := range cfg.Fields {
		opts.Fields = append(opts.Fields, f)
	}
	return opts, nil
}
