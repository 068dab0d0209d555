package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
)

// layer is one configuration source. Later layers override earlier ones
// field by field; zero values never override.
type layer struct {
	source string
	cfg    *StructuredConfig
}

type configBuilder struct {
	layers []layer
	errs   []error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{layers: make([]layer, 0, 3)}
}

func (b *configBuilder) push(source string, cfg *StructuredConfig, err error) *configBuilder {
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("%s: %w", source, err))
		return b
	}
	b.layers = append(b.layers, layer{source: source, cfg: cfg})
	return b
}

// build merges every layer, fills defaults and validates the result.
// Any source error aborts the build before merging.
func (b *configBuilder) build() (*StructuredConfig, error) {
	if err := errors.Join(b.errs...); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	merged := new(StructuredConfig)
	for _, l := range b.layers {
		if err := mergo.Merge(merged, l.cfg, mergo.WithOverride); err != nil {
			return nil, fmt.Errorf("merging %s configuration: %w", l.source, err)
		}
	}

	merged.setDefaults()
	if err := merged.validate(); err != nil {
		return nil, err
	}
	return merged, nil
}

// withDotEnv exports a .env file into the process environment without
// overwriting variables that are already set. A missing file is fine.
func (b *configBuilder) withDotEnv(filenames ...string) *configBuilder {
	if err := godotenv.Load(filenames...); err != nil && !isNotExist(err) {
		b.errs = append(b.errs, fmt.Errorf("dotenv: %w", err))
	}
	return b
}

func (b *configBuilder) withEnv() *configBuilder {
	cfg := new(StructuredConfig)
	return b.push("env", cfg, parseEnv(cfg))
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	cfg, err := ParseFlags(args)
	return b.push("flags", cfg, err)
}

// withJSON loads the file named by the last layer that set a JSON path.
func (b *configBuilder) withJSON() *configBuilder {
	path := ""
	for _, l := range b.layers {
		if l.cfg.JSONFilePath != "" {
			path = l.cfg.JSONFilePath
		}
	}
	if path == "" {
		return b
	}

	cfg, err := parseJSON(path)
	return b.push("json", cfg, err)
}
