// Package config holds the export settings shared by the CLI and anything
// else that builds a writer from a leapstep.yaml file.
package config

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/leapstack-labs/leapstep/pkg/stepcaf"
)

// ModesConfig toggles the writer passes.
type ModesConfig struct {
	Color         bool `koanf:"color"`
	Name          bool `koanf:"name"`
	Layer         bool `koanf:"layer"`
	Props         bool `koanf:"props"`
	SHUO          bool `koanf:"shuo"`
	DimTol        bool `koanf:"dimtol"`
	Material      bool `koanf:"material"`
	SubShapeNames bool `koanf:"subshape_names"`
}

func modesFrom(m stepcaf.Modes) ModesConfig {
	return ModesConfig{
		Color:         m.Color,
		Name:          m.Name,
		Layer:         m.Layer,
		Props:         m.Props,
		SHUO:          m.SHUO,
		DimTol:        m.DimTol,
		Material:      m.Material,
		SubShapeNames: m.SubShapeNames,
	}
}

// Modes converts to the writer's toggles.
func (c ModesConfig) Modes() stepcaf.Modes {
	return stepcaf.Modes{
		Color:         c.Color,
		Name:          c.Name,
		Layer:         c.Layer,
		Props:         c.Props,
		SHUO:          c.SHUO,
		DimTol:        c.DimTol,
		Material:      c.Material,
		SubShapeNames: c.SubShapeNames,
	}
}

// ExportConfig is the writer-facing part of the configuration.
type ExportConfig struct {
	Schema       stepcaf.Schema `koanf:"schema"`
	MultiFile    bool           `koanf:"multi_file"`
	Prefix       string         `koanf:"prefix"`
	Parallelism  int            `koanf:"parallelism"`
	Extension    string         `koanf:"extension"`
	Unit         string         `koanf:"unit"`
	Tolerance    float64        `koanf:"tolerance"`
	Author       string         `koanf:"author"`
	Organization string         `koanf:"organization"`
	Modes        ModesConfig    `koanf:"modes"`
}

// Mode returns the transfer mode.
func (c *ExportConfig) Mode() stepcaf.Mode {
	if c.MultiFile {
		return stepcaf.MultiFile
	}
	return stepcaf.SingleShape
}

// WriterConfig builds a writer configuration.
func (c *ExportConfig) WriterConfig(logger *slog.Logger) stepcaf.Config {
	modes := c.Modes.Modes()
	return stepcaf.Config{
		Schema:       c.Schema,
		Modes:        &modes,
		Mode:         c.Mode(),
		Prefix:       c.Prefix,
		Unit:         c.Unit,
		Tolerance:    c.Tolerance,
		Parallelism:  c.Parallelism,
		Extension:    c.Extension,
		Author:       c.Author,
		Organization: c.Organization,
		Logger:       logger,
	}
}

var units = map[string]bool{"mm": true, "cm": true, "m": true, "um": true}

// Validate checks the values a file or env var could get wrong.
func (c *ExportConfig) Validate() error {
	if c.Parallelism < 1 {
		return fmt.Errorf("parallelism must be at least 1, got %d", c.Parallelism)
	}
	if c.Unit != "" && !units[c.Unit] {
		return fmt.Errorf("unknown unit %q, must be one of: mm, cm, m, um", c.Unit)
	}
	if c.Tolerance < 0 {
		return fmt.Errorf("tolerance must not be negative")
	}
	if c.Extension != "" && !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("extension %q must start with a dot", c.Extension)
	}
	return nil
}

var schemaType = reflect.TypeOf(stepcaf.Schema(0))

// SchemaHook decodes schema names such as "ap242" into stepcaf.Schema.
func SchemaHook() mapstructure.DecodeHookFuncType {
	return func(from, to reflect.Type, data any) (any, error) {
		if to != schemaType || from.Kind() != reflect.String {
			return data, nil
		}
		return stepcaf.ParseSchema(data.(string))
	}
}
