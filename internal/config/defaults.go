package config

import "github.com/leapstack-labs/leapstep/pkg/stepcaf"

// Default configuration values.
const (
	DefaultSchema      = "ap214"
	DefaultStateFile   = ".leapstep/ledger.db"
	DefaultOutput      = "auto"
	DefaultParallelism = 4
	DefaultExtension   = ".stp"
	DefaultUnit        = "mm"
)

// DefaultModes returns the pass toggles enabled by default.
func DefaultModes() ModesConfig {
	return modesFrom(stepcaf.DefaultModes())
}

// Defaults returns the flat key map loaded before any file, env var or flag.
func Defaults() map[string]any {
	modes := DefaultModes()
	return map[string]any{
		"schema":               DefaultSchema,
		"multi_file":           false,
		"prefix":               "",
		"state_path":           DefaultStateFile,
		"verbose":              false,
		"output":               DefaultOutput,
		"parallelism":          DefaultParallelism,
		"extension":            DefaultExtension,
		"unit":                 DefaultUnit,
		"modes.color":          modes.Color,
		"modes.name":           modes.Name,
		"modes.layer":          modes.Layer,
		"modes.props":          modes.Props,
		"modes.shuo":           modes.SHUO,
		"modes.dimtol":         modes.DimTol,
		"modes.material":       modes.Material,
		"modes.subshape_names": modes.SubShapeNames,
	}
}
