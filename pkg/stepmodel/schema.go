package stepmodel

import (
	"fmt"
	"strings"
)

// Schema selects the application protocol of an exchange file.
type Schema int

// Supported application protocols.
const (
	AP214 Schema = iota
	AP203
	AP242
)

type protocol struct {
	name        string
	identifier  string
	model       string
	year        int
	application string
}

var protocols = map[Schema]protocol{
	AP203: {
		name:        "ap203",
		identifier:  "CONFIG_CONTROL_DESIGN",
		model:       "config_control_design",
		year:        1994,
		application: "configuration controlled 3D designs of mechanical parts and assemblies",
	},
	AP214: {
		name:        "ap214",
		identifier:  "AUTOMOTIVE_DESIGN { 1 0 10303 214 1 1 1 1 }",
		model:       "automotive_design",
		year:        2000,
		application: "core data for automotive mechanical design processes",
	},
	AP242: {
		name:        "ap242",
		identifier:  "AP242_MANAGED_MODEL_BASED_3D_ENGINEERING_MIM_LF { 1 0 10303 442 1 1 4 }",
		model:       "ap242_managed_model_based_3d_engineering",
		year:        2014,
		application: "managed model based 3d engineering",
	},
}

// String returns the lower-case short name, e.g. "ap214".
func (s Schema) String() string {
	if p, ok := protocols[s]; ok {
		return p.name
	}
	return fmt.Sprintf("schema(%d)", int(s))
}

// ParseSchema parses a short name such as "AP242".
func ParseSchema(s string) (Schema, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for k, p := range protocols {
		if p.name == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown schema %q", s)
}

// Identifier is the FILE_SCHEMA entry of the protocol.
func (s Schema) Identifier() string { return protocols[s].identifier }

// ModelName is the interpreted model schema name of the protocol.
func (s Schema) ModelName() string { return protocols[s].model }

// Year is the protocol year.
func (s Schema) Year() int { return protocols[s].year }

// Application is the APPLICATION_CONTEXT description of the protocol.
func (s Schema) Application() string { return protocols[s].application }

// FileFormat is the format name used for references to external files.
func (s Schema) FileFormat() string {
	if s == AP203 {
		return "STEP AP203"
	}
	return "STEP AP214"
}
