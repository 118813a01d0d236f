package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/leapstack-labs/leapstep/pkg/stepcaf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadFromDir(t *testing.T) {
	tests := []struct {
		name    string
		content string
		check   func(t *testing.T, cfg *ExportConfig)
		errMsg  string
	}{
		{
			name:    "defaults",
			content: "prefix: p_\n",
			check: func(t *testing.T, cfg *ExportConfig) {
				assert.Equal(t, stepcaf.AP214, cfg.Schema)
				assert.Equal(t, "p_", cfg.Prefix)
				assert.Equal(t, DefaultParallelism, cfg.Parallelism)
				assert.Equal(t, stepcaf.DefaultModes(), cfg.Modes.Modes())
				assert.Equal(t, stepcaf.SingleShape, cfg.Mode())
			},
		},
		{
			name:    "schema and modes",
			content: "schema: AP242\nmulti_file: true\nmodes:\n  color: false\n  subshape_names: true\n",
			check: func(t *testing.T, cfg *ExportConfig) {
				assert.Equal(t, stepcaf.AP242, cfg.Schema)
				assert.Equal(t, stepcaf.MultiFile, cfg.Mode())
				assert.False(t, cfg.Modes.Color)
				assert.True(t, cfg.Modes.SubShapeNames)
				assert.True(t, cfg.Modes.Name, "unset modes keep their default")
			},
		},
		{
			name:    "unknown schema",
			content: "schema: ap999\n",
			errMsg:  "unknown schema",
		},
		{
			name:    "bad parallelism",
			content: "parallelism: 0\n",
			errMsg:  "parallelism must be at least 1",
		},
		{
			name:    "bad unit",
			content: "unit: inch\n",
			errMsg:  "unknown unit",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, ConfigFileName, tt.content)

			cfg, err := LoadFromDir(dir)
			if tt.errMsg != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func TestLoadFromDir_NoFile(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir())
	assert.NoError(t, err)
	assert.Nil(t, cfg)
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, ConfigFileNameAlt, "schema: ap203\n")
	nested := filepath.Join(root, "parts", "fasteners")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	assert.Equal(t, root, FindProjectRoot(nested))
	assert.Equal(t, filepath.Join(root, ConfigFileNameAlt), FindConfigFile(root))
	assert.Empty(t, FindConfigFile(nested))
}

func TestExportConfig_WriterConfig(t *testing.T) {
	cfg := &ExportConfig{
		Schema:      stepcaf.AP203,
		MultiFile:   true,
		Prefix:      "x_",
		Parallelism: 2,
		Modes:       DefaultModes(),
	}
	cfg.Modes.Layer = false

	wc := cfg.WriterConfig(nil)

	assert.Equal(t, stepcaf.AP203, wc.Schema)
	assert.Equal(t, stepcaf.MultiFile, wc.Mode)
	assert.Equal(t, "x_", wc.Prefix)
	require.NotNil(t, wc.Modes)
	assert.False(t, wc.Modes.Layer)
	assert.True(t, wc.Modes.Color)
}

var stringType = reflect.TypeOf("")

func TestSchemaHook(t *testing.T) {
	hook := SchemaHook()
	got, err := hook(stringType, schemaType, "ap242")
	require.NoError(t, err)
	assert.Equal(t, stepcaf.AP242, got)

	passthrough, err := hook(stringType, stringType, "ap242")
	require.NoError(t, err)
	assert.Equal(t, "ap242", passthrough)

	_, err = hook(stringType, schemaType, "iges")
	assert.Error(t, err)
}
