package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewExportCommand(t *testing.T) {
	cmd := NewExportCommand()

	assert.Equal(t, "export <document> [output]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// --schema and --multi-file are global persistent flags on root
	flags := []string{"watch", "no-ledger", "no-colors", "no-names", "no-layers", "no-props",
		"no-shuo", "no-dimtol", "no-materials", "subshape-names"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
	assert.Error(t, cmd.Args(cmd, nil))
	assert.NoError(t, cmd.Args(cmd, []string{"a.yaml", "a.stp"}))
}

func TestNewInspectCommand(t *testing.T) {
	cmd := NewInspectCommand()

	assert.Equal(t, "inspect <document>", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("no-colors"))
}

func TestNewStructureCommand(t *testing.T) {
	cmd := NewStructureCommand()

	assert.Equal(t, "structure <document>", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
}

func TestNewHistoryCommand(t *testing.T) {
	cmd := NewHistoryCommand()

	assert.Equal(t, "history [export-id]", cmd.Use)
	assert.NotNil(t, cmd.Flags().Lookup("limit"))
	assert.Error(t, cmd.Args(cmd, []string{"a", "b"}))
}

func TestVersionCommand(t *testing.T) {
	cmd := NewVersionCommand("1.2.3")
	assert.Equal(t, "version", cmd.Use)
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "01234567", shortID("0123456789"))
	assert.Equal(t, "abc", shortID("abc"))
}
