// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapstep/internal/cli/output"
)

// BoltedDocument is an assembly of two bolts on a plate, with colours,
// layers, a material, a styled occurrence and GD&T.
const BoltedDocument = `materials:
  - {name: Steel, description: S235, density: 7.85}
layers:
  - {name: hidden, visible: false}
shapes:
  - name: Bolt
    box: [2, 2, 10]
    color: red
    material: Steel
    layers: [hidden, fasteners]
    area: 88
  - name: Plate
    boxes: [[10, 10, 1], [5, 5, 2]]
assemblies:
  - name: Root
    components:
      - {ref: Sub, name: upper, at: [0, 0, 5]}
      - {ref: Plate}
  - name: Sub
    components:
      - {ref: Bolt, name: left, at: [-3, 0, 0], color: [0, 0, 1]}
      - {ref: Bolt, name: right, at: [3, 0, 0]}
shuos:
  - {path: [Root/upper, Sub/right], color: yellow}
datums:
  - {name: A, on: [{shape: Bolt, face: 1}]}
tolerances:
  - {type: flatness, value: 0.05, on: [{shape: Bolt, face: 1}]}
`

// CyclicDocument holds an assembly using itself through another one.
const CyclicDocument = `shapes:
  - {name: Pin, box: [1, 1, 1]}
assemblies:
  - name: A
    components:
      - {ref: B}
      - {ref: Pin}
  - name: B
    components:
      - {ref: A}
`

// SetupTestProject creates a temporary project holding a leapstep.yaml
// with the ledger inside the project, bolted.yaml and cyclic.yaml.
func SetupTestProject(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	files := map[string]string{
		"leapstep.yaml": "schema: ap214\nstate_path: .leapstep/ledger.db\n",
		"bolted.yaml":   BoltedDocument,
		"cyclic.yaml":   CyclicDocument,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(tmpDir, name), []byte(content), 0644); err != nil {
			t.Fatalf("failed to create %s: %v", name, err)
		}
	}
	return tmpDir
}

// TestRenderer wraps a Renderer for testing with captured output buffers.
type TestRenderer struct {
	*output.Renderer
	Out    *bytes.Buffer
	ErrOut *bytes.Buffer
}

// NewTestRenderer creates a new test renderer with the specified mode and TTY state.
func NewTestRenderer(mode output.Mode, isTTY bool) *TestRenderer {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	return &TestRenderer{
		Renderer: output.NewRendererWithTTY(out, errOut, isTTY, mode),
		Out:      out,
		ErrOut:   errOut,
	}
}

// NewTestRendererMarkdown creates a new test renderer in markdown mode.
func NewTestRendererMarkdown() *TestRenderer {
	return NewTestRenderer(output.ModeMarkdown, false)
}

// NewTestRendererJSON creates a new test renderer in JSON mode.
func NewTestRendererJSON() *TestRenderer {
	return NewTestRenderer(output.ModeJSON, false)
}

// Output returns the stdout output as a string.
func (tr *TestRenderer) Output() string {
	return tr.Out.String()
}

// ErrorOutput returns the stderr output as a string.
func (tr *TestRenderer) ErrorOutput() string {
	return tr.ErrOut.String()
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown checks for unclosed code fences and empty headers.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	if fenceCount := strings.Count(md, "```"); fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}
	for i, line := range strings.Split(md, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
