package output

import "time"

// ExportOutput is the JSON result of an export.
type ExportOutput struct {
	ID          string           `json:"id,omitempty"`
	Document    string           `json:"document"`
	Output      string           `json:"output"`
	Schema      string           `json:"schema"`
	Mode        string           `json:"mode"`
	Status      string           `json:"status"`
	Records     int              `json:"records"`
	Diagnostics []DiagnosticInfo `json:"diagnostics,omitempty"`
	Files       []ExternFileInfo `json:"files,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// DiagnosticInfo is one reported finding.
type DiagnosticInfo struct {
	Kind    string `json:"kind"`
	Label   string `json:"label,omitempty"`
	Message string `json:"message"`
}

// ExternFileInfo is one extern file of a multi-file export.
type ExternFileInfo struct {
	Name   string `json:"name"`
	Label  string `json:"label,omitempty"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// InspectOutput is the JSON result of inspect.
type InspectOutput struct {
	Document    string           `json:"document"`
	Schema      string           `json:"schema"`
	Records     int              `json:"records"`
	Kinds       []KindCount      `json:"kinds"`
	Diagnostics []DiagnosticInfo `json:"diagnostics,omitempty"`
}

// KindCount is the number of records of one entity kind.
type KindCount struct {
	Kind  string `json:"kind"`
	Count int    `json:"count"`
}

// StructureOutput is the JSON result of structure.
type StructureOutput struct {
	Document string           `json:"document"`
	Nodes    int              `json:"nodes"`
	Edges    int              `json:"edges"`
	Levels   []StructureLevel `json:"levels"`
	Cyclic   []string         `json:"cyclic,omitempty"`
}

// StructureLevel groups the labels at one depth, leaves first.
type StructureLevel struct {
	Level  int             `json:"level"`
	Labels []StructureNode `json:"labels"`
}

// StructureNode is one shape label of the product structure.
type StructureNode struct {
	Entry string   `json:"entry"`
	Name  string   `json:"name,omitempty"`
	Parts []string `json:"parts,omitempty"`
}

// HistoryOutput is the JSON result of history.
type HistoryOutput struct {
	Exports []HistoryEntry `json:"exports"`
}

// HistoryEntry summarizes one recorded export.
type HistoryEntry struct {
	ID          string     `json:"id"`
	Document    string     `json:"document"`
	Output      string     `json:"output"`
	Schema      string     `json:"schema"`
	Mode        string     `json:"mode"`
	Status      string     `json:"status"`
	Records     int        `json:"records"`
	Diagnostics int        `json:"diagnostics"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Error       string     `json:"error,omitempty"`
}
