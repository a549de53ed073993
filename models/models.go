package models

// Model is the boundary to an external generative language model. A backend
// takes one prompt and returns the model's free-text completion. The intent
// parser never depends on which backend is wired in.
type Model interface {
	Generate_Text(prompt string) (string, error)
}

// ParsedIntent is the structured reading of a natural-language query, either
// decoded from the LLM's JSON or produced by the keyword fallback. Absent
// fields stay at their zero values.
type ParsedIntent struct {
	Tool       string                 `json:"tool"`
	Sequence   string                 `json:"sequence"`
	GeneName   string                 `json:"gene_name"`
	Parameters map[string]interface{} `json:"parameters"`
}

// ToolResult is the envelope returned for every query. Failure is data:
// Success=false carries Error, everything else is a successful dispatch even
// when the tool's own output is an error string.
type ToolResult struct {
	ID       string       `json:"id,omitempty"`
	Success  bool         `json:"success"`
	Tool     string       `json:"tool,omitempty"`
	Sequence string       `json:"sequence,omitempty"`
	Result   interface{}  `json:"result,omitempty"`
	Error    string       `json:"error,omitempty"`
	Parsed   ParsedIntent `json:"parsed"`
}

// GCReport holds overall and sliding-window GC content for one sequence.
type GCReport struct {
	OverallGC float64   `json:"overall_gc"`
	Length    int       `json:"length"`
	GCWindows []float64 `json:"gc_windows"`
	MinGC     float64   `json:"min_gc"`
	MaxGC     float64   `json:"max_gc"`
}

// SequenceStats holds basic composition statistics for one sequence.
type SequenceStats struct {
	Length    int     `json:"length"`
	ACount    int     `json:"a_count"`
	TCount    int     `json:"t_count"`
	GCount    int     `json:"g_count"`
	CCount    int     `json:"c_count"`
	GCContent float64 `json:"gc_content"`
	ATContent float64 `json:"at_content"`
}
