package parser

import (
	"fmt"
	"strings"
	"testing"
)

// fakeModel returns a canned response or error.
type fakeModel struct {
	response string
	err      error
	prompt   string
}

func (m *fakeModel) Generate_Text(prompt string) (string, error) {
	m.prompt = prompt
	return m.response, m.err
}

func TestParseQueryFromModelJSON(t *testing.T) {
	model := &fakeModel{response: `Sure! Here is the parse:
{"tool": "translate", "sequence": "ATGGCG", "gene_name": "", "parameters": {"frame": 1}}
Hope that helps.`}
	p := New(model)

	intent := p.ParseQuery("translate ATGGCG for me")
	if intent.Tool != "translate" {
		t.Errorf("tool = %q", intent.Tool)
	}
	if intent.Sequence != "ATGGCG" {
		t.Errorf("sequence = %q", intent.Sequence)
	}
	if intent.Parameters["frame"] != float64(1) {
		t.Errorf("parameters = %v", intent.Parameters)
	}
}

func TestParseQueryMasksSequenceData(t *testing.T) {
	model := &fakeModel{response: `{"tool": "gc_content"}`}
	p := New(model)

	run := strings.Repeat("ATGCG", 6) // 30 chars, above the mask threshold
	p.ParseQuery("gc content of " + run)
	if strings.Contains(model.prompt, run) {
		t.Error("raw sequence leaked into the model prompt")
	}
	if !strings.Contains(model.prompt, "[SEQUENCE]") {
		t.Error("mask placeholder missing from prompt")
	}
}

func TestParseQueryTolerantOfAbsentFields(t *testing.T) {
	model := &fakeModel{response: `{"tool": "reverse"}`}
	p := New(model)

	intent := p.ParseQuery("reverse it")
	if intent.Tool != "reverse" || intent.Sequence != "" || intent.GeneName != "" {
		t.Errorf("unexpected intent: %+v", intent)
	}
	if intent.Parameters == nil {
		t.Error("parameters should default to an empty map")
	}
}

func TestParseQueryModelErrorFallsBack(t *testing.T) {
	model := &fakeModel{err: fmt.Errorf("connection refused")}
	p := New(model)

	intent := p.ParseQuery("find restriction sites in GAATTCGAATTCGAATTC")
	if intent.Tool != "restriction" {
		t.Errorf("fallback tool = %q", intent.Tool)
	}
	if intent.Sequence != "GAATTCGAATTCGAATTC" {
		t.Errorf("fallback sequence = %q", intent.Sequence)
	}
}

func TestParseQueryNoJSONFallsBack(t *testing.T) {
	model := &fakeModel{response: "I think you want to translate that sequence."}
	p := New(model)

	if intent := p.ParseQuery("please translate ATGCATGCATGC"); intent.Tool != "translate" {
		t.Errorf("fallback tool = %q", intent.Tool)
	}
}

func TestParseQueryMalformedJSONFallsBack(t *testing.T) {
	model := &fakeModel{response: `{"tool": 42, "sequence": []}`}
	p := New(model)

	if intent := p.ParseQuery("reverse complement of ATCGATCGATCG"); intent.Tool != "reverse" {
		t.Errorf("fallback tool = %q", intent.Tool)
	}
}

func TestParseQueryNilModel(t *testing.T) {
	p := New(nil)
	if intent := p.ParseQuery("gc of ATATATATATGCGC"); intent.Tool != "gc_content" {
		t.Errorf("tool = %q", intent.Tool)
	}
}

func TestSimpleParseKeywordOrder(t *testing.T) {
	cases := []struct {
		query string
		tool  string
	}{
		{"translate this DNA", "translate"},
		{"what is the reverse of it", "reverse"},
		{"take the complement please", "reverse"},
		{"any open reading frames?", "find_orfs"},
		{"search for the motif", "pattern"},
		{"which enzyme cuts here", "restriction"},
		{"compute gc percentage", "gc_content"},
		{"hello there", ""},
	}
	for _, c := range cases {
		if intent := SimpleParse(c.query); intent.Tool != c.tool {
			t.Errorf("SimpleParse(%q).Tool = %q, want %q", c.query, intent.Tool, c.tool)
		}
	}
}

func TestExtractJSON(t *testing.T) {
	obj, ok := ExtractJSON(`prefix {"a": {"b": "}"}, "c": 1} suffix`)
	if !ok {
		t.Fatal("expected a JSON object")
	}
	if obj != `{"a": {"b": "}"}, "c": 1}` {
		t.Errorf("unexpected object: %s", obj)
	}

	if _, ok := ExtractJSON("no braces here"); ok {
		t.Error("expected no object")
	}
	if _, ok := ExtractJSON(`{"unterminated": true`); ok {
		t.Error("expected unbalanced object to fail")
	}
}
