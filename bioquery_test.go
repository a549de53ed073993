package bioquery

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/sb2003/BioQuery-Local/biotools"
	"github.com/sb2003/BioQuery-Local/emboss"
	"github.com/sb2003/BioQuery-Local/models"
	"github.com/sb2003/BioQuery-Local/parser"
)

type fakeModel struct {
	reply string
	err   error
}

func (m *fakeModel) Generate_Text(prompt string) (string, error) {
	return m.reply, m.err
}

func newTestPipeline(model models.Model) *BioQuery {
	return &BioQuery{
		Emboss:   emboss.New(),
		BioTools: biotools.New(""),
		Parser:   parser.New(model),
		Examples: defaultExamples,
	}
}

// fakeEMBOSS records invocations and writes canned output to the tool's
// output file argument.
func fakeEMBOSS(t *testing.T, output string, calls *[][]string) {
	t.Helper()
	t.Cleanup(func() { emboss.SetCommandRunner(nil) })
	emboss.SetCommandRunner(func(name string, args ...string) ([]byte, error) {
		*calls = append(*calls, append([]string{name}, args...))
		if len(args) >= 2 {
			if err := os.WriteFile(args[1], []byte(output), 0o644); err != nil {
				t.Fatalf("failed to write fake output: %v", err)
			}
		}
		return nil, nil
	})
}

func TestProcessQueryGCContent(t *testing.T) {
	b := newTestPipeline(nil)

	result := b.ProcessQuery("What is the GC content of GCGCGCATAT?")
	if !result.Success {
		t.Fatalf("expected success, got error: %q", result.Error)
	}
	if result.Tool != "gc_content" {
		t.Errorf("expected tool gc_content, got %q", result.Tool)
	}

	report, ok := result.Result.(models.GCReport)
	if !ok {
		t.Fatalf("expected GCReport result, got %T", result.Result)
	}
	if report.OverallGC != 60.0 {
		t.Errorf("expected 60%% GC, got %v", report.OverallGC)
	}
	if report.Length != 10 {
		t.Errorf("expected length 10, got %d", report.Length)
	}
	if result.ID == "" {
		t.Error("expected a non-empty result ID")
	}
}

func TestProcessQueryNoSequence(t *testing.T) {
	b := newTestPipeline(nil)

	result := b.ProcessQuery("translate this for me")
	if result.Success {
		t.Fatal("expected failure when no sequence is present")
	}
	want := "No sequence found. Please provide a DNA sequence or gene name."
	if result.Error != want {
		t.Errorf("expected error %q, got %q", want, result.Error)
	}
	if result.Tool != "translate" {
		t.Errorf("expected parsed tool to survive into the envelope, got %q", result.Tool)
	}
}

func TestProcessQueryUnknownTool(t *testing.T) {
	model := &fakeModel{reply: `{"tool": "foo", "sequence": "ATGGCGAATTACGTAGCTAGCT"}`}
	b := newTestPipeline(model)

	result := b.ProcessQuery("do something weird")
	if !result.Success {
		t.Fatalf("unknown tool should still succeed, got error: %q", result.Error)
	}
	if result.Result != "Unknown tool: foo" {
		t.Errorf("expected unknown-tool message, got %v", result.Result)
	}
}

func TestProcessQuerySequencePreview(t *testing.T) {
	long := strings.Repeat("ATGC", 15) // 60 bases
	b := newTestPipeline(nil)

	result := b.ProcessQuery("find restriction sites in " + long)
	if !result.Success {
		t.Fatalf("expected success, got error: %q", result.Error)
	}
	want := long[:50] + "..."
	if result.Sequence != want {
		t.Errorf("expected truncated preview %q, got %q", want, result.Sequence)
	}

	short := "GAATTCGAATTC"
	result = b.ProcessQuery("find restriction sites in " + short)
	if result.Sequence != short {
		t.Errorf("short sequences should be kept whole, got %q", result.Sequence)
	}
}

func TestProcessQueryPatternMismatchFromText(t *testing.T) {
	var calls [][]string
	fakeEMBOSS(t, "fuzznuc report\n", &calls)

	b := newTestPipeline(nil)
	result := b.ProcessQuery("find pattern GGATCC with mismatches=2 in ATGGATCCATGGATCCATGG")
	if !result.Success {
		t.Fatalf("expected success, got error: %q", result.Error)
	}

	if len(calls) != 1 {
		t.Fatalf("expected one fuzznuc invocation, got %d", len(calls))
	}
	argv := strings.Join(calls[0], " ")
	if calls[0][0] != "fuzznuc" {
		t.Errorf("expected fuzznuc, got %q", calls[0][0])
	}
	if !strings.Contains(argv, "-pattern GGATCC") {
		t.Errorf("expected motif GGATCC in argv: %s", argv)
	}
	if !strings.Contains(argv, "-pmismatch 2") {
		t.Errorf("expected -pmismatch 2 in argv: %s", argv)
	}
}

func TestProcessQueryShortParserSequence(t *testing.T) {
	model := &fakeModel{reply: `{"tool": "gc_content", "sequence": "ATGGCG"}`}
	b := newTestPipeline(model)

	result := b.ProcessQuery("What is the GC content of that fragment?")
	if !result.Success {
		t.Fatalf("model-supplied short sequence should dispatch, got error: %q", result.Error)
	}
	report, ok := result.Result.(models.GCReport)
	if !ok {
		t.Fatalf("expected GCReport result, got %T", result.Result)
	}
	if report.Length != 6 {
		t.Errorf("expected length 6, got %d", report.Length)
	}
	want := float64(4) / float64(6) * 100.0
	if report.OverallGC != want {
		t.Errorf("expected %v%% GC, got %v", want, report.OverallGC)
	}
}

func TestProcessQueryExplicitZeroMismatch(t *testing.T) {
	var calls [][]string
	fakeEMBOSS(t, "fuzznuc report\n", &calls)

	model := &fakeModel{reply: `{"tool": "pattern", "parameters": {"pattern": "ATG", "mismatch": 0}}`}
	b := newTestPipeline(model)

	result := b.ProcessQuery("find ATG patterns with up to 2 mismatches in ATGATGATGATGATGATG")
	if !result.Success {
		t.Fatalf("expected success, got error: %q", result.Error)
	}
	if len(calls) != 1 {
		t.Fatalf("expected one fuzznuc invocation, got %d", len(calls))
	}
	argv := strings.Join(calls[0], " ")
	if !strings.Contains(argv, "-pattern ATG") {
		t.Errorf("expected motif ATG in argv: %s", argv)
	}
	if strings.Contains(argv, "pmismatch") {
		t.Errorf("explicit mismatch=0 must not be overridden by query text: %s", argv)
	}
}

func TestProcessQueryExtractorWinsOverModel(t *testing.T) {
	model := &fakeModel{reply: `{"tool": "restriction", "sequence": "TTTTTTTTTTTTTTTTTTTT"}`}
	b := newTestPipeline(model)

	query := "find restriction sites\n>rec1\nAAGAATTCAAGAATTCAAGA"
	result := b.ProcessQuery(query)
	if !result.Success {
		t.Fatalf("expected success, got error: %q", result.Error)
	}
	if result.Sequence != "AAGAATTCAAGAATTCAAGA" {
		t.Errorf("expected the FASTA sequence from the query, got %q", result.Sequence)
	}
	text, ok := result.Result.(string)
	if !ok || !strings.Contains(text, "EcoRI") {
		t.Errorf("expected EcoRI hits in result, got %v", result.Result)
	}
}

func TestProcessQueryExampleLookup(t *testing.T) {
	// simulate being offline so the gene lookup falls through to the
	// built-in example table
	biotools.SetHTTPGetter(func(url string) (*http.Response, error) {
		return nil, fmt.Errorf("no network")
	})
	t.Cleanup(func() { biotools.SetHTTPGetter(nil) })

	model := &fakeModel{reply: `{"tool": "gc_content", "gene_name": "BRCA1"}`}
	b := newTestPipeline(model)

	result := b.ProcessQuery("what is the GC content of BRCA1?")
	if !result.Success {
		t.Fatalf("expected success, got error: %q", result.Error)
	}
	if result.Sequence != defaultExamples["brca1_fragment"] {
		t.Errorf("expected the stored BRCA1 fragment, got %q", result.Sequence)
	}
}

func TestGetExamplesSorted(t *testing.T) {
	b := newTestPipeline(nil)
	names := b.GetExamples()
	want := []string{"brca1_fragment", "p53_fragment", "test_dna"}
	if fmt.Sprint(names) != fmt.Sprint(want) {
		t.Errorf("expected %v, got %v", want, names)
	}
}

func TestGetExampleQueries(t *testing.T) {
	b := newTestPipeline(nil)
	queries := b.GetExampleQueries()
	if len(queries) != 8 {
		t.Fatalf("expected 8 example queries, got %d", len(queries))
	}
	if !strings.Contains(queries[2], defaultExamples["test_dna"]) {
		t.Errorf("ORF example should embed the test_dna sequence: %q", queries[2])
	}
	if !strings.HasPrefix(queries[0], "Translate") {
		t.Errorf("unexpected first example: %q", queries[0])
	}
}

func TestCoerceInt(t *testing.T) {
	cases := []struct {
		in   interface{}
		want int
	}{
		{float64(3), 3},
		{2, 2},
		{"4", 4},
		{" 5 ", 5},
		{"abc", 0},
		{nil, 0},
		{true, 0},
	}
	for _, c := range cases {
		if got := coerceInt(c.in); got != c.want {
			t.Errorf("coerceInt(%v) = %d, want %d", c.in, got, c.want)
		}
	}
}
