package bioquery

// Package bioquery is the query pipeline: parse a natural-language request,
// resolve the sequence it refers to, dispatch to the right analysis, and
// wrap the outcome in a ToolResult envelope.

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/sb2003/BioQuery-Local/biotools"
	"github.com/sb2003/BioQuery-Local/emboss"
	"github.com/sb2003/BioQuery-Local/models"
	"github.com/sb2003/BioQuery-Local/models/gemini"
	"github.com/sb2003/BioQuery-Local/models/ollama"
	"github.com/sb2003/BioQuery-Local/parser"
	"github.com/sb2003/BioQuery-Local/sequence"
)

const sequencePreviewLen = 50

// Built-in example sequences. Gene names matching one of these by substring
// resolve locally when the Entrez lookup comes up empty.
var defaultExamples = map[string]string{
	"test_dna":       "ATGGCGAATTACGTAGCTAGCTAGCGCGCTATAGCGCGCTAA",
	"brca1_fragment": "ATGGATTTATCTGCTCTTCGCGTTGAAGAAGTACAAAATGTCA",
	"p53_fragment":   "ATGGAGGAGCCGCAGTCAGATCCTAGCGTCGAGCCCCCTCTGA",
}

// motifPattern matches a short IUPAC word in the query text, used when the
// model did not supply an explicit pattern parameter.
var motifPattern = regexp.MustCompile(`(?i)\b[ACGTURYKMSWBDHVN]{3,20}\b`)

var (
	mismatchEqPattern   = regexp.MustCompile(`(?i)mismatch(?:es)?\s*=\s*(\d+)`)
	mismatchUpToPattern = regexp.MustCompile(`(?i)up to\s+(\d+)\s+mismatch`)
)

// BioQuery wires the parser and the analysis backends together.
type BioQuery struct {
	Emboss   *emboss.Wrapper
	BioTools *biotools.BioTools
	Parser   *parser.Parser
	Examples map[string]string
}

// New builds a pipeline from the configuration. An unreachable or unknown
// model backend degrades to keyword-only parsing rather than failing.
func New(cfg *Config) *BioQuery {
	var model models.Model
	switch cfg.Backend {
	case "gemini":
		g := &gemini.Gemini_Model{Model: cfg.ModelName}
		if g.Model == "" {
			g.Model = gemini.DefaultModel
		}
		model = g
	case "ollama":
		o := &ollama.Ollama_Model{Model: cfg.ModelName, BaseURL: cfg.OllamaHost}
		if o.Model == "" {
			o.Model = ollama.DefaultModel
		}
		model = o
	}

	return &BioQuery{
		Emboss:   emboss.New(),
		BioTools: biotools.New(cfg.EntrezEmail),
		Parser:   parser.New(model),
		Examples: defaultExamples,
	}
}

// GetExamples lists the built-in example sequence names, sorted.
func (b *BioQuery) GetExamples() []string {
	names := make([]string, 0, len(b.Examples))
	for name := range b.Examples {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetExampleQueries returns ready-to-run example queries, one per tool, for
// the UI to offer as starters.
func (b *BioQuery) GetExampleQueries() []string {
	return []string{
		"Translate the sequence ATGGCGAATTACGTAGCT",
		"What is the reverse complement of ATCGATCGATCG?",
		"Find open reading frames in " + b.Examples["test_dna"],
		"Calculate GC content of GCGCGCATATATATGCGCGC",
		"Find restriction sites in GAATTCGCGGCCGCTCTAGAACTAGTGGATC",
		"Find ATG patterns in ATGATGATGATGATGATG",
		"Translate BRCA1 fragment",
		"Get six-frame translation of p53_fragment",
	}
}

// ProcessQuery runs the full pipeline for one query. It always returns a
// result envelope; the only failure surfaced to the caller is the inability
// to find any sequence to operate on.
func (b *BioQuery) ProcessQuery(query string) models.ToolResult {
	parsed := b.Parser.ParseQuery(query)

	seq := b.resolveSequence(query, parsed)
	if seq == "" {
		return models.ToolResult{
			ID:      uuid.NewString(),
			Success: false,
			Tool:    parsed.Tool,
			Error:   "No sequence found. Please provide a DNA sequence or gene name.",
			Parsed:  parsed,
		}
	}

	var result interface{}
	switch parsed.Tool {
	case "translate":
		result = b.Emboss.Translate(seq, 1)
	case "reverse":
		result = b.Emboss.ReverseComplement(seq)
	case "find_orfs":
		result = b.Emboss.FindORFs(seq, 0)
	case "pattern":
		motif, mismatch := b.resolvePatternParams(query, parsed)
		result = b.Emboss.FindPattern(seq, motif, mismatch)
	case "restriction":
		result = b.Emboss.RestrictionSites(seq)
	case "gc_content":
		result = b.BioTools.GCContent(seq)
	case "sixframe":
		result = b.Emboss.Sixframe(seq)
	default:
		result = fmt.Sprintf("Unknown tool: %s", parsed.Tool)
	}

	return models.ToolResult{
		ID:       uuid.NewString(),
		Success:  true,
		Tool:     parsed.Tool,
		Sequence: previewSequence(seq),
		Result:   result,
		Parsed:   parsed,
	}
}

// resolveSequence finds the sequence a query is about, trying sources in
// order of trust: the extractor over the raw query, the model's sequence
// field, a gene-name lookup (Entrez, then the example table), and finally a
// bare DNA run anywhere in the text.
func (b *BioQuery) resolveSequence(query string, parsed models.ParsedIntent) string {
	if seqs := sequence.Extract(query); len(seqs) > 0 {
		return seqs[0]
	}

	// the parser's sequence is taken as-is after cleaning; even short
	// fragments count when the model supplied them explicitly
	if cleaned := sequence.Clean(parsed.Sequence); cleaned != "" {
		return cleaned
	}

	if parsed.GeneName != "" {
		if seq := b.BioTools.FetchSequence(parsed.GeneName); seq != "" {
			return seq
		}
		if seq, ok := b.lookupExample(parsed.GeneName); ok {
			return seq
		}
	}

	return sequence.FirstDNARun(query)
}

// lookupExample matches a gene name against the example table by
// case-insensitive substring in either direction, in sorted key order so
// ties resolve deterministically.
func (b *BioQuery) lookupExample(geneName string) (string, bool) {
	needle := strings.ToLower(geneName)
	for _, name := range b.GetExamples() {
		key := strings.ToLower(name)
		if strings.Contains(key, needle) || strings.Contains(needle, key) {
			return b.Examples[name], true
		}
	}
	return "", false
}

// resolvePatternParams picks the motif and mismatch count for a pattern
// search. Model-supplied parameters win; otherwise both are recovered from
// the query text, with "ATG" and 0 as last resorts.
func (b *BioQuery) resolvePatternParams(query string, parsed models.ParsedIntent) (string, int) {
	motif := ""
	if v, ok := parsed.Parameters["pattern"]; ok {
		if s, ok := v.(string); ok && s != "" {
			motif = strings.ToUpper(s)
		}
	}
	if motif == "" {
		// only scan the free text before any FASTA block, or the motif
		// search would just pick up the sequence itself
		text := query
		if i := strings.IndexByte(text, '>'); i >= 0 {
			text = text[:i]
		}
		if m := motifPattern.FindString(text); m != "" {
			motif = strings.ToUpper(m)
		}
	}
	if motif == "" {
		motif = "ATG"
	}

	// the text regexes only apply when the model supplied no mismatch
	// parameter at all; an explicit 0 is an answer, not an absence
	if v, ok := parsed.Parameters["mismatch"]; ok {
		return motif, coerceInt(v)
	}
	if m := mismatchEqPattern.FindStringSubmatch(query); m != nil {
		n, _ := strconv.Atoi(m[1])
		return motif, n
	}
	if m := mismatchUpToPattern.FindStringSubmatch(query); m != nil {
		n, _ := strconv.Atoi(m[1])
		return motif, n
	}
	return motif, 0
}

// coerceInt converts the loose types json.Unmarshal and language models
// produce for numbers. Anything unconvertible is 0.
func coerceInt(v interface{}) int {
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i)
		}
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}

func previewSequence(seq string) string {
	if len(seq) <= sequencePreviewLen {
		return seq
	}
	return seq[:sequencePreviewLen] + "..."
}
