package parser

// Package parser turns a natural-language query into a ParsedIntent. The
// primary path asks an external language model to classify the (masked)
// query; every failure mode of that path falls back to deterministic keyword
// matching, so parsing never returns an error to the dispatcher.

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/sb2003/BioQuery-Local/models"
	"github.com/sb2003/BioQuery-Local/sequence"
)

const toolsDescription = `
Available bioinformatics tools:
- translate: Convert DNA to protein sequence
- reverse: Get reverse complement of DNA
- find_orfs: Find open reading frames in DNA
- pattern: Find specific pattern in sequence
- restriction: Find restriction enzyme sites
- gc_content: Calculate GC content percentage
- sixframe: Translate in all six reading frames
`

const promptTemplate = `You are a bioinformatics assistant. Parse this query
and extract:
1. The tool to use (from the list below)
2. The sequence(s) or gene name(s) involved
3. Any additional parameters
%TOOLS%
User query: %QUERY%

Respond in JSON format:
{
  "tool": "tool_name",
  "sequence": "DNA_or_protein_sequence",
  "gene_name": "gene_if_mentioned",
  "parameters": {}
}

Sequence data in the query has been replaced by placeholder tokens;
do not invent sequences. Be concise and accurate.
`

// keyword table for the fallback classifier. Order matters: the first entry
// whose keyword appears in the lowercased query wins.
var keywordTools = []struct {
	keywords []string
	tool     string
}{
	{[]string{"translate"}, "translate"},
	{[]string{"reverse", "complement"}, "reverse"},
	{[]string{"orf", "reading frame"}, "find_orfs"},
	{[]string{"pattern", "motif"}, "pattern"},
	{[]string{"restriction", "enzyme"}, "restriction"},
	{[]string{"gc"}, "gc_content"},
}

// Parser classifies queries. Model may be nil, in which case every query
// takes the fallback path.
type Parser struct {
	Model models.Model
}

func New(model models.Model) *Parser {
	return &Parser{Model: model}
}

// ParseQuery returns a ParsedIntent for the raw query. The model sees only
// the masked query text; the fallback operates on the raw text.
func (p *Parser) ParseQuery(query string) models.ParsedIntent {
	if p.Model == nil {
		return SimpleParse(query)
	}

	prompt := buildPrompt(sequence.Mask(query))
	text, err := p.Model.Generate_Text(prompt)
	if err != nil {
		log.Printf("LLM parsing failed: %v", err)
		return SimpleParse(query)
	}

	obj, ok := ExtractJSON(text)
	if !ok {
		return SimpleParse(query)
	}

	var intent models.ParsedIntent
	if err := json.Unmarshal([]byte(obj), &intent); err != nil {
		// malformed JSON is the same trigger as no JSON at all
		return SimpleParse(query)
	}
	if intent.Parameters == nil {
		intent.Parameters = map[string]interface{}{}
	}
	return intent
}

func buildPrompt(maskedQuery string) string {
	prompt := strings.ReplaceAll(promptTemplate, "%TOOLS%", toolsDescription)
	return strings.ReplaceAll(prompt, "%QUERY%", maskedQuery)
}

// SimpleParse is the deterministic fallback: keyword classification plus a
// direct scan for an unambiguous DNA run in the query.
func SimpleParse(query string) models.ParsedIntent {
	intent := models.ParsedIntent{
		Sequence:   sequence.FirstDNARun(query),
		Parameters: map[string]interface{}{},
	}

	lower := strings.ToLower(query)
	for _, entry := range keywordTools {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				intent.Tool = entry.tool
				return intent
			}
		}
	}
	return intent
}

// ExtractJSON returns the first balanced JSON object in s. Models wrap their
// answer in prose more often than not, so this scans for the first '{' and
// tracks brace depth, skipping braces inside string literals.
func ExtractJSON(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
