package sequence

// Package sequence finds and cleans nucleotide sequences embedded in free
// text. Queries arrive as prose with FASTA records or bare base runs pasted
// into them, so extraction is deliberately forgiving: anything that survives
// cleaning against the IUPAC nucleotide alphabet is a candidate.

import (
	"regexp"
	"strings"
)

// IUPAC nucleotide codes, including ambiguity codes. U is accepted on input
// and rewritten to T during cleaning.
const Alphabet = "ACGTURYKMSWBDHVN"

const (
	// HeaderPlaceholder replaces FASTA header lines when masking a query
	// for the intent parser.
	HeaderPlaceholder = "[FASTA_HEADER]"
	// SequencePlaceholder replaces long base runs when masking.
	SequencePlaceholder = "[SEQUENCE]"
)

// MinLength is the shortest run of bases treated as a real sequence.
const MinLength = 10

var (
	runPattern  = regexp.MustCompile(`(?i)[` + Alphabet + `]{10,}`)
	maskPattern = regexp.MustCompile(`(?i)[` + Alphabet + `]{20,}`)
	dnaPattern  = regexp.MustCompile(`[ATCG]{10,}`)
)

// Clean uppercases s, rewrites U to T, and drops every character outside the
// IUPAC nucleotide alphabet.
func Clean(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToUpper(s) {
		if r == 'U' {
			b.WriteByte('T')
			continue
		}
		if strings.ContainsRune(Alphabet, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// normalizeHeaders inserts a newline before any '>' that is not already at
// the start of a line, so FASTA headers pasted inline with prose still begin
// a record.
func normalizeHeaders(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for i := 0; i < len(text); i++ {
		if text[i] == '>' && i > 0 && text[i-1] != '\n' {
			b.WriteByte('\n')
		}
		b.WriteByte(text[i])
	}
	return b.String()
}

// Extract returns the cleaned nucleotide sequences found in text, in order
// of first appearance. FASTA records take priority: each '>' header starts a
// new record whose non-blank body lines are cleaned and concatenated. When
// no header is present, maximal runs of at least MinLength alphabet
// characters anywhere in the text are used instead. Sequences shorter than
// MinLength are discarded.
func Extract(text string) []string {
	var seqs []string

	sawHeader := false
	inRecord := false
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			seqs = append(seqs, current.String())
		}
		current.Reset()
	}

	for _, line := range strings.Split(normalizeHeaders(text), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, ">") {
			sawHeader = true
			if inRecord {
				flush()
			}
			inRecord = true
			continue
		}
		if line == "" || !inRecord {
			continue
		}
		current.WriteString(Clean(line))
	}
	if inRecord {
		flush()
	}

	if !sawHeader {
		for _, run := range runPattern.FindAllString(text, -1) {
			seqs = append(seqs, Clean(run))
		}
	}

	kept := seqs[:0]
	for _, s := range seqs {
		if len(s) >= MinLength {
			kept = append(kept, s)
		}
	}
	return kept
}

// Mask returns a copy of text safe to hand to the intent parser: FASTA
// header lines become HeaderPlaceholder and any run of 20 or more alphabet
// characters becomes SequencePlaceholder. This keeps bulk sequence data out
// of the LLM prompt so the model classifies the request instead of trying to
// answer it.
func Mask(text string) string {
	lines := strings.Split(normalizeHeaders(text), "\n")
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), ">") {
			lines[i] = HeaderPlaceholder
		}
	}
	return maskPattern.ReplaceAllString(strings.Join(lines, "\n"), SequencePlaceholder)
}

// FirstDNARun returns the first run of at least MinLength unambiguous bases
// (A, T, C, G) in the uppercased text, or "" when there is none. This is the
// last-resort sequence source for the dispatcher and the keyword fallback
// parser.
func FirstDNARun(text string) string {
	return dnaPattern.FindString(strings.ToUpper(text))
}
