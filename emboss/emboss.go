package emboss

// Package emboss shells out to the EMBOSS command-line toolkit. Every tool
// follows the same calling convention: write the sequence to a temporary
// single-record FASTA file, run `tool <in> <out> -key value ...`, read the
// output file back. Tool failures are embedded in the returned text rather
// than raised, so the dispatcher can always build a result envelope.

import (
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"
)

// CommandRunner executes an external command and returns its combined
// stdout/stderr. It is a package-level var so tests can stub the exec
// boundary.
type CommandRunner func(name string, args ...string) ([]byte, error)

var runCommand CommandRunner = defaultRunner

func defaultRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// SetCommandRunner swaps the exec boundary. Tests use this to fake EMBOSS;
// passing nil restores the real runner.
func SetCommandRunner(r CommandRunner) {
	if r == nil {
		r = defaultRunner
	}
	runCommand = r
}

// Option is one -key value flag passed to an EMBOSS executable.
type Option struct {
	Key   string
	Value string
}

// Wrapper invokes EMBOSS tools on single sequences.
type Wrapper struct{}

func New() *Wrapper {
	return &Wrapper{}
}

// CheckInstalled runs embossversion and returns its output, or an error when
// the toolkit is missing from PATH.
func CheckInstalled() (string, error) {
	out, err := runCommand("embossversion")
	if err != nil {
		return "", fmt.Errorf("EMBOSS not found (install with: conda install -c bioconda emboss): %w", err)
	}
	return strings.TrimSpace(string(out)), nil
}

// RunTool is the generic EMBOSS runner. The sequence is written as a
// single-record FASTA with the header ">Query"; both temp files are removed
// on every exit path. A non-zero exit status yields an error string as the
// result, never a panic or error return.
func (w *Wrapper) RunTool(tool, inputSeq string, opts ...Option) string {
	fIn, err := os.CreateTemp("", "bioquery-*.fasta")
	if err != nil {
		return fmt.Sprintf("Error running %s: %v", tool, err)
	}
	inputPath := fIn.Name()
	defer os.Remove(inputPath)

	if _, err := fmt.Fprintf(fIn, ">Query\n%s\n", inputSeq); err != nil {
		fIn.Close()
		return fmt.Sprintf("Error running %s: %v", tool, err)
	}
	fIn.Close()

	fOut, err := os.CreateTemp("", "bioquery-*.out")
	if err != nil {
		return fmt.Sprintf("Error running %s: %v", tool, err)
	}
	outputPath := fOut.Name()
	fOut.Close()
	defer os.Remove(outputPath)

	args := []string{inputPath, outputPath}
	for _, o := range opts {
		args = append(args, "-"+o.Key, o.Value)
	}

	combined, err := runCommand(tool, args...)
	if err != nil {
		return fmt.Sprintf("Error running %s:\n%s", tool, strings.TrimSpace(string(combined)))
	}

	output, err := os.ReadFile(outputPath)
	if err != nil {
		return fmt.Sprintf("Error running %s: %v", tool, err)
	}
	return string(output)
}

// Translate converts DNA to protein with transeq. FASTA headers and blank
// lines are stripped from the output.
func (w *Wrapper) Translate(seq string, frame int) string {
	if frame <= 0 {
		frame = 1
	}
	raw := w.RunTool("transeq", seq, Option{"frame", strconv.Itoa(frame)})

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, ">") {
			continue
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// Sixframe translates in all six reading frames via transeq -frame 6 and
// relabels the generic >Query_N headers as frame names. EMBOSS sixpack
// hangs on piped input, which is why transeq is used here.
func (w *Wrapper) Sixframe(seq string) string {
	raw := w.RunTool("transeq", seq, Option{"frame", "6"})

	replacements := [][2]string{
		{">Query_1", ">Frame +1"},
		{">Query_2", ">Frame +2"},
		{">Query_3", ">Frame +3"},
		{">Query_4", ">Frame -1"},
		{">Query_5", ">Frame -2"},
		{">Query_6", ">Frame -3"},
	}
	for _, r := range replacements {
		raw = strings.ReplaceAll(raw, r[0], r[1])
	}
	return raw
}

// ReverseComplement runs revseq and drops the EMBOSS header line.
func (w *Wrapper) ReverseComplement(seq string) string {
	raw := w.RunTool("revseq", seq)

	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > 0 && strings.HasPrefix(lines[0], ">") {
		lines = lines[1:]
	}
	return "Reverse complement:\n" + strings.Join(lines, "\n")
}

// FindORFs locates open reading frames with getorf. minSize <= 0 uses the
// default of 75 bases.
func (w *Wrapper) FindORFs(seq string, minSize int) string {
	if minSize <= 0 {
		minSize = 75
	}
	return w.RunTool("getorf", seq, Option{"minsize", strconv.Itoa(minSize)})
}

// FindPattern searches for a motif with fuzznuc. When mismatch > 0 it is
// passed through as -pmismatch; 0 keeps the argv identical to a plain
// exact-match search.
func (w *Wrapper) FindPattern(seq, pattern string, mismatch int) string {
	opts := []Option{{"pattern", pattern}}
	if mismatch > 0 {
		opts = append(opts, Option{"pmismatch", strconv.Itoa(mismatch)})
	}
	return w.RunTool("fuzznuc", seq, opts...)
}

// restriction enzymes scanned by RestrictionSites. EMBOSS restrict needs a
// REBASE data file that most installs lack, so a built-in scan over a few
// common enzymes is used instead.
var enzymes = []struct {
	name  string
	motif string
}{
	{"EcoRI", "GAATTC"},
	{"NotI", "GCGGCCGC"},
	{"XbaI", "TCTAGA"},
	{"BamHI", "GGATCC"},
}

// RestrictionSites reports the positions of common enzyme recognition sites.
// Positions are 1-based, matching how biologists count.
func (w *Wrapper) RestrictionSites(seq string) string {
	cleaned := strings.ToUpper(strings.ReplaceAll(seq, "\n", ""))

	var hits []string
	for _, e := range enzymes {
		start := 0
		for {
			i := strings.Index(cleaned[start:], e.motif)
			if i < 0 {
				break
			}
			pos := start + i
			hits = append(hits, fmt.Sprintf("%s (%s) at position %d", e.name, e.motif, pos+1))
			start = pos + 1
		}
	}

	if len(hits) == 0 {
		return "No EcoRI/NotI/XbaI/BamHI sites found in the given sequence."
	}
	return strings.Join(hits, "\n")
}
