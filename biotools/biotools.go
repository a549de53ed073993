package biotools

// Package biotools covers the analyses that do not need an EMBOSS process:
// GC content, composition statistics, and sequence lookup through the NCBI
// Entrez E-utilities.

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sb2003/BioQuery-Local/models"
	"github.com/sb2003/BioQuery-Local/sequence"
)

const eutilsBase = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils"

const gcWindowSize = 10

// httpGet is a package-level var so tests can mock the Entrez boundary.
var httpGet = defaultHTTPGet

func defaultHTTPGet(rawURL string) (*http.Response, error) {
	client := &http.Client{Timeout: 20 * time.Second}
	req, err := http.NewRequest("GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "BioQuery-Local/1.0 (Entrez client)")
	return client.Do(req)
}

// SetHTTPGetter swaps the HTTP boundary for tests; passing nil restores the
// real client.
func SetHTTPGetter(get func(url string) (*http.Response, error)) {
	if get == nil {
		get = defaultHTTPGet
	}
	httpGet = get
}

// BioTools bundles the non-EMBOSS analyses. Email is sent to Entrez as NCBI
// asks clients to identify themselves.
type BioTools struct {
	Email string
}

func New(email string) *BioTools {
	return &BioTools{Email: email}
}

func gcPercent(seq string) float64 {
	if len(seq) == 0 {
		return 0
	}
	gc := 0
	for _, r := range seq {
		if r == 'G' || r == 'C' {
			gc++
		}
	}
	return float64(gc) / float64(len(seq)) * 100.0
}

// GCContent calculates overall GC percentage plus a 10-base sliding-window
// profile. Sequences no longer than one window produce an empty profile with
// zero min/max.
func (b *BioTools) GCContent(seq string) models.GCReport {
	cleaned := strings.ToUpper(strings.ReplaceAll(seq, "\n", ""))

	report := models.GCReport{
		OverallGC: gcPercent(cleaned),
		Length:    len(cleaned),
		GCWindows: []float64{},
	}

	for i := 0; i < len(cleaned)-gcWindowSize; i++ {
		report.GCWindows = append(report.GCWindows, gcPercent(cleaned[i:i+gcWindowSize]))
	}
	if len(report.GCWindows) > 0 {
		report.MinGC = report.GCWindows[0]
		report.MaxGC = report.GCWindows[0]
		for _, w := range report.GCWindows {
			if w < report.MinGC {
				report.MinGC = w
			}
			if w > report.MaxGC {
				report.MaxGC = w
			}
		}
	}
	return report
}

// SequenceStats returns length, per-base counts and GC/AT percentages.
func (b *BioTools) SequenceStats(seq string) models.SequenceStats {
	cleaned := strings.ToUpper(strings.ReplaceAll(seq, "\n", ""))
	gc := gcPercent(cleaned)
	return models.SequenceStats{
		Length:    len(cleaned),
		ACount:    strings.Count(cleaned, "A"),
		TCount:    strings.Count(cleaned, "T"),
		GCount:    strings.Count(cleaned, "G"),
		CCount:    strings.Count(cleaned, "C"),
		GCContent: gc,
		ATContent: 100.0 - gc,
	}
}

type esearchResponse struct {
	ESearchResult struct {
		IDList []string `json:"idlist"`
	} `json:"esearchresult"`
}

// FetchSequence looks a gene name up in the NCBI nucleotide database
// (esearch then efetch) and returns the first matching sequence, or "" when
// offline, nothing matches, or anything else goes wrong. It never returns an
// error: the dispatcher treats an empty string as "try the next source".
func (b *BioTools) FetchSequence(geneName string) string {
	searchURL := fmt.Sprintf("%s/esearch.fcgi?db=nucleotide&term=%s&retmax=1&retmode=json",
		eutilsBase, url.QueryEscape(geneName))
	if b.Email != "" {
		searchURL += "&email=" + url.QueryEscape(b.Email)
	}

	resp, err := httpGet(searchURL)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	var search esearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&search); err != nil {
		return ""
	}
	if len(search.ESearchResult.IDList) == 0 {
		return ""
	}

	fetchURL := fmt.Sprintf("%s/efetch.fcgi?db=nucleotide&id=%s&rettype=fasta&retmode=text",
		eutilsBase, url.QueryEscape(search.ESearchResult.IDList[0]))
	resp, err = httpGet(fetchURL)
	if err != nil {
		return ""
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return ""
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 5*1024*1024))
	if err != nil {
		return ""
	}

	seqs := sequence.Extract(string(body))
	if len(seqs) == 0 {
		return ""
	}
	return seqs[0]
}
