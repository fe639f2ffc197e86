package catalogtl

import "sort"

// Unit is a single cell submitted for translation.
type Unit struct {
	Row    int    // Zero-based data row index
	Column string // Column key in the table
	Text   string // Source text with surrounding whitespace trimmed
	Markup bool   // Send with markup preservation
}

// Batch is a bounded group of units sharing a column and markup flag.
type Batch struct {
	Index  int // Position in the run, zero-based
	Column string
	Markup bool
	Units  []Unit
}

// Rows returns the first and last row index covered by the batch.
func (b *Batch) Rows() (first, last int) {
	if len(b.Units) == 0 {
		return -1, -1
	}
	first, last = b.Units[0].Row, b.Units[0].Row
	for _, u := range b.Units[1:] {
		if u.Row < first {
			first = u.Row
		}
		if u.Row > last {
			last = u.Row
		}
	}
	return first, last
}

// BatchLimits bounds the size of a single translation request.
type BatchLimits struct {
	MaxUnits int // Maximum texts per request
	MaxChars int // Maximum total characters (runes) per request
}

// DefaultBatchLimits returns limits that fit the DeepL request size caps.
func DefaultBatchLimits() BatchLimits {
	return BatchLimits{
		MaxUnits: 50,
		MaxChars: 30000,
	}
}

// RunResult summarizes a translation run.
type RunResult struct {
	Units          int            // Units written back into the table
	Submitted      int            // Unique texts sent to the service
	Reused         int            // Units filled from an earlier identical text
	Batches        int            // Requests sent
	Characters     int            // Characters sent
	DetectedLangs  map[string]int // Source language histogram reported by the service
	ColumnsTouched []string
}

// TopDetectedLang returns the most frequently detected source language.
func (r *RunResult) TopDetectedLang() string {
	langs := r.SortedDetectedLangs()
	if len(langs) == 0 {
		return ""
	}
	return langs[0]
}

// SortedDetectedLangs returns detected languages, most frequent first.
func (r *RunResult) SortedDetectedLangs() []string {
	langs := make([]string, 0, len(r.DetectedLangs))
	for l := range r.DetectedLangs {
		langs = append(langs, l)
	}
	sort.Slice(langs, func(i, j int) bool {
		ci, cj := r.DetectedLangs[langs[i]], r.DetectedLangs[langs[j]]
		if ci != cj {
			return ci > cj
		}
		return langs[i] < langs[j]
	})
	return langs
}

// TextNode is a piece of text extracted from markup for translation.
type TextNode struct {
	ID       string            // Position-based identifier within the fragment
	Text     string            // Original text content (trimmed)
	Hash     string            // SHA-256 hash of Text
	NodeType string            // Content type, e.g. "html_text"
	Metadata map[string]string // Additional info (parent tag, etc.)
}

// IgnoredTags contains HTML tags whose content is never translated.
var IgnoredTags = map[string]bool{
	"script":   true,
	"style":    true,
	"code":     true,
	"pre":      true,
	"textarea": true,
	"noscript": true,
}
