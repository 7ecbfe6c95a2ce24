package valueobject

import (
	"errors"
	"strings"
)

// NDC is a value object for National Drug Codes. Return reports and
// pharmacy inventories carry the same code in several delimiter
// conventions (5-4-2 segmented, 10-digit, 11-digit), so all matching
// goes through the normalized form. The normalized form is for
// comparison only and is never stored or displayed.
type NDC struct {
	raw        string
	normalized string
}

var ndcDelimiters = strings.NewReplacer("-", "", " ", "", ".", "", "*", "")

// NewNDC creates an NDC from a raw identifier string
func NewNDC(raw string) (NDC, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return NDC{}, errors.New("identifier cannot be empty")
	}
	normalized := NormalizeNDC(trimmed)
	if normalized == "" {
		return NDC{}, errors.New("identifier contains no digits")
	}
	for _, r := range normalized {
		if r < '0' || r > '9' {
			return NDC{}, errors.New("identifier contains non-numeric characters")
		}
	}
	if len(normalized) > 11 {
		return NDC{}, errors.New("identifier exceeds 11 digits")
	}
	return NDC{raw: trimmed, normalized: normalized}, nil
}

// Raw returns the identifier as supplied
func (n NDC) Raw() string {
	return n.raw
}

// Normalized returns the canonical comparison form
func (n NDC) Normalized() string {
	return n.normalized
}

// Equals reports whether two NDCs identify the same product package
func (n NDC) Equals(other NDC) bool {
	return ndcFormsEqual(n.normalized, other.normalized)
}

// Contains reports whether the query matches this NDC in search mode:
// substring containment against both the raw and the normalized form.
func (n NDC) Contains(query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return false
	}
	if strings.Contains(n.raw, q) {
		return true
	}
	return strings.Contains(n.normalized, NormalizeNDC(q))
}

// NormalizeNDC canonicalizes a drug identifier for comparison. Delimited
// 3-segment codes are zero-padded to the 5-4-2 layout before the
// delimiters are stripped, so "456-460-1" and "00456-0460-01" produce
// the same 11-digit string. Undelimited input is reduced to its digits.
func NormalizeNDC(raw string) string {
	trimmed := strings.TrimSpace(raw)
	segments := splitNDCSegments(trimmed)
	if len(segments) == 3 {
		widths := []int{5, 4, 2}
		var b strings.Builder
		for i, seg := range segments {
			if len(seg) > widths[i] {
				// Over-wide segment, fall back to plain digit stripping
				return ndcDelimiters.Replace(trimmed)
			}
			b.WriteString(strings.Repeat("0", widths[i]-len(seg)))
			b.WriteString(seg)
		}
		return b.String()
	}
	return ndcDelimiters.Replace(trimmed)
}

// NDCEqual reports whether two raw identifiers match in exact mode
func NDCEqual(a, b string) bool {
	return ndcFormsEqual(NormalizeNDC(a), NormalizeNDC(b))
}

// NDCContains reports whether query matches value in search mode.
// Containment is evaluated against both the full and normalized forms.
func NDCContains(value, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return false
	}
	if strings.Contains(value, q) {
		return true
	}
	return strings.Contains(NormalizeNDC(value), NormalizeNDC(q))
}

// splitNDCSegments splits a delimited identifier into its segments.
// Returns nil when the input is not a clean 3-segment code.
func splitNDCSegments(raw string) []string {
	seps := []string{"-", " ", "."}
	for _, sep := range seps {
		if strings.Count(raw, sep) == 2 {
			parts := strings.Split(raw, sep)
			for _, p := range parts {
				if p == "" {
					return nil
				}
			}
			return parts
		}
	}
	return nil
}

// ndcFormsEqual compares two normalized forms. A 10-digit code matches
// an 11-digit code when inserting the dropped leading zero into any of
// the three segment positions reproduces the 11-digit form. This covers
// reports that print the 10-digit billing format against inventories
// stored in the 11-digit format.
func ndcFormsEqual(a, b string) bool {
	if a == b {
		return true
	}
	if len(a) == 10 && len(b) == 11 {
		return padsTo(a, b)
	}
	if len(a) == 11 && len(b) == 10 {
		return padsTo(b, a)
	}
	return false
}

// padsTo reports whether inserting a single zero at a 5-4-2 segment
// boundary of the 10-digit code yields the 11-digit code.
func padsTo(ten, eleven string) bool {
	// Pad positions for the 4-4-2, 5-3-2 and 5-4-1 layouts
	for _, pos := range []int{0, 5, 9} {
		if eleven == ten[:pos]+"0"+ten[pos:] {
			return true
		}
	}
	return false
}
