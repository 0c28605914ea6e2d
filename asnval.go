// Package asnval validates EDI X12 Advance Shipment Notice (856)
// documents against retail-vendor compliance rules: structural
// completeness, GSTIN tax-id format, product-code checksums, shipment
// timing windows and transport-certificate freshness.
package asnval

import (
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Segment is one logical EDI record: a tag followed by
// delimiter-separated elements. Element order matches source field
// order; no element is dropped or reordered.
type Segment struct {
	// Tag is the segment identifier (ISA, GS, ST, BSN, DTM, ...). It
	// may be empty when the source line begins with the delimiter.
	Tag string `json:"tag"`
	// Elements are the fields following the tag, in source order.
	Elements []string `json:"elements"`
	// LineNumber is the 1-based line in the original input, counted
	// before blank lines are discarded.
	LineNumber int `json:"line_number"`
	// Raw preserves the original line text verbatim for diagnostics.
	Raw string `json:"raw_content"`
}

// Element returns the element at the given offset, or an empty string
// if the segment is too short. Offsets count after the tag, so
// Element(0) is the first field following the segment identifier.
func (s *Segment) Element(index int) string {
	if index < 0 || index >= len(s.Elements) {
		return ""
	}
	return s.Elements[index]
}

// TransactionSet is a contiguous run of segments opened by an ST
// segment and implicitly closed by the next ST or end of input. The
// opening ST segment is included in Segments. Never mutated after
// parsing completes.
type TransactionSet struct {
	// TypeCode is ST01 (856 for an ASN), or "Unknown" when absent.
	TypeCode string `json:"type"`
	// ControlNumber is ST02, or empty when absent.
	ControlNumber string `json:"control_number"`
	Segments      []*Segment `json:"segments"`
}

// IsASN reports whether the transaction set carries the 856 type code.
func (t *TransactionSet) IsASN() bool {
	return t.TypeCode == asnTransactionSetCode
}

// Metadata describes the parse itself rather than the document content.
type Metadata struct {
	ParsedAt   time.Time `json:"parsed_at"`
	LineCount  int       `json:"total_lines"`
	ByteLength int       `json:"file_size"`
}

// Document is the parsed form of one EDI transmission. It is owned by
// the caller and immutable after construction; validators only read it.
type Document struct {
	// Name is an optional source identifier (file name), set by the
	// caller for reporting.
	Name string `json:"name,omitempty"`
	// RawContent is the full original text, preserved even when
	// structuring failed.
	RawContent string `json:"-"`
	// Segments holds every parsed segment in document order, flat
	// across transaction-set boundaries.
	Segments []*Segment `json:"segments"`
	// TransactionSets groups segments between ST boundaries.
	TransactionSets []*TransactionSet `json:"transaction_sets"`
	// ControlNumbers maps segment tag (ISA, GS, ST) to the control
	// number extracted from it, last seen wins.
	ControlNumbers map[string]string `json:"control_numbers"`
	Metadata       Metadata          `json:"metadata"`
	// Err carries the degradation reason when parsing could not
	// structure the input. A document with Err set has no segments.
	Err string `json:"error,omitempty"`
}

// HasContent reports whether there is any non-blank input to validate.
func (d *Document) HasContent() bool {
	return d != nil && strings.TrimSpace(d.RawContent) != ""
}

// SegmentsWithTag returns all segments with the given tag, in document
// order.
func (d *Document) SegmentsWithTag(tag string) []*Segment {
	var matched []*Segment
	for _, seg := range d.Segments {
		if seg.Tag == tag {
			matched = append(matched, seg)
		}
	}
	return matched
}

// ControlNumber returns the control number extracted for the given
// segment tag (ISA, GS or ST), or an empty string.
func (d *Document) ControlNumber(tag string) string {
	return d.ControlNumbers[tag]
}

// Lines splits the raw content on newlines, preserving blank lines so
// indexes line up with Segment.LineNumber.
func (d *Document) Lines() []string {
	return strings.Split(d.RawContent, "\n")
}

// JSON returns an indented JSON rendering of the parsed document.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
