package asnval

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

var ParseError = errors.New("parse error")

var _defaultReader = &Reader{now: time.Now}

// Reader turns raw EDI text into Document instances. The zero value is
// usable; a custom clock can be injected for deterministic parse
// timestamps in tests.
type Reader struct {
	now func() time.Time
}

// NewReader creates a Reader with the given clock. A nil clock falls
// back to time.Now.
func NewReader(now func() time.Time) *Reader {
	if now == nil {
		now = time.Now
	}
	return &Reader{now: now}
}

// ParseEDI parses the given text into a Document using the default
// Reader.
//
// Parsing is deliberately permissive: it is a tokenizer, not a
// validator. Every line yields a segment via a three-tier delimiter
// fallback, and correctness checks belong to the rule validators. The
// returned Document is always non-nil and safe to hand to validators;
// when the input cannot be structured at all (invalid UTF-8, oversized
// input) the document degrades to raw content plus metadata and the
// error explains why.
func ParseEDI(text string) (*Document, error) {
	return _defaultReader.Parse(text)
}

// Parse parses the given text into a Document.
func (r *Reader) Parse(text string) (*Document, error) {
	clock := r.now
	if clock == nil {
		clock = time.Now
	}
	doc := &Document{
		RawContent:     text,
		ControlNumbers: map[string]string{},
		Metadata: Metadata{
			ParsedAt:   clock(),
			LineCount:  len(strings.Split(text, "\n")),
			ByteLength: len(text),
		},
	}

	var err error
	switch {
	case len(text) > maxInputBytes:
		err = fmt.Errorf(
			"%w: input exceeds %d bytes (got %d)",
			ParseError, maxInputBytes, len(text),
		)
	case !utf8.ValidString(text):
		err = fmt.Errorf("%w: input is not valid UTF-8", ParseError)
	}
	if err != nil {
		doc.Err = err.Error()
		return doc, err
	}

	var currentSet *TransactionSet
	for lineNum, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		// The segment terminator is envelope punctuation, not data.
		line = strings.TrimSuffix(line, segmentTerminator)
		if line == "" {
			continue
		}

		seg := parseSegment(line, lineNum+1)
		seg.Raw = strings.TrimSpace(raw)
		doc.Segments = append(doc.Segments, seg)

		if seg.Tag == stSegmentId {
			currentSet = &TransactionSet{
				TypeCode:      "Unknown",
				ControlNumber: seg.Element(stIndexTxnControlNumber),
			}
			if typeCode := seg.Element(stIndexTransactionSetCode); typeCode != "" {
				currentSet.TypeCode = typeCode
			}
			doc.TransactionSets = append(doc.TransactionSets, currentSet)
		}
		if currentSet != nil {
			currentSet.Segments = append(currentSet.Segments, seg)
		}

		if index, ok := controlNumberIndexes[seg.Tag]; ok {
			if index < len(seg.Elements) {
				doc.ControlNumbers[seg.Tag] = seg.Elements[index]
			}
		}
	}
	return doc, nil
}

// parseSegment splits one non-blank line into a Segment. Lines are
// split on '*' when present, '|' otherwise; with neither separator the
// first three characters become the tag and the remainder a single
// element. A line starting with the delimiter yields an empty tag,
// which is accepted here and left to the validators to flag.
func parseSegment(line string, lineNum int) *Segment {
	seg := &Segment{
		LineNumber: lineNum,
		Raw:        line,
	}
	switch {
	case strings.Contains(line, primaryElementSeparator):
		parts := strings.Split(line, primaryElementSeparator)
		seg.Tag = parts[0]
		seg.Elements = parts[1:]
	case strings.Contains(line, fallbackElementSeparator):
		parts := strings.Split(line, fallbackElementSeparator)
		seg.Tag = parts[0]
		seg.Elements = parts[1:]
	default:
		if len(line) >= fallbackTagWidth {
			seg.Tag = line[:fallbackTagWidth]
		} else {
			seg.Tag = line
		}
		if len(line) > fallbackTagWidth {
			seg.Elements = []string{line[fallbackTagWidth:]}
		}
	}
	return seg
}

// UnmarshalText implements encoding.TextUnmarshaler, parsing the given
// bytes with the default Reader.
func (d *Document) UnmarshalText(data []byte) error {
	doc, err := ParseEDI(string(data))
	*d = *doc
	return err
}
