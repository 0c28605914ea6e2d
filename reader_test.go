package asnval

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEDIFixture(t *testing.T) {
	doc := parseFixture(t, "valid_asn.edi")

	assert.Len(t, doc.Segments, 15)
	assert.True(t, doc.HasContent())
	assert.Empty(t, doc.Err)

	require.Len(t, doc.TransactionSets, 1)
	txn := doc.TransactionSets[0]
	assert.Equal(t, "856", txn.TypeCode)
	assert.Equal(t, "0001", txn.ControlNumber)
	assert.True(t, txn.IsASN())
	// ST through IEA belong to the set opened by the ST segment.
	assert.Len(t, txn.Segments, 13)

	assert.Equal(t, "000000001", doc.ControlNumber("ISA"))
	assert.Equal(t, "1001", doc.ControlNumber("GS"))
	assert.Equal(t, "0001", doc.ControlNumber("ST"))
}

func TestParseEDIDeterministic(t *testing.T) {
	reader := NewReader(fixedClock())
	text := loadFixture(t, "valid_asn.edi")

	first, err := reader.Parse(text)
	require.NoError(t, err)
	second, err := reader.Parse(text)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestParseEDISegmentFields(t *testing.T) {
	doc := parseText(t, "LIN*1*UP*00012345678905~\n")

	require.Len(t, doc.Segments, 1)
	seg := doc.Segments[0]
	assert.Equal(t, "LIN", seg.Tag)
	assert.Equal(t, []string{"1", "UP", "00012345678905"}, seg.Elements)
	assert.Equal(t, 1, seg.LineNumber)
	assert.Equal(t, "LIN*1*UP*00012345678905~", seg.Raw)

	assert.Equal(t, "UP", seg.Element(1))
	assert.Equal(t, "", seg.Element(7))
	assert.Equal(t, "", seg.Element(-1))
}

func TestParseEDIDelimiterFallback(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		tag      string
		elements []string
	}{
		{"asterisk", "GS*SH*A*B", "GS", []string{"SH", "A", "B"}},
		{"pipe", "GS|SH|A|B", "GS", []string{"SH", "A", "B"}},
		{"fixed width", "BSN00SHIP123", "BSN", []string{"00SHIP123"}},
		{"bare tag", "HL", "HL", nil},
		{"leading delimiter", "*A*B", "", []string{"A", "B"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := parseText(t, tt.line)
			require.Len(t, doc.Segments, 1)
			assert.Equal(t, tt.tag, doc.Segments[0].Tag)
			assert.Equal(t, tt.elements, doc.Segments[0].Elements)
		})
	}
}

func TestParseEDIBlankLinesSkipped(t *testing.T) {
	doc := parseText(t, "ISA*00*X~\n\n   \nGS*SH*Y~\n")

	require.Len(t, doc.Segments, 2)
	assert.Equal(t, 1, doc.Segments[0].LineNumber)
	assert.Equal(t, 4, doc.Segments[1].LineNumber)
	assert.Equal(t, 5, doc.Metadata.LineCount)
}

func TestParseEDIEmptyInput(t *testing.T) {
	doc, err := ParseEDI("")

	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.False(t, doc.HasContent())
	assert.Empty(t, doc.Segments)
	assert.Empty(t, doc.TransactionSets)
}

func TestParseEDIOversizedInput(t *testing.T) {
	text := strings.Repeat("A", maxInputBytes+1)

	doc, err := ParseEDI(text)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ParseError))
	require.NotNil(t, doc)
	assert.NotEmpty(t, doc.Err)
	assert.Empty(t, doc.Segments)
	assert.Equal(t, maxInputBytes+1, doc.Metadata.ByteLength)
}

func TestParseEDIInvalidUTF8(t *testing.T) {
	doc, err := ParseEDI("ISA*00*\xff\xfe~")

	require.Error(t, err)
	assert.True(t, errors.Is(err, ParseError))
	assert.NotEmpty(t, doc.Err)
	assert.Empty(t, doc.Segments)
}

func TestParseEDIMultipleTransactionSets(t *testing.T) {
	doc := parseText(t, strings.Join([]string{
		"ISA*00*X~",
		"ST*856*0001~",
		"BSN*00*A~",
		"SE*2*0001~",
		"ST*850*0002~",
		"SE*1*0002~",
	}, "\n"))

	require.Len(t, doc.TransactionSets, 2)
	assert.Equal(t, "856", doc.TransactionSets[0].TypeCode)
	assert.Len(t, doc.TransactionSets[0].Segments, 3)
	assert.Equal(t, "850", doc.TransactionSets[1].TypeCode)
	assert.False(t, doc.TransactionSets[1].IsASN())
	// ST control numbers overwrite, last seen wins.
	assert.Equal(t, "0002", doc.ControlNumber("ST"))
}

func TestParseEDIBareSTDefaultsUnknown(t *testing.T) {
	doc := parseText(t, "ST~")

	require.Len(t, doc.TransactionSets, 1)
	assert.Equal(t, "Unknown", doc.TransactionSets[0].TypeCode)
	assert.Empty(t, doc.TransactionSets[0].ControlNumber)
}

func TestParseEDIControlNumberSkippedWhenShort(t *testing.T) {
	doc := parseText(t, "ISA*00*short~")

	_, ok := doc.ControlNumbers["ISA"]
	assert.False(t, ok)
}

func TestDocumentSegmentsWithTag(t *testing.T) {
	doc := parseFixture(t, "valid_asn.edi")

	dtm := doc.SegmentsWithTag("DTM")
	require.Len(t, dtm, 3)
	assert.Equal(t, "011", dtm[0].Element(0))

	assert.Empty(t, doc.SegmentsWithTag("NOPE"))
}

func TestDocumentUnmarshalText(t *testing.T) {
	var doc Document
	err := doc.UnmarshalText([]byte("ST*856*0001~"))

	require.NoError(t, err)
	require.Len(t, doc.Segments, 1)
	assert.Equal(t, "ST", doc.Segments[0].Tag)
}
