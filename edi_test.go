package asnval

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEDIValidatorCleanFixture(t *testing.T) {
	doc := parseFixture(t, "valid_asn.edi")

	result := NewEDIValidator().Validate(doc, DefaultConfig())

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Contains(t, result.Details, "8/8 required segments")
}

func TestEDIValidatorEmptyContent(t *testing.T) {
	doc := parseText(t, "")

	result := NewEDIValidator().Validate(doc, DefaultConfig())

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, areaFile, result.Errors[0].Segment)
	assert.Equal(t, "Validation failed - no content", result.Details)
}

func TestEDIValidatorMissingSegments(t *testing.T) {
	doc := parseFixture(t, "invalid_asn.edi")

	result := NewEDIValidator().Validate(doc, DefaultConfig())

	assert.False(t, result.Success)
	require.Len(t, result.Errors, 2)

	missing := result.Errors[0]
	assert.Equal(t, areaStructure, missing.Segment)
	assert.Contains(t, missing.Message, "HL")
	assert.Contains(t, missing.Message, "GE")
	assert.Contains(t, missing.Message, "IEA")

	isa := result.Errors[1]
	assert.Equal(t, "ISA", isa.Segment)
	assert.Contains(t, isa.Message, "insufficient fields")
	assert.Contains(t, result.Details, "5/8 required segments")
}

func TestEDIValidatorTrailingTerminator(t *testing.T) {
	doc := parseText(t, "ST*856*0001")

	result := NewEDIValidator().Validate(doc, DefaultConfig())

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "segment terminator") {
			found = true
		}
	}
	assert.True(t, found, "expected terminator warning, got %+v", result.Warnings)
}

func TestEDIValidatorShortFile(t *testing.T) {
	doc := parseText(t, "ST*856*0001~\nSE*1*0001~")

	result := NewEDIValidator().Validate(doc, DefaultConfig())

	found := false
	for _, w := range result.Warnings {
		if strings.Contains(w.Message, "very short") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestEDIValidatorVendorPrefix(t *testing.T) {
	doc := parseFixture(t, "valid_asn.edi")

	cfg := DefaultConfig()
	cfg.VendorID = "ACME-00123"
	result := NewEDIValidator().Validate(doc, cfg)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, areaConfig, result.Warnings[0].Segment)
	assert.Contains(t, result.Warnings[0].Details, "ACME-00123")

	cfg.VendorID = "WMTIN-00123"
	result = NewEDIValidator().Validate(doc, cfg)
	assert.Empty(t, result.Warnings)
}

func TestEDIValidatorNon856TransactionSet(t *testing.T) {
	content := strings.Replace(loadFixture(t, "valid_asn.edi"), "ST*856*0001~", "ST*850*0001~", 1)
	doc := parseText(t, content)

	result := NewEDIValidator().Validate(doc, DefaultConfig())

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "856")
}

func TestEDIValidatorDuplicateControlNumbers(t *testing.T) {
	content := strings.Replace(loadFixture(t, "valid_asn.edi"),
		"GS*SH*WMTIN12345*WALMART*20240312*1000*1001*X*004010~",
		"GS*SH*WMTIN12345*WALMART*20240312*1000*000000001*X*004010~", 1)
	doc := parseText(t, content)

	result := NewEDIValidator().Validate(doc, DefaultConfig())

	require.Len(t, result.Warnings, 1)
	assert.Equal(t, areaControl, result.Warnings[0].Segment)
	assert.Contains(t, result.Warnings[0].Message, "Duplicate control numbers")
}
