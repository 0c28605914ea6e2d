package asnval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGTINChecksum(t *testing.T) {
	tests := []struct {
		gtin  string
		valid bool
	}{
		{"00012345678905", true},
		{"00000000000000", true},
		{"00012345678901", false},
		{"1234", false},
		{"ABCDEFGHIJKLMN", false},
		{"", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidateGTINChecksum(tt.gtin), "gtin %q", tt.gtin)
	}
}

func TestProductValidatorCatalogGTIN(t *testing.T) {
	doc := parseText(t, "LIN*1*UP*00012345678905~\nSN1*1*100*EA~")

	result := NewProductValidator().Validate(doc, DefaultConfig())

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
	assert.Contains(t, result.Details, "1 product(s) out of 1")
}

func TestProductValidatorChecksumFailure(t *testing.T) {
	doc := parseText(t, "LIN*1*UP*00012345678901~")

	result := NewProductValidator().Validate(doc, DefaultConfig())

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "GTIN checksum validation failed")
}

func TestProductValidatorUnknownCatalogEntry(t *testing.T) {
	// Checksum-valid GTIN that is not in the catalog.
	doc := parseText(t, "LIN*1*UP*00000000000000~")

	result := NewProductValidator().Validate(doc, DefaultConfig())

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "not found in database")
}

func TestProductValidatorWalmartItemNumber(t *testing.T) {
	doc := parseText(t, "LIN*1*IN*WIN12345678~")

	result := NewProductValidator().Validate(doc, DefaultConfig())

	assert.True(t, result.Success)
	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestProductValidatorUPC12Advisory(t *testing.T) {
	doc := parseText(t, "LIN*1*UP*012345678905~")

	result := NewProductValidator().Validate(doc, DefaultConfig())

	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "UPC-12 format detected")
}

func TestProductValidatorInvalidFormat(t *testing.T) {
	doc := parseText(t, "LIN*1*UP*ABC123~")

	result := NewProductValidator().Validate(doc, DefaultConfig())

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "Invalid product code format")
}

func TestProductValidatorDuplicateLines(t *testing.T) {
	doc := parseText(t, "LIN*1*UP*00012345678905~\nLIN*2*UP*00012345678905~")

	result := NewProductValidator().Validate(doc, DefaultConfig())

	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "Duplicate product codes")
	assert.Contains(t, result.Warnings[0].Details, "00012345678905")
}

func TestProductValidatorQuantities(t *testing.T) {
	doc := parseText(t, "LIN*1*UP*00012345678905~\nSN1*1*0*EA~\nSN1*2*20000*EA~\nSN1*3*5*QQ~")

	result := NewProductValidator().Validate(doc, DefaultConfig())

	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0].Message, "Invalid quantity: 0")

	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0].Message, "Large quantity detected: 20000")
	assert.Contains(t, result.Warnings[1].Message, "Uncommon unit of measure: QQ")
}

func TestProductValidatorNoCodes(t *testing.T) {
	doc := parseText(t, "ST*856*0001~")

	result := NewProductValidator().Validate(doc, DefaultConfig())

	assert.True(t, result.Success)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "No product codes found")
}

func TestExtractProductCodes(t *testing.T) {
	content := "LIN*1*UP*00012345678905~\nLIN*2*IN*WIN12345678~\nLIN*3*UP*00012345678905~"

	codes, lineCounts := extractProductCodes(content)

	assert.Equal(t, []string{"00012345678905", "WIN12345678"}, codes)
	assert.Equal(t, 2, lineCounts["00012345678905"])
	assert.Equal(t, 1, lineCounts["WIN12345678"])
}
