package asnval

import (
	"fmt"
	"strings"
)

// EDIValidator checks structural completeness of the interchange:
// required segments, ISA field count, vendor-id convention, the
// trailing segment terminator, and a few advisory envelope checks.
//
// Required-segment presence is a coarse raw-text search for "TAG*",
// independent of the structured segment list, so partially malformed
// input the tokenizer could not structure is still covered.
type EDIValidator struct{}

func NewEDIValidator() *EDIValidator { return &EDIValidator{} }

func (v *EDIValidator) Key() ValidatorKey { return KeyEDI }

func (v *EDIValidator) Name() string { return "EDI Structure Validator" }

func (v *EDIValidator) Validate(doc *Document, cfg *Config) ValidationResult {
	result := ValidationResult{ValidatorName: v.Name()}

	if !doc.HasContent() {
		result.addError(Finding{
			Segment:    areaFile,
			Message:    "No file content found for validation",
			Details:    "Cannot validate empty or missing file content",
			Suggestion: "Ensure the file is properly uploaded and contains data",
		})
		result.finalize("Validation failed - no content")
		return result
	}

	content := doc.RawContent

	var missing []string
	for _, tag := range requiredSegmentIds {
		if !strings.Contains(content, tag+primaryElementSeparator) {
			missing = append(missing, tag)
		}
	}
	if len(missing) > 0 {
		result.addError(Finding{
			Segment:    areaStructure,
			Message:    fmt.Sprintf("Missing required EDI segments: %s", strings.Join(missing, ", ")),
			Details:    "EDI file must contain all required segments for proper processing",
			Suggestion: fmt.Sprintf("Add missing segments: %s", strings.Join(missing, ", ")),
		})
	}

	v.checkISA(content, &result)
	v.checkASNType(doc, &result)
	v.checkControlNumbers(doc, &result)

	if cfg.VendorID != "" && !strings.HasPrefix(cfg.VendorID, vendorIdPrefix) {
		result.addWarning(Finding{
			Segment:    areaConfig,
			Message:    "Vendor ID format may not follow Walmart India standard",
			Details:    fmt.Sprintf("Vendor ID %q does not start with %s", cfg.VendorID, vendorIdPrefix),
			Suggestion: "Verify vendor ID format with Walmart India standards",
		})
	}

	if !strings.HasSuffix(strings.TrimSpace(content), segmentTerminator) {
		result.addWarning(Finding{
			Segment:    areaFile,
			Message:    "EDI file should end with segment terminator (~)",
			Details:    "File does not end with proper EDI segment terminator",
			Suggestion: "Add ~ at the end of your EDI file",
		})
	}

	if doc.Metadata.LineCount < minAdvisoryLineCount {
		result.addWarning(Finding{
			Segment:    areaFile,
			Message:    "File appears to be very short",
			Details:    fmt.Sprintf("File has only %d lines, which seems minimal for an ASN", doc.Metadata.LineCount),
			Suggestion: "Verify that the complete EDI file was uploaded",
		})
	}

	result.finalize(fmt.Sprintf(
		"EDI structure validation completed. Found %d/%d required segments.",
		len(requiredSegmentIds)-len(missing), len(requiredSegmentIds),
	))
	return result
}

// checkISA verifies the ISA header splits into the full 16-field
// envelope when present.
func (v *EDIValidator) checkISA(content string, result *ValidationResult) {
	if !strings.Contains(content, isaSegmentId+primaryElementSeparator) {
		return
	}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, isaSegmentId+primaryElementSeparator) {
			continue
		}
		fields := strings.Split(line, primaryElementSeparator)
		if len(fields) < isaElementCount {
			result.addError(Finding{
				Segment:    isaSegmentId,
				Message:    "ISA segment has insufficient fields",
				Details:    fmt.Sprintf("ISA segment has %d fields, requires %d", len(fields), isaElementCount),
				Suggestion: "Ensure ISA segment follows EDI X12 standard format",
			})
		}
		return
	}
}

// checkASNType warns when transaction sets exist but none carries the
// 856 type code. Advisory only: the required-segment check already
// gates readiness on ST presence.
func (v *EDIValidator) checkASNType(doc *Document, result *ValidationResult) {
	if len(doc.TransactionSets) == 0 {
		return
	}
	for _, txn := range doc.TransactionSets {
		if txn.IsASN() {
			return
		}
	}
	result.addWarning(Finding{
		Segment:    stSegmentId,
		Message:    "No 856 transaction set found",
		Details:    "ST segments are present but none declares transaction set type 856 (ASN)",
		Suggestion: "Ensure the ST segment specifies transaction set 856, e.g. ST*856*0001",
	})
}

// checkControlNumbers warns when distinct envelope segments share a
// control number.
func (v *EDIValidator) checkControlNumbers(doc *Document, result *ValidationResult) {
	if len(doc.ControlNumbers) < 2 {
		return
	}
	seen := map[string]bool{}
	for _, tag := range []string{isaSegmentId, gsSegmentId, stSegmentId} {
		num, ok := doc.ControlNumbers[tag]
		if !ok || num == "" {
			continue
		}
		if seen[num] {
			result.addWarning(Finding{
				Segment:    areaControl,
				Message:    "Duplicate control numbers detected",
				Details:    "Multiple envelope segments share the same control number",
				Suggestion: "Ensure each control number is unique",
			})
			return
		}
		seen[num] = true
	}
}
