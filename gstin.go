package asnval

import (
	"fmt"
	"regexp"
)

// GSTIN format: 2-digit state code + 10-character PAN + entity digit +
// literal Z + check character, 15 characters total.
var (
	gstinPattern    = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
	gstinScan       = regexp.MustCompile(`[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]`)
	gstinRefPattern = regexp.MustCompile(`REF\*TJ\*([0-9]{2}[A-Z0-9]{13})`)
	panPattern      = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)
)

// GSTINValidator checks Indian tax identification numbers found in the
// document against format, state-code and PAN rules, and against the
// state configured for the run.
type GSTINValidator struct{}

func NewGSTINValidator() *GSTINValidator { return &GSTINValidator{} }

func (v *GSTINValidator) Key() ValidatorKey { return KeyGSTIN }

func (v *GSTINValidator) Name() string { return "GSTIN Validator" }

func (v *GSTINValidator) Validate(doc *Document, cfg *Config) ValidationResult {
	result := ValidationResult{ValidatorName: v.Name()}

	gstins := extractGSTINs(doc.RawContent)
	if len(gstins) == 0 {
		result.addWarning(Finding{
			Segment:    areaGSTIN,
			Message:    "No GSTIN found in file",
			Details:    "Could not locate any GSTIN numbers in the EDI file",
			Suggestion: "Ensure GSTIN is included in the appropriate segments (REF*TJ* or N1 segments)",
		})
		result.finalize("GSTIN validation completed. No GSTIN located.")
		return result
	}

	for _, gstin := range gstins {
		v.validateOne(gstin, cfg, &result)
	}

	result.finalize(fmt.Sprintf(
		"GSTIN validation completed for %d GSTIN(s). State: %s (%s)",
		len(gstins), cfg.StateName, cfg.StateCode,
	))
	return result
}

// validateOne runs the per-candidate checks. Format and unknown-state
// failures skip the remaining checks for that candidate; the rest are
// independent, so one GSTIN can produce several findings.
func (v *GSTINValidator) validateOne(gstin string, cfg *Config, result *ValidationResult) {
	if !gstinPattern.MatchString(gstin) {
		result.addError(Finding{
			Segment:    areaGSTIN,
			Message:    fmt.Sprintf("Invalid GSTIN format: %s", gstin),
			Details:    "GSTIN must be 15 characters: 2-digit state + 10-digit PAN + 1-digit entity + 1-digit check + Z",
			Suggestion: "Verify GSTIN format and ensure all characters are correct",
		})
		return
	}

	stateCode := gstin[:2]
	stateName, known := indianStateCodes[stateCode]
	if !known {
		result.addError(Finding{
			Segment:    areaGSTIN,
			Message:    fmt.Sprintf("Invalid state code in GSTIN: %s", stateCode),
			Details:    fmt.Sprintf("State code %s is not a valid Indian state code", stateCode),
			Suggestion: "Use a valid Indian state code (01-38)",
		})
		return
	}

	if stateCode != cfg.StateCode {
		result.addError(Finding{
			Segment: areaGSTIN,
			Message: "GSTIN state code mismatch",
			Details: fmt.Sprintf(
				"GSTIN state code %s (%s) does not match selected state %s (%s)",
				stateCode, stateName, cfg.StateCode, cfg.StateName,
			),
			Suggestion: fmt.Sprintf(
				"Update GSTIN to use state code %s or change state selection to %s",
				cfg.StateCode, stateName,
			),
		})
	}

	if !gstinCheckDigitPlausible(gstin) {
		result.addError(Finding{
			Segment:    areaGSTIN,
			Message:    fmt.Sprintf("GSTIN checksum validation failed: %s", gstin),
			Details:    "The GSTIN check digit does not match the calculated value",
			Suggestion: "Verify the GSTIN number with the tax authority or recalculate the check digit",
		})
	}

	if pan := gstin[2:12]; !panPattern.MatchString(pan) {
		result.addError(Finding{
			Segment:    areaGSTIN,
			Message:    fmt.Sprintf("Invalid PAN format within GSTIN: %s", pan),
			Details:    "PAN portion of GSTIN must follow format: 5 letters + 4 digits + 1 letter",
			Suggestion: "Verify the PAN number format within the GSTIN",
		})
	}
}

// extractGSTINs collects GSTIN candidates from REF*TJ* segments and
// from a general pattern scan over the whole text, deduplicated in
// first-seen order.
func extractGSTINs(content string) []string {
	var gstins []string
	seen := map[string]bool{}
	add := func(candidate string) {
		if candidate == "" || seen[candidate] {
			return
		}
		seen[candidate] = true
		gstins = append(gstins, candidate)
	}

	for _, m := range gstinRefPattern.FindAllStringSubmatch(content, -1) {
		add(m[1])
	}
	for _, m := range gstinScan.FindAllString(content, -1) {
		add(m)
	}
	return gstins
}

// gstinCheckDigitPlausible screens the 15th character. This is a
// plausibility check only, not the official GSTIN mod-36 checksum:
// the simplification is intentional and kept for parity with existing
// compliance reports.
func gstinCheckDigitPlausible(gstin string) bool {
	if len(gstin) != 15 {
		return false
	}
	c := gstin[14]
	return (c >= '0' && c <= '9') || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}
