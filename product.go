package asnval

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	linCodePattern = regexp.MustCompile(`LIN\*[0-9]+\*(?:UP|IN|UK|EN)\*([0-9A-Z]+)`)
	gtinRunPattern = regexp.MustCompile(`[0-9]{14}`)
	winPattern     = regexp.MustCompile(`^(WIN|WM|55)[0-9]{8,12}$`)
	sn1Pattern     = regexp.MustCompile(`SN1\*[0-9]+\*([0-9]+)\*([A-Z]{2,3})`)
	digitsOnly     = regexp.MustCompile(`^[0-9]+$`)
)

// ProductValidator checks product identifiers (GTIN-14, UPC-12,
// Walmart Item Numbers) and SN1 quantity segments.
type ProductValidator struct{}

func NewProductValidator() *ProductValidator { return &ProductValidator{} }

func (v *ProductValidator) Key() ValidatorKey { return KeyProducts }

func (v *ProductValidator) Name() string { return "Product Code Validator" }

func (v *ProductValidator) Validate(doc *Document, cfg *Config) ValidationResult {
	result := ValidationResult{ValidatorName: v.Name()}

	codes, lineCounts := extractProductCodes(doc.RawContent)
	if len(codes) == 0 {
		result.addWarning(Finding{
			Segment:    areaProduct,
			Message:    "No product codes found in file",
			Details:    "Could not locate any product identifiers (GTIN, UPC, WIN) in the EDI file",
			Suggestion: "Ensure product codes are included in LIN segments or other appropriate locations",
		})
		result.finalize("Product validation completed. No product codes located.")
		return result
	}

	validated := 0
	for _, code := range codes {
		if v.validateCode(code, &result) {
			validated++
		}
	}

	v.checkDuplicates(lineCounts, &result)
	v.validateQuantities(doc.RawContent, &result)

	result.finalize(fmt.Sprintf(
		"Product validation completed for %d product(s) out of %d total codes found",
		validated, len(codes),
	))
	return result
}

// validateCode classifies one code by shape and applies the matching
// checks. Returns true when the code passed its checks.
func (v *ProductValidator) validateCode(code string, result *ValidationResult) bool {
	switch {
	case len(code) == 14 && digitsOnly.MatchString(code):
		if !ValidateGTINChecksum(code) {
			result.addError(Finding{
				Segment:    linSegmentId,
				Message:    fmt.Sprintf("GTIN checksum validation failed: %s", code),
				Details:    "The GTIN check digit does not match the calculated value",
				Suggestion: "Verify the GTIN number or recalculate the check digit",
			})
			return false
		}
		if _, ok := productCatalog[code]; !ok {
			result.addError(Finding{
				Segment:    linSegmentId,
				Message:    fmt.Sprintf("Product code not found in database: %s", code),
				Details:    "The GTIN is not registered in the Walmart master catalog",
				Suggestion: "Register the product in Walmart Retail Link or verify the GTIN number",
			})
			return false
		}
		return true

	case winPattern.MatchString(code):
		return true

	case len(code) == 12 && digitsOnly.MatchString(code):
		result.addWarning(Finding{
			Segment:    linSegmentId,
			Message:    fmt.Sprintf("UPC-12 format detected: %s", code),
			Details:    "Consider using GTIN-14 format for better compatibility",
			Suggestion: "Convert UPC-12 to GTIN-14 by padding with leading zeros",
		})
		return true

	default:
		result.addError(Finding{
			Segment:    linSegmentId,
			Message:    fmt.Sprintf("Invalid product code format: %s", code),
			Details:    "Product code does not match GTIN-14, UPC-12, or WIN format",
			Suggestion: "Use valid product identifiers: GTIN-14 (14 digits) or WIN (Walmart Item Number)",
		})
		return false
	}
}

// checkDuplicates warns once when any code appears on more than one
// source line.
func (v *ProductValidator) checkDuplicates(lineCounts map[string]int, result *ValidationResult) {
	var duplicated []string
	for code, count := range lineCounts {
		if count > 1 {
			duplicated = append(duplicated, code)
		}
	}
	if len(duplicated) == 0 {
		return
	}
	sort.Strings(duplicated)
	result.addWarning(Finding{
		Segment:    linSegmentId,
		Message:    "Duplicate product codes detected",
		Details:    fmt.Sprintf("Codes appearing on multiple lines: %s", strings.Join(duplicated, ", ")),
		Suggestion: "Verify quantities and ensure each product line is correctly specified",
	})
}

// validateQuantities checks SN1 quantity/unit-of-measure pairs.
func (v *ProductValidator) validateQuantities(content string, result *ValidationResult) {
	for _, m := range sn1Pattern.FindAllStringSubmatch(content, -1) {
		qty, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		uom := m[2]

		if qty <= 0 {
			result.addError(Finding{
				Segment:    sn1SegmentId,
				Message:    fmt.Sprintf("Invalid quantity: %d", qty),
				Details:    "Product quantity must be greater than zero",
				Suggestion: "Correct the quantity value in SN1 segment",
			})
		} else if qty > 10000 {
			result.addWarning(Finding{
				Segment:    sn1SegmentId,
				Message:    fmt.Sprintf("Large quantity detected: %d", qty),
				Details:    "Quantity seems unusually high",
				Suggestion: "Verify the quantity is correct",
			})
		}

		if !validUnitsOfMeasure[uom] {
			result.addWarning(Finding{
				Segment:    sn1SegmentId,
				Message:    fmt.Sprintf("Uncommon unit of measure: %s", uom),
				Details:    fmt.Sprintf("Unit of measure %s may not be recognized", uom),
				Suggestion: "Consider using standard UOM codes: EA, CS, BX, PK, LB, KG, PC, DZ",
			})
		}
	}
}

// extractProductCodes collects candidate codes from LIN identifier
// elements and from 14-digit runs on LIN/UPC/GTIN lines. Codes are
// deduplicated in first-seen order; the returned map counts how many
// distinct source lines each code appeared on.
func extractProductCodes(content string) ([]string, map[string]int) {
	var codes []string
	seen := map[string]bool{}
	lineCounts := map[string]int{}

	add := func(code string) {
		if code == "" {
			return
		}
		if !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}

	for _, line := range strings.Split(content, "\n") {
		lineCodes := map[string]bool{}
		for _, m := range linCodePattern.FindAllStringSubmatch(line, -1) {
			lineCodes[m[1]] = true
		}
		if strings.Contains(line, linSegmentId+primaryElementSeparator) ||
			strings.Contains(line, "UPC"+primaryElementSeparator) ||
			strings.Contains(line, "GTIN"+primaryElementSeparator) {
			for _, m := range gtinRunPattern.FindAllString(line, -1) {
				lineCodes[m] = true
			}
		}
		for code := range lineCodes {
			lineCounts[code]++
		}
		// Re-scan in match order so extraction order stays stable.
		for _, m := range linCodePattern.FindAllStringSubmatch(line, -1) {
			add(m[1])
		}
		for _, m := range gtinRunPattern.FindAllString(line, -1) {
			if lineCodes[m] {
				add(m)
			}
		}
	}
	return codes, lineCounts
}

// ValidateGTINChecksum reports whether a 14-digit GTIN carries a valid
// mod-10 check digit. Weights alternate 3,1 starting from the leftmost
// of the first 13 digits; the check digit is
// (10 - (weighted sum mod 10)) mod 10.
func ValidateGTINChecksum(gtin string) bool {
	if len(gtin) != 14 || !digitsOnly.MatchString(gtin) {
		return false
	}
	sum := 0
	for i := 0; i < 13; i++ {
		digit := int(gtin[i] - '0')
		if i%2 == 0 {
			sum += digit * 3
		} else {
			sum += digit
		}
	}
	check := (10 - sum%10) % 10
	return check == int(gtin[13]-'0')
}
