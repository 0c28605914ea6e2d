package asnval

// Severity classifies a finding. Errors block submission readiness,
// warnings are advisory only.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Logical areas used as Finding.Segment when an issue is not tied to a
// specific EDI segment tag.
const (
	areaFile        = "FILE"
	areaStructure   = "STRUCTURE"
	areaConfig      = "CONFIG"
	areaControl     = "CONTROL"
	areaGSTIN       = "GSTIN"
	areaProduct     = "PRODUCT"
	areaTiming      = "TIMING"
	areaCertificate = "CERTIFICATE"
	areaAS2Config   = "AS2_CONFIG"
	areaSystem      = "SYSTEM"
)

// Finding is one validation issue. Findings are immutable values and
// always carry remediation text alongside the message.
type Finding struct {
	// Segment is the originating segment tag or logical area
	// (GSTIN, SYSTEM, ...).
	Segment string `json:"segment"`
	// Message is a short human summary.
	Message string `json:"message"`
	// Details is the longer explanation.
	Details string `json:"details"`
	// Suggestion tells the vendor how to fix the issue.
	Suggestion string `json:"suggestion"`
}

// ValidationResult is the output of one rule validator invocation.
// Success tracks errors only; a result with warnings can still succeed.
type ValidationResult struct {
	ValidatorName string    `json:"validator"`
	Errors        []Finding `json:"errors"`
	Warnings      []Finding `json:"warnings"`
	Success       bool      `json:"success"`
	Details       string    `json:"details"`
}

// addError appends an error finding.
func (r *ValidationResult) addError(f Finding) {
	r.Errors = append(r.Errors, f)
}

// addWarning appends a warning finding.
func (r *ValidationResult) addWarning(f Finding) {
	r.Warnings = append(r.Warnings, f)
}

// finalize sets Success from the error count and fills Details if the
// validator left it empty.
func (r *ValidationResult) finalize(details string) {
	r.Success = len(r.Errors) == 0
	if r.Details == "" {
		r.Details = details
	}
}

// ValidatorKey identifies a rule validator in configuration and in the
// aggregated report.
type ValidatorKey string

const (
	KeyEDI          ValidatorKey = "edi"
	KeyGSTIN        ValidatorKey = "gstin"
	KeyProducts     ValidatorKey = "products"
	KeyTiming       ValidatorKey = "timing"
	KeyCertificates ValidatorKey = "certificates"
)

// canonicalValidatorOrder is the fixed execution order of the pipeline.
var canonicalValidatorOrder = []ValidatorKey{
	KeyEDI,
	KeyGSTIN,
	KeyProducts,
	KeyTiming,
	KeyCertificates,
}

// RuleValidator is the single capability every rule validator
// implements. Validators read the document and configuration, never
// mutate them, and never communicate with each other.
type RuleValidator interface {
	Key() ValidatorKey
	Name() string
	Validate(doc *Document, cfg *Config) ValidationResult
}
