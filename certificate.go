package asnval

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var certPattern = regexp.MustCompile(`CERT\*([A-Z0-9_]+)\*([0-9]{8})`)

// CertificateValidator checks AS2 transport-security posture:
// certificate expiry windows, key size, issuer trust, key usage,
// signature-algorithm strength, and the fixed AS2 transport profile.
// Checks are metadata heuristics, not X.509 verification.
//
// When the document carries no CERT segments and Config.DemoCertificates
// is set, the validator falls back to the built-in sample set so the
// security report is never empty; the fallback is always announced with
// a warning first.
type CertificateValidator struct {
	now func() time.Time
}

// NewCertificateValidator returns a validator evaluating against
// time.Now.
func NewCertificateValidator() *CertificateValidator {
	return NewCertificateValidatorAt(time.Now)
}

// NewCertificateValidatorAt evaluates against the given clock.
func NewCertificateValidatorAt(now func() time.Time) *CertificateValidator {
	if now == nil {
		now = time.Now
	}
	return &CertificateValidator{now: now}
}

func (v *CertificateValidator) Key() ValidatorKey { return KeyCertificates }

func (v *CertificateValidator) Name() string { return "Certificate Validator" }

func (v *CertificateValidator) Validate(doc *Document, cfg *Config) ValidationResult {
	result := ValidationResult{ValidatorName: v.Name()}
	now := v.now()

	certs := extractCertificates(doc.RawContent)
	if len(certs) == 0 {
		result.addWarning(Finding{
			Segment:    areaCertificate,
			Message:    "No AS2 certificates found",
			Details:    "Could not locate AS2 certificate information in the file or configuration",
			Suggestion: "Ensure AS2 certificates are properly configured for secure transmission",
		})
		if cfg.DemoCertificates {
			certs = sampleCertificates(now)
		}
	}

	for _, cert := range certs {
		v.checkCertificate(cert, now, &result)
	}
	v.checkAS2Profile(defaultAS2Profile, &result)

	result.finalize(fmt.Sprintf("Certificate validation completed for %d certificate(s)", len(certs)))
	return result
}

func (v *CertificateValidator) checkCertificate(cert Certificate, now time.Time, result *ValidationResult) {
	if !cert.Expiry.IsZero() {
		daysUntilExpiry := int(cert.Expiry.Sub(now).Hours() / 24)

		switch {
		case daysUntilExpiry < 0:
			result.addError(Finding{
				Segment:    areaCertificate,
				Message:    fmt.Sprintf("Certificate expired: %s", cert.Name),
				Details:    fmt.Sprintf("Certificate expired %d days ago", -daysUntilExpiry),
				Suggestion: "Renew the certificate immediately to avoid transmission failures",
			})
		case daysUntilExpiry <= certExpiryCriticalDays:
			result.addError(Finding{
				Segment:    areaCertificate,
				Message:    fmt.Sprintf("Certificate expires soon: %s", cert.Name),
				Details:    fmt.Sprintf("Certificate expires in %d days", daysUntilExpiry),
				Suggestion: "Renew the certificate urgently to prevent service disruption",
			})
		case daysUntilExpiry <= certExpiryWarningDays:
			result.addWarning(Finding{
				Segment:    areaCertificate,
				Message:    fmt.Sprintf("Certificate expires in %d days: %s", daysUntilExpiry, cert.Name),
				Details:    "Certificate expiring within warning period",
				Suggestion: "Plan certificate renewal to avoid last-minute issues",
			})
		}
	}

	if cert.KeyBits > 0 && cert.KeyBits < minCertificateKeyBits {
		result.addWarning(Finding{
			Segment: areaCertificate,
			Message: fmt.Sprintf("Weak key size: %s (%d bits)", cert.Name, cert.KeyBits),
			Details: fmt.Sprintf(
				"Key size %d is below recommended minimum of %d bits",
				cert.KeyBits, minCertificateKeyBits,
			),
			Suggestion: fmt.Sprintf(
				"Use certificates with at least %d-bit keys for better security",
				minCertificateKeyBits,
			),
		})
	}

	if cert.Issuer != "" && !issuerTrusted(cert.Issuer) {
		result.addWarning(Finding{
			Segment:    areaCertificate,
			Message:    fmt.Sprintf("Untrusted certificate issuer: %s", cert.Name),
			Details:    fmt.Sprintf("Certificate issued by: %s", cert.Issuer),
			Suggestion: "Ensure certificate is issued by a trusted CA recognized by Walmart",
		})
	}

	if len(cert.KeyUsage) > 0 && !containsString(cert.KeyUsage, keyUsageDigitalSignature) {
		result.addWarning(Finding{
			Segment:    areaCertificate,
			Message:    fmt.Sprintf("Certificate may not support digital signatures: %s", cert.Name),
			Details:    "Certificate key usage does not explicitly include digital signatures",
			Suggestion: "Verify certificate supports required AS2 operations",
		})
	}

	if algorithmWeak(cert.SignatureAlgorithm) {
		result.addWarning(Finding{
			Segment:    areaCertificate,
			Message:    fmt.Sprintf("Weak signature algorithm: %s", cert.Name),
			Details:    fmt.Sprintf("Certificate uses %s which is considered weak", cert.SignatureAlgorithm),
			Suggestion: "Use certificates with SHA-256 or stronger signature algorithms",
		})
	}
}

func (v *CertificateValidator) checkAS2Profile(profile AS2Profile, result *ValidationResult) {
	if !profile.Encryption {
		result.addWarning(Finding{
			Segment:    areaAS2Config,
			Message:    "Encryption not enabled",
			Details:    "AS2 transmission without encryption may not meet security requirements",
			Suggestion: "Enable AS2 encryption for secure data transmission",
		})
	}
	if !profile.Signing {
		result.addWarning(Finding{
			Segment:    areaAS2Config,
			Message:    "Digital signing not enabled",
			Details:    "AS2 transmission without digital signatures may not provide non-repudiation",
			Suggestion: "Enable AS2 digital signing for message integrity",
		})
	}
	if !profile.MDNRequired {
		result.addWarning(Finding{
			Segment:    areaAS2Config,
			Message:    "MDN (Message Disposition Notification) not required",
			Details:    "Without MDN, delivery confirmation is not available",
			Suggestion: "Enable MDN requirement for delivery confirmation",
		})
	} else if !profile.MDNSigned {
		result.addWarning(Finding{
			Segment:    areaAS2Config,
			Message:    "MDN signing not enabled",
			Details:    "Unsigned MDNs may not provide reliable delivery confirmation",
			Suggestion: "Enable MDN signing for secure delivery confirmation",
		})
	}
}

// extractCertificates reads CERT*<name>*<YYYYMMDD> segments. Only the
// expiry is known for certificates declared in EDI content; the other
// metadata checks skip zero values.
func extractCertificates(content string) []Certificate {
	var certs []Certificate
	for _, m := range certPattern.FindAllStringSubmatch(content, -1) {
		expiry, err := time.ParseInLocation("20060102", m[2], time.Local)
		if err != nil {
			continue
		}
		certs = append(certs, Certificate{
			Name:   m[1],
			Expiry: expiry,
			Source: certSourceEDI,
		})
	}
	return certs
}

func issuerTrusted(issuer string) bool {
	lowered := strings.ToLower(issuer)
	for _, root := range trustedRootIssuers {
		if strings.Contains(lowered, root) {
			return true
		}
	}
	return false
}

func algorithmWeak(algorithm string) bool {
	lowered := strings.ToLower(algorithm)
	for _, weak := range weakSignatureAlgorithms {
		if strings.Contains(lowered, weak) {
			return true
		}
	}
	return false
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
