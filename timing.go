package asnval

import (
	"fmt"
	"regexp"
	"time"
)

var dtmPattern = regexp.MustCompile(`DTM\*(\d{3})\*(\d{8})(?:\*(\d{4}))?`)

// asnDates are the three date/time values the timing rules operate on.
type asnDates struct {
	ship     time.Time
	delivery time.Time
	creation time.Time
}

// TimingValidator checks shipment timing windows relative to the
// submission wall clock: the advance-notice window for the ship date,
// the ship-to-delivery window, document age, business hours and
// weekend scheduling.
type TimingValidator struct {
	now func() time.Time
}

// NewTimingValidator returns a validator evaluating against time.Now.
func NewTimingValidator() *TimingValidator {
	return NewTimingValidatorAt(time.Now)
}

// NewTimingValidatorAt evaluates against the given clock; used for
// deterministic runs.
func NewTimingValidatorAt(now func() time.Time) *TimingValidator {
	if now == nil {
		now = time.Now
	}
	return &TimingValidator{now: now}
}

func (v *TimingValidator) Key() ValidatorKey { return KeyTiming }

func (v *TimingValidator) Name() string { return "ASN Timing Validator" }

func (v *TimingValidator) Validate(doc *Document, cfg *Config) ValidationResult {
	result := ValidationResult{ValidatorName: v.Name()}

	dates := extractASNDates(doc.RawContent)
	if dates.ship.IsZero() && dates.delivery.IsZero() && dates.creation.IsZero() {
		result.addWarning(Finding{
			Segment:    areaTiming,
			Message:    "No dates found in ASN",
			Details:    "Could not locate shipment dates in the EDI file",
			Suggestion: "Ensure DTM segments include ship date and delivery date",
		})
		result.finalize("ASN timing validation completed. No dates located.")
		return result
	}

	now := v.now()

	if !dates.ship.IsZero() {
		v.checkShipWindow(dates.ship, now, &result)
		v.checkBusinessHours(dates.ship, &result)
	}
	if !dates.ship.IsZero() && !dates.delivery.IsZero() {
		v.checkDeliveryWindow(dates.ship, dates.delivery, &result)
	}
	if !dates.creation.IsZero() {
		v.checkCreationAge(dates.creation, now, &result)
	}
	v.checkWeekends(dates.ship, dates.delivery, &result)

	shipLabel := "Not found"
	if !dates.ship.IsZero() {
		shipLabel = dates.ship.Format("2006-01-02 15:04")
	}
	result.finalize(fmt.Sprintf("ASN timing validation completed. Ship date: %s", shipLabel))
	return result
}

// checkShipWindow enforces the advance-notice window: the notice must
// land before the shipment but no more than maxAdvanceHours ahead of
// it.
func (v *TimingValidator) checkShipWindow(ship, now time.Time, result *ValidationResult) {
	hoursUntilShip := ship.Sub(now).Hours()

	switch {
	case hoursUntilShip > maxAdvanceHours:
		result.addError(Finding{
			Segment: dtmSegmentId,
			Message: fmt.Sprintf("ASN submitted too early (%.1f hours before shipping)", hoursUntilShip),
			Details: fmt.Sprintf(
				"ASN should be submitted between %d-%d hours before shipping",
				minAdvanceHours, maxAdvanceHours,
			),
			Suggestion: fmt.Sprintf("Submit ASN closer to ship date (within %d hours)", maxAdvanceHours),
		})
	case hoursUntilShip < minAdvanceHours:
		if hoursUntilShip < 0 {
			result.addError(Finding{
				Segment:    dtmSegmentId,
				Message:    fmt.Sprintf("ASN submitted after ship date (%.1f hours late)", -hoursUntilShip),
				Details:    "ASN must be submitted before the actual shipment",
				Suggestion: "Submit ASN before shipping or update ship date",
			})
		} else {
			result.addWarning(Finding{
				Segment:    dtmSegmentId,
				Message:    fmt.Sprintf("ASN submitted very close to ship time (%.1f hours)", hoursUntilShip),
				Details:    "This may not provide sufficient processing time",
				Suggestion: "Consider submitting ASN earlier for better processing",
			})
		}
	case hoursUntilShip > optimalAdvanceHours:
		result.addWarning(Finding{
			Segment: dtmSegmentId,
			Message: fmt.Sprintf("ASN submitted %.1f hours before shipping", hoursUntilShip),
			Details: fmt.Sprintf(
				"While acceptable, optimal timing is around %d hours",
				optimalAdvanceHours,
			),
			Suggestion: "Consider submitting closer to optimal timing window",
		})
	}
}

func (v *TimingValidator) checkDeliveryWindow(ship, delivery time.Time, result *ValidationResult) {
	window := delivery.Sub(ship).Hours()

	if window < minDeliveryWindowHours {
		result.addError(Finding{
			Segment:    dtmSegmentId,
			Message:    "Delivery date too close to ship date",
			Details:    fmt.Sprintf("Only %.1f hours between ship and delivery", window),
			Suggestion: "Allow sufficient transit time between ship and delivery dates",
		})
	} else if window > maxDeliveryWindowHours {
		result.addWarning(Finding{
			Segment:    dtmSegmentId,
			Message:    fmt.Sprintf("Long delivery window (%.1f hours)", window),
			Details:    "Delivery date is more than 3 days after ship date",
			Suggestion: "Verify delivery date is correct",
		})
	}
}

func (v *TimingValidator) checkCreationAge(creation, now time.Time, result *ValidationResult) {
	age := now.Sub(creation).Hours()
	if age > maxCreationAgeHours {
		result.addWarning(Finding{
			Segment:    dtmSegmentId,
			Message:    fmt.Sprintf("ASN created %.1f hours ago", age),
			Details:    "This ASN was created more than 2 days ago",
			Suggestion: "Consider creating fresh ASN closer to ship date",
		})
	}
}

func (v *TimingValidator) checkBusinessHours(ship time.Time, result *ValidationResult) {
	hour := ship.Hour()
	if hour < businessHourStart || hour > businessHourEnd {
		result.addWarning(Finding{
			Segment:    dtmSegmentId,
			Message:    fmt.Sprintf("Ship time outside business hours (%s)", ship.Format("15:04")),
			Details:    "Shipping scheduled outside typical business hours (8 AM - 6 PM)",
			Suggestion: "Consider scheduling shipment during business hours for better processing",
		})
	}
}

func (v *TimingValidator) checkWeekends(ship, delivery time.Time, result *ValidationResult) {
	if !ship.IsZero() && isWeekend(ship) {
		result.addWarning(Finding{
			Segment:    dtmSegmentId,
			Message:    fmt.Sprintf("Ship date falls on %s", ship.Weekday()),
			Details:    "Shipping scheduled on weekend",
			Suggestion: "Verify weekend shipping arrangements with carrier",
		})
	}
	if !delivery.IsZero() && isWeekend(delivery) {
		result.addWarning(Finding{
			Segment:    dtmSegmentId,
			Message:    fmt.Sprintf("Delivery date falls on %s", delivery.Weekday()),
			Details:    "Delivery scheduled on weekend",
			Suggestion: "Confirm weekend delivery is acceptable to receiver",
		})
	}
}

func isWeekend(t time.Time) bool {
	return t.Weekday() == time.Saturday || t.Weekday() == time.Sunday
}

// extractASNDates pulls ship (DTM*011), delivery (DTM*017) and
// creation (DTM*137) timestamps from the raw text. A missing time
// component defaults to 12:00; unparseable values are skipped silently,
// the absence is the timing rules' concern.
func extractASNDates(content string) asnDates {
	var dates asnDates
	for _, m := range dtmPattern.FindAllStringSubmatch(content, -1) {
		qualifier, dateStr, timeStr := m[1], m[2], m[3]
		if timeStr == "" {
			timeStr = "1200"
		}
		parsed, err := time.ParseInLocation("200601021504", dateStr+timeStr, time.Local)
		if err != nil {
			continue
		}
		switch qualifier {
		case dtmQualifierShip:
			dates.ship = parsed
		case dtmQualifierDelivery:
			dates.delivery = parsed
		case dtmQualifierCreation:
			dates.creation = parsed
		}
	}
	return dates
}
