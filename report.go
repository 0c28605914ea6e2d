package asnval

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

const reportVersion = "1.0"

// FileInfo describes the validated input.
type FileInfo struct {
	Name           string    `json:"name"`
	Size           int       `json:"size"`
	Timestamp      time.Time `json:"timestamp"`
	FormatDetected string    `json:"format_detected"`
}

// Summary aggregates finding counts across the run. IsReady is true
// only when no validator reported an error.
type Summary struct {
	TotalValidations int    `json:"total_validations"`
	TotalErrors      int    `json:"total_errors"`
	TotalWarnings    int    `json:"total_warnings"`
	IsReady          bool   `json:"is_ready"`
	ProcessingTime   string `json:"processing_time"`
}

// Report is the full outcome of one validation run.
type Report struct {
	ID              string        `json:"report_id"`
	Version         string        `json:"report_version"`
	GeneratedAt     time.Time     `json:"generated_at"`
	FileInfo        FileInfo      `json:"file_info"`
	Config          *Config       `json:"config"`
	Validations     ValidationSet `json:"validations"`
	Summary         Summary       `json:"summary"`
	Recommendations []string      `json:"recommendations"`
}

// ValidationSet holds per-validator results keyed by ValidatorKey while
// preserving execution order, which plain maps cannot do once
// serialized.
type ValidationSet struct {
	keys    []ValidatorKey
	results map[ValidatorKey]ValidationResult
}

func (s *ValidationSet) add(key ValidatorKey, result ValidationResult) {
	if s.results == nil {
		s.results = make(map[ValidatorKey]ValidationResult)
	}
	if _, seen := s.results[key]; !seen {
		s.keys = append(s.keys, key)
	}
	s.results[key] = result
}

// Get returns the result recorded for key.
func (s *ValidationSet) Get(key ValidatorKey) (ValidationResult, bool) {
	result, ok := s.results[key]
	return result, ok
}

// Keys returns the validator keys in execution order.
func (s *ValidationSet) Keys() []ValidatorKey {
	keys := make([]ValidatorKey, len(s.keys))
	copy(keys, s.keys)
	return keys
}

func (s *ValidationSet) Len() int { return len(s.keys) }

// MarshalJSON emits a JSON object whose members appear in execution
// order.
func (s *ValidationSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range s.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(string(key))
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(s.results[key])
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *ValidationSet) UnmarshalJSON(data []byte) error {
	var raw map[ValidatorKey]ValidationResult
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = ValidationSet{}
	for _, key := range canonicalValidatorOrder {
		if result, ok := raw[key]; ok {
			s.add(key, result)
			delete(raw, key)
		}
	}
	for key, result := range raw {
		s.add(key, result)
	}
	return nil
}

// JSON renders the report as indented JSON.
func (r *Report) JSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// WriteCSV writes a flat finding-per-row projection of the report,
// followed by summary rows.
func (r *Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Validator", "Status", "Severity", "Segment", "Message", "Suggestion"}); err != nil {
		return err
	}
	for _, key := range r.Validations.keys {
		result := r.Validations.results[key]
		for _, f := range result.Errors {
			if err := cw.Write([]string{result.ValidatorName, "FAIL", string(SeverityError), f.Segment, f.Message, f.Suggestion}); err != nil {
				return err
			}
		}
		for _, f := range result.Warnings {
			if err := cw.Write([]string{result.ValidatorName, "PASS", string(SeverityWarning), f.Segment, f.Message, f.Suggestion}); err != nil {
				return err
			}
		}
		if len(result.Errors) == 0 && len(result.Warnings) == 0 {
			if err := cw.Write([]string{result.ValidatorName, "PASS", "SUCCESS", "", result.Details, ""}); err != nil {
				return err
			}
		}
	}
	summaryRows := [][]string{
		{},
		{"SUMMARY", "Total Validations", strconv.Itoa(r.Summary.TotalValidations)},
		{"SUMMARY", "Total Errors", strconv.Itoa(r.Summary.TotalErrors)},
		{"SUMMARY", "Total Warnings", strconv.Itoa(r.Summary.TotalWarnings)},
		{"SUMMARY", "Ready", strconv.FormatBool(r.Summary.IsReady)},
		{"SUMMARY", "Processing Time", r.Summary.ProcessingTime},
	}
	for _, row := range summaryRows {
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// CSV renders the report as CSV bytes.
func (r *Report) CSV() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.WriteCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TextSummary renders a short human-readable summary for terminal
// output.
func (r *Report) TextSummary() string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Report %s (%s)\n", r.ID, r.Summary.ProcessingTime)
	for _, key := range r.Validations.keys {
		result := r.Validations.results[key]
		status := "PASS"
		if !result.Success {
			status = "FAIL"
		}
		fmt.Fprintf(&buf, "  [%s] %-28s errors=%d warnings=%d\n",
			status, result.ValidatorName, len(result.Errors), len(result.Warnings))
	}
	fmt.Fprintf(&buf, "Errors: %d  Warnings: %d  Ready: %t\n",
		r.Summary.TotalErrors, r.Summary.TotalWarnings, r.Summary.IsReady)
	for _, rec := range r.Recommendations {
		fmt.Fprintf(&buf, "  - %s\n", rec)
	}
	return buf.String()
}
