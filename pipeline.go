package asnval

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Pipeline runs the configured subset of rule validators in canonical
// order (EDI, GSTIN, products, timing, certificates) and aggregates
// their results into a Report. Validators are independent; the pipeline
// never short-circuits, and a fault inside one validator becomes a
// single SYSTEM error for that validator rather than aborting the rest.
type Pipeline struct {
	validators []RuleValidator
	logger     *zap.Logger
	now        func() time.Time
}

// PipelineOption configures a Pipeline.
type PipelineOption func(*Pipeline)

// WithLogger attaches a logger; the default is a nop logger.
func WithLogger(logger *zap.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithClock fixes the wall clock used for run timing and for the
// time-sensitive validators.
func WithClock(now func() time.Time) PipelineOption {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// WithValidators replaces the default validator set. Execution still
// follows canonical key order.
func WithValidators(validators ...RuleValidator) PipelineOption {
	return func(p *Pipeline) {
		p.validators = validators
	}
}

// NewPipeline builds a pipeline with the full default validator set.
func NewPipeline(opts ...PipelineOption) *Pipeline {
	p := &Pipeline{
		logger: zap.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.validators == nil {
		p.validators = []RuleValidator{
			NewEDIValidator(),
			NewGSTINValidator(),
			NewProductValidator(),
			NewTimingValidatorAt(p.now),
			NewCertificateValidatorAt(p.now),
		}
	}
	return p
}

// Run validates the document with the validators enabled in cfg and
// returns the aggregated report.
func (p *Pipeline) Run(doc *Document, cfg *Config) *Report {
	return p.RunWithContext(context.Background(), doc, cfg)
}

// RunWithContext is Run with cancellation: when the context is done,
// validators that have not run yet are recorded as SYSTEM errors so the
// report still covers every enabled validator.
func (p *Pipeline) RunWithContext(ctx context.Context, doc *Document, cfg *Config) *Report {
	start := p.now()
	report := &Report{
		ID:          uuid.NewString(),
		Version:     reportVersion,
		GeneratedAt: start,
		FileInfo: FileInfo{
			Name:           doc.Name,
			Size:           doc.Metadata.ByteLength,
			Timestamp:      start,
			FormatDetected: "EDI X12",
		},
		Config: cfg,
	}

	for _, validator := range p.orderedEnabled(cfg) {
		var result ValidationResult
		if ctx.Err() != nil {
			result = systemFailureResult(validator, ctx.Err())
		} else {
			result = p.runOne(validator, doc, cfg)
		}
		report.Validations.add(validator.Key(), result)
		report.Summary.TotalErrors += len(result.Errors)
		report.Summary.TotalWarnings += len(result.Warnings)
		report.Summary.TotalValidations++

		p.logger.Debug("validator completed",
			zap.String("validator", string(validator.Key())),
			zap.Int("errors", len(result.Errors)),
			zap.Int("warnings", len(result.Warnings)),
		)
	}

	elapsed := p.now().Sub(start)
	report.Summary.ProcessingTime = fmt.Sprintf("%.2fs", elapsed.Seconds())
	report.Summary.IsReady = report.Summary.TotalErrors == 0
	report.Recommendations = recommend(report.Summary)

	p.logger.Info("validation run completed",
		zap.String("report_id", report.ID),
		zap.Int("total_errors", report.Summary.TotalErrors),
		zap.Int("total_warnings", report.Summary.TotalWarnings),
		zap.Bool("is_ready", report.Summary.IsReady),
		zap.Duration("elapsed", elapsed),
	)
	return report
}

// orderedEnabled returns the enabled validators in canonical order.
func (p *Pipeline) orderedEnabled(cfg *Config) []RuleValidator {
	byKey := make(map[ValidatorKey]RuleValidator, len(p.validators))
	for _, v := range p.validators {
		byKey[v.Key()] = v
	}
	var ordered []RuleValidator
	for _, key := range canonicalValidatorOrder {
		if v, ok := byKey[key]; ok && cfg.Enabled(key) {
			ordered = append(ordered, v)
		}
	}
	// Custom validators outside the canonical set run last, in the
	// order they were registered.
	for _, v := range p.validators {
		if _, canonical := canonicalIndex(v.Key()); !canonical && cfg.Enabled(v.Key()) {
			ordered = append(ordered, v)
		}
	}
	return ordered
}

func canonicalIndex(key ValidatorKey) (int, bool) {
	for i, k := range canonicalValidatorOrder {
		if k == key {
			return i, true
		}
	}
	return 0, false
}

// runOne isolates a validator invocation: a panic becomes a single
// SYSTEM error result instead of taking down the pipeline.
func (p *Pipeline) runOne(validator RuleValidator, doc *Document, cfg *Config) (result ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("validator panicked",
				zap.String("validator", string(validator.Key())),
				zap.Any("panic", r),
			)
			result = systemFailureResult(validator, fmt.Errorf("%v", r))
		}
	}()
	return validator.Validate(doc, cfg)
}

func systemFailureResult(validator RuleValidator, cause error) ValidationResult {
	return ValidationResult{
		ValidatorName: validator.Name(),
		Errors: []Finding{{
			Segment:    areaSystem,
			Message:    fmt.Sprintf("Validation error: %v", cause),
			Details:    "Internal validation error occurred",
			Suggestion: "Contact support if this error persists",
		}},
		Success: false,
		Details: fmt.Sprintf("Validation failed with error: %v", cause),
	}
}

// recommend derives next-step recommendation strings from the
// aggregate counts.
func recommend(summary Summary) []string {
	var recs []string
	if summary.TotalErrors > 0 {
		recs = append(recs, fmt.Sprintf(
			"Resolve %d blocking error(s) before submitting the ASN.",
			summary.TotalErrors,
		))
	}
	if summary.TotalWarnings > 0 {
		recs = append(recs, fmt.Sprintf(
			"Review %d advisory warning(s) to improve compliance.",
			summary.TotalWarnings,
		))
	}
	if summary.IsReady {
		recs = append(recs, "ASN passes all blocking checks and is ready for submission.")
	}
	return recs
}
