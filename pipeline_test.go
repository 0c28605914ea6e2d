package asnval

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPipelineCleanFixtureIsReady(t *testing.T) {
	doc := parseFixture(t, "valid_asn.edi")

	report := NewPipeline(WithClock(fixedClock())).Run(doc, DefaultConfig())

	assert.True(t, report.Summary.IsReady)
	assert.Equal(t, 0, report.Summary.TotalErrors)
	assert.Equal(t, 0, report.Summary.TotalWarnings)
	assert.Equal(t, 5, report.Summary.TotalValidations)
	assert.Equal(t, "0.00s", report.Summary.ProcessingTime)
	assert.Equal(t, canonicalValidatorOrder, report.Validations.Keys())

	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "valid_asn.edi", report.FileInfo.Name)
	assert.Equal(t, submissionTime(), report.GeneratedAt)

	for _, key := range report.Validations.Keys() {
		result, ok := report.Validations.Get(key)
		require.True(t, ok)
		assert.True(t, result.Success, "validator %s", key)
	}
}

func TestPipelineProblemFixtureNotReady(t *testing.T) {
	doc := parseFixture(t, "invalid_asn.edi")

	report := NewPipeline(WithClock(fixedClock())).Run(doc, DefaultConfig())

	assert.False(t, report.Summary.IsReady)
	assert.Greater(t, report.Summary.TotalErrors, 0)
	assert.Equal(t, 5, report.Summary.TotalValidations)

	gstin, ok := report.Validations.Get(KeyGSTIN)
	require.True(t, ok)
	assert.False(t, gstin.Success)
}

func TestPipelineWarningsDoNotBlockReadiness(t *testing.T) {
	content := strings.Replace(loadFixture(t, "valid_asn.edi"), "SN1*1*100*EA~", "SN1*1*100*QQ~", 1)
	doc := parseText(t, content)

	report := NewPipeline(WithClock(fixedClock())).Run(doc, DefaultConfig())

	assert.True(t, report.Summary.IsReady)
	assert.Equal(t, 0, report.Summary.TotalErrors)
	assert.Equal(t, 1, report.Summary.TotalWarnings)
}

func TestPipelineEmptyInput(t *testing.T) {
	doc := parseText(t, "")

	report := NewPipeline(WithClock(fixedClock())).Run(doc, DefaultConfig())

	assert.False(t, report.Summary.IsReady)
	assert.Equal(t, 5, report.Summary.TotalValidations)

	edi, ok := report.Validations.Get(KeyEDI)
	require.True(t, ok)
	require.Len(t, edi.Errors, 1)
	assert.Equal(t, areaFile, edi.Errors[0].Segment)
}

func TestPipelineDisabledValidators(t *testing.T) {
	doc := parseFixture(t, "valid_asn.edi")
	cfg := DefaultConfig()
	cfg.EnabledValidators = []ValidatorKey{KeyEDI, KeyProducts}

	report := NewPipeline(WithClock(fixedClock())).Run(doc, cfg)

	assert.Equal(t, 2, report.Summary.TotalValidations)
	assert.Equal(t, []ValidatorKey{KeyEDI, KeyProducts}, report.Validations.Keys())
	_, ok := report.Validations.Get(KeyGSTIN)
	assert.False(t, ok)
}

func TestPipelineCanonicalOrderRegardlessOfRegistration(t *testing.T) {
	doc := parseFixture(t, "valid_asn.edi")
	pipeline := NewPipeline(
		WithClock(fixedClock()),
		WithValidators(
			NewCertificateValidatorAt(fixedClock()),
			NewProductValidator(),
			NewEDIValidator(),
			NewTimingValidatorAt(fixedClock()),
			NewGSTINValidator(),
		),
	)

	report := pipeline.Run(doc, DefaultConfig())

	assert.Equal(t, canonicalValidatorOrder, report.Validations.Keys())
}

type panicValidator struct{}

func (panicValidator) Key() ValidatorKey { return ValidatorKey("boom") }
func (panicValidator) Name() string      { return "Boom Validator" }
func (panicValidator) Validate(*Document, *Config) ValidationResult {
	panic("segment table corrupted")
}

func TestPipelinePanicIsolation(t *testing.T) {
	doc := parseFixture(t, "valid_asn.edi")
	cfg := DefaultConfig()
	cfg.EnabledValidators = append(cfg.EnabledValidators, "boom")

	pipeline := NewPipeline(
		WithClock(fixedClock()),
		WithValidators(
			NewEDIValidator(),
			panicValidator{},
		),
	)
	report := pipeline.Run(doc, cfg)

	assert.False(t, report.Summary.IsReady)
	assert.Equal(t, 2, report.Summary.TotalValidations)

	edi, ok := report.Validations.Get(KeyEDI)
	require.True(t, ok)
	assert.True(t, edi.Success)

	boom, ok := report.Validations.Get("boom")
	require.True(t, ok)
	assert.False(t, boom.Success)
	require.Len(t, boom.Errors, 1)
	assert.Equal(t, areaSystem, boom.Errors[0].Segment)
	assert.Contains(t, boom.Errors[0].Message, "segment table corrupted")
}

func TestPipelineContextCancellation(t *testing.T) {
	doc := parseFixture(t, "valid_asn.edi")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := NewPipeline(WithClock(fixedClock())).RunWithContext(ctx, doc, DefaultConfig())

	assert.False(t, report.Summary.IsReady)
	assert.Equal(t, 5, report.Summary.TotalErrors)
	for _, key := range report.Validations.Keys() {
		result, _ := report.Validations.Get(key)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, areaSystem, result.Errors[0].Segment)
	}
}

func TestRecommendations(t *testing.T) {
	recs := recommend(Summary{TotalErrors: 2, TotalWarnings: 1})
	require.Len(t, recs, 2)
	assert.Contains(t, recs[0], "2 blocking error(s)")
	assert.Contains(t, recs[1], "1 advisory warning(s)")

	recs = recommend(Summary{IsReady: true})
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "ready for submission")
}
