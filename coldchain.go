package asnval

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	json "github.com/goccy/go-json"
)

// RiskLevel grades the predicted spoilage risk for a cold-chain
// shipment.
type RiskLevel string

const (
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskUnknown RiskLevel = "unknown"
)

// RiskAssessment is the outcome of scoring one shipment.
type RiskAssessment struct {
	Level      RiskLevel `json:"level"`
	Score      float64   `json:"score"`
	Confidence float64   `json:"confidence"`
}

// RiskScorer predicts spoilage risk from shipment features such as
// transit hours, ambient temperature and excursion counts.
type RiskScorer interface {
	Predict(features map[string]float64) (RiskAssessment, error)
}

// StaticScorer is the fallback scorer used when no trained model is
// wired in. It always reports an unknown risk at neutral score.
type StaticScorer struct{}

func (StaticScorer) Predict(map[string]float64) (RiskAssessment, error) {
	return RiskAssessment{Level: RiskUnknown, Score: 0.5, Confidence: 0}, nil
}

// SensorReading is one telemetry point reported by an in-transit
// logger.
type SensorReading struct {
	ShipmentID  string    `json:"shipment_id"`
	RecordedAt  time.Time `json:"recorded_at"`
	Temperature float64   `json:"temperature_c"`
	Humidity    float64   `json:"humidity_pct"`
}

// SensorFeed supplies telemetry for a shipment.
type SensorFeed interface {
	Readings(ctx context.Context, shipmentID string) ([]SensorReading, error)
}

// FeedError wraps failures talking to a sensor feed.
var FeedError = errors.New("sensor feed error")

// HTTPSensorFeed fetches readings from a telemetry service at
// baseURL/readings?shipment_id=<id>.
type HTTPSensorFeed struct {
	baseURL string
	client  *http.Client
}

// NewHTTPSensorFeed builds a feed with a bounded request timeout.
func NewHTTPSensorFeed(baseURL string) *HTTPSensorFeed {
	return &HTTPSensorFeed{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *HTTPSensorFeed) Readings(ctx context.Context, shipmentID string) ([]SensorReading, error) {
	endpoint := fmt.Sprintf("%s/readings?shipment_id=%s", f.baseURL, url.QueryEscape(shipmentID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.Join(FeedError, err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Join(FeedError, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode == http.StatusNotFound {
		// No telemetry recorded for this shipment.
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: unexpected status %d", FeedError, resp.StatusCode)
	}
	var readings []SensorReading
	if err := json.NewDecoder(resp.Body).Decode(&readings); err != nil {
		return nil, errors.Join(FeedError, err)
	}
	return readings, nil
}

// ShipmentFeatures summarizes telemetry into the feature map a
// RiskScorer consumes. An empty reading slice yields zeroed features.
func ShipmentFeatures(readings []SensorReading) map[string]float64 {
	features := map[string]float64{
		"reading_count":  float64(len(readings)),
		"mean_temp_c":    0,
		"max_temp_c":     0,
		"excursions_gt8": 0,
	}
	if len(readings) == 0 {
		return features
	}
	var sum, max float64
	var excursions int
	max = readings[0].Temperature
	for _, r := range readings {
		sum += r.Temperature
		if r.Temperature > max {
			max = r.Temperature
		}
		if r.Temperature > 8 {
			excursions++
		}
	}
	features["mean_temp_c"] = sum / float64(len(readings))
	features["max_temp_c"] = max
	features["excursions_gt8"] = float64(excursions)
	return features
}

// AssessColdChain scores a shipment end to end: fetch telemetry,
// derive features, predict. Feed failures degrade to the scorer's
// zero-telemetry prediction rather than failing the assessment.
func AssessColdChain(ctx context.Context, feed SensorFeed, scorer RiskScorer, shipmentID string) (RiskAssessment, error) {
	if scorer == nil {
		scorer = StaticScorer{}
	}
	var readings []SensorReading
	if feed != nil {
		var err error
		readings, err = feed.Readings(ctx, shipmentID)
		if err != nil {
			readings = nil
		}
	}
	return scorer.Predict(ShipmentFeatures(readings))
}
