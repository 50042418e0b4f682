package service

import (
	"context"

	"github.com/earthly-glitch/fraudX-location-prototype/internal/location/model"
)

// Sink is the in-process ingestion path: the simulator submits pings through
// it exactly as an external device would through the HTTP handler.
type Sink struct {
	classifier *Classifier
}

func NewSink(c *Classifier) *Sink {
	return &Sink{classifier: c}
}

func (s *Sink) Submit(ctx context.Context, ping model.PingRequest) (model.ClassificationResult, error) {
	return s.classifier.Classify(ctx, ping)
}
