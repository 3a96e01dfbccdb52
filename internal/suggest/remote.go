package suggest

import (
	"context"
	"strings"
)

// Predictor is the backend's prediction endpoint.
type Predictor interface {
	PredictCategory(ctx context.Context, description string) (string, error)
}

// RemoteStrategy asks the backend classifier.
type RemoteStrategy struct {
	predictor Predictor
}

// NewRemoteStrategy creates a RemoteStrategy.
func NewRemoteStrategy(p Predictor) *RemoteStrategy {
	return &RemoteStrategy{predictor: p}
}

func (s *RemoteStrategy) Name() string { return SourceRemote }

func (s *RemoteStrategy) Suggest(ctx context.Context, description string) (string, bool, error) {
	label, err := s.predictor.PredictCategory(ctx, description)
	if err != nil {
		return "", false, err
	}
	label = strings.TrimSpace(label)
	return label, label != "", nil
}
