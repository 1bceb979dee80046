package recorder

import "ChartBalance/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordAssessment(_ *model.Assessment) error { return nil }
func (n *NoopRecorder) GetAssessment(_ string) (*model.Assessment, error) {
	return nil, ErrNotFound
}
func (n *NoopRecorder) ListAssessments(_ int) ([]model.AssessmentSummary, error) { return nil, nil }
func (n *NoopRecorder) FindByPosition(_ model.Point, _ model.Sign, _ int) ([]model.AssessmentSummary, error) {
	return nil, nil
}
func (n *NoopRecorder) Close() error { return nil }
