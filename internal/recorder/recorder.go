package recorder

import (
	"errors"

	"ChartBalance/internal/model"
)

// ErrNotFound is returned when no assessment has the requested id.
var ErrNotFound = errors.New("assessment not found")

// Recorder persists assessments for later lookup.
type Recorder interface {
	RecordAssessment(a *model.Assessment) error
	GetAssessment(id string) (*model.Assessment, error)
	ListAssessments(limit int) ([]model.AssessmentSummary, error)
	// FindByPosition lists, newest first, assessments that placed pt in sign.
	FindByPosition(pt model.Point, sign model.Sign, limit int) ([]model.AssessmentSummary, error)
	Close() error
}
