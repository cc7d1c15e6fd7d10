package grading

import "errors"

// ErrInvalidSubmission means the client sent a submission payload whose
// shape is unusable. Returned to the caller as a client error, never
// retried.
var ErrInvalidSubmission = errors.New("invalid submission payload")

// Result is the outcome of grading one block submission.
type Result struct {
	IsCorrect    bool     `json:"is_correct"`
	PointsEarned float64  `json:"points_earned"`
	MaxPoints    float64  `json:"max_points"`
	NeedsReview  bool     `json:"needs_review,omitempty"`
	Feedback     []string `json:"feedback,omitempty"`
}

// Submission is the raw answer payload for one block, as decoded from the
// request body. Shape depends on the block type.
type Submission map[string]interface{}
