// Package grading turns a submitted answer plus a block's authored content
// into a pass/fail score. Dispatch is by block type; each exercise type is
// one Strategy. Adding a new type means adding one strategy, not touching
// the dispatcher.
package grading

import (
	"github.com/darsyar/darsyar/internal/content"
)

// Strategy grades a single block.
type Strategy interface {
	Grade(block *content.Block, submission Submission) (Result, error)
}

// Grader routes by block type to the correct Strategy. Graders are
// stateless and safe for concurrent use.
type Grader interface {
	Grade(block *content.Block, submission Submission) (Result, error)
}

type defaultGrader struct {
	strategies map[string]Strategy
}

// NewGrader installs the built-in strategies.
func NewGrader() Grader {
	return &defaultGrader{
		strategies: map[string]Strategy{
			content.TypeGapFill:        gapFillStrategy{},
			content.TypeMultipleChoice: multipleChoiceStrategy{},
			content.TypeMatch:          matchStrategy{},
			content.TypeErrorFinding:   errorFindingStrategy{},
			content.TypeWriting:        writingStrategy{},
			content.TypeAudio:          audioStrategy{},
		},
	}
}

func (g *defaultGrader) Grade(block *content.Block, submission Submission) (Result, error) {
	s, ok := g.strategies[block.Type]
	if !ok {
		// Content parsing rejects unknown types, so this only happens for a
		// type someone registered in content but not here.
		return Result{MaxPoints: blockMaxPoints(block), NeedsReview: true, Feedback: []string{"no strategy available"}}, nil
	}
	return s.Grade(block, submission)
}

func blockMaxPoints(block *content.Block) float64 {
	if block.Data.Points > 0 {
		return block.Data.Points
	}
	return 1
}
