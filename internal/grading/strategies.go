package grading

import (
	"fmt"
	"strings"

	"github.com/darsyar/darsyar/internal/content"
	"github.com/darsyar/darsyar/internal/textnorm"
)

type multipleChoiceStrategy struct{}

func (multipleChoiceStrategy) Grade(block *content.Block, submission Submission) (Result, error) {
	res := Result{MaxPoints: blockMaxPoints(block)}

	selected, err := selectedChoiceIDs(submission)
	if err != nil {
		return res, err
	}

	correct := make(map[string]bool, len(block.Data.CorrectChoiceIDs))
	for _, id := range block.Data.CorrectChoiceIDs {
		correct[id] = true
	}
	if len(correct) == 0 {
		return res, nil
	}

	if !block.Data.MultiSelect {
		if len(selected) == 1 && correct[selected[0]] {
			res.IsCorrect = true
			res.PointsEarned = res.MaxPoints
		}
		return res, nil
	}

	hits := 0
	falsePositive := false
	seen := make(map[string]bool, len(selected))
	for _, id := range selected {
		if seen[id] {
			continue
		}
		seen[id] = true
		if correct[id] {
			hits++
		} else {
			falsePositive = true
		}
	}
	if hits == len(correct) && !falsePositive {
		res.IsCorrect = true
		res.PointsEarned = res.MaxPoints
		return res, nil
	}
	// Partial credit only when nothing wrong was selected.
	if !falsePositive {
		res.PointsEarned = res.MaxPoints * float64(hits) / float64(len(correct))
	}
	return res, nil
}

func selectedChoiceIDs(submission Submission) ([]string, error) {
	if v, ok := submission["choiceIds"]; ok {
		list, ok := v.([]interface{})
		if !ok {
			return nil, fmt.Errorf("%w: choiceIds must be an array", ErrInvalidSubmission)
		}
		out := make([]string, 0, len(list))
		for _, el := range list {
			s, ok := el.(string)
			if !ok {
				return nil, fmt.Errorf("%w: choiceIds must contain strings", ErrInvalidSubmission)
			}
			out = append(out, s)
		}
		return out, nil
	}
	if v, ok := submission["choiceId"]; ok {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("%w: choiceId must be a string", ErrInvalidSubmission)
		}
		return []string{s}, nil
	}
	return nil, fmt.Errorf("%w: missing choice selection", ErrInvalidSubmission)
}

type matchStrategy struct{}

// matchStrategy grades a pair-association block. Authored pairs are keyed by
// their normalized left side; each submitted pair must supply the matching
// right side.
func (matchStrategy) Grade(block *content.Block, submission Submission) (Result, error) {
	res := Result{MaxPoints: blockMaxPoints(block)}

	v, ok := submission["pairs"]
	if !ok {
		return res, fmt.Errorf("%w: missing pairs entry", ErrInvalidSubmission)
	}
	list, ok := v.([]interface{})
	if !ok {
		return res, fmt.Errorf("%w: pairs must be an array", ErrInvalidSubmission)
	}

	expected := make(map[string]string, len(block.Data.Pairs))
	for _, p := range block.Data.Pairs {
		expected[textnorm.Normalize(p.Left)] = textnorm.Normalize(p.Right)
	}
	total := len(block.Data.Pairs)
	if total == 0 {
		res.IsCorrect = true
		res.PointsEarned = res.MaxPoints
		return res, nil
	}

	correct := 0
	matched := make(map[string]bool, total)
	for i, el := range list {
		m, ok := el.(map[string]interface{})
		if !ok {
			return res, fmt.Errorf("%w: pair %d must be an object", ErrInvalidSubmission, i)
		}
		left, _ := m["left"].(string)
		right, _ := m["right"].(string)
		key := textnorm.Normalize(left)
		if matched[key] {
			continue
		}
		if want, ok := expected[key]; ok && want == textnorm.Normalize(right) {
			matched[key] = true
			correct++
		}
	}

	res.IsCorrect = correct == total
	res.PointsEarned = res.MaxPoints * float64(correct) / float64(total)
	return res, nil
}

type errorFindingStrategy struct{}

// errorFindingStrategy compares the set of word indexes the student flagged
// against the authored error positions. Partial credit only without false
// positives, same discipline as multi-select choice.
func (errorFindingStrategy) Grade(block *content.Block, submission Submission) (Result, error) {
	res := Result{MaxPoints: blockMaxPoints(block)}

	v, ok := submission["selectedIndexes"]
	if !ok {
		return res, fmt.Errorf("%w: missing selectedIndexes entry", ErrInvalidSubmission)
	}
	list, ok := v.([]interface{})
	if !ok {
		return res, fmt.Errorf("%w: selectedIndexes must be an array", ErrInvalidSubmission)
	}

	errorSet := make(map[int]bool, len(block.Data.ErrorIndexes))
	for _, idx := range block.Data.ErrorIndexes {
		errorSet[idx] = true
	}
	if len(errorSet) == 0 {
		return res, nil
	}

	hits := 0
	falsePositive := false
	seen := make(map[int]bool, len(list))
	for i, el := range list {
		f, ok := el.(float64) // json numbers decode as float64
		if !ok {
			return res, fmt.Errorf("%w: selectedIndexes[%d] must be a number", ErrInvalidSubmission, i)
		}
		idx := int(f)
		if seen[idx] {
			continue
		}
		seen[idx] = true
		if errorSet[idx] {
			hits++
		} else {
			falsePositive = true
		}
	}
	if hits == len(errorSet) && !falsePositive {
		res.IsCorrect = true
		res.PointsEarned = res.MaxPoints
		return res, nil
	}
	if !falsePositive {
		res.PointsEarned = res.MaxPoints * float64(hits) / float64(len(errorSet))
	}
	return res, nil
}

type writingStrategy struct{}

// writingStrategy has no machine-checkable key. A non-empty submission that
// clears the configured minimum word count earns the block's points and is
// flagged for teacher review.
func (writingStrategy) Grade(block *content.Block, submission Submission) (Result, error) {
	res := Result{MaxPoints: blockMaxPoints(block), NeedsReview: true}

	text, _ := submission["text"].(string)
	words := len(strings.Fields(text))
	if words == 0 {
		res.Feedback = append(res.Feedback, "empty submission")
		return res, nil
	}
	if block.Data.MinWords > 0 && words < block.Data.MinWords {
		res.Feedback = append(res.Feedback, fmt.Sprintf("below minimum word count: %d/%d", words, block.Data.MinWords))
		return res, nil
	}
	res.IsCorrect = true
	res.PointsEarned = res.MaxPoints
	res.Feedback = append(res.Feedback, "manual review required")
	return res, nil
}

type audioStrategy struct{}

func (audioStrategy) Grade(block *content.Block, submission Submission) (Result, error) {
	res := Result{MaxPoints: blockMaxPoints(block), NeedsReview: true}

	url, _ := submission["audioUrl"].(string)
	if strings.TrimSpace(url) == "" {
		res.Feedback = append(res.Feedback, "empty submission")
		return res, nil
	}
	res.IsCorrect = true
	res.PointsEarned = res.MaxPoints
	res.Feedback = append(res.Feedback, "manual review required")
	return res, nil
}
