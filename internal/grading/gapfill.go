package grading

import (
	"encoding/json"
	"fmt"

	"github.com/darsyar/darsyar/internal/content"
	"github.com/darsyar/darsyar/internal/textnorm"
)

// blankEntry is one submitted gap answer, normalized from either a
// structured object or a pre-serialized JSON string of the same shape.
type blankEntry struct {
	BlankID  string `json:"blankId"`
	Index    int    `json:"index"`
	Value    string `json:"value"`
	OptionID string `json:"optionId,omitempty"`
}

type gapFillStrategy struct{}

func (gapFillStrategy) Grade(block *content.Block, submission Submission) (Result, error) {
	res := Result{MaxPoints: blockMaxPoints(block)}

	entries, err := parseBlankEntries(submission["blanks"])
	if err != nil {
		return res, err
	}

	// Submission order is irrelevant; the blank index is the matching key.
	// Two entries for one index would make the outcome depend on order, so
	// they fail the submission instead.
	byIndex := make(map[int]blankEntry, len(entries))
	for _, e := range entries {
		if _, dup := byIndex[e.Index]; dup {
			return res, fmt.Errorf("%w: duplicate entry for blank index %d", ErrInvalidSubmission, e.Index)
		}
		byIndex[e.Index] = e
	}

	norm := textnorm.Normalize
	if block.Data.CaseSensitive {
		norm = textnorm.NormalizeCaseSensitive
	}

	total := len(block.Data.Blanks)
	if total == 0 {
		res.IsCorrect = true
		res.PointsEarned = res.MaxPoints
		return res, nil
	}

	correct := 0
	for _, blank := range block.Data.Blanks {
		entry, ok := byIndex[blank.Index]
		if !ok {
			// Missing entries count as incorrect, not as a validation error.
			continue
		}
		if blankAnswered(blank, entry, norm) {
			correct++
		}
	}

	res.IsCorrect = correct == total
	res.PointsEarned = res.MaxPoints * float64(correct) / float64(total)
	return res, nil
}

// blankAnswered decides per-blank correctness. Option-backed blanks are
// matched by option id first; an explicit correctOptionId beats the
// value-equality lookup. Clients that omit optionId, and submissions whose
// optionId matches no authored option, fall back to plain value matching.
func blankAnswered(blank content.Blank, entry blankEntry, norm func(string) string) bool {
	if blank.AllowBlankOptions && len(blank.Options) > 0 && entry.OptionID != "" {
		if blank.CorrectOptionID != "" && entry.OptionID == blank.CorrectOptionID {
			return true
		}
		for _, opt := range blank.Options {
			if opt.ID != entry.OptionID {
				continue
			}
			if blank.CorrectOptionID != "" {
				return false
			}
			return norm(opt.Value) == norm(blank.CorrectAnswer)
		}
		// Stale or unknown option id: grade the typed value instead.
	}
	return valueMatches(blank, entry.Value, norm)
}

func valueMatches(blank content.Blank, value string, norm func(string) string) bool {
	got := norm(value)
	if got == norm(blank.CorrectAnswer) {
		return true
	}
	for _, alt := range blank.AlternativeAnswers {
		if got == norm(alt) {
			return true
		}
	}
	return false
}

// parseBlankEntries normalizes the submitted blanks collection to structured
// entries. Each element is either an object or a JSON string of one;
// anything else fails the whole submission.
func parseBlankEntries(v interface{}) ([]blankEntry, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: missing blanks entry", ErrInvalidSubmission)
	}
	list, ok := v.([]interface{})
	if !ok {
		return nil, fmt.Errorf("%w: blanks must be an array", ErrInvalidSubmission)
	}
	entries := make([]blankEntry, 0, len(list))
	for i, el := range list {
		var raw []byte
		switch t := el.(type) {
		case string:
			raw = []byte(t)
		case map[string]interface{}:
			b, err := json.Marshal(t)
			if err != nil {
				return nil, fmt.Errorf("%w: blank entry %d: %v", ErrInvalidSubmission, i, err)
			}
			raw = b
		default:
			return nil, fmt.Errorf("%w: blank entry %d has unsupported type", ErrInvalidSubmission, i)
		}
		var e blankEntry
		if err := json.Unmarshal(raw, &e); err != nil {
			return nil, fmt.Errorf("%w: blank entry %d: %v", ErrInvalidSubmission, i, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
