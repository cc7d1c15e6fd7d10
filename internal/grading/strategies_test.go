package grading_test

import (
	"errors"
	"testing"

	"github.com/darsyar/darsyar/internal/content"
	"github.com/darsyar/darsyar/internal/grading"
)

func choiceBlock(multi bool, correct ...string) *content.Block {
	return &content.Block{
		ID:   "mc1",
		Type: content.TypeMultipleChoice,
		Data: content.Data{
			MultiSelect:      multi,
			CorrectChoiceIDs: correct,
			Choices: []content.Option{
				{ID: "c1", Value: "a"},
				{ID: "c2", Value: "b"},
				{ID: "c3", Value: "c"},
			},
		},
	}
}

func TestMultipleChoiceSingle(t *testing.T) {
	g := grading.NewGrader()
	block := choiceBlock(false, "c2")

	res, err := g.Grade(block, grading.Submission{"choiceId": "c2"})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !res.IsCorrect || !almostEqual(res.PointsEarned, res.MaxPoints) {
		t.Errorf("correct single choice: got %+v", res)
	}

	res, err = g.Grade(block, grading.Submission{"choiceId": "c1"})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if res.IsCorrect || res.PointsEarned != 0 {
		t.Errorf("wrong single choice: got %+v", res)
	}
}

func TestMultipleChoiceSingleAcceptsArrayForm(t *testing.T) {
	g := grading.NewGrader()
	block := choiceBlock(false, "c2")

	res, err := g.Grade(block, grading.Submission{"choiceIds": []interface{}{"c2"}})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !res.IsCorrect {
		t.Errorf("single choice via choiceIds array: got %+v", res)
	}
}

func TestMultipleChoiceMulti(t *testing.T) {
	g := grading.NewGrader()
	block := choiceBlock(true, "c1", "c3")

	t.Run("all correct", func(t *testing.T) {
		res, err := g.Grade(block, grading.Submission{"choiceIds": []interface{}{"c3", "c1"}})
		if err != nil {
			t.Fatalf("Grade: %v", err)
		}
		if !res.IsCorrect || !almostEqual(res.PointsEarned, res.MaxPoints) {
			t.Errorf("got %+v", res)
		}
	})

	t.Run("partial without false positives", func(t *testing.T) {
		res, err := g.Grade(block, grading.Submission{"choiceIds": []interface{}{"c1"}})
		if err != nil {
			t.Fatalf("Grade: %v", err)
		}
		if res.IsCorrect {
			t.Error("partial selection must not be isCorrect")
		}
		if !almostEqual(res.PointsEarned, res.MaxPoints/2) {
			t.Errorf("pointsEarned = %v, want %v", res.PointsEarned, res.MaxPoints/2)
		}
	})

	t.Run("false positive forfeits credit", func(t *testing.T) {
		res, err := g.Grade(block, grading.Submission{"choiceIds": []interface{}{"c1", "c2"}})
		if err != nil {
			t.Fatalf("Grade: %v", err)
		}
		if res.IsCorrect || res.PointsEarned != 0 {
			t.Errorf("got %+v", res)
		}
	})
}

func TestMultipleChoiceInvalidSubmissions(t *testing.T) {
	g := grading.NewGrader()
	block := choiceBlock(false, "c1")

	for _, sub := range []grading.Submission{
		{},
		{"choiceId": 7.0},
		{"choiceIds": "c1"},
		{"choiceIds": []interface{}{1.0}},
	} {
		if _, err := g.Grade(block, sub); !errors.Is(err, grading.ErrInvalidSubmission) {
			t.Errorf("submission %v: got %v, want ErrInvalidSubmission", sub, err)
		}
	}
}

func TestMatchStrategy(t *testing.T) {
	g := grading.NewGrader()
	block := &content.Block{
		ID:   "m1",
		Type: content.TypeMatch,
		Data: content.Data{Pairs: []content.Pair{
			{ID: "p1", Left: "کتاب", Right: "book"},
			{ID: "p2", Left: "میز", Right: "desk"},
		}},
	}

	pair := func(l, r string) interface{} {
		return map[string]interface{}{"left": l, "right": r}
	}

	res, err := g.Grade(block, grading.Submission{"pairs": []interface{}{
		pair("میز", "desk"),
		// Arabic yeh and kaf variants on the left must still hit the key.
		pair("كتاب", "book"),
	}})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !res.IsCorrect {
		t.Errorf("all pairs matched: got %+v", res)
	}

	res, err = g.Grade(block, grading.Submission{"pairs": []interface{}{
		pair("کتاب", "book"),
		pair("میز", "book"),
	}})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if res.IsCorrect {
		t.Error("one wrong pair must not be isCorrect")
	}
	if !almostEqual(res.PointsEarned, res.MaxPoints/2) {
		t.Errorf("pointsEarned = %v, want %v", res.PointsEarned, res.MaxPoints/2)
	}

	if _, err := g.Grade(block, grading.Submission{}); !errors.Is(err, grading.ErrInvalidSubmission) {
		t.Errorf("missing pairs: got %v, want ErrInvalidSubmission", err)
	}
}

func TestErrorFindingStrategy(t *testing.T) {
	g := grading.NewGrader()
	block := &content.Block{
		ID:   "e1",
		Type: content.TypeErrorFinding,
		Data: content.Data{
			Words:        []string{"he", "go", "to", "school", "yesterday"},
			ErrorIndexes: []int{1, 4},
		},
	}

	res, err := g.Grade(block, grading.Submission{"selectedIndexes": []interface{}{4.0, 1.0}})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !res.IsCorrect || !almostEqual(res.PointsEarned, res.MaxPoints) {
		t.Errorf("all errors found: got %+v", res)
	}

	res, err = g.Grade(block, grading.Submission{"selectedIndexes": []interface{}{1.0}})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if res.IsCorrect || !almostEqual(res.PointsEarned, res.MaxPoints/2) {
		t.Errorf("half the errors found: got %+v", res)
	}

	res, err = g.Grade(block, grading.Submission{"selectedIndexes": []interface{}{1.0, 2.0}})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if res.PointsEarned != 0 {
		t.Errorf("false positive must forfeit credit: got %+v", res)
	}

	if _, err := g.Grade(block, grading.Submission{"selectedIndexes": []interface{}{"one"}}); !errors.Is(err, grading.ErrInvalidSubmission) {
		t.Errorf("non-numeric index: got %v, want ErrInvalidSubmission", err)
	}
}

func TestWritingStrategy(t *testing.T) {
	g := grading.NewGrader()
	block := &content.Block{
		ID:   "w1",
		Type: content.TypeWriting,
		Data: content.Data{MinWords: 3},
	}

	res, err := g.Grade(block, grading.Submission{"text": "I went home yesterday"})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !res.NeedsReview {
		t.Error("writing must always need review")
	}
	if !res.IsCorrect || !almostEqual(res.PointsEarned, res.MaxPoints) {
		t.Errorf("submission above min words: got %+v", res)
	}

	res, err = g.Grade(block, grading.Submission{"text": "too short"})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if res.IsCorrect || res.PointsEarned != 0 || !res.NeedsReview {
		t.Errorf("below min words: got %+v", res)
	}

	res, err = g.Grade(block, grading.Submission{"text": ""})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if res.IsCorrect || len(res.Feedback) == 0 {
		t.Errorf("empty text: got %+v", res)
	}
}

func TestAudioStrategy(t *testing.T) {
	g := grading.NewGrader()
	block := &content.Block{ID: "a1", Type: content.TypeAudio}

	res, err := g.Grade(block, grading.Submission{"audioUrl": "https://cdn.example.com/rec.ogg"})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !res.IsCorrect || !res.NeedsReview {
		t.Errorf("recorded submission: got %+v", res)
	}

	res, err = g.Grade(block, grading.Submission{"audioUrl": "   "})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if res.IsCorrect || res.PointsEarned != 0 {
		t.Errorf("blank url: got %+v", res)
	}
}

func TestUnknownBlockTypeNeedsReview(t *testing.T) {
	g := grading.NewGrader()
	block := &content.Block{ID: "x1", Type: "hologram"}

	res, err := g.Grade(block, grading.Submission{})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !res.NeedsReview || res.IsCorrect || res.PointsEarned != 0 {
		t.Errorf("unknown type should defer to review: got %+v", res)
	}
}
