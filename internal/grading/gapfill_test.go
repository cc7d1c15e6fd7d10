package grading_test

import (
	"errors"
	"math"
	"testing"

	"github.com/darsyar/darsyar/internal/content"
	"github.com/darsyar/darsyar/internal/grading"
)

func gapFillBlock(blanks ...content.Blank) *content.Block {
	return &content.Block{
		ID:   "b1",
		Type: content.TypeGapFill,
		Data: content.Data{AnswerType: "exact", Blanks: blanks},
	}
}

func blankEntry(index int, value string) map[string]interface{} {
	return map[string]interface{}{"blankId": "", "index": float64(index), "value": value}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestGapFillExactMatch(t *testing.T) {
	g := grading.NewGrader()
	block := gapFillBlock(content.Blank{Index: 0, CorrectAnswer: "desk", AllowManualInput: true})

	res, err := g.Grade(block, grading.Submission{"blanks": []interface{}{blankEntry(0, "desk")}})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !res.IsCorrect {
		t.Error("exact match should be correct")
	}
	if !almostEqual(res.PointsEarned, res.MaxPoints) {
		t.Errorf("pointsEarned = %v, want maxPoints %v", res.PointsEarned, res.MaxPoints)
	}
}

func TestGapFillZwnjTolerance(t *testing.T) {
	g := grading.NewGrader()
	block := gapFillBlock(content.Blank{Index: 0, CorrectAnswer: "می‌روم", AllowManualInput: true})

	res, err := g.Grade(block, grading.Submission{"blanks": []interface{}{blankEntry(0, "میروم")}})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !res.IsCorrect {
		t.Error("answer without ZWNJ should match correct answer with ZWNJ")
	}
}

func TestGapFillDigitTolerance(t *testing.T) {
	g := grading.NewGrader()
	block := gapFillBlock(content.Blank{Index: 0, CorrectAnswer: "سال ۱۲۳", AllowManualInput: true})

	res, err := g.Grade(block, grading.Submission{"blanks": []interface{}{blankEntry(0, "سال 123")}})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !res.IsCorrect {
		t.Error("ASCII digits should match Persian digits")
	}
}

func TestGapFillPartialCredit(t *testing.T) {
	g := grading.NewGrader()
	block := gapFillBlock(
		content.Blank{Index: 0, CorrectAnswer: "one", AllowManualInput: true},
		content.Blank{Index: 1, CorrectAnswer: "two", AllowManualInput: true},
		content.Blank{Index: 2, CorrectAnswer: "three", AllowManualInput: true},
	)

	res, err := g.Grade(block, grading.Submission{"blanks": []interface{}{
		blankEntry(0, "one"),
		blankEntry(1, "two"),
		blankEntry(2, "wrong"),
	}})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if res.IsCorrect {
		t.Error("2/3 correct must not be isCorrect")
	}
	if !almostEqual(res.PointsEarned, res.MaxPoints*2/3) {
		t.Errorf("pointsEarned = %v, want %v", res.PointsEarned, res.MaxPoints*2/3)
	}
}

func TestGapFillOrderIndependent(t *testing.T) {
	g := grading.NewGrader()
	block := gapFillBlock(
		content.Blank{Index: 0, CorrectAnswer: "alpha", AllowManualInput: true},
		content.Blank{Index: 1, CorrectAnswer: "beta", AllowManualInput: true},
	)

	forward := grading.Submission{"blanks": []interface{}{blankEntry(0, "alpha"), blankEntry(1, "beta")}}
	backward := grading.Submission{"blanks": []interface{}{blankEntry(1, "beta"), blankEntry(0, "alpha")}}

	r1, err := g.Grade(block, forward)
	if err != nil {
		t.Fatalf("Grade forward: %v", err)
	}
	r2, err := g.Grade(block, backward)
	if err != nil {
		t.Fatalf("Grade backward: %v", err)
	}
	if r1.IsCorrect != r2.IsCorrect || !almostEqual(r1.PointsEarned, r2.PointsEarned) {
		t.Errorf("permuted submissions graded differently: %+v vs %+v", r1, r2)
	}
}

func TestGapFillStringifiedEntries(t *testing.T) {
	g := grading.NewGrader()
	block := gapFillBlock(content.Blank{Index: 0, CorrectAnswer: "desk", AllowManualInput: true})

	structured := grading.Submission{"blanks": []interface{}{blankEntry(0, "desk")}}
	serialized := grading.Submission{"blanks": []interface{}{`{"blankId": "", "index": 0, "value": "desk"}`}}

	r1, err := g.Grade(block, structured)
	if err != nil {
		t.Fatalf("Grade structured: %v", err)
	}
	r2, err := g.Grade(block, serialized)
	if err != nil {
		t.Fatalf("Grade serialized: %v", err)
	}
	if r1.IsCorrect != r2.IsCorrect || !almostEqual(r1.PointsEarned, r2.PointsEarned) {
		t.Errorf("stringified and structured entries graded differently: %+v vs %+v", r1, r2)
	}
}

func TestGapFillMissingEntryCountsIncorrect(t *testing.T) {
	g := grading.NewGrader()
	block := gapFillBlock(
		content.Blank{Index: 0, CorrectAnswer: "one", AllowManualInput: true},
		content.Blank{Index: 1, CorrectAnswer: "two", AllowManualInput: true},
	)

	res, err := g.Grade(block, grading.Submission{"blanks": []interface{}{blankEntry(0, "one")}})
	if err != nil {
		t.Fatalf("missing entry must not be a validation error: %v", err)
	}
	if res.IsCorrect {
		t.Error("missing entry should leave the block incorrect")
	}
	if !almostEqual(res.PointsEarned, res.MaxPoints/2) {
		t.Errorf("pointsEarned = %v, want %v", res.PointsEarned, res.MaxPoints/2)
	}
}

func TestGapFillAlternativeAnswers(t *testing.T) {
	g := grading.NewGrader()
	block := gapFillBlock(content.Blank{
		Index:              0,
		CorrectAnswer:      "desk",
		AlternativeAnswers: []string{"table", "میز"},
		AllowManualInput:   true,
	})

	res, err := g.Grade(block, grading.Submission{"blanks": []interface{}{blankEntry(0, "ميز")}})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !res.IsCorrect {
		t.Error("normalized alternative answer should match")
	}
}

func TestGapFillOptionMatching(t *testing.T) {
	options := []content.Option{
		{ID: "opt-a", Value: "desk", DisplayText: "desk"},
		{ID: "opt-b", Value: "chair", DisplayText: "chair"},
	}

	t.Run("option id resolved by value equality", func(t *testing.T) {
		g := grading.NewGrader()
		block := gapFillBlock(content.Blank{
			Index: 0, CorrectAnswer: "desk",
			AllowBlankOptions: true, Options: options,
		})
		res, err := g.Grade(block, grading.Submission{"blanks": []interface{}{
			map[string]interface{}{"index": float64(0), "optionId": "opt-a"},
		}})
		if err != nil {
			t.Fatalf("Grade: %v", err)
		}
		if !res.IsCorrect {
			t.Error("optionId pointing at the correct-valued option should be correct")
		}
	})

	t.Run("wrong option id", func(t *testing.T) {
		g := grading.NewGrader()
		block := gapFillBlock(content.Blank{
			Index: 0, CorrectAnswer: "desk",
			AllowBlankOptions: true, Options: options,
		})
		res, err := g.Grade(block, grading.Submission{"blanks": []interface{}{
			map[string]interface{}{"index": float64(0), "optionId": "opt-b"},
		}})
		if err != nil {
			t.Fatalf("Grade: %v", err)
		}
		if res.IsCorrect {
			t.Error("optionId pointing at a wrong-valued option must be incorrect")
		}
	})

	t.Run("unknown option id falls back to value", func(t *testing.T) {
		g := grading.NewGrader()
		block := gapFillBlock(content.Blank{
			Index: 0, CorrectAnswer: "desk",
			AllowBlankOptions: true, Options: options,
		})
		res, err := g.Grade(block, grading.Submission{"blanks": []interface{}{
			map[string]interface{}{"index": float64(0), "optionId": "opt-gone", "value": "desk"},
		}})
		if err != nil {
			t.Fatalf("Grade: %v", err)
		}
		if !res.IsCorrect {
			t.Error("stale optionId with a matching value should grade correct")
		}

		res, err = g.Grade(block, grading.Submission{"blanks": []interface{}{
			map[string]interface{}{"index": float64(0), "optionId": "opt-gone", "value": "chair"},
		}})
		if err != nil {
			t.Fatalf("Grade: %v", err)
		}
		if res.IsCorrect {
			t.Error("stale optionId with a wrong value must stay incorrect")
		}
	})

	t.Run("explicit correctOptionId takes precedence", func(t *testing.T) {
		g := grading.NewGrader()
		block := gapFillBlock(content.Blank{
			Index: 0, CorrectAnswer: "desk",
			AllowBlankOptions: true, Options: options,
			CorrectOptionID: "opt-b",
		})
		res, err := g.Grade(block, grading.Submission{"blanks": []interface{}{
			map[string]interface{}{"index": float64(0), "optionId": "opt-b"},
		}})
		if err != nil {
			t.Fatalf("Grade: %v", err)
		}
		if !res.IsCorrect {
			t.Error("explicit correctOptionId must win over value equality")
		}
	})

	t.Run("value fallback when optionId omitted", func(t *testing.T) {
		g := grading.NewGrader()
		block := gapFillBlock(content.Blank{
			Index: 0, CorrectAnswer: "desk",
			AllowBlankOptions: true, Options: options,
		})
		res, err := g.Grade(block, grading.Submission{"blanks": []interface{}{blankEntry(0, "desk")}})
		if err != nil {
			t.Fatalf("Grade: %v", err)
		}
		if !res.IsCorrect {
			t.Error("plain value matching correctAnswer should grade correct without optionId")
		}
	})

	t.Run("option and value submissions agree", func(t *testing.T) {
		g := grading.NewGrader()
		block := gapFillBlock(content.Blank{
			Index: 0, CorrectAnswer: "desk",
			AllowBlankOptions: true, Options: options,
		})
		byOption, err := g.Grade(block, grading.Submission{"blanks": []interface{}{
			map[string]interface{}{"index": float64(0), "optionId": "opt-a"},
		}})
		if err != nil {
			t.Fatalf("Grade by option: %v", err)
		}
		byValue, err := g.Grade(block, grading.Submission{"blanks": []interface{}{blankEntry(0, "desk")}})
		if err != nil {
			t.Fatalf("Grade by value: %v", err)
		}
		if byOption.IsCorrect != byValue.IsCorrect {
			t.Errorf("option-based and value-based submissions disagree: %v vs %v", byOption.IsCorrect, byValue.IsCorrect)
		}
	})
}

func TestGapFillCaseSensitive(t *testing.T) {
	g := grading.NewGrader()
	block := &content.Block{
		ID:   "b1",
		Type: content.TypeGapFill,
		Data: content.Data{
			CaseSensitive: true,
			Blanks:        []content.Blank{{Index: 0, CorrectAnswer: "Desk", AllowManualInput: true}},
		},
	}

	res, err := g.Grade(block, grading.Submission{"blanks": []interface{}{blankEntry(0, "desk")}})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if res.IsCorrect {
		t.Error("case-sensitive block must reject a case-mismatched answer")
	}

	res, err = g.Grade(block, grading.Submission{"blanks": []interface{}{blankEntry(0, "Desk")}})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !res.IsCorrect {
		t.Error("exact-case answer must pass on a case-sensitive block")
	}
}

func TestGapFillInvalidSubmissions(t *testing.T) {
	g := grading.NewGrader()
	block := gapFillBlock(content.Blank{Index: 0, CorrectAnswer: "desk", AllowManualInput: true})

	cases := []struct {
		name string
		sub  grading.Submission
	}{
		{"missing blanks", grading.Submission{}},
		{"blanks not an array", grading.Submission{"blanks": "desk"}},
		{"unsupported element", grading.Submission{"blanks": []interface{}{42.0}}},
		{"unparseable string element", grading.Submission{"blanks": []interface{}{"not json"}}},
		{"duplicate index", grading.Submission{"blanks": []interface{}{blankEntry(0, "desk"), blankEntry(0, "chair")}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := g.Grade(block, tc.sub); !errors.Is(err, grading.ErrInvalidSubmission) {
				t.Errorf("got %v, want ErrInvalidSubmission", err)
			}
		})
	}
}

func TestGapFillPointsConfig(t *testing.T) {
	g := grading.NewGrader()
	block := &content.Block{
		ID:   "b1",
		Type: content.TypeGapFill,
		Data: content.Data{
			Points: 4,
			Blanks: []content.Blank{
				{Index: 0, CorrectAnswer: "a", AllowManualInput: true},
				{Index: 1, CorrectAnswer: "b", AllowManualInput: true},
			},
		},
	}
	res, err := g.Grade(block, grading.Submission{"blanks": []interface{}{blankEntry(0, "a"), blankEntry(1, "nope")}})
	if err != nil {
		t.Fatalf("Grade: %v", err)
	}
	if !almostEqual(res.MaxPoints, 4) {
		t.Errorf("maxPoints = %v, want 4", res.MaxPoints)
	}
	if !almostEqual(res.PointsEarned, 2) {
		t.Errorf("pointsEarned = %v, want 2", res.PointsEarned)
	}
}
