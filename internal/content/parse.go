package content

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/darsyar/darsyar/internal/textnorm"
	"github.com/google/uuid"
)

var (
	// ErrMalformedContent means the authored JSON violates the schema. This
	// is a data-integrity problem, not something the submitting student can
	// correct.
	ErrMalformedContent = errors.New("malformed content document")

	// ErrBlockNotFound means the requested block id is absent from the
	// content document.
	ErrBlockNotFound = errors.New("block not found in content document")
)

var knownTypes = map[string]bool{
	TypeGapFill:        true,
	TypeMultipleChoice: true,
	TypeMatch:          true,
	TypeErrorFinding:   true,
	TypeWriting:        true,
	TypeAudio:          true,
}

// rawBlock carries the loosely-typed wire form. Data sometimes arrives as an
// already-serialized JSON string instead of an object, and older authoring
// UIs wrote blank lists under "gaps".
type rawBlock struct {
	ID    string          `json:"id"`
	Type  string          `json:"type"`
	Order int             `json:"order"`
	Text  string          `json:"text"`
	Data  json.RawMessage `json:"data"`
}

type rawData struct {
	AnswerType    string          `json:"answerType"`
	CaseSensitive bool            `json:"caseSensitive"`
	Points        float64         `json:"points"`
	Blanks        json.RawMessage `json:"blanks"`
	Gaps          json.RawMessage `json:"gaps"` // legacy name for blanks

	Choices          []Option `json:"choices"`
	CorrectChoiceIDs []string `json:"correctChoiceIds"`
	MultiSelect      bool     `json:"multiSelect"`

	Pairs []Pair `json:"pairs"`

	Words        []string `json:"words"`
	ErrorIndexes []int    `json:"errorIndexes"`

	MinWords int    `json:"minWords"`
	Prompt   string `json:"prompt"`
}

// Parse decodes a schedule item's opaque content JSON into a Document. The
// root "blocks" array must exist and every block type must be recognized;
// everything else degrades gracefully.
func Parse(raw []byte) (*Document, error) {
	var root struct {
		Blocks *[]rawBlock `json:"blocks"`
	}
	if err := json.Unmarshal(raw, &root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedContent, err)
	}
	if root.Blocks == nil {
		return nil, fmt.Errorf("%w: missing blocks array", ErrMalformedContent)
	}

	doc := &Document{Blocks: make([]Block, 0, len(*root.Blocks))}
	for i, rb := range *root.Blocks {
		if !knownTypes[rb.Type] {
			return nil, fmt.Errorf("%w: block %d has unrecognized type %q", ErrMalformedContent, i, rb.Type)
		}
		data, err := parseData(rb.Data)
		if err != nil {
			return nil, fmt.Errorf("%w: block %d: %v", ErrMalformedContent, i, err)
		}
		doc.Blocks = append(doc.Blocks, Block{
			ID:    rb.ID,
			Type:  rb.Type,
			Order: rb.Order,
			Text:  rb.Text,
			Data:  *data,
		})
	}
	return doc, nil
}

func parseData(raw json.RawMessage) (*Data, error) {
	if len(raw) == 0 {
		return &Data{}, nil
	}
	// Some clients double-encode the data payload as a JSON string.
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, err
		}
		raw = []byte(inner)
	}

	var rd rawData
	if err := json.Unmarshal(raw, &rd); err != nil {
		return nil, err
	}

	blankSrc := rd.Blanks
	if len(blankSrc) == 0 {
		blankSrc = rd.Gaps
	}
	blanks, err := parseBlankList(blankSrc)
	if err != nil {
		return nil, err
	}

	return &Data{
		AnswerType:       rd.AnswerType,
		CaseSensitive:    rd.CaseSensitive,
		Points:           rd.Points,
		Blanks:           blanks,
		Choices:          rd.Choices,
		CorrectChoiceIDs: rd.CorrectChoiceIDs,
		MultiSelect:      rd.MultiSelect,
		Pairs:            rd.Pairs,
		Words:            rd.Words,
		ErrorIndexes:     rd.ErrorIndexes,
		MinWords:         rd.MinWords,
		Prompt:           rd.Prompt,
	}, nil
}

// parseBlankList accepts the blank list either as a JSON array or as an
// already-serialized string of one. Options may be absent (manual input
// only).
func parseBlankList(raw json.RawMessage) ([]Blank, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	if raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, err
		}
		raw = []byte(inner)
	}
	var blanks []Blank
	if err := json.Unmarshal(raw, &blanks); err != nil {
		return nil, err
	}
	return blanks, nil
}

// EnsureIDs backfills uuid identifiers on blocks, blanks and options that
// were authored without one. Called on the authoring path before persisting.
func (d *Document) EnsureIDs() {
	for i := range d.Blocks {
		b := &d.Blocks[i]
		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		for j := range b.Data.Blanks {
			bl := &b.Data.Blanks[j]
			if bl.ID == "" {
				bl.ID = uuid.NewString()
			}
			for k := range bl.Options {
				if bl.Options[k].ID == "" {
					bl.Options[k].ID = uuid.NewString()
				}
			}
		}
		for j := range b.Data.Choices {
			if b.Data.Choices[j].ID == "" {
				b.Data.Choices[j].ID = uuid.NewString()
			}
		}
		for j := range b.Data.Pairs {
			if b.Data.Pairs[j].ID == "" {
				b.Data.Pairs[j].ID = uuid.NewString()
			}
		}
	}
}

// Validate enforces the invariants an authored document must satisfy before
// it is published: unique blank indexes per gap-fill block, and match pairs
// whose left sides stay distinct after normalization (grading keys pairs by
// the normalized left side).
func (d *Document) Validate() error {
	for i := range d.Blocks {
		b := &d.Blocks[i]
		switch b.Type {
		case TypeGapFill:
			seen := make(map[int]bool, len(b.Data.Blanks))
			for _, bl := range b.Data.Blanks {
				if seen[bl.Index] {
					return fmt.Errorf("%w: block %q has duplicate blank index %d", ErrMalformedContent, b.ID, bl.Index)
				}
				seen[bl.Index] = true
			}
		case TypeMatch:
			seen := make(map[string]bool, len(b.Data.Pairs))
			for _, p := range b.Data.Pairs {
				key := textnorm.Normalize(p.Left)
				if seen[key] {
					return fmt.Errorf("%w: block %q has pairs with equivalent left side %q", ErrMalformedContent, b.ID, p.Left)
				}
				seen[key] = true
			}
		}
	}
	return nil
}
