// Package content decodes the JSON content document attached to a schedule
// item into a typed block list. Parsing is defensive: content authored by
// older UI versions must still grade, so unknown fields are ignored and
// legacy field names are accepted.
package content

// Block type tags. The validator dispatches on these.
const (
	TypeGapFill        = "gap_fill"
	TypeMultipleChoice = "multiple_choice"
	TypeMatch          = "match"
	TypeErrorFinding   = "error_finding"
	TypeWriting        = "writing"
	TypeAudio          = "audio"
)

// Document is the parsed content of one schedule item.
type Document struct {
	Blocks []Block `json:"blocks"`
}

// Block is one exercise unit inside a content document.
type Block struct {
	ID    string `json:"id"`
	Type  string `json:"type"`
	Order int    `json:"order"`
	Text  string `json:"text,omitempty"`
	Data  Data   `json:"data"`
}

// Data is the type-specific payload of a block. Only the fields relevant to
// the block's type are populated.
type Data struct {
	// gap_fill
	AnswerType    string  `json:"answerType,omitempty"`
	CaseSensitive bool    `json:"caseSensitive,omitempty"`
	Points        float64 `json:"points,omitempty"`
	Blanks        []Blank `json:"blanks,omitempty"`

	// multiple_choice
	Choices          []Option `json:"choices,omitempty"`
	CorrectChoiceIDs []string `json:"correctChoiceIds,omitempty"`
	MultiSelect      bool     `json:"multiSelect,omitempty"`

	// match
	Pairs []Pair `json:"pairs,omitempty"`

	// error_finding
	Words        []string `json:"words,omitempty"`
	ErrorIndexes []int    `json:"errorIndexes,omitempty"`

	// writing / audio
	MinWords int    `json:"minWords,omitempty"`
	Prompt   string `json:"prompt,omitempty"`
}

// Blank is one gap inside a gap_fill block. Index is the primary matching
// key; ID is advisory.
type Blank struct {
	ID                 string   `json:"id"`
	Index              int      `json:"index"`
	CorrectAnswer      string   `json:"correctAnswer"`
	AlternativeAnswers []string `json:"alternativeAnswers,omitempty"`
	AllowManualInput   bool     `json:"allowManualInput"`
	AllowGlobalOptions bool     `json:"allowGlobalOptions"`
	AllowBlankOptions  bool     `json:"allowBlankOptions"`
	Options            []Option `json:"options,omitempty"`
	CorrectOptionID    string   `json:"correctOptionId,omitempty"`
}

// Option is a selectable value with a display form.
type Option struct {
	ID          string `json:"id"`
	Value       string `json:"value"`
	DisplayText string `json:"displayText,omitempty"`
}

// Pair is one left/right association in a match block.
type Pair struct {
	ID    string `json:"id"`
	Left  string `json:"left"`
	Right string `json:"right"`
}

// FindBlock returns the block with the given id.
func (d *Document) FindBlock(id string) (*Block, error) {
	for i := range d.Blocks {
		if d.Blocks[i].ID == id {
			return &d.Blocks[i], nil
		}
	}
	return nil, ErrBlockNotFound
}
