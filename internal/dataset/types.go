package dataset

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Item is one evaluation record: a benchmark question, the ground-truth
// reference answer, and the candidate model's answer to be judged.
type Item struct {
	ID              ItemID `json:"id"`
	TaskType        string `json:"task_type"`
	Question        Text   `json:"question"`
	ReferenceAnswer Text   `json:"reference_answer"`
	ModelAnswer     Text   `json:"model_answer"`
}

// ItemID preserves a JSON string or number identifier as written, so that
// numeric ids round-trip without gaining quotes.
type ItemID struct {
	value  string
	quoted bool
}

// NewItemID returns a string-valued id. Used mostly by tests.
func NewItemID(s string) ItemID {
	return ItemID{value: s, quoted: true}
}

func (id ItemID) String() string { return id.value }

func (id ItemID) IsZero() bool { return id.value == "" && !id.quoted }

func (id ItemID) MarshalJSON() ([]byte, error) {
	if id.IsZero() {
		return []byte("null"), nil
	}
	if id.quoted {
		return json.Marshal(id.value)
	}
	return []byte(id.value), nil
}

func (id *ItemID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ItemID{}
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("dataset: id: %w", err)
		}
		*id = ItemID{value: s, quoted: true}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("dataset: id must be string or number: %w", err)
	}
	*id = ItemID{value: n.String()}
	return nil
}

// Text coerces any scalar JSON value to a string, matching the loose input
// files this tool consumes. Missing or null fields become "".
type Text string

func (t Text) String() string { return string(t) }

func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return fmt.Errorf("dataset: text: %w", err)
		}
		*t = Text(s)
		return nil
	}
	// Numbers, booleans, and structured values keep their JSON form.
	*t = Text(b)
	return nil
}
